package worker

import "time"

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// Log messages for worker pool operations
const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerQueueFull   = "Worker queue full, job dropped"
	LogMsgWorkerPoolStarted = "Worker pool started"
	LogMsgWorkerPoolStopped = "Worker pool stopped"
)

// DefaultJobTimeout bounds a single job run
const DefaultJobTimeout = 30 * time.Second
