package bootstrap

import "time"

// Database pool lifetimes
const (
	DBMaxConnIdleTime = 5 * time.Minute
	DBMaxConnLifetime = time.Hour
)

// ConfigRefreshJobName names the scheduled configuration refresh
const ConfigRefreshJobName = "config_refresh"

// Log messages for startup
const (
	LogMsgStarting            = "Starting reward engine"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgStorageSelected     = "Storage backend selected"
	LogMsgNotifierEnabled     = "Discord jackpot notifications enabled"
	LogMsgNotifierDisabled    = "Discord jackpot notifications disabled"
)

// Log messages for shutdown
const (
	LogMsgShuttingDownServer    = "Shutting down server..."
	LogMsgServerForcedShutdown  = "Server forced to shutdown"
	LogMsgServiceShutdownFailed = " shutdown failed"
	LogMsgServerStopped         = "Server stopped"
)

// Component names used in shutdown logs
const (
	ComponentScheduler = "scheduler"
	ComponentWorkers   = "worker pool"
	ComponentSlots     = "slots"
	ComponentNotifier  = "notifier"
	ComponentStorage   = "storage"
)
