package config

// Storage backends
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Defaults
const (
	DefaultPort                  = 8080
	DefaultWorkerCount           = 4
	DefaultWorkerQueueSize       = 64
	DefaultConfigRefreshInterval = "5m"
	DefaultItemCacheSize         = 64
	DefaultItemCacheTTL          = "10m"
	DefaultDBMaxConns            = 10
	DefaultServiceName           = "reward-engine"
)
