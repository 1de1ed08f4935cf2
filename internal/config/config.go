package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	APIKey      string // API key for authentication
	LogLevel    string
	LogFormat   string
	Environment string
	Version     string
	ServiceName string

	// TrustedProxies may set X-Forwarded-For
	TrustedProxies []string

	Storage    string // "postgres" or "memory"
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBMaxConns int

	WorkerCount           int
	WorkerQueueSize       int
	ConfigRefreshInterval time.Duration
	ItemCacheSize         int
	ItemCacheTTL          time.Duration
	LedgerAudit           bool

	DiscordToken                 string
	DiscordNotificationChannelID string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:      getEnv("API_KEY", ""),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "text")),
		Environment: getEnv("ENVIRONMENT", "dev"),
		Version:     getEnv("VERSION", "dev"),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),

		TrustedProxies: splitList(getEnv("TRUSTED_PROXIES", "")),

		Storage:    strings.ToLower(getEnv("STORAGE", StoragePostgres)),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "rewardengine"),
		DBMaxConns: getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),

		WorkerCount:     getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),
		WorkerQueueSize: getEnvAsInt("WORKER_QUEUE_SIZE", DefaultWorkerQueueSize),
		ItemCacheSize:   getEnvAsInt("ITEM_CACHE_SIZE", DefaultItemCacheSize),
		LedgerAudit:     getEnvAsBool("LEDGER_AUDIT", false),

		DiscordToken:                 getEnv("DISCORD_TOKEN", ""),
		DiscordNotificationChannelID: getEnv("DISCORD_NOTIFICATION_CHANNEL_ID", ""),
	}

	port, err := strconv.Atoi(getEnv("PORT", strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if cfg.ConfigRefreshInterval, err = time.ParseDuration(getEnv("CONFIG_REFRESH_INTERVAL", DefaultConfigRefreshInterval)); err != nil {
		return nil, fmt.Errorf("invalid CONFIG_REFRESH_INTERVAL value: %w", err)
	}
	if cfg.ItemCacheTTL, err = time.ParseDuration(getEnv("ITEM_CACHE_TTL", DefaultItemCacheTTL)); err != nil {
		return nil, fmt.Errorf("invalid ITEM_CACHE_TTL value: %w", err)
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}
	if cfg.Storage != StoragePostgres && cfg.Storage != StorageMemory {
		return nil, fmt.Errorf("invalid STORAGE value %q: expected %s or %s", cfg.Storage, StoragePostgres, StorageMemory)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// DiscordEnabled reports whether jackpot announcements can be sent
func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != "" && c.DiscordNotificationChannelID != ""
}
