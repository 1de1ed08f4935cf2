package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// RequiredEnvVars lists the environment variables needed for the postgres backend
var RequiredEnvVars = []string{
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
	"API_KEY",
}

// intEnvVars are parsed with getEnvAsInt, which falls back to the default on bad input
var intEnvVars = []string{
	"DB_MAX_CONNS",
	"WORKER_COUNT",
	"WORKER_QUEUE_SIZE",
	"ITEM_CACHE_SIZE",
}

// ValidateEnv checks that all required environment variables are set.
// The memory backend only needs API_KEY.
func ValidateEnv() error {
	required := RequiredEnvVars
	if strings.EqualFold(os.Getenv("STORAGE"), StorageMemory) {
		required = []string{"API_KEY"}
	}

	var missing []string
	for _, envVar := range required {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}

// ValidateEnvWithWarnings checks environment variables and returns warnings
// for non-critical issues (like using default values)
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string

	if os.Getenv("DB_PASSWORD") == "change_this_secure_password" {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}
	if os.Getenv("API_KEY") == "generate_with_openssl_rand_hex_32" {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}
	if os.Getenv("DISCORD_TOKEN") != "" && os.Getenv("DISCORD_NOTIFICATION_CHANNEL_ID") == "" {
		warnings = append(warnings, "DISCORD_TOKEN is set without DISCORD_NOTIFICATION_CHANNEL_ID - jackpot announcements are disabled")
	}

	for _, key := range intEnvVars {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err != nil || n < 0 {
				warnings = append(warnings, fmt.Sprintf("%s=%q is not a non-negative integer - using the default", key, v))
			}
		}
	}

	return warnings, nil
}
