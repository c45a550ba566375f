package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// envFile is loaded before the environment is read. Variables already set
// in the process environment are not overridden.
var envFile = ".env"

// parseEnv overlays config with environment variables. A missing .env file
// is not an error.
func parseEnv(config *Config) {
	_ = godotenv.Load(envFile)

	config.HTTPAddress = getEnv("HTTP_ADDRESS", config.HTTPAddress)
	config.Storage = getEnv("STORAGE", config.Storage)
	config.DataDir = getEnv("DATA_DIR", config.DataDir)
	config.DatabaseDSN = getEnv("DATABASE_DSN", config.DatabaseDSN)
	config.S3RootUser = getEnv("S3_ROOT_USER", config.S3RootUser)
	config.S3RootPassword = getEnv("S3_ROOT_PASSWORD", config.S3RootPassword)
	config.S3Bucket = getEnv("S3_BUCKET", config.S3Bucket)
	config.S3Region = getEnv("S3_REGION", config.S3Region)
	config.S3BaseEndpoint = getEnv("S3_BASE_ENDPOINT", config.S3BaseEndpoint)
	config.LogLevel = getEnv("LOG_LEVEL", config.LogLevel)
	config.Env = getEnv("ENV", config.Env)
	config.ShutdownTimeout = getEnvAsDuration("SHUTDOWN_TIMEOUT", config.ShutdownTimeout)
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
