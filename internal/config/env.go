package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// dotenvFiles are read into the process environment when they exist.
// Variables already set are not overridden.
var dotenvFiles = []string{".env"}

func loadEnv(cfg *Config) {
	for _, f := range dotenvFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				panic(err)
			}
		}
	}

	cfg.DatabasePath = getEnv("TRIPQUOTE_DB", cfg.DatabasePath)
	cfg.LibraryURL = getEnv("TRIPQUOTE_LIBRARY_URL", cfg.LibraryURL)
	cfg.TemplatesURL = getEnv("TRIPQUOTE_TEMPLATES_URL", cfg.TemplatesURL)
	cfg.SyncInterval = getEnvDuration("TRIPQUOTE_SYNC_INTERVAL", cfg.SyncInterval)
	cfg.SyncCheckInterval = getEnvDuration("TRIPQUOTE_SYNC_CHECK_INTERVAL", cfg.SyncCheckInterval)
	cfg.HTTPTimeout = getEnvDuration("TRIPQUOTE_HTTP_TIMEOUT", cfg.HTTPTimeout)
	cfg.ExportDir = getEnv("TRIPQUOTE_EXPORT_DIR", cfg.ExportDir)
	cfg.AgencyName = getEnv("TRIPQUOTE_AGENCY_NAME", cfg.AgencyName)
	cfg.AgencyAddress = getEnv("TRIPQUOTE_AGENCY_ADDRESS", cfg.AgencyAddress)
	cfg.AgencyPhone = getEnv("TRIPQUOTE_AGENCY_PHONE", cfg.AgencyPhone)
	cfg.Consultant = getEnv("TRIPQUOTE_CONSULTANT", cfg.Consultant)
	cfg.DefaultCurrency = getEnv("TRIPQUOTE_CURRENCY", cfg.DefaultCurrency)

	cfg.OpenAIToken = getEnv("OPENAI_API_KEY", cfg.OpenAIToken)
	cfg.OpenAIModel = getEnv("TRIPQUOTE_OPENAI_MODEL", cfg.OpenAIModel)
	cfg.OpenAIBaseURL = getEnv("OPENAI_BASE_URL", cfg.OpenAIBaseURL)

	cfg.S3Region = getEnv("TRIPQUOTE_S3_REGION", cfg.S3Region)
	cfg.S3AccessKey = getEnv("TRIPQUOTE_S3_ACCESS_KEY", cfg.S3AccessKey)
	cfg.S3SecretKey = getEnv("TRIPQUOTE_S3_SECRET_KEY", cfg.S3SecretKey)
	cfg.S3Endpoint = getEnv("TRIPQUOTE_S3_ENDPOINT", cfg.S3Endpoint)

	cfg.LogLevel = getEnv("TRIPQUOTE_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = getEnv("TRIPQUOTE_LOG_FILE", cfg.LogFile)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration keeps defaultValue unless the variable holds a positive duration.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}
