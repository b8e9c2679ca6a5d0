package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DatabasePath string
	LogLevel     string
	Port         int
	DevMode      bool

	// Scenario analysis parameters. RemainingDays is the number of days from
	// today to the contractual completion date absent any delay.
	// BaselineDelayWeeks is the reference delay every stored risk impact is
	// quoted against.
	RemainingDays      int
	BaselineDelayWeeks float64

	// Backup settings. Backups are disabled when BackupDir is empty;
	// remote upload is enabled only when a bucket is configured.
	BackupDir         string
	BackupS3Bucket    string
	BackupS3Endpoint  string
	BackupS3Region    string
	BackupS3AccessKey string
	BackupS3SecretKey string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnvAsInt("PORT", 8000),
		DevMode:            getEnvAsBool("DEV_MODE", false),
		DatabasePath:       getEnv("DATABASE_PATH", "./data/latso.db"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		RemainingDays:      getEnvAsInt("REMAINING_DAYS", 127),
		BaselineDelayWeeks: getEnvAsFloat("BASELINE_DELAY_WEEKS", 2),
		BackupDir:          getEnv("BACKUP_DIR", ""),
		BackupS3Bucket:     getEnv("BACKUP_S3_BUCKET", ""),
		BackupS3Endpoint:   getEnv("BACKUP_S3_ENDPOINT", ""),
		BackupS3Region:     getEnv("BACKUP_S3_REGION", "auto"),
		BackupS3AccessKey:  getEnv("BACKUP_S3_ACCESS_KEY", ""),
		BackupS3SecretKey:  getEnv("BACKUP_S3_SECRET_KEY", ""),
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}

	if c.RemainingDays < 0 {
		return fmt.Errorf("REMAINING_DAYS must not be negative")
	}

	if c.BaselineDelayWeeks <= 0 {
		return fmt.Errorf("BASELINE_DELAY_WEEKS must be positive")
	}

	if c.BackupS3Bucket != "" && (c.BackupS3AccessKey == "" || c.BackupS3SecretKey == "") {
		return fmt.Errorf("BACKUP_S3_ACCESS_KEY and BACKUP_S3_SECRET_KEY are required when BACKUP_S3_BUCKET is set")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
