package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	BackendDynamoDB = "dynamodb"
	BackendS3       = "s3"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendNone     = "none"

	SecretsEnv = "env"
	SecretsAWS = "aws"
)

type Config struct {
	Addr        string `validate:"required"`
	OpsAddr     string
	Environment string `validate:"required"`

	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json text"`

	StoreBackend   string `validate:"oneof=dynamodb s3 redis postgres none"`
	UsersTable     string `validate:"required"`
	MetricsTable   string `validate:"required"`
	DataBucket     string `validate:"required_if=StoreBackend s3"`
	DataPrefix     string
	UsersScanLimit int `validate:"gt=0"`
	AWSRegion      string
	AWSEndpoint    string `validate:"omitempty,url"`
	RedisURL       string `validate:"required_if=StoreBackend redis"`
	DatabaseURL    string `validate:"required_if=StoreBackend postgres"`
	DBMigrate      bool
	DBSeedSample   bool

	AuthRequired   bool
	JWTSecret      string
	SecretsBackend string `validate:"oneof=env aws"`
	JWTSecretName  string

	MetricsEnabled  bool
	ReadTimeout     time.Duration `validate:"gt=0"`
	WriteTimeout    time.Duration `validate:"gt=0"`
	IdleTimeout     time.Duration `validate:"gt=0"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

func Load() Config {
	return Config{
		Addr:        getEnv("APP_ADDR", ":8080"),
		OpsAddr:     getEnv("OPS_ADDR", ":9090"),
		Environment: getEnv("APP_ENV", "development"),

		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "json")),

		StoreBackend:   strings.ToLower(getEnv("STORE_BACKEND", BackendDynamoDB)),
		UsersTable:     getEnv("USERS_TABLE", "dashboard-users"),
		MetricsTable:   getEnv("METRICS_TABLE", "dashboard-metrics"),
		DataBucket:     getEnv("DASHBOARD_DATA_BUCKET", "dashboard-data-bucket"),
		DataPrefix:     getEnv("DASHBOARD_DATA_PREFIX", "dashboard/"),
		UsersScanLimit: getEnvInt("USERS_SCAN_LIMIT", 100),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpoint:    getEnv("AWS_ENDPOINT", ""),
		RedisURL:       getEnv("REDIS_URL", ""),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		DBMigrate:      getEnvBool("DB_MIGRATE", true),
		DBSeedSample:   getEnvBool("DB_SEED_SAMPLE", false),

		AuthRequired:   getEnvBool("AUTH_REQUIRED", false),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		SecretsBackend: strings.ToLower(getEnv("SECRETS_BACKEND", SecretsEnv)),
		JWTSecretName:  getEnv("JWT_SECRET_NAME", "dashboard/jwt-secret"),

		MetricsEnabled:  getEnvBool("METRICS_ENABLED", true),
		ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
		IdleTimeout:     getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("invalid config: %s failed %q (value %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.AuthRequired && c.SecretsBackend == SecretsEnv && strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required when AUTH_REQUIRED is true")
	}
	if c.Environment == "production" && c.StoreBackend == BackendNone {
		return fmt.Errorf("STORE_BACKEND=none serves sample data only and is not allowed in production")
	}
	return nil
}
