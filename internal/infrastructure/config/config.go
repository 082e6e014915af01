package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host          string
	Port          int
	User          string
	Password      string
	Name          string
	SSLMode       string
	MigrationsDir string
}

// KafkaConfig holds Kafka connection parameters.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// AuthConfig holds JWT validation parameters.
type AuthConfig struct {
	JWTSecret     string
	PublicKeyFile string
	Issuer        string
}

// TLSConfig holds the gRPC server certificate paths. Empty means plaintext.
type TLSConfig struct {
	CertFile string
	KeyFile  string
}

// ObservabilityConfig holds logging and tracing parameters.
type ObservabilityConfig struct {
	LogLevel     string
	LogFormat    string
	OTLPEndpoint string
}

// Config is the full service configuration, loaded from the environment.
type Config struct {
	GRPCPort         int
	HTTPPort         int
	DB               DatabaseConfig
	Kafka            KafkaConfig
	Auth             AuthConfig
	TLS              TLSConfig
	Observability    ObservabilityConfig
	ServiceName      string
	DataSource       string
	GuidelineVersion string
}

// Validate panics on configuration the service cannot start without.
func (c Config) Validate() {
	if c.DB.Password == "" {
		panic("DB_PASSWORD environment variable is required")
	}
	if c.Auth.JWTSecret == "" && c.Auth.PublicKeyFile == "" {
		panic("JWT_SECRET or JWT_PUBLIC_KEY_FILE environment variable is required")
	}
}

// Load reads the configuration from the environment with sane defaults.
func Load() Config {
	return Config{
		GRPCPort: getEnvInt("GRPC_PORT", 9090),
		HTTPPort: getEnvInt("HTTP_PORT", 8090),
		DB: DatabaseConfig{
			Host:          getEnv("DB_HOST", "localhost"),
			Port:          getEnvInt("DB_PORT", 5432),
			User:          getEnv("DB_USER", "advisor"),
			Password:      getEnv("DB_PASSWORD", ""),
			Name:          getEnv("DB_NAME", "advisor"),
			SSLMode:       getEnv("DB_SSLMODE", "require"),
			MigrationsDir: getEnv("DB_MIGRATIONS_DIR", "internal/infrastructure/postgres/migrations"),
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:   getEnv("KAFKA_TOPIC", "advisor.events"),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			PublicKeyFile: getEnv("JWT_PUBLIC_KEY_FILE", ""),
			Issuer:        getEnv("JWT_ISSUER", "loanworks"),
		},
		TLS: TLSConfig{
			CertFile: getEnv("TLS_CERT_FILE", ""),
			KeyFile:  getEnv("TLS_KEY_FILE", ""),
		},
		Observability: ObservabilityConfig{
			LogLevel:     getEnv("LOG_LEVEL", "info"),
			LogFormat:    getEnv("LOG_FORMAT", "json"),
			OTLPEndpoint: getEnv("OTLP_ENDPOINT", ""),
		},
		ServiceName:      "advisor-service",
		DataSource:       getEnv("CATALOG_DATA_SOURCE", "static-catalog"),
		GuidelineVersion: getEnv("CATALOG_GUIDELINE_VERSION", "2026-08"),
	}
}

// GRPCAddr returns the gRPC listen address.
func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

// HTTPAddr returns the HTTP listen address.
func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
