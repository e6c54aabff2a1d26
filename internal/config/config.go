package config

import (
	"os"
	"strconv"
)

// DatabaseConfig holds Oracle billing-database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	Service            string
	User               string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// KPLCConfig holds the self-service API endpoints and client credentials.
// The client id/secret pair feeds the Basic header of the token request; it is
// environment-supplied and never compiled in.
type KPLCConfig struct {
	BaseURL        string
	ClientID       string
	ClientSecret   string
	Scope          string
	TLSInsecure    bool // debugging opt-out only; verification stays on by default
	HTTPTimeoutSec int
}

// MinIOConfig holds optional object-storage settings for the archive mirror.
// The mirror is disabled when Endpoint is empty.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	LogLevel       string
	PushgatewayURL string
	Database       DatabaseConfig
	KPLC           KPLCConfig
	MinIO          MinIOConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		PushgatewayURL: getEnv("PUSHGATEWAY_URL", ""),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "1521"),
			Service:            getEnv("DB_SERVICE", ""),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 2),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 1),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		KPLC: KPLCConfig{
			BaseURL:        getEnv("KPLC_BASE_URL", "https://selfservice.kplc.co.ke/api"),
			ClientID:       getEnv("KPLC_CLIENT_ID", ""),
			ClientSecret:   getEnv("KPLC_CLIENT_SECRET", ""),
			Scope:          getEnv("KPLC_SCOPE", "nuru_docs_private"),
			TLSInsecure:    getEnvBool("KPLC_TLS_INSECURE", false),
			HTTPTimeoutSec: getEnvInt("KPLC_HTTP_TIMEOUT_SEC", 60),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "invoices"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
