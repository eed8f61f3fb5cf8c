package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode   string
	Port      string
	Database  DatabaseConfig
	External  ExternalConfig
	Redis     RedisConfig
	Reconcile ReconcileConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// ExternalConfig holds score bureau and payment gateway configuration
type ExternalConfig struct {
	ScoreAPIURL      string
	PaymentAPIURL    string
	SimulatePayments bool
}

// RedisConfig holds the score cache configuration. An empty Addr
// disables caching.
type RedisConfig struct {
	Addr         string
	Password     string
	ScoreTTLMins int
}

// ReconcileConfig holds the settlement reconciliation schedule
type ReconcileConfig struct {
	Enabled   bool
	CronSpec  string
	GraceMins int
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:   appMode,
		Port:      getEnv("PORT", "3000"),
		Database:  loadDatabaseConfig(appMode),
		External:  loadExternalConfig(),
		Redis:     loadRedisConfig(),
		Reconcile: loadReconcileConfig(),
	}

	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "credifit_consignado"),
	}
}

// loadExternalConfig loads score bureau and payment gateway config
func loadExternalConfig() ExternalConfig {
	simulate, _ := strconv.ParseBool(getEnv("PAYMENT_SIMULATE", "true"))

	return ExternalConfig{
		ScoreAPIURL:      getEnv("SCORE_API_URL", "https://mocki.io/v1/f7b3627c-444a-4d65-b76b-d94a6c63bdcf"),
		PaymentAPIURL:    getEnv("PAYMENT_API_URL", "https://mocki.io/v1/386c594b-d42f-4d14-8036-508a0cf1264c"),
		SimulatePayments: simulate,
	}
}

// loadRedisConfig loads the score cache config
func loadRedisConfig() RedisConfig {
	ttl, _ := strconv.Atoi(getEnv("SCORE_CACHE_TTL_MINUTES", "15"))

	return RedisConfig{
		Addr:         getEnv("REDIS_ADDR", ""),
		Password:     getEnv("REDIS_PASSWORD", ""),
		ScoreTTLMins: ttl,
	}
}

// loadReconcileConfig loads the settlement reconciliation config
func loadReconcileConfig() ReconcileConfig {
	enabled, _ := strconv.ParseBool(getEnv("RECONCILE_ENABLED", "true"))
	grace, _ := strconv.Atoi(getEnv("RECONCILE_GRACE_MINUTES", "30"))

	return ReconcileConfig{
		Enabled:   enabled,
		CronSpec:  getEnv("RECONCILE_CRON", "*/30 * * * *"),
		GraceMins: grace,
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://app.credifit.com.br"
	}
	return origins
}
