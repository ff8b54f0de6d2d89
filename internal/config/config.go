package config

import (
	"errors" // Validation errors
	"time"   // Durations

	"github.com/joho/godotenv" // For loading .env files
	"github.com/spf13/viper"   // Environment lookup with defaults
)

// Config holds the application configuration
type Config struct {
	AppPort  string // Application port
	IsProd   bool   // Is production environment
	LogLevel string // logrus level name

	DBDriver   string // mysql or postgres
	DBDSN      string // Full DSN, overrides the discrete DB fields
	DBUser     string // Database user
	DBPassword string // Database password
	DBHost     string // Database host
	DBPort     string // Database port
	DBName     string // Database name

	JWTSecret string        // JWT secret key
	JWTTTL    time.Duration // Admin session lifetime

	RedisAddr string        // Redis server address
	RedisPass string        // Redis password
	RedisDB   int           // Redis database number
	CacheTTL  time.Duration // TTL of cached admin reads

	CardProviderURL          string // Card issuer base URL
	CardProviderClientID     string // Card issuer client id
	CardProviderClientSecret string // Card issuer client secret

	SMTPHost     string // Empty disables email notifications
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPSender   string

	ReconcileSchedule string  // cron spec for ledger reconciliation
	LoginRate         float64 // Login attempts per second
	LoginBurst        int     // Login burst size
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("JWT_TTL", "12h")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("CACHE_TTL", "60s")
	v.SetDefault("SMTP_PORT", "587")
	v.SetDefault("RECONCILE_SCHEDULE", "@every 1h")
	v.SetDefault("LOGIN_RATE", 1.0)
	v.SetDefault("LOGIN_BURST", 5)

	return &Config{
		AppPort:  v.GetString("APP_PORT"),
		IsProd:   v.GetBool("IS_PROD"),
		LogLevel: v.GetString("LOG_LEVEL"),

		DBDriver:   v.GetString("DB_DRIVER"),
		DBDSN:      v.GetString("DB_DSN"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBName:     v.GetString("DB_NAME"),

		JWTSecret: v.GetString("JWT_SECRET"),
		JWTTTL:    v.GetDuration("JWT_TTL"),

		RedisAddr: v.GetString("REDIS_ADDR"),
		RedisPass: v.GetString("REDIS_PASS"),
		RedisDB:   v.GetInt("REDIS_DB"),
		CacheTTL:  v.GetDuration("CACHE_TTL"),

		CardProviderURL:          v.GetString("CARD_PROVIDER_URL"),
		CardProviderClientID:     v.GetString("CARD_PROVIDER_CLIENT_ID"),
		CardProviderClientSecret: v.GetString("CARD_PROVIDER_CLIENT_SECRET"),

		SMTPHost:     v.GetString("SMTP_HOST"),
		SMTPPort:     v.GetString("SMTP_PORT"),
		SMTPUsername: v.GetString("SMTP_USERNAME"),
		SMTPPassword: v.GetString("SMTP_PASSWORD"),
		SMTPSender:   v.GetString("SMTP_SENDER"),

		ReconcileSchedule: v.GetString("RECONCILE_SCHEDULE"),
		LoginRate:         v.GetFloat64("LOGIN_RATE"),
		LoginBurst:        v.GetInt("LOGIN_BURST"),
	}
}

// Validate checks the settings the server cannot start without.
// Card provider credentials are optional: their absence is reported per request.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.DBDriver {
	case "mysql", "postgres":
	default:
		return errors.New("DB_DRIVER must be mysql or postgres")
	}
	if c.DBDSN == "" && (c.DBHost == "" || c.DBName == "") {
		return errors.New("DB_DSN or DB_HOST and DB_NAME are required")
	}
	return nil
}

// CardProviderConfigured reports whether all card issuer settings are present
func (c *Config) CardProviderConfigured() bool {
	return c.CardProviderURL != "" && c.CardProviderClientID != "" && c.CardProviderClientSecret != ""
}
