package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	MigrationsPath string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	JWTSecret      string
	JWTIssuer      string

	RedisURL          string
	GLAccountCacheTTL time.Duration
	AMQPURL           string
	EventsExchange    string
	PosthogAPIKey     string
	PosthogEndpoint   string
	RateLimit         string
	CORSAllowOrigins  []string

	// Safe default accounts used when no GL mapping matches a business transaction.
	// Left empty, unmapped transactions are rejected instead.
	FallbackDebitAccountCode  string
	FallbackCreditAccountCode string
}

// HasPostingFallback reports whether both fallback account codes are configured.
func (c *Config) HasPostingFallback() bool {
	return c.FallbackDebitAccountCode != "" && c.FallbackCreditAccountCode != ""
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_ISSUER", "branch-back-office")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("GL_ACCOUNT_CACHE_TTL", "10m")
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("GL_EVENTS_EXCHANGE", "gl.events")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("GL_FALLBACK_DEBIT_ACCOUNT_CODE", "")
	viper.SetDefault("GL_FALLBACK_CREDIT_ACCOUNT_CODE", "")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:               viper.GetString("PGSQL_URL"),
		MigrationsPath:            viper.GetString("MIGRATIONS_PATH"),
		Port:                      viper.GetString("PORT"),
		IsProduction:              viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:             viper.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:                 viper.GetString("JWT_SECRET"),
		JWTIssuer:                 viper.GetString("JWT_ISSUER"),
		RedisURL:                  viper.GetString("REDIS_URL"),
		AMQPURL:                   viper.GetString("AMQP_URL"),
		EventsExchange:            viper.GetString("GL_EVENTS_EXCHANGE"),
		PosthogAPIKey:             viper.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:           viper.GetString("POSTHOG_ENDPOINT"),
		RateLimit:                 viper.GetString("RATE_LIMIT"),
		FallbackDebitAccountCode:  strings.TrimSpace(viper.GetString("GL_FALLBACK_DEBIT_ACCOUNT_CODE")),
		FallbackCreditAccountCode: strings.TrimSpace(viper.GetString("GL_FALLBACK_CREDIT_ACCOUNT_CODE")),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	ttlStr := viper.GetString("GL_ACCOUNT_CACHE_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl <= 0 {
		ttl = 10 * time.Minute
		log.Printf("Warning: Invalid value for GL_ACCOUNT_CACHE_TTL ('%s'). Defaulting to %s.\n", ttlStr, ttl.String())
	}
	cfg.GLAccountCacheTTL = ttl

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowOrigins = append(cfg.CORSAllowOrigins, origin)
		}
	}

	if cfg.FallbackDebitAccountCode == "" || cfg.FallbackCreditAccountCode == "" {
		if cfg.FallbackDebitAccountCode != "" || cfg.FallbackCreditAccountCode != "" {
			log.Println("Warning: only one GL fallback account code is set; the posting fallback stays disabled.")
		}
		log.Println("Warning: GL posting fallback disabled. Unmapped transactions will be rejected.")
	}

	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set. GL account cache disabled and rate limits kept in memory.")
	}
	if cfg.AMQPURL == "" {
		log.Println("Warning: AMQP_URL not set. Ledger events will not be published.")
	}

	return cfg, nil
}
