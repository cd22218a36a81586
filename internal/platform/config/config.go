package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// MailConfig holds the SMTP relay settings. An empty Host disables mail.
type MailConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	JWTSecret      string
	MigrationsPath string

	// Delayed job facility
	RedisURL        string
	QueuePollSpec   string
	QueueVisibility time.Duration // how long a claimed job may run before it is handed out again

	// DemoUserEmail is the shared demo identity reminders are never scheduled for.
	DemoUserEmail string
	Mail          MailConfig

	RateLimit          string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("QUEUE_POLL_SPEC", "@every 1s")
	v.SetDefault("QUEUE_VISIBILITY", "5m")
	v.SetDefault("DEMO_USER_EMAIL", "")
	v.SetDefault("MAIL_HOST", "")
	v.SetDefault("MAIL_PORT", 587)
	v.SetDefault("MAIL_USER", "")
	v.SetDefault("MAIL_PASS", "")
	v.SetDefault("MAIL_FROM", "")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:     v.GetString("PGSQL_URL"),
		Port:            v.GetString("PORT"),
		IsProduction:    v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:   v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		MigrationsPath:  v.GetString("MIGRATIONS_PATH"),
		RedisURL:        v.GetString("REDIS_URL"),
		QueuePollSpec:   v.GetString("QUEUE_POLL_SPEC"),
		QueueVisibility: v.GetDuration("QUEUE_VISIBILITY"),
		DemoUserEmail:   strings.TrimSpace(v.GetString("DEMO_USER_EMAIL")),
		Mail: MailConfig{
			Host: v.GetString("MAIL_HOST"),
			Port: v.GetInt("MAIL_PORT"),
			User: v.GetString("MAIL_USER"),
			Pass: v.GetString("MAIL_PASS"),
			From: v.GetString("MAIL_FROM"),
		},
		RateLimit:          v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set. Using in-memory storage.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set. Reminder jobs are kept in process and lost on restart.")
	}
	if cfg.Mail.Host == "" {
		log.Println("Warning: MAIL_HOST not set. Reminder notifications are only logged.")
	}

	return cfg, nil
}

// splitList parses a comma separated value, dropping empty items.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
