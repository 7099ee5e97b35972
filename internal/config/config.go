package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EmailProviderLog    = "log"
	EmailProviderResend = "resend"
	EmailProviderSMTP   = "smtp"
)

const (
	defaultDBConnection = "./data/cursos.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"
	defaultCourseImage  = "/static/img/curso-default.svg"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	AppURL  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	SecretKey           string
	SessionExpiry       time.Duration
	ResetTokenSalt      string
	ResetTokenMaxAge    time.Duration
	ResetTokenSingleUse bool
	AuthRateLimit       int
	AuthRateWindow      time.Duration

	// Email
	EmailProvider    string // "log", "resend" or "smtp"
	EmailFrom        string
	EmailSendTimeout time.Duration
	ResendAPIKey     string
	SMTPHost         string
	SMTPUser         string
	SMTPPassword     string
	SMTPSkipVerify   bool

	// Catalog
	DefaultCourseImage string

	// Observability (optional)
	SentryDSN string

	// Storage for uploaded course images (optional, S3-compatible)
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	appEnv := envRequired("APP_ENV") // 'development' or 'production'
	defaultProvider := EmailProviderLog
	if appEnv == "production" {
		defaultProvider = EmailProviderResend
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "Innova y Emprende"),
		AppEnv:  appEnv,
		AppURL:  envRequired("APP_URL"), // base URL for reset links
		Port:    envString("PORT", "8090"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", defaultDBConnection),

		// Security
		SecretKey:           envRequired("SECRET_KEY"),
		SessionExpiry:       envDuration("SESSION_EXPIRY", 168*time.Hour),
		ResetTokenSalt:      envString("RESET_TOKEN_SALT", "recuperar-salt"),
		ResetTokenMaxAge:    envDuration("RESET_TOKEN_MAX_AGE", 3600*time.Second),
		ResetTokenSingleUse: envBool("RESET_TOKEN_SINGLE_USE", false),
		AuthRateLimit:       envInt("AUTH_RATE_LIMIT", 5),
		AuthRateWindow:      envDuration("AUTH_RATE_WINDOW", 15*time.Minute),

		// Email
		EmailProvider:    envString("EMAIL_PROVIDER", defaultProvider),
		EmailFrom:        envString("EMAIL_FROM", "noreply@example.com"),
		EmailSendTimeout: envDuration("EMAIL_SEND_TIMEOUT", 10*time.Second),
		ResendAPIKey:     envString("RESEND_API_KEY", ""),
		SMTPHost:         envString("SMTP_HOST", ""),
		SMTPUser:         envString("SMTP_USER", ""),
		SMTPPassword:     envString("SMTP_PASSWORD", ""),
		SMTPSkipVerify:   envBool("SMTP_SKIP_VERIFY", false),

		// Catalog
		DefaultCourseImage: envString("DEFAULT_COURSE_IMAGE", defaultCourseImage),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Storage
		S3Region:    envString("S3_REGION", "us-east-1"),
		S3Bucket:    envString("S3_BUCKET", ""),
		S3AccessKey: envString("S3_ACCESS_KEY", ""),
		S3SecretKey: envString("S3_SECRET_KEY", ""),
		S3Endpoint:  envString("S3_ENDPOINT", ""),
	}

	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// LoadDatabase reads only the database settings, for operator commands that
// do not serve HTTP and so need no secrets.
func LoadDatabase() *Config {
	err := godotenv.Load()
	if err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	return &Config{
		AppName:            envString("APP_NAME", "Innova y Emprende"),
		AppEnv:             envString("APP_ENV", "development"),
		DBDriver:           envString("DB_DRIVER", "sqlite"),
		DBConnection:       envString("DB_CONNECTION", defaultDBConnection),
		DefaultCourseImage: envString("DEFAULT_COURSE_IMAGE", defaultCourseImage),
	}
}

// validateProduction ensures outbound email is really delivered in production.
// Development may use the log provider, which only prints reset links.
func validateProduction(cfg *Config) {
	switch cfg.EmailProvider {
	case EmailProviderResend:
		if cfg.ResendAPIKey == "" {
			slog.Error("production deployment requires RESEND_API_KEY",
				"hint", "set EMAIL_PROVIDER=smtp or APP_ENV=development")
			os.Exit(1)
		}
	case EmailProviderSMTP:
		if cfg.SMTPHost == "" {
			slog.Error("production deployment requires SMTP_HOST")
			os.Exit(1)
		}
	default:
		slog.Error("production deployment requires a real email provider", "provider", cfg.EmailProvider)
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// StorageEnabled reports whether course image uploads go to S3.
func (c *Config) StorageEnabled() bool {
	return c.S3Bucket != ""
}

// Sanitized returns a copy of the config with only public/safe fields.
// Safe to expose in ctx and templates.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:            c.AppName,
		AppEnv:             c.AppEnv,
		AppURL:             c.AppURL,
		Port:               c.Port,
		EmailFrom:          c.EmailFrom,
		DefaultCourseImage: c.DefaultCourseImage,
		S3Bucket:           c.S3Bucket,
		S3Endpoint:         c.S3Endpoint,
	}
}
