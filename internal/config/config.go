package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds every environment-driven setting in one place so nothing
// reads os.Getenv from deep inside a handler.
type Config struct {
	HTTPPort    string
	DatabaseDSN string

	// Session
	SessionSecret string

	// Scheduler shared secret. Empty means the cron trigger is open,
	// matching the default deploy where no secret is configured.
	CronSecret string

	// Gemini
	GeminiAPIKey string
	GeminiModel  string

	// Mail relay
	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPass       string
	AlertEmailFrom string
	AlertEmailTo   string

	// Alert sweep thresholds
	AlertMinStock         int
	AlertDaysBeforeExpire int

	// In-process sweep interval. 0 disables the background worker and
	// leaves scheduling to the external cron endpoint.
	AlertIntervalMinutes int

	// Dashboard link placed in alert emails
	WebsiteURL string

	CORSOrigin string
}

// Load reads configuration from environment variables with the same
// defaults the original deployment used.
func Load() Config {
	cfg := Config{
		HTTPPort:    envString("HTTP_PORT", "8080"),
		DatabaseDSN: os.Getenv("DB_DSN"),

		SessionSecret: envString("SESSION_SECRET", "dev_secret_change_me"),
		CronSecret:    os.Getenv("CRON_SECRET"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  os.Getenv("GEMINI_MODEL"),

		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPPort:       envInt("SMTP_PORT", 587),
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPass:       os.Getenv("SMTP_PASS"),
		AlertEmailFrom: envString("ALERT_EMAIL_FROM", "notifier@example.com"),
		AlertEmailTo:   envString("ALERT_EMAIL_TO", envString("DEFAULT_ADMIN_EMAIL", "admin@example.com")),

		AlertMinStock:         envInt("ALERT_MIN_STOCK", 5),
		AlertDaysBeforeExpire: envInt("ALERT_DAYS_BEFORE_EXPIRE", 14),
		AlertIntervalMinutes:  envInt("ALERT_INTERVAL_MINUTES", 0),

		WebsiteURL: os.Getenv("URL_WEBSITE"),

		CORSOrigin: envString("CORS_ORIGIN", "http://localhost:5173"),
	}

	return cfg
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s value %q, defaulting to %d", key, v, fallback)
		return fallback
	}
	return n
}
