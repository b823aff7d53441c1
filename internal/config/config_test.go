package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.HTTPPort != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.HTTPPort)
	}
	if cfg.AlertMinStock != 5 {
		t.Errorf("expected default min stock 5, got %d", cfg.AlertMinStock)
	}
	if cfg.AlertDaysBeforeExpire != 14 {
		t.Errorf("expected default expiry lookahead 14, got %d", cfg.AlertDaysBeforeExpire)
	}
	if cfg.AlertIntervalMinutes != 0 {
		t.Errorf("expected the background sweep disabled by default, got %d", cfg.AlertIntervalMinutes)
	}
	if cfg.SMTPPort != 587 {
		t.Errorf("expected default SMTP port 587, got %d", cfg.SMTPPort)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("ALERT_MIN_STOCK", "12")
	t.Setenv("CRON_SECRET", "rahasia-cron")

	cfg := Load()
	if cfg.HTTPPort != "9090" {
		t.Errorf("expected port 9090, got %q", cfg.HTTPPort)
	}
	if cfg.AlertMinStock != 12 {
		t.Errorf("expected min stock 12, got %d", cfg.AlertMinStock)
	}
	if cfg.CronSecret != "rahasia-cron" {
		t.Errorf("expected cron secret to pass through, got %q", cfg.CronSecret)
	}
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("ALERT_MIN_STOCK", "lima")

	cfg := Load()
	if cfg.AlertMinStock != 5 {
		t.Errorf("expected fallback to 5 for an unparseable value, got %d", cfg.AlertMinStock)
	}
}
