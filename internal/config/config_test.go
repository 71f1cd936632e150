package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{
		"API_ADDR", "LOG_DIR", "REPORT_DIR", "SITES_FILE", "DATABASE_URL",
		"WORKERS", "PAGE_TIMEOUT_SECONDS", "SITE_TIMEOUT_SECONDS", "BROWSER",
		"SLACK_WEBHOOK_URL", "NOTIFY_WEBHOOK_URL", "NOTIFY_FILE",
	} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()
	if cfg.Addr != "127.0.0.1:8080" {
		t.Fatalf("addr default: %q", cfg.Addr)
	}
	if cfg.LogDir != "logs" || cfg.ReportDir != "reports" || cfg.SitesFile != "sites.yaml" {
		t.Fatalf("dir defaults: %+v", cfg)
	}
	if cfg.Workers != 5 {
		t.Fatalf("workers default: %d", cfg.Workers)
	}
	if cfg.PageTimeout != 20*time.Second || cfg.SiteTimeout != 120*time.Second {
		t.Fatalf("timeout defaults: %v %v", cfg.PageTimeout, cfg.SiteTimeout)
	}
	if cfg.Browser != "chrome" {
		t.Fatalf("browser default: %q", cfg.Browser)
	}
	if cfg.DatabaseURL != "" {
		t.Fatalf("expected empty database url, got %q", cfg.DatabaseURL)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("API_ADDR", ":9090")
	t.Setenv("WORKERS", "3")
	t.Setenv("PAGE_TIMEOUT_SECONDS", "5")
	t.Setenv("SITE_TIMEOUT_SECONDS", "30")
	t.Setenv("BROWSER", "http")
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.com/services/x")

	cfg := FromEnv()
	if cfg.Addr != ":9090" {
		t.Fatalf("addr: %q", cfg.Addr)
	}
	if cfg.Workers != 3 {
		t.Fatalf("workers: %d", cfg.Workers)
	}
	if cfg.PageTimeout != 5*time.Second || cfg.SiteTimeout != 30*time.Second {
		t.Fatalf("timeouts: %v %v", cfg.PageTimeout, cfg.SiteTimeout)
	}
	if cfg.Browser != "http" {
		t.Fatalf("browser: %q", cfg.Browser)
	}
	if cfg.SlackWebhookURL == "" {
		t.Fatal("expected slack webhook to pass through")
	}
}

func TestFromEnvCapsWorkers(t *testing.T) {
	t.Setenv("WORKERS", "50")
	if got := FromEnv().Workers; got != 10 {
		t.Fatalf("expected workers capped at 10, got %d", got)
	}
}

func TestFromEnvKeepsBrowserVerbatim(t *testing.T) {
	// The factory owns the fallback (and warns about it); config must not
	// hide a typo by rewriting it.
	t.Setenv("BROWSER", "firefox")
	if got := FromEnv().Browser; got != "firefox" {
		t.Fatalf("expected verbatim value, got %q", got)
	}
}
