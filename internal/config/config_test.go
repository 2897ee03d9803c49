package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("ADMIN_TOKEN", "")
	t.Setenv("CALENDAR_PROVIDER", "")
	t.Setenv("PUBLIC_BASE_URL", "")
	t.Setenv("GOOGLE_OAUTH_REDIRECT_URI", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.AdminToken != "celia-admin-token" {
		t.Fatalf("expected default admin token, got %s", cfg.AdminToken)
	}
	if cfg.CalendarProvider != "mock" {
		t.Fatalf("expected mock calendar provider by default, got %s", cfg.CalendarProvider)
	}
	if cfg.CalendarSyncMaxDays != 90 {
		t.Fatalf("expected default sync max days, got %d", cfg.CalendarSyncMaxDays)
	}
	if cfg.CalendarRequestTimeout != 30*time.Second {
		t.Fatalf("expected default calendar timeout, got %s", cfg.CalendarRequestTimeout)
	}
	if cfg.GoogleOAuthRedirectURI != "http://localhost:8080/api/google/oauth/callback" {
		t.Fatalf("expected derived redirect URI, got %s", cfg.GoogleOAuthRedirectURI)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("DATABASE_URL", "postgres://user@host/db")
	t.Setenv("ADMIN_TOKEN", "secret")
	t.Setenv("CALENDAR_PROVIDER", "Google ")
	t.Setenv("GOOGLE_OAUTH_REDIRECT_URI", "https://example.com/cb")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("CALENDAR_REQUEST_TIMEOUT", "10s")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://user@host/db" {
		t.Fatalf("expected db override, got %s", cfg.DatabaseURL)
	}
	if cfg.AdminToken != "secret" {
		t.Fatalf("expected admin token override, got %s", cfg.AdminToken)
	}
	if cfg.CalendarProvider != "google" {
		t.Fatalf("expected normalized provider, got %s", cfg.CalendarProvider)
	}
	if cfg.GoogleOAuthRedirectURI != "https://example.com/cb" {
		t.Fatalf("expected explicit redirect URI, got %s", cfg.GoogleOAuthRedirectURI)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("expected trimmed origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.CalendarRequestTimeout != 10*time.Second {
		t.Fatalf("expected timeout override, got %s", cfg.CalendarRequestTimeout)
	}
}
