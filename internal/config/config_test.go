package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_PATH", "JWT_EXPIRES_DAYS", "APP_ENV"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.Port != "3001" {
		t.Errorf("Port = %q, want 3001", cfg.Port)
	}
	if cfg.JWTExpiresDays != 14 {
		t.Errorf("JWTExpiresDays = %d, want 14", cfg.JWTExpiresDays)
	}
	if cfg.Production {
		t.Error("Production should default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_EXPIRES_DAYS", "30")
	t.Setenv("APP_ENV", "production")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.JWTExpiresDays != 30 {
		t.Errorf("JWTExpiresDays = %d, want 30", cfg.JWTExpiresDays)
	}
	if !cfg.Production {
		t.Error("Production not set from APP_ENV")
	}
}

func TestLoadIgnoresBadInt(t *testing.T) {
	t.Setenv("JWT_EXPIRES_DAYS", "soon")
	if got := Load().JWTExpiresDays; got != 14 {
		t.Errorf("JWTExpiresDays = %d, want default 14", got)
	}
}
