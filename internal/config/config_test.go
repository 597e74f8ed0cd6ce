package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_DefaultsAndFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: "9090"
jwt:
  secret: file-secret
database:
  dbname: alumnet_test
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %q, want %q", cfg.Server.Port, "9090")
	}
	if cfg.Database.DBName != "alumnet_test" {
		t.Errorf("Database.DBName = %q, want %q", cfg.Database.DBName, "alumnet_test")
	}
	// Untouched fields keep their defaults
	if cfg.Database.Host != "localhost" {
		t.Errorf("Database.Host = %q, want default %q", cfg.Database.Host, "localhost")
	}
	if cfg.JWT.AccessTokenExpiration != "24h" {
		t.Errorf("JWT.AccessTokenExpiration = %q, want default %q", cfg.JWT.AccessTokenExpiration, "24h")
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("jwt:\n  secret: file-secret\n"), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DB_MAX_OPEN_CONNS", "33")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Server.Port != "7070" {
		t.Errorf("Server.Port = %q, want env override %q", cfg.Server.Port, "7070")
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Errorf("JWT.Secret = %q, want env override %q", cfg.JWT.Secret, "env-secret")
	}
	if cfg.Database.MaxOpenConns != 33 {
		t.Errorf("Database.MaxOpenConns = %d, want 33", cfg.Database.MaxOpenConns)
	}
}

func TestLoadConfig_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	dir := t.TempDir()
	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadConfig() without a JWT secret succeeded, want error")
	}
}

func TestGetAccessTokenDuration(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if got := cfg.GetAccessTokenDuration(); got != 24*time.Hour {
		t.Errorf("default duration = %v, want 24h", got)
	}

	cfg.JWT.AccessTokenExpiration = "90m"
	if got := cfg.GetAccessTokenDuration(); got != 90*time.Minute {
		t.Errorf("duration = %v, want 90m", got)
	}

	cfg.JWT.AccessTokenExpiration = "not-a-duration"
	if got := cfg.GetAccessTokenDuration(); got != 24*time.Hour {
		t.Errorf("fallback duration = %v, want 24h", got)
	}
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Database.User = "u"
	cfg.Database.Password = "p"
	cfg.Database.Host = "db"
	cfg.Database.Port = "5433"
	cfg.Database.DBName = "d"

	want := "postgres://u:p@db:5433/d?sslmode=disable"
	if got := cfg.GetPostgresConnectionString(); got != want {
		t.Errorf("GetPostgresConnectionString() = %q, want %q", got, want)
	}
}
