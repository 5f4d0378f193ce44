package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Store.Backend != BackendFile || cfg.Session.Key != "stockflow.user" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Nav.LabelSet != "workspace" || cfg.Audit.Workers != 2 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected shutdown timeout %v", cfg.ShutdownTimeout)
	}
	if cfg.Production() {
		t.Fatalf("default env must not be production")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("NAV_LABEL_SET", "classic")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" || !cfg.Production() {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Store.Backend != BackendRedis || cfg.Redis.DB != 3 || cfg.Session.Secret != "s3cret" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Nav.LabelSet != "classic" {
		t.Fatalf("unexpected label set %q", cfg.Nav.LabelSet)
	}
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "etcd")
	if _, err := Load(context.Background()); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stockflow.env")
	if err := os.WriteFile(path, []byte("NAV_LABEL_SET=classic\nPORT=7070\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("PORT", "9090")
	// registered with t.Setenv so the variable is restored after the test
	t.Setenv("NAV_LABEL_SET", "")
	os.Unsetenv("NAV_LABEL_SET")

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile: %v", err)
	}
	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Nav.LabelSet != "classic" {
		t.Fatalf("expected label set from file, got %q", cfg.Nav.LabelSet)
	}
	if cfg.Port != "9090" {
		t.Fatalf("existing variables must win, got port %q", cfg.Port)
	}
}

func TestLoadEnvFile_Missing(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	if err := LoadEnvFile(""); err != nil {
		t.Fatalf("missing default file must be ignored: %v", err)
	}
	if err := LoadEnvFile("does-not-exist.env"); err == nil {
		t.Fatalf("missing explicit file must fail")
	}
}
