package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mind-engage/pizzaquiz/internal/config"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := config.FromEnv()
	if cfg.HTTPAddr != ":8080" || cfg.StoreDriver != "file" || cfg.IdentityCookie != "user_id" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.QuizReadyViews != 3 || cfg.ResetPolicy != config.ResetRetain {
		t.Errorf("unexpected quiz defaults: %+v", cfg)
	}
	if cfg.PruneInterval != time.Hour || cfg.RetentionIdleTTL != 0 {
		t.Errorf("unexpected retention defaults: %v %v", cfg.PruneInterval, cfg.RetentionIdleTTL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "FILE")
	t.Setenv("RESET_POLICY", "delete")
	t.Setenv("RETENTION_IDLE_TTL", "720h")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("QUIZ_READY_VIEWS", "5")

	cfg := config.FromEnv()
	if cfg.StoreDriver != "file" || cfg.ResetPolicy != config.ResetDelete {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.RetentionIdleTTL != 720*time.Hour || cfg.QuizReadyViews != 5 {
		t.Errorf("typed overrides not applied: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("cors origins: %v", cfg.CORSOrigins)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PIZZAQUIZ_TEST_ONLY=1\nIDENTITY_COOKIE=pq\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("IDENTITY_COOKIE", "")
	os.Unsetenv("IDENTITY_COOKIE")
	t.Cleanup(func() { os.Unsetenv("PIZZAQUIZ_TEST_ONLY") })

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.IdentityCookie != "pq" {
		t.Errorf("env file not applied: %q", cfg.IdentityCookie)
	}

	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("missing env file should be ignored: %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("RESET_POLICY", "shred")
	if _, err := config.Load(""); err == nil {
		t.Error("expected invalid reset policy to fail")
	}
}
