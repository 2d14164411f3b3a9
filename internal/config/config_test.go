package config

import (
	"os"
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	for _, k := range []string{"DB_PATH", "SERVER_PORT", "LOG_LEVEL", "GAME_CONFIG_PATH", "STAMINA_RESTORE_INTERVAL", "STAMINA_RESTORE_AMOUNT", "STORE_RETRY_ATTEMPTS", "STORE_RETRY_BASE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.DBPath != "arena.db" || cfg.ServerPort != "8080" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.StaminaRestoreInterval != 30*time.Minute || cfg.StaminaRestoreAmount != 5 {
		t.Fatalf("restore = %s/%d, want 30m/5", cfg.StaminaRestoreInterval, cfg.StaminaRestoreAmount)
	}
	if cfg.StoreRetryAttempts != 3 || cfg.StoreRetryBase != 50*time.Millisecond {
		t.Fatalf("retry = %d/%s, want 3/50ms", cfg.StoreRetryAttempts, cfg.StoreRetryBase)
	}
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("DB_PATH", "/tmp/x.db")
	t.Setenv("STAMINA_RESTORE_INTERVAL", "5m")
	t.Setenv("STORE_RETRY_ATTEMPTS", "7")

	cfg, err := parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.DBPath != "/tmp/x.db" || cfg.StaminaRestoreInterval != 5*time.Minute || cfg.StoreRetryAttempts != 7 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	t.Setenv("STAMINA_RESTORE_INTERVAL", "0s")
	if _, err := parse(); err == nil {
		t.Fatal("expected error for zero interval")
	}

	t.Setenv("STAMINA_RESTORE_INTERVAL", "soon")
	if _, err := parse(); err == nil {
		t.Fatal("expected error for unparsable interval")
	}
}
