package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	for _, key := range []string{"SERVER_PORT", "PORT", "SWEEP_SCHEDULE", "SWEEP_PENDING_MAX_AGE_DAYS", "MAIL_RATE_LIMIT_PER_MINUTE", "REDIS_RATE_LIMIT_PREFIX", "MAIL_EVENT_EXCHANGE"} {
		unsetEnvWithCleanup(t, key)
	}

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort default: got %q", cfg.ServerPort)
	}
	if cfg.SweepSchedule != "0 3 * * *" {
		t.Errorf("SweepSchedule default: got %q", cfg.SweepSchedule)
	}
	if cfg.SweepPendingMaxAgeDays != 30 {
		t.Errorf("SweepPendingMaxAgeDays default: got %d", cfg.SweepPendingMaxAgeDays)
	}
	if cfg.MailRateLimitPerMinute != 5 {
		t.Errorf("MailRateLimitPerMinute default: got %d", cfg.MailRateLimitPerMinute)
	}
	if cfg.RedisRateLimitPrefix != "selewanto:rate_limit" {
		t.Errorf("RedisRateLimitPrefix default: got %q", cfg.RedisRateLimitPrefix)
	}
	if cfg.MailEventExchange != "selewanto.events" {
		t.Errorf("MailEventExchange default: got %q", cfg.MailEventExchange)
	}
}

func TestLoadConfig_PortOverridesServerPort(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	setEnvWithCleanup(t, "SERVER_PORT", "8080")
	setEnvWithCleanup(t, "PORT", "9999")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.ServerPort != "9999" {
		t.Fatalf("expected PORT to take precedence, got %q", cfg.ServerPort)
	}
}

func TestLoadConfig_ReadsEnvironment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	setEnvWithCleanup(t, "JWT_SECRET", "super-secret")
	setEnvWithCleanup(t, "DATABASE_URL", "postgres://localhost/selewanto")
	setEnvWithCleanup(t, "SWEEP_PENDING_MAX_AGE_DAYS", "7")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.JWTSecret != "super-secret" {
		t.Errorf("JWTSecret: got %q", cfg.JWTSecret)
	}
	if cfg.DatabaseURL != "postgres://localhost/selewanto" {
		t.Errorf("DatabaseURL: got %q", cfg.DatabaseURL)
	}
	if cfg.SweepPendingMaxAgeDays != 7 {
		t.Errorf("SweepPendingMaxAgeDays: got %d", cfg.SweepPendingMaxAgeDays)
	}
}

func setEnvWithCleanup(t *testing.T, key string, value string) {
	t.Helper()
	prev, hadPrev := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set env %s: %v", key, err)
	}
	t.Cleanup(func() {
		if hadPrev {
			_ = os.Setenv(key, prev)
			return
		}
		_ = os.Unsetenv(key)
	})
}

func unsetEnvWithCleanup(t *testing.T, key string) {
	t.Helper()
	prev, hadPrev := os.LookupEnv(key)
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("failed to unset env %s: %v", key, err)
	}
	t.Cleanup(func() {
		if hadPrev {
			_ = os.Setenv(key, prev)
			return
		}
		_ = os.Unsetenv(key)
	})
}
