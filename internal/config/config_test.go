package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.SchedulerInterval != 30*time.Second {
		t.Errorf("expected 30s scheduler interval, got %v", cfg.SchedulerInterval)
	}
	if cfg.CallProbability != 0.3 {
		t.Errorf("expected call probability 0.3, got %v", cfg.CallProbability)
	}
	if cfg.AutoRejectSeconds != 15 {
		t.Errorf("expected 15s auto-reject window, got %d", cfg.AutoRejectSeconds)
	}
	if cfg.ListenChannel != "call_requests" {
		t.Errorf("expected call_requests channel, got %s", cfg.ListenChannel)
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("expected empty database URL by default, got %s", cfg.DatabaseURL)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SCHEDULER_INTERVAL", "5")
	t.Setenv("CALL_PROBABILITY", "0.75")
	t.Setenv("AUTO_REJECT_SECONDS", "20")
	t.Setenv("ALLOWED_ORIGINS", "http://a.example , http://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.SchedulerInterval != 5*time.Second {
		t.Errorf("expected 5s interval, got %v", cfg.SchedulerInterval)
	}
	if cfg.CallProbability != 0.75 {
		t.Errorf("expected probability 0.75, got %v", cfg.CallProbability)
	}
	if cfg.AutoRejectSeconds != 20 {
		t.Errorf("expected 20s window, got %d", cfg.AutoRejectSeconds)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.example" {
		t.Errorf("expected trimmed origins, got %v", cfg.AllowedOrigins)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	cases := []struct {
		key, value string
	}{
		{"SCHEDULER_INTERVAL", "soon"},
		{"CALL_PROBABILITY", "maybe"},
		{"CALL_PROBABILITY", "1.5"},
		{"AUTO_REJECT_SECONDS", "0"},
		{"AUTO_REJECT_SECONDS", "never"},
		{"WS_READ_TIMEOUT", "long"},
	}

	for _, tc := range cases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", tc.key, tc.value)
			}
		})
	}
}

func TestWebSocketConstants(t *testing.T) {
	clearEnv(t)
	t.Setenv("WS_READ_TIMEOUT", "40")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.PongWait != 40*time.Second {
		t.Errorf("expected pong wait 40s, got %v", cfg.PongWait)
	}
	if cfg.PingPeriod >= cfg.PongWait {
		t.Errorf("ping period %v must be less than pong wait %v", cfg.PingPeriod, cfg.PongWait)
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ALLOWED_ORIGINS", "LOG_LEVEL",
		"WS_READ_TIMEOUT", "WS_WRITE_TIMEOUT",
		"SCHEDULER_INTERVAL", "CALL_PROBABILITY", "AUTO_REJECT_SECONDS",
		"DATABASE_URL", "LISTEN_CHANNEL", "OPERATOR_ID",
	} {
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset %s: %v", key, err)
		}
	}
}
