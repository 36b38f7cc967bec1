package main

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestDirExists(t *testing.T) {
	dir := t.TempDir()
	if !dirExists(dir) {
		t.Errorf("Expected dirExists to return true for existing dir")
	}
	if dirExists(dir + "-notfound") {
		t.Errorf("Expected dirExists to return false for non-existent dir")
	}
}

func TestFormatUptime(t *testing.T) {
	cases := []struct {
		dur      time.Duration
		expected string
	}{
		{time.Second * 5, "5 seconds"},
		{time.Second * 65, "1 minute, 5 seconds"},
		{time.Second * 3665, "1 hour, 1 minute, 5 seconds"},
		{time.Second * 3600, "1 hour, 0 minutes, 0 seconds"},
		{time.Second * 60, "1 minute, 0 seconds"},
		{time.Second * 1, "1 second"},
	}
	for _, c := range cases {
		got := formatUptime(c.dur)
		if got != c.expected {
			t.Errorf("formatUptime(%v) = %q, want %q", c.dur, got, c.expected)
		}
	}
}

func TestPlural(t *testing.T) {
	if plural(1) != "" {
		t.Errorf("plural(1) = %q, want \"\"", plural(1))
	}
	if plural(2) != "s" {
		t.Errorf("plural(2) = %q, want \"s\"", plural(2))
	}
	if plural(0) != "s" {
		t.Errorf("plural(0) = %q, want \"s\"", plural(0))
	}
}

func TestGetEnvDuration(t *testing.T) {
	os.Setenv("TEST_DURATION", "2s")
	defer os.Unsetenv("TEST_DURATION")
	if got := getEnvDuration("TEST_DURATION", time.Second); got != 2*time.Second {
		t.Errorf("getEnvDuration = %v, want 2s", got)
	}
	os.Setenv("TEST_DURATION", "notaduration")
	if got := getEnvDuration("TEST_DURATION", 3*time.Second); got != 3*time.Second {
		t.Errorf("getEnvDuration fallback = %v, want 3s", got)
	}
	os.Unsetenv("TEST_DURATION")
	if got := getEnvDuration("TEST_DURATION", 4*time.Second); got != 4*time.Second {
		t.Errorf("getEnvDuration fallback unset = %v, want 4s", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	os.Setenv("TEST_INT", "42")
	defer os.Unsetenv("TEST_INT")
	if got := getEnvInt("TEST_INT", 7); got != 42 {
		t.Errorf("getEnvInt = %d, want 42", got)
	}
	os.Setenv("TEST_INT", "notanint")
	if got := getEnvInt("TEST_INT", 8); got != 8 {
		t.Errorf("getEnvInt fallback = %d, want 8", got)
	}
	os.Unsetenv("TEST_INT")
	if got := getEnvInt("TEST_INT", 9); got != 9 {
		t.Errorf("getEnvInt fallback unset = %d, want 9", got)
	}
}

func TestGetEnvDuration_RejectsNonPositive(t *testing.T) {
	t.Setenv("TEST_DURATION", "-5s")
	if got := getEnvDuration("TEST_DURATION", time.Second); got != time.Second {
		t.Errorf("getEnvDuration negative = %v, want 1s", got)
	}
}

func TestGetEnvString(t *testing.T) {
	t.Setenv("TEST_STRING", "  sqlite ")
	if got := getEnvString("TEST_STRING", "file"); got != "sqlite" {
		t.Errorf("getEnvString = %q, want sqlite", got)
	}
	t.Setenv("TEST_STRING", "   ")
	if got := getEnvString("TEST_STRING", "file"); got != "file" {
		t.Errorf("getEnvString blank = %q, want file", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	cases := []struct {
		val      string
		fallback bool
		want     bool
	}{
		{"", true, true},
		{"false", true, false},
		{"1", false, true},
		{"maybe", true, true},
	}
	for _, c := range cases {
		t.Setenv("TEST_BOOL", c.val)
		if got := getEnvBool("TEST_BOOL", c.fallback); got != c.want {
			t.Errorf("getEnvBool(%q, %v) = %v, want %v", c.val, c.fallback, got, c.want)
		}
	}
}

func TestRequestID(t *testing.T) {
	if got := requestID(context.Background()); got != "-" {
		t.Errorf("requestID without value = %q", got)
	}
	ctx := context.WithValue(context.Background(), requestIDKey, "abc")
	if got := requestID(ctx); got != "abc" {
		t.Errorf("requestID = %q, want abc", got)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("LEADERBOARD_BACKEND", "SQLite")
	t.Setenv("TICK_INTERVAL", "250ms")
	t.Setenv("LEADERBOARD_SEED", "false")
	t.Setenv("PORT", "")

	cfg := loadConfig()
	if !cfg.IsProduction || cfg.LeaderboardStore != BackendSQLite || cfg.SeedLeaderboard {
		t.Errorf("loadConfig = %+v", cfg)
	}
	if cfg.TickInterval != 250*time.Millisecond || cfg.AdvanceDelay != 1500*time.Millisecond {
		t.Errorf("timing = %v / %v", cfg.TickInterval, cfg.AdvanceDelay)
	}
	if cfg.Port != "8080" || cfg.RateLimitBurst != 10 {
		t.Errorf("defaults = port %q burst %d", cfg.Port, cfg.RateLimitBurst)
	}
}
