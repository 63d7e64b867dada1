package main

import (
	"log/slog"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"8", slog.LevelError},
	}

	for _, tc := range cases {
		got, err := parseLogLevel(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("parse %q: expected %v, got %v", tc.in, tc.want, got)
		}
	}
}

func TestParseLogLevelInvalid(t *testing.T) {
	if _, err := parseLogLevel("loud"); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestSelectedLogLevelPrecedence(t *testing.T) {
	level, source := selectedLogLevel("debug", "warn", "error")
	if level != "debug" || source != "flag" {
		t.Fatalf("expected flag to win, got %q from %q", level, source)
	}

	level, source = selectedLogLevel("", "warn", "error")
	if level != "warn" || source != "env" {
		t.Fatalf("expected env to win, got %q from %q", level, source)
	}

	level, source = selectedLogLevel("", "", "error")
	if level != "error" || source != "config" {
		t.Fatalf("expected config to win, got %q from %q", level, source)
	}

	level, source = selectedLogLevel("", "", "")
	if level != "" || source != "default" {
		t.Fatalf("expected default, got %q from %q", level, source)
	}
}

func TestConfigureLoggerForCLIInvalidFlag(t *testing.T) {
	if _, err := configureLoggerForCLI("loud", ""); err == nil {
		t.Fatal("expected error for invalid flag level")
	}
}

func TestConfigureLoggerForCLIInvalidEnvWarns(t *testing.T) {
	t.Setenv("INVOICER_LOG_LEVEL", "loud")

	warning, err := configureLoggerForCLI("", "")
	if err != nil {
		t.Fatalf("env level must not hard-fail: %v", err)
	}
	if !strings.Contains(warning, "INVOICER_LOG_LEVEL") {
		t.Fatalf("expected warning naming the env var, got %q", warning)
	}
}
