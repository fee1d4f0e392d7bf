package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	Port int `env:"LOCALPAGES_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("LOCALPAGES_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestEnvOrDefault(t *testing.T) {
	t.Parallel()

	values := map[string]string{
		"BLANK": "   ",
		"SET":   "value",
	}
	lookup := func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}

	if got := EnvOrDefault(lookup, []string{"MISSING", "BLANK", "SET"}, "fallback"); got != "value" {
		t.Fatalf("got %q, want %q", got, "value")
	}
	if got := EnvOrDefault(lookup, []string{"MISSING"}, "fallback"); got != "fallback" {
		t.Fatalf("got %q, want %q", got, "fallback")
	}
	if got := EnvOrDefault(nil, []string{"SET"}, "fallback"); got != "fallback" {
		t.Fatalf("got %q, want %q", got, "fallback")
	}
}
