// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// EnvLookup returns the value for a key when present.
type EnvLookup func(string) (string, bool)

// EnvOrDefault returns the first non-blank value among keys, or fallback.
func EnvOrDefault(lookup EnvLookup, keys []string, fallback string) string {
	if lookup == nil {
		return fallback
	}
	for _, key := range keys {
		value, ok := lookup(key)
		if !ok {
			continue
		}
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

// Exitf writes a formatted message to stderr and exits with code 1. CLI entry
// points use it for fatal configuration failures.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
