// Package config reads process settings from the environment and gameplay
// tuning from YAML files.
package config

import (
	"os"
	"strings"
)

// GetEnv returns the value of the environment variable named by key with
// surrounding whitespace removed, or fallback if the variable is not set.
// A variable set to an empty string counts as set, so it can switch a
// feature off (e.g. SSH_HOST_KEY="").
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return fallback
}
