// Package constants defines shared constants used throughout pocketvault.
package constants

import (
	"os"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variables read at startup.
const (
	EnvironmentEnvVar     = "ENVIRONMENT"
	LocaleEnvVar          = "POCKETVAULT_LOCALE"
	LogLevelEnvVar        = "POCKETVAULT_LOG_LEVEL"
	LogPathEnvVar         = "POCKETVAULT_LOG_PATH"
	PreferencesPathEnvVar = "POCKETVAULT_PREFS_PATH"
	ThemeKeyEnvVar        = "POCKETVAULT_THEME_KEY"
)

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv(EnvironmentEnvVar) == Development
}

// DefaultShutdownTimeout bounds how long Close waits for pending
// preference writes.
const DefaultShutdownTimeout = 2 * time.Second
