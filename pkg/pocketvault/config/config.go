// Package config loads pocketvault's startup settings from a TOML file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/pocketvault/pocketvault/pkg/pocketvault/constants"
	"github.com/pocketvault/pocketvault/pkg/pocketvault/internal"
	"github.com/pocketvault/pocketvault/pkg/pocketvault/storage"
	"github.com/pocketvault/pocketvault/pkg/pocketvault/theme"
)

// Config captures startup settings.
type Config struct {
	Locale          string `toml:"locale"`           // BCP 47 or POSIX locale; empty uses $LANG
	LogLevel        string `toml:"log_level"`        // debug, info, warn or error
	LogPath         string `toml:"log_path"`         // Rotated log file; empty logs to stderr only
	PreferencesPath string `toml:"preferences_path"` // Key-value file holding the saved theme mode
	ThemeKey        string `toml:"theme_key"`        // Key of the saved theme mode
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Locale:          os.Getenv("LANG"),
		LogLevel:        "info",
		PreferencesPath: storage.DefaultPath(),
		ThemeKey:        theme.DefaultKey,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/pocketvault/config.toml, or the
// platform equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "pocketvault", "config.toml")
}

// Load reads path, falling back to defaults when it does not exist, then
// applies environment overrides and validates the result. An empty path
// uses DefaultPath.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		applyEnvOverrides(&cfg)
		return cfg, validate(cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return Config{}, fmt.Errorf("%w (file %s)", err, path)
	}
	return cfg, nil
}

// LoadFromReader decodes TOML from r over the defaults, then applies
// environment overrides and validates the result.
func LoadFromReader(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config: unknown setting %q", undecoded[0].String())
	}

	applyEnvOverrides(&cfg)
	return cfg, validate(cfg)
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := os.LookupEnv(constants.LocaleEnvVar); ok {
		cfg.Locale = v
	}
	if v, ok := os.LookupEnv(constants.LogLevelEnvVar); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(constants.LogPathEnvVar); ok {
		cfg.LogPath = v
	}
	if v, ok := os.LookupEnv(constants.PreferencesPathEnvVar); ok {
		cfg.PreferencesPath = v
	}
	if v, ok := os.LookupEnv(constants.ThemeKeyEnvVar); ok {
		cfg.ThemeKey = v
	}
}

func validate(cfg Config) error {
	if _, ok := internal.ParseLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("config: log level %q must be one of debug, info, warn, error", cfg.LogLevel)
	}
	if strings.TrimSpace(cfg.ThemeKey) == "" {
		return fmt.Errorf("config: theme key must not be empty")
	}
	if cfg.PreferencesPath != "" && filepath.Clean(cfg.PreferencesPath) == "." {
		return fmt.Errorf("config: preferences path must not resolve to the current directory")
	}
	return nil
}
