// Package paths resolves configuration and data directory locations.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/caarlos0/env/v11"
)

// appName names the per-user configuration and data directories.
const appName = "wordbook"

// DefaultDataDirName is the CWD-relative data directory used when nothing
// else is configured.
const DefaultDataDirName = ".wordbook-db"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "WORDBOOK_CONFIG_DIR"
	EnvDataDir   = "WORDBOOK_DATA_DIR"
)

// overrides holds directory overrides read from the environment.
type overrides struct {
	ConfigDir string `env:"WORDBOOK_CONFIG_DIR"`
	DataDir   string `env:"WORDBOOK_DATA_DIR"`
}

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

func loadOverrides() (overrides, error) {
	var o overrides
	if err := env.Parse(&o); err != nil {
		return overrides{}, fmt.Errorf("parse env: %w", err)
	}
	return o, nil
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/wordbook (fallback ~/.config/wordbook)
// macOS:   ~/Library/Application Support/wordbook
// Windows: %APPDATA%/wordbook
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appName), nil
	}
	// os.UserConfigDir is ~/Library/Application Support on macOS and
	// %APPDATA% on Windows.
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName), nil
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > WORDBOOK_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	o, err := loadOverrides()
	if err != nil {
		return "", err
	}
	if o.ConfigDir != "" {
		return filepath.Abs(o.ConfigDir)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > configYAMLValue > WORDBOOK_DATA_DIR env > $(CWD)/.wordbook-db.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	o, err := loadOverrides()
	if err != nil {
		return "", err
	}
	if o.DataDir != "" {
		return filepath.Abs(o.DataDir)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
