// Package paths resolves configuration, definitions, and cache
// directory locations for the propkit CLI.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// CWD-relative directory name used when no definitions override is active.
const DefaultDefinitionsDirName = "definitions"

// Environment variable names for directory overrides.
const (
	EnvConfigDir      = "PROPKIT_CONFIG_DIR"
	EnvDefinitionsDir = "PROPKIT_DEFINITIONS_DIR"
	EnvCacheDir       = "PROPKIT_CACHE_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/propkit (fallback ~/.config/propkit)
// macOS:   ~/Library/Application Support/propkit
// Windows: %APPDATA%/propkit
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "propkit"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "propkit"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "propkit"), nil
	}
}

// DefaultCacheDir returns the platform-specific default cache directory.
//
// Linux:   $XDG_DATA_HOME/propkit (fallback ~/.local/share/propkit)
// macOS:   ~/Library/Application Support/propkit
// Windows: %APPDATA%/propkit
func DefaultCacheDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, "propkit"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share", "propkit"), nil
	default:
		// macOS and Windows: same as config dir.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "propkit"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > PROPKIT_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDefinitionsDir returns the definitions directory following the
// precedence chain: flag > config.yaml value > PROPKIT_DEFINITIONS_DIR
// env > $(CWD)/definitions.
func ResolveDefinitionsDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDefinitionsDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDefinitionsDirName), nil
}

// ResolveCacheDir returns the cache directory following the precedence
// chain: config.yaml value > PROPKIT_CACHE_DIR env > DefaultCacheDir().
func ResolveCacheDir(configYAMLValue string) (string, error) {
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvCacheDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultCacheDir()
}
