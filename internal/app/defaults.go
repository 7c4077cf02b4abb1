package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// Environment variables that override the default locations.
const (
	EnvConfigPath = "SBP_CONFIG_PATH" // config file (default ~/.config/sbp.toml)
	EnvHome       = "SBP_HOME"        // data directory (default ~/.local/share/sbp)
)

// Paths holds the locations sbp reads and writes outside the output folder.
type Paths struct {
	ConfigPath string
	BaseDir    string
	LogDir     string
}

// DefaultPaths resolves the config and data locations, preferring the
// SBP_CONFIG_PATH and SBP_HOME environment variables.
func DefaultPaths() (Paths, error) {
	configPath, err := envOrHome(EnvConfigPath, ".config", "sbp.toml")
	if err != nil {
		return Paths{}, err
	}
	baseDir, err := envOrHome(EnvHome, ".local", "share", "sbp")
	if err != nil {
		return Paths{}, err
	}

	return Paths{
		ConfigPath: configPath,
		BaseDir:    baseDir,
		LogDir:     filepath.Join(baseDir, "log"),
	}, nil
}

// envOrHome returns the value of env, or the path below the user's home
// directory when env is unset.
func envOrHome(env string, elem ...string) (string, error) {
	if path := os.Getenv(env); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(append([]string{homeDir}, elem...)...), nil
}
