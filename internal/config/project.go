package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// ConfigFileName is the name of the server configuration file.
	ConfigFileName = "hearth.toml"

	// DefaultServerHost is the default server host
	DefaultServerHost = "localhost"

	// DefaultServerPort is the default server port
	DefaultServerPort = 7432
)

// projectConfigFile represents the raw TOML structure of hearth.toml.
type projectConfigFile struct {
	Server   serverSection   `toml:"server"`
	Database databaseSection `toml:"database"`
	Log      logSection      `toml:"log"`
}

// serverSection represents the [server] section in TOML
type serverSection struct {
	Host            string `toml:"host"`
	Port            *int   `toml:"port"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
}

// databaseSection represents the [database] section in TOML
type databaseSection struct {
	Driver string `toml:"driver"`
	Path   string `toml:"path"`
	URL    string `toml:"url"`
}

// logSection represents the [log] section in TOML
type logSection struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DiscoverProjectConfig finds hearth.toml by traversing up the directory tree
// from startDir. It returns an empty path and no error when none exists.
func DiscoverProjectConfig(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve directory: %w", err)
	}

	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}

// parseProjectConfig parses the hearth.toml file at the given path.
func parseProjectConfig(path string) (*projectConfigFile, error) {
	var raw projectConfigFile
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	// Validate port if explicitly specified in config
	if raw.Server.Port != nil {
		if err := validatePort(*raw.Server.Port); err != nil {
			return nil, err
		}
	}

	return &raw, nil
}

// validatePort checks if the port is in the valid range (1-65535)
func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", port)
	}
	return nil
}
