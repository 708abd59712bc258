package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// GlobalConfigDir is the name of the global config directory in home
	GlobalConfigDir = ".hearth"

	// GlobalConfigFileName is the name of the global config file
	GlobalConfigFileName = "config.toml"
)

// GlobalConfig represents the user-level configuration from ~/.hearth/config.toml
type GlobalConfig struct {
	ServerHost string
	ServerPort int
	Identity   IdentityConfig
}

// IdentityConfig names the member the CLI acts as.
type IdentityConfig struct {
	Member string `toml:"member"`
	Family string `toml:"family"`
	Role   string `toml:"role"`
}

// globalConfigFile represents the raw TOML structure for global config
type globalConfigFile struct {
	Server   serverSection  `toml:"server"`
	Identity IdentityConfig `toml:"identity"`
}

// LoadGlobalConfigFromDir loads global config using the specified directory as home.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfigFromDir(homeDir string) (*GlobalConfig, error) {
	configPath := filepath.Join(homeDir, GlobalConfigDir, GlobalConfigFileName)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &GlobalConfig{}, nil
	}

	var raw globalConfigFile
	if _, err := toml.DecodeFile(configPath, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse global config TOML: %w", err)
	}

	cfg := &GlobalConfig{
		ServerHost: raw.Server.Host,
		Identity:   raw.Identity,
	}

	if raw.Server.Port != nil {
		if err := validatePort(*raw.Server.Port); err != nil {
			return nil, err
		}
		cfg.ServerPort = *raw.Server.Port
	}

	return cfg, nil
}
