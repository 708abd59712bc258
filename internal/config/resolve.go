package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Environment variables that override file configuration.
const (
	EnvHost            = "HEARTH_HOST"
	EnvPort            = "HEARTH_PORT"
	EnvShutdownTimeout = "HEARTH_SHUTDOWN_TIMEOUT"
	EnvDBDriver        = "HEARTH_DB_DRIVER"
	EnvDBPath          = "HEARTH_DB_PATH"
	EnvDatabaseURL     = "HEARTH_DATABASE_URL"
	EnvLogLevel        = "HEARTH_LOG_LEVEL"
	EnvLogFormat       = "HEARTH_LOG_FORMAT"
	EnvMember          = "HEARTH_MEMBER"
	EnvFamily          = "HEARTH_FAMILY"
	EnvRole            = "HEARTH_ROLE"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	// DefaultDBFileName is the SQLite file created under the global config dir.
	DefaultDBFileName = "hearth.db"

	DefaultShutdownTimeout = 10 * time.Second
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ServerConfig is the resolved configuration of `hearth serve`.
type ServerConfig struct {
	Host            string        `validate:"required"`
	Port            int           `validate:"gte=1,lte=65535"`
	ShutdownTimeout time.Duration `validate:"required"`
	Database        DatabaseConfig
	Log             LogConfig
}

// DatabaseConfig selects the storage backend.
type DatabaseConfig struct {
	Driver string `validate:"oneof=sqlite postgres"`
	Path   string `validate:"required_if=Driver sqlite"`
	URL    string `validate:"required_if=Driver postgres"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `validate:"oneof=debug info warn error"`
	Format string `validate:"oneof=json console"`
}

// Addr returns the listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ClientConfig is the resolved configuration of the CLI commands.
// Precedence order (highest to lowest):
// 1. HEARTH_* environment variables (including a .env file)
// 2. Project config (hearth.toml)
// 3. Global config (~/.hearth/config.toml)
// 4. Built-in defaults (localhost:7432)
type ClientConfig struct {
	ServerHost string
	ServerPort int
	Identity   IdentityConfig
}

// BaseURL returns the server's base URL.
func (c *ClientConfig) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", c.ServerHost, c.ServerPort)
}

// env reads variables from the process environment, falling back to a
// .env file. Process variables win.
type env struct {
	dotenv map[string]string
}

func loadEnv(dir string) (env, error) {
	values, err := godotenv.Read(filepath.Join(dir, ".env"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return env{}, nil
		}
		return env{}, fmt.Errorf("failed to read .env: %w", err)
	}
	return env{dotenv: values}, nil
}

func (e env) get(key string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return e.dotenv[key]
}

// ResolveServer builds the server configuration for a process started in
// workDir, using homeDir for the global config and the default database
// location.
func ResolveServer(workDir, homeDir string) (*ServerConfig, error) {
	globalCfg, err := LoadGlobalConfigFromDir(homeDir)
	if err != nil {
		return nil, err
	}

	cfg := &ServerConfig{
		Host:            DefaultServerHost,
		Port:            DefaultServerPort,
		ShutdownTimeout: DefaultShutdownTimeout,
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			Path:   filepath.Join(homeDir, GlobalConfigDir, DefaultDBFileName),
		},
		Log: LogConfig{Level: "info", Format: "json"},
	}

	// Apply global config (overrides defaults)
	if globalCfg.ServerHost != "" {
		cfg.Host = globalCfg.ServerHost
	}
	if globalCfg.ServerPort != 0 {
		cfg.Port = globalCfg.ServerPort
	}

	// Apply project config (overrides global and defaults)
	path, err := DiscoverProjectConfig(workDir)
	if err != nil {
		return nil, err
	}
	if path != "" {
		raw, err := parseProjectConfig(path)
		if err != nil {
			return nil, err
		}
		if err := applyProjectFile(cfg, raw, filepath.Dir(path)); err != nil {
			return nil, err
		}
	}

	e, err := loadEnv(workDir)
	if err != nil {
		return nil, err
	}
	if err := applyServerEnv(cfg, e); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyProjectFile(cfg *ServerConfig, raw *projectConfigFile, baseDir string) error {
	if raw.Server.Host != "" {
		cfg.Host = raw.Server.Host
	}
	if raw.Server.Port != nil {
		cfg.Port = *raw.Server.Port
	}
	if raw.Server.ShutdownTimeout != "" {
		d, err := time.ParseDuration(raw.Server.ShutdownTimeout)
		if err != nil {
			return fmt.Errorf("invalid shutdown_timeout %q: %w", raw.Server.ShutdownTimeout, err)
		}
		cfg.ShutdownTimeout = d
	}
	if raw.Database.Driver != "" {
		cfg.Database.Driver = raw.Database.Driver
	}
	if raw.Database.Path != "" {
		// Relative database paths are relative to the config file.
		p := raw.Database.Path
		if !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, p)
		}
		cfg.Database.Path = p
	}
	if raw.Database.URL != "" {
		cfg.Database.URL = raw.Database.URL
	}
	if raw.Log.Level != "" {
		cfg.Log.Level = raw.Log.Level
	}
	if raw.Log.Format != "" {
		cfg.Log.Format = raw.Log.Format
	}
	return nil
}

func applyServerEnv(cfg *ServerConfig, e env) error {
	if v := e.get(EnvHost); v != "" {
		cfg.Host = v
	}
	if v := e.get(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		cfg.Port = port
	}
	if v := e.get(EnvShutdownTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvShutdownTimeout, v, err)
		}
		cfg.ShutdownTimeout = d
	}
	if v := e.get(EnvDBDriver); v != "" {
		cfg.Database.Driver = v
	}
	if v := e.get(EnvDBPath); v != "" {
		cfg.Database.Path = v
	}
	if v := e.get(EnvDatabaseURL); v != "" {
		cfg.Database.URL = v
	}
	if v := e.get(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := e.get(EnvLogFormat); v != "" {
		cfg.Log.Format = v
	}
	return nil
}

// ResolveServerConfig resolves the server configuration from the current
// directory and the user's home.
func ResolveServerConfig() (*ServerConfig, error) {
	workDir, homeDir, err := dirs()
	if err != nil {
		return nil, err
	}
	return ResolveServer(workDir, homeDir)
}

// ResolveClient builds the CLI configuration for workDir and homeDir.
func ResolveClient(workDir, homeDir string) (*ClientConfig, error) {
	globalCfg, err := LoadGlobalConfigFromDir(homeDir)
	if err != nil {
		return nil, err
	}

	resolved := &ClientConfig{
		ServerHost: DefaultServerHost,
		ServerPort: DefaultServerPort,
		Identity:   globalCfg.Identity,
	}

	// Apply global config (overrides defaults)
	if globalCfg.ServerHost != "" {
		resolved.ServerHost = globalCfg.ServerHost
	}
	if globalCfg.ServerPort != 0 {
		resolved.ServerPort = globalCfg.ServerPort
	}

	// Apply project config (overrides global and defaults, only if explicitly set)
	path, err := DiscoverProjectConfig(workDir)
	if err != nil {
		return nil, err
	}
	if path != "" {
		raw, err := parseProjectConfig(path)
		if err != nil {
			return nil, err
		}
		if raw.Server.Host != "" {
			resolved.ServerHost = raw.Server.Host
		}
		if raw.Server.Port != nil {
			resolved.ServerPort = *raw.Server.Port
		}
	}

	e, err := loadEnv(workDir)
	if err != nil {
		return nil, err
	}
	if v := e.get(EnvHost); v != "" {
		resolved.ServerHost = v
	}
	if v := e.get(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		if err := validatePort(port); err != nil {
			return nil, err
		}
		resolved.ServerPort = port
	}
	if v := e.get(EnvMember); v != "" {
		resolved.Identity.Member = v
	}
	if v := e.get(EnvFamily); v != "" {
		resolved.Identity.Family = v
	}
	if v := e.get(EnvRole); v != "" {
		resolved.Identity.Role = v
	}

	return resolved, nil
}

// ResolveClientConfig resolves the CLI configuration from the current
// directory and the user's home.
func ResolveClientConfig() (*ClientConfig, error) {
	workDir, homeDir, err := dirs()
	if err != nil {
		return nil, err
	}
	return ResolveClient(workDir, homeDir)
}

func dirs() (string, string, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return "", "", fmt.Errorf("failed to get current directory: %w", err)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return workDir, homeDir, nil
}
