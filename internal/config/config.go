package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Remote drivers
const (
	DriverHTTP   = "http"
	DriverMemory = "memory"
)

// Config holds all application configuration
type Config struct {
	Remote  RemoteConfig  `mapstructure:"remote"`
	Session SessionConfig `mapstructure:"session"`
	Memory  MemoryConfig  `mapstructure:"memory"`
	Receipt ReceiptConfig `mapstructure:"receipt"`
	Export  ExportConfig  `mapstructure:"export"`
	Logger  LoggerConfig  `mapstructure:"logger"`
}

// RemoteConfig selects and configures the backend
type RemoteConfig struct {
	Driver  string        `mapstructure:"driver"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SessionConfig holds the session store location; an empty path keeps
// the session in memory for the life of the process
type SessionConfig struct {
	Path string `mapstructure:"path"`
}

// MemoryConfig configures the in-process backend
type MemoryConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret"`
	TokenDuration time.Duration `mapstructure:"token_duration"`
	Seed          bool          `mapstructure:"seed"`
}

// ReceiptConfig controls how receipt files are loaded
type ReceiptConfig struct {
	BaseDir string `mapstructure:"base_dir"`
	MaxSize int64  `mapstructure:"max_size"`
}

// ExportConfig holds dashboard export settings
type ExportConfig struct {
	OutputDir string `mapstructure:"output_dir"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load reads configuration from an optional YAML file, a .env file in the
// working directory and the environment, in increasing precedence.
func Load(configPath string) (*Config, error) {
	if err := gotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	bindEnvVars(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		// a missing file leaves defaults and environment in place
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("remote.driver", DriverMemory)
	v.SetDefault("remote.base_url", "http://localhost:5678")
	v.SetDefault("remote.timeout", 30*time.Second)

	v.SetDefault("session.path", "data/session.db")

	v.SetDefault("memory.jwt_secret", "billed-local-secret")
	v.SetDefault("memory.token_duration", 24*time.Hour)
	v.SetDefault("memory.seed", true)

	v.SetDefault("receipt.max_size", 10<<20)

	v.SetDefault("export.output_dir", "exports")

	// stdout carries command output
	v.SetDefault("logger.level", "warn")
	v.SetDefault("logger.output_path", "stderr")
	v.SetDefault("logger.format", "console")
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("remote.driver", "BILLED_REMOTE_DRIVER")
	_ = v.BindEnv("remote.base_url", "BILLED_REMOTE_BASE_URL")
	_ = v.BindEnv("session.path", "BILLED_SESSION_PATH")
	_ = v.BindEnv("memory.jwt_secret", "BILLED_JWT_SECRET")
	_ = v.BindEnv("logger.level", "BILLED_LOG_LEVEL")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Remote.Driver {
	case DriverHTTP:
		if c.Remote.BaseURL == "" {
			return fmt.Errorf("remote.base_url is required for the http driver")
		}
		if !strings.HasPrefix(c.Remote.BaseURL, "http://") && !strings.HasPrefix(c.Remote.BaseURL, "https://") {
			return fmt.Errorf("remote.base_url must be an http(s) URL: %s", c.Remote.BaseURL)
		}
	case DriverMemory:
		if c.Memory.JWTSecret == "" {
			return fmt.Errorf("memory.jwt_secret is required for the memory driver")
		}
	default:
		return fmt.Errorf("remote.driver must be %q or %q, got %q", DriverHTTP, DriverMemory, c.Remote.Driver)
	}

	if c.Remote.Timeout < 0 {
		return fmt.Errorf("remote.timeout must not be negative")
	}
	if c.Receipt.MaxSize < 0 {
		return fmt.Errorf("receipt.max_size must not be negative")
	}
	if c.Export.OutputDir == "" {
		return fmt.Errorf("export.output_dir is required")
	}

	switch c.Logger.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logger.format must be json or console, got %q", c.Logger.Format)
	}

	return nil
}
