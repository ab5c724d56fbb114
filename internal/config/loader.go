package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{rootDir: rootDir}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (PRISM_*)
// 2. Config file (.prism/config.yml or .prism/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	configDir := filepath.Join(l.rootDir, ".prism")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("PRISM")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., PRISM_PARSER_TIMEOUT_MS)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("parser.timeout_ms")
	v.BindEnv("parser.kill_grace_ms")
	v.BindEnv("parser.python_backend")
	v.BindEnv("cache.enabled")
	v.BindEnv("cache.location")
	v.BindEnv("cache.memory_capacity")
	v.BindEnv("symbols.orphan_policy")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - defaults + env vars apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("parser.timeout_ms", defaults.Parser.TimeoutMs)
	v.SetDefault("parser.kill_grace_ms", defaults.Parser.KillGraceMs)
	v.SetDefault("parser.python_backend", defaults.Parser.PythonBackend)

	v.SetDefault("cache.enabled", defaults.Cache.Enabled)
	v.SetDefault("cache.location", defaults.Cache.Location)
	v.SetDefault("cache.memory_capacity", defaults.Cache.MemoryCapacity)

	v.SetDefault("symbols.orphan_policy", defaults.Symbols.OrphanPolicy)

	v.SetDefault("analyze.include", defaults.Analyze.Include)
	v.SetDefault("analyze.ignore", defaults.Analyze.Ignore)
}

// LoadConfig is a convenience function that creates a loader and loads config.
// It uses the current working directory as the root.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
