// Package config defines prism configuration with defaults, validation, and
// viper-based loading from .prism/config.yaml plus environment overrides.
package config

import "fmt"

// Config is the complete prism configuration.
type Config struct {
	Parser  ParserConfig  `yaml:"parser" mapstructure:"parser"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Symbols SymbolsConfig `yaml:"symbols" mapstructure:"symbols"`
	Analyze AnalyzeConfig `yaml:"analyze" mapstructure:"analyze"`
}

// ParserConfig bounds the parser adapters.
type ParserConfig struct {
	// TimeoutMs bounds a single external parser invocation.
	TimeoutMs int `yaml:"timeout_ms" mapstructure:"timeout_ms"`
	// KillGraceMs is how long a graceful termination signal gets before
	// the process is force-killed.
	KillGraceMs int `yaml:"kill_grace_ms" mapstructure:"kill_grace_ms"`
	// PythonBackend selects "external" (embedded-python ast helper,
	// pre-extracted symbols) or "native" (tree-sitter grammar).
	PythonBackend string `yaml:"python_backend" mapstructure:"python_backend"`
}

// CacheConfig defines result cache behavior.
type CacheConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// Location overrides the default ~/.prism/cache.db path.
	Location string `yaml:"location" mapstructure:"location"`
	// MemoryCapacity bounds the in-memory front cache (entries).
	MemoryCapacity int `yaml:"memory_capacity" mapstructure:"memory_capacity"`
}

// SymbolsConfig tunes symbol extraction.
type SymbolsConfig struct {
	// OrphanPolicy decides what happens to a method with no enclosing
	// class: "promote" lifts it to the top level, "drop" discards it.
	OrphanPolicy string `yaml:"orphan_policy" mapstructure:"orphan_policy"`
}

// AnalyzeConfig defines which files batch analysis visits.
type AnalyzeConfig struct {
	Include []string `yaml:"include" mapstructure:"include"`
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`
}

// Orphan policies.
const (
	OrphanPromote = "promote"
	OrphanDrop    = "drop"
)

// Python backends.
const (
	PythonExternal = "external"
	PythonNative   = "native"
)

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Parser: ParserConfig{
			TimeoutMs:     5000,
			KillGraceMs:   1000,
			PythonBackend: PythonExternal,
		},
		Cache: CacheConfig{
			Enabled:        true,
			Location:       "",
			MemoryCapacity: 1024,
		},
		Symbols: SymbolsConfig{
			OrphanPolicy: OrphanPromote,
		},
		Analyze: AnalyzeConfig{
			Include: []string{
				"**/*.ts", "**/*.tsx", "**/*.js", "**/*.jsx",
				"**/*.py", "**/*.java", "**/*.rb", "**/*.rs",
				"**/*.c", "**/*.h", "**/*.php",
			},
			Ignore: []string{
				"node_modules/**", "vendor/**", ".git/**",
				"dist/**", "build/**", "target/**", "__pycache__/**",
			},
		},
	}
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Parser.TimeoutMs <= 0 {
		return fmt.Errorf("parser.timeout_ms must be positive, got %d", c.Parser.TimeoutMs)
	}
	if c.Parser.KillGraceMs <= 0 {
		return fmt.Errorf("parser.kill_grace_ms must be positive, got %d", c.Parser.KillGraceMs)
	}
	switch c.Parser.PythonBackend {
	case PythonExternal, PythonNative:
	default:
		return fmt.Errorf("parser.python_backend must be %q or %q, got %q",
			PythonExternal, PythonNative, c.Parser.PythonBackend)
	}
	switch c.Symbols.OrphanPolicy {
	case OrphanPromote, OrphanDrop:
	default:
		return fmt.Errorf("symbols.orphan_policy must be %q or %q, got %q",
			OrphanPromote, OrphanDrop, c.Symbols.OrphanPolicy)
	}
	if c.Cache.MemoryCapacity < 0 {
		return fmt.Errorf("cache.memory_capacity cannot be negative, got %d", c.Cache.MemoryCapacity)
	}
	return nil
}
