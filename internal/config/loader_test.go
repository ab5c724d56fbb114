package config

// Test Plan:
// 1. No config file: defaults apply
// 2. A config file overrides defaults, untouched keys keep defaults
// 3. Environment variables override the file
// 4. An invalid file value fails validation at load time

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, rootDir, content string) {
	t.Helper()
	configDir := filepath.Join(rootDir, ".prism")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0o644))
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfigFromDir(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	t.Parallel()

	rootDir := t.TempDir()
	writeConfigFile(t, rootDir, `
parser:
  timeout_ms: 250
  python_backend: native
symbols:
  orphan_policy: drop
`)

	cfg, err := LoadConfigFromDir(rootDir)
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.Parser.TimeoutMs)
	assert.Equal(t, PythonNative, cfg.Parser.PythonBackend)
	assert.Equal(t, OrphanDrop, cfg.Symbols.OrphanPolicy)

	// Untouched keys keep their defaults.
	assert.Equal(t, 1000, cfg.Parser.KillGraceMs)
	assert.True(t, cfg.Cache.Enabled)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	rootDir := t.TempDir()
	writeConfigFile(t, rootDir, "parser:\n  timeout_ms: 250\n")

	t.Setenv("PRISM_PARSER_TIMEOUT_MS", "750")

	cfg, err := LoadConfigFromDir(rootDir)
	require.NoError(t, err)
	assert.Equal(t, 750, cfg.Parser.TimeoutMs)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	t.Parallel()

	rootDir := t.TempDir()
	writeConfigFile(t, rootDir, "symbols:\n  orphan_policy: adopt\n")

	_, err := LoadConfigFromDir(rootDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orphan_policy")
}
