package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStringArg(t *testing.T) {
	t.Parallel()

	t.Run("required string present", func(t *testing.T) {
		argsMap := map[string]interface{}{
			"file_path": "src/app.ts",
		}
		result, err := parseStringArg(argsMap, "file_path", true)
		require.NoError(t, err)
		assert.Equal(t, "src/app.ts", result)
	})

	t.Run("required string missing", func(t *testing.T) {
		argsMap := map[string]interface{}{}
		result, err := parseStringArg(argsMap, "file_path", true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "file_path parameter is required")
		assert.Empty(t, result)
	})

	t.Run("required string empty", func(t *testing.T) {
		argsMap := map[string]interface{}{
			"file_path": "",
		}
		result, err := parseStringArg(argsMap, "file_path", true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "file_path cannot be empty")
		assert.Empty(t, result)
	})

	t.Run("optional string missing", func(t *testing.T) {
		argsMap := map[string]interface{}{}
		result, err := parseStringArg(argsMap, "language", false)
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("wrong type", func(t *testing.T) {
		argsMap := map[string]interface{}{
			"language": 42,
		}
		result, err := parseStringArg(argsMap, "language", true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "language must be a string")
		assert.Empty(t, result)
	})
}

func TestParseIntArg(t *testing.T) {
	t.Parallel()

	t.Run("number present", func(t *testing.T) {
		// MCP sends numbers as float64.
		argsMap := map[string]interface{}{
			"max_depth": float64(3),
		}
		assert.Equal(t, 3, parseIntArg(argsMap, "max_depth", -1))
	})

	t.Run("missing uses default", func(t *testing.T) {
		argsMap := map[string]interface{}{}
		assert.Equal(t, -1, parseIntArg(argsMap, "max_depth", -1))
	})

	t.Run("wrong type uses default", func(t *testing.T) {
		argsMap := map[string]interface{}{
			"max_depth": "three",
		}
		assert.Equal(t, -1, parseIntArg(argsMap, "max_depth", -1))
	})
}

func TestParseBoolArg(t *testing.T) {
	t.Parallel()

	t.Run("bool present", func(t *testing.T) {
		argsMap := map[string]interface{}{
			"compact": false,
		}
		assert.False(t, parseBoolArg(argsMap, "compact", true))
	})

	t.Run("missing uses default", func(t *testing.T) {
		argsMap := map[string]interface{}{}
		assert.True(t, parseBoolArg(argsMap, "compact", true))
	})

	t.Run("wrong type uses default", func(t *testing.T) {
		argsMap := map[string]interface{}{
			"compact": "yes",
		}
		assert.True(t, parseBoolArg(argsMap, "compact", true))
	})
}
