package mcp

// Test Plan:
// 1. A valid analyze_code call returns the operation's JSON payload
// 2. Missing required arguments produce an error result, not a system error
// 3. Engine-level failures come back as structured success:false JSON
// 4. Flags flow through to the engine (max_depth truncation)

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/project-prism/internal/analyzer"
	"github.com/mvp-joe/project-prism/internal/analyzer/parsers"
	"github.com/mvp-joe/project-prism/internal/config"
)

func newToolEngine(t *testing.T) *analyzer.Engine {
	t.Helper()
	cfg := config.Default()
	cfg.Parser.PythonBackend = config.PythonNative
	cfg.Cache.Enabled = false
	return analyzer.New(cfg, parsers.NewRegistry(cfg), nil)
}

func writeToolSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.ts")
	source := "class Foo {\n  bar() { return 1; }\n}\n\nfunction baz() { return 2; }\n"
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
	return path
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
	result, err := handler(context.Background(), request)
	require.NoError(t, err, "should not return system error")
	require.NotNil(t, result)
	return result
}

func TestAnalyzeCodeHandlerExtractSymbols(t *testing.T) {
	t.Parallel()

	handler := createAnalyzeCodeHandler(newToolEngine(t))

	result := callTool(t, handler, map[string]interface{}{
		"operation": analyzer.OpExtractSymbols,
		"file_path": writeToolSample(t),
	})
	assert.False(t, result.IsError)

	textContent, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok, "should be text content")

	var response struct {
		Success     bool `json:"success"`
		SymbolCount int  `json:"symbolCount"`
		Symbols     []struct {
			Name string `json:"name"`
			Kind string `json:"kind"`
		} `json:"symbols"`
	}
	require.NoError(t, json.Unmarshal([]byte(textContent.Text), &response))

	assert.True(t, response.Success)
	assert.Equal(t, 3, response.SymbolCount)
	require.Len(t, response.Symbols, 2)
	assert.Equal(t, "Foo", response.Symbols[0].Name)
	assert.Equal(t, "class", response.Symbols[0].Kind)
	assert.Equal(t, "baz", response.Symbols[1].Name)
}

func TestAnalyzeCodeHandlerMissingArguments(t *testing.T) {
	t.Parallel()

	handler := createAnalyzeCodeHandler(newToolEngine(t))

	result := callTool(t, handler, map[string]interface{}{
		"operation": analyzer.OpParse,
	})
	assert.True(t, result.IsError, "missing file_path is a tool error")

	result = callTool(t, handler, map[string]interface{}{
		"file_path": "app.ts",
	})
	assert.True(t, result.IsError, "missing operation is a tool error")
}

func TestAnalyzeCodeHandlerEngineFailure(t *testing.T) {
	t.Parallel()

	handler := createAnalyzeCodeHandler(newToolEngine(t))

	result := callTool(t, handler, map[string]interface{}{
		"operation": analyzer.OpParse,
		"file_path": filepath.Join(t.TempDir(), "missing.ts"),
	})
	// Engine failures are structured payloads, not tool errors.
	assert.False(t, result.IsError)

	textContent, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)

	var response struct {
		Success bool `json:"success"`
		Errors  []struct {
			Type string `json:"type"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal([]byte(textContent.Text), &response))
	assert.False(t, response.Success)
	require.Len(t, response.Errors, 1)
	assert.Equal(t, "read_error", response.Errors[0].Type)
}

func TestAnalyzeCodeHandlerMaxDepth(t *testing.T) {
	t.Parallel()

	handler := createAnalyzeCodeHandler(newToolEngine(t))

	result := callTool(t, handler, map[string]interface{}{
		"operation": analyzer.OpParse,
		"file_path": writeToolSample(t),
		"max_depth": float64(0),
	})
	assert.False(t, result.IsError)

	textContent, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)

	var response struct {
		Success     bool `json:"success"`
		CompactTree struct {
			DepthLimited bool `json:"_depth_limited"`
			ChildCount   int  `json:"_child_count"`
			Children     []struct{}
		} `json:"compactTree"`
	}
	require.NoError(t, json.Unmarshal([]byte(textContent.Text), &response))
	assert.True(t, response.Success)
	assert.True(t, response.CompactTree.DepthLimited)
	assert.Positive(t, response.CompactTree.ChildCount)
	assert.Empty(t, response.CompactTree.Children)
}
