package parsers

// Test Plan:
// 1. Valid TypeScript parses into a uniform tree rooted at program
// 2. Node positions are zero-based and children stay within parent ranges
// 3. Broken input still succeeds with parse_error entries
// 4. Each native constructor produces a working parser for a tiny sample

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/project-prism/internal/analyzer/extraction"
	"github.com/mvp-joe/project-prism/internal/analyzer/tree"
	"github.com/mvp-joe/project-prism/internal/lang"
)

func TestTypeScriptParse(t *testing.T) {
	t.Parallel()

	source := []byte(`import { x } from "./dep";

class Foo {
  bar(): number {
    return 1;
  }
}

function baz(): number {
  return 2;
}
`)

	result := NewTypeScriptParser().Parse(context.Background(), "app.ts", source)

	require.True(t, result.Success)
	assert.Equal(t, lang.TypeScript, result.Language)
	assert.Empty(t, result.Errors)
	require.NotNil(t, result.Tree)

	assert.Equal(t, "program", result.Tree.Type)
	assert.Zero(t, result.Tree.StartPosition.Row)

	// The declarations appear as direct children of the root.
	types := make(map[string]bool)
	for _, child := range result.Tree.Children {
		types[child.Type] = true
	}
	assert.True(t, types["import_statement"])
	assert.True(t, types["class_declaration"])
	assert.True(t, types["function_declaration"])
}

func TestTypeScriptParseChildrenWithinParent(t *testing.T) {
	t.Parallel()

	source := []byte("class Foo {\n  bar() {}\n}\n")
	result := NewTypeScriptParser().Parse(context.Background(), "app.ts", source)
	require.True(t, result.Success)

	var check func(n *tree.UniformNode)
	check = func(n *tree.UniformNode) {
		for _, child := range n.Children {
			assert.GreaterOrEqual(t, child.StartPosition.Row, n.StartPosition.Row)
			assert.LessOrEqual(t, child.EndPosition.Row, n.EndPosition.Row)
			check(child)
		}
	}
	check(result.Tree)
}

func TestTypeScriptParseBrokenInput(t *testing.T) {
	t.Parallel()

	result := NewTypeScriptParser().Parse(context.Background(), "broken.ts",
		[]byte("function (((\n"))

	// A tree still comes back; the damage is reported, not fatal.
	require.True(t, result.Success)
	require.NotNil(t, result.Tree)
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, extraction.ErrParse, result.Errors[0].Type)
}

func TestNativeParsersSmoke(t *testing.T) {
	t.Parallel()

	tests := []struct {
		language lang.Language
		parser   Parser
		source   string
		rootType string
	}{
		{lang.JavaScript, NewJavaScriptParser(), "function f() { return 1; }\n", "program"},
		{lang.Python, NewPythonParser(), "def f():\n    return 1\n", "module"},
		{lang.Java, NewJavaParser(), "class A { int f() { return 1; } }\n", "program"},
		{lang.Ruby, NewRubyParser(), "def f\n  1\nend\n", "program"},
		{lang.Rust, NewRustParser(), "fn f() -> i32 { 1 }\n", "source_file"},
		{lang.C, NewCParser(), "int f(void) { return 1; }\n", "translation_unit"},
		{lang.PHP, NewPHPParser(), "<?php function f() { return 1; }\n", "program"},
	}

	for _, tt := range tests {
		t.Run(string(tt.language), func(t *testing.T) {
			t.Parallel()
			result := tt.parser.Parse(context.Background(), "sample", []byte(tt.source))
			require.True(t, result.Success)
			assert.Equal(t, tt.language, result.Language)
			require.NotNil(t, result.Tree)
			assert.Equal(t, tt.rootType, result.Tree.Type)
			assert.Empty(t, result.Errors)
		})
	}
}
