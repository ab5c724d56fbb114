package tree

// Test Plan:
// 1. Bullets appear in priority order: imports, exports, declarations, rest
// 2. Statistics count each kind once
// 3. Group wrappers render their members as siblings
// 4. A function node nested under a class renders as a method
// 5. Anonymous nodes get a placeholder name

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderOrdersAndCounts(t *testing.T) {
	t.Parallel()

	// Import declared after the class must still render first.
	root := &CompactNode{
		Type: "program",
		Line: 1,
		Children: []*CompactNode{
			{
				Type: "class_declaration",
				Name: "Widget",
				Line: 3,
				Children: []*CompactNode{
					{Type: "method_definition", Name: "render", Line: 4},
					{Type: "public_field_definition", Name: "size", Line: 5},
				},
			},
			{Type: "import_statement", Name: "./dep", Line: 10},
			{Type: "function_declaration", Name: "main", Line: 12},
		},
	}

	output, stats := Render(root, "Structure: widget.ts")

	assert.True(t, strings.HasPrefix(output, "# Structure: widget.ts\n"))

	importIdx := strings.Index(output, "`./dep`")
	classIdx := strings.Index(output, "`Widget`")
	funcIdx := strings.Index(output, "`main`")
	require.True(t, importIdx >= 0 && classIdx >= 0 && funcIdx >= 0)
	assert.Less(t, importIdx, classIdx)
	assert.Less(t, classIdx, funcIdx)

	assert.Contains(t, output, "(line 10)")
	assert.Contains(t, output, "## Summary")

	assert.Equal(t, 1, stats.Imports)
	assert.Equal(t, 1, stats.Classes)
	assert.Equal(t, 1, stats.Methods)
	assert.Equal(t, 1, stats.Functions)
	assert.Equal(t, 1, stats.Properties)
	assert.Zero(t, stats.Exports)
	assert.Zero(t, stats.Interfaces)
}

func TestRenderFlattensGroups(t *testing.T) {
	t.Parallel()

	root := &CompactNode{
		Type: "program",
		Line: 1,
		Children: []*CompactNode{
			{
				Type: GroupType,
				Line: 2,
				Children: []*CompactNode{
					{Type: "function_declaration", Name: "first", Line: 2},
					{Type: "function_declaration", Name: "second", Line: 3},
				},
			},
		},
	}

	output, stats := Render(root, "Structure: grouped.ts")

	assert.NotContains(t, output, GroupType)
	assert.Equal(t, 2, stats.Functions)

	// Both render at the same depth.
	assert.Contains(t, output, "- 🔧 function `first` (line 2)\n")
	assert.Contains(t, output, "- 🔧 function `second` (line 3)\n")
}

func TestRenderClassContextMakesMethods(t *testing.T) {
	t.Parallel()

	// Python-style: function_definition inside a class renders as a method.
	root := &CompactNode{
		Type: "module",
		Line: 1,
		Children: []*CompactNode{
			{
				Type: "class_definition",
				Name: "Greeter",
				Line: 1,
				Children: []*CompactNode{
					{Type: "function_definition", Name: "greet", Line: 2},
				},
			},
			{Type: "function_definition", Name: "main", Line: 5},
		},
	}

	_, stats := Render(root, "Structure: app.py")

	assert.Equal(t, 1, stats.Classes)
	assert.Equal(t, 1, stats.Methods)
	assert.Equal(t, 1, stats.Functions)
}

func TestRenderAnonymousName(t *testing.T) {
	t.Parallel()

	root := &CompactNode{
		Type: "program",
		Line: 1,
		Children: []*CompactNode{
			{Type: "arrow_function", Line: 2},
		},
	}

	output, _ := Render(root, "Structure: anon.ts")
	assert.Contains(t, output, "`(anonymous)`")
}

func TestNodeKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, KindImport, NodeKind("import_statement", false))
	assert.Equal(t, KindExport, NodeKind("export_statement", false))
	assert.Equal(t, KindClass, NodeKind("class_definition", false))
	assert.Equal(t, KindInterface, NodeKind("trait_declaration", false))
	assert.Equal(t, KindMethod, NodeKind("method_definition", false))
	assert.Equal(t, KindFunction, NodeKind("function_item", false))
	assert.Equal(t, KindMethod, NodeKind("function_item", true))
	assert.Equal(t, KindProperty, NodeKind("field_declaration", false))
	assert.Equal(t, KindOther, NodeKind("if_statement", false))
}
