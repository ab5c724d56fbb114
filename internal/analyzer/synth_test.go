package analyzer

// Test Plan:
// 1. Pre-extracted symbols synthesize into renderable compact nodes
// 2. Locations convert from zero-based rows to one-based lines
// 3. The synthesized tree flows through the structure renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/project-prism/internal/analyzer/extraction"
	"github.com/mvp-joe/project-prism/internal/analyzer/tree"
)

func TestSynthesizeCompact(t *testing.T) {
	t.Parallel()

	pre := &extraction.FileSymbols{
		Symbols: []*extraction.Symbol{
			{
				Name:     "Greeter",
				Kind:     extraction.KindClass,
				Location: "2:0-6:0",
				Children: []*extraction.Symbol{
					{Name: "greet", Kind: extraction.KindMethod, Location: "3:4-4:0"},
				},
			},
			{Name: "main", Kind: extraction.KindFunction, Location: "8:0-10:0"},
		},
		Imports: []string{"os"},
		Exports: []string{"Greeter"},
	}

	root := synthesizeCompact(pre)
	require.NotNil(t, root)
	assert.Equal(t, "module", root.Type)
	require.Len(t, root.Children, 4)

	assert.Equal(t, "import_statement", root.Children[0].Type)
	assert.Equal(t, "os", root.Children[0].Name)
	assert.Equal(t, "export_statement", root.Children[1].Type)

	greeter := root.Children[2]
	assert.Equal(t, "class_definition", greeter.Type)
	assert.Equal(t, 3, greeter.Line, "row 2 is line 3")
	require.Len(t, greeter.Children, 1)
	assert.Equal(t, "greet", greeter.Children[0].Name)

	assert.Equal(t, "function_definition", root.Children[3].Type)
}

func TestSynthesizedTreeRenders(t *testing.T) {
	t.Parallel()

	pre := &extraction.FileSymbols{
		Symbols: []*extraction.Symbol{
			{
				Name:     "Greeter",
				Kind:     extraction.KindClass,
				Location: "0:0-4:0",
				Children: []*extraction.Symbol{
					{Name: "greet", Kind: extraction.KindMethod, Location: "1:4-2:0"},
				},
			},
		},
		Imports: []string{"sys"},
	}

	output, stats := tree.Render(synthesizeCompact(pre), "Structure: app.py")

	assert.Contains(t, output, "`Greeter`")
	assert.Contains(t, output, "`sys`")
	assert.Equal(t, 1, stats.Classes)
	assert.Equal(t, 1, stats.Methods)
	assert.Equal(t, 1, stats.Imports)
}

func TestLocationLine(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, locationLine("0:0-3:0"))
	assert.Equal(t, 13, locationLine("12:4-20:0"))
	assert.Equal(t, 1, locationLine("garbage"))
}
