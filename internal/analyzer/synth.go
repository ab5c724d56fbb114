package analyzer

import (
	"strconv"
	"strings"

	"github.com/mvp-joe/project-prism/internal/analyzer/extraction"
	"github.com/mvp-joe/project-prism/internal/analyzer/tree"
)

// synthKindTypes maps pre-extracted symbol kinds onto the compact node
// types the renderer classifies, so external-backend output flows through
// the same structure pipeline as native trees.
var synthKindTypes = map[string]string{
	extraction.KindClass:     "class_definition",
	extraction.KindInterface: "interface_declaration",
	extraction.KindFunction:  "function_definition",
	extraction.KindMethod:    "function_definition",
}

// synthesizeCompact builds a compact tree from pre-extracted symbols:
// import and export entries first, then the symbol hierarchy. The result
// is shaped exactly like compactor output, so rendering, depth limiting,
// and hashing apply unchanged.
func synthesizeCompact(pre *extraction.FileSymbols) *tree.CompactNode {
	root := &tree.CompactNode{Type: "module", Line: 1}

	for _, source := range pre.Imports {
		root.Children = append(root.Children, &tree.CompactNode{
			Type: "import_statement",
			Line: 1,
			Name: source,
		})
	}
	for _, name := range pre.Exports {
		root.Children = append(root.Children, &tree.CompactNode{
			Type: "export_statement",
			Line: 1,
			Name: name,
		})
	}
	for _, symbol := range pre.Symbols {
		root.Children = append(root.Children, synthesizeSymbol(symbol))
	}
	return root
}

func synthesizeSymbol(symbol *extraction.Symbol) *tree.CompactNode {
	nodeType, ok := synthKindTypes[symbol.Kind]
	if !ok {
		nodeType = symbol.Kind
	}
	node := &tree.CompactNode{
		Type: nodeType,
		Line: locationLine(symbol.Location),
		Name: symbol.Name,
	}
	for _, child := range symbol.Children {
		node.Children = append(node.Children, synthesizeSymbol(child))
	}
	return node
}

// locationLine converts the zero-based "row:col-row:col" location encoding
// to a one-based line number.
func locationLine(location string) int {
	row, _, ok := strings.Cut(location, ":")
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(row)
	if err != nil {
		return 1
	}
	return n + 1
}
