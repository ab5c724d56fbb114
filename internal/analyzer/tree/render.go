package tree

import (
	"fmt"
	"strings"
)

// Statistics counts rendered symbols per kind.
type Statistics struct {
	Imports    int `json:"imports"`
	Exports    int `json:"exports"`
	Classes    int `json:"classes"`
	Functions  int `json:"functions"`
	Interfaces int `json:"interfaces"`
	Methods    int `json:"methods"`
	Properties int `json:"properties"`
}

// Kind buckets for rendering and statistics.
const (
	KindImport    = "import"
	KindExport    = "export"
	KindClass     = "class"
	KindInterface = "interface"
	KindFunction  = "function"
	KindMethod    = "method"
	KindProperty  = "property"
	KindOther     = "other"
)

var kindIcons = map[string]string{
	KindImport:    "📦",
	KindExport:    "📤",
	KindClass:     "🏛️",
	KindInterface: "📐",
	KindFunction:  "🔧",
	KindMethod:    "⚙️",
	KindProperty:  "🔑",
	KindOther:     "•",
}

var importNodeTypes = map[string]bool{
	"import_statement":          true,
	"import_from_statement":     true,
	"import_declaration":        true,
	"preproc_include":           true,
	"use_declaration":           true,
	"namespace_use_declaration": true,
}

var classNodeTypes = map[string]bool{
	"class_declaration":          true,
	"abstract_class_declaration": true,
	"class_definition":           true,
	"class":                      true,
	"struct_item":                true,
	"struct_specifier":           true,
}

var interfaceNodeTypes = map[string]bool{
	"interface_declaration": true,
	"trait_item":            true,
	"trait_declaration":     true,
}

var functionNodeTypes = map[string]bool{
	"function_declaration":           true,
	"generator_function_declaration": true,
	"function_definition":            true,
	"function_item":                  true,
	"arrow_function":                 true,
}

var methodNodeTypes = map[string]bool{
	"method_definition":       true,
	"method_declaration":      true,
	"method":                  true,
	"singleton_method":        true,
	"constructor_declaration": true,
}

var propertyNodeTypes = map[string]bool{
	"public_field_definition": true,
	"property_signature":      true,
	"field_declaration":       true,
	"property_declaration":    true,
}

// NodeKind classifies a compact node type into a rendering kind.
// insideClass distinguishes methods from functions for languages whose
// grammar uses one node type for both.
func NodeKind(nodeType string, insideClass bool) string {
	switch {
	case importNodeTypes[nodeType]:
		return KindImport
	case nodeType == "export_statement":
		return KindExport
	case classNodeTypes[nodeType]:
		return KindClass
	case interfaceNodeTypes[nodeType]:
		return KindInterface
	case methodNodeTypes[nodeType]:
		return KindMethod
	case functionNodeTypes[nodeType]:
		if insideClass {
			return KindMethod
		}
		return KindFunction
	case propertyNodeTypes[nodeType]:
		return KindProperty
	default:
		return KindOther
	}
}

// Render produces a Markdown outline of a compact tree: a heading, one
// bullet per significant node indented by nesting depth, children ordered
// imports first, then exports, then declarations, then the remainder, and a
// closing per-kind summary.
func Render(root *CompactNode, title string) (string, *Statistics) {
	stats := &Statistics{}
	var sb strings.Builder

	sb.WriteString("# " + title + "\n\n")
	if root != nil {
		renderChildren(&sb, root.Children, 0, false, stats)
	}

	sb.WriteString("\n## Summary\n\n")
	fmt.Fprintf(&sb, "- Imports: %d\n", stats.Imports)
	fmt.Fprintf(&sb, "- Exports: %d\n", stats.Exports)
	fmt.Fprintf(&sb, "- Classes: %d\n", stats.Classes)
	fmt.Fprintf(&sb, "- Functions: %d\n", stats.Functions)
	fmt.Fprintf(&sb, "- Interfaces: %d\n", stats.Interfaces)
	fmt.Fprintf(&sb, "- Methods: %d\n", stats.Methods)
	fmt.Fprintf(&sb, "- Properties: %d\n", stats.Properties)

	return sb.String(), stats
}

// renderPriority orders sibling bullets: imports, exports, declarations,
// then everything else, preserving document order within a bucket.
func renderPriority(kind string) int {
	switch kind {
	case KindImport:
		return 0
	case KindExport:
		return 1
	case KindClass, KindInterface, KindFunction, KindMethod, KindProperty:
		return 2
	default:
		return 3
	}
}

func renderChildren(sb *strings.Builder, children []*CompactNode, depth int, insideClass bool, stats *Statistics) {
	flattened := flattenGroups(children)

	for priority := 0; priority <= 3; priority++ {
		for _, child := range flattened {
			kind := NodeKind(child.Type, insideClass)
			if renderPriority(kind) != priority {
				continue
			}
			renderNode(sb, child, kind, depth, insideClass, stats)
		}
	}
}

func renderNode(sb *strings.Builder, node *CompactNode, kind string, depth int, insideClass bool, stats *Statistics) {
	count(stats, kind)

	indent := strings.Repeat("  ", depth)
	label := kind
	if kind == KindOther {
		label = node.Type
	}
	name := node.Name
	if name == "" {
		name = "(anonymous)"
	}
	fmt.Fprintf(sb, "%s- %s %s `%s` (line %d)\n", indent, kindIcons[kind], label, name, node.Line)

	if len(node.Children) > 0 {
		renderChildren(sb, node.Children, depth+1, insideClass || kind == KindClass, stats)
	}
}

// flattenGroups splices group wrappers so their members render as direct
// siblings.
func flattenGroups(children []*CompactNode) []*CompactNode {
	var out []*CompactNode
	for _, child := range children {
		if child.Type == GroupType {
			out = append(out, flattenGroups(child.Children)...)
			continue
		}
		out = append(out, child)
	}
	return out
}

func count(stats *Statistics, kind string) {
	switch kind {
	case KindImport:
		stats.Imports++
	case KindExport:
		stats.Exports++
	case KindClass:
		stats.Classes++
	case KindInterface:
		stats.Interfaces++
	case KindFunction:
		stats.Functions++
	case KindMethod:
		stats.Methods++
	case KindProperty:
		stats.Properties++
	}
}
