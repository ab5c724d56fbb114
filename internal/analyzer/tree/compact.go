package tree

import (
	"strings"
	"unicode"
)

// CompactNode is the reduced tree node produced by the compactor. Only
// semantically significant node types (plus the root) appear; syntactic
// wrapper nodes are spliced out with their children promoted in place.
type CompactNode struct {
	Type         string         `json:"type"`
	Line         int            `json:"line"`
	Name         string         `json:"name,omitempty"`
	Modifiers    []string       `json:"modifiers,omitempty"`
	Text         string         `json:"text,omitempty"`
	Children     []*CompactNode `json:"children,omitempty"`
	DepthLimited bool           `json:"_depth_limited,omitempty"`
	ChildCount   int            `json:"_child_count,omitempty"`
}

// GroupType is the synthetic type used when multiple compacted children
// bubble out of an elided wrapper and need a single attachment point.
const GroupType = "group"

// noiseTypes are always elided regardless of language: block wrappers,
// parenthesization, and argument lists. Single-character punctuation is
// handled separately in isNoise.
var noiseTypes = map[string]bool{
	"statement_block":          true,
	"block":                    true,
	"class_body":               true,
	"object":                   true,
	"parenthesized_expression": true,
	"arguments":                true,
	"argument_list":            true,
	"expression_statement":     true,
	"empty_statement":          true,
}

// modifierKeywords is the fixed set of qualifier tokens collected into a
// CompactNode's modifier list, in source order.
var modifierKeywords = map[string]bool{
	"export":    true,
	"default":   true,
	"async":     true,
	"static":    true,
	"public":    true,
	"private":   true,
	"protected": true,
	"readonly":  true,
	"abstract":  true,
	"final":     true,
	"const":     true,
	"let":       true,
	"var":       true,
	"override":  true,
}

// identifierTypes are the node types a best-effort name can be read from.
var identifierTypes = map[string]bool{
	"identifier":          true,
	"type_identifier":     true,
	"property_identifier": true,
	"field_identifier":    true,
	"constant":            true,
	"name":                true,
}

// significantTypes lists, per language, the node types that survive
// compaction: declarations, imports/exports, parameters, comments, and
// control-flow headers.
var significantTypes = map[string]map[string]bool{
	"typescript": typescriptSignificant,
	"javascript": typescriptSignificant,
	"tsx":        typescriptSignificant,
	"python": {
		"import_statement":      true,
		"import_from_statement": true,
		"class_definition":      true,
		"function_definition":   true,
		"decorated_definition":  true,
		"parameters":            true,
		"assignment":            true,
		"if_statement":          true,
		"for_statement":         true,
		"while_statement":       true,
		"try_statement":         true,
		"with_statement":        true,
		"return_statement":      true,
		"comment":               true,
	},
	"java": {
		"import_declaration":      true,
		"package_declaration":     true,
		"class_declaration":       true,
		"interface_declaration":   true,
		"enum_declaration":        true,
		"method_declaration":      true,
		"constructor_declaration": true,
		"field_declaration":       true,
		"formal_parameters":       true,
		"if_statement":            true,
		"for_statement":           true,
		"while_statement":         true,
		"try_statement":           true,
		"return_statement":        true,
		"line_comment":            true,
		"block_comment":           true,
	},
	"ruby": {
		"class":            true,
		"module":           true,
		"method":           true,
		"singleton_method": true,
		"method_parameters": true,
		"call":             true,
		"assignment":       true,
		"if":               true,
		"while":            true,
		"for":              true,
		"begin":            true,
		"return":           true,
		"comment":          true,
	},
	"rust": {
		"use_declaration":   true,
		"mod_item":          true,
		"struct_item":       true,
		"enum_item":         true,
		"trait_item":        true,
		"impl_item":         true,
		"function_item":     true,
		"parameters":        true,
		"let_declaration":   true,
		"const_item":        true,
		"static_item":       true,
		"if_expression":     true,
		"for_expression":    true,
		"while_expression":  true,
		"match_expression":  true,
		"return_expression": true,
		"line_comment":      true,
		"block_comment":     true,
	},
	"c": {
		"preproc_include":     true,
		"preproc_define":      true,
		"struct_specifier":    true,
		"enum_specifier":      true,
		"union_specifier":     true,
		"type_definition":     true,
		"function_definition": true,
		"declaration":         true,
		"parameter_list":      true,
		"if_statement":        true,
		"for_statement":       true,
		"while_statement":     true,
		"switch_statement":    true,
		"return_statement":    true,
		"comment":             true,
	},
	"php": {
		"namespace_definition":  true,
		"namespace_use_declaration": true,
		"class_declaration":     true,
		"interface_declaration": true,
		"trait_declaration":     true,
		"function_definition":   true,
		"method_declaration":    true,
		"property_declaration":  true,
		"formal_parameters":     true,
		"if_statement":          true,
		"foreach_statement":     true,
		"while_statement":       true,
		"try_statement":         true,
		"return_statement":      true,
		"comment":               true,
	},
}

var typescriptSignificant = map[string]bool{
	"import_statement":               true,
	"export_statement":               true,
	"class_declaration":              true,
	"abstract_class_declaration":     true,
	"interface_declaration":          true,
	"type_alias_declaration":         true,
	"enum_declaration":               true,
	"function_declaration":           true,
	"generator_function_declaration": true,
	"method_definition":              true,
	"public_field_definition":        true,
	"property_signature":             true,
	"method_signature":               true,
	"lexical_declaration":            true,
	"variable_declaration":           true,
	"variable_declarator":            true,
	"arrow_function":                 true,
	"formal_parameters":              true,
	"required_parameter":             true,
	"optional_parameter":             true,
	"if_statement":                   true,
	"for_statement":                  true,
	"while_statement":                true,
	"switch_statement":               true,
	"try_statement":                  true,
	"return_statement":               true,
	"comment":                        true,
}

// simpleLeafTypes are node kinds whose raw text adds nothing beyond the name
// already captured; text is dropped from these when omitRedundantText is set.
var simpleLeafTypes = map[string]bool{
	"identifier":          true,
	"type_identifier":     true,
	"property_identifier": true,
	"return_statement":    true,
	"variable_declarator": true,
	"formal_parameters":   true,
	"required_parameter":  true,
	"parameters":          true,
	"parameter_list":      true,
}

// CompactOptions controls tree compaction.
type CompactOptions struct {
	// Language selects the per-language significant-type allow-list.
	Language string
	// OmitRedundantText drops raw text from simple leaf node kinds.
	OmitRedundantText bool
}

// Compact reduces a UniformNode tree to its significant nodes. Wrapper and
// noise nodes are spliced out: their compacted children are promoted into
// the parent's child list, so no node survives whose sole purpose is
// syntactic grouping.
func Compact(root *UniformNode, opts CompactOptions) *CompactNode {
	if root == nil {
		return nil
	}
	significant := significantTypes[opts.Language]
	return compactNode(root, significant, opts, true)
}

func compactNode(node *UniformNode, significant map[string]bool, opts CompactOptions, isRoot bool) *CompactNode {
	// Noise is always elided; everything off the allow-list flattens the
	// same way unless it is the root.
	if !isRoot && (isNoise(node.Type) || !significant[node.Type]) {
		var results []*CompactNode
		for _, child := range node.Children {
			if r := compactNode(child, significant, opts, false); r != nil {
				results = append(results, r)
			}
		}
		switch len(results) {
		case 0:
			return nil
		case 1:
			return results[0]
		default:
			return &CompactNode{
				Type:     GroupType,
				Line:     node.StartPosition.Row + 1,
				Children: results,
			}
		}
	}

	compacted := &CompactNode{
		Type:      node.Type,
		Line:      node.StartPosition.Row + 1,
		Name:      nodeName(node),
		Modifiers: nodeModifiers(node),
	}
	if !opts.OmitRedundantText || !simpleLeafTypes[node.Type] {
		compacted.Text = leafText(node)
	}
	for _, child := range node.Children {
		if r := compactNode(child, significant, opts, false); r != nil {
			compacted.Children = append(compacted.Children, r)
		}
	}
	return compacted
}

// isNoise reports whether a node type is always elided: the fixed wrapper
// set plus single-character punctuation.
func isNoise(nodeType string) bool {
	if noiseTypes[nodeType] {
		return true
	}
	if len(nodeType) == 1 {
		r := rune(nodeType[0])
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}
	return false
}

// nodeName extracts a best-effort name: the first identifier-like direct
// child, the declaration source for imports, or the declarator identifier
// for variable declarations.
func nodeName(node *UniformNode) string {
	switch node.Type {
	case "import_statement", "import_declaration", "import_from_statement",
		"preproc_include", "use_declaration", "namespace_use_declaration":
		if source := importSource(node); source != "" {
			return source
		}
	case "lexical_declaration", "variable_declaration":
		for _, child := range node.Children {
			if child.Type == "variable_declarator" {
				return nodeName(child)
			}
		}
	}
	for _, child := range node.Children {
		if identifierTypes[child.Type] {
			return child.Text
		}
	}
	return ""
}

// importSource returns the bare module/path string of an import node with
// quote characters stripped.
func importSource(node *UniformNode) string {
	var source string
	node.Walk(func(n *UniformNode) bool {
		if source != "" {
			return false
		}
		switch n.Type {
		case "string", "string_literal", "string_fragment", "system_lib_string",
			"dotted_name", "scoped_identifier", "scoped_use_list", "use_wildcard":
			source = StripQuotes(n.Text)
			return false
		}
		return true
	})
	return source
}

// nodeModifiers collects direct children matching the modifier keyword set,
// order preserved.
func nodeModifiers(node *UniformNode) []string {
	var modifiers []string
	for _, child := range node.Children {
		if modifierKeywords[child.Type] {
			modifiers = append(modifiers, child.Type)
			continue
		}
		// Java/PHP wrap qualifiers in a modifiers node.
		if child.Type == "modifiers" || child.Type == "accessibility_modifier" ||
			child.Type == "visibility_modifier" {
			for _, token := range strings.Fields(child.Text) {
				if modifierKeywords[token] {
					modifiers = append(modifiers, token)
				}
			}
		}
	}
	return modifiers
}

// leafText returns the node's raw text for leaf-ish nodes. Large interior
// nodes never carry text in compact output.
func leafText(node *UniformNode) string {
	if len(node.Children) > 0 {
		return ""
	}
	if node.Type == "comment" || node.Type == "line_comment" || node.Type == "block_comment" {
		return node.Text
	}
	return ""
}

// StripQuotes removes surrounding quote characters from a string literal.
func StripQuotes(s string) string {
	s = strings.TrimSpace(s)
	for len(s) >= 2 {
		first := s[0]
		last := s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') || (first == '`' && last == '`') {
			s = s[1 : len(s)-1]
			continue
		}
		break
	}
	return s
}

// IsNoiseType exposes the noise check for tests and diagnostics.
func IsNoiseType(nodeType string) bool {
	return isNoise(nodeType)
}

// NodeName exposes the best-effort name heuristic for a uniform node.
func NodeName(n *UniformNode) string {
	return nodeName(n)
}

// ImportSourceOf exposes the import source extraction for a uniform node.
func ImportSourceOf(n *UniformNode) string {
	return importSource(n)
}

// Walk visits every compact node in document order. The visitor returns
// false to skip the node's children.
func (n *CompactNode) Walk(visitor func(*CompactNode) bool) {
	if n == nil {
		return
	}
	if !visitor(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(visitor)
	}
}
