// Package analyzer is the analysis engine: it routes operations to parser
// backends, derives symbols, imports, exports, compact trees, and structure
// outlines, and memoizes results through the cache contract.
package analyzer

import (
	"github.com/mvp-joe/project-prism/internal/analyzer/extraction"
	"github.com/mvp-joe/project-prism/internal/analyzer/tree"
	"github.com/mvp-joe/project-prism/internal/config"
	"github.com/mvp-joe/project-prism/internal/lang"
)

// symbolKinds classifies the node types that produce symbols for one
// language. Types in dual are methods when a class encloses them and
// functions otherwise.
type symbolKinds struct {
	class     map[string]bool
	iface     map[string]bool
	function  map[string]bool
	method    map[string]bool
	dual      map[string]bool
	// classCtx types establish an enclosing-class context without
	// necessarily producing a class symbol themselves (rust impl blocks).
	classCtx map[string]bool
}

func set(types ...string) map[string]bool {
	m := make(map[string]bool, len(types))
	for _, t := range types {
		m[t] = true
	}
	return m
}

var symbolKindsByLanguage = map[lang.Language]*symbolKinds{
	lang.TypeScript: tsSymbolKinds,
	lang.JavaScript: tsSymbolKinds,
	lang.Python: {
		class: set("class_definition"),
		iface: set(),
		function: set(),
		method: set(),
		dual:  set("function_definition"),
	},
	lang.Java: {
		class:    set("class_declaration", "enum_declaration"),
		iface:    set("interface_declaration"),
		function: set(),
		method:   set("method_declaration", "constructor_declaration"),
		dual:     set(),
	},
	lang.Ruby: {
		class:    set("class", "module"),
		iface:    set(),
		function: set(),
		method:   set("singleton_method"),
		dual:     set("method"),
	},
	lang.Rust: {
		class:    set("struct_item", "enum_item"),
		iface:    set("trait_item"),
		function: set(),
		method:   set(),
		dual:     set("function_item"),
		classCtx: set("impl_item"),
	},
	lang.C: {
		class:    set("struct_specifier"),
		iface:    set(),
		function: set("function_definition"),
		method:   set(),
		dual:     set(),
	},
	lang.PHP: {
		class:    set("class_declaration", "trait_declaration"),
		iface:    set("interface_declaration"),
		function: set("function_definition"),
		method:   set("method_declaration"),
		dual:     set(),
	},
}

var tsSymbolKinds = &symbolKinds{
	class:    set("class_declaration", "abstract_class_declaration"),
	iface:    set("interface_declaration"),
	function: set("function_declaration", "generator_function_declaration"),
	method:   set("method_definition"),
	dual:     set(),
}

// ExtractSymbols builds the hierarchical symbol list for a parsed tree in
// two passes. Pass 1 records, per method node, the name of the textually
// nearest enclosing class; pass 2 builds symbols in document order,
// attaching each method under its owning class. A method whose class was
// never registered follows the orphan policy: promoted to the top level or
// dropped.
func ExtractSymbols(root *tree.UniformNode, language lang.Language, orphanPolicy string) []*extraction.Symbol {
	kinds := symbolKindsByLanguage[language]
	if root == nil || kinds == nil {
		return nil
	}

	// Pass 1: node index -> enclosing class name. Node identity is the
	// depth-first preorder index, which is stable across both passes.
	enclosing := make(map[int]string)
	index := 0
	var walk1 func(n *tree.UniformNode, class string)
	walk1 = func(n *tree.UniformNode, class string) {
		idx := index
		index++
		if kinds.method[n.Type] || kinds.dual[n.Type] {
			enclosing[idx] = class
		}
		next := class
		if kinds.class[n.Type] || kinds.classCtx[n.Type] {
			if name := tree.NodeName(n); name != "" {
				next = name
			}
		}
		for _, child := range n.Children {
			walk1(child, next)
		}
	}
	walk1(root, "")

	// Pass 2: build symbols in document order.
	var top []*extraction.Symbol
	classes := make(map[string]*extraction.Symbol)
	index = 0
	var walk2 func(n *tree.UniformNode)
	walk2 = func(n *tree.UniformNode) {
		idx := index
		index++

		name := tree.NodeName(n)
		switch {
		case kinds.class[n.Type]:
			if name != "" {
				symbol := &extraction.Symbol{Name: name, Kind: extraction.KindClass, Location: n.Location()}
				classes[name] = symbol
				top = append(top, symbol)
			}
		case kinds.iface[n.Type]:
			if name != "" {
				top = append(top, &extraction.Symbol{Name: name, Kind: extraction.KindInterface, Location: n.Location()})
			}
		case kinds.function[n.Type]:
			if name != "" {
				top = append(top, &extraction.Symbol{Name: name, Kind: extraction.KindFunction, Location: n.Location()})
			}
		case kinds.method[n.Type], kinds.dual[n.Type]:
			if name == "" {
				break
			}
			class := enclosing[idx]
			if kinds.dual[n.Type] && class == "" {
				top = append(top, &extraction.Symbol{Name: name, Kind: extraction.KindFunction, Location: n.Location()})
				break
			}
			symbol := &extraction.Symbol{Name: name, Kind: extraction.KindMethod, Location: n.Location()}
			if owner, ok := classes[class]; ok && class != "" {
				owner.Children = append(owner.Children, symbol)
			} else if orphanPolicy != config.OrphanDrop {
				top = append(top, symbol)
			}
		}

		for _, child := range n.Children {
			walk2(child)
		}
	}
	walk2(root)

	return top
}

// CountSymbols counts symbols including nested children.
func CountSymbols(symbols []*extraction.Symbol) int {
	count := 0
	for _, s := range symbols {
		count += 1 + CountSymbols(s.Children)
	}
	return count
}
