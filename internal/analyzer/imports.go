package analyzer

import (
	"strings"

	"github.com/mvp-joe/project-prism/internal/analyzer/tree"
	"github.com/mvp-joe/project-prism/internal/lang"
)

// importNodeTypes lists, per language, the declaration node types that
// carry an import source.
var importNodeTypes = map[lang.Language]map[string]bool{
	lang.TypeScript: {"import_statement": true},
	lang.JavaScript: {"import_statement": true},
	lang.Python:     {"import_statement": true, "import_from_statement": true},
	lang.Java:       {"import_declaration": true},
	lang.Rust:       {"use_declaration": true},
	lang.C:          {"preproc_include": true},
	lang.PHP:        {"namespace_use_declaration": true},
}

// ExtractImports collects import statement sources as bare module/path
// strings with quote characters stripped. Extraction is syntactic: no
// resolution or validation of the targets.
func ExtractImports(root *tree.UniformNode, language lang.Language) []string {
	imports := []string{}
	if root == nil {
		return imports
	}

	if language == lang.Ruby {
		return extractRubyRequires(root)
	}

	types := importNodeTypes[language]
	root.Walk(func(n *tree.UniformNode) bool {
		if !types[n.Type] {
			return true
		}
		if source := tree.ImportSourceOf(n); source != "" {
			imports = append(imports, cleanImportSource(source))
		}
		return false
	})
	return imports
}

// extractRubyRequires finds require/require_relative calls. Ruby has no
// import statement node; requires are plain method calls.
func extractRubyRequires(root *tree.UniformNode) []string {
	imports := []string{}
	root.Walk(func(n *tree.UniformNode) bool {
		if n.Type != "call" {
			return true
		}
		if len(n.Children) == 0 {
			return true
		}
		method := n.Children[0]
		if method.Type != "identifier" ||
			(method.Text != "require" && method.Text != "require_relative") {
			return true
		}
		if source := tree.ImportSourceOf(n); source != "" {
			imports = append(imports, source)
		}
		return false
	})
	return imports
}

// cleanImportSource strips include-style angle brackets and trailing
// semicolons left by coarse text captures.
func cleanImportSource(source string) string {
	source = strings.TrimSuffix(strings.TrimSpace(source), ";")
	source = strings.TrimPrefix(source, "<")
	source = strings.TrimSuffix(source, ">")
	return source
}

// ExtractExports collects exported identifier names from export
// declarations, including multi-name export clauses. Only TypeScript and
// JavaScript have export statements; other native languages return an
// empty list (the Python helper reports exports on the external path).
func ExtractExports(root *tree.UniformNode, language lang.Language) []string {
	exports := []string{}
	if root == nil {
		return exports
	}
	if language != lang.TypeScript && language != lang.JavaScript {
		return exports
	}

	root.Walk(func(n *tree.UniformNode) bool {
		if n.Type != "export_statement" {
			return true
		}
		exports = append(exports, exportedNames(n)...)
		return false
	})
	return exports
}

// exportedNames pulls identifiers out of one export statement: the
// declared name for "export class/function/const", and every specifier for
// "export { a, b as c }".
func exportedNames(export *tree.UniformNode) []string {
	var names []string
	for _, child := range export.Children {
		switch child.Type {
		case "export_clause":
			for _, spec := range child.Children {
				if spec.Type != "export_specifier" {
					continue
				}
				// "a as b" exports b; a bare specifier exports its
				// only identifier.
				var last string
				for _, part := range spec.Children {
					if part.Type == "identifier" {
						last = part.Text
					}
				}
				if last != "" {
					names = append(names, last)
				}
			}
		case "class_declaration", "abstract_class_declaration",
			"function_declaration", "generator_function_declaration",
			"interface_declaration", "type_alias_declaration",
			"enum_declaration", "lexical_declaration", "variable_declaration":
			if name := tree.NodeName(child); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}
