package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/mvp-joe/project-prism/internal/lang"
)

// NewTypeScriptParser creates a native TypeScript parser.
func NewTypeScriptParser() Parser {
	language := sitter.NewLanguage(typescript.LanguageTypescript())
	return newTreeSitterParser(language, lang.TypeScript)
}

// NewJavaScriptParser creates a native JavaScript parser. JavaScript shares
// the TypeScript grammar; the AST shapes are identical for the node types
// the engine cares about.
func NewJavaScriptParser() Parser {
	language := sitter.NewLanguage(typescript.LanguageTypescript())
	return newTreeSitterParser(language, lang.JavaScript)
}
