package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"

	"github.com/mvp-joe/project-prism/internal/lang"
)

// NewJavaParser creates a native Java parser.
func NewJavaParser() Parser {
	language := sitter.NewLanguage(java.Language())
	return newTreeSitterParser(language, lang.Java)
}
