package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	c "github.com/tree-sitter/tree-sitter-c/bindings/go"

	"github.com/mvp-joe/project-prism/internal/lang"
)

// NewCParser creates a native C parser.
func NewCParser() Parser {
	language := sitter.NewLanguage(c.Language())
	return newTreeSitterParser(language, lang.C)
}
