package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"

	"github.com/mvp-joe/project-prism/internal/lang"
)

// NewRubyParser creates a native Ruby parser.
func NewRubyParser() Parser {
	language := sitter.NewLanguage(ruby.Language())
	return newTreeSitterParser(language, lang.Ruby)
}
