package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	php "github.com/tree-sitter/tree-sitter-php/bindings/go"

	"github.com/mvp-joe/project-prism/internal/lang"
)

// NewPHPParser creates a native PHP parser.
func NewPHPParser() Parser {
	language := sitter.NewLanguage(php.LanguagePHP())
	return newTreeSitterParser(language, lang.PHP)
}
