package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"

	"github.com/mvp-joe/project-prism/internal/lang"
)

// NewRustParser creates a native Rust parser.
func NewRustParser() Parser {
	language := sitter.NewLanguage(rust.Language())
	return newTreeSitterParser(language, lang.Rust)
}
