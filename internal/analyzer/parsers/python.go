package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/mvp-joe/project-prism/internal/lang"
)

// NewPythonParser creates a native Python parser. This is the tree-sitter
// backend; the default Python backend is the external ast helper (see
// ExternalParser), selected via parser.python_backend.
func NewPythonParser() Parser {
	language := sitter.NewLanguage(python.Language())
	return newTreeSitterParser(language, lang.Python)
}
