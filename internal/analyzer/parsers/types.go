// Package parsers adapts per-language parser backends into one uniform
// result shape. Native languages parse in-process through tree-sitter;
// external languages delegate to a bounded subprocess that pre-extracts
// symbols.
package parsers

import (
	"context"

	"github.com/mvp-joe/project-prism/internal/analyzer/extraction"
	"github.com/mvp-joe/project-prism/internal/analyzer/tree"
	"github.com/mvp-joe/project-prism/internal/lang"
)

// ParseResult is the uniform outcome of one parse attempt. Exactly one of
// Tree (native path) or Pre (external path, pre-extracted symbols) is set
// on success. Failures carry typed errors and never panic or return Go
// errors.
// The JSON tags exist for the cache round-trip: the engine persists parse
// results and rehydrates them on a hit.
type ParseResult struct {
	Success  bool          `json:"success"`
	Language lang.Language `json:"language"`
	// Tree is the converted parse tree (native backends).
	Tree *tree.UniformNode `json:"tree,omitempty"`
	// Pre holds pre-extracted symbols/imports/exports (external backends).
	Pre    *extraction.FileSymbols `json:"pre,omitempty"`
	Errors []extraction.ParseError `json:"errors,omitempty"`
}

// Parser is one language backend. A single bounded attempt per call; no
// retries.
type Parser interface {
	Parse(ctx context.Context, filePath string, source []byte) *ParseResult
}

// failure builds an unsuccessful result with a single typed error.
func failure(language lang.Language, errType, message string) *ParseResult {
	return &ParseResult{
		Success:  false,
		Language: language,
		Errors:   []extraction.ParseError{extraction.NewError(errType, message)},
	}
}
