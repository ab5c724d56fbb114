// Package extraction holds the output shapes shared between parser backends
// and the analysis engine.
package extraction

import "github.com/mvp-joe/project-prism/internal/analyzer/tree"

// Symbol kinds.
const (
	KindClass     = "class"
	KindInterface = "interface"
	KindFunction  = "function"
	KindMethod    = "method"
)

// Symbol is one hierarchical symbol output unit. Only classes carry
// children (their methods). Location uses the compact
// "startRow:startCol-endRow:endCol" encoding with zero-based positions.
type Symbol struct {
	Name     string    `json:"name"`
	Kind     string    `json:"kind"`
	Location string    `json:"location"`
	Children []*Symbol `json:"children,omitempty"`
}

// FileSymbols is the pre-extracted result an external parser produces:
// symbols, imports, and exports without a generic tree.
type FileSymbols struct {
	Symbols []*Symbol `json:"symbols"`
	Imports []string  `json:"imports"`
	Exports []string  `json:"exports"`
}

// Parse error types. Every engine failure surfaces as one of these rather
// than a Go error.
const (
	ErrUnsupportedLanguage = "unsupported_language"
	ErrRead                = "read_error"
	ErrTimeout             = "timeout_error"
	ErrSubprocess          = "subprocess_error"
	ErrSpawn               = "spawn_error"
	ErrJSONParse           = "json_parse_error"
	ErrParse               = "parse_error"
	ErrNotImplemented      = "not_implemented"
)

// ParseError is a typed, position-carrying error payload.
type ParseError struct {
	Type          string     `json:"type"`
	Message       string     `json:"message"`
	StartPosition tree.Point `json:"startPosition"`
	EndPosition   tree.Point `json:"endPosition"`
}

// NewError builds a positionless error of the given type.
func NewError(errType, message string) ParseError {
	return ParseError{Type: errType, Message: message}
}
