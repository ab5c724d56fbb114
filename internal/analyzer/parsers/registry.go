package parsers

import (
	"context"
	"sync"
	"time"

	"github.com/mvp-joe/project-prism/internal/analyzer/extraction"
	"github.com/mvp-joe/project-prism/internal/config"
	"github.com/mvp-joe/project-prism/internal/lang"
)

// Registry maps language tags to parser backends. Parsers are constructed
// lazily: a grammar is only instantiated the first time its language is
// requested. Safe for concurrent use.
type Registry struct {
	mu        sync.Mutex
	factories map[lang.Language]func() Parser
	parsers   map[lang.Language]Parser
}

// NewRegistry builds the parser registry from configuration. The native
// tree-sitter set is always registered; Python routes to the external ast
// helper unless the config selects the native grammar.
func NewRegistry(cfg *config.Config) *Registry {
	r := &Registry{
		factories: make(map[lang.Language]func() Parser),
		parsers:   make(map[lang.Language]Parser),
	}

	r.factories[lang.TypeScript] = NewTypeScriptParser
	r.factories[lang.JavaScript] = NewJavaScriptParser
	r.factories[lang.Java] = NewJavaParser
	r.factories[lang.Ruby] = NewRubyParser
	r.factories[lang.Rust] = NewRustParser
	r.factories[lang.C] = NewCParser
	r.factories[lang.PHP] = NewPHPParser

	if cfg.Parser.PythonBackend == config.PythonNative {
		r.factories[lang.Python] = NewPythonParser
	} else {
		timeout := time.Duration(cfg.Parser.TimeoutMs) * time.Millisecond
		grace := time.Duration(cfg.Parser.KillGraceMs) * time.Millisecond
		r.factories[lang.Python] = func() Parser {
			return newPythonExternalParser(timeout, grace)
		}
	}

	return r
}

// newPythonExternalParser wires the embedded-python helper into an
// ExternalParser. A helper setup failure degrades to a spawn_error at
// parse time rather than failing registry construction.
func newPythonExternalParser(timeout, grace time.Duration) Parser {
	command, err := PythonHelperCommand()
	if err != nil {
		return &brokenParser{lang: lang.Python, err: err}
	}
	return NewExternalParser(lang.Python, command, timeout, grace)
}

// Lookup returns the parser for a language, or false if the language has
// no backend.
func (r *Registry) Lookup(language lang.Language) (Parser, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if parser, ok := r.parsers[language]; ok {
		return parser, true
	}
	factory, ok := r.factories[language]
	if !ok {
		return nil, false
	}
	parser := factory()
	r.parsers[language] = parser
	return parser, true
}

// Register overrides the backend for a language. Used by tests and by
// callers wiring custom external parsers.
func (r *Registry) Register(language lang.Language, parser Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[language] = parser
}

// brokenParser reports a setup failure as a typed spawn_error per call.
type brokenParser struct {
	lang lang.Language
	err  error
}

func (p *brokenParser) Parse(ctx context.Context, filePath string, source []byte) *ParseResult {
	return failure(p.lang, extraction.ErrSpawn, p.err.Error())
}
