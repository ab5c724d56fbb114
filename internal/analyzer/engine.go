package analyzer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mvp-joe/project-prism/internal/analyzer/extraction"
	"github.com/mvp-joe/project-prism/internal/analyzer/parsers"
	"github.com/mvp-joe/project-prism/internal/analyzer/tree"
	"github.com/mvp-joe/project-prism/internal/cache"
	"github.com/mvp-joe/project-prism/internal/config"
	"github.com/mvp-joe/project-prism/internal/lang"
)

// Operations the engine dispatches on.
const (
	OpParse          = "parse"
	OpExtractSymbols = "extract_symbols"
	OpExtractImports = "extract_imports"
	OpExtractExports = "extract_exports"
	OpGetStructure   = "get_structure"
	OpGetDiagnostics = "get_diagnostics"

	// Reserved, not implemented.
	OpQuery       = "query"
	OpFindPattern = "find_pattern"
)

// Request selects one operation on one file.
type Request struct {
	Operation string
	FilePath  string
	// Language is an optional hint; empty or "auto" runs detection.
	Language string

	// Parse-only flags.
	Compact             bool
	UseSymbolTable      bool
	MaxDepth            int // -1 means unlimited
	IncludeSemanticHash bool
	OmitRedundantText   bool
}

// NewRequest builds a request with the documented defaults: compact output
// with symbol-table optimization and redundant text omitted, no depth
// limit, no semantic hash.
func NewRequest(operation, filePath string) Request {
	return Request{
		Operation:         operation,
		FilePath:          filePath,
		Language:          "auto",
		Compact:           true,
		UseSymbolTable:    true,
		MaxDepth:          -1,
		OmitRedundantText: true,
	}
}

// baseResponse carries the fields every operation response shares.
type baseResponse struct {
	Success  bool                    `json:"success"`
	Language string                  `json:"language,omitempty"`
	Errors   []extraction.ParseError `json:"errors,omitempty"`
}

// OptimizationInfo summarizes the effect of symbol-table substitution.
type OptimizationInfo struct {
	SymbolTableSize         int `json:"symbol_table_size"`
	EstimatedTokenReduction int `json:"estimated_token_reduction"`
}

// ParseResponse answers the parse operation.
type ParseResponse struct {
	baseResponse
	CompactTree  *tree.CompactNode `json:"compactTree,omitempty"`
	AST          *tree.UniformNode `json:"ast,omitempty"`
	SymbolTable  tree.SymbolTable  `json:"symbolTable,omitempty"`
	Optimization *OptimizationInfo `json:"optimization,omitempty"`
	SemanticHash string            `json:"semantic_hash,omitempty"`
}

// SymbolsResponse answers extract_symbols.
type SymbolsResponse struct {
	baseResponse
	Symbols     []*extraction.Symbol `json:"symbols"`
	SymbolCount int                  `json:"symbolCount"`
}

// ImportsResponse answers extract_imports.
type ImportsResponse struct {
	baseResponse
	Imports []string `json:"imports"`
	Count   int      `json:"count"`
}

// ExportsResponse answers extract_exports.
type ExportsResponse struct {
	baseResponse
	Exports []string `json:"exports"`
	Count   int      `json:"count"`
}

// StructureResponse answers get_structure.
type StructureResponse struct {
	Success    bool             `json:"success"`
	Language   string           `json:"language"`
	Structure  string           `json:"structure"`
	Statistics *tree.Statistics `json:"statistics"`
}

// DiagnosticsResponse answers get_diagnostics. Success is true iff the
// file parsed without errors.
type DiagnosticsResponse struct {
	Success  bool                    `json:"success"`
	Language string                  `json:"language"`
	Errors   []extraction.ParseError `json:"errors"`
}

// Engine is the analysis engine. It holds no per-call mutable state: each
// Analyze call builds its own trees, so concurrent calls on different
// files need no locking. The cache handle is injected so callers (and
// tests) choose the backing store.
type Engine struct {
	cfg      *config.Config
	registry *parsers.Registry
	store    cache.Store
}

// New creates an engine. A nil store disables caching.
func New(cfg *config.Config, registry *parsers.Registry, store cache.Store) *Engine {
	if store == nil {
		store = cache.NoopStore{}
	}
	return &Engine{cfg: cfg, registry: registry, store: store}
}

// Analyze runs one operation and always returns a JSON-serializable
// response. Engine-level failures (missing file, unsupported language,
// parser trouble) surface as structured success:false payloads, never as
// Go errors or panics.
func (e *Engine) Analyze(ctx context.Context, req Request) any {
	switch req.Operation {
	case OpParse, OpExtractSymbols, OpExtractImports, OpExtractExports,
		OpGetStructure, OpGetDiagnostics:
	case OpQuery, OpFindPattern:
		return errorResponse("", extraction.ErrNotImplemented,
			fmt.Sprintf("operation %q is reserved but not implemented", req.Operation))
	default:
		return errorResponse("", extraction.ErrNotImplemented,
			fmt.Sprintf("unknown operation %q", req.Operation))
	}

	absPath, err := filepath.Abs(req.FilePath)
	if err != nil {
		return errorResponse("", extraction.ErrRead, err.Error())
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return errorResponse("", extraction.ErrRead, err.Error())
	}
	source, err := os.ReadFile(absPath)
	if err != nil {
		return errorResponse("", extraction.ErrRead, err.Error())
	}

	language := lang.Language(req.Language)
	if req.Language == "" || req.Language == "auto" {
		language = lang.Detect(absPath, source)
	}
	if !lang.Parseable(language) {
		return errorResponse(string(language), extraction.ErrUnsupportedLanguage,
			fmt.Sprintf("language %q is not supported for parsing", language))
	}

	digest := sha256.Sum256(source)
	fileHash := hex.EncodeToString(digest[:])

	result := e.parseWithCache(ctx, absPath, source, language, fileHash, info.ModTime())
	if !result.Success {
		return &baseResponse{
			Success:  false,
			Language: string(result.Language),
			Errors:   result.Errors,
		}
	}

	switch req.Operation {
	case OpParse:
		return e.buildParseResponse(result, req)
	case OpExtractSymbols:
		symbols := e.symbolsOf(result)
		return &SymbolsResponse{
			baseResponse: okResponse(result),
			Symbols:      symbols,
			SymbolCount:  CountSymbols(symbols),
		}
	case OpExtractImports:
		imports := e.importsOf(result)
		return &ImportsResponse{
			baseResponse: okResponse(result),
			Imports:      imports,
			Count:        len(imports),
		}
	case OpExtractExports:
		exports := e.exportsOf(result)
		return &ExportsResponse{
			baseResponse: okResponse(result),
			Exports:      exports,
			Count:        len(exports),
		}
	case OpGetStructure:
		structure, stats := e.structureOf(result, absPath)
		return &StructureResponse{
			Success:    true,
			Language:   string(result.Language),
			Structure:  structure,
			Statistics: stats,
		}
	default: // OpGetDiagnostics
		errors := result.Errors
		if errors == nil {
			errors = []extraction.ParseError{}
		}
		return &DiagnosticsResponse{
			Success:  len(errors) == 0,
			Language: string(result.Language),
			Errors:   errors,
		}
	}
}

// parseWithCache returns a parse result for the file, consulting the cache
// first. A hit requires the stored content hash and modification time to
// both match. A miss runs the parser and writes a fresh whole entry;
// persistence failures are logged and swallowed.
func (e *Engine) parseWithCache(ctx context.Context, absPath string, source []byte, language lang.Language, fileHash string, modTime time.Time) *parsers.ParseResult {
	if entry, ok := e.store.Get(absPath); ok && entry.Valid(fileHash, modTime) && len(entry.ParseResult) > 0 {
		var cached parsers.ParseResult
		if err := json.Unmarshal(entry.ParseResult, &cached); err == nil && cached.Success {
			return &cached
		}
	}

	parser, ok := e.registry.Lookup(language)
	if !ok {
		return &parsers.ParseResult{
			Success:  false,
			Language: language,
			Errors: []extraction.ParseError{extraction.NewError(
				extraction.ErrUnsupportedLanguage,
				fmt.Sprintf("no parser registered for language %q", language))},
		}
	}

	start := time.Now()
	result := parser.Parse(ctx, absPath, source)
	parseTimeMs := time.Since(start).Milliseconds()

	if result.Success {
		e.persist(absPath, fileHash, modTime, parseTimeMs, result)
	}
	return result
}

// persist writes a whole cache entry for a successful parse. Best-effort:
// failure is logged, never raised.
func (e *Engine) persist(absPath, fileHash string, modTime time.Time, parseTimeMs int64, result *parsers.ParseResult) {
	parseJSON, err := json.Marshal(result)
	if err != nil {
		log.Printf("cache encode failed for %s: %v", absPath, err)
		return
	}
	symbolsJSON, _ := json.Marshal(e.symbolsOf(result))
	importsJSON, _ := json.Marshal(e.importsOf(result))
	exportsJSON, _ := json.Marshal(e.exportsOf(result))
	structure, _ := e.structureOf(result, absPath)

	entry := &cache.Entry{
		FilePath:     absPath,
		FileHash:     fileHash,
		LastModified: modTime,
		Language:     string(result.Language),
		ParseTimeMs:  parseTimeMs,
		ParseResult:  parseJSON,
		Symbols:      symbolsJSON,
		Imports:      importsJSON,
		Exports:      exportsJSON,
		Structure:    structure,
	}
	if err := e.store.Put(entry); err != nil {
		log.Printf("cache write failed for %s: %v", absPath, err)
	}
}

// buildParseResponse assembles the parse operation output: compact tree
// (or raw AST), optional symbol table, depth limit, and semantic hash.
func (e *Engine) buildParseResponse(result *parsers.ParseResult, req Request) *ParseResponse {
	resp := &ParseResponse{baseResponse: okResponse(result)}

	if !req.Compact && result.Tree != nil {
		resp.AST = result.Tree
		if req.IncludeSemanticHash {
			compact := e.compactOf(result, req.OmitRedundantText)
			resp.SemanticHash = tree.SemanticHash(compact)
		}
		return resp
	}

	compact := e.compactOf(result, req.OmitRedundantText)
	if req.IncludeSemanticHash {
		// Hash before substitution so tokens never leak into the digest.
		resp.SemanticHash = tree.SemanticHash(compact)
	}
	if req.UseSymbolTable {
		if table := tree.OptimizeSymbols(compact); len(table) > 0 {
			resp.SymbolTable = table
			resp.Optimization = &OptimizationInfo{
				SymbolTableSize:         len(table),
				EstimatedTokenReduction: table.EstimatedTokenReduction(compact),
			}
		}
	}
	if req.MaxDepth >= 0 {
		tree.LimitDepth(compact, req.MaxDepth)
	}
	resp.CompactTree = compact
	return resp
}

// compactOf builds the compact tree for either backend: native trees go
// through the compactor, pre-extracted symbols are synthesized into the
// same shape.
func (e *Engine) compactOf(result *parsers.ParseResult, omitText bool) *tree.CompactNode {
	if result.Pre != nil {
		return synthesizeCompact(result.Pre)
	}
	return tree.Compact(result.Tree, tree.CompactOptions{
		Language:          string(result.Language),
		OmitRedundantText: omitText,
	})
}

func (e *Engine) symbolsOf(result *parsers.ParseResult) []*extraction.Symbol {
	if result.Pre != nil {
		if result.Pre.Symbols == nil {
			return []*extraction.Symbol{}
		}
		return result.Pre.Symbols
	}
	symbols := ExtractSymbols(result.Tree, result.Language, e.cfg.Symbols.OrphanPolicy)
	if symbols == nil {
		return []*extraction.Symbol{}
	}
	return symbols
}

func (e *Engine) importsOf(result *parsers.ParseResult) []string {
	if result.Pre != nil {
		if result.Pre.Imports == nil {
			return []string{}
		}
		return result.Pre.Imports
	}
	return ExtractImports(result.Tree, result.Language)
}

func (e *Engine) exportsOf(result *parsers.ParseResult) []string {
	if result.Pre != nil {
		if result.Pre.Exports == nil {
			return []string{}
		}
		return result.Pre.Exports
	}
	return ExtractExports(result.Tree, result.Language)
}

func (e *Engine) structureOf(result *parsers.ParseResult, absPath string) (string, *tree.Statistics) {
	compact := e.compactOf(result, true)
	title := fmt.Sprintf("Structure: %s", filepath.Base(absPath))
	return tree.Render(compact, title)
}

func okResponse(result *parsers.ParseResult) baseResponse {
	return baseResponse{
		Success:  true,
		Language: string(result.Language),
		Errors:   result.Errors,
	}
}

// Succeeded reports whether an Analyze response represents success,
// whatever its concrete type.
func Succeeded(resp any) bool {
	switch r := resp.(type) {
	case *baseResponse:
		return r.Success
	case *ParseResponse:
		return r.Success
	case *SymbolsResponse:
		return r.Success
	case *ImportsResponse:
		return r.Success
	case *ExportsResponse:
		return r.Success
	case *StructureResponse:
		return r.Success
	case *DiagnosticsResponse:
		return r.Success
	}
	return false
}

func errorResponse(language, errType, message string) *baseResponse {
	return &baseResponse{
		Success:  false,
		Language: language,
		Errors:   []extraction.ParseError{extraction.NewError(errType, message)},
	}
}
