package mcp

// Implementation Plan:
// 1. AddAnalyzeCodeTool - composable tool registration function
// 2. createAnalyzeCodeHandler - handler factory that captures the engine
// 3. Parse operation, file_path, and flags from MCP arguments
// 4. Execute engine.Analyze
// 5. Return the structured response as JSON text (mcp-go convention)

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/project-prism/internal/analyzer"
)

// AddAnalyzeCodeTool registers the analyze_code tool with an MCP server.
// This function is composable - it can be combined with other tool
// registrations.
func AddAnalyzeCodeTool(s *server.MCPServer, engine *analyzer.Engine) {
	tool := mcp.NewTool(
		"analyze_code",
		mcp.WithDescription("Analyze the structure of a source file: parse it into a compact syntax tree, extract symbols, imports, or exports, render a structure outline, or report syntax diagnostics."),
		mcp.WithString("operation",
			mcp.Required(),
			mcp.Description("Operation to run"),
			mcp.Enum(
				analyzer.OpParse,
				analyzer.OpExtractSymbols,
				analyzer.OpExtractImports,
				analyzer.OpExtractExports,
				analyzer.OpGetStructure,
				analyzer.OpGetDiagnostics,
				analyzer.OpQuery,
				analyzer.OpFindPattern,
			)),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path of the source file to analyze")),
		mcp.WithString("language",
			mcp.Description("Language override (e.g. 'typescript', 'python'). Default: auto-detect from extension and shebang.")),
		mcp.WithBoolean("compact",
			mcp.Description("Return the compacted tree instead of the full syntax tree (parse operation, default: true)")),
		mcp.WithBoolean("use_symbol_table",
			mcp.Description("Replace frequently repeated identifiers with short tokens and return the substitution table (default: true)")),
		mcp.WithNumber("max_depth",
			mcp.Description("Truncate the compact tree below this depth; omit for unlimited")),
		mcp.WithBoolean("include_semantic_hash",
			mcp.Description("Include a content hash of the tree's semantic structure (default: false)")),
		mcp.WithBoolean("omit_redundant_text",
			mcp.Description("Drop raw text from simple leaf nodes whose name already carries it (default: true)")),
	)

	s.AddTool(tool, createAnalyzeCodeHandler(engine))
}

// createAnalyzeCodeHandler creates the handler function for analyze_code.
func createAnalyzeCodeHandler(engine *analyzer.Engine) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		operation, err := parseStringArg(argsMap, "operation", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		filePath, err := parseStringArg(argsMap, "file_path", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		req := analyzer.NewRequest(operation, filePath)
		if language, _ := parseStringArg(argsMap, "language", false); language != "" {
			req.Language = language
		}
		req.Compact = parseBoolArg(argsMap, "compact", req.Compact)
		req.UseSymbolTable = parseBoolArg(argsMap, "use_symbol_table", req.UseSymbolTable)
		req.MaxDepth = parseIntArg(argsMap, "max_depth", req.MaxDepth)
		req.IncludeSemanticHash = parseBoolArg(argsMap, "include_semantic_hash", req.IncludeSemanticHash)
		req.OmitRedundantText = parseBoolArg(argsMap, "omit_redundant_text", req.OmitRedundantText)

		// Engine failures come back as structured success:false payloads,
		// so the tool result is JSON either way.
		response := engine.Analyze(ctx, req)

		jsonData, err := json.Marshal(response)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}
