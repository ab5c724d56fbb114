package parsers

import (
	"context"
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/project-prism/internal/analyzer/extraction"
	"github.com/mvp-joe/project-prism/internal/analyzer/tree"
	"github.com/mvp-joe/project-prism/internal/lang"
)

// Interior nodes larger than this do not carry raw text in the uniform
// tree; names and import sources always fit well under it.
const maxInteriorTextBytes = 120

// treeSitterParser parses in-process with a tree-sitter grammar and
// converts the native tree into UniformNodes.
type treeSitterParser struct {
	language *sitter.Language
	lang     lang.Language
}

// newTreeSitterParser creates a native parser for the given grammar.
func newTreeSitterParser(language *sitter.Language, tag lang.Language) *treeSitterParser {
	return &treeSitterParser{
		language: language,
		lang:     tag,
	}
}

// Parse parses source and converts the whole native tree into a
// UniformNode tree with 0-based positions. Syntax errors the grammar
// recovered from are reported as parse_error entries alongside the tree.
func (p *treeSitterParser) Parse(ctx context.Context, filePath string, source []byte) *ParseResult {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(p.language)

	parsed := parser.Parse(source, nil)
	if parsed == nil {
		return failure(p.lang, extraction.ErrParse,
			fmt.Sprintf("failed to parse %s file: %s", p.lang, filePath))
	}
	defer parsed.Close()

	rootNode := parsed.RootNode()

	return &ParseResult{
		Success:  true,
		Language: p.lang,
		Tree:     convertNode(rootNode, source),
		Errors:   collectSyntaxErrors(rootNode),
	}
}

// convertNode recursively converts a tree-sitter node into a UniformNode.
// All children are kept, anonymous tokens included: modifier keywords and
// punctuation arrive as anonymous nodes and the compactor needs them.
func convertNode(node *sitter.Node, source []byte) *tree.UniformNode {
	converted := &tree.UniformNode{
		Type: node.Kind(),
		StartPosition: tree.Point{
			Row:    int(node.StartPosition().Row),
			Column: int(node.StartPosition().Column),
		},
		EndPosition: tree.Point{
			Row:    int(node.EndPosition().Row),
			Column: int(node.EndPosition().Column),
		},
	}

	childCount := int(node.ChildCount())
	if childCount == 0 || node.EndByte()-node.StartByte() <= maxInteriorTextBytes {
		converted.Text = string(source[node.StartByte():node.EndByte()])
	}

	for i := 0; i < childCount; i++ {
		child := node.Child(uint(i))
		converted.Children = append(converted.Children, convertNode(child, source))
	}

	return converted
}

// collectSyntaxErrors walks the native tree for ERROR and MISSING nodes.
func collectSyntaxErrors(node *sitter.Node) []extraction.ParseError {
	var errors []extraction.ParseError
	walkSitterTree(node, func(n *sitter.Node) bool {
		if n.IsError() || n.IsMissing() {
			message := "syntax error"
			if n.IsMissing() {
				message = fmt.Sprintf("missing %s", n.Kind())
			}
			errors = append(errors, extraction.ParseError{
				Type:    extraction.ErrParse,
				Message: message,
				StartPosition: tree.Point{
					Row:    int(n.StartPosition().Row),
					Column: int(n.StartPosition().Column),
				},
				EndPosition: tree.Point{
					Row:    int(n.EndPosition().Row),
					Column: int(n.EndPosition().Column),
				},
			})
			return false
		}
		return true
	})
	return errors
}

// walkSitterTree recursively walks a tree-sitter tree and calls the visitor
// for each node. The visitor returns false to skip a node's children.
func walkSitterTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}
	if !visitor(node) {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		walkSitterTree(node.Child(uint(i)), visitor)
	}
}
