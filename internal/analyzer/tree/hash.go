package tree

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SemanticHash digests the structure of a compact tree: types, names, and
// modifiers in depth-first order, with lines, positions, and raw text
// excluded. Two trees that differ only in formatting or position hash
// identically; any structural or naming difference changes the digest.
func SemanticHash(root *CompactNode) string {
	var sb strings.Builder
	serializeSemantic(root, &sb)
	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}

// commentTypes do not participate in the semantic hash: adding or removing
// a comment leaves the digest unchanged.
var commentTypes = map[string]bool{
	"comment":       true,
	"line_comment":  true,
	"block_comment": true,
}

func serializeSemantic(node *CompactNode, sb *strings.Builder) {
	if node == nil || commentTypes[node.Type] {
		return
	}
	sb.WriteString(node.Type)
	if node.Name != "" {
		sb.WriteByte(':')
		sb.WriteString(node.Name)
	}
	if len(node.Modifiers) > 0 {
		sb.WriteByte('[')
		sb.WriteString(strings.Join(node.Modifiers, ","))
		sb.WriteByte(']')
	}
	sb.WriteByte('(')
	for _, child := range node.Children {
		serializeSemantic(child, sb)
		sb.WriteByte(';')
	}
	sb.WriteByte(')')
}
