package tree

import "fmt"

// Names shorter than this never enter the symbol table; the token would not
// save anything.
const minSymbolLength = 6

// A name must repeat at least this often before substitution pays off.
const minSymbolOccurrences = 3

// SymbolTable maps short reference tokens ("@1", "@2", ...) back to the
// original name strings they replaced.
type SymbolTable map[string]string

// OptimizeSymbols rewrites frequently repeated long names in a compact tree
// with short reference tokens. Two passes: count every name longer than five
// characters, then replace names occurring at least three times, assigning
// tokens in first-discovery order starting at @1. Token assignment is stable
// for identical input.
func OptimizeSymbols(root *CompactNode) SymbolTable {
	if root == nil {
		return nil
	}

	counts := make(map[string]int)
	root.Walk(func(n *CompactNode) bool {
		if len(n.Name) >= minSymbolLength {
			counts[n.Name]++
		}
		return true
	})

	table := make(SymbolTable)
	tokens := make(map[string]string) // name -> token
	next := 1
	root.Walk(func(n *CompactNode) bool {
		if len(n.Name) < minSymbolLength || counts[n.Name] < minSymbolOccurrences {
			return true
		}
		token, ok := tokens[n.Name]
		if !ok {
			token = fmt.Sprintf("@%d", next)
			next++
			tokens[n.Name] = token
			table[token] = n.Name
		}
		n.Name = token
		return true
	})

	if len(table) == 0 {
		return nil
	}
	return table
}

// EstimatedTokenReduction approximates how many LLM tokens the substitution
// saves, assuming roughly four characters per token.
func (t SymbolTable) EstimatedTokenReduction(root *CompactNode) int {
	if len(t) == 0 || root == nil {
		return 0
	}
	saved := 0
	root.Walk(func(n *CompactNode) bool {
		if original, ok := t[n.Name]; ok {
			saved += len(original) - len(n.Name)
		}
		return true
	})
	// Table entries themselves cost output space.
	for token, original := range t {
		saved -= len(token) + len(original)
	}
	if saved < 0 {
		return 0
	}
	return saved / 4
}
