// Package tree defines the parser-agnostic syntax tree shapes used by the
// analysis engine and the transformations that operate on them: compaction,
// symbol-table optimization, depth limiting, semantic hashing, and structure
// rendering.
package tree

import "fmt"

// Point is a zero-based row/column position in a source file.
type Point struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// UniformNode is the normalized tree node every parser backend converts into.
// Children are ordered as they appear in source; a child's position range
// never exceeds its parent's range.
type UniformNode struct {
	Type          string         `json:"type"`
	StartPosition Point          `json:"startPosition"`
	EndPosition   Point          `json:"endPosition"`
	Text          string         `json:"text,omitempty"`
	Children      []*UniformNode `json:"children,omitempty"`
}

// Location returns the compact "startRow:startCol-endRow:endCol" encoding
// used by symbol output.
func (n *UniformNode) Location() string {
	return fmt.Sprintf("%d:%d-%d:%d",
		n.StartPosition.Row, n.StartPosition.Column,
		n.EndPosition.Row, n.EndPosition.Column)
}

// Walk visits every node in document order. The visitor returns false to
// skip the node's children.
func (n *UniformNode) Walk(visitor func(*UniformNode) bool) {
	if n == nil {
		return
	}
	if !visitor(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(visitor)
	}
}

// Count returns the total number of nodes in the tree.
func (n *UniformNode) Count() int {
	count := 0
	n.Walk(func(*UniformNode) bool {
		count++
		return true
	})
	return count
}

// Cursor provides first-child / next-sibling / parent navigation over a
// UniformNode tree, mirroring the walk cursor of the native parser.
type Cursor struct {
	node  *UniformNode
	stack []cursorFrame
}

type cursorFrame struct {
	node  *UniformNode
	index int
}

// NewCursor creates a cursor positioned at the given root.
func NewCursor(root *UniformNode) *Cursor {
	return &Cursor{node: root}
}

// Node returns the node the cursor currently points at.
func (c *Cursor) Node() *UniformNode {
	return c.node
}

// GotoFirstChild moves to the current node's first child.
// Returns false (without moving) if there are no children.
func (c *Cursor) GotoFirstChild() bool {
	if c.node == nil || len(c.node.Children) == 0 {
		return false
	}
	c.stack = append(c.stack, cursorFrame{node: c.node, index: 0})
	c.node = c.node.Children[0]
	return true
}

// GotoNextSibling moves to the next sibling of the current node.
// Returns false (without moving) at the last sibling or at the root.
func (c *Cursor) GotoNextSibling() bool {
	if len(c.stack) == 0 {
		return false
	}
	frame := &c.stack[len(c.stack)-1]
	if frame.index+1 >= len(frame.node.Children) {
		return false
	}
	frame.index++
	c.node = frame.node.Children[frame.index]
	return true
}

// GotoParent moves to the current node's parent.
// Returns false (without moving) at the root.
func (c *Cursor) GotoParent() bool {
	if len(c.stack) == 0 {
		return false
	}
	c.node = c.stack[len(c.stack)-1].node
	c.stack = c.stack[:len(c.stack)-1]
	return true
}
