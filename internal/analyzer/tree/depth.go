package tree

// LimitDepth truncates a compact tree below maxDepth. At the boundary a
// node's children are replaced with a depth-limited marker carrying the
// number of children that were elided; every other field is preserved.
// Nodes above the boundary are unchanged. Depth 0 is the root.
func LimitDepth(root *CompactNode, maxDepth int) *CompactNode {
	if root == nil || maxDepth < 0 {
		return root
	}
	limitDepth(root, maxDepth, 0)
	return root
}

func limitDepth(node *CompactNode, maxDepth, depth int) {
	if len(node.Children) == 0 {
		return
	}
	if depth >= maxDepth {
		node.DepthLimited = true
		node.ChildCount = len(node.Children)
		node.Children = nil
		return
	}
	for _, child := range node.Children {
		limitDepth(child, maxDepth, depth+1)
	}
}
