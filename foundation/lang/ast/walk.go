// File: walk.go
// Title: Tree Traversal and Statistics
// Description: Pre-order traversal and per-kind node statistics.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package ast

// Walk visits node and its descendants in pre-order. Children of a node are
// skipped when fn returns false for it.
func Walk(node Node, fn func(Node) bool) {
	if isNilNode(node) || !fn(node) {
		return
	}

	for _, child := range Children(node) {
		Walk(child, fn)
	}
}

// Children returns the direct children of node in source order
func Children(node Node) []Node {
	switch n := node.(type) {
	case *VariableDefinition:
		if n.Value == nil {
			return nil
		}
		return []Node{n.Value}
	case *FunctionDefinition:
		children := make([]Node, 0, len(n.Params)+1)
		children = append(children, n.Params...)
		if n.Body != nil {
			children = append(children, n.Body)
		}
		return children
	case *FunctionCall:
		return n.Args
	case *Compound:
		return n.Statements
	default:
		return nil
	}
}

// Stats summarises a tree
type Stats struct {
	Total    int
	MaxDepth int
	ByKind   map[NodeKind]int
}

// Count collects statistics over node and its descendants
func Count(node Node) Stats {
	stats := Stats{ByKind: make(map[NodeKind]int)}
	count(node, 1, &stats)
	return stats
}

func count(node Node, depth int, stats *Stats) {
	if isNilNode(node) {
		return
	}

	stats.Total++
	stats.ByKind[node.Kind()]++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	for _, child := range Children(node) {
		count(child, depth+1, stats)
	}
}
