// File: export.go
// Title: Structured Export
// Description: Converts a tree into plain maps and slices so it can be
//              encoded as JSON or YAML.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package ast

// Export returns a map form of node. Keys: "type", "pos", and per variant
// "name", "value", "params", "body", "args" or "statements".
func Export(node Node) map[string]interface{} {
	if isNilNode(node) {
		return nil
	}

	m := map[string]interface{}{
		"type": node.Kind().String(),
	}
	if pos := node.Position(); pos.IsValid() {
		m["pos"] = map[string]interface{}{
			"line":   pos.Line,
			"column": pos.Column,
		}
	}

	switch n := node.(type) {
	case *VariableDefinition:
		m["name"] = n.Name
		m["value"] = Export(n.Value)
	case *FunctionDefinition:
		m["name"] = n.Name
		m["params"] = exportList(n.Params)
		m["body"] = Export(compoundNode(n.Body))
	case *Variable:
		m["name"] = n.Name
	case *FunctionCall:
		m["name"] = n.Name
		m["args"] = exportList(n.Args)
	case *StringLiteral:
		m["value"] = n.Value
	case *Compound:
		m["statements"] = exportList(n.Statements)
	}

	return m
}

func exportList(nodes []Node) []interface{} {
	result := make([]interface{}, len(nodes))
	for i, n := range nodes {
		result[i] = Export(n)
	}
	return result
}
