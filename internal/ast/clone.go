package ast

// Clone deep-copies a subtree. Terms are immutable and shared.
func Clone(node Node) Node {
	switch n := node.(type) {
	case *Statement:
		return cloneStatement(n)
	case *Scope:
		return cloneScope(n)
	}
	return node
}

func CloneAll(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	result := make([]Node, len(nodes))
	for i, node := range nodes {
		result[i] = Clone(node)
	}
	return result
}

func cloneStatement(stmt *Statement) *Statement {
	clone := *stmt
	clone.Arguments = append([]Term(nil), stmt.Arguments...)
	clone.Modifiers = cloneModifiers(stmt.Modifiers)
	return &clone
}

func cloneScope(scope *Scope) *Scope {
	clone := *scope
	clone.Arguments = append([]Term(nil), scope.Arguments...)
	clone.Children = CloneAll(scope.Children)
	clone.Modifiers = cloneModifiers(scope.Modifiers)
	if scope.Loop != nil {
		loop := *scope.Loop
		vector := *scope.Loop.Range
		loop.Range = &vector
		clone.Loop = &loop
	}
	return &clone
}

func cloneModifiers(modifiers []*Statement) []*Statement {
	if modifiers == nil {
		return nil
	}
	result := make([]*Statement, len(modifiers))
	for i, modifier := range modifiers {
		result[i] = cloneStatement(modifier)
	}
	return result
}
