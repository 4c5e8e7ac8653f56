package ast

// Dump converts nodes into plain maps and slices so that they can be handed
// to a JSON or YAML encoder.
func Dump(nodes []Node) []any {
	result := make([]any, 0, len(nodes))
	for _, node := range nodes {
		result = append(result, DumpNode(node))
	}
	return result
}

func DumpNode(node Node) map[string]any {
	switch n := node.(type) {
	case *Statement:
		return dumpStatement(n)
	case *Scope:
		m := map[string]any{
			"scope": n.Name,
		}
		if len(n.Arguments) > 0 {
			m["arguments"] = dumpTerms(n.Arguments)
		}
		if len(n.Modifiers) > 0 {
			m["modifiers"] = dumpStatements(n.Modifiers)
		}
		if n.Loop != nil {
			m["loop"] = map[string]any{
				"variable": n.Loop.Variable,
				"from":     DumpTerm(n.Loop.Range.X),
				"to":       DumpTerm(n.Loop.Range.Y),
			}
		}
		m["children"] = Dump(n.Children)
		return m
	}
	return nil
}

func DumpTerm(term Term) any {
	switch t := term.(type) {
	case *Constant:
		return t.Value
	case *Assignment:
		return map[string]any{t.Identifier: DumpTerm(t.Value)}
	case *Variable:
		return map[string]any{"variable": t.Name}
	case *UnresolvedCalculation:
		return map[string]any{"unresolved": t.String()}
	case BoolExpr:
		return map[string]any{"bool": t.String()}
	}
	return term.String()
}

func dumpStatement(stmt *Statement) map[string]any {
	m := map[string]any{
		stmt.Type.String(): stmt.Name,
	}
	if len(stmt.Arguments) > 0 {
		m["arguments"] = dumpTerms(stmt.Arguments)
	}
	if len(stmt.Modifiers) > 0 {
		m["modifiers"] = dumpStatements(stmt.Modifiers)
	}
	return m
}

func dumpStatements(stmts []*Statement) []any {
	result := make([]any, len(stmts))
	for i, stmt := range stmts {
		result[i] = dumpStatement(stmt)
	}
	return result
}

func dumpTerms(terms []Term) []any {
	result := make([]any, len(terms))
	for i, term := range terms {
		result[i] = DumpTerm(term)
	}
	return result
}
