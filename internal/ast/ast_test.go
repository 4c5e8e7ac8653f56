package ast

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HicaroD/fcad/internal/lexer/token"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		raw    string
		kind   ValueKind
		native any
	}{
		{"5", INTEGER, int64(5)},
		{"-12", INTEGER, int64(-12)},
		{"+3", INTEGER, int64(3)},
		{"2.5", FLOAT, 2.5},
		{"4.", FLOAT, 4.0},
		{"1e3", FLOAT, 1000.0},
		{"-1.5E-1", FLOAT, -0.15},
		{"99999999999999999999", FLOAT, 1e20},
		{"9223372036854775807", INTEGER, int64(9223372036854775807)},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("ParseNumber(%q)", test.raw), func(t *testing.T) {
			v, err := ParseNumber(test.raw)
			require.NoError(t, err)
			assert.Equal(t, test.kind, v.Kind)
			assert.Equal(t, test.raw, v.Raw)
			assert.Equal(t, test.native, v.Native())
		})
	}

	_, err := ParseNumber("12ab")
	assert.EqualError(t, err, `invalid integer literal "12ab"`)
}

func TestValueConversions(t *testing.T) {
	f, ok := NewInteger(3).AsFloat()
	assert.True(t, ok)
	assert.Equal(t, 3.0, f)

	i, ok := NewFloat(4.0).AsInteger()
	assert.True(t, ok)
	assert.Equal(t, int64(4), i)

	_, ok = NewFloat(4.5).AsInteger()
	assert.False(t, ok)

	_, ok = NewBoolean(true).AsFloat()
	assert.False(t, ok)

	for _, f := range []float64{1e19, -1e19, 9223372036854775808.0, math.Inf(1)} {
		_, ok = NewFloat(f).AsInteger()
		assert.False(t, ok, "AsInteger(%g)", f)
	}
	i, ok = NewFloat(-9223372036854775808.0).AsInteger()
	assert.True(t, ok)
	assert.Equal(t, int64(math.MinInt64), i)

	assert.Equal(t, `"hi"`, NewString("hi").Raw)
	assert.Equal(t, "2.5", NewFloat(2.5).String())
}

func TestValueMarshalJSON(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{NewInteger(7), "7"},
		{NewFloat(0.5), "0.5"},
		{NewBoolean(false), "false"},
		{NewString(`a"b`), `"a\"b"`},
	}
	for _, test := range tests {
		out, err := test.value.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, test.want, string(out))
	}
}

func TestBoolExpr(t *testing.T) {
	tru := NewBoolOperand("true")
	fls := NewBoolOperand("false")

	and := &BoolAnd{Args: []BoolExpr{tru, fls}}
	or := &BoolOr{Args: []BoolExpr{fls, and, tru}}
	not := &BoolNot{Arg: and}

	assert.False(t, and.Eval())
	assert.True(t, or.Eval())
	assert.True(t, not.Eval())

	assert.Equal(t, "(true and false)", and.String())
	assert.Equal(t, "(false or (true and false) or true)", or.String())
	assert.Equal(t, "not (true and false)", not.String())
}

func TestUnresolvedCalculation(t *testing.T) {
	inner := NewUnresolvedCalculation(&Variable{Name: "i"}, NewConstant(NewInteger(1)), &Operator{Op: token.PLUS})
	outer := NewUnresolvedCalculation(inner, &Variable{Name: "k"}, &Operator{Op: token.STAR})

	assert.Equal(t, "((i + 1) * k)", outer.String())
	assert.Equal(t, []string{"i", "k"}, outer.Variables())
	assert.True(t, IsDeferred(outer))
	assert.False(t, IsDeferred(NewConstant(NewInteger(1))))
}

func TestCloneIsDeep(t *testing.T) {
	circle := &Statement{
		Type:      PRIMITIVE,
		Name:      "circle",
		Arguments: []Term{&Assignment{Identifier: "r", Value: NewConstant(NewInteger(1))}},
		Modifiers: []*Statement{{Type: MODIFIER, Name: "translate"}},
	}
	scope := &Scope{
		Name:     "union",
		Children: []Node{circle},
		Loop: &Loop{
			Variable: "i",
			Range:    &Vector{X: NewConstant(NewInteger(0)), Y: &Variable{Name: "n"}},
		},
	}

	clone := Clone(scope).(*Scope)
	require.NotSame(t, scope, clone)
	require.NotSame(t, scope.Loop, clone.Loop)
	require.NotSame(t, scope.Loop.Range, clone.Loop.Range)

	clonedCircle := clone.Children[0].(*Statement)
	require.NotSame(t, circle, clonedCircle)
	require.NotSame(t, circle.Modifiers[0], clonedCircle.Modifiers[0])

	clonedCircle.Name = "rect"
	clonedCircle.Arguments[0] = NewConstant(NewInteger(2))
	assert.Equal(t, "circle", circle.Name)
	assert.IsType(t, &Assignment{}, circle.Arguments[0])
}

func TestStatementsAndScopes(t *testing.T) {
	body := []Node{
		&Statement{Type: PRIMITIVE, Name: "circle"},
		&Scope{Name: "union", Children: []Node{
			&Statement{Type: PRIMITIVE, Name: "rect"},
			&Scope{Name: "assign", Children: []Node{&Statement{Type: PRIMITIVE, Name: "square"}}},
		}},
	}

	var names []string
	for _, stmt := range Statements(body) {
		names = append(names, stmt.Name)
	}
	assert.Equal(t, []string{"circle", "rect", "square"}, names)
	assert.Len(t, Scopes(body), 2)
}

func TestString(t *testing.T) {
	stmt := &Statement{
		Type:      PRIMITIVE,
		Name:      "circle",
		Arguments: []Term{&Assignment{Identifier: "r", Value: NewConstant(NewInteger(5))}},
		Modifiers: []*Statement{{
			Type:      MODIFIER,
			Name:      "translate",
			Arguments: []Term{NewConstant(NewInteger(1)), NewConstant(NewInteger(2))},
		}},
	}
	assert.Equal(t, "translate(1, 2) circle(r = 5);", stmt.String())

	scope := &Scope{Name: "difference", Children: []Node{stmt}}
	assert.Equal(t, "difference() { translate(1, 2) circle(r = 5); }", scope.String())
}

func TestDump(t *testing.T) {
	body := []Node{
		&Scope{
			Name:      "assign",
			Arguments: []Term{&Assignment{Identifier: "i", Value: NewConstant(NewInteger(0))}},
			Children: []Node{&Statement{
				Type:      PRIMITIVE,
				Name:      "circle",
				Arguments: []Term{&Assignment{Identifier: "r", Value: &Variable{Name: "i"}}},
			}},
		},
	}

	dumped := Dump(body)
	require.Len(t, dumped, 1)
	scope := dumped[0].(map[string]any)
	assert.Equal(t, "assign", scope["scope"])

	children := scope["children"].([]any)
	circle := children[0].(map[string]any)
	assert.Equal(t, "circle", circle["primitive"])
	assert.Equal(t, []any{map[string]any{"r": map[string]any{"variable": "i"}}}, circle["arguments"])
}

func TestLoopExpand(t *testing.T) {
	body := []Node{&Statement{Type: PRIMITIVE, Name: "circle", Arguments: []Term{&Variable{Name: "i"}}}}
	loop := &Loop{
		Variable: "i",
		Range:    &Vector{X: NewConstant(NewInteger(1)), Y: NewConstant(NewFloat(4))},
	}

	nodes, err := loop.Expand(body)
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	for i, node := range nodes {
		scope := node.(*Scope)
		assert.Equal(t, "assign", scope.Name)
		require.Len(t, scope.Assignments(), 1)
		assert.Equal(t, fmt.Sprintf("i = %d", i+1), scope.Assignments()[0].String())
		require.Len(t, scope.Children, 1)
		assert.NotSame(t, body[0], scope.Children[0])
	}

	loop.Range.Y = NewConstant(NewInteger(1))
	nodes, err = loop.Expand(body)
	require.NoError(t, err)
	assert.Empty(t, nodes)

	loop.Range.Y = NewConstant(NewFloat(2.5))
	_, err = loop.Expand(body)
	assert.EqualError(t, err, "loop range [1 : 2.5] must have integer endpoints")

	loop.Range.Y = NewConstant(NewInteger(MaxLoopIterations + 2))
	_, err = loop.Expand(body)
	assert.Error(t, err)
}

func TestLoopExpandExtremeRange(t *testing.T) {
	tests := []struct {
		from, to Value
	}{
		{NewInteger(-9223372036854775807), NewInteger(9223372036854775807)},
		{NewInteger(math.MinInt64), NewInteger(math.MaxInt64)},
		{NewInteger(0), NewInteger(math.MaxInt64)},
		{NewInteger(math.MinInt64), NewInteger(0)},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("Expand([%s : %s])", test.from, test.to), func(t *testing.T) {
			loop := &Loop{
				Variable: "i",
				Range:    &Vector{X: NewConstant(test.from), Y: NewConstant(test.to)},
			}
			_, err := loop.Expand(nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "iterations")
		})
	}

	loop := &Loop{
		Variable: "i",
		Range:    &Vector{X: NewConstant(NewInteger(0)), Y: NewConstant(NewFloat(1e19))},
	}
	_, err := loop.Expand(nil)
	assert.EqualError(t, err, "loop range [0 : 1e+19] must have integer endpoints")

	loop.Range.X = NewConstant(NewInteger(math.MaxInt64))
	loop.Range.Y = NewConstant(NewInteger(math.MinInt64))
	nodes, err := loop.Expand(nil)
	require.NoError(t, err)
	assert.Empty(t, nodes)
}
