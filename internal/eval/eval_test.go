package eval

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HicaroD/fcad/internal/ast"
	"github.com/HicaroD/fcad/internal/lexer/token"
)

// postfix builds a stack from a space separated postfix spelling.
func postfix(t *testing.T, lookup Lookup, items ...string) *Stack {
	t.Helper()
	stack := NewStack(lookup)
	for _, item := range items {
		switch item {
		case "+":
			stack.PushOperator(token.PLUS, token.Pos{})
		case "-":
			stack.PushOperator(token.MINUS, token.Pos{})
		case "*":
			stack.PushOperator(token.STAR, token.Pos{})
		case "/":
			stack.PushOperator(token.SLASH, token.Pos{})
		case "^":
			stack.PushOperator(token.CARET, token.Pos{})
		default:
			if item[0] >= '0' && item[0] <= '9' || item[0] == '-' {
				require.NoError(t, stack.PushNumber(item, token.Pos{}))
			} else {
				stack.PushIdentifier(item, token.Pos{})
			}
		}
	}
	return stack
}

func TestReduceConstant(t *testing.T) {
	tests := []struct {
		stack    []string
		expected string
		kind     ast.ValueKind
	}{
		{[]string{"2", "3", "4", "*", "+"}, "14", ast.INTEGER},
		{[]string{"2", "3", "+", "4", "*"}, "20", ast.INTEGER},
		{[]string{"2", "3", "2", "^", "^"}, "512", ast.INTEGER},
		{[]string{"2", "3", "^", "2", "^"}, "64", ast.INTEGER},
		{[]string{"10", "4", "-"}, "6", ast.INTEGER},
		{[]string{"1", "2", "/"}, "0.5", ast.FLOAT},
		{[]string{"4", "2", "/"}, "2", ast.FLOAT},
		{[]string{"1.5", "2", "*"}, "3", ast.FLOAT},
		{[]string{"2", "-1", "^"}, "0.5", ast.FLOAT},
		{[]string{"0", "-3", "-"}, "3", ast.INTEGER},
		{[]string{"42"}, "42", ast.INTEGER},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("%v", test.stack), func(t *testing.T) {
			result, err := postfix(t, nil, test.stack...).Reduce()
			require.NoError(t, err)

			constant, ok := result.(*ast.Constant)
			require.True(t, ok, "expected constant, got %T", result)
			assert.Equal(t, test.expected, constant.String())
			assert.Equal(t, test.kind, constant.Value.Kind)
		})
	}
}

func TestIntegerOverflow(t *testing.T) {
	tests := []struct {
		stack    []string
		kind     ast.ValueKind
		expected float64
	}{
		{[]string{"2", "62", "^"}, ast.INTEGER, 4611686018427387904},
		{[]string{"2", "63", "^"}, ast.FLOAT, 9223372036854775808},
		{[]string{"2", "64", "^"}, ast.FLOAT, 18446744073709551616},
		{[]string{"3", "40", "^"}, ast.FLOAT, 12157665459056928801},
		{[]string{"-1", "63", "^"}, ast.INTEGER, -1},
		{[]string{"10", "18", "^"}, ast.INTEGER, 1e18},
		{[]string{"10", "19", "^"}, ast.FLOAT, 1e19},
		{[]string{"9223372036854775807", "1", "+"}, ast.FLOAT, 9223372036854775808},
		{[]string{"-9223372036854775808", "1", "-"}, ast.FLOAT, -9223372036854775809},
		{[]string{"-9223372036854775808", "-1", "+"}, ast.FLOAT, -9223372036854775809},
		{[]string{"9223372036854775807", "-1", "-"}, ast.FLOAT, 9223372036854775808},
		{[]string{"3037000500", "3037000500", "*"}, ast.FLOAT, 3037000500.0 * 3037000500.0},
		{[]string{"-9223372036854775808", "-1", "*"}, ast.FLOAT, 9223372036854775808},
		{[]string{"-1", "-9223372036854775808", "*"}, ast.FLOAT, 9223372036854775808},
		{[]string{"-9223372036854775808", "1", "*"}, ast.INTEGER, -9223372036854775808},
		{[]string{"99999999999999999999", "1", "+"}, ast.FLOAT, 1e20},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("%v", test.stack), func(t *testing.T) {
			result, err := postfix(t, nil, test.stack...).Reduce()
			require.NoError(t, err)

			constant, ok := result.(*ast.Constant)
			require.True(t, ok, "expected constant, got %T", result)
			assert.Equal(t, test.kind, constant.Value.Kind)
			f, _ := constant.Value.AsFloat()
			assert.Equal(t, test.expected, f)
		})
	}
}

func TestMathConstants(t *testing.T) {
	result, err := postfix(t, nil, "PI", "2", "*").Reduce()
	require.NoError(t, err)
	f, ok := result.(*ast.Constant).Value.AsFloat()
	require.True(t, ok)
	assert.InDelta(t, 6.283185, f, 1e-6)

	result, err = postfix(t, nil, "E").Reduce()
	require.NoError(t, err)
	f, _ = result.(*ast.Constant).Value.AsFloat()
	assert.InDelta(t, 2.718281, f, 1e-6)
}

func TestGlobalLookup(t *testing.T) {
	globals := map[string]ast.Term{
		"size": ast.NewConstant(ast.NewInteger(10)),
	}
	lookup := func(name string) (ast.Term, bool) {
		value, ok := globals[name]
		return value, ok
	}

	result, err := postfix(t, lookup, "size", "2", "/").Reduce()
	require.NoError(t, err)
	assert.Equal(t, "5", result.String())
}

func TestReduceDeferred(t *testing.T) {
	result, err := postfix(t, nil, "i", "1", "+").Reduce()
	require.NoError(t, err)

	calculation, ok := result.(*ast.UnresolvedCalculation)
	require.True(t, ok, "expected unresolved calculation, got %T", result)
	assert.Equal(t, "(i + 1)", calculation.String())
	require.Len(t, calculation.Stack, 3)
	assert.IsType(t, &ast.Variable{}, calculation.Stack[0])
	assert.IsType(t, &ast.Operator{}, calculation.Stack[2])

	// constant parts are still folded
	result, err = postfix(t, nil, "2", "3", "*", "i", "+").Reduce()
	require.NoError(t, err)
	assert.Equal(t, "(6 + i)", result.String())

	// deferral nests
	result, err = postfix(t, nil, "i", "2", "*", "1", "+").Reduce()
	require.NoError(t, err)
	assert.Equal(t, "((i * 2) + 1)", result.String())
	assert.Equal(t, []string{"i"}, result.(*ast.UnresolvedCalculation).Variables())

	result, err = postfix(t, nil, "j").Reduce()
	require.NoError(t, err)
	assert.IsType(t, &ast.Variable{}, result)
}

func TestReduceErrors(t *testing.T) {
	tests := []struct {
		name    string
		build   func(stack *Stack)
		message string
	}{
		{
			name: "division by zero",
			build: func(stack *Stack) {
				stack.Push(ast.NewConstant(ast.NewInteger(1)))
				stack.Push(ast.NewConstant(ast.NewFloat(0)))
				stack.PushOperator(token.SLASH, token.Pos{Line: 1, Column: 3})
			},
			message: "division by zero",
		},
		{
			name: "boolean operand",
			build: func(stack *Stack) {
				stack.Push(ast.NewConstant(ast.NewBoolean(true)))
				stack.Push(ast.NewConstant(ast.NewInteger(1)))
				stack.PushOperator(token.PLUS, token.Pos{})
			},
			message: "boolean operand 'true' for operator '+', expected number",
		},
		{
			name: "bool expression operand",
			build: func(stack *Stack) {
				stack.Push(ast.NewConstant(ast.NewInteger(1)))
				stack.Push(ast.NewBoolOperand("false"))
				stack.PushOperator(token.STAR, token.Pos{})
			},
			message: "invalid operand 'false' for operator '*'",
		},
		{
			name: "underflow",
			build: func(stack *Stack) {
				stack.Push(ast.NewConstant(ast.NewInteger(1)))
				stack.PushOperator(token.PLUS, token.Pos{})
			},
			message: "malformed calculation: missing operand for '+'",
		},
		{
			name:    "empty",
			build:   func(stack *Stack) {},
			message: "malformed calculation: missing operand",
		},
		{
			name: "dangling",
			build: func(stack *Stack) {
				stack.Push(ast.NewConstant(ast.NewInteger(1)))
				stack.Push(ast.NewConstant(ast.NewInteger(2)))
			},
			message: "malformed calculation: 1 dangling terms",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			stack := NewStack(nil)
			test.build(stack)

			_, err := stack.Reduce()
			require.Error(t, err)

			var evalErr *Error
			require.ErrorAs(t, err, &evalErr)
			assert.Equal(t, test.message, evalErr.Message)
		})
	}
}

func TestErrorPosition(t *testing.T) {
	stack := NewStack(nil)
	stack.Push(ast.NewConstant(ast.NewInteger(1)))
	stack.Push(ast.NewConstant(ast.NewInteger(0)))
	stack.PushOperator(token.SLASH, token.Pos{Offset: 7, Line: 2, Column: 3})

	_, err := stack.Reduce()
	var evalErr *Error
	require.ErrorAs(t, err, &evalErr)
	require.NotNil(t, evalErr.Pos)
	assert.Equal(t, 7, evalErr.Pos.Offset)
}
