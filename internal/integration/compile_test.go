package integration

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HicaroD/fcad/internal/diagnostics"
	"github.com/HicaroD/fcad/internal/plan"
	"github.com/HicaroD/fcad/internal/sema"
	"github.com/HicaroD/fcad/internal/testutil"
)

func TestCompileGear(t *testing.T) {
	result, err := testutil.CompileFile("testdata/gear.fcad")
	require.NoError(t, err)

	assert.Equal(t, []string{"shapes"}, result.Program.Uses)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, diagnostics.WARNING, result.Diagnostics[0].Severity)

	require.Len(t, result.Plan, 1)
	difference := result.Plan[0]
	assert.Equal(t, "difference", difference.Name)
	require.Len(t, difference.Children, 5)
	assert.Equal(t, 10.0, difference.Children[0].Number("r"))

	for i, tooth := range difference.Children[1:] {
		assert.Equal(t, "assign", tooth.Name)
		assert.Equal(t, float64(i), tooth.Number("i"))

		require.Len(t, tooth.Children, 1)
		square := tooth.Children[0]
		require.Len(t, square.Modifiers, 2)
		assert.Equal(t, float64(i*90), square.Modifiers[0].Number("a"))
		assert.Equal(t, 10.0, square.Modifiers[1].Number("x"))
		assert.Equal(t, 0.0, square.Modifiers[1].Number("y"))
	}
}

func TestCompileGrid(t *testing.T) {
	result, err := testutil.CompileFile("testdata/grid.fcad")
	require.NoError(t, err)
	assert.Empty(t, result.Diagnostics)

	require.Len(t, result.Plan, 3)
	for i, op := range result.Plan {
		circle := op.Children[0]
		assert.Equal(t, 16.0, circle.Number("$fn"))
		assert.Equal(t, float64(i)*2.5, circle.Modifiers[0].Number("x"))
	}
}

func TestCompilePlate(t *testing.T) {
	result, err := testutil.CompileFile("testdata/plate.fcad")
	require.NoError(t, err)

	require.Len(t, result.Plan, 1)
	rect := result.Plan[0].Children[0]
	assert.Equal(t, 40.0, rect.Number("w"))
	assert.Equal(t, 20.0, rect.Number("h"))

	union := result.Plan[0].Children[1]
	assert.Equal(t, "union", union.Name)
	require.Len(t, union.Modifiers, 1)
	assert.Equal(t, 0.5, union.Modifiers[0].Number("x"))
	require.Len(t, union.Children, 2)
	assert.Equal(t, 4.0, union.Children[0].Number("r"))
	assert.Equal(t, 4.0, union.Children[1].Number("size"))

	dump := plan.Dump(result.Plan)
	require.Len(t, dump, 1)
}

func TestUndefinedVariable(t *testing.T) {
	_, err := testutil.CompileFile("testdata/errors/undefined_var.fcad")
	require.Error(t, err)
	assert.ErrorIs(t, err, sema.ErrUnresolved)
	assert.Contains(t, err.Error(), "variable 'y' could not be resolved")
}

func TestRedefinition(t *testing.T) {
	_, err := testutil.CompileFile("testdata/errors/redefinition.fcad")
	require.Error(t, err)

	loc, ok := diagnostics.Located(err)
	require.True(t, ok)
	assert.Equal(t, 3, loc.Line)
	assert.Contains(t, err.Error(), "Redefinition of 'x'")
}

func TestTypeMismatch(t *testing.T) {
	_, err := testutil.CompileFile("testdata/errors/type_mismatch.fcad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "argument 'h' of rect must be a number")
}

func TestBadSyntax(t *testing.T) {
	_, err := testutil.CompileFile("testdata/errors/bad_syntax.fcad")
	require.Error(t, err)

	var synErr *diagnostics.SyntaxError
	require.True(t, errors.As(err, &synErr))
	loc, ok := diagnostics.Located(err)
	require.True(t, ok)
	assert.Equal(t, 2, loc.Line)
}
