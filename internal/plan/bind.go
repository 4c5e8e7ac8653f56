package plan

import (
	"errors"
	"fmt"

	"github.com/HicaroD/fcad/internal/ast"
	"github.com/HicaroD/fcad/internal/builtin"
)

var ErrMixedArguments = errors.New("You can either use Assignments or Arguments e.g. circle(r=1); or circle(1); not both")

// BindError is an argument binding failure. Err is set for failures that
// callers may want to match with errors.Is.
type BindError struct {
	Message string
	Err     error
}

func (e *BindError) Error() string { return e.Message }
func (e *BindError) Unwrap() error { return e.Err }

func bindErrorf(format string, args ...any) *BindError {
	return &BindError{Message: fmt.Sprintf(format, args...)}
}

type Param struct {
	Name  string
	Value ast.Value
}

// Bind matches the resolved arguments of a call to the parameters of def.
// Arguments are either all named or all positional. Parameters come back in
// declaration order, with defaults filled in.
func Bind(def *builtin.Def, args []ast.Term) ([]Param, error) {
	var named []*ast.Assignment
	var positional []ast.Term
	for _, arg := range args {
		if assignment, ok := arg.(*ast.Assignment); ok {
			named = append(named, assignment)
		} else {
			positional = append(positional, arg)
		}
	}

	if len(named) > 0 && len(positional) > 0 {
		return nil, &BindError{Message: ErrMixedArguments.Error(), Err: ErrMixedArguments}
	}

	if def.Bindings {
		return bindFree(def, named, positional)
	}

	values := make([]*ast.Value, len(def.Params))
	if len(positional) > 0 {
		if len(positional) > len(def.Params) {
			return nil, bindErrorf("wrong number of arguments for %s: expected at most %d, got %d",
				def.Name, len(def.Params), len(positional))
		}
		for i, arg := range positional {
			value, err := checkValue(def, def.Params[i], arg)
			if err != nil {
				return nil, err
			}
			values[i] = value
		}
	}

	for _, assignment := range named {
		index := paramIndex(def, assignment.Identifier)
		if index < 0 {
			return nil, bindErrorf("unknown argument '%s' for %s", assignment.Identifier, def.Name)
		}
		if values[index] != nil {
			return nil, bindErrorf("argument '%s' given twice for %s", def.Params[index].Name, def.Name)
		}
		value, err := checkValue(def, def.Params[index], assignment.Value)
		if err != nil {
			return nil, err
		}
		values[index] = value
	}

	params := make([]Param, len(def.Params))
	for i, param := range def.Params {
		value := values[i]
		if value == nil {
			if param.Required() {
				return nil, bindErrorf("missing required argument '%s' for %s", param.Name, def.Name)
			}
			value = param.Default
		}
		params[i] = Param{Name: param.Name, Value: *value}
	}
	return params, nil
}

// bindFree binds scopes such as assign, whose named arguments are
// arbitrary.
func bindFree(def *builtin.Def, named []*ast.Assignment, positional []ast.Term) ([]Param, error) {
	if len(positional) > 0 {
		return nil, bindErrorf("%s only takes named arguments", def.Name)
	}
	params := make([]Param, 0, len(named))
	for _, assignment := range named {
		constant, ok := assignment.Value.(*ast.Constant)
		if !ok {
			return nil, bindErrorf("argument '%s' of %s is not resolved", assignment.Identifier, def.Name)
		}
		params = append(params, Param{Name: assignment.Identifier, Value: constant.Value})
	}
	return params, nil
}

func paramIndex(def *builtin.Def, name string) int {
	for i, param := range def.Params {
		if param.Matches(name) {
			return i
		}
	}
	return -1
}

func checkValue(def *builtin.Def, param *builtin.Param, arg ast.Term) (*ast.Value, error) {
	constant, ok := arg.(*ast.Constant)
	if !ok {
		return nil, bindErrorf("argument '%s' of %s is not resolved", param.Name, def.Name)
	}
	if !param.Type.Accepts(constant.Value) {
		return nil, bindErrorf("argument '%s' of %s must be a %s, got %s %s",
			param.Name, def.Name, param.Type, constant.Value.Kind, constant.Value)
	}
	value := constant.Value
	return &value, nil
}
