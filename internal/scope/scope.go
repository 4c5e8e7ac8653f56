// Package scope is a chain of name bindings, innermost first.
package scope

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrAlreadyBound = errors.New("name already bound in scope")
	ErrNotFound     = errors.New("name not found in scope")
)

type Scope[V any] struct {
	Parent   *Scope[V]
	Bindings map[string]V
}

func New[V any](parent *Scope[V]) *Scope[V] {
	return &Scope[V]{Parent: parent, Bindings: map[string]V{}}
}

// Push opens a child scope of scope.
func (scope *Scope[V]) Push() *Scope[V] {
	return New(scope)
}

func (scope *Scope[V]) Insert(name string, value V) error {
	if _, ok := scope.Bindings[name]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyBound, name)
	}
	scope.Bindings[name] = value
	return nil
}

// Lookup walks from scope to the outermost parent and returns the first
// binding of name.
func (scope *Scope[V]) Lookup(name string) (V, error) {
	for current := scope; current != nil; current = current.Parent {
		if value, ok := current.Bindings[name]; ok {
			return value, nil
		}
	}
	var empty V
	return empty, fmt.Errorf("%w: %s", ErrNotFound, name)
}

func (scope *Scope[V]) Depth() int {
	depth := 0
	for current := scope.Parent; current != nil; current = current.Parent {
		depth++
	}
	return depth
}

func (scope *Scope[V]) String() string {
	var levels []string
	for current := scope; current != nil; current = current.Parent {
		names := make([]string, 0, len(current.Bindings))
		for name, value := range current.Bindings {
			names = append(names, fmt.Sprintf("%s=%v", name, value))
		}
		sort.Strings(names)
		levels = append(levels, "{"+strings.Join(names, " ")+"}")
	}
	return strings.Join(levels, " -> ")
}
