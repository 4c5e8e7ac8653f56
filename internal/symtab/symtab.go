// Package symtab records the global variables and the module/parameter
// declarations met while parsing one file.
package symtab

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/HicaroD/fcad/internal/ast"
)

type Kind int

const (
	NO_KIND Kind = iota
	GLOBAL_VAR
	MODULE
	PARAMETER
)

func (kind Kind) String() string {
	switch kind {
	case NO_KIND:
		return "NO_KIND"
	case GLOBAL_VAR:
		return "GLOBAL_VAR"
	case MODULE:
		return "MODULE"
	case PARAMETER:
		return "PARAMETER"
	}
	return fmt.Sprintf("Kind(%d)", int(kind))
}

type Entry struct {
	Name string
	Kind Kind
	// Parent is the owning module name of a parameter, empty otherwise.
	Parent     string
	Value      ast.Term
	Parameters []string
}

// RedefinitionError is returned when a name is already bound as a global
// variable under the same parent.
type RedefinitionError struct {
	Name string
}

func (e *RedefinitionError) Error() string {
	return fmt.Sprintf("Redefinition of '%s'", e.Name)
}

// Table is append-only. Lookups scan linearly; files are small.
type Table struct {
	entries []*Entry
}

func New() *Table {
	return &Table{}
}

func (table *Table) Len() int { return len(table.entries) }

func (table *Table) Entries() []*Entry { return table.entries }

// InsertGlobalVar binds name to value and returns the new table size.
func (table *Table) InsertGlobalVar(name string, value ast.Term) (int, error) {
	return table.insertId(name, GLOBAL_VAR, "", value)
}

// InsertParameter declares name as a parameter of module and appends it to
// the module's parameter list.
func (table *Table) InsertParameter(name, module string) (int, error) {
	index, err := table.insertId(name, PARAMETER, module, nil)
	if err != nil {
		return 0, err
	}
	if entry := table.lookup(module, MODULE, ""); entry != nil {
		entry.Parameters = append(entry.Parameters, name)
	}
	return index, nil
}

func (table *Table) InsertModule(name string) (int, error) {
	return table.insertId(name, MODULE, "", nil)
}

func (table *Table) insertId(name string, kind Kind, parent string, value ast.Term) (int, error) {
	if table.Contains(name, GLOBAL_VAR, parent) {
		return 0, &RedefinitionError{Name: name}
	}
	table.entries = append(table.entries, &Entry{Name: name, Kind: kind, Parent: parent, Value: value})
	return len(table.entries), nil
}

func (table *Table) Contains(name string, kind Kind, parent string) bool {
	return table.lookup(name, kind, parent) != nil
}

// Value returns the value bound to (name, kind, parent). The second result
// is false when there is no such entry.
func (table *Table) Value(name string, kind Kind, parent string) (ast.Term, bool) {
	entry := table.lookup(name, kind, parent)
	if entry == nil {
		return nil, false
	}
	return entry.Value, true
}

func (table *Table) GlobalValue(name string) (ast.Term, bool) {
	return table.Value(name, GLOBAL_VAR, "")
}

// Parameters returns the declared parameters of module, in order.
func (table *Table) Parameters(module string) []string {
	entry := table.lookup(module, MODULE, "")
	if entry == nil {
		return nil
	}
	return entry.Parameters
}

func (table *Table) lookup(name string, kind Kind, parent string) *Entry {
	for _, entry := range table.entries {
		if entry.Name == name && entry.Kind == kind && entry.Parent == parent {
			return entry
		}
	}
	return nil
}

// Display writes the table as aligned columns.
func (table *Table) Display(w io.Writer) error {
	if len(table.entries) == 0 {
		_, err := fmt.Fprintln(w, "=== NO DATA IN SYMBOL TABLE ===")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "No\tSymbol name\tKind\tParent\tValue\tParameters")
	for i, entry := range table.entries {
		value := "-"
		if entry.Value != nil {
			value = entry.Value.String()
		}
		parent := "-"
		if entry.Parent != "" {
			parent = entry.Parent
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t(%s)\n",
			i, entry.Name, entry.Kind, parent, value, strings.Join(entry.Parameters, ", "))
	}
	return tw.Flush()
}
