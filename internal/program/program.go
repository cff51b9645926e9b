// Package program holds the read-only symbol table the core consults:
// specification functions, predicates, and field declarations. The table is
// built once by the front end and never mutated afterwards.
package program

import (
	"github.com/fracta-labs/fracta/internal/assertion"
	"github.com/fracta-labs/fracta/internal/term"
)

// Formal is a named, sorted formal argument.
type Formal struct {
	Name string
	Sort term.Sort
}

// Function carries the per-function data the translator needs: formal
// bindings, the result placeholder, the topological height used to detect
// direct or mutual recursion, and the predicate triggers the function's
// body references. Immutable once the table is built.
type Function struct {
	Name     string
	Formals  []Formal
	Result   Formal
	Height   int
	Triggers []string
	Pre      []assertion.Assertion
	Body     assertion.Expr
}

// Predicate is a declared abstract predicate.
type Predicate struct {
	Name    string
	Formals []Formal
}

// Table is the read-only symbol table.
type Table struct {
	funcs  map[string]*Function
	preds  map[string]*Predicate
	fields map[string]term.Sort
}

// NewTable builds a symbol table from the given declarations.
func NewTable(funcs []*Function, preds []*Predicate, fields map[string]term.Sort) *Table {
	t := &Table{
		funcs:  make(map[string]*Function, len(funcs)),
		preds:  make(map[string]*Predicate, len(preds)),
		fields: make(map[string]term.Sort, len(fields)),
	}
	for _, f := range funcs {
		t.funcs[f.Name] = f
	}
	for _, p := range preds {
		t.preds[p.Name] = p
	}
	for name, sort := range fields {
		t.fields[name] = sort
	}
	return t
}

// Function looks up a function by name.
func (t *Table) Function(name string) (*Function, bool) {
	f, ok := t.funcs[name]
	return f, ok
}

// Predicate looks up a predicate by name.
func (t *Table) Predicate(name string) (*Predicate, bool) {
	p, ok := t.preds[name]
	return p, ok
}

// FieldSort returns the value sort of a declared field. Undeclared fields
// default to Int so lookups stay total.
func (t *Table) FieldSort(name string) term.Sort {
	if s, ok := t.fields[name]; ok {
		return s
	}
	return term.SortInt
}

// Functions returns all declared functions in no particular order.
func (t *Table) Functions() []*Function {
	out := make([]*Function, 0, len(t.funcs))
	for _, f := range t.funcs {
		out = append(out, f)
	}
	return out
}
