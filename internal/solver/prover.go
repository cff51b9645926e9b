// Package solver defines the bridge to the external decision procedure.
// The core only ever assumes facts and allocates fresh symbols; it never
// inspects solver internals.
package solver

import (
	"fmt"

	"github.com/fracta-labs/fracta/internal/term"
)

// Prover is the decision-procedure bridge consumed by the core.
type Prover interface {
	// Assume adds a background fact.
	Assume(t term.Term)
	// Fresh allocates a fresh uninterpreted symbol of the given sort.
	Fresh(prefix string, s term.Sort) term.Term
	// Push opens an assumption scope; Pop discards every fact assumed
	// since the matching Push. Fresh-symbol allocation is not scoped.
	Push()
	Pop()
}

// Recorder is a Prover that records assumed facts and allocates
// deterministic fresh symbols. It backs the scenario runner and the tests.
type Recorder struct {
	facts    []term.Term
	counters map[string]int
	scopes   []int
}

// NewRecorder creates an empty recording prover.
func NewRecorder() *Recorder {
	return &Recorder{counters: make(map[string]int)}
}

func (r *Recorder) Assume(t term.Term) {
	r.facts = append(r.facts, t)
}

func (r *Recorder) Fresh(prefix string, s term.Sort) term.Term {
	n := r.counters[prefix]
	r.counters[prefix] = n + 1
	return term.Var{Name: fmt.Sprintf("%s@%d", prefix, n), S: s}
}

func (r *Recorder) Push() {
	r.scopes = append(r.scopes, len(r.facts))
}

func (r *Recorder) Pop() {
	if len(r.scopes) == 0 {
		return
	}
	mark := r.scopes[len(r.scopes)-1]
	r.scopes = r.scopes[:len(r.scopes)-1]
	r.facts = r.facts[:mark]
}

// Facts returns the assumed facts in assumption order. Callers must not
// modify the slice.
func (r *Recorder) Facts() []term.Term {
	return r.facts
}
