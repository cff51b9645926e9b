// Package verify wires the production core into a runnable whole: it loads
// scenario files, builds the engine with its default collaborators, and
// reports produced heaps, background facts, and diagnostics.
package verify

import (
	"fmt"
	"sort"

	"github.com/fracta-labs/fracta/internal/branch"
	"github.com/fracta-labs/fracta/internal/produce"
	"github.com/fracta-labs/fracta/internal/program"
	"github.com/fracta-labs/fracta/internal/quantified"
	"github.com/fracta-labs/fracta/internal/report"
	"github.com/fracta-labs/fracta/internal/solver"
	"github.com/fracta-labs/fracta/internal/state"
	"github.com/fracta-labs/fracta/internal/term"
	"github.com/fracta-labs/fracta/internal/translate"
)

// Report is the outcome of running one scenario.
//
// Heap is the final state of the last explored path: when an assertion
// branches, the engine explores every side, but only one state can be
// threaded into the next assertion, and the else-most path wins. PathHeaps
// holds the final heap of every explored path of the last assertion in
// exploration order; Heap equals its last entry. Facts are the surviving
// unscoped background facts; assumptions made under a branch scope are
// discarded with that scope and do not appear here.
type Report struct {
	Name      string
	Heap      state.Heap
	PathHeaps []state.Heap
	Facts     []term.Term
	Failures  []produce.Failure
	Warnings  []string
}

// Succeeded reports whether every produced assertion succeeded on every
// explored path.
func (r *Report) Succeeded() bool {
	return len(r.Failures) == 0
}

// Run loads and runs a scenario file.
func Run(path string) (*Report, error) {
	sc, err := LoadScenario(path)
	if err != nil {
		return nil, err
	}
	return RunScenario(sc)
}

// RunSource runs a scenario given in memory.
func RunSource(source []byte) (*Report, error) {
	sc, err := ParseScenario(source)
	if err != nil {
		return nil, err
	}
	return RunScenario(sc)
}

// RunScenario produces the scenario's assertions in order against fresh
// snapshots and collects the resulting state.
func RunScenario(sc *Scenario) (*Report, error) {
	table, err := sc.Table()
	if err != nil {
		return nil, err
	}

	prover := solver.NewRecorder()
	explorer := branch.NewSequential(prover)
	qp := quantified.NewBasic(sc.Options.QuantifiedFields...)
	wands := &quantified.BasicWands{}
	producer := produce.New(prover, table, explorer, qp, wands, report.NopSpans{}, produce.Config{
		AssertPredicateTriggers: sc.Options.PredicateTriggers,
	})

	st := state.New()
	for name, sortName := range sc.Variables {
		sort, err := parseSort(sortName)
		if err != nil {
			return nil, fmt.Errorf("variable %s: %w", name, err)
		}
		st = st.Bind(name, term.Var{Name: name, S: sort})
	}

	rep := &Report{Name: sc.Name}
	for i, node := range sc.Produce {
		a, err := node.assertion()
		if err != nil {
			return nil, fmt.Errorf("assertion %d: %w", i, err)
		}
		snap := prover.Fresh("$snap", term.SortSnap)
		var paths []state.State
		result := producer.Produce(st, produce.ConstSnap(snap), a, sc.Name, func(next state.State) produce.Result {
			paths = append(paths, next)
			return produce.Success()
		})
		if !result.IsSuccess() {
			rep.Failures = append(rep.Failures, result.Failures()...)
			continue
		}
		rep.PathHeaps = rep.PathHeaps[:0]
		for _, path := range paths {
			rep.PathHeaps = append(rep.PathHeaps, path.Heap)
		}
		// Only one state threads into the next assertion; the else-most
		// path wins, see the Report doc.
		st = paths[len(paths)-1]
	}

	rep.Heap = st.Heap
	rep.Facts = prover.Facts()
	return rep, nil
}

// Axioms translates every scenario function that has a body into its
// defining axiom plus the limited-coincidence axiom. Translation gaps
// surface as warnings on the report, not as errors.
func Axioms(sc *Scenario) ([]term.Term, []string, error) {
	table, err := sc.Table()
	if err != nil {
		return nil, nil, err
	}

	warner := &report.CollectWarner{}
	var axioms []term.Term
	for _, fn := range sortFunctions(table.Functions()) {
		if fn.Body == nil {
			continue
		}
		ctx := translate.Context{
			Table:  table,
			Warner: warner,
		}
		axiom, ok := translate.FunctionAxiom(fn, ctx)
		if !ok {
			continue
		}
		axioms = append(axioms, axiom, translate.LimitedCoincidenceAxiom(fn))
	}
	return axioms, warner.Warnings, nil
}

// sortFunctions is a stable order for axiom output.
func sortFunctions(funcs []*program.Function) []*program.Function {
	out := make([]*program.Function, len(funcs))
	copy(out, funcs)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
