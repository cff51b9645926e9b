// Package branch provides the default branch explorer: both sides of an
// impure conditional are explored sequentially under the respective path
// condition, and their outcomes aggregated deterministically.
package branch

import (
	"github.com/fracta-labs/fracta/internal/produce"
	"github.com/fracta-labs/fracta/internal/solver"
	"github.com/fracta-labs/fracta/internal/state"
	"github.com/fracta-labs/fracta/internal/term"
)

// Sequential explores the then-side first, then the else-side. Branches
// receive the same starting state; states are values, so the sides never
// alias each other.
type Sequential struct {
	Prover solver.Prover
}

// NewSequential creates a sequential explorer over the given prover.
func NewSequential(pv solver.Prover) *Sequential {
	return &Sequential{Prover: pv}
}

// Branch explores both continuations. The condition is assumed on the
// then-side and its negation on the else-side, each inside its own
// assumption scope; aggregation is conjunctive: the branch succeeds iff
// both sides succeed, with failures collected in exploration order.
func (s *Sequential) Branch(st state.State, cond term.Term, then, els produce.Cont) produce.Result {
	s.Prover.Push()
	s.Prover.Assume(cond)
	thenResult := then(st)
	s.Prover.Pop()

	s.Prover.Push()
	s.Prover.Assume(term.Not(cond))
	elseResult := els(st)
	s.Prover.Pop()

	return thenResult.And(elseResult)
}
