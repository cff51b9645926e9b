// Package quantified defines the contracts the production engine consumes
// for bulk quantified ownership and magic-wand packaging, together with a
// basic in-tree implementation sufficient for field families and singleton
// wands. The summarization machinery across matching chunks lives behind
// these interfaces.
package quantified

import (
	"github.com/fracta-labs/fracta/internal/assertion"
	"github.com/fracta-labs/fracta/internal/snapshot"
	"github.com/fracta-labs/fracta/internal/solver"
	"github.com/fracta-labs/fracta/internal/state"
	"github.com/fracta-labs/fracta/internal/term"
)

// Support is the bulk quantified-resource subsystem.
type Support interface {
	// Governs reports whether quantified reasoning governs the resource,
	// in which case even single-location production must go through
	// ProduceSingle.
	Governs(resource string) bool
	// Produce performs the bulk heap update for a quantified permission
	// assertion: ownership of the family identified by resource, over the
	// bound vars satisfying cond, with the given per-index permission and
	// snapshot-map value.
	Produce(st state.State, pv solver.Prover, resource string, vars []term.Var, cond, perm, snapMap term.Term) state.State
	// ProduceSingle produces ownership of one location of a governed
	// resource.
	ProduceSingle(st state.State, pv solver.Prover, resource string, args []term.Term, snap, perm term.Term) state.State
}

// WandSupport is the magic-wand packaging subsystem.
type WandSupport interface {
	// Quantified reports whether quantified-wand reasoning applies to the
	// wand.
	Quantified(w assertion.Wand) bool
	// ProduceSingleton builds a singleton quantified chunk for the wand
	// with a snapshot-map value definition and records it for later
	// summarization across matching chunks.
	ProduceSingleton(st state.State, pv solver.Prover, w assertion.Wand, snap, perm term.Term) state.State
}

// Basic implements Support for field families: governed resources are
// configured by name, and production merges quantified chunks directly.
type Basic struct {
	governed map[string]bool
}

// NewBasic creates a Support governing the given resource names.
func NewBasic(governed ...string) *Basic {
	m := make(map[string]bool, len(governed))
	for _, name := range governed {
		m[name] = true
	}
	return &Basic{governed: m}
}

func (b *Basic) Governs(resource string) bool {
	return b.governed[resource]
}

func (b *Basic) Produce(st state.State, pv solver.Prover, resource string, vars []term.Var, cond, perm, snapMap term.Term) state.State {
	chunk := state.QuantifiedChunk{
		Resource: resource,
		Vars:     vars,
		Cond:     cond,
		SnapMap:  snapMap,
		PermAmnt: perm,
	}
	return st.WithHeap(st.Heap.Merge(chunk))
}

func (b *Basic) ProduceSingle(st state.State, pv solver.Prover, resource string, args []term.Term, snap, perm term.Term) state.State {
	// A single location becomes a singleton family: the snapshot map is
	// constrained to hold the supplied value at the given index.
	sm := pv.Fresh("sm", term.SortSnap)
	switch len(args) {
	case 0:
		// A nullary predicate has a one-point domain; the resource
		// identity alone keys the family, no index variable exists.
		pv.Assume(term.Eq(snapshot.LookupPredicate(resource, sm, nil), snap))
		chunk := state.QuantifiedChunk{
			Resource:  resource,
			SnapMap:   sm,
			PermAmnt:  perm,
			Singleton: true,
		}
		return st.WithHeap(st.Heap.Merge(chunk))
	case 1:
		pv.Assume(term.Eq(snapshot.LookupField(resource, sm, args[0], snap.Sort()), snap))
	default:
		pv.Assume(term.Eq(snapshot.LookupPredicate(resource, sm, args), snap))
	}
	iv := freshIndexVar(pv, resource)
	chunk := state.QuantifiedChunk{
		Resource:  resource,
		Vars:      []term.Var{iv},
		Cond:      term.Eq(iv, args[0]),
		SnapMap:   sm,
		PermAmnt:  perm,
		Singleton: true,
	}
	return st.WithHeap(st.Heap.Merge(chunk))
}

// freshIndexVar allocates the bound index variable of a singleton family.
// A prover may hand out any term shape from Fresh; a non-variable fresh
// term is named through an equated alias so the chunk always binds a
// proper variable.
func freshIndexVar(pv solver.Prover, resource string) term.Var {
	idx := pv.Fresh("qv", term.SortRef)
	if v, ok := idx.(term.Var); ok {
		return v
	}
	alias := term.Var{Name: "$qv." + resource, S: term.SortRef}
	pv.Assume(term.Eq(alias, idx))
	return alias
}

// BasicWands implements WandSupport. With quantified mode off every wand
// takes the plain-chunk path; with it on, singleton quantified wand chunks
// are built and recorded.
type BasicWands struct {
	QuantifiedMode bool
	recorded       []state.QuantifiedChunk
}

func (w *BasicWands) Quantified(assertion.Wand) bool {
	return w.QuantifiedMode
}

func (w *BasicWands) ProduceSingleton(st state.State, pv solver.Prover, wand assertion.Wand, snap, perm term.Term) state.State {
	sm := pv.Fresh("wsm", term.SortSnap)
	pv.Assume(term.Eq(snapshot.LookupPredicate("$wand", sm, nil), snap))
	chunk := state.QuantifiedChunk{
		Resource:  "wand:" + wand.String(),
		SnapMap:   sm,
		PermAmnt:  perm,
		Singleton: true,
	}
	w.recorded = append(w.recorded, chunk)
	return st.WithHeap(st.Heap.Merge(chunk))
}

// Recorded returns the singleton wand chunks recorded for summarization.
func (w *BasicWands) Recorded() []state.QuantifiedChunk {
	return w.recorded
}
