// Package snapshot implements the heap-snapshot algebra.
//
// Snapshots are opaque terms of sort Snap. They are never inspected
// directly; every composition and decomposition goes through the operators
// below, and their meaning is fixed by background axioms handed to the
// decision procedure, not computed here.
package snapshot

import "github.com/fracta-labs/fracta/internal/term"

// Combine merges two snapshots into one.
func Combine(left, right term.Term) term.Term {
	return term.App{Fn: "$snap.combine", Args: []term.Term{left, right}, S: term.SortSnap}
}

// Singleton creates a snapshot holding exactly the value of one field at
// one receiver.
func Singleton(field string, recv, val term.Term) term.Term {
	return term.App{Fn: "$snap.single[" + field + "]", Args: []term.Term{recv, val}, S: term.SortSnap}
}

// SingletonPredicate creates a snapshot holding exactly one predicate
// instance.
func SingletonPredicate(pred string, args []term.Term, val term.Term) term.Term {
	all := make([]term.Term, 0, len(args)+1)
	all = append(all, args...)
	all = append(all, val)
	return term.App{Fn: "$snap.psingle[" + pred + "]", Args: all, S: term.SortSnap}
}

// LookupField extracts the value of a field at a receiver from a snapshot.
// The result sort is the field's value sort.
func LookupField(field string, snap, recv term.Term, sort term.Sort) term.Term {
	return term.App{Fn: "$snap.lookup[" + field + "]", Args: []term.Term{snap, recv}, S: sort}
}

// LookupPredicate extracts the sub-snapshot of a predicate instance.
func LookupPredicate(pred string, snap term.Term, args []term.Term) term.Term {
	all := make([]term.Term, 0, len(args)+1)
	all = append(all, snap)
	all = append(all, args...)
	return term.App{Fn: "$snap.plookup[" + pred + "]", Args: all, S: term.SortSnap}
}

// RemovePredicate removes a predicate instance from a snapshot, leaving
// everything else.
func RemovePredicate(pred string, snap term.Term, args []term.Term) term.Term {
	all := make([]term.Term, 0, len(args)+1)
	all = append(all, snap)
	all = append(all, args...)
	return term.App{Fn: "$snap.premove[" + pred + "]", Args: all, S: term.SortSnap}
}

// RestrictToFunction narrows a snapshot to the parts a function may read,
// preserving framing across irrelevant heap changes.
func RestrictToFunction(fn string, snap term.Term, args []term.Term) term.Term {
	all := make([]term.Term, 0, len(args)+1)
	all = append(all, snap)
	all = append(all, args...)
	return term.App{Fn: "$snap.frame[" + fn + "]", Args: all, S: term.SortSnap}
}

// TriggerTag wraps a snapshot in the tagging function of a predicate
// trigger. Used by the translator to break self-referential function
// axioms on recursive calls.
func TriggerTag(pred string, snap term.Term) term.Term {
	return term.App{Fn: "$snap.tag[" + pred + "]", Args: []term.Term{snap}, S: term.SortSnap}
}
