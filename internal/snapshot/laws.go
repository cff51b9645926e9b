package snapshot

import "github.com/fracta-labs/fracta/internal/term"

// Law instances are asserted as background facts; the algebra itself never
// evaluates them.

// FieldLookupLaw builds the fact
//
//	lookup[f](combine(single[f](r, v), rest), r) == v
func FieldLookupLaw(field string, recv, val, rest term.Term) term.Term {
	combined := Combine(Singleton(field, recv, val), rest)
	return term.Eq(LookupField(field, combined, recv, val.Sort()), val)
}

// PredicateLookupLaw builds the fact
//
//	plookup[p](combine(psingle[p](args, v), rest), args) == v
func PredicateLookupLaw(pred string, args []term.Term, val, rest term.Term) term.Term {
	combined := Combine(SingletonPredicate(pred, args, val), rest)
	return term.Eq(LookupPredicate(pred, combined, args), val)
}

// CombineAssocLaw builds the fact
//
//	combine(combine(a, b), c) == combine(a, combine(b, c))
func CombineAssocLaw(a, b, c term.Term) term.Term {
	return term.Eq(Combine(Combine(a, b), c), Combine(a, Combine(b, c)))
}
