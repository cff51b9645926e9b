package term

// Helper constructors for the interpreted part of the term language.

// Eq creates an equality term.
func Eq(left, right Term) Term {
	return App{Fn: "==", Args: []Term{left, right}, S: SortBool}
}

// And creates a conjunction term.
func And(left, right Term) Term {
	return App{Fn: "&&", Args: []Term{left, right}, S: SortBool}
}

// Or creates a disjunction term.
func Or(left, right Term) Term {
	return App{Fn: "||", Args: []Term{left, right}, S: SortBool}
}

// Implies creates an implication term.
func Implies(cond, body Term) Term {
	return App{Fn: "==>", Args: []Term{cond, body}, S: SortBool}
}

// Not creates a negation term.
func Not(t Term) Term {
	return App{Fn: "!", Args: []Term{t}, S: SortBool}
}

// True returns the trivially-true term.
func True() Term {
	return BoolLit{Val: true}
}

// FullPerm returns the full (write) permission amount.
func FullPerm() Term {
	return PermLit{Num: 1, Den: 1}
}

// NoPerm returns the empty permission amount.
func NoPerm() Term {
	return PermLit{Num: 0, Den: 1}
}

// FractionPerm returns the concrete fraction num/den.
func FractionPerm(num, den int64) Term {
	return PermLit{Num: num, Den: den}
}

// PermMul multiplies two permission amounts.
// Concrete fractions are folded eagerly so that a gain of p × 1 stays p.
func PermMul(left, right Term) Term {
	if l, ok := left.(PermLit); ok {
		if l.Num == l.Den {
			return right
		}
		if r, ok := right.(PermLit); ok {
			return PermLit{Num: l.Num * r.Num, Den: l.Den * r.Den}
		}
	}
	if r, ok := right.(PermLit); ok && r.Num == r.Den {
		return left
	}
	return App{Fn: "perm*", Args: []Term{left, right}, S: SortPerm}
}

// PermAdd sums two permission amounts.
func PermAdd(left, right Term) Term {
	if l, ok := left.(PermLit); ok {
		if r, ok := right.(PermLit); ok && l.Den == r.Den {
			return PermLit{Num: l.Num + r.Num, Den: l.Den}
		}
	}
	return App{Fn: "perm+", Args: []Term{left, right}, S: SortPerm}
}

// PermLess creates the strict ordering term left < right over permissions.
func PermLess(left, right Term) Term {
	return App{Fn: "perm<", Args: []Term{left, right}, S: SortBool}
}

// PermAtMost creates the ordering term left <= right over permissions.
func PermAtMost(left, right Term) Term {
	return App{Fn: "perm<=", Args: []Term{left, right}, S: SortBool}
}
