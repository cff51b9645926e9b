package assertion

// Split decomposes an assertion into its ordered top-level conjuncts.
// Inhale-exhale pairs are normalized to their inhaling branch before
// splitting. Order is preserved left-to-right: later conjuncts may refer to
// let bindings introduced earlier, and snapshot partitioning is
// order-sensitive. Pure and total.
func Split(a Assertion) []Assertion {
	a = normalizeInhale(a)
	if conj, ok := a.(And); ok {
		left := Split(conj.Left)
		right := Split(conj.Right)
		out := make([]Assertion, 0, len(left)+len(right))
		out = append(out, left...)
		out = append(out, right...)
		return out
	}
	return []Assertion{a}
}

func normalizeInhale(a Assertion) Assertion {
	if pair, ok := a.(InhaleExhale); ok {
		return normalizeInhale(pair.In)
	}
	return a
}
