package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fracta-labs/fracta/internal/term"
)

func TestCombineShape(t *testing.T) {
	a := term.Var{Name: "a", S: term.SortSnap}
	b := term.Var{Name: "b", S: term.SortSnap}

	c := Combine(a, b)
	app, ok := c.(term.App)
	require.True(t, ok)
	assert.Equal(t, "$snap.combine", app.Fn)
	assert.Equal(t, term.SortSnap, app.Sort())
	assert.True(t, term.Equal(a, app.Args[0]))
	assert.True(t, term.Equal(b, app.Args[1]))
}

func TestLookupFieldCarriesValueSort(t *testing.T) {
	snap := term.Var{Name: "h", S: term.SortSnap}
	recv := term.Var{Name: "r", S: term.SortRef}

	got := LookupField("next", snap, recv, term.SortRef)
	app, ok := got.(term.App)
	require.True(t, ok)
	assert.Equal(t, "$snap.lookup[next]", app.Fn)
	assert.Equal(t, term.SortRef, app.Sort())
}

func TestFieldNamesKeepOperatorsApart(t *testing.T) {
	r := term.Var{Name: "r", S: term.SortRef}
	v := term.Var{Name: "v", S: term.SortInt}

	a := Singleton("val", r, v)
	b := Singleton("next", r, v)
	assert.False(t, term.Equal(a, b))
}

func TestFieldLookupLaw(t *testing.T) {
	r := term.Var{Name: "r", S: term.SortRef}
	v := term.Var{Name: "v", S: term.SortInt}
	rest := term.Var{Name: "rest", S: term.SortSnap}

	law := FieldLookupLaw("val", r, v, rest)
	eq, ok := law.(term.App)
	require.True(t, ok)
	require.Equal(t, "==", eq.Fn)

	lookup := eq.Args[0].(term.App)
	assert.Equal(t, "$snap.lookup[val]", lookup.Fn)
	combined := lookup.Args[0].(term.App)
	assert.Equal(t, "$snap.combine", combined.Fn)
	single := combined.Args[0].(term.App)
	assert.Equal(t, "$snap.single[val]", single.Fn)
	assert.True(t, term.Equal(v, eq.Args[1]))
}

func TestPredicateLookupLaw(t *testing.T) {
	x := term.Var{Name: "x", S: term.SortRef}
	val := term.Var{Name: "v", S: term.SortSnap}
	rest := term.Var{Name: "rest", S: term.SortSnap}

	law := PredicateLookupLaw("list", []term.Term{x}, val, rest)
	eq, ok := law.(term.App)
	require.True(t, ok)
	require.Equal(t, "==", eq.Fn)

	lookup := eq.Args[0].(term.App)
	assert.Equal(t, "$snap.plookup[list]", lookup.Fn)
	assert.True(t, term.Equal(val, eq.Args[1]))
}

func TestCombineAssocLaw(t *testing.T) {
	a := term.Var{Name: "a", S: term.SortSnap}
	b := term.Var{Name: "b", S: term.SortSnap}
	c := term.Var{Name: "c", S: term.SortSnap}

	law := CombineAssocLaw(a, b, c)
	eq := law.(term.App)
	assert.True(t, term.Equal(Combine(Combine(a, b), c), eq.Args[0]))
	assert.True(t, term.Equal(Combine(a, Combine(b, c)), eq.Args[1]))
}

func TestTriggerTagNests(t *testing.T) {
	h := term.Var{Name: "h", S: term.SortSnap}

	tagged := TriggerTag("list", TriggerTag("tree", h))
	outer := tagged.(term.App)
	assert.Equal(t, "$snap.tag[list]", outer.Fn)
	inner := outer.Args[0].(term.App)
	assert.Equal(t, "$snap.tag[tree]", inner.Fn)
	assert.True(t, term.Equal(h, inner.Args[0]))
}

func TestRestrictToFunctionIncludesArgs(t *testing.T) {
	h := term.Var{Name: "h", S: term.SortSnap}
	x := term.Var{Name: "x", S: term.SortInt}

	got := RestrictToFunction("fib", h, []term.Term{x}).(term.App)
	assert.Equal(t, "$snap.frame[fib]", got.Fn)
	assert.Len(t, got.Args, 2)
	assert.True(t, term.Equal(h, got.Args[0]))
	assert.True(t, term.Equal(x, got.Args[1]))
}
