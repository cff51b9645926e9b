package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fracta-labs/fracta/internal/term"
)

func TestFreshIsDeterministicPerPrefix(t *testing.T) {
	r := NewRecorder()

	a := r.Fresh("$h", term.SortSnap).(term.Var)
	b := r.Fresh("$h", term.SortSnap).(term.Var)
	c := r.Fresh("$v", term.SortInt).(term.Var)

	assert.Equal(t, "$h@0", a.Name)
	assert.Equal(t, "$h@1", b.Name)
	assert.Equal(t, "$v@0", c.Name)
	assert.Equal(t, term.SortSnap, a.Sort())
	assert.Equal(t, term.SortInt, c.Sort())
}

func TestPopDiscardsScopedFacts(t *testing.T) {
	r := NewRecorder()
	outer := term.Var{Name: "outer", S: term.SortBool}
	inner := term.Var{Name: "inner", S: term.SortBool}

	r.Assume(outer)
	r.Push()
	r.Assume(inner)
	require.Len(t, r.Facts(), 2)
	r.Pop()

	require.Len(t, r.Facts(), 1)
	assert.True(t, term.Equal(outer, r.Facts()[0]))
}

func TestNestedScopes(t *testing.T) {
	r := NewRecorder()
	fact := func(n string) term.Term { return term.Var{Name: n, S: term.SortBool} }

	r.Push()
	r.Assume(fact("a"))
	r.Push()
	r.Assume(fact("b"))
	r.Pop()
	r.Assume(fact("c"))
	r.Pop()

	assert.Empty(t, r.Facts())
}

func TestFreshSurvivesPop(t *testing.T) {
	r := NewRecorder()
	r.Push()
	r.Fresh("$x", term.SortInt)
	r.Pop()

	got := r.Fresh("$x", term.SortInt).(term.Var)
	assert.Equal(t, "$x@1", got.Name)
}

func TestPopWithoutPushIsNoop(t *testing.T) {
	r := NewRecorder()
	r.Assume(term.Var{Name: "f", S: term.SortBool})
	r.Pop()
	assert.Len(t, r.Facts(), 1)
}
