package term

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestPermMulFoldsLiterals(t *testing.T) {
	got := PermMul(FractionPerm(1, 2), FractionPerm(1, 3))
	assert.True(t, Equal(PermLit{Num: 1, Den: 6}, got))
}

func TestPermMulFullIsIdentity(t *testing.T) {
	p := Var{Name: "p", S: SortPerm}

	assert.True(t, Equal(p, PermMul(FullPerm(), p)))
	assert.True(t, Equal(p, PermMul(p, FullPerm())))
}

func TestPermMulSymbolicStaysSymbolic(t *testing.T) {
	p := Var{Name: "p", S: SortPerm}
	q := Var{Name: "q", S: SortPerm}

	got := PermMul(p, q)
	app, ok := got.(App)
	assert.True(t, ok)
	assert.Equal(t, "perm*", app.Fn)
	assert.Equal(t, SortPerm, app.Sort())
}

func TestPermAddFoldsSameDenominator(t *testing.T) {
	got := PermAdd(FractionPerm(1, 4), FractionPerm(2, 4))
	assert.True(t, Equal(PermLit{Num: 3, Den: 4}, got))
}

func TestPermAddMixedDenominatorsStaysSymbolic(t *testing.T) {
	got := PermAdd(FractionPerm(1, 2), FractionPerm(1, 3))
	app, ok := got.(App)
	assert.True(t, ok)
	assert.Equal(t, "perm+", app.Fn)
}

func TestEqualDistinguishesSorts(t *testing.T) {
	a := Var{Name: "x", S: SortInt}
	b := Var{Name: "x", S: SortRef}
	assert.False(t, Equal(a, b))
	assert.True(t, Equal(a, a))
}

func TestEqualOnApps(t *testing.T) {
	x := Var{Name: "x", S: SortInt}
	y := Var{Name: "y", S: SortInt}
	assert.True(t, Equal(Eq(x, y), Eq(x, y)))
	assert.False(t, Equal(Eq(x, y), Eq(y, x)))
	assert.False(t, Equal(Eq(x, y), And(x, y)))
}

func TestRenameVarsRewritesEverywhere(t *testing.T) {
	old := Var{Name: "i$3", S: SortInt}
	fresh := Var{Name: "i", S: SortInt}
	rename := func(v Var) (Term, bool) {
		if v.Name == "i$3" {
			return fresh, true
		}
		return nil, false
	}

	in := Ite{
		Cond: Eq(old, IntLit{Val: 0}),
		Then: App{Fn: "f", Args: []Term{old}, S: SortInt},
		Else: old,
	}
	out := RenameVars(in, rename)

	want := Ite{
		Cond: Eq(fresh, IntLit{Val: 0}),
		Then: App{Fn: "f", Args: []Term{fresh}, S: SortInt},
		Else: fresh,
	}
	assert.Empty(t, cmp.Diff(want, out))
}

func TestRenameVarsLeavesInputAlone(t *testing.T) {
	old := Var{Name: "x", S: SortInt}
	in := App{Fn: "f", Args: []Term{old}, S: SortInt}
	RenameVars(in, func(v Var) (Term, bool) {
		return Var{Name: "y", S: SortInt}, true
	})
	assert.Equal(t, "x", in.Args[0].(Var).Name)
}

func TestRenameVarsInsideQuantTriggers(t *testing.T) {
	old := Var{Name: "j$1", S: SortInt}
	in := Quant{
		Vars:     []Var{{Name: "j", S: SortInt}},
		Triggers: [][]Term{{App{Fn: "g", Args: []Term{old}, S: SortInt}}},
		Body:     Eq(old, old),
	}
	out := RenameVars(in, func(v Var) (Term, bool) {
		if v.Name == "j$1" {
			return Var{Name: "j", S: SortInt}, true
		}
		return nil, false
	}).(Quant)

	trig := out.Triggers[0][0].(App)
	assert.Equal(t, "j", trig.Args[0].(Var).Name)
	body := out.Body.(App)
	assert.Equal(t, "j", body.Args[0].(Var).Name)
}
