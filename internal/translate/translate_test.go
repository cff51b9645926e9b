package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fracta-labs/fracta/internal/assertion"
	"github.com/fracta-labs/fracta/internal/program"
	"github.com/fracta-labs/fracta/internal/report"
	"github.com/fracta-labs/fracta/internal/snapshot"
	"github.com/fracta-labs/fracta/internal/term"
)

func testTable() *program.Table {
	lower := &program.Function{
		Name:    "lower",
		Formals: []program.Formal{{Name: "x", Sort: term.SortInt}},
		Result:  program.Formal{Name: "res", Sort: term.SortInt},
		Height:  0,
	}
	upper := &program.Function{
		Name:    "upper",
		Formals: []program.Formal{{Name: "x", Sort: term.SortInt}},
		Result:  program.Formal{Name: "res", Sort: term.SortInt},
		Height:  1,
	}
	tagged := &program.Function{
		Name:     "tagged",
		Formals:  []program.Formal{{Name: "x", Sort: term.SortInt}},
		Result:   program.Formal{Name: "res", Sort: term.SortInt},
		Height:   1,
		Triggers: []string{"list"},
	}
	return program.NewTable(
		[]*program.Function{lower, upper, tagged},
		[]*program.Predicate{{Name: "list"}},
		map[string]term.Sort{"val": term.SortInt},
	)
}

func testCtx(table *program.Table, caller string) Context {
	fn, _ := table.Function(caller)
	return Context{
		Scope:  term.Var{Name: "$s", S: term.SortSnap},
		Table:  table,
		Caller: fn,
	}
}

func TestTranslateLiteralsAndVars(t *testing.T) {
	table := testTable()
	ctx := testCtx(table, "lower")

	got, ok := Translate(assertion.IntLit{Val: 7}, ctx)
	require.True(t, ok)
	assert.True(t, term.Equal(term.IntLit{Val: 7}, got))

	got, ok = Translate(assertion.VarRef{Name: "x"}, ctx)
	require.True(t, ok)
	// Formals resolve through the caller's declared sorts.
	assert.True(t, term.Equal(term.Var{Name: "x", S: term.SortInt}, got))
}

func TestTranslateFieldReadUsesScope(t *testing.T) {
	table := testTable()
	ctx := testCtx(table, "lower")

	got, ok := Translate(assertion.FieldRead{Recv: assertion.VarRef{Name: "x"}, Field: "val"}, ctx)
	require.True(t, ok)
	want := snapshot.LookupField("val", ctx.Scope, term.Var{Name: "x", S: term.SortInt}, term.SortInt)
	assert.True(t, term.Equal(want, got))
}

func TestCallUpwardUsesFullSymbol(t *testing.T) {
	table := testTable()
	ctx := testCtx(table, "lower") // height 0 calls height 1

	call := assertion.FuncApp{Name: "upper", Args: []assertion.Expr{assertion.IntLit{Val: 1}}}
	got, ok := Translate(call, ctx)
	require.True(t, ok)

	app := got.(term.App)
	assert.Equal(t, "upper", app.Fn)
	require.Len(t, app.Args, 2)
	frame := app.Args[0].(term.App)
	assert.Equal(t, "$snap.frame[upper]", frame.Fn)
}

func TestCallAtSameHeightUsesLimitedSymbol(t *testing.T) {
	table := testTable()
	ctx := testCtx(table, "upper") // height 1 calls height 1: possibly recursive

	call := assertion.FuncApp{Name: "upper", Args: []assertion.Expr{assertion.VarRef{Name: "x"}}}
	got, ok := Translate(call, ctx)
	require.True(t, ok)

	app := got.(term.App)
	assert.Equal(t, "upper%limited", app.Fn)
	frame := app.Args[0].(term.App)
	assert.Equal(t, "$snap.frame[upper]", frame.Fn)
}

func TestCallDownwardUsesLimitedSymbol(t *testing.T) {
	table := testTable()
	ctx := testCtx(table, "upper") // height 1 calls height 0

	call := assertion.FuncApp{Name: "lower", Args: []assertion.Expr{assertion.VarRef{Name: "x"}}}
	got, ok := Translate(call, ctx)
	require.True(t, ok)
	assert.Equal(t, "lower%limited", got.(term.App).Fn)
}

func TestLimitedCallWrapsSnapshotInCallerTriggers(t *testing.T) {
	table := testTable()
	ctx := testCtx(table, "tagged") // carries the "list" trigger

	call := assertion.FuncApp{Name: "tagged", Args: []assertion.Expr{assertion.VarRef{Name: "x"}}}
	got, ok := Translate(call, ctx)
	require.True(t, ok)

	app := got.(term.App)
	assert.Equal(t, "tagged%limited", app.Fn)
	tag := app.Args[0].(term.App)
	assert.Equal(t, "$snap.tag[list]", tag.Fn)
	frame := tag.Args[0].(term.App)
	assert.Equal(t, "$snap.frame[tagged]", frame.Fn)
}

func TestWildcardDeterministicPerLine(t *testing.T) {
	table := testTable()
	ctx := testCtx(table, "lower")

	wc := func(line int) assertion.Expr {
		return assertion.PermLit{Kind: assertion.PermWildcard, Pos: assertion.Pos{File: "a.spec", Line: line}}
	}

	a, _ := Translate(wc(12), ctx)
	b, _ := Translate(wc(12), ctx)
	c, _ := Translate(wc(13), ctx)

	assert.True(t, term.Equal(a, b), "same line, same term")
	assert.False(t, term.Equal(a, c), "different lines stay distinct")

	app := a.(term.App)
	assert.Equal(t, "$perm.wildcard", app.Fn)
	assert.True(t, term.Equal(term.IntLit{Val: 12}, app.Args[0]))
}

func TestForallReconcilesSuffixedVariables(t *testing.T) {
	table := testTable()
	ctx := testCtx(table, "lower")
	pos := assertion.Pos{File: "a.spec", Line: 4}
	// The earlier pass recorded the bound value under the suffixed name.
	ctx.Record = Record{Terms: map[assertion.Pos]term.Term{
		pos: term.App{
			Fn:   "+",
			Args: []term.Term{term.Var{Name: "i$3", S: term.SortInt}, term.IntLit{Val: 1}},
			S:    term.SortInt,
		},
	}}

	forall := assertion.Forall{
		Vars: []string{"i"},
		Body: assertion.Binary{
			Op:   assertion.OpGt,
			Left: assertion.LetExpr{
				Var: "v",
				Bound: assertion.FieldRead{
					Recv:  assertion.VarRef{Name: "i"},
					Field: "val",
					Pos:   pos,
				},
				Body: assertion.VarRef{Name: "v"},
			},
			Right: assertion.IntLit{Val: 0},
		},
	}

	got, ok := Translate(forall, ctx)
	require.True(t, ok)
	q := got.(term.Quant)
	body := q.Body.(term.App)
	sum := body.Args[0].(term.App)
	// i$3 is rewritten back to the plain bound name inside the quantifier.
	assert.Equal(t, "i", sum.Args[0].(term.Var).Name)
}

func TestForallLeavesForeignSuffixesAlone(t *testing.T) {
	table := testTable()
	ctx := testCtx(table, "lower")
	pos := assertion.Pos{File: "a.spec", Line: 5}
	ctx.Record = Record{Terms: map[assertion.Pos]term.Term{
		pos: term.Var{Name: "k$2", S: term.SortInt},
	}}

	forall := assertion.Forall{
		Vars: []string{"i"},
		Body: assertion.LetExpr{
			Var: "v",
			Bound: assertion.FieldRead{
				Recv:  assertion.VarRef{Name: "i"},
				Field: "val",
				Pos:   pos,
			},
			Body: assertion.Binary{
				Op:    assertion.OpGt,
				Left:  assertion.VarRef{Name: "v"},
				Right: assertion.IntLit{Val: 0},
			},
		},
	}

	got, ok := Translate(forall, ctx)
	require.True(t, ok)
	body := got.(term.Quant).Body.(term.App)
	assert.Equal(t, "k$2", body.Args[0].(term.Var).Name)
}

func TestImpureForallIgnoredOnCallersBehalf(t *testing.T) {
	table := testTable()
	ctx := testCtx(table, "lower")
	ctx.IgnoreAccess = true

	forall := assertion.Forall{
		Vars: []string{"i"},
		Body: assertion.AccExpr{
			Recv:  assertion.VarRef{Name: "i"},
			Field: "val",
			Perm:  assertion.PermLit{Kind: assertion.PermFull},
		},
	}
	got, ok := Translate(forall, ctx)
	require.True(t, ok)
	assert.True(t, term.Equal(term.True(), got))
}

func TestFallbackWarnsOncePerFunction(t *testing.T) {
	table := testTable()
	ctx := testCtx(table, "lower")
	warner := &report.CollectWarner{}
	ctx.Warner = warner

	missing := func(line int) assertion.Expr {
		return assertion.LetExpr{
			Var: "v",
			Bound: assertion.FieldRead{
				Recv:  assertion.VarRef{Name: "x"},
				Field: "val",
				Pos:   assertion.Pos{File: "a.spec", Line: line},
			},
			Body: assertion.VarRef{Name: "v"},
		}
	}

	both := assertion.Binary{Op: assertion.OpAdd, Left: missing(1), Right: missing(2)}
	got, ok := Translate(both, ctx)
	require.True(t, ok, "non-fatal by default")
	require.NotNil(t, got)

	require.Len(t, warner.Warnings, 1)
	assert.Contains(t, warner.Warnings[0], "lower")
}

func TestFallbackSuppressedForKnownFailures(t *testing.T) {
	table := testTable()
	ctx := testCtx(table, "lower")
	warner := &report.CollectWarner{}
	ctx.Warner = warner
	ctx.Record = Record{Failed: map[string]bool{"lower": true}}

	e := assertion.LetExpr{
		Var: "v",
		Bound: assertion.FieldRead{
			Recv:  assertion.VarRef{Name: "x"},
			Field: "val",
			Pos:   assertion.Pos{File: "a.spec", Line: 1},
		},
		Body: assertion.VarRef{Name: "v"},
	}
	_, ok := Translate(e, ctx)
	require.True(t, ok)
	assert.Empty(t, warner.Warnings)
}

func TestFallbackPlaceholderNamedByPosition(t *testing.T) {
	table := testTable()
	ctx := testCtx(table, "lower")

	e := assertion.LetExpr{
		Var: "v",
		Bound: assertion.FieldRead{
			Recv:  assertion.VarRef{Name: "x"},
			Field: "val",
			Pos:   assertion.Pos{File: "a.spec", Line: 9, Col: 2},
		},
		Body: assertion.VarRef{Name: "v"},
	}
	got, ok := Translate(e, ctx)
	require.True(t, ok)
	v := got.(term.Var)
	assert.Contains(t, v.Name, "$unresolved@")
	assert.Contains(t, v.Name, "a.spec")
}

func TestFallbackFatalYieldsNoTerm(t *testing.T) {
	table := testTable()
	ctx := testCtx(table, "lower")
	ctx.Fatal = func(pos assertion.Pos, fn *program.Function) bool { return true }

	e := assertion.LetExpr{
		Var: "v",
		Bound: assertion.FieldRead{
			Recv:  assertion.VarRef{Name: "x"},
			Field: "val",
			Pos:   assertion.Pos{File: "a.spec", Line: 1},
		},
		Body: assertion.VarRef{Name: "v"},
	}
	got, ok := Translate(e, ctx)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestRecordedLetBoundIsReused(t *testing.T) {
	table := testTable()
	ctx := testCtx(table, "lower")
	pos := assertion.Pos{File: "a.spec", Line: 2}
	recorded := term.Var{Name: "$rec", S: term.SortInt}
	ctx.Record = Record{Terms: map[assertion.Pos]term.Term{pos: recorded}}

	e := assertion.LetExpr{
		Var: "v",
		Bound: assertion.FieldRead{
			Recv:  assertion.VarRef{Name: "x"},
			Field: "val",
			Pos:   pos,
		},
		Body: assertion.VarRef{Name: "v"},
	}
	got, ok := Translate(e, ctx)
	require.True(t, ok)
	assert.True(t, term.Equal(recorded, got))
}

func TestUnfoldingNarrowsScope(t *testing.T) {
	table := testTable()
	ctx := testCtx(table, "lower")

	e := assertion.UnfoldingExpr{
		Pred: "list",
		Args: []assertion.Expr{assertion.VarRef{Name: "x"}},
		Body: assertion.FieldRead{Recv: assertion.VarRef{Name: "x"}, Field: "val"},
	}
	got, ok := Translate(e, ctx)
	require.True(t, ok)

	lookup := got.(term.App)
	require.Equal(t, "$snap.lookup[val]", lookup.Fn)
	inner := lookup.Args[0].(term.App)
	assert.Equal(t, "$snap.combine", inner.Fn)
	assert.Equal(t, "$snap.plookup[list]", inner.Args[0].(term.App).Fn)
	assert.Equal(t, "$snap.premove[list]", inner.Args[1].(term.App).Fn)
}

func TestTranslateAssertionSkeleton(t *testing.T) {
	table := testTable()
	ctx := testCtx(table, "lower")

	a := assertion.And{
		Left: assertion.Pure{Expr: assertion.Binary{
			Op:    assertion.OpGt,
			Left:  assertion.VarRef{Name: "x"},
			Right: assertion.IntLit{Val: 0},
		}},
		Right: assertion.FieldAccess{
			Recv:  assertion.VarRef{Name: "x"},
			Field: "val",
			Perm:  assertion.PermLit{Kind: assertion.PermFull},
		},
	}
	got, ok := TranslateAssertion(a, ctx)
	require.True(t, ok)

	conj := got.(term.App)
	require.Equal(t, "&&", conj.Fn)
	assert.Equal(t, ">(x, 0)", conj.Args[0].String())
	// Resource content carries no term-level meaning in an axiom.
	assert.True(t, term.Equal(term.True(), conj.Args[1]))
}

func TestFunctionAxiomShape(t *testing.T) {
	table := testTable()
	fn := &program.Function{
		Name:    "inc",
		Formals: []program.Formal{{Name: "x", Sort: term.SortInt}},
		Result:  program.Formal{Name: "res", Sort: term.SortInt},
		Height:  0,
		Body: assertion.Binary{
			Op:    assertion.OpAdd,
			Left:  assertion.VarRef{Name: "x"},
			Right: assertion.IntLit{Val: 1},
		},
	}

	axiom, ok := FunctionAxiom(fn, Context{Table: table})
	require.True(t, ok)

	q := axiom.(term.Quant)
	require.Len(t, q.Vars, 2)
	assert.Equal(t, "$s", q.Vars[0].Name)
	assert.Equal(t, term.SortSnap, q.Vars[0].S)
	assert.Equal(t, "x", q.Vars[1].Name)

	eq := q.Body.(term.App)
	require.Equal(t, "==", eq.Fn)
	app := eq.Args[0].(term.App)
	assert.Equal(t, "inc", app.Fn)
	require.Len(t, q.Triggers, 1)
	assert.True(t, term.Equal(app, q.Triggers[0][0]))
	assert.Equal(t, "+(x, 1)", eq.Args[1].String())
}

func TestRecursiveBodyUsesLimitedSymbol(t *testing.T) {
	fib := &program.Function{
		Name:    "fib",
		Formals: []program.Formal{{Name: "n", Sort: term.SortInt}},
		Result:  program.Formal{Name: "res", Sort: term.SortInt},
		Height:  2,
		Body: assertion.FuncApp{
			Name: "fib",
			Args: []assertion.Expr{assertion.Binary{
				Op:    assertion.OpSub,
				Left:  assertion.VarRef{Name: "n"},
				Right: assertion.IntLit{Val: 1},
			}},
		},
	}
	table := program.NewTable([]*program.Function{fib}, nil, nil)

	axiom, ok := FunctionAxiom(fib, Context{Table: table})
	require.True(t, ok)

	q := axiom.(term.Quant)
	eq := q.Body.(term.App)
	inner := eq.Args[1].(term.App)
	assert.Equal(t, "fib%limited", inner.Fn)
}

func TestLimitedCoincidenceAxiomShape(t *testing.T) {
	fn := &program.Function{
		Name:    "inc",
		Formals: []program.Formal{{Name: "x", Sort: term.SortInt}},
		Result:  program.Formal{Name: "res", Sort: term.SortInt},
	}

	axiom := LimitedCoincidenceAxiom(fn).(term.Quant)
	eq := axiom.Body.(term.App)
	require.Equal(t, "==", eq.Fn)
	full := eq.Args[0].(term.App)
	limited := eq.Args[1].(term.App)
	assert.Equal(t, "inc", full.Fn)
	assert.Equal(t, "inc%limited", limited.Fn)
	// Triggered on the full application only.
	require.Len(t, axiom.Triggers, 1)
	assert.True(t, term.Equal(full, axiom.Triggers[0][0]))
}

func TestSplitSuffix(t *testing.T) {
	tests := []struct {
		in       string
		base     string
		suffixed bool
	}{
		{"i$3", "i", true},
		{"row$12", "row", true},
		{"i", "i", false},
		{"$s", "$s", false},
		{"i$", "i$", false},
		{"i$x", "i$x", false},
	}
	for _, tc := range tests {
		base, ok := splitSuffix(tc.in)
		assert.Equal(t, tc.suffixed, ok, tc.in)
		assert.Equal(t, tc.base, base, tc.in)
	}
}
