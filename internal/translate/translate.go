// Package translate implements the heap-snapshot expression translator: a
// pure encoder turning assertion expressions into closed-form terms over
// the snapshot algebra for function axiomatization. It never executes
// anything and operates offline from branching.
package translate

import (
	"strings"

	"github.com/fracta-labs/fracta/internal/assertion"
	"github.com/fracta-labs/fracta/internal/program"
	"github.com/fracta-labs/fracta/internal/report"
	"github.com/fracta-labs/fracta/internal/snapshot"
	"github.com/fracta-labs/fracta/internal/term"
)

// Record is the read-only cache of terms recorded by the earlier
// well-definedness pass, keyed by source position, plus the set of
// functions for which that pass already reported failures.
type Record struct {
	Terms  map[assertion.Pos]term.Term
	Failed map[string]bool
}

// Context carries everything one translation depends on. It is an explicit
// immutable value passed through every call; the translator keeps no
// per-invocation state on any shared object.
type Context struct {
	// Scope is the snapshot-in-scope the expression is translated
	// against.
	Scope term.Term
	// IgnoreAccess makes access predicates and impure quantifiers
	// translate to the trivially-true term; set when translating a
	// precondition on the caller's behalf.
	IgnoreAccess bool
	Table        *program.Table
	// Caller is the function whose body or contract is being translated;
	// its height decides full-versus-limited callee symbols.
	Caller *program.Function
	Record Record
	// Fatal decides whether an unresolved heap reference at a given
	// position is fatal to the whole translation.
	Fatal  func(pos assertion.Pos, fn *program.Function) bool
	Warner report.Warner
}

// Translate encodes an expression into a term. The boolean is false when
// an unresolved heap reference was fatal; callers detect this as absence,
// never as an out-of-band abort.
func Translate(e assertion.Expr, ctx Context) (term.Term, bool) {
	p := newPass(ctx)
	t := p.expr(e, ctx.Scope, nil)
	if p.fatal {
		return nil, false
	}
	return t, true
}

// TranslateAssertion encodes a contract assertion into a term.
func TranslateAssertion(a assertion.Assertion, ctx Context) (term.Term, bool) {
	p := newPass(ctx)
	t := p.assertion(a, ctx.Scope, nil)
	if p.fatal {
		return nil, false
	}
	return t, true
}

type pass struct {
	ctx    Context
	warned map[string]bool
	fatal  bool
}

func newPass(ctx Context) *pass {
	if ctx.Warner == nil {
		ctx.Warner = report.NopWarner{}
	}
	warned := make(map[string]bool, len(ctx.Record.Failed))
	for name, failed := range ctx.Record.Failed {
		if failed {
			warned[name] = true
		}
	}
	return &pass{ctx: ctx, warned: warned}
}

// env maps let- and quantifier-bound names to their terms. It is threaded
// as a parameter; nil means no bindings.
type env map[string]term.Term

func (e env) with(name string, t term.Term) env {
	out := make(env, len(e)+1)
	for k, v := range e {
		out[k] = v
	}
	out[name] = t
	return out
}

func (p *pass) expr(e assertion.Expr, scope term.Term, vars env) term.Term {
	switch ex := e.(type) {
	case assertion.IntLit:
		return term.IntLit{Val: ex.Val}

	case assertion.BoolLit:
		return term.BoolLit{Val: ex.Val}

	case assertion.PermLit:
		return p.permLit(ex)

	case assertion.VarRef:
		return p.varRef(ex, vars)

	case assertion.Binary:
		left := p.expr(ex.Left, scope, vars)
		right := p.expr(ex.Right, scope, vars)
		sort := term.SortInt
		switch ex.Op {
		case assertion.OpEq, assertion.OpNeq, assertion.OpLt, assertion.OpLte,
			assertion.OpGt, assertion.OpGte, assertion.OpAnd, assertion.OpOr, assertion.OpImplies:
			sort = term.SortBool
		}
		return term.App{Fn: ex.Op.String(), Args: []term.Term{left, right}, S: sort}

	case assertion.Unary:
		operand := p.expr(ex.Operand, scope, vars)
		if ex.Op == assertion.OpNot {
			return term.Not(operand)
		}
		return term.App{Fn: "-", Args: []term.Term{operand}, S: term.SortInt}

	case assertion.FieldRead:
		rcv := p.expr(ex.Recv, scope, vars)
		return snapshot.LookupField(ex.Field, scope, rcv, p.ctx.Table.FieldSort(ex.Field))

	case assertion.UnfoldingExpr:
		args := make([]term.Term, len(ex.Args))
		for i, arg := range ex.Args {
			args[i] = p.expr(arg, scope, vars)
		}
		// Narrow the scope to the unfolded predicate's contents combined
		// with the remainder, translate the body there, then the prior
		// scope applies again on return.
		inner := snapshot.Combine(
			snapshot.LookupPredicate(ex.Pred, scope, args),
			snapshot.RemovePredicate(ex.Pred, scope, args),
		)
		return p.expr(ex.Body, inner, vars)

	case assertion.FuncApp:
		return p.funcApp(ex, scope, vars)

	case assertion.LetExpr:
		bound := p.letBound(ex.Bound, scope, vars)
		return p.expr(ex.Body, scope, vars.with(ex.Var, bound))

	case assertion.CondExpr:
		return term.Ite{
			Cond: p.expr(ex.Cond, scope, vars),
			Then: p.expr(ex.Then, scope, vars),
			Else: p.expr(ex.Else, scope, vars),
		}

	case assertion.Forall:
		return p.forall(ex, scope, vars)

	case assertion.AccExpr:
		// Access predicates have no term-level content in an axiom.
		return term.True()

	default:
		return p.resolve(e.Position(), term.SortInt)
	}
}

func (p *pass) permLit(ex assertion.PermLit) term.Term {
	switch ex.Kind {
	case assertion.PermFull:
		return term.FullPerm()
	case assertion.PermNone:
		return term.NoPerm()
	case assertion.PermFraction:
		return term.FractionPerm(ex.Num, ex.Den)
	default:
		// Wildcards map deterministically by source line through a
		// dedicated fresh-value function symbol: identical positions
		// yield identical terms within one pass, without a counter.
		return term.App{
			Fn:   "$perm.wildcard",
			Args: []term.Term{term.IntLit{Val: int64(ex.Pos.Line)}},
			S:    term.SortPerm,
		}
	}
}

func (p *pass) varRef(ex assertion.VarRef, vars env) term.Term {
	if t, ok := vars[ex.Name]; ok {
		return t
	}
	if fn := p.ctx.Caller; fn != nil {
		for _, formal := range fn.Formals {
			if formal.Name == ex.Name {
				return term.Var{Name: formal.Name, S: formal.Sort}
			}
		}
		if fn.Result.Name == ex.Name {
			return term.Var{Name: fn.Result.Name, S: fn.Result.Sort}
		}
	}
	return term.Var{Name: ex.Name, S: term.SortInt}
}

// funcApp encodes a specification-function application. The snapshot
// passed to the callee is the caller's scope restricted to the callee's
// footprint. The height comparison below is load-bearing for soundness and
// termination of the background theory and must not be altered: a caller
// of strictly smaller height calls the full symbol; otherwise the call may
// be recursive, so the restricted snapshot is wrapped in one tagging
// function per predicate trigger known to the caller and the limited
// symbol is called instead.
func (p *pass) funcApp(ex assertion.FuncApp, scope term.Term, vars env) term.Term {
	callee, ok := p.ctx.Table.Function(ex.Name)
	if !ok {
		return p.resolve(ex.Pos, term.SortInt)
	}
	args := make([]term.Term, len(ex.Args))
	for i, arg := range ex.Args {
		args[i] = p.expr(arg, scope, vars)
	}
	restricted := snapshot.RestrictToFunction(ex.Name, scope, args)

	if p.ctx.Caller != nil && p.ctx.Caller.Height < callee.Height {
		all := append([]term.Term{restricted}, args...)
		return term.App{Fn: ex.Name, Args: all, S: callee.Result.Sort}
	}

	wrapped := restricted
	if p.ctx.Caller != nil {
		for _, trig := range p.ctx.Caller.Triggers {
			wrapped = snapshot.TriggerTag(trig, wrapped)
		}
	}
	all := append([]term.Term{wrapped}, args...)
	return term.App{Fn: LimitedName(ex.Name), Args: all, S: callee.Result.Sort}
}

// LimitedName returns the limited variant of a function symbol.
func LimitedName(fn string) string {
	return fn + "%limited"
}

// letBound resolves the bound term of a let. Heap-dependent bound
// expressions must have been recorded by the earlier well-definedness
// pass; a missing record goes through the resolution fallback.
func (p *pass) letBound(bound assertion.Expr, scope term.Term, vars env) term.Term {
	if t, ok := p.ctx.Record.Terms[bound.Position()]; ok {
		return t
	}
	if heapDependent(bound) {
		return p.resolve(bound.Position(), term.SortInt)
	}
	return p.expr(bound, scope, vars)
}

// forall translates the bound sub-formula with the standard rules, then
// reconciles suffixed variable occurrences: a term recorded during the
// earlier pass refers to this quantifier's variables under suffixed names
// (`i$3`), which are rewritten back to the plain bound name when the
// quantifier itself is re-emitted.
func (p *pass) forall(ex assertion.Forall, scope term.Term, vars env) term.Term {
	if p.ctx.IgnoreAccess && impure(ex.Body) {
		return term.True()
	}
	boundVars := make([]term.Var, len(ex.Vars))
	inner := vars
	for i, name := range ex.Vars {
		v := term.Var{Name: name, S: term.SortInt}
		boundVars[i] = v
		inner = inner.with(name, v)
	}
	body := p.expr(ex.Body, scope, inner)
	triggers := make([][]term.Term, 0, len(ex.Triggers))
	for _, trig := range ex.Triggers {
		pats := make([]term.Term, 0, len(trig))
		for _, pat := range trig {
			pats = append(pats, p.expr(pat, scope, inner))
		}
		triggers = append(triggers, pats)
	}

	rename := func(v term.Var) (term.Term, bool) {
		base, suffixed := splitSuffix(v.Name)
		if !suffixed {
			return nil, false
		}
		for _, bv := range boundVars {
			if bv.Name == base {
				return term.Var{Name: base, S: v.S}, true
			}
		}
		return nil, false
	}
	body = term.RenameVars(body, rename)
	for i := range triggers {
		for j := range triggers[i] {
			triggers[i][j] = term.RenameVars(triggers[i][j], rename)
		}
	}
	return term.Quant{Vars: boundVars, Triggers: triggers, Body: body}
}

// splitSuffix splits a suffixed identifier `name$N` into its base name.
func splitSuffix(name string) (string, bool) {
	i := strings.LastIndexByte(name, '$')
	if i <= 0 || i == len(name)-1 {
		return name, false
	}
	for _, c := range name[i+1:] {
		if c < '0' || c > '9' {
			return name, false
		}
	}
	return name[:i], true
}

func heapDependent(e assertion.Expr) bool {
	switch ex := e.(type) {
	case assertion.FieldRead, assertion.UnfoldingExpr, assertion.AccExpr:
		return true
	case assertion.FuncApp:
		return true
	case assertion.Binary:
		return heapDependent(ex.Left) || heapDependent(ex.Right)
	case assertion.Unary:
		return heapDependent(ex.Operand)
	case assertion.CondExpr:
		return heapDependent(ex.Cond) || heapDependent(ex.Then) || heapDependent(ex.Else)
	case assertion.LetExpr:
		return heapDependent(ex.Bound) || heapDependent(ex.Body)
	case assertion.Forall:
		return heapDependent(ex.Body)
	default:
		return false
	}
}

func impure(e assertion.Expr) bool {
	switch ex := e.(type) {
	case assertion.AccExpr:
		return true
	case assertion.Binary:
		return impure(ex.Left) || impure(ex.Right)
	case assertion.Unary:
		return impure(ex.Operand)
	case assertion.CondExpr:
		return impure(ex.Then) || impure(ex.Else)
	case assertion.LetExpr:
		return impure(ex.Body)
	case assertion.Forall:
		return impure(ex.Body)
	default:
		return false
	}
}
