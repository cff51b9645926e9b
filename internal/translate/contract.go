package translate

import (
	"github.com/fracta-labs/fracta/internal/assertion"
	"github.com/fracta-labs/fracta/internal/snapshot"
	"github.com/fracta-labs/fracta/internal/term"
)

// assertion encodes a contract assertion. Resource content (access
// predicates, wands, quantified permissions) has no term-level meaning in
// an axiom and encodes as the trivially-true term; the logical skeleton is
// kept.
func (p *pass) assertion(a assertion.Assertion, scope term.Term, vars env) term.Term {
	switch a := a.(type) {
	case assertion.Pure:
		return p.expr(a.Expr, scope, vars)

	case assertion.And:
		return term.And(p.assertion(a.Left, scope, vars), p.assertion(a.Right, scope, vars))

	case assertion.Implication:
		return term.Implies(p.expr(a.Cond, scope, vars), p.assertion(a.Body, scope, vars))

	case assertion.Conditional:
		return term.Ite{
			Cond: p.expr(a.Cond, scope, vars),
			Then: p.assertion(a.Then, scope, vars),
			Else: p.assertion(a.Else, scope, vars),
		}

	case assertion.Let:
		bound := p.letBound(a.Bound, scope, vars)
		return p.assertion(a.Body, scope, vars.with(a.Var, bound))

	case assertion.Unfolding:
		args := make([]term.Term, len(a.Args))
		for i, arg := range a.Args {
			args[i] = p.expr(arg, scope, vars)
		}
		inner := snapshot.Combine(
			snapshot.LookupPredicate(a.Pred, scope, args),
			snapshot.RemovePredicate(a.Pred, scope, args),
		)
		return p.assertion(a.Body, inner, vars)

	case assertion.InhaleExhale:
		return p.assertion(a.In, scope, vars)

	case assertion.FieldAccess, assertion.PredicateAccess, assertion.Wand,
		assertion.QuantifiedPerm, assertion.Applying:
		return term.True()

	default:
		return term.True()
	}
}
