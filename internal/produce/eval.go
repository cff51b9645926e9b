package produce

import (
	"github.com/fracta-labs/fracta/internal/assertion"
	"github.com/fracta-labs/fracta/internal/state"
	"github.com/fracta-labs/fracta/internal/term"
)

// eval turns a plain program expression into a term under the given state.
// Full expression evaluation belongs to the surrounding executor; this
// covers the pure fragment the engine needs for receivers, conditions,
// permissions, and bound arguments. A nil second return means success.
func (p *Producer) eval(st state.State, e assertion.Expr) (term.Term, *Failure) {
	switch ex := e.(type) {
	case assertion.IntLit:
		return term.IntLit{Val: ex.Val}, nil

	case assertion.BoolLit:
		return term.BoolLit{Val: ex.Val}, nil

	case assertion.PermLit:
		return p.evalPermLit(ex)

	case assertion.VarRef:
		if t, ok := st.Lookup(ex.Name); ok {
			return t, nil
		}
		return nil, &Failure{Kind: FailEvaluation, Pos: ex.Pos, Detail: "unbound variable " + ex.Name}

	case assertion.Binary:
		return p.evalBinary(st, ex)

	case assertion.Unary:
		operand, fail := p.eval(st, ex.Operand)
		if fail != nil {
			return nil, fail
		}
		if ex.Op == assertion.OpNot {
			return term.Not(operand), nil
		}
		return term.App{Fn: "-", Args: []term.Term{operand}, S: term.SortInt}, nil

	case assertion.FieldRead:
		rcv, fail := p.eval(st, ex.Recv)
		if fail != nil {
			return nil, fail
		}
		chunk, ok := st.Heap.Find(state.FieldChunk{Field: ex.Field, Recv: rcv}.Key())
		if !ok {
			return nil, &Failure{Kind: FailEvaluation, Pos: ex.Pos, Detail: "insufficient permission to read " + ex.Recv.String() + "." + ex.Field}
		}
		return chunk.Snap(), nil

	case assertion.FuncApp:
		args := make([]term.Term, len(ex.Args))
		for i, arg := range ex.Args {
			t, fail := p.eval(st, arg)
			if fail != nil {
				return nil, fail
			}
			args[i] = t
		}
		sort := term.SortInt
		if fn, ok := p.table.Function(ex.Name); ok {
			sort = fn.Result.Sort
		}
		return term.App{Fn: ex.Name, Args: args, S: sort}, nil

	case assertion.CondExpr:
		cond, fail := p.eval(st, ex.Cond)
		if fail != nil {
			return nil, fail
		}
		then, fail := p.eval(st, ex.Then)
		if fail != nil {
			return nil, fail
		}
		els, fail := p.eval(st, ex.Else)
		if fail != nil {
			return nil, fail
		}
		return term.Ite{Cond: cond, Then: then, Else: els}, nil

	case assertion.LetExpr:
		bound, fail := p.eval(st, ex.Bound)
		if fail != nil {
			return nil, fail
		}
		return p.eval(st.Bind(ex.Var, bound), ex.Body)

	case assertion.UnfoldingExpr:
		// Ghost operation: transparent at the term level here; the
		// axiom-side scope narrowing is the translator's concern.
		return p.eval(st, ex.Body)

	case assertion.Forall:
		return p.evalForall(st, ex)

	case assertion.AccExpr:
		return nil, &Failure{Kind: FailEvaluation, Pos: ex.Pos, Detail: "access predicate in pure position"}

	default:
		return nil, &Failure{Kind: FailEvaluation, Pos: e.Position(), Detail: "unsupported expression " + e.String()}
	}
}

func (p *Producer) evalPermLit(ex assertion.PermLit) (term.Term, *Failure) {
	switch ex.Kind {
	case assertion.PermFull:
		return term.FullPerm(), nil
	case assertion.PermNone:
		return term.NoPerm(), nil
	case assertion.PermFraction:
		if ex.Den == 0 {
			return nil, &Failure{Kind: FailEvaluation, Pos: ex.Pos, Detail: "permission with zero denominator"}
		}
		return term.FractionPerm(ex.Num, ex.Den), nil
	default: // wildcard: a fresh strictly positive amount per occurrence
		w := p.prover.Fresh("$wildcard", term.SortPerm)
		p.prover.Assume(term.PermLess(term.NoPerm(), w))
		return w, nil
	}
}

func (p *Producer) evalBinary(st state.State, ex assertion.Binary) (term.Term, *Failure) {
	left, fail := p.eval(st, ex.Left)
	if fail != nil {
		return nil, fail
	}
	right, fail := p.eval(st, ex.Right)
	if fail != nil {
		return nil, fail
	}
	switch ex.Op {
	case assertion.OpDiv, assertion.OpMod:
		if lit, ok := right.(term.IntLit); ok && lit.Val == 0 {
			return nil, &Failure{Kind: FailEvaluation, Pos: ex.Pos, Detail: "division by zero"}
		}
	}
	sort := term.SortInt
	switch ex.Op {
	case assertion.OpEq, assertion.OpNeq, assertion.OpLt, assertion.OpLte,
		assertion.OpGt, assertion.OpGte, assertion.OpAnd, assertion.OpOr, assertion.OpImplies:
		sort = term.SortBool
	}
	return term.App{Fn: ex.Op.String(), Args: []term.Term{left, right}, S: sort}, nil
}

func (p *Producer) evalForall(st state.State, ex assertion.Forall) (term.Term, *Failure) {
	vars := make([]term.Var, len(ex.Vars))
	bound := st
	for i, name := range ex.Vars {
		v := term.Var{Name: name, S: term.SortInt}
		vars[i] = v
		bound = bound.Bind(name, v)
	}
	body, fail := p.eval(bound, ex.Body)
	if fail != nil {
		return nil, fail
	}
	triggers := make([][]term.Term, 0, len(ex.Triggers))
	for _, trig := range ex.Triggers {
		pats := make([]term.Term, 0, len(trig))
		for _, pat := range trig {
			t, fail := p.eval(bound, pat)
			if fail != nil {
				return nil, fail
			}
			pats = append(pats, t)
		}
		triggers = append(triggers, pats)
	}
	return term.Quant{Vars: vars, Triggers: triggers, Body: body}, nil
}
