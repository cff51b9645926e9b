package translate

import (
	"github.com/fracta-labs/fracta/internal/program"
	"github.com/fracta-labs/fracta/internal/term"
)

// FunctionAxiom builds the defining axiom of a specification function:
//
//	forall s: Snap, formals :: f(s, formals) == <translated body>
//
// The body is translated with the function itself as caller, so recursive
// and mutually recursive calls inside it pick the limited symbol per the
// height rule. Returns false when the body translation had a fatal
// unresolved reference.
func FunctionAxiom(fn *program.Function, ctx Context) (term.Term, bool) {
	if fn.Body == nil {
		return nil, false
	}
	snapVar := term.Var{Name: "$s", S: term.SortSnap}
	ctx.Scope = snapVar
	ctx.Caller = fn

	body, ok := Translate(fn.Body, ctx)
	if !ok {
		return nil, false
	}

	vars := []term.Var{snapVar}
	args := make([]term.Term, 0, len(fn.Formals))
	for _, formal := range fn.Formals {
		v := term.Var{Name: formal.Name, S: formal.Sort}
		vars = append(vars, v)
		args = append(args, v)
	}
	app := term.App{Fn: fn.Name, Args: append([]term.Term{snapVar}, args...), S: fn.Result.Sort}
	return term.Quant{
		Vars:     vars,
		Triggers: [][]term.Term{{app}},
		Body:     term.Eq(app, body),
	}, true
}

// LimitedCoincidenceAxiom states that the limited variant of a function
// symbol coincides with the full symbol:
//
//	forall s: Snap, formals :: f(s, formals) == f%limited(s, formals)
//
// triggered on the full application, so the limited symbol never unfolds
// the definition on its own.
func LimitedCoincidenceAxiom(fn *program.Function) term.Term {
	snapVar := term.Var{Name: "$s", S: term.SortSnap}
	vars := []term.Var{snapVar}
	args := []term.Term{snapVar}
	for _, formal := range fn.Formals {
		v := term.Var{Name: formal.Name, S: formal.Sort}
		vars = append(vars, v)
		args = append(args, v)
	}
	full := term.App{Fn: fn.Name, Args: args, S: fn.Result.Sort}
	limited := term.App{Fn: LimitedName(fn.Name), Args: args, S: fn.Result.Sort}
	return term.Quant{
		Vars:     vars,
		Triggers: [][]term.Term{{full}},
		Body:     term.Eq(full, limited),
	}
}
