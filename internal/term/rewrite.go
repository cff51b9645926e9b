package term

// Equal reports structural equality of two terms.
func Equal(a, b Term) bool {
	switch left := a.(type) {
	case Var:
		right, ok := b.(Var)
		return ok && left == right
	case IntLit:
		right, ok := b.(IntLit)
		return ok && left == right
	case BoolLit:
		right, ok := b.(BoolLit)
		return ok && left == right
	case PermLit:
		right, ok := b.(PermLit)
		return ok && left == right
	case App:
		right, ok := b.(App)
		if !ok || left.Fn != right.Fn || left.S != right.S || len(left.Args) != len(right.Args) {
			return false
		}
		for i := range left.Args {
			if !Equal(left.Args[i], right.Args[i]) {
				return false
			}
		}
		return true
	case Ite:
		right, ok := b.(Ite)
		if !ok {
			return false
		}
		return Equal(left.Cond, right.Cond) && Equal(left.Then, right.Then) && Equal(left.Else, right.Else)
	case Quant:
		right, ok := b.(Quant)
		if !ok || len(left.Vars) != len(right.Vars) {
			return false
		}
		for i := range left.Vars {
			if left.Vars[i] != right.Vars[i] {
				return false
			}
		}
		return Equal(left.Body, right.Body)
	default:
		return false
	}
}

// RenameVars rewrites every variable occurrence for which rename returns a
// replacement. The input term is not modified.
func RenameVars(t Term, rename func(Var) (Term, bool)) Term {
	switch tt := t.(type) {
	case Var:
		if repl, ok := rename(tt); ok {
			return repl
		}
		return tt
	case App:
		args := make([]Term, len(tt.Args))
		for i, arg := range tt.Args {
			args[i] = RenameVars(arg, rename)
		}
		return App{Fn: tt.Fn, Args: args, S: tt.S}
	case Ite:
		return Ite{
			Cond: RenameVars(tt.Cond, rename),
			Then: RenameVars(tt.Then, rename),
			Else: RenameVars(tt.Else, rename),
		}
	case Quant:
		triggers := make([][]Term, len(tt.Triggers))
		for i, trig := range tt.Triggers {
			triggers[i] = make([]Term, len(trig))
			for j, pat := range trig {
				triggers[i][j] = RenameVars(pat, rename)
			}
		}
		return Quant{Vars: tt.Vars, Triggers: triggers, Body: RenameVars(tt.Body, rename)}
	default:
		return t
	}
}
