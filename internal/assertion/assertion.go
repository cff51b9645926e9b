package assertion

// Assertion represents a specification fragment: a separation-logic formula
// describing ownership of memory locations and logical facts. Assertions
// are immutable tagged unions produced by an external front end.
type Assertion interface {
	isAssertion()
	Position() Pos
	String() string
}

// Pure wraps a plain boolean or arithmetic expression.
type Pure struct {
	Expr Expr
}

func (Pure) isAssertion()     {}
func (a Pure) Position() Pos  { return a.Expr.Position() }
func (a Pure) String() string { return a.Expr.String() }

// And represents the separating conjunction of two assertions.
type And struct {
	Left  Assertion
	Right Assertion
	Pos   Pos
}

func (And) isAssertion()    {}
func (a And) Position() Pos { return a.Pos }
func (a And) String() string {
	return "(" + a.Left.String() + " && " + a.Right.String() + ")"
}

// FieldAccess represents acc(recv.field, perm).
type FieldAccess struct {
	Recv  Expr
	Field string
	Perm  Expr
	Pos   Pos
}

func (FieldAccess) isAssertion()    {}
func (a FieldAccess) Position() Pos { return a.Pos }
func (a FieldAccess) String() string {
	return "acc(" + a.Recv.String() + "." + a.Field + ", " + a.Perm.String() + ")"
}

// PredicateAccess represents acc(pred(args), perm).
type PredicateAccess struct {
	Pred string
	Args []Expr
	Perm Expr
	Pos  Pos
}

func (PredicateAccess) isAssertion()    {}
func (a PredicateAccess) Position() Pos { return a.Pos }
func (a PredicateAccess) String() string {
	return "acc(" + a.Pred + "(" + exprList(a.Args) + "), " + a.Perm.String() + ")"
}

// Wand represents the magic wand left --* right.
type Wand struct {
	Left  Assertion
	Right Assertion
	Pos   Pos
}

func (Wand) isAssertion()    {}
func (a Wand) Position() Pos { return a.Pos }
func (a Wand) String() string {
	return "(" + a.Left.String() + " --* " + a.Right.String() + ")"
}

// Resource identifies the resource family of a quantified permission.
type Resource interface {
	isResource()
	Name() string
}

// FieldResource is a field family indexed by its receiver expression.
type FieldResource struct {
	Recv  Expr
	Field string
}

func (FieldResource) isResource()    {}
func (r FieldResource) Name() string { return r.Field }

// PredicateResource is a predicate family indexed by its argument
// expressions.
type PredicateResource struct {
	Pred string
	Args []Expr
}

func (PredicateResource) isResource()    {}
func (r PredicateResource) Name() string { return r.Pred }

// QuantifiedPerm represents `forall vars :: cond ==> acc(resource, perm)`.
type QuantifiedPerm struct {
	Vars     []string
	Cond     Expr
	Resource Resource
	Perm     Expr
	Triggers [][]Expr
	Pos      Pos
}

func (QuantifiedPerm) isAssertion()    {}
func (a QuantifiedPerm) Position() Pos { return a.Pos }
func (a QuantifiedPerm) String() string {
	return "(forall :: " + a.Cond.String() + " ==> acc(" + a.Resource.Name() + ", " + a.Perm.String() + "))"
}

// Implication represents `cond ==> body` with an impure body.
type Implication struct {
	Cond Expr
	Body Assertion
	Pos  Pos
}

func (Implication) isAssertion()    {}
func (a Implication) Position() Pos { return a.Pos }
func (a Implication) String() string {
	return "(" + a.Cond.String() + " ==> " + a.Body.String() + ")"
}

// Conditional represents `cond ? then : else` with impure branches.
type Conditional struct {
	Cond Expr
	Then Assertion
	Else Assertion
	Pos  Pos
}

func (Conditional) isAssertion()    {}
func (a Conditional) Position() Pos { return a.Pos }
func (a Conditional) String() string {
	return "(" + a.Cond.String() + " ? " + a.Then.String() + " : " + a.Else.String() + ")"
}

// Let represents `let v == bound in body`.
type Let struct {
	Var   string
	Bound Expr
	Body  Assertion
	Pos   Pos
}

func (Let) isAssertion()    {}
func (a Let) Position() Pos { return a.Pos }
func (a Let) String() string {
	return "(let " + a.Var + " == " + a.Bound.String() + " in " + a.Body.String() + ")"
}

// Unfolding represents the ghost operation `unfolding acc(pred(args), perm)
// in body` in assertion position.
type Unfolding struct {
	Pred string
	Args []Expr
	Perm Expr
	Body Assertion
	Pos  Pos
}

func (Unfolding) isAssertion()    {}
func (a Unfolding) Position() Pos { return a.Pos }
func (a Unfolding) String() string {
	return "(unfolding " + a.Pred + "(" + exprList(a.Args) + ") in " + a.Body.String() + ")"
}

// Applying represents the ghost operation `applying wand in body`.
type Applying struct {
	Wand Assertion
	Body Assertion
	Pos  Pos
}

func (Applying) isAssertion()    {}
func (a Applying) Position() Pos { return a.Pos }
func (a Applying) String() string {
	return "(applying " + a.Wand.String() + " in " + a.Body.String() + ")"
}

// InhaleExhale represents the asymmetric pair [inhale, exhale]. Producing
// chooses the inhale side; a pair surviving into the engine proper is
// malformed.
type InhaleExhale struct {
	In  Assertion
	Ex  Assertion
	Pos Pos
}

func (InhaleExhale) isAssertion()    {}
func (a InhaleExhale) Position() Pos { return a.Pos }
func (a InhaleExhale) String() string {
	return "[" + a.In.String() + ", " + a.Ex.String() + "]"
}
