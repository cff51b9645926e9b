package assertion

import (
	"strconv"
	"strings"
)

// Expr represents a program-level expression occurring inside assertions
// and function bodies. Expressions are immutable; they are built by an
// external front end and only read here.
type Expr interface {
	isExpr()
	Position() Pos
	String() string
}

// BinaryOp represents binary operators.
type BinaryOp int

const (
	_ BinaryOp = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
	OpAnd
	OpOr
	OpImplies
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpEq:
		return "=="
	case OpNeq:
		return "!="
	case OpLt:
		return "<"
	case OpLte:
		return "<="
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	case OpImplies:
		return "==>"
	default:
		return "?"
	}
}

// UnaryOp represents unary operators.
type UnaryOp int

const (
	OpNot UnaryOp = iota
	OpNeg
)

func (op UnaryOp) String() string {
	switch op {
	case OpNot:
		return "!"
	case OpNeg:
		return "-"
	default:
		return "?"
	}
}

// IntLit represents an integer literal.
type IntLit struct {
	Val int64
	Pos Pos
}

func (IntLit) isExpr()          {}
func (e IntLit) Position() Pos  { return e.Pos }
func (e IntLit) String() string { return itoa(e.Val) }

// BoolLit represents a boolean literal.
type BoolLit struct {
	Val bool
	Pos Pos
}

func (BoolLit) isExpr()         {}
func (e BoolLit) Position() Pos { return e.Pos }
func (e BoolLit) String() string {
	if e.Val {
		return "true"
	}
	return "false"
}

// PermKind classifies permission literals.
type PermKind int

const (
	PermFull PermKind = iota
	PermNone
	PermWildcard
	PermFraction
)

// PermLit represents a permission amount literal: write, none, wildcard,
// or a concrete fraction.
type PermLit struct {
	Kind PermKind
	Num  int64 // valid for PermFraction
	Den  int64 // valid for PermFraction
	Pos  Pos
}

func (PermLit) isExpr()         {}
func (e PermLit) Position() Pos { return e.Pos }
func (e PermLit) String() string {
	switch e.Kind {
	case PermFull:
		return "write"
	case PermNone:
		return "none"
	case PermWildcard:
		return "wildcard"
	default:
		return itoa(e.Num) + "/" + itoa(e.Den)
	}
}

// VarRef represents a variable reference.
type VarRef struct {
	Name string
	Pos  Pos
}

func (VarRef) isExpr()          {}
func (e VarRef) Position() Pos  { return e.Pos }
func (e VarRef) String() string { return e.Name }

// Binary represents a binary expression.
type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
	Pos   Pos
}

func (Binary) isExpr()         {}
func (e Binary) Position() Pos { return e.Pos }
func (e Binary) String() string {
	return "(" + e.Left.String() + " " + e.Op.String() + " " + e.Right.String() + ")"
}

// Unary represents a unary expression.
type Unary struct {
	Op      UnaryOp
	Operand Expr
	Pos     Pos
}

func (Unary) isExpr()         {}
func (e Unary) Position() Pos { return e.Pos }
func (e Unary) String() string {
	return "(" + e.Op.String() + e.Operand.String() + ")"
}

// FieldRead represents a heap-dependent field access e.f.
type FieldRead struct {
	Recv  Expr
	Field string
	Pos   Pos
}

func (FieldRead) isExpr()         {}
func (e FieldRead) Position() Pos { return e.Pos }
func (e FieldRead) String() string {
	return e.Recv.String() + "." + e.Field
}

// FuncApp represents an application of a program (specification) function.
type FuncApp struct {
	Name string
	Args []Expr
	Pos  Pos
}

func (FuncApp) isExpr()         {}
func (e FuncApp) Position() Pos { return e.Pos }
func (e FuncApp) String() string {
	return e.Name + "(" + exprList(e.Args) + ")"
}

// UnfoldingExpr represents `unfolding P(args) in body`.
type UnfoldingExpr struct {
	Pred string
	Args []Expr
	Perm Expr
	Body Expr
	Pos  Pos
}

func (UnfoldingExpr) isExpr()         {}
func (e UnfoldingExpr) Position() Pos { return e.Pos }
func (e UnfoldingExpr) String() string {
	return "(unfolding " + e.Pred + "(" + exprList(e.Args) + ") in " + e.Body.String() + ")"
}

// LetExpr represents `let v == bound in body`.
type LetExpr struct {
	Var   string
	Bound Expr
	Body  Expr
	Pos   Pos
}

func (LetExpr) isExpr()         {}
func (e LetExpr) Position() Pos { return e.Pos }
func (e LetExpr) String() string {
	return "(let " + e.Var + " == " + e.Bound.String() + " in " + e.Body.String() + ")"
}

// CondExpr represents a conditional expression.
type CondExpr struct {
	Cond Expr
	Then Expr
	Else Expr
	Pos  Pos
}

func (CondExpr) isExpr()         {}
func (e CondExpr) Position() Pos { return e.Pos }
func (e CondExpr) String() string {
	return "(" + e.Cond.String() + " ? " + e.Then.String() + " : " + e.Else.String() + ")"
}

// Forall represents a quantified boolean expression.
type Forall struct {
	Vars     []string
	Triggers [][]Expr
	Body     Expr
	Pos      Pos
}

func (Forall) isExpr()         {}
func (e Forall) Position() Pos { return e.Pos }
func (e Forall) String() string {
	return "(forall " + strings.Join(e.Vars, ", ") + " :: " + e.Body.String() + ")"
}

// AccExpr represents an access predicate occurring in expression position
// (contracts translated on a caller's behalf).
type AccExpr struct {
	Recv  Expr
	Field string
	Perm  Expr
	Pos   Pos
}

func (AccExpr) isExpr()         {}
func (e AccExpr) Position() Pos { return e.Pos }
func (e AccExpr) String() string {
	return "acc(" + e.Recv.String() + "." + e.Field + ", " + e.Perm.String() + ")"
}

func exprList(exprs []Expr) string {
	var sb strings.Builder
	for i, e := range exprs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.String())
	}
	return sb.String()
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
