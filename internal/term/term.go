package term

import (
	"strconv"
	"strings"
)

// Sort classifies terms by the background-theory sort they belong to.
type Sort int

const (
	_ Sort = iota
	SortBool
	SortInt
	SortRef
	SortPerm
	SortSnap
)

func (s Sort) String() string {
	switch s {
	case SortBool:
		return "Bool"
	case SortInt:
		return "Int"
	case SortRef:
		return "Ref"
	case SortPerm:
		return "Perm"
	case SortSnap:
		return "Snap"
	default:
		return "?"
	}
}

// Term represents a closed logical term handed to the decision procedure.
// Terms are immutable; all composition goes through the constructors below.
type Term interface {
	isTerm()
	Sort() Sort
	String() string
}

// Var represents a symbolic constant or bound variable.
type Var struct {
	Name string
	S    Sort
}

func (Var) isTerm()          {}
func (v Var) Sort() Sort     { return v.S }
func (v Var) String() string { return v.Name }

// IntLit represents an integer literal.
type IntLit struct {
	Val int64
}

func (IntLit) isTerm()      {}
func (IntLit) Sort() Sort   { return SortInt }
func (l IntLit) String() string {
	return itoa(l.Val)
}

// BoolLit represents a boolean literal.
type BoolLit struct {
	Val bool
}

func (BoolLit) isTerm()    {}
func (BoolLit) Sort() Sort { return SortBool }
func (l BoolLit) String() string {
	if l.Val {
		return "true"
	}
	return "false"
}

// PermLit represents a concrete fractional permission amount Num/Den.
type PermLit struct {
	Num int64
	Den int64
}

func (PermLit) isTerm()    {}
func (PermLit) Sort() Sort { return SortPerm }
func (l PermLit) String() string {
	if l.Den == 1 {
		return itoa(l.Num)
	}
	return itoa(l.Num) + "/" + itoa(l.Den)
}

// App represents an application of an interpreted or uninterpreted
// function symbol. The result sort is carried explicitly.
type App struct {
	Fn   string
	Args []Term
	S    Sort
}

func (App) isTerm()      {}
func (a App) Sort() Sort { return a.S }
func (a App) String() string {
	var sb strings.Builder
	sb.WriteString(a.Fn)
	sb.WriteString("(")
	for i, arg := range a.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.String())
	}
	sb.WriteString(")")
	return sb.String()
}

// Ite represents a term-level conditional.
type Ite struct {
	Cond Term
	Then Term
	Else Term
}

func (Ite) isTerm()      {}
func (t Ite) Sort() Sort { return t.Then.Sort() }
func (t Ite) String() string {
	return "ite(" + t.Cond.String() + ", " + t.Then.String() + ", " + t.Else.String() + ")"
}

// Quant represents a universally quantified term with instantiation triggers.
type Quant struct {
	Vars     []Var
	Triggers [][]Term
	Body     Term
}

func (Quant) isTerm()    {}
func (Quant) Sort() Sort { return SortBool }
func (q Quant) String() string {
	var sb strings.Builder
	sb.WriteString("forall ")
	for i, v := range q.Vars {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v.Name)
		sb.WriteString(": ")
		sb.WriteString(v.S.String())
	}
	sb.WriteString(" :: ")
	sb.WriteString(q.Body.String())
	return sb.String()
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
