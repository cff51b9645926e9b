package verify

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fracta-labs/fracta/internal/assertion"
	"github.com/fracta-labs/fracta/internal/program"
	"github.com/fracta-labs/fracta/internal/term"
)

// Scenario is a YAML description of a production run: declared fields,
// variables, specification functions and predicates, engine options, and
// the assertions to produce.
type Scenario struct {
	Name       string            `yaml:"name"`
	Fields     map[string]string `yaml:"fields"`
	Variables  map[string]string `yaml:"variables"`
	Functions  []FunctionDecl    `yaml:"functions"`
	Predicates []PredicateDecl   `yaml:"predicates"`
	Options    Options           `yaml:"options"`
	Produce    []AssertNode      `yaml:"produce"`
}

// Options are engine options settable per scenario.
type Options struct {
	PredicateTriggers bool     `yaml:"predicate-triggers"`
	QuantifiedFields  []string `yaml:"quantified-fields"`
}

// FunctionDecl declares a specification function.
type FunctionDecl struct {
	Name     string       `yaml:"name"`
	Args     []FormalDecl `yaml:"args"`
	Result   string       `yaml:"result"`
	Height   int          `yaml:"height"`
	Triggers []string     `yaml:"triggers"`
	Body     *ExprNode    `yaml:"body"`
}

// PredicateDecl declares an abstract predicate.
type PredicateDecl struct {
	Name string       `yaml:"name"`
	Args []FormalDecl `yaml:"args"`
}

// FormalDecl declares a formal argument.
type FormalDecl struct {
	Name string `yaml:"name"`
	Sort string `yaml:"sort"`
}

// ExprNode is the YAML form of a program expression. Exactly one of the
// alternative fields must be set.
type ExprNode struct {
	Var  string `yaml:"var,omitempty"`
	Int  *int64 `yaml:"int,omitempty"`
	Bool *bool  `yaml:"bool,omitempty"`
	// Perm is one of write, none, wildcard, or a fraction like 1/2.
	Perm string `yaml:"perm,omitempty"`

	Op    string    `yaml:"op,omitempty"`
	Left  *ExprNode `yaml:"left,omitempty"`
	Right *ExprNode `yaml:"right,omitempty"`
	Not   *ExprNode `yaml:"not,omitempty"`

	FieldOf *ExprNode  `yaml:"field-of,omitempty"`
	Field   string     `yaml:"field,omitempty"`
	Call    string     `yaml:"call,omitempty"`
	Args    []ExprNode `yaml:"args,omitempty"`

	// Line attributes a source line to the expression, for positions.
	Line int `yaml:"line,omitempty"`
}

// AssertNode is the YAML form of an assertion.
type AssertNode struct {
	Pure    *ExprNode    `yaml:"pure,omitempty"`
	Acc     *AccNode     `yaml:"acc,omitempty"`
	Pred    *PredAccNode `yaml:"pred,omitempty"`
	Implies *ImpliesNode `yaml:"implies,omitempty"`
	Cond    *CondNode    `yaml:"cond,omitempty"`
	Let     *LetNode     `yaml:"let,omitempty"`
	Wand    *WandNode    `yaml:"wand,omitempty"`
	Forall  *ForallNode  `yaml:"forall,omitempty"`
	All     []AssertNode `yaml:"all,omitempty"`
}

type AccNode struct {
	Recv  ExprNode  `yaml:"recv"`
	Field string    `yaml:"field"`
	Perm  *ExprNode `yaml:"perm,omitempty"`
	Line  int       `yaml:"line,omitempty"`
}

type PredAccNode struct {
	Name string     `yaml:"name"`
	Args []ExprNode `yaml:"args"`
	Perm *ExprNode  `yaml:"perm,omitempty"`
	Line int        `yaml:"line,omitempty"`
}

type ImpliesNode struct {
	If   ExprNode   `yaml:"if"`
	Then AssertNode `yaml:"then"`
}

type CondNode struct {
	If   ExprNode   `yaml:"if"`
	Then AssertNode `yaml:"then"`
	Else AssertNode `yaml:"else"`
}

type LetNode struct {
	Var string     `yaml:"var"`
	Eq  ExprNode   `yaml:"eq"`
	In  AssertNode `yaml:"in"`
}

type WandNode struct {
	Left  AssertNode `yaml:"left"`
	Right AssertNode `yaml:"right"`
}

type ForallNode struct {
	Vars  []string  `yaml:"vars"`
	If    ExprNode  `yaml:"if"`
	Recv  ExprNode  `yaml:"recv"`
	Field string    `yaml:"field"`
	Perm  *ExprNode `yaml:"perm,omitempty"`
}

// LoadScenario reads and decodes a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var sc Scenario
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("decoding scenario %s: %w", path, err)
	}
	return &sc, nil
}

// ParseScenario decodes a scenario from memory.
func ParseScenario(source []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(source, &sc); err != nil {
		return nil, fmt.Errorf("decoding scenario: %w", err)
	}
	return &sc, nil
}

func parseSort(name string) (term.Sort, error) {
	switch strings.ToLower(name) {
	case "bool":
		return term.SortBool, nil
	case "int", "":
		return term.SortInt, nil
	case "ref":
		return term.SortRef, nil
	case "perm":
		return term.SortPerm, nil
	case "snap":
		return term.SortSnap, nil
	default:
		return 0, fmt.Errorf("unknown sort %q", name)
	}
}

// Table builds the symbol table declared by the scenario.
func (sc *Scenario) Table() (*program.Table, error) {
	fields := make(map[string]term.Sort, len(sc.Fields))
	for name, sortName := range sc.Fields {
		sort, err := parseSort(sortName)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		fields[name] = sort
	}

	funcs := make([]*program.Function, 0, len(sc.Functions))
	for _, decl := range sc.Functions {
		formals, err := parseFormals(decl.Args)
		if err != nil {
			return nil, fmt.Errorf("function %s: %w", decl.Name, err)
		}
		resultSort, err := parseSort(decl.Result)
		if err != nil {
			return nil, fmt.Errorf("function %s result: %w", decl.Name, err)
		}
		fn := &program.Function{
			Name:     decl.Name,
			Formals:  formals,
			Result:   program.Formal{Name: "result", Sort: resultSort},
			Height:   decl.Height,
			Triggers: decl.Triggers,
		}
		if decl.Body != nil {
			body, err := decl.Body.expr()
			if err != nil {
				return nil, fmt.Errorf("function %s body: %w", decl.Name, err)
			}
			fn.Body = body
		}
		funcs = append(funcs, fn)
	}

	preds := make([]*program.Predicate, 0, len(sc.Predicates))
	for _, decl := range sc.Predicates {
		formals, err := parseFormals(decl.Args)
		if err != nil {
			return nil, fmt.Errorf("predicate %s: %w", decl.Name, err)
		}
		preds = append(preds, &program.Predicate{Name: decl.Name, Formals: formals})
	}

	return program.NewTable(funcs, preds, fields), nil
}

func parseFormals(decls []FormalDecl) ([]program.Formal, error) {
	formals := make([]program.Formal, 0, len(decls))
	for _, d := range decls {
		sort, err := parseSort(d.Sort)
		if err != nil {
			return nil, fmt.Errorf("argument %s: %w", d.Name, err)
		}
		formals = append(formals, program.Formal{Name: d.Name, Sort: sort})
	}
	return formals, nil
}

func (n *ExprNode) expr() (assertion.Expr, error) {
	pos := assertion.Pos{Line: n.Line}
	switch {
	case n.Var != "":
		return assertion.VarRef{Name: n.Var, Pos: pos}, nil
	case n.Int != nil:
		return assertion.IntLit{Val: *n.Int, Pos: pos}, nil
	case n.Bool != nil:
		return assertion.BoolLit{Val: *n.Bool, Pos: pos}, nil
	case n.Perm != "":
		return parsePerm(n.Perm, pos)
	case n.Not != nil:
		operand, err := n.Not.expr()
		if err != nil {
			return nil, err
		}
		return assertion.Unary{Op: assertion.OpNot, Operand: operand, Pos: pos}, nil
	case n.Op != "":
		op, err := parseOp(n.Op)
		if err != nil {
			return nil, err
		}
		if n.Left == nil || n.Right == nil {
			return nil, fmt.Errorf("operator %q requires left and right", n.Op)
		}
		left, err := n.Left.expr()
		if err != nil {
			return nil, err
		}
		right, err := n.Right.expr()
		if err != nil {
			return nil, err
		}
		return assertion.Binary{Op: op, Left: left, Right: right, Pos: pos}, nil
	case n.FieldOf != nil:
		recv, err := n.FieldOf.expr()
		if err != nil {
			return nil, err
		}
		if n.Field == "" {
			return nil, fmt.Errorf("field-of requires field")
		}
		return assertion.FieldRead{Recv: recv, Field: n.Field, Pos: pos}, nil
	case n.Call != "":
		args := make([]assertion.Expr, 0, len(n.Args))
		for i := range n.Args {
			arg, err := n.Args[i].expr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		return assertion.FuncApp{Name: n.Call, Args: args, Pos: pos}, nil
	default:
		return nil, fmt.Errorf("empty expression node")
	}
}

func parsePerm(s string, pos assertion.Pos) (assertion.Expr, error) {
	switch s {
	case "write", "full":
		return assertion.PermLit{Kind: assertion.PermFull, Pos: pos}, nil
	case "none":
		return assertion.PermLit{Kind: assertion.PermNone, Pos: pos}, nil
	case "wildcard":
		return assertion.PermLit{Kind: assertion.PermWildcard, Pos: pos}, nil
	}
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return nil, fmt.Errorf("invalid permission %q", s)
	}
	n, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid permission %q: %w", s, err)
	}
	d, err := strconv.ParseInt(den, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid permission %q: %w", s, err)
	}
	return assertion.PermLit{Kind: assertion.PermFraction, Num: n, Den: d, Pos: pos}, nil
}

func parseOp(s string) (assertion.BinaryOp, error) {
	switch s {
	case "+":
		return assertion.OpAdd, nil
	case "-":
		return assertion.OpSub, nil
	case "*":
		return assertion.OpMul, nil
	case "/":
		return assertion.OpDiv, nil
	case "%":
		return assertion.OpMod, nil
	case "==":
		return assertion.OpEq, nil
	case "!=":
		return assertion.OpNeq, nil
	case "<":
		return assertion.OpLt, nil
	case "<=":
		return assertion.OpLte, nil
	case ">":
		return assertion.OpGt, nil
	case ">=":
		return assertion.OpGte, nil
	case "&&":
		return assertion.OpAnd, nil
	case "||":
		return assertion.OpOr, nil
	case "==>":
		return assertion.OpImplies, nil
	default:
		return 0, fmt.Errorf("unknown operator %q", s)
	}
}

func (n *AssertNode) assertion() (assertion.Assertion, error) {
	switch {
	case n.Pure != nil:
		e, err := n.Pure.expr()
		if err != nil {
			return nil, err
		}
		return assertion.Pure{Expr: e}, nil

	case n.Acc != nil:
		recv, err := n.Acc.Recv.expr()
		if err != nil {
			return nil, err
		}
		perm, err := permOrFull(n.Acc.Perm)
		if err != nil {
			return nil, err
		}
		return assertion.FieldAccess{
			Recv:  recv,
			Field: n.Acc.Field,
			Perm:  perm,
			Pos:   assertion.Pos{Line: n.Acc.Line},
		}, nil

	case n.Pred != nil:
		args := make([]assertion.Expr, 0, len(n.Pred.Args))
		for i := range n.Pred.Args {
			arg, err := n.Pred.Args[i].expr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		perm, err := permOrFull(n.Pred.Perm)
		if err != nil {
			return nil, err
		}
		return assertion.PredicateAccess{
			Pred: n.Pred.Name,
			Args: args,
			Perm: perm,
			Pos:  assertion.Pos{Line: n.Pred.Line},
		}, nil

	case n.Implies != nil:
		cond, err := n.Implies.If.expr()
		if err != nil {
			return nil, err
		}
		body, err := n.Implies.Then.assertion()
		if err != nil {
			return nil, err
		}
		return assertion.Implication{Cond: cond, Body: body}, nil

	case n.Cond != nil:
		cond, err := n.Cond.If.expr()
		if err != nil {
			return nil, err
		}
		then, err := n.Cond.Then.assertion()
		if err != nil {
			return nil, err
		}
		els, err := n.Cond.Else.assertion()
		if err != nil {
			return nil, err
		}
		return assertion.Conditional{Cond: cond, Then: then, Else: els}, nil

	case n.Let != nil:
		bound, err := n.Let.Eq.expr()
		if err != nil {
			return nil, err
		}
		body, err := n.Let.In.assertion()
		if err != nil {
			return nil, err
		}
		return assertion.Let{Var: n.Let.Var, Bound: bound, Body: body}, nil

	case n.Wand != nil:
		left, err := n.Wand.Left.assertion()
		if err != nil {
			return nil, err
		}
		right, err := n.Wand.Right.assertion()
		if err != nil {
			return nil, err
		}
		return assertion.Wand{Left: left, Right: right}, nil

	case n.Forall != nil:
		cond, err := n.Forall.If.expr()
		if err != nil {
			return nil, err
		}
		recv, err := n.Forall.Recv.expr()
		if err != nil {
			return nil, err
		}
		perm, err := permOrFull(n.Forall.Perm)
		if err != nil {
			return nil, err
		}
		return assertion.QuantifiedPerm{
			Vars:     n.Forall.Vars,
			Cond:     cond,
			Resource: assertion.FieldResource{Recv: recv, Field: n.Forall.Field},
			Perm:     perm,
		}, nil

	case len(n.All) > 0:
		out, err := n.All[len(n.All)-1].assertion()
		if err != nil {
			return nil, err
		}
		for i := len(n.All) - 2; i >= 0; i-- {
			left, err := n.All[i].assertion()
			if err != nil {
				return nil, err
			}
			out = assertion.And{Left: left, Right: out}
		}
		return out, nil

	default:
		return nil, fmt.Errorf("empty assertion node")
	}
}

func permOrFull(n *ExprNode) (assertion.Expr, error) {
	if n == nil {
		return assertion.PermLit{Kind: assertion.PermFull}, nil
	}
	return n.expr()
}
