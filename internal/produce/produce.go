// Package produce implements the production engine: given an assertion, it
// incorporates the assertion's resource and logical content into the
// current symbolic state, assuming it holds. The walk is a structural
// recursion over the assertion tree in continuation-passing style; each
// step either invokes its success continuation on a new immutable state or
// yields a failure value.
package produce

import (
	"strconv"

	"github.com/fracta-labs/fracta/internal/assertion"
	"github.com/fracta-labs/fracta/internal/program"
	"github.com/fracta-labs/fracta/internal/quantified"
	"github.com/fracta-labs/fracta/internal/report"
	"github.com/fracta-labs/fracta/internal/snapshot"
	"github.com/fracta-labs/fracta/internal/solver"
	"github.com/fracta-labs/fracta/internal/state"
	"github.com/fracta-labs/fracta/internal/term"
)

// SnapSupplier lazily supplies the heap snapshot an assertion is produced
// against. It is invoked only when a branch actually needs a heap value.
type SnapSupplier func() term.Term

// ConstSnap wraps a known snapshot term as a supplier.
func ConstSnap(t term.Term) SnapSupplier {
	return func() term.Term { return t }
}

// Cont is the success continuation of a production step.
type Cont func(st state.State) Result

// Explorer is the branch exploration contract the engine consumes for
// impure conditionals. Both sides are always explored; the aggregation
// policy is the explorer's.
type Explorer interface {
	Branch(st state.State, cond term.Term, then, els Cont) Result
}

// Config carries engine options.
type Config struct {
	// AssertPredicateTriggers emits a trigger fact on predicate
	// production to aid later quantifier instantiation. Suppressed while
	// a function body is being recorded.
	AssertPredicateTriggers bool
}

// Producer realizes assertions into heap chunks and background facts.
type Producer struct {
	prover     solver.Prover
	table      *program.Table
	explorer   Explorer
	quantified quantified.Support
	wands      quantified.WandSupport
	spans      report.Spans
	cfg        Config

	lawsEmitted map[string]bool
}

// New creates a producer over the given collaborators.
func New(prover solver.Prover, table *program.Table, explorer Explorer, qp quantified.Support, wands quantified.WandSupport, spans report.Spans, cfg Config) *Producer {
	if spans == nil {
		spans = report.NopSpans{}
	}
	return &Producer{
		prover:      prover,
		table:       table,
		explorer:    explorer,
		quantified:  qp,
		wands:       wands,
		spans:       spans,
		cfg:         cfg,
		lawsEmitted: make(map[string]bool),
	}
}

// Produce incorporates the assertion into the state and passes the
// resulting state to k. desc names the surrounding obligation for failure
// messages.
func (p *Producer) Produce(st state.State, sup SnapSupplier, a assertion.Assertion, desc string, k Cont) Result {
	return p.produceConjuncts(st, sup, assertion.Split(a), desc, k)
}

// produceConjuncts produces an ordered conjunct sequence strictly left to
// right. With more than one conjunct remaining, the supplied snapshot is
// partitioned: fresh h0 and h1 are allocated, the fact
// sup() == combine(h0, h1) is assumed, the first conjunct is produced
// against h0 and the rest against h1, folding right-associatively. A
// single remaining conjunct reuses the supplied snapshot directly.
func (p *Producer) produceConjuncts(st state.State, sup SnapSupplier, conjuncts []assertion.Assertion, desc string, k Cont) Result {
	switch len(conjuncts) {
	case 0:
		return k(st)
	case 1:
		return p.produceOne(st, sup, conjuncts[0], desc, k)
	}
	h0 := p.prover.Fresh("$h", term.SortSnap)
	h1 := p.prover.Fresh("$h", term.SortSnap)
	p.prover.Assume(term.Eq(sup(), snapshot.Combine(h0, h1)))
	return p.produceOne(st, ConstSnap(h0), conjuncts[0], desc, func(st2 state.State) Result {
		return p.produceConjuncts(st2, ConstSnap(h1), conjuncts[1:], desc, k)
	})
}

func (p *Producer) produceOne(st state.State, sup SnapSupplier, a assertion.Assertion, desc string, k Cont) Result {
	label := a.String()
	p.spans.Enter(label, a.Position())
	defer p.spans.Leave(label)

	switch a := a.(type) {
	case assertion.Pure:
		t, fail := p.eval(st, a.Expr)
		if fail != nil {
			return p.failed(*fail, desc)
		}
		p.prover.Assume(t)
		return k(st)

	case assertion.And:
		return p.produceConjuncts(st, sup, assertion.Split(a), desc, k)

	case assertion.Implication:
		cond, fail := p.eval(st, a.Cond)
		if fail != nil {
			return p.failed(*fail, desc)
		}
		// The false side of a bare implication produces nothing but
		// still continues.
		return p.explorer.Branch(st, cond,
			func(st2 state.State) Result {
				return p.branchScoped(func() Result {
					return p.Produce(st2, sup, a.Body, desc, k)
				})
			},
			func(st2 state.State) Result {
				return p.branchScoped(func() Result {
					return k(st2)
				})
			})

	case assertion.Conditional:
		cond, fail := p.eval(st, a.Cond)
		if fail != nil {
			return p.failed(*fail, desc)
		}
		return p.explorer.Branch(st, cond,
			func(st2 state.State) Result {
				return p.branchScoped(func() Result {
					return p.Produce(st2, sup, a.Then, desc, k)
				})
			},
			func(st2 state.State) Result {
				return p.branchScoped(func() Result {
					return p.Produce(st2, sup, a.Else, desc, k)
				})
			})

	case assertion.Let:
		bound, fail := p.eval(st, a.Bound)
		if fail != nil {
			return p.failed(*fail, desc)
		}
		return p.Produce(st.Bind(a.Var, bound), sup, a.Body, desc, k)

	case assertion.FieldAccess:
		return p.produceField(st, sup, a, desc, k)

	case assertion.PredicateAccess:
		return p.producePredicate(st, sup, a, desc, k)

	case assertion.Wand:
		return p.produceWand(st, sup, a, k)

	case assertion.QuantifiedPerm:
		return p.produceQuantified(st, a, desc, k)

	case assertion.Unfolding:
		// Ghost operation: the body's content is what is inhaled.
		return p.Produce(st, sup, a.Body, desc, k)

	case assertion.Applying:
		return p.Produce(st, sup, a.Body, desc, k)

	case assertion.InhaleExhale:
		return p.failed(Failure{
			Kind:   FailMalformed,
			Pos:    a.Position(),
			Detail: "inhale-exhale pair in a production context",
		}, desc)

	default:
		return p.failed(Failure{
			Kind:   FailMalformed,
			Pos:    a.Position(),
			Detail: "unknown assertion kind " + a.String(),
		}, desc)
	}
}

func (p *Producer) produceField(st state.State, sup SnapSupplier, a assertion.FieldAccess, desc string, k Cont) Result {
	rcv, fail := p.eval(st, a.Recv)
	if fail != nil {
		return p.failed(*fail, desc)
	}
	perm, fail := p.eval(st, a.Perm)
	if fail != nil {
		return p.failed(*fail, desc)
	}
	snap := sup()
	val := p.prover.Fresh("$"+a.Field, p.table.FieldSort(a.Field))
	p.prover.Assume(term.Eq(snap, snapshot.Singleton(a.Field, rcv, val)))
	p.emitFieldLaws(a.Field)

	gain := term.PermMul(perm, st.Scale)
	if p.quantified != nil && p.quantified.Governs(a.Field) {
		st = p.quantified.ProduceSingle(st, p.prover, a.Field, []term.Term{rcv}, val, gain)
	} else {
		chunk := state.FieldChunk{Field: a.Field, Recv: rcv, Value: val, PermAmnt: gain}
		st = st.WithHeap(st.Heap.Merge(chunk))
	}
	return k(st)
}

func (p *Producer) producePredicate(st state.State, sup SnapSupplier, a assertion.PredicateAccess, desc string, k Cont) Result {
	args := make([]term.Term, len(a.Args))
	for i, arg := range a.Args {
		t, fail := p.eval(st, arg)
		if fail != nil {
			return p.failed(*fail, desc)
		}
		args[i] = t
	}
	perm, fail := p.eval(st, a.Perm)
	if fail != nil {
		return p.failed(*fail, desc)
	}
	snap := sup()
	val := p.prover.Fresh("$"+a.Pred, term.SortSnap)
	p.prover.Assume(term.Eq(snap, snapshot.SingletonPredicate(a.Pred, args, val)))
	p.emitPredicateLaws(a.Pred, len(args))

	gain := term.PermMul(perm, st.Scale)
	if p.quantified != nil && p.quantified.Governs(a.Pred) {
		st = p.quantified.ProduceSingle(st, p.prover, a.Pred, args, val, gain)
	} else {
		chunk := state.PredicateChunk{Pred: a.Pred, Args: args, Value: val, PermAmnt: gain}
		st = st.WithHeap(st.Heap.Merge(chunk))
	}
	if p.cfg.AssertPredicateTriggers && !st.Recording {
		p.prover.Assume(term.App{Fn: "$trg[" + a.Pred + "]", Args: args, S: term.SortBool})
	}
	return k(st)
}

func (p *Producer) produceWand(st state.State, sup SnapSupplier, a assertion.Wand, k Cont) Result {
	if p.wands != nil && p.wands.Quantified(a) {
		st = p.wands.ProduceSingleton(st, p.prover, a, sup(), st.Scale)
		return k(st)
	}
	chunk := state.WandChunk{ID: a.String(), Value: sup(), PermAmnt: st.Scale}
	return k(st.WithHeap(st.Heap.Merge(chunk)))
}

func (p *Producer) produceQuantified(st state.State, a assertion.QuantifiedPerm, desc string, k Cont) Result {
	vars := make([]term.Var, len(a.Vars))
	bound := st
	for i, name := range a.Vars {
		v := term.Var{Name: name, S: term.SortInt}
		vars[i] = v
		bound = bound.Bind(name, v)
	}
	cond, fail := p.eval(bound, a.Cond)
	if fail != nil {
		return p.failed(*fail, desc)
	}
	// Evaluating the receiver and triggers under the bound variables
	// yields auxiliary trigger facts as a side effect of fresh-symbol
	// constraints; the terms themselves parameterize the bulk update.
	switch res := a.Resource.(type) {
	case assertion.FieldResource:
		if _, fail := p.eval(bound, res.Recv); fail != nil {
			return p.failed(*fail, desc)
		}
	case assertion.PredicateResource:
		for _, arg := range res.Args {
			if _, fail := p.eval(bound, arg); fail != nil {
				return p.failed(*fail, desc)
			}
		}
	}
	perm, fail := p.eval(bound, a.Perm)
	if fail != nil {
		return p.failed(*fail, desc)
	}
	gain := term.PermMul(perm, st.Scale)
	snapMap := p.prover.Fresh("$sm", term.SortSnap)
	st = p.quantified.Produce(st, p.prover, a.Resource.Name(), vars, cond, gain, snapMap)
	return k(st)
}

func (p *Producer) failed(f Failure, desc string) Result {
	if desc != "" && f.Detail != "" {
		f.Detail = desc + ": " + f.Detail
	}
	return Failed(f)
}

// branchScoped runs one side of a branch with the law-emission cache
// restored afterwards. The explorer scopes each side's assumptions, so law
// facts assumed inside a branch vanish with that side's scope; sibling
// paths and the code after the branch must be free to re-emit them.
func (p *Producer) branchScoped(f func() Result) Result {
	saved := make(map[string]bool, len(p.lawsEmitted))
	for name, emitted := range p.lawsEmitted {
		saved[name] = emitted
	}
	result := f()
	p.lawsEmitted = saved
	return result
}

// emitFieldLaws assumes the lookup law of the snapshot algebra for a field
// name, once per assumption scope.
func (p *Producer) emitFieldLaws(field string) {
	if p.lawsEmitted[field] {
		return
	}
	p.lawsEmitted[field] = true
	r := term.Var{Name: "$r", S: term.SortRef}
	v := term.Var{Name: "$v", S: p.table.FieldSort(field)}
	rest := term.Var{Name: "$rest", S: term.SortSnap}
	law := snapshot.FieldLookupLaw(field, r, v, rest)
	lookup := snapshot.LookupField(field, snapshot.Combine(snapshot.Singleton(field, r, v), rest), r, v.S)
	p.prover.Assume(term.Quant{
		Vars:     []term.Var{r, v, rest},
		Triggers: [][]term.Term{{lookup}},
		Body:     law,
	})
}

func (p *Producer) emitPredicateLaws(pred string, arity int) {
	if p.lawsEmitted["pred:"+pred] {
		return
	}
	p.lawsEmitted["pred:"+pred] = true
	args := make([]term.Term, arity)
	vars := make([]term.Var, 0, arity+2)
	for i := range args {
		v := term.Var{Name: "$a" + strconv.Itoa(i), S: term.SortRef}
		args[i] = v
		vars = append(vars, v)
	}
	val := term.Var{Name: "$v", S: term.SortSnap}
	rest := term.Var{Name: "$rest", S: term.SortSnap}
	vars = append(vars, val, rest)
	law := snapshot.PredicateLookupLaw(pred, args, val, rest)
	p.prover.Assume(term.Quant{Vars: vars, Body: law})
}
