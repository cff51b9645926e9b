package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fracta-labs/fracta/internal/state"
	"github.com/fracta-labs/fracta/internal/term"
)

func TestRunSourceFieldAccess(t *testing.T) {
	source := []byte(`
name: single-field
fields:
  val: int
variables:
  x: ref
produce:
  - acc:
      recv: {var: x}
      field: val
`)
	rep, err := RunSource(source)
	require.NoError(t, err)
	assert.True(t, rep.Succeeded())
	assert.Equal(t, "single-field", rep.Name)

	require.Equal(t, 1, rep.Heap.Len())
	chunk := rep.Heap.Chunks()[0].(state.FieldChunk)
	assert.Equal(t, "val", chunk.Field)
	assert.True(t, term.Equal(term.FullPerm(), chunk.PermAmnt))
	assert.NotEmpty(t, rep.Facts)
}

func TestRunSourceConjunctionAndPure(t *testing.T) {
	source := []byte(`
name: conjunction
fields:
  val: int
variables:
  x: ref
  n: int
produce:
  - all:
      - acc:
          recv: {var: x}
          field: val
      - pure:
          op: ">"
          left: {var: n}
          right: {int: 0}
`)
	rep, err := RunSource(source)
	require.NoError(t, err)
	require.True(t, rep.Succeeded())
	assert.Equal(t, 1, rep.Heap.Len())

	var sawBound bool
	for _, f := range rep.Facts {
		if f.String() == ">(n, 0)" {
			sawBound = true
		}
	}
	assert.True(t, sawBound, "pure conjunct assumed as a fact")
}

func TestRunSourcePermissionFractionsAccumulate(t *testing.T) {
	source := []byte(`
name: fractions
fields:
  val: int
variables:
  x: ref
produce:
  - acc:
      recv: {var: x}
      field: val
      perm: {perm: 1/4}
  - acc:
      recv: {var: x}
      field: val
      perm: {perm: 1/4}
`)
	rep, err := RunSource(source)
	require.NoError(t, err)
	require.True(t, rep.Succeeded())
	require.Equal(t, 1, rep.Heap.Len())
	assert.True(t, term.Equal(term.FractionPerm(2, 4), rep.Heap.Chunks()[0].Perm()))
}

func TestRunSourceUnboundVariableFails(t *testing.T) {
	source := []byte(`
name: unbound
produce:
  - pure:
      op: ">"
      left: {var: ghost}
      right: {int: 0}
`)
	rep, err := RunSource(source)
	require.NoError(t, err)
	assert.False(t, rep.Succeeded())
	require.Len(t, rep.Failures, 1)
	assert.Contains(t, rep.Failures[0].Detail, "unbound variable ghost")
}

func TestRunSourceImplication(t *testing.T) {
	source := []byte(`
name: implication
fields:
  val: int
variables:
  x: ref
  c: bool
produce:
  - implies:
      if: {var: c}
      then:
        acc:
          recv: {var: x}
          field: val
`)
	rep, err := RunSource(source)
	require.NoError(t, err)
	// Both sides explored; the surviving state is the last explored one
	// (the else side), which gained nothing.
	assert.True(t, rep.Succeeded())
}

func TestRunSourceConditionalReportsEveryPath(t *testing.T) {
	source := []byte(`
name: conditional
fields:
  val: int
  next: ref
variables:
  x: ref
  c: bool
produce:
  - cond:
      if: {var: c}
      then:
        acc:
          recv: {var: x}
          field: val
      else:
        acc:
          recv: {var: x}
          field: next
`)
	rep, err := RunSource(source)
	require.NoError(t, err)
	require.True(t, rep.Succeeded())

	// One final heap per explored path, then-side first; the report's
	// heap is the last explored path's.
	require.Len(t, rep.PathHeaps, 2)
	assert.Equal(t, "val", rep.PathHeaps[0].Chunks()[0].(state.FieldChunk).Field)
	assert.Equal(t, "next", rep.PathHeaps[1].Chunks()[0].(state.FieldChunk).Field)
	require.Equal(t, 1, rep.Heap.Len())
	assert.Equal(t, "next", rep.Heap.Chunks()[0].(state.FieldChunk).Field)
}

func TestRunSourcePredicateTriggerOption(t *testing.T) {
	source := []byte(`
name: triggers
variables:
  x: ref
predicates:
  - name: list
    args:
      - {name: r, sort: ref}
options:
  predicate-triggers: true
produce:
  - pred:
      name: list
      args:
        - {var: x}
`)
	rep, err := RunSource(source)
	require.NoError(t, err)
	require.True(t, rep.Succeeded())

	var sawTrigger bool
	for _, f := range rep.Facts {
		if f.String() == "$trg[list](x)" {
			sawTrigger = true
		}
	}
	assert.True(t, sawTrigger)
}

func TestRunSourceQuantifiedFields(t *testing.T) {
	source := []byte(`
name: quantified
fields:
  val: int
variables:
  x: ref
options:
  quantified-fields: [val]
produce:
  - acc:
      recv: {var: x}
      field: val
`)
	rep, err := RunSource(source)
	require.NoError(t, err)
	require.True(t, rep.Succeeded())
	require.Equal(t, 1, rep.Heap.Len())
	chunk, ok := rep.Heap.Chunks()[0].(state.QuantifiedChunk)
	require.True(t, ok)
	assert.True(t, chunk.Singleton)
}

func TestParseScenarioRejectsBadPermission(t *testing.T) {
	source := []byte(`
name: bad-perm
variables:
  x: ref
produce:
  - acc:
      recv: {var: x}
      field: val
      perm: {perm: most}
`)
	rep, err := RunSource(source)
	assert.Nil(t, rep)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid permission")
}

func TestScenarioTableRejectsUnknownSort(t *testing.T) {
	sc := &Scenario{
		Name:   "bad",
		Fields: map[string]string{"val": "complex"},
	}
	_, err := sc.Table()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown sort")
}

func TestAxiomsForScenarioFunctions(t *testing.T) {
	source := []byte(`
name: axioms
functions:
  - name: inc
    args:
      - {name: x, sort: int}
    result: int
    body:
      op: "+"
      left: {var: x}
      right: {int: 1}
  - name: fib
    args:
      - {name: n, sort: int}
    result: int
    height: 1
    body:
      call: fib
      args:
        - op: "-"
          left: {var: n}
          right: {int: 1}
`)
	sc, err := ParseScenario(source)
	require.NoError(t, err)

	axioms, warnings, err := Axioms(sc)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	// Defining axiom plus limited-coincidence axiom per function, in name
	// order: fib first, then inc.
	require.Len(t, axioms, 4)

	fib := axioms[0].(term.Quant)
	eq := fib.Body.(term.App)
	assert.Equal(t, "fib", eq.Args[0].(term.App).Fn)
	assert.Equal(t, "fib%limited", eq.Args[1].(term.App).Fn)

	inc := axioms[2].(term.Quant)
	eq = inc.Body.(term.App)
	assert.Equal(t, "inc", eq.Args[0].(term.App).Fn)
}

func TestFunctionsWithoutBodiesYieldNoAxioms(t *testing.T) {
	source := []byte(`
name: abstract
functions:
  - name: opaque
    args:
      - {name: x, sort: int}
    result: int
`)
	sc, err := ParseScenario(source)
	require.NoError(t, err)

	axioms, _, err := Axioms(sc)
	require.NoError(t, err)
	assert.Empty(t, axioms)
}
