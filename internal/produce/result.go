package produce

import (
	"fmt"

	"github.com/fracta-labs/fracta/internal/assertion"
)

// FailureKind represents the kind of a production failure.
type FailureKind int

const (
	_ FailureKind = iota
	// FailMalformed indicates an assertion that is invalid in a
	// production context, such as an inhale-exhale pair.
	FailMalformed
	// FailEvaluation indicates a failed expression evaluation, such as
	// division by zero or a heap read without permission.
	FailEvaluation
)

func (k FailureKind) String() string {
	switch k {
	case FailMalformed:
		return "MalformedAssertion"
	case FailEvaluation:
		return "EvaluationFailure"
	default:
		return "?"
	}
}

// Failure is a verification failure attributed to a source position.
type Failure struct {
	Kind   FailureKind
	Pos    assertion.Pos
	Detail string
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s at %s: %s", f.Kind, f.Pos, f.Detail)
}

// Result is the outcome of a production step. Propagation is by value:
// a failing sub-evaluation never invokes its success continuation, and a
// branching step aggregates the results of both sides.
type Result struct {
	failures []Failure
}

// Success returns the successful result.
func Success() Result {
	return Result{}
}

// Failed returns a result carrying a single failure.
func Failed(f Failure) Result {
	return Result{failures: []Failure{f}}
}

// IsSuccess reports whether no failure occurred.
func (r Result) IsSuccess() bool {
	return len(r.failures) == 0
}

// Failures returns the collected failures in exploration order.
func (r Result) Failures() []Failure {
	return r.failures
}

// And aggregates two results: success iff both succeed, failures
// concatenated in order.
func (r Result) And(other Result) Result {
	if len(other.failures) == 0 {
		return r
	}
	out := make([]Failure, 0, len(r.failures)+len(other.failures))
	out = append(out, r.failures...)
	out = append(out, other.failures...)
	return Result{failures: out}
}
