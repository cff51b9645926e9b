package translate

import (
	"fmt"

	"github.com/fracta-labs/fracta/internal/assertion"
	"github.com/fracta-labs/fracta/internal/term"
)

// resolve is the shared resolution fallback, invoked when a heap-dependent
// sub-expression requires a recorded value that is absent. A warning is
// emitted at most once per enclosing function (and suppressed entirely for
// functions the earlier pass already recorded failures for); the supplied
// policy decides whether the occurrence is fatal; and regardless of
// fatality a placeholder of the required sort is substituted so that
// translation always completes syntactically.
func (p *pass) resolve(pos assertion.Pos, need term.Sort) term.Term {
	name := "<unknown function>"
	if p.ctx.Caller != nil {
		name = p.ctx.Caller.Name
	}
	if !p.warned[name] {
		p.warned[name] = true
		p.ctx.Warner.Warnf("no recorded value for heap-dependent expression in %s at %s, substituting placeholder", name, pos)
	}
	if p.ctx.Fatal != nil && p.ctx.Fatal(pos, p.ctx.Caller) {
		p.fatal = true
	}
	return term.Var{Name: fmt.Sprintf("$unresolved@%s", pos), S: need}
}
