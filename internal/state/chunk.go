// Package state holds the symbolic configuration threaded through the
// production engine: the heap of owned resource chunks, reserve heaps for
// wand-packaging contexts, the variable environment, and the active
// permission-scaling factor. Values are immutable; every operation returns
// a new value.
package state

import (
	"strings"

	"github.com/fracta-labs/fracta/internal/term"
)

// Chunk is a record of an owned resource together with its snapshot value
// and permission amount.
type Chunk interface {
	isChunk()
	// Key identifies the resource: same-key chunks refer to the same
	// resource and their permissions are additive.
	Key() string
	Snap() term.Term
	Perm() term.Term
	// WithPerm returns a copy of the chunk carrying the given permission.
	WithPerm(p term.Term) Chunk
	String() string
}

// FieldChunk is ownership of a single field at a single receiver.
type FieldChunk struct {
	Field    string
	Recv     term.Term
	Value    term.Term
	PermAmnt term.Term
}

func (FieldChunk) isChunk()          {}
func (c FieldChunk) Key() string     { return c.Field + "|" + c.Recv.String() }
func (c FieldChunk) Snap() term.Term { return c.Value }
func (c FieldChunk) Perm() term.Term { return c.PermAmnt }
func (c FieldChunk) WithPerm(p term.Term) Chunk {
	c.PermAmnt = p
	return c
}
func (c FieldChunk) String() string {
	return c.Recv.String() + "." + c.Field + " -> " + c.Value.String() + " # " + c.PermAmnt.String()
}

// PredicateChunk is ownership of one predicate instance.
type PredicateChunk struct {
	Pred     string
	Args     []term.Term
	Value    term.Term
	PermAmnt term.Term
}

func (PredicateChunk) isChunk() {}
func (c PredicateChunk) Key() string {
	var sb strings.Builder
	sb.WriteString(c.Pred)
	for _, a := range c.Args {
		sb.WriteString("|")
		sb.WriteString(a.String())
	}
	return sb.String()
}
func (c PredicateChunk) Snap() term.Term { return c.Value }
func (c PredicateChunk) Perm() term.Term { return c.PermAmnt }
func (c PredicateChunk) WithPerm(p term.Term) Chunk {
	c.PermAmnt = p
	return c
}
func (c PredicateChunk) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return c.Pred + "(" + strings.Join(args, ", ") + ") -> " + c.Value.String() + " # " + c.PermAmnt.String()
}

// WandChunk is ownership of one magic-wand instance. Identity is the
// rendered wand shape.
type WandChunk struct {
	ID       string
	Value    term.Term
	PermAmnt term.Term
}

func (WandChunk) isChunk()          {}
func (c WandChunk) Key() string     { return "wand|" + c.ID }
func (c WandChunk) Snap() term.Term { return c.Value }
func (c WandChunk) Perm() term.Term { return c.PermAmnt }
func (c WandChunk) WithPerm(p term.Term) Chunk {
	c.PermAmnt = p
	return c
}
func (c WandChunk) String() string {
	return c.ID + " -> " + c.Value.String() + " # " + c.PermAmnt.String()
}

// QuantifiedChunk is ownership of a family of resources indexed by bound
// variables. The snapshot is a map-valued term; the permission may depend
// on the bound variables, guarded by the domain condition.
type QuantifiedChunk struct {
	Resource string
	Vars     []term.Var
	Cond     term.Term
	SnapMap  term.Term
	PermAmnt term.Term
	// Singleton marks chunks produced for a single location or wand
	// instance, recorded for later summarization across matching chunks.
	Singleton bool
}

func (QuantifiedChunk) isChunk() {}
func (c QuantifiedChunk) Key() string {
	key := "quant|" + c.Resource
	if c.Cond != nil {
		key += "|" + c.Cond.String()
	}
	return key
}
func (c QuantifiedChunk) Snap() term.Term { return c.SnapMap }
func (c QuantifiedChunk) Perm() term.Term { return c.PermAmnt }
func (c QuantifiedChunk) WithPerm(p term.Term) Chunk {
	c.PermAmnt = p
	return c
}
func (c QuantifiedChunk) String() string {
	return "forall " + c.Resource + " -> " + c.SnapMap.String() + " # " + c.PermAmnt.String()
}
