package state

import (
	"strings"

	"github.com/fracta-labs/fracta/internal/term"
)

// Heap is an ordered, immutable collection of resource chunks. Order is
// insertion order; merging an existing identity updates in place.
type Heap struct {
	chunks []Chunk
}

// NewHeap creates an empty heap.
func NewHeap() Heap {
	return Heap{}
}

// Chunks returns the chunks in order. Callers must not modify the slice.
func (h Heap) Chunks() []Chunk {
	return h.chunks
}

// Len returns the number of chunks.
func (h Heap) Len() int {
	return len(h.chunks)
}

// Merge adds a chunk to the heap. If a chunk with the same identity already
// exists, the permissions are summed and the existing snapshot is kept
// (background facts make the two snapshot values provably equal).
func (h Heap) Merge(c Chunk) Heap {
	key := c.Key()
	for i, existing := range h.chunks {
		if existing.Key() == key {
			merged := existing.WithPerm(term.PermAdd(existing.Perm(), c.Perm()))
			out := make([]Chunk, len(h.chunks))
			copy(out, h.chunks)
			out[i] = merged
			return Heap{chunks: out}
		}
	}
	out := make([]Chunk, len(h.chunks)+1)
	copy(out, h.chunks)
	out[len(h.chunks)] = c
	return Heap{chunks: out}
}

// Find returns the chunk with the given identity, if present.
func (h Heap) Find(key string) (Chunk, bool) {
	for _, c := range h.chunks {
		if c.Key() == key {
			return c, true
		}
	}
	return nil, false
}

func (h Heap) String() string {
	if len(h.chunks) == 0 {
		return "<empty>"
	}
	parts := make([]string, len(h.chunks))
	for i, c := range h.chunks {
		parts[i] = c.String()
	}
	return strings.Join(parts, " * ")
}
