package state

import "github.com/fracta-labs/fracta/internal/term"

// State is the symbolic configuration threaded through one exploration
// path. It is a value: every operation returns a new State, concurrent
// branches never alias one, and a failing step leaves no partial effect.
type State struct {
	Heap     Heap
	reserves []Heap
	env      map[string]term.Term
	Scale    term.Term
	// Recording is set while a function body is being recorded for
	// axiomatization; trigger facts are suppressed during recording.
	Recording bool
}

// New creates an empty state with full permission scaling.
func New() State {
	return State{Heap: NewHeap(), Scale: term.FullPerm()}
}

// WithHeap returns a copy of the state carrying the given heap.
func (s State) WithHeap(h Heap) State {
	s.Heap = h
	return s
}

// WithScale returns a copy with the permission-scaling factor replaced.
func (s State) WithScale(factor term.Term) State {
	s.Scale = factor
	return s
}

// WithRecording returns a copy with the recording flag set.
func (s State) WithRecording(on bool) State {
	s.Recording = on
	return s
}

// Bind returns a copy with the variable bound to the given term.
func (s State) Bind(name string, t term.Term) State {
	env := make(map[string]term.Term, len(s.env)+1)
	for k, v := range s.env {
		env[k] = v
	}
	env[name] = t
	s.env = env
	return s
}

// Lookup resolves a variable binding.
func (s State) Lookup(name string) (term.Term, bool) {
	t, ok := s.env[name]
	return t, ok
}

// PushReserve pushes the current heap onto the reserve stack and installs
// the given heap, entering a wand-packaging context.
func (s State) PushReserve(h Heap) State {
	reserves := make([]Heap, len(s.reserves)+1)
	copy(reserves, s.reserves)
	reserves[len(s.reserves)] = s.Heap
	s.reserves = reserves
	s.Heap = h
	return s
}

// PopReserve restores the most recently reserved heap. The second return
// is false if no reserve is active.
func (s State) PopReserve() (State, bool) {
	if len(s.reserves) == 0 {
		return s, false
	}
	top := s.reserves[len(s.reserves)-1]
	reserves := make([]Heap, len(s.reserves)-1)
	copy(reserves, s.reserves[:len(s.reserves)-1])
	s.reserves = reserves
	s.Heap = top
	return s, true
}

// ReserveDepth returns the number of active wand-packaging contexts.
func (s State) ReserveDepth() int {
	return len(s.reserves)
}
