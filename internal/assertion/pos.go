package assertion

import "fmt"

// Pos identifies a source position in the verified program.
type Pos struct {
	File string
	Line int
	Col  int
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// IsZero reports whether the position is unset.
func (p Pos) IsZero() bool {
	return p == Pos{}
}
