// Package formatter renders production outcomes for terminal output:
// heaps, background facts, axioms, and diagnostics.
package formatter

import (
	"strings"

	"github.com/fatih/color"

	"github.com/fracta-labs/fracta/internal/produce"
	"github.com/fracta-labs/fracta/internal/state"
	"github.com/fracta-labs/fracta/internal/term"
)

var (
	headerStyle  = color.New(color.FgCyan, color.Bold)
	chunkStyle   = color.New(color.FgGreen)
	factStyle    = color.New(color.FgWhite)
	errorStyle   = color.New(color.FgRed, color.Bold)
	warningStyle = color.New(color.FgHiYellow, color.Bold)
	posStyle     = color.New(color.FgHiBlue)
)

// Heap renders the chunks of a heap, one per line.
func Heap(h state.Heap) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Sprint("heap"))
	sb.WriteString("\n")
	if h.Len() == 0 {
		sb.WriteString("  <empty>\n")
		return sb.String()
	}
	for _, c := range h.Chunks() {
		sb.WriteString("  ")
		sb.WriteString(chunkStyle.Sprint(c.String()))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Facts renders assumed background facts in assumption order.
func Facts(facts []term.Term) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Sprint("facts"))
	sb.WriteString("\n")
	for _, f := range facts {
		sb.WriteString("  ")
		sb.WriteString(factStyle.Sprint(f.String()))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Axioms renders function axioms, one per line.
func Axioms(axioms []term.Term) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Sprint("axioms"))
	sb.WriteString("\n")
	for _, a := range axioms {
		sb.WriteString("  ")
		sb.WriteString(factStyle.Sprint(a.String()))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Failures renders verification failures with their source positions.
func Failures(failures []produce.Failure) string {
	var sb strings.Builder
	for _, f := range failures {
		sb.WriteString(errorStyle.Sprint(f.Kind.String()))
		sb.WriteString(" ")
		sb.WriteString(posStyle.Sprint(f.Pos.String()))
		sb.WriteString(": ")
		sb.WriteString(f.Detail)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Warnings renders internal warnings, visually distinct from failures.
func Warnings(warnings []string) string {
	var sb strings.Builder
	for _, w := range warnings {
		sb.WriteString(warningStyle.Sprint("warning"))
		sb.WriteString(": ")
		sb.WriteString(w)
		sb.WriteString("\n")
	}
	return sb.String()
}
