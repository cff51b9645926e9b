// Package report carries the observability sinks consumed by the core:
// a structured span recorder and a textual warning reporter. Both are
// side-effecting only and must never influence control flow or produced
// terms.
package report

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/fracta-labs/fracta/internal/assertion"
)

// Spans receives enter/leave markers per produced conjunct.
type Spans interface {
	Enter(label string, pos assertion.Pos)
	Leave(label string)
}

// Warner receives internal warnings, distinct from verification errors.
type Warner interface {
	Warnf(format string, args ...any)
}

// NopSpans discards span markers.
type NopSpans struct{}

func (NopSpans) Enter(string, assertion.Pos) {}
func (NopSpans) Leave(string)                {}

// NopWarner discards warnings.
type NopWarner struct{}

func (NopWarner) Warnf(string, ...any) {}

// ZapSpans records spans at debug level on a zap logger.
type ZapSpans struct {
	Logger *zap.Logger
}

func (s ZapSpans) Enter(label string, pos assertion.Pos) {
	s.Logger.Debug("enter", zap.String("conjunct", label), zap.String("pos", pos.String()))
}

func (s ZapSpans) Leave(label string) {
	s.Logger.Debug("leave", zap.String("conjunct", label))
}

// ZapWarner emits warnings on a zap logger.
type ZapWarner struct {
	Logger *zap.Logger
}

func (w ZapWarner) Warnf(format string, args ...any) {
	w.Logger.Warn(fmt.Sprintf(format, args...))
}

// CollectWarner accumulates warnings for later inspection; used in tests
// and by the scenario runner's report.
type CollectWarner struct {
	Warnings []string
}

func (w *CollectWarner) Warnf(format string, args ...any) {
	w.Warnings = append(w.Warnings, fmt.Sprintf(format, args...))
}
