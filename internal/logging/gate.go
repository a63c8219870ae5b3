package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// Gate drops WARN records while at least one suppression scope is open.
// ERROR records always pass. Scopes nest; each Suppress call must be paired
// with a call to the returned restore function.
type Gate struct {
	depth atomic.Int32
}

// NewGate returns an open gate.
func NewGate() *Gate {
	return &Gate{}
}

// Suppress opens a suppression scope and returns the function that closes it.
// The restore function is idempotent.
func (g *Gate) Suppress() (restore func()) {
	if g == nil {
		return func() {}
	}
	g.depth.Add(1)
	var once atomic.Bool
	return func() {
		if once.CompareAndSwap(false, true) {
			g.depth.Add(-1)
		}
	}
}

// Suppressed reports whether warnings are currently being dropped.
func (g *Gate) Suppressed() bool {
	return g != nil && g.depth.Load() > 0
}

func (g *Gate) drops(level slog.Level) bool {
	return level >= slog.LevelWarn && level < slog.LevelError && g.Suppressed()
}

type gateHandler struct {
	next slog.Handler
	gate *Gate
}

// GateHandler wraps next so that records are filtered through gate.
func GateHandler(next slog.Handler, gate *Gate) slog.Handler {
	if next == nil {
		return NoopHandler{}
	}
	if gate == nil {
		return next
	}
	return &gateHandler{next: next, gate: gate}
}

func (h *gateHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.gate.drops(level) {
		return false
	}
	return h.next.Enabled(ctx, level)
}

func (h *gateHandler) Handle(ctx context.Context, record slog.Record) error {
	if h.gate.drops(record.Level) {
		return nil
	}
	return h.next.Handle(ctx, record)
}

func (h *gateHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &gateHandler{next: h.next.WithAttrs(attrs), gate: h.gate}
}

func (h *gateHandler) WithGroup(name string) slog.Handler {
	return &gateHandler{next: h.next.WithGroup(name), gate: h.gate}
}
