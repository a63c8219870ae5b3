package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestNewFanoutHandlerCollapses(t *testing.T) {
	if _, ok := newFanoutHandler(nil, nil).(NoopHandler); !ok {
		t.Fatal("expected NoopHandler when every handler is nil")
	}
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	if h := newFanoutHandler(nil, inner, nil); h != inner {
		t.Fatal("expected single non-nil handler to be returned unwrapped")
	}
}

func TestFanoutHandlerRoutesByLevel(t *testing.T) {
	var consoleBuf, fileBuf bytes.Buffer
	console := slog.NewJSONHandler(&consoleBuf, &slog.HandlerOptions{Level: slog.LevelInfo})
	file := slog.NewJSONHandler(&fileBuf, &slog.HandlerOptions{Level: slog.LevelDebug})

	h := newFanoutHandler(console, file)
	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected fanout enabled for debug when any handler accepts it")
	}

	logger := slog.New(h)
	logger.Debug("file only")
	if consoleBuf.Len() != 0 {
		t.Fatalf("console should not receive debug records, got %q", consoleBuf.String())
	}
	if !bytes.Contains(fileBuf.Bytes(), []byte("file only")) {
		t.Fatalf("file should receive debug records, got %q", fileBuf.String())
	}

	logger.Info("both", slog.String("attr", "value"))
	if !bytes.Contains(consoleBuf.Bytes(), []byte(`"attr"`)) || !bytes.Contains(fileBuf.Bytes(), []byte(`"attr"`)) {
		t.Fatal("expected info record with attr in both outputs")
	}
}

func TestFanoutHandlerWithAttrsAndGroup(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	h := newFanoutHandler(slog.NewJSONHandler(&buf1, nil), slog.NewJSONHandler(&buf2, nil))

	logger := slog.New(h.WithAttrs([]slog.Attr{slog.String("key", "value")}).WithGroup("grp"))
	logger.Info("test", slog.String("field", "value"))

	for i, buf := range []*bytes.Buffer{&buf1, &buf2} {
		if !bytes.Contains(buf.Bytes(), []byte(`"key"`)) || !bytes.Contains(buf.Bytes(), []byte(`"grp"`)) {
			t.Fatalf("handler %d missing attrs or group: %q", i, buf.String())
		}
	}
}

type failingHandler struct{ err error }

func (failingHandler) Enabled(context.Context, slog.Level) bool    { return true }
func (f failingHandler) Handle(context.Context, slog.Record) error { return f.err }
func (f failingHandler) WithAttrs([]slog.Attr) slog.Handler        { return f }
func (f failingHandler) WithGroup(string) slog.Handler             { return f }

func TestFanoutHandlerJoinsErrors(t *testing.T) {
	first := errors.New("console closed")
	second := errors.New("disk full")
	logger := slog.New(newFanoutHandler(failingHandler{first}, failingHandler{second}))

	err := logger.Handler().Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "msg", 0))
	if !errors.Is(err, first) || !errors.Is(err, second) {
		t.Fatalf("expected both errors, got %v", err)
	}
}
