package logging

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	logTimestampLayout = "2006-01-02 15:04:05"
	infoAttrLimit      = 8
)

const (
	ansiReset  = "\x1b[0m"
	ansiDim    = "\x1b[2m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
)

type prettyHandler struct {
	mu        *sync.Mutex
	writer    io.Writer
	level     *slog.LevelVar
	attrs     []slog.Attr
	groups    []string
	addSource bool
	color     bool
}

func newPrettyHandler(w io.Writer, lvl *slog.LevelVar, addSource, color bool) slog.Handler {
	return &prettyHandler{mu: &sync.Mutex{}, writer: w, level: lvl, addSource: addSource, color: color}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *prettyHandler) Handle(_ context.Context, record slog.Record) error {
	if record.Level < h.level.Level() {
		return nil
	}

	timestamp := record.Time
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	set := newFieldSet(record.NumAttrs() + len(h.attrs))
	for _, attr := range h.attrs {
		set.add(h.groups, attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		set.add(h.groups, attr)
		return true
	})

	component := set.take(FieldComponent)
	source := set.take(FieldSource)
	stage := set.take(FieldStage)
	fields := set.fields

	message := strings.TrimSpace(record.Message)
	if message == "" {
		message = "(no message)"
	}

	var buf bytes.Buffer
	buf.Grow(256 + len(fields)*32)
	h.writeHeader(&buf, timestamp, record.Level, component, composeSubject(source, stage), message, record.Source())
	buf.WriteByte('\n')

	limit := 0
	if record.Level >= slog.LevelInfo {
		limit = infoAttrLimit
		fields = withoutDebugOnly(fields)
	}
	hidden := 0
	for i, kv := range fields {
		if limit > 0 && i >= limit {
			hidden = len(fields) - limit
			break
		}
		buf.WriteString("    - ")
		buf.WriteString(kv.key)
		buf.WriteString(": ")
		buf.WriteString(fieldValue(kv.value))
		buf.WriteByte('\n')
	}
	if hidden > 0 {
		buf.WriteString("    + ")
		buf.WriteString(strconv.Itoa(hidden))
		buf.WriteString(" more field")
		if hidden != 1 {
			buf.WriteByte('s')
		}
		buf.WriteString(" hidden\n")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buf.Bytes())
	return err
}

func (h *prettyHandler) writeHeader(buf *bytes.Buffer, ts time.Time, level slog.Level, component, subject, message string, src *slog.Source) {
	if h.color {
		buf.WriteString(ansiDim)
	}
	buf.WriteString(ts.In(time.Local).Format(logTimestampLayout))
	if h.color {
		buf.WriteString(ansiReset)
	}
	buf.WriteByte(' ')
	label := levelLabel(level)
	if color := levelColor(level); h.color && color != "" {
		buf.WriteString(color)
		buf.WriteString(label)
		buf.WriteString(ansiReset)
	} else {
		buf.WriteString(label)
	}
	if component != "" {
		buf.WriteString(" [")
		buf.WriteString(component)
		buf.WriteByte(']')
	}
	if subject != "" {
		buf.WriteByte(' ')
		buf.WriteString(subject)
	}
	buf.WriteString(" – ")
	buf.WriteString(message)
	if h.addSource && src != nil && src.File != "" {
		buf.WriteString(" [")
		buf.WriteString(filepath.Base(src.File))
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(src.Line))
		buf.WriteByte(']')
	}
}

// composeSubject renders "<file> (<stage>)" from the source path and stage.
func composeSubject(source, stage string) string {
	source = strings.TrimSpace(source)
	stage = strings.TrimSpace(stage)
	if source != "" {
		source = filepath.Base(source)
	}
	switch {
	case source != "" && stage != "":
		return source + " (" + stage + ")"
	case source != "":
		return source
	default:
		return stage
	}
}

// withoutDebugOnly drops identifiers that only matter when reading debug logs.
func withoutDebugOnly(fields []kv) []kv {
	out := fields[:0:0]
	for _, kv := range fields {
		if kv.key == FieldCorrelationID || kv.key == "command" {
			continue
		}
		out = append(out, kv)
	}
	return out
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := h.clone()
	clone.attrs = append(clone.attrs, attrs...)
	return clone
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	clone := h.clone()
	clone.groups = append(clone.groups, name)
	return clone
}

func (h *prettyHandler) clone() *prettyHandler {
	clone := &prettyHandler{
		mu:        h.mu,
		writer:    h.writer,
		level:     h.level,
		addSource: h.addSource,
		color:     h.color,
	}
	if len(h.attrs) > 0 {
		clone.attrs = make([]slog.Attr, len(h.attrs))
		copy(clone.attrs, h.attrs)
	}
	if len(h.groups) > 0 {
		clone.groups = make([]string, len(h.groups))
		copy(clone.groups, h.groups)
	}
	return clone
}

type kv struct {
	key   string
	value slog.Value
}

// fieldSet collects flattened attributes in first-seen order. A repeated key
// keeps its position and takes the latest value.
type fieldSet struct {
	fields []kv
	index  map[string]int
}

func newFieldSet(capacity int) *fieldSet {
	return &fieldSet{fields: make([]kv, 0, capacity), index: make(map[string]int, capacity)}
}

func (s *fieldSet) add(groups []string, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	value := attr.Value.Resolve()
	if value.Kind() == slog.KindGroup {
		nested := groups
		if attr.Key != "" {
			nested = append(groups[:len(groups):len(groups)], attr.Key)
		}
		for _, child := range value.Group() {
			s.add(nested, child)
		}
		return
	}
	key := attr.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}
	if key == "" {
		return
	}
	if pos, ok := s.index[key]; ok {
		s.fields[pos].value = value
		return
	}
	s.index[key] = len(s.fields)
	s.fields = append(s.fields, kv{key: key, value: value})
}

// take removes key from the set and returns its rendered value.
func (s *fieldSet) take(key string) string {
	pos, ok := s.index[key]
	if !ok {
		return ""
	}
	value := plainValue(s.fields[pos].value)
	s.fields = append(s.fields[:pos], s.fields[pos+1:]...)
	delete(s.index, key)
	for k, p := range s.index {
		if p > pos {
			s.index[k] = p - 1
		}
	}
	return value
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return ansiRed
	case level >= slog.LevelWarn:
		return ansiYellow
	case level >= slog.LevelInfo:
		return ansiCyan
	default:
		return ""
	}
}
