package logging

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// consoleHandler renders records as
//
//	2024-03-01T12:00:00Z INFO component: message [file.go:12] key=value
//
// The component attribute is lifted out of the key/value list. Nested groups
// are flattened into dotted keys.
type consoleHandler struct {
	mu        *sync.Mutex
	outputs   []output
	level     *slog.LevelVar
	addSource bool

	component string
	prefix    string
	fields    []byte
}

func newConsoleHandler(outputs []output, level *slog.LevelVar, addSource bool) *consoleHandler {
	return &consoleHandler{mu: &sync.Mutex{}, outputs: outputs, level: level, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	next := *h
	next.fields = append([]byte(nil), h.fields...)
	for _, attr := range attrs {
		next.appendAttr(attr, h.prefix)
	}
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	rec := *h
	rec.fields = append([]byte(nil), h.fields...)
	record.Attrs(func(attr slog.Attr) bool {
		rec.appendAttr(attr, h.prefix)
		return true
	})

	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	head := ts.UTC().Format(time.RFC3339) + " "

	var body strings.Builder
	body.WriteByte(' ')
	if rec.component != "" {
		body.WriteString(rec.component)
		body.WriteString(": ")
	}
	if msg := strings.TrimSpace(record.Message); msg != "" {
		body.WriteString(msg)
	} else {
		body.WriteString("(no message)")
	}
	if h.addSource {
		if src := record.Source(); src != nil && src.File != "" {
			fmt.Fprintf(&body, " [%s:%d]", filepath.Base(src.File), src.Line)
		}
	}
	body.Write(rec.fields)
	body.WriteByte('\n')

	style := styleFor(record.Level)
	plain := head + style.label + body.String()

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, out := range h.outputs {
		line := plain
		if out.color {
			line = head + style.color + style.label + ansiReset + body.String()
		}
		if _, err := out.w.Write([]byte(line)); err != nil {
			return err
		}
	}
	return nil
}

// appendAttr renders attr as " key=value" onto h.fields, or records it as the
// component when it is the top-level component attribute.
func (h *consoleHandler) appendAttr(attr slog.Attr, prefix string) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}
	if attr.Value.Kind() == slog.KindGroup {
		inner := prefix
		if attr.Key != "" {
			inner = prefix + attr.Key + "."
		}
		for _, member := range attr.Value.Group() {
			h.appendAttr(member, inner)
		}
		return
	}
	if prefix == "" && attr.Key == FieldComponent {
		if h.component == "" {
			h.component = valueText(attr.Value)
		}
		return
	}
	key := strings.TrimSuffix(prefix+attr.Key, ".")
	if key == "" {
		return
	}
	h.fields = append(h.fields, ' ')
	h.fields = append(h.fields, key...)
	h.fields = append(h.fields, '=')
	h.fields = append(h.fields, quote(valueText(attr.Value))...)
}

func valueText(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindTime:
		return v.Time().UTC().Format(time.RFC3339)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return fmt.Sprint(v.Any())
	default:
		return v.String()
	}
}

func quote(s string) string {
	if s == "" || strings.ContainsFunc(s, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) {
		return strconv.Quote(s)
	}
	return s
}

const ansiReset = "\x1b[0m"

type levelStyle struct {
	label string
	color string
}

func styleFor(level slog.Level) levelStyle {
	switch {
	case level >= slog.LevelError:
		return levelStyle{"ERROR", "\x1b[31m"}
	case level >= slog.LevelWarn:
		return levelStyle{"WARN", "\x1b[33m"}
	case level >= slog.LevelInfo:
		return levelStyle{"INFO", "\x1b[36m"}
	default:
		return levelStyle{"DEBUG", "\x1b[90m"}
	}
}
