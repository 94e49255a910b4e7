package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ANSI color codes for pretty printing.
const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// prettyBase holds the state shared by the colorized handlers.
// Derived handlers share the writer lock with their parent.
type prettyBase struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	prefix string
}

func makePrettyBase(w io.Writer, opts *slog.HandlerOptions) prettyBase {
	b := prettyBase{mu: &sync.Mutex{}, w: w}
	if opts != nil {
		b.opts = *opts
	}

	return b
}

func (b prettyBase) enabled(level slog.Level) bool {
	floor := slog.LevelInfo
	if b.opts.Level != nil {
		floor = b.opts.Level.Level()
	}

	return level >= floor
}

// withAttrs returns a copy of b carrying attrs, qualified by the current
// group prefix.
func (b prettyBase) withAttrs(attrs []slog.Attr) prettyBase {
	next := b
	next.attrs = make([]slog.Attr, 0, len(b.attrs)+len(attrs))
	next.attrs = append(next.attrs, b.attrs...)

	for _, a := range attrs {
		a.Key = b.prefix + a.Key
		next.attrs = append(next.attrs, a)
	}

	return next
}

func (b prettyBase) withGroup(name string) prettyBase {
	if name == "" {
		return b
	}

	next := b
	next.prefix = b.prefix + name + "."

	return next
}

// fields returns the record's header and attributes in output order, with
// ReplaceAttr applied. Attributes that resolve to empty are dropped.
func (b prettyBase) fields(r slog.Record) []slog.Attr {
	out := make([]slog.Attr, 0, 4+len(b.attrs)+r.NumAttrs())

	add := func(a slog.Attr) {
		a.Value = a.Value.Resolve()
		if b.opts.ReplaceAttr != nil && a.Value.Kind() != slog.KindGroup {
			a = b.opts.ReplaceAttr(nil, a)
		}

		if a.Key == "" {
			return
		}

		out = append(out, a)
	}

	if !r.Time.IsZero() {
		add(slog.Time(slog.TimeKey, r.Time))
	}

	add(slog.Any(slog.LevelKey, r.Level))

	if b.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			add(slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	add(slog.String(slog.MessageKey, r.Message))

	for _, a := range b.attrs {
		add(a)
	}

	r.Attrs(func(a slog.Attr) bool {
		a.Key = b.prefix + a.Key
		add(a)

		return true
	})

	return out
}

func (b prettyBase) write(buf *bytes.Buffer) error {
	buf.WriteByte('\n')

	b.mu.Lock()
	defer b.mu.Unlock()

	_, err := b.w.Write(buf.Bytes())

	return err
}

// prettyTextHandler implements a colorized key=value handler.
type prettyTextHandler struct {
	prettyBase
}

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyTextHandler {
	return &prettyTextHandler{makePrettyBase(w, opts)}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	for _, a := range h.fields(r) {
		writeTextAttr(buf, "", a)
	}

	return h.write(buf)
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyTextHandler{h.withAttrs(attrs)}
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	return &prettyTextHandler{h.withGroup(name)}
}

func writeTextAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	if a.Value.Kind() == slog.KindGroup {
		for _, g := range a.Value.Group() {
			writeTextAttr(buf, prefix+a.Key+".", g)
		}

		return
	}

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(colorGray)
	buf.WriteString(prefix)
	buf.WriteString(a.Key)
	buf.WriteString(colorReset)
	buf.WriteByte('=')

	writeColorValue(buf, a.Key, a.Value, false)
}

// writeColorValue writes v wrapped in a color chosen by its kind.
// Strings are quoted when quote is set or when they contain spaces.
func writeColorValue(buf *bytes.Buffer, key string, v slog.Value, quote bool) {
	color, text := colorCyan, ""

	switch v.Kind() {
	case slog.KindString:
		text = v.String()
		if key == slog.LevelKey {
			color = levelColor(text)
		}

		if quote || strings.ContainsAny(text, " \t\n\"=") {
			text = strconv.Quote(text)
		}

	case slog.KindInt64:
		color, text = colorYellow, strconv.FormatInt(v.Int64(), 10)

	case slog.KindUint64:
		color, text = colorYellow, strconv.FormatUint(v.Uint64(), 10)

	case slog.KindFloat64:
		color, text = colorYellow, strconv.FormatFloat(v.Float64(), 'g', -1, 64)

	case slog.KindBool:
		color, text = colorRed, "false"
		if v.Bool() {
			color, text = colorGreen, "true"
		}

	case slog.KindDuration:
		color, text = colorMagenta, v.Duration().String()
		if quote {
			text = strconv.Quote(text)
		}

	case slog.KindTime:
		color, text = colorBlue, v.Time().Format(time.RFC3339)
		if quote {
			text = strconv.Quote(text)
		}

	default:
		if level, ok := v.Any().(slog.Level); ok {
			text = levelText(level)
			color = levelColor(text)
		} else {
			text = v.String()
		}

		if quote || strings.ContainsAny(text, " \t\n\"=") {
			text = strconv.Quote(text)
		}
	}

	buf.WriteString(color)
	buf.WriteString(text)
	buf.WriteString(colorReset)
}

func levelColor(name string) string {
	switch strings.ToUpper(name) {
	case "ERROR":
		return colorRed
	case "WARN":
		return colorYellow
	case "INFO":
		return colorGreen
	default:
		return colorBlue
	}
}

// prettyJSONHandler implements an indented, colorized JSON handler.
// Groups are rendered as nested objects.
type prettyJSONHandler struct {
	prettyBase
}

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyJSONHandler {
	return &prettyJSONHandler{makePrettyBase(w, opts)}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	writeJSONObject(buf, h.fields(r), 1)

	return h.write(buf)
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyJSONHandler{h.withAttrs(attrs)}
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	return &prettyJSONHandler{h.withGroup(name)}
}

func writeJSONObject(buf *bytes.Buffer, attrs []slog.Attr, depth int) {
	indent := strings.Repeat("  ", depth)

	buf.WriteString("{")

	for i, a := range attrs {
		if i > 0 {
			buf.WriteByte(',')
		}

		buf.WriteByte('\n')
		buf.WriteString(indent)
		buf.WriteString(colorGray)
		buf.WriteString(strconv.Quote(a.Key))
		buf.WriteString(colorReset)
		buf.WriteString(": ")

		if a.Value.Kind() == slog.KindGroup {
			writeJSONObject(buf, a.Value.Group(), depth+1)

			continue
		}

		writeColorValue(buf, a.Key, a.Value, true)
	}

	if len(attrs) > 0 {
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat("  ", depth-1))
	}

	buf.WriteString("}")
}
