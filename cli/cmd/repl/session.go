package repl

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/kaleido/lang"
	"github.com/ardnew/kaleido/log"
)

// keywords are offered for completion alongside session names.
var keywords = []string{"def", "extern"}

// Session accumulates the items parsed during one REPL run.
type Session struct {
	ast    lang.AST
	opts   []lang.Option
	logger log.Logger
}

// NewSession returns an empty session parsing with opts.
func NewSession(logger log.Logger, opts ...lang.Option) *Session {
	s := &Session{
		opts:   append(slices.Clone(opts), lang.WithLogger(logger)),
		logger: logger,
	}

	s.ast.Precedence = lang.NewParser(strings.NewReader(""), s.opts...).Precedence()

	return s
}

// Result is the outcome of one construct of a line of input.
type Result struct {
	Err  error
	Item lang.Item
}

// Message returns the driver's report for r.
func (r Result) Message() string {
	if r.Err != nil {
		return "Error: " + r.Err.Error()
	}

	switch r.Item.Kind {
	case lang.ItemDefinition:
		return "Parsed a function definition."
	case lang.ItemExtern:
		return "Parsed an extern."
	default:
		return "Parsed a top-level expr."
	}
}

// Eval parses every construct of line, adding those that parse to the
// session.
func (s *Session) Eval(ctx context.Context, line string) []Result {
	p := lang.NewParser(strings.NewReader(line), s.opts...)

	var out []Result

	for item, err := range p.Items(ctx) {
		if err == nil {
			s.ast.Items = append(s.ast.Items, item)
		}

		out = append(out, Result{Err: err, Item: item})
	}

	s.logger.TraceContext(ctx, "repl eval",
		slog.String("input", line),
		slog.Int("results", len(out)),
		slog.Int("items", len(s.ast.Items)))

	return out
}

// AST returns the items parsed so far.
func (s *Session) AST() *lang.AST { return &s.ast }

// Precedence returns a copy of the operator table used by the session.
func (s *Session) Precedence() *lang.Precedence { return s.ast.Precedence.Clone() }

// Sprint returns it as source text for the session's operator table.
func (s *Session) Sprint(it lang.Item) string { return it.Sprint(s.ast.Precedence) }

// Names returns the distinct names of functions defined or declared in the
// session, most recent first.
func (s *Session) Names() []string {
	var names []string

	for i := len(s.ast.Items) - 1; i >= 0; i-- {
		proto := s.ast.Items[i].Prototype()
		if proto == nil || proto.Name == "" || slices.Contains(names, proto.Name) {
			continue
		}

		names = append(names, proto.Name)
	}

	return names
}

// Reset discards every item parsed so far.
func (s *Session) Reset() { s.ast.Items = nil }

// Plain runs the line-oriented driver loop over r: it prompts on w before
// each construct and reports the outcome of each on w.
func Plain(ctx context.Context, r io.Reader, w io.Writer, opts ...lang.Option) error {
	p := lang.NewParser(r, opts...)

	for {
		_, _ = io.WriteString(w, "ready> ")

		item, err := p.Next(ctx)

		switch {
		case errors.Is(err, io.EOF):
			_, _ = io.WriteString(w, "\n")

			return p.Err()

		case err != nil && ctx.Err() != nil:
			return err
		}

		_, _ = io.WriteString(w, Result{Err: err, Item: item}.Message()+"\n")
	}
}
