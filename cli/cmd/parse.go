package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/klauspost/readahead"

	"github.com/ardnew/kaleido/lang"
	"github.com/ardnew/kaleido/log"
)

// Parse runs the driving loop over each source and prints what it parsed.
type Parse struct {
	Sources []string `arg:"" help:"Source files, or '-' for stdin" name:"source" optional:""`

	Format string `default:"native" enum:"native,json,yaml,ast" help:"Output format (${enum})"                 short:"f"`
	Indent int    `default:"2"                                  help:"Indentation width for json and yaml"`
	Strict bool   `                                             help:"Exit with failure if any item fails to parse"`
}

// Run executes the parse command.
func (p *Parse) Run(ctx context.Context) error {
	stdout, stderr := streams(ctx)

	return p.run(ctx, stdout, stderr)
}

func (p *Parse) run(ctx context.Context, stdout, stderr io.Writer) error {
	srcs, err := openSources(ctx, p.Sources)
	if err != nil {
		return err
	}
	defer closeSources(srcs)

	failed := 0

	for _, src := range srcs {
		n, err := p.parse(ctx, src, stdout, stderr)
		if err != nil {
			return err
		}

		failed += n
	}

	if failed > 0 && p.Strict {
		return ErrParseFailed.With(slog.Int("errors", failed))
	}

	return nil
}

// parse drives one source, returning the number of items that failed.
func (p *Parse) parse(
	ctx context.Context,
	src source,
	stdout, stderr io.Writer,
) (failed int, err error) {
	ra := readahead.NewReader(src)
	defer ra.Close()

	var text lines

	settings := settingsFrom(ctx)
	prec := settings.Precedence

	parser := lang.NewParser(
		io.TeeReader(ra, &text),
		settings.Options(src.name)...,
	)

	ast := lang.AST{Precedence: prec}

	for item, perr := range parser.Items(ctx) {
		if perr != nil {
			if fatal(perr) {
				return failed, perr
			}

			failed++

			log.DebugContext(ctx, "parse error", slog.Any("error", perr))
			reportError(stderr, perr, &text)

			continue
		}

		if p.Format == "native" {
			if _, err := fmt.Fprintln(stdout, item.Sprint(prec)); err != nil {
				return failed, ErrWriteOutput.Wrap(err)
			}

			continue
		}

		ast.Items = append(ast.Items, item)
	}

	return failed, p.write(ctx, stdout, &ast)
}

func (p *Parse) write(ctx context.Context, w io.Writer, ast *lang.AST) (err error) {
	switch p.Format {
	case "native":
		return nil

	case "json":
		err = ast.FormatJSON(ctx, w, p.Indent)

	case "yaml":
		err = ast.FormatYAML(ctx, w, p.Indent)

	case "ast":
		defer func() {
			if r := recover(); r != nil {
				if rerr, ok := r.(error); ok {
					err = ErrWriteOutput.Wrap(rerr)

					return
				}

				panic(r)
			}
		}()

		ast.Print(ctx, w)

	default:
		return ErrUnknownValue.With(slog.String("format", p.Format))
	}

	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// fatal reports whether err ends the driving loop rather than a single
// item.
func fatal(err error) bool {
	return errors.Is(err, lang.ErrReadInput) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// streams returns the output writers of the kong context in ctx, or the
// process's standard streams.
func streams(ctx context.Context) (stdout, stderr io.Writer) {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Kong != nil {
		return ktx.Stdout, ktx.Stderr
	}

	return os.Stdout, os.Stderr
}

// lines keeps the most recent source lines written to it so that
// diagnostics can quote them. Every line with a byte among the last budget
// bytes written is retained; older lines are dropped.
type lines struct {
	recent  []string
	partial []byte
	first   int // line number of recent[0], less one
	size    int // bytes held by recent, terminators included
	budget  int
}

// defaultLineBudget exceeds the read-ahead of the scanner, so the line of
// any token being parsed is still held.
const defaultLineBudget = 64 << 10

func (l *lines) Write(p []byte) (int, error) {
	n := len(p)

	for {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			break
		}

		l.partial = append(l.partial, p[:i]...)
		l.push(string(bytes.TrimSuffix(l.partial, []byte{'\r'})))
		l.partial = l.partial[:0]
		p = p[i+1:]
	}

	l.partial = append(l.partial, p...)

	return n, nil
}

// WriteString implements io.StringWriter.
func (l *lines) WriteString(s string) (int, error) {
	return l.Write([]byte(s))
}

func (l *lines) push(line string) {
	budget := l.budget
	if budget <= 0 {
		budget = defaultLineBudget
	}

	l.recent = append(l.recent, line)
	l.size += len(line) + 1

	drop := 0
	for drop < len(l.recent)-1 && l.size-(len(l.recent[drop])+1) >= budget {
		l.size -= len(l.recent[drop]) + 1
		drop++
	}

	if drop > 0 {
		l.recent = slices.Delete(l.recent, 0, drop)
		l.first += drop
	}
}

// Line returns the 1-based line n without its terminator. The line being
// written is available before its terminator arrives.
func (l *lines) Line(n int) (string, bool) {
	i := n - 1 - l.first

	switch {
	case n < 1 || i < 0:
		return "", false

	case i < len(l.recent):
		return l.recent[i], true

	case i == len(l.recent):
		return string(bytes.TrimSuffix(l.partial, []byte{'\r'})), true

	default:
		return "", false
	}
}
