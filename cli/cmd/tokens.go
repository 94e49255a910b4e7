package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ardnew/kaleido/lang"
)

// Tokens prints the token stream of each source.
type Tokens struct {
	Sources []string `arg:"" help:"Source files, or '-' for stdin" name:"source" optional:""`
}

// Run executes the tokens command.
func (t *Tokens) Run(ctx context.Context) error {
	stdout, _ := streams(ctx)

	return t.run(ctx, stdout)
}

func (t *Tokens) run(ctx context.Context, w io.Writer) error {
	srcs, err := openSources(ctx, t.Sources)
	if err != nil {
		return err
	}
	defer closeSources(srcs)

	set := settingsFrom(ctx)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for _, src := range srcs {
		opts := []lang.ScanOption{lang.ScanSource(src.name)}
		if set.CommaNumbers {
			opts = append(opts, lang.ScanCommaNumbers())
		}

		scan := lang.NewScanner(src, opts...)

		for tok := range scan.All() {
			if err := ctx.Err(); err != nil {
				return err
			}

			_, err := fmt.Fprintf(tw, "%s\t%s\t%s\n", tok.Pos, tok.Kind, describe(tok))
			if err != nil {
				return ErrWriteOutput.Wrap(err)
			}
		}

		if err := scan.Err(); err != nil {
			return err
		}
	}

	if err := tw.Flush(); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// describe returns the payload of tok: its character, text, or value.
func describe(tok lang.Token) string {
	switch tok.Kind {
	case lang.KindChar:
		return fmt.Sprintf("%q", tok.Char)
	case lang.KindNumber:
		return fmt.Sprintf("%s = %g", tok.Text, tok.Number)
	case lang.KindEOF:
		return ""
	default:
		return tok.Text
	}
}
