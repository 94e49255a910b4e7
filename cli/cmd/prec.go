package cmd

import (
	"context"
	"fmt"
	"io"
)

// Prec prints the effective operator precedence table, one operator per
// line in order of increasing precedence.
type Prec struct{}

// Run executes the prec command.
func (p *Prec) Run(ctx context.Context) error {
	stdout, _ := streams(ctx)

	return p.run(ctx, stdout)
}

func (*Prec) run(ctx context.Context, w io.Writer) error {
	for op, prec := range settingsFrom(ctx).Precedence.Operators() {
		if _, err := fmt.Fprintf(w, "%c\t%d\n", op, prec); err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	return nil
}
