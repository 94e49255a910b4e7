package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/kaleido/lang"
)

// reportError writes err followed, when its position is known, by the
// offending source line and a caret under the failing column.
func reportError(w io.Writer, err error, src *lines) {
	r := lipgloss.NewRenderer(w)
	msg := r.NewStyle().Foreground(lipgloss.Color("9"))
	mark := r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)

	_, _ = fmt.Fprintln(w, msg.Render(err.Error()))

	var perr *lang.Error
	if !errors.As(err, &perr) || !perr.Position().IsValid() {
		return
	}

	line, ok := src.Line(perr.Position().Line)
	if !ok {
		return
	}

	_, _ = fmt.Fprintf(w, "    %s\n    %s\n",
		line, mark.Render(caret(line, perr.Position().Column)))
}

// caret returns the indentation that places '^' under the 1-based column of
// line. Tabs are copied so the caret lines up however they render.
func caret(line string, col int) string {
	var sb strings.Builder

	for _, r := range line {
		if col <= 1 {
			break
		}

		if r == '\t' {
			sb.WriteRune('\t')
		} else {
			sb.WriteRune(' ')
		}

		col--
	}

	if col > 1 {
		sb.WriteString(strings.Repeat(" ", col-1))
	}

	sb.WriteRune('^')

	return sb.String()
}
