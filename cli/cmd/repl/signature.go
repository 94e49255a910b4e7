package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/kaleido/lang"
)

var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// functionCall represents a call whose argument list contains the cursor.
type functionCall struct {
	name     string
	argIndex int // 0-based
	inCall   bool
}

// detectFunctionCall determines whether the cursor is inside the argument
// list of a call, and if so which argument it is in.
func detectFunctionCall(input string, cursor int) functionCall {
	cursor = min(max(cursor, 0), len(input))

	// Find the innermost unclosed '(' before the cursor.
	open, depth := -1, 0

	for i := cursor; i > 0 && open < 0; {
		r, size := utf8.DecodeLastRuneInString(input[:i])
		i -= size

		switch r {
		case ')':
			depth++
		case '(':
			if depth == 0 {
				open = i
			}

			depth--
		}
	}

	if open < 0 {
		return functionCall{}
	}

	// The callee may be separated from '(' by whitespace.
	name, _, _ := wordBounds(input, len(strings.TrimRight(input[:open], " \t")))
	if name == "" {
		return functionCall{}
	}

	if r, _ := utf8.DecodeRuneInString(name); !isIdentStart(r) {
		return functionCall{}
	}

	// Count the commas at depth 0 between '(' and the cursor.
	call := functionCall{name: name, inCall: true}
	depth = 0

	for _, r := range input[open+1 : cursor] {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				call.argIndex++
			}
		}
	}

	return call
}

func isIdentStart(r rune) bool {
	return !isWordBoundary(r) && (r < '0' || r > '9')
}

// getSignature returns the prototype of the most recent function named name
// in ast, and its parameter names.
func getSignature(ast *lang.AST, name string) (signature string, params []string) {
	proto, ok := ast.Lookup(name)
	if !ok {
		return "", nil
	}

	return proto.String(), proto.Params
}

// renderSignatureHint renders the signature with the current parameter
// highlighted.
func renderSignatureHint(
	signature string,
	params []string,
	currentArgIdx int,
) string {
	name, _, ok := strings.Cut(signature, "(")
	if !ok {
		return signatureStyle.Render(signature)
	}

	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(name))
	b.WriteString(signatureStyle.Render("("))

	for i, param := range params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		if i == currentArgIdx {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}
