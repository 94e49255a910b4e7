package lang

import (
	"cmp"
	"iter"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Precedence maps single-character binary operators to their binding
// strength. Higher values bind tighter. The zero value is an empty table.
//
// A table is configured before parsing starts; each [Parser] keeps its own
// clone, so changes made afterward do not affect running parsers.
type Precedence struct {
	ops [utf8.RuneSelf]int
}

// NewPrecedence returns an empty table.
func NewPrecedence() *Precedence {
	return &Precedence{}
}

// DefaultPrecedence returns the standard operator table:
// '<' 10, '+' 20, '-' 20, '*' 40.
func DefaultPrecedence() *Precedence {
	p := NewPrecedence()
	p.ops['<'] = 10
	p.ops['+'] = 20
	p.ops['-'] = 20
	p.ops['*'] = 40

	return p
}

// Set installs op with the given precedence, replacing any existing entry.
// A precedence of zero or less removes op from the table.
//
// Only printable ASCII characters that the scanner delivers as single
// character tokens may be operators, excluding the characters the grammar
// reserves: '(', ')', ',' and ';'.
func (p *Precedence) Set(op rune, prec int) error {
	if err := validOperator(op); err != nil {
		return err
	}

	p.ops[op] = max(prec, 0)

	return nil
}

// Of returns the precedence of tok, or -1 if tok is not a binary operator in
// the table.
func (p *Precedence) Of(tok Token) int {
	if p == nil || tok.Kind != KindChar {
		return -1
	}

	return p.lookup(tok.Char)
}

// Lookup returns the precedence of op, or -1 if op is not in the table.
func (p *Precedence) Lookup(op rune) int {
	if p == nil {
		return -1
	}

	return p.lookup(op)
}

func (p *Precedence) lookup(op rune) int {
	if op < 0 || op >= utf8.RuneSelf {
		return -1
	}

	if prec := p.ops[op]; prec > 0 {
		return prec
	}

	return -1
}

// Clone returns an independent copy of the table.
// Cloning a nil table yields an empty one.
func (p *Precedence) Clone() *Precedence {
	if p == nil {
		return NewPrecedence()
	}

	c := *p

	return &c
}

// Len returns the number of operators in the table.
func (p *Precedence) Len() int {
	n := 0

	for range p.Operators() {
		n++
	}

	return n
}

// Operators returns an iterator over the table ordered by precedence, then by
// character.
func (p *Precedence) Operators() iter.Seq2[rune, int] {
	return func(yield func(rune, int) bool) {
		if p == nil {
			return
		}

		type entry struct {
			op   rune
			prec int
		}

		var entries []entry

		for op, prec := range p.ops {
			if prec > 0 {
				entries = append(entries, entry{rune(op), prec})
			}
		}

		slices.SortFunc(entries, func(a, b entry) int {
			return cmp.Or(cmp.Compare(a.prec, b.prec), cmp.Compare(a.op, b.op))
		})

		for _, e := range entries {
			if !yield(e.op, e.prec) {
				return
			}
		}
	}
}

// String renders the table as space-separated op=prec pairs.
func (p *Precedence) String() string {
	var part []string

	for op, prec := range p.Operators() {
		part = append(part, string(op)+"="+strconv.Itoa(prec))
	}

	return strings.Join(part, " ")
}

// ParseBinaryOperator parses an operator definition of the form "op=prec",
// for example "^=50".
func ParseBinaryOperator(s string) (rune, int, error) {
	s = strings.TrimSpace(s)

	op, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return 0, 0, ErrInvalidOperator.With(slog.String("definition", s))
	}

	rest, ok := strings.CutPrefix(strings.TrimSpace(s[size:]), "=")
	if !ok {
		return 0, 0, ErrInvalidOperator.With(
			slog.String("definition", s),
			slog.String("expected", "op=prec"))
	}

	prec, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil {
		return 0, 0, ErrInvalidOperator.Wrap(err).With(slog.String("definition", s))
	}

	if err := validOperator(op); err != nil {
		return 0, 0, err
	}

	return op, prec, nil
}

func validOperator(op rune) error {
	switch {
	case op <= ' ' || op >= utf8.RuneSelf-1:
		// whitespace, control characters, DEL and non-ASCII
	case 'a' <= op && op <= 'z', 'A' <= op && op <= 'Z', '0' <= op && op <= '9':
		// identifier and number characters
	case strings.ContainsRune(".#(),;", op):
		// number start, comment, and grammar punctuation
	default:
		return nil
	}

	return ErrInvalidOperator.With(slog.String("op", strconv.QuoteRune(op)))
}
