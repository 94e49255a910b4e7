package lang

//go:generate go tool stringer --linecomment --type Kind,ErrorKind,ItemKind --output kind_string.go

import (
	"strconv"
	"strings"
)

// Kind classifies a [Token].
type Kind int

const (
	// KindChar is any single character that does not start another token.
	// The character itself is stored in [Token.Char].
	KindChar       Kind = iota // char
	KindEOF                    // eof
	KindDef                    // def
	KindExtern                 // extern
	KindIdentifier             // identifier
	KindNumber                 // number
)

// Position identifies a character in a source.
// Line and Column are 1-based; the zero value is an unknown position.
type Position struct {
	Source string
	Offset int // byte offset
	Line   int
	Column int // rune count on the line
}

// IsValid reports whether the position refers to a real location.
func (p Position) IsValid() bool { return p.Line > 0 }

// String renders the position as "source:line:col", omitting the source when
// it is unnamed.
func (p Position) String() string {
	if !p.IsValid() {
		if p.Source != "" {
			return p.Source
		}

		return "-"
	}

	var sb strings.Builder

	if p.Source != "" {
		sb.WriteString(p.Source)
		sb.WriteByte(':')
	}

	sb.WriteString(strconv.Itoa(p.Line))
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(p.Column))

	return sb.String()
}

// Token is an immutable lexical unit produced by a [Scanner].
type Token struct {
	Text   string // identifier, keyword, or raw numeric text
	Pos    Position
	Number float64 // value of a KindNumber token
	Kind   Kind
	Char   rune // character of a KindChar token
}

// Is reports whether t is the single-character token ch.
func (t Token) Is(ch rune) bool {
	return t.Kind == KindChar && t.Char == ch
}

// String describes the token for diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case KindChar:
		return strconv.QuoteRune(t.Char)
	case KindEOF:
		return "end of input"
	case KindDef, KindExtern:
		return "keyword " + strconv.Quote(t.Text)
	case KindIdentifier:
		return "identifier " + strconv.Quote(t.Text)
	case KindNumber:
		return "number " + t.Text
	default:
		return t.Kind.String()
	}
}
