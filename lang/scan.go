package lang

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Scanner converts a character stream into tokens on demand.
//
// It holds exactly one look-ahead character between calls to [Scanner.Next].
// Input is consumed rune by rune; nothing is read until the first call.
type Scanner struct {
	r      io.RuneReader
	err    error
	next   Position // location of the character after the look-ahead
	pos    Position // location of the look-ahead
	last   rune     // look-ahead
	eof    bool
	commas bool
}

// ScanOption configures a [Scanner].
type ScanOption func(*Scanner)

// ScanSource names the source recorded in token positions.
func ScanSource(name string) ScanOption {
	return func(s *Scanner) {
		s.next.Source = name
		s.pos.Source = name
	}
}

// ScanCommaNumbers makes numeric literals continue with ',' instead of '.'.
// The literal's value is then the text before the first comma, so "1,5"
// scans as the single number 1 and "1.5" as the two numbers 1 and .5.
func ScanCommaNumbers() ScanOption {
	return func(s *Scanner) { s.commas = true }
}

// NewScanner returns a scanner reading from r.
func NewScanner(r io.Reader, opts ...ScanOption) *Scanner {
	rr, ok := r.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(r)
	}

	s := &Scanner{
		r:    rr,
		last: ' ',
		next: Position{Line: 1, Column: 1},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// Err returns the first non-EOF read error, wrapped as [ErrReadInput].
func (s *Scanner) Err() error { return s.err }

// read advances the look-ahead by one character.
func (s *Scanner) read() {
	if s.eof {
		return
	}

	s.pos = s.next

	r, size, err := s.r.ReadRune()
	if err != nil {
		s.eof = true
		s.last = 0

		if !errors.Is(err, io.EOF) {
			s.err = ErrReadInput.AtPosition(s.pos).Wrap(err)
		}

		return
	}

	s.last = r
	s.next.Offset += size

	if r == '\n' {
		s.next.Line++
		s.next.Column = 1
	} else {
		s.next.Column++
	}
}

// Next returns the next token. Once the input is exhausted every call
// returns a [KindEOF] token.
func (s *Scanner) Next() Token {
	for {
		for !s.eof && unicode.IsSpace(s.last) {
			s.read()
		}

		if s.eof {
			return Token{Kind: KindEOF, Pos: s.pos}
		}

		pos := s.pos

		switch {
		case unicode.IsLetter(s.last):
			text := s.accept(func(r rune) bool {
				return unicode.IsLetter(r) || unicode.IsDigit(r)
			})

			switch text {
			case "def":
				return Token{Kind: KindDef, Text: text, Pos: pos}
			case "extern":
				return Token{Kind: KindExtern, Text: text, Pos: pos}
			default:
				return Token{Kind: KindIdentifier, Text: text, Pos: pos}
			}

		case isDigit(s.last) || s.last == '.':
			sep := '.'
			if s.commas {
				sep = ','
			}

			var sb strings.Builder

			sb.WriteRune(s.last)
			s.read()

			text := sb.String() + s.accept(func(r rune) bool {
				return isDigit(r) || r == sep
			})

			return Token{
				Kind:   KindNumber,
				Text:   text,
				Number: parseNumber(text),
				Pos:    pos,
			}

		case s.last == '#':
			for !s.eof && s.last != '\n' && s.last != '\r' {
				s.read()
			}

		default:
			ch := s.last
			s.read()

			return Token{Kind: KindChar, Char: ch, Text: string(ch), Pos: pos}
		}
	}
}

// All returns an iterator over the remaining tokens, ending with (and
// including) the first [KindEOF] token.
func (s *Scanner) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok := s.Next()
			if !yield(tok) || tok.Kind == KindEOF {
				return
			}
		}
	}
}

// accept consumes the run of look-ahead characters satisfying ok.
func (s *Scanner) accept(ok func(rune) bool) string {
	var sb strings.Builder

	for !s.eof && ok(s.last) {
		sb.WriteRune(s.last)
		s.read()
	}

	return sb.String()
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

// parseNumber returns the value of the longest prefix of text that is a
// valid decimal literal. Text without any such prefix is zero.
func parseNumber(text string) float64 {
	end := 0
	seenDot := false

	for i, r := range text {
		if r == '.' && !seenDot {
			seenDot = true
		} else if !isDigit(r) {
			break
		}

		end = i + utf8.RuneLen(r)
	}

	f, err := strconv.ParseFloat(text[:end], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}

	return f
}
