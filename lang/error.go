package lang

import (
	"errors"
	"log/slog"
	"strings"
)

// ErrorKind classifies a parse failure.
type ErrorKind int

const (
	ErrorUnknown ErrorKind = iota // unknown
	// ErrorUnexpectedToken: no construct can start with the current token.
	ErrorUnexpectedToken // unexpected token
	// ErrorUnbalancedGroup: a parenthesized expression is missing its ')'.
	ErrorUnbalancedGroup // unbalanced group
	// ErrorArgumentList: a call's arguments are not separated by ',' or
	// closed by ')'.
	ErrorArgumentList // argument list
	// ErrorPrototype: a prototype is missing its name, '(' or ')'.
	ErrorPrototype // prototype
	// ErrorDepth: expressions are nested beyond the parser's limit.
	ErrorDepth // depth
	// ErrorInput: the source could not be read.
	ErrorInput // input
	// ErrorOperator: an operator definition is invalid.
	ErrorOperator // operator
)

// Predefined errors (sentinel values).
var (
	ErrUnknownToken = NewError(ErrorUnexpectedToken,
		"unknown token when expecting an expression")
	ErrUnexpectedToken = NewError(ErrorUnexpectedToken,
		"unexpected token")
	ErrExpectedCloseParen = NewError(ErrorUnbalancedGroup,
		"expected ')'")
	ErrExpectedArgument = NewError(ErrorArgumentList,
		"expected ')' or ',' in argument list")
	ErrExpectedFunctionName = NewError(ErrorPrototype,
		"expected function name in prototype")
	ErrExpectedPrototypeOpen = NewError(ErrorPrototype,
		"expected '(' in prototype")
	ErrExpectedPrototypeClose = NewError(ErrorPrototype,
		"expected ')' in prototype")
	ErrMaxDepthExceeded = NewError(ErrorDepth,
		"maximum nesting depth exceeded")
	ErrReadInput = NewError(ErrorInput,
		"failed to read input")
	ErrInvalidOperator = NewError(ErrorOperator,
		"invalid binary operator")
)

// Error is a structured failure. It implements both error and
// slog.LogValuer, and every builder method returns a modified copy.
type Error struct {
	msg   string
	pos   Position
	tok   *Token
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
	kind  ErrorKind
}

// NewError creates a new Error of the given kind.
func NewError(kind ErrorKind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// WrapError converts err into an Error, returning err itself if it already
// is one.
func WrapError(err error) *Error {
	var ee *Error
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Kind returns the failure classification.
func (e *Error) Kind() ErrorKind { return e.kind }

// Message returns the error message without position or cause.
func (e *Error) Message() string { return e.msg }

// Position returns the location of the failure. It is the zero Position if
// no location was recorded.
func (e *Error) Position() Position { return e.pos }

// Token returns the offending token, if one was recorded.
func (e *Error) Token() (Token, bool) {
	if e.tok == nil {
		return Token{}, false
	}

	return *e.tok, true
}

// Error implements the error interface.
//
//	<pos>: <msg>: <cause>
//
// Each part is omitted when unset.
func (e *Error) Error() string {
	part := make([]string, 0, 3)

	if e.pos.IsValid() {
		part = append(part, e.pos.String())
	}

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error with the same kind and message,
// so copies made by the builder methods still match their sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}

	return e.kind == t.kind && e.msg == t.msg && (e.msg != "" || e.kind != ErrorUnknown)
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+5)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.kind != ErrorUnknown {
		attrs = append(attrs, slog.String("kind", e.kind.String()))
	}

	if e.pos.IsValid() {
		attrs = append(attrs, slog.String("pos", e.pos.String()))
	}

	if e.tok != nil {
		attrs = append(attrs, slog.String("token", e.tok.String()))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e wrapping err.
func (e *Error) Wrap(err error) *Error {
	c := *e
	c.err = err

	return &c
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := *e
	c.attrs = make([]slog.Attr, 0, len(e.attrs)+len(attrs))
	c.attrs = append(c.attrs, e.attrs...)
	c.attrs = append(c.attrs, attrs...)

	return &c
}

// At returns a copy of e recording tok as the offending token.
func (e *Error) At(tok Token) *Error {
	c := *e
	c.tok = &tok
	c.pos = tok.Pos

	return &c
}

// AtPosition returns a copy of e located at pos.
func (e *Error) AtPosition(pos Position) *Error {
	c := *e
	c.pos = pos

	return &c
}

// Errors collects the failures of a multi-item parse.
type Errors []error

// Error joins the messages one per line.
func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}

	return strings.Join(msgs, "\n")
}

// Unwrap returns the collected errors for errors.Is/As.
func (e Errors) Unwrap() []error { return e }
