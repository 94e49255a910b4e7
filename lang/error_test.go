package lang

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestError_Is(t *testing.T) {
	tok := Token{Kind: KindChar, Char: ')', Text: ")", Pos: Position{Line: 2, Column: 4}}
	err := ErrUnknownToken.At(tok).With(slog.String("k", "v"))

	if !errors.Is(err, ErrUnknownToken) {
		t.Error("derived error does not match its sentinel")
	}

	if errors.Is(err, ErrUnexpectedToken) {
		t.Error("derived error matches a sentinel of the same kind with a different message")
	}

	if errors.Is(ErrExpectedPrototypeOpen, ErrExpectedPrototypeClose) {
		t.Error("distinct prototype sentinels match")
	}

	if errors.Is(&Error{}, &Error{}) {
		t.Error("empty errors match")
	}

	wrapped := fmt.Errorf("context: %w", err)
	if !errors.Is(wrapped, ErrUnknownToken) {
		t.Error("fmt-wrapped error does not match its sentinel")
	}
}

func TestError_Builders(t *testing.T) {
	tok := Token{Kind: KindIdentifier, Text: "x", Pos: Position{Source: "s", Line: 1, Column: 9}}
	cause := errors.New("cause")

	err := ErrExpectedFunctionName.At(tok).Wrap(cause)

	if got, want := err.Error(), "s:1:9: expected function name in prototype: cause"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if !errors.Is(err, cause) {
		t.Error("cause not unwrapped")
	}

	if got, ok := err.Token(); !ok || got.Text != "x" {
		t.Errorf("Token() = %v, %v", got, ok)
	}

	if ErrExpectedFunctionName.Position().IsValid() {
		t.Error("builder mutated the sentinel position")
	}

	if _, ok := ErrExpectedFunctionName.Token(); ok {
		t.Error("builder mutated the sentinel token")
	}

	if ErrExpectedFunctionName.Unwrap() != nil {
		t.Error("builder mutated the sentinel cause")
	}

	moved := err.AtPosition(Position{Line: 3, Column: 1})
	if got := moved.Position().String(); got != "3:1" {
		t.Errorf("AtPosition = %s, want 3:1", got)
	}

	if got := err.Position().String(); got != "s:1:9" {
		t.Errorf("AtPosition mutated receiver: %s", got)
	}

	if got := NewError(ErrorUnknown, "").Error(); got != "" {
		t.Errorf("empty Error() = %q", got)
	}
}

func TestError_WithDoesNotAlias(t *testing.T) {
	base := ErrUnexpectedToken.With(slog.Int("a", 1))
	x := base.With(slog.Int("b", 2))
	y := base.With(slog.Int("c", 3))

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}

			return a
		},
	}))

	logger.Info("x", slog.Any("err", x))
	logger.Info("y", slog.Any("err", y))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}

	if !strings.Contains(lines[0], "err.b=2") || strings.Contains(lines[0], "err.c=3") {
		t.Errorf("first error attrs = %s", lines[0])
	}

	if !strings.Contains(lines[1], "err.c=3") || strings.Contains(lines[1], "err.b=2") {
		t.Errorf("second error attrs = %s", lines[1])
	}
}

func TestError_LogValue(t *testing.T) {
	tok := Token{Kind: KindChar, Char: ';', Text: ";", Pos: Position{Line: 1, Column: 3}}
	err := ErrExpectedCloseParen.At(tok).With(slog.String("open", "1:1"))

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Error("parse failed", slog.Any("err", err))

	out := buf.String()

	for _, want := range []string{
		`err.error="expected ')'"`,
		`err.kind="unbalanced group"`,
		`err.pos=1:3`,
		`err.token=';'`,
		`err.open=1:1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s:\n%s", want, out)
		}
	}
}

func TestWrapError(t *testing.T) {
	if got := WrapError(ErrReadInput); got != ErrReadInput {
		t.Errorf("WrapError(*Error) = %p, want the same error", got)
	}

	plain := errors.New("plain")
	got := WrapError(plain)

	if !errors.Is(got, plain) {
		t.Error("WrapError lost the cause")
	}

	if got.Kind() != ErrorUnknown {
		t.Errorf("Kind() = %v, want unknown", got.Kind())
	}
}

func TestErrors(t *testing.T) {
	errs := Errors{
		ErrUnknownToken.AtPosition(Position{Line: 1, Column: 1}),
		ErrExpectedCloseParen.AtPosition(Position{Line: 2, Column: 5}),
	}

	want := "1:1: unknown token when expecting an expression\n2:5: expected ')'"
	if got := errs.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	var err error = errs
	if !errors.Is(err, ErrExpectedCloseParen) {
		t.Error("Errors does not unwrap to its members")
	}

	var perr *Error
	if !errors.As(err, &perr) || perr.Kind() != ErrorUnexpectedToken {
		t.Errorf("errors.As = %v", perr)
	}
}

func TestErrorKind_String(t *testing.T) {
	kinds := []ErrorKind{
		ErrorUnknown, ErrorUnexpectedToken, ErrorUnbalancedGroup, ErrorArgumentList,
		ErrorPrototype, ErrorDepth, ErrorInput, ErrorOperator,
	}

	seen := make(map[string]bool)

	for _, k := range kinds {
		s := k.String()
		if seen[s] || strings.HasPrefix(s, "ErrorKind(") {
			t.Errorf("kind %d has name %q", int(k), s)
		}

		seen[s] = true
	}

	if got := ErrorKind(99).String(); got != "ErrorKind(99)" {
		t.Errorf("String() = %q", got)
	}
}
