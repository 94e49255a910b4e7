package repl

import (
	"context"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/kaleido/log"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"after_plus", "a + fo", 6, "fo", 4, 6},
		{"after_comma", "f(x, ba", 7, "ba", 5, 7},
		{"after_paren", "double(fo", 9, "fo", 7, 9},
		{"empty_at_boundary", "a + ", 4, "", 4, 4},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"between_operators", "a+b", 2, "b", 2, 3},
		{"digits_in_identifier", "x1+y2", 2, "x1", 0, 2},
		{"unicode_letters", "héllo", 6, "héllo", 0, 6},
		{"cursor_past_end", "ab", 10, "ab", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func testModel(t *testing.T, defs ...string) model {
	t.Helper()

	s := NewSession(log.Logger{})
	for _, def := range defs {
		for _, res := range s.Eval(context.Background(), def) {
			if res.Err != nil {
				t.Fatalf("%q: %v", def, res.Err)
			}
		}
	}

	return newModel(context.Background(), s, NewHistory(""), log.Logger{})
}

func matchStrings(matches fuzzy.Matches) []string {
	var out []string
	for _, m := range matches {
		out = append(out, m.Str)
	}

	slices.Sort(out)

	return out
}

func TestComputeMatches(t *testing.T) {
	m := testModel(t, "def foo(x) x", "extern fob(y)")

	tests := []struct {
		name  string
		mode  inputMode
		input string
		want  []string
	}{
		{"session names", modeInput, "fo", []string{"fob", "foo"}},
		{"keywords", modeInput, "ext", []string{"extern"}},
		{"numbers", modeInput, "12", nil},
		{"empty word", modeInput, "foo(", nil},
		{"commands", modeCtrl, "pr", []string{"prec"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.mode = tt.mode
			m.input.SetValue(tt.input)
			m.input.SetCursor(len(tt.input))

			matches, _, end := m.computeMatches()

			if diff := cmp.Diff(tt.want, matchStrings(matches)); diff != "" {
				t.Errorf("matches mismatch (-want +got):\n%s", diff)
			}

			if end != len(tt.input) {
				t.Errorf("word end = %d, want %d", end, len(tt.input))
			}
		})
	}
}

func TestModel_CycleCompletes(t *testing.T) {
	m := testModel(t, "def alpha(x) x", "def alps(x) x")

	m.input.SetValue("1 + al")
	m.input.SetCursor(6)
	refreshMatches(&m, false)

	if len(m.matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(m.matches))
	}

	first := m.cycle(1)
	if !first.tabActive || first.input.Value() != "1 + "+first.matches[0].Str {
		t.Errorf("after Tab: input %q, active %v", first.input.Value(), first.tabActive)
	}

	back := first.cycle(-1)
	if back.input.Value() != "1 + "+back.matches[1].Str {
		t.Errorf("after Shift-Tab: input %q", back.input.Value())
	}
}

func TestRenderCandidateBar(t *testing.T) {
	matches := fuzzy.Matches{{Str: "alpha"}, {Str: "beta"}, {Str: "gamma"}}

	tests := []struct {
		name  string
		width int
		want  string
	}{
		{"fits", 80, "alpha  beta  gamma"},
		{"ellipsized", 12, "alpha  ..."},
		{"no width", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderCandidateBar(matches, -1, false, tt.width)
			if got != tt.want {
				t.Errorf("renderCandidateBar(width=%d) = %q, want %q", tt.width, got, tt.want)
			}
		})
	}
}
