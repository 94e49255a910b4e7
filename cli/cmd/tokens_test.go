package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokens(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "t.ks", "def x(1.5)")

	tests := []struct {
		name   string
		commas bool
		want   [][]string
	}{
		{
			name: "default",
			want: [][]string{
				{"t.ks:1:1", "def", "def"},
				{"t.ks:1:5", "identifier", "x"},
				{"t.ks:1:6", "char", "'('"},
				{"t.ks:1:7", "number", "1.5", "=", "1.5"},
				{"t.ks:1:10", "char", "')'"},
				{"t.ks:1:11", "eof"},
			},
		},
		{
			name:   "comma numbers",
			commas: true,
			want: [][]string{
				{"t.ks:1:1", "def", "def"},
				{"t.ks:1:5", "identifier", "x"},
				{"t.ks:1:6", "char", "'('"},
				{"t.ks:1:7", "number", "1", "=", "1"},
				{"t.ks:1:8", "number", ".5", "=", "0.5"},
				{"t.ks:1:10", "char", "')'"},
				{"t.ks:1:11", "eof"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := DefaultSettings()
			set.Search = []string{dir}
			set.CommaNumbers = tt.commas

			var out bytes.Buffer

			cmd := Tokens{Sources: []string{"t.ks"}}
			if err := cmd.run(WithSettings(context.Background(), set), &out); err != nil {
				t.Fatal(err)
			}

			var got [][]string
			for line := range strings.Lines(out.String()) {
				got = append(got, strings.Fields(line))
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPrec(t *testing.T) {
	var out bytes.Buffer

	if err := (&Prec{}).run(context.Background(), &out); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff("<\t10\n+\t20\n-\t20\n*\t40\n", out.String()); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrShortWrite }

func TestTokens_WriteError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "t.ks", "def x(1)")

	set := DefaultSettings()
	set.Search = []string{dir}

	cmd := Tokens{Sources: []string{"t.ks"}}

	err := cmd.run(WithSettings(context.Background(), set), failingWriter{})
	if !errors.Is(err, ErrWriteOutput) || !errors.Is(err, io.ErrShortWrite) {
		t.Errorf("error = %v, want ErrWriteOutput wrapping the write error", err)
	}

	err = (&Prec{}).run(context.Background(), failingWriter{})
	if !errors.Is(err, ErrWriteOutput) {
		t.Errorf("prec error = %v, want ErrWriteOutput", err)
	}
}
