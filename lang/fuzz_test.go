package lang

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

// FuzzScanner checks that scanning terminates and positions only move
// forward.
func FuzzScanner(f *testing.F) {
	f.Add("def foo(x) x+1")
	f.Add("extern sin(a);")
	f.Add("1.2.3 ..5 ,")
	f.Add("# comment\r\n x")
	f.Add("héllo ٣ π")
	f.Add("")

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			t.Skip("invalid UTF-8")
		}

		for _, opts := range [][]ScanOption{nil, {ScanCommaNumbers()}} {
			toks := slices.Collect(NewScanner(strings.NewReader(input), opts...).All())

			if len(toks) == 0 || toks[len(toks)-1].Kind != KindEOF {
				t.Fatalf("token stream does not end with EOF: %v", toks)
			}

			if len(toks) > utf8.RuneCountInString(input)+1 {
				t.Fatalf("%d tokens from %d characters", len(toks), utf8.RuneCountInString(input))
			}

			for i := 1; i < len(toks); i++ {
				if toks[i].Pos.Offset < toks[i-1].Pos.Offset {
					t.Fatalf("token %d at %v precedes token %d at %v",
						i, toks[i].Pos, i-1, toks[i-1].Pos)
				}
			}
		}
	})
}

// FuzzParseRoundTrip checks that every item that parses prints back to
// source text with an identical tree.
func FuzzParseRoundTrip(f *testing.F) {
	for _, src := range roundTripSources {
		f.Add(src)
	}

	f.Add("def f( ) + ; 4+5;")
	f.Add("f(1,,2) ) ( extern")
	f.Add(strings.Repeat("(", 300) + "1")
	f.Add(strings.Repeat("1+", 300) + "1")
	f.Add(strings.Repeat("9", 400) + "*2")

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			t.Skip("invalid UTF-8")
		}

		ctx := context.Background()

		first, _ := ParseString(ctx, input)

		var buf bytes.Buffer
		if err := first.Format(ctx, &buf); err != nil {
			t.Fatal(err)
		}

		second, err := ParseString(ctx, buf.String())
		if err != nil {
			t.Fatalf("printed text %q does not parse: %v", buf.String(), err)
		}

		if diff := cmp.Diff(first, second, treeOpts); diff != "" {
			t.Fatalf("round trip mismatch for %q (-first +second):\n%s", input, diff)
		}
	})
}
