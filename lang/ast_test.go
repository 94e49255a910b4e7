package lang

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWalk(t *testing.T) {
	ast, err := ParseString(context.Background(), "def f(x) g(x, 1) + 2*x")
	if err != nil {
		t.Fatal(err)
	}

	var visited []string

	Walk(ast.Items[0].Node(), func(n Node) bool {
		switch n := n.(type) {
		case *Function:
			visited = append(visited, "function")
		case *BinaryExpr:
			visited = append(visited, "binary "+string(n.Op))
		default:
			visited = append(visited, n.String())
		}

		return true
	})

	want := []string{
		"function", "f(x)", "binary +", "g(x, 1)", "x", "1", "binary *", "2", "x",
	}
	if diff := cmp.Diff(want, visited); diff != "" {
		t.Errorf("pre-order mismatch (-want +got):\n%s", diff)
	}
}

func TestWalk_SkipChildren(t *testing.T) {
	e := bin('+', call("f", ref("a"), ref("b")), ref("c"))

	var names []string

	Walk(e, func(n Node) bool {
		if v, ok := n.(*VariableExpr); ok {
			names = append(names, v.Name)
		}

		_, isCall := n.(*CallExpr)

		return !isCall
	})

	if diff := cmp.Diff([]string{"c"}, names); diff != "" {
		t.Errorf("visited mismatch (-want +got):\n%s", diff)
	}

	Walk(nil, func(Node) bool {
		t.Error("visited a nil tree")

		return true
	})
}

func TestPosition_String(t *testing.T) {
	tests := []struct {
		pos  Position
		want string
	}{
		{Position{}, "-"},
		{Position{Line: 4, Column: 2}, "4:2"},
		{Position{Source: "a.ks", Line: 1, Column: 1}, "a.ks:1:1"},
		{Position{Source: "a.ks"}, "a.ks"},
	}

	for _, tt := range tests {
		if got := tt.pos.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.pos, got, tt.want)
		}
	}
}

func TestKind_String(t *testing.T) {
	for kind, want := range map[Kind]string{
		KindChar:       "char",
		KindEOF:        "eof",
		KindDef:        "def",
		KindExtern:     "extern",
		KindIdentifier: "identifier",
		KindNumber:     "number",
	} {
		if got := kind.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
