package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes the AST as source text, one item per line.
// The output parses back to an identical AST under the options the AST was
// parsed with.
func (ast *AST) Format(_ context.Context, w io.Writer) error {
	for _, it := range ast.Items {
		if _, err := fmt.Fprintln(w, it.Sprint(ast.Precedence)); err != nil {
			return err
		}
	}

	return nil
}

// FormatJSON writes the AST as JSON to the writer.
func (ast *AST) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(ast, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(ast)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the AST as YAML to the writer.
func (ast *AST) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, ast.ToNative(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

func writer(w io.Writer) func(eol string, item ...string) {
	return func(eol string, item ...string) {
		_, err := io.WriteString(w, strings.Join(item, ": ")+eol)
		if err != nil {
			panic(err)
		}
	}
}

// Print writes an indented listing of the syntax tree.
func (ast *AST) Print(ctx context.Context, w io.Writer) {
	for _, it := range ast.Items {
		it.Print(ctx, w, 0)
	}
}

// Print writes an indented listing of the item's syntax tree.
func (it Item) Print(ctx context.Context, w io.Writer, indent int) {
	writer(w)("\n", strings.Repeat("  ", indent)+capitalize(it.Kind.String()), it.Pos.String())
	PrintNode(ctx, w, it.Node(), indent+1)
}

// PrintNode writes an indented listing of the tree rooted at n.
func PrintNode(ctx context.Context, w io.Writer, n Node, indent int) {
	prefix := strings.Repeat("  ", indent)
	put := writer(w)

	switch n := n.(type) {
	case *NumberExpr:
		put("\n", prefix+"Number", formatNumber(n.Value))

	case *VariableExpr:
		put("\n", prefix+"Variable", n.Name)

	case *BinaryExpr:
		put("\n", prefix+"Binary", string(n.Op))
		PrintNode(ctx, w, n.LHS, indent+1)
		PrintNode(ctx, w, n.RHS, indent+1)

	case *CallExpr:
		put("\n", prefix+"Call", n.Callee)

		if len(n.Args) == 0 {
			put("\n", prefix+"  (no arguments)")
		}

		for _, arg := range n.Args {
			PrintNode(ctx, w, arg, indent+1)
		}

	case *Prototype:
		name := n.Name
		if name == "" {
			name = "(anonymous)"
		}

		put("\n", prefix+"Prototype", name)

		if len(n.Params) > 0 {
			put("\n", prefix+"  Params", strings.Join(n.Params, ", "))
		}

	case *Function:
		put(":\n", prefix+"Function")
		PrintNode(ctx, w, n.Proto, indent+1)
		put(":\n", prefix+"  Body")
		PrintNode(ctx, w, n.Body, indent+2)

	default:
		put("\n", prefix+"(nil)")
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
