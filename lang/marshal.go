package lang

import (
	"encoding/json"
	"math"
)

// MarshalJSON implements json.Marshaler for AST.
func (ast *AST) MarshalJSON() ([]byte, error) {
	return json.Marshal(ast.ToNative())
}

// ToNative converts the AST to a list of native Go maps, one per item.
func (ast *AST) ToNative() []any {
	result := make([]any, 0, len(ast.Items))

	for _, it := range ast.Items {
		result = append(result, it.ToNative())
	}

	return result
}

// ToNative converts the item to a native Go map.
func (it Item) ToNative() map[string]any {
	result := map[string]any{
		"item": it.Kind.String(),
		"pos":  it.Pos.String(),
	}

	switch it.Kind {
	case ItemExtern:
		result["extern"] = ToNative(it.Extern)
	default:
		result["function"] = ToNative(it.Function)
	}

	return result
}

// ToNative converts a syntax tree to nested maps and slices that encode
// directly as JSON or YAML. Every map has a "node" key naming the variant.
func ToNative(n Node) any {
	switch n := n.(type) {
	case *NumberExpr:
		if n == nil {
			return nil
		}

		// JSON has no infinity; an overflowing literal keeps its text.
		if math.IsInf(n.Value, 0) {
			return map[string]any{"node": "number", "value": formatNumber(n.Value)}
		}

		return map[string]any{"node": "number", "value": n.Value}

	case *VariableExpr:
		if n == nil {
			return nil
		}

		return map[string]any{"node": "variable", "name": n.Name}

	case *BinaryExpr:
		if n == nil {
			return nil
		}

		return map[string]any{
			"node": "binary",
			"op":   string(n.Op),
			"lhs":  ToNative(n.LHS),
			"rhs":  ToNative(n.RHS),
		}

	case *CallExpr:
		if n == nil {
			return nil
		}

		args := make([]any, len(n.Args))
		for i, arg := range n.Args {
			args[i] = ToNative(arg)
		}

		return map[string]any{"node": "call", "callee": n.Callee, "args": args}

	case *Prototype:
		if n == nil {
			return nil
		}

		params := make([]any, len(n.Params))
		for i, param := range n.Params {
			params[i] = param
		}

		return map[string]any{"node": "prototype", "name": n.Name, "params": params}

	case *Function:
		if n == nil {
			return nil
		}

		return map[string]any{
			"node":  "function",
			"proto": ToNative(n.Proto),
			"body":  ToNative(n.Body),
		}

	default:
		return nil
	}
}
