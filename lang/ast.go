package lang

import (
	"math"
	"strconv"
	"strings"
)

// Node is a syntax tree node. The set of implementations is closed:
// [*NumberExpr], [*VariableExpr], [*BinaryExpr], [*CallExpr], [*Prototype]
// and [*Function].
//
// String returns source text that parses back to an identical tree.
type Node interface {
	String() string
	Position() Position
	node()
}

// Expr is a node that can appear in expression position.
type Expr interface {
	Node
	expr()
}

// NumberExpr is a numeric literal.
type NumberExpr struct {
	Pos   Position
	Value float64
}

// VariableExpr is a reference to a named value.
type VariableExpr struct {
	Name string
	Pos  Position
}

// BinaryExpr applies a single-character operator to two operands.
// Pos is the location of the operator.
type BinaryExpr struct {
	LHS Expr
	RHS Expr
	Pos Position
	Op  rune
}

// CallExpr is a function call. Pos is the location of the callee name.
type CallExpr struct {
	Callee string
	Args   []Expr
	Pos    Position
}

// Prototype is a function's name and parameter names. The name is empty for
// the anonymous function wrapping a top-level expression. Parameters keep
// their source order, duplicates included.
type Prototype struct {
	Name   string
	Params []string
	Pos    Position
}

// Function is a function definition.
type Function struct {
	Proto *Prototype
	Body  Expr
}

func (*NumberExpr) node()   {}
func (*VariableExpr) node() {}
func (*BinaryExpr) node()   {}
func (*CallExpr) node()     {}
func (*Prototype) node()    {}
func (*Function) node()     {}

func (*NumberExpr) expr()   {}
func (*VariableExpr) expr() {}
func (*BinaryExpr) expr()   {}
func (*CallExpr) expr()     {}

func (n *NumberExpr) Position() Position   { return n.Pos }
func (n *VariableExpr) Position() Position { return n.Pos }
func (n *BinaryExpr) Position() Position   { return n.Pos }
func (n *CallExpr) Position() Position     { return n.Pos }
func (n *Prototype) Position() Position    { return n.Pos }

// Position returns the location of the function's prototype.
func (n *Function) Position() Position {
	if n.Proto == nil {
		return Position{}
	}

	return n.Proto.Pos
}

// Anonymous reports whether n wraps a top-level expression.
func (n *Function) Anonymous() bool {
	return n.Proto == nil || n.Proto.Name == ""
}

func (n *NumberExpr) String() string { return formatNumber(n.Value) }

func (n *VariableExpr) String() string { return n.Name }

// String returns the expression with the parentheses [DefaultPrecedence]
// requires. See [Sprint].
func (n *BinaryExpr) String() string { return Sprint(n, nil) }

func (n *CallExpr) String() string { return Sprint(n, nil) }

func (n *Prototype) String() string {
	return n.Name + "(" + strings.Join(n.Params, ", ") + ")"
}

// String returns "def name(params) body", or only the body for an anonymous
// function.
func (n *Function) String() string { return Sprint(n, nil) }

// Sprint returns source text for the tree rooted at n that parses back to
// an identical tree under prec, or [DefaultPrecedence] if prec is nil.
//
// An operand is parenthesized only where the grammar requires it: a left
// operand binding more loosely than its operator, or a right operand not
// binding more tightly. Operators missing from prec are always
// parenthesized, along with their operands.
func Sprint(n Node, prec *Precedence) string {
	if prec == nil {
		prec = DefaultPrecedence()
	}

	var sb strings.Builder

	printer{prec: prec, sb: &sb}.node(n)

	return sb.String()
}

type printer struct {
	prec *Precedence
	sb   *strings.Builder
}

func (p printer) node(n Node) {
	switch n := n.(type) {
	case nil:
		p.sb.WriteString("<nil>")

	case *BinaryExpr:
		op := p.prec.Lookup(n.Op)
		if op <= 0 {
			p.group(n)

			return
		}

		p.operand(n.LHS, func(prec int) bool { return prec >= op })
		p.sb.WriteByte(' ')
		p.sb.WriteRune(n.Op)
		p.sb.WriteByte(' ')
		p.operand(n.RHS, func(prec int) bool { return prec > op })

	case *CallExpr:
		p.sb.WriteString(n.Callee)
		p.sb.WriteByte('(')

		for i, arg := range n.Args {
			if i > 0 {
				p.sb.WriteString(", ")
			}

			p.node(arg)
		}

		p.sb.WriteByte(')')

	case *Function:
		if !n.Anonymous() {
			p.sb.WriteString("def ")
			p.sb.WriteString(n.Proto.String())
			p.sb.WriteByte(' ')
		}

		p.node(n.Body)

	default:
		p.sb.WriteString(n.String())
	}
}

// operand writes e, parenthesized unless it is a binary expression whose
// operator precedence satisfies bare.
func (p printer) operand(e Expr, bare func(prec int) bool) {
	b, ok := e.(*BinaryExpr)
	if !ok {
		p.node(e)

		return
	}

	if prec := p.prec.Lookup(b.Op); prec > 0 && bare(prec) {
		p.node(b)

		return
	}

	p.group(b)
}

// group writes b in parentheses, with each binary operand parenthesized.
func (p printer) group(b *BinaryExpr) {
	p.sb.WriteByte('(')

	if p.prec.Lookup(b.Op) > 0 {
		p.node(b)
	} else {
		p.operand(b.LHS, func(int) bool { return false })
		p.sb.WriteByte(' ')
		p.sb.WriteRune(b.Op)
		p.sb.WriteByte(' ')
		p.operand(b.RHS, func(int) bool { return false })
	}

	p.sb.WriteByte(')')
}

// formatNumber returns the shortest decimal text that scans back to v.
// Values below one drop the leading zero so the text stays a single token
// when numbers continue with ','. Positive infinity, the value of any
// literal beyond the float64 range, is written as the smallest power of ten
// that overflows.
func formatNumber(v float64) string {
	if math.IsInf(v, 1) {
		return "1" + strings.Repeat("0", 309)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)

	if rest, ok := strings.CutPrefix(s, "0."); ok {
		return "." + rest
	}

	return s
}

// Walk traverses the tree rooted at n depth-first in pre-order. If visit
// returns false the children of that node are skipped.
func Walk(n Node, visit func(Node) bool) {
	if n == nil || !visit(n) {
		return
	}

	switch n := n.(type) {
	case *BinaryExpr:
		Walk(n.LHS, visit)
		Walk(n.RHS, visit)

	case *CallExpr:
		for _, arg := range n.Args {
			Walk(arg, visit)
		}

	case *Function:
		if n.Proto != nil {
			Walk(n.Proto, visit)
		}

		Walk(n.Body, visit)
	}
}
