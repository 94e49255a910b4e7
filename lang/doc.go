// Package lang implements the front end of the Kaleidoscope language: a
// scanner, a precedence-climbing recursive descent parser, the syntax tree it
// produces, and printers for that tree.
//
// # Grammar
//
// Informal EBNF:
//
//	Program    → Item* EOF
//	Item       → Definition | Extern | Expression | ';'
//	Definition → 'def' Prototype Expression
//	Extern     → 'extern' Prototype
//	Prototype  → Identifier '(' ( Identifier | ',' )* ')'
//	Expression → Primary ( BinOp Primary )*
//	Primary    → Identifier
//	           | Identifier '(' ( Expression ( ',' Expression )* )? ')'
//	           | Number
//	           | '(' Expression ')'
//
// Binary operators are single characters whose binding strength comes from a
// [Precedence] table. The default table is `<` 10, `+` and `-` 20, `*` 40.
// Operators of equal precedence associate to the left.
//
// # Example
//
//	# comments run to the end of the line
//	extern sin(x);
//	def scale(a, b) a + b * 2;
//	scale(sin(1), .5);
//
// # Sessions
//
// A [Parser] owns all mutable parse state: the [Scanner], the current token,
// a private copy of the precedence table, and the nesting depth. Independent
// parsers never share state.
//
//	p := lang.NewParser(strings.NewReader(src), lang.WithSource("fib.ks"))
//	for item, err := range p.Items(ctx) {
//		if err != nil {
//			// The parser has already skipped one token; keep going.
//			continue
//		}
//		fmt.Println(item)
//	}
//
// # Errors
//
// Every failure is an [*Error] carrying an [ErrorKind], the message, and the
// offending [Token] with its [Position]. Compare against the sentinel values
// with [errors.Is].
package lang
