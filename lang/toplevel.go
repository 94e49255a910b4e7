package lang

import (
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"
	"strings"

	"github.com/klauspost/readahead"
)

// ItemKind classifies a top-level construct.
type ItemKind int

const (
	ItemDefinition ItemKind = iota + 1 // definition
	ItemExtern                         // extern
	ItemExpression                     // expression
)

// Item is one top-level construct. Function is set for definitions and
// expressions, Extern for extern declarations.
type Item struct {
	Function *Function
	Extern   *Prototype
	Pos      Position
	Kind     ItemKind
}

// Node returns the item's syntax tree.
func (it Item) Node() Node {
	if it.Kind == ItemExtern {
		return it.Extern
	}

	return it.Function
}

// Prototype returns the item's prototype.
func (it Item) Prototype() *Prototype {
	if it.Kind == ItemExtern {
		return it.Extern
	}

	if it.Function == nil {
		return nil
	}

	return it.Function.Proto
}

// String renders the item as source text terminated by ';'.
func (it Item) String() string { return it.Sprint(nil) }

// Sprint returns the item as source text terminated by ';', printed for
// the operator table prec. See [Sprint].
func (it Item) Sprint(prec *Precedence) string {
	switch it.Kind {
	case ItemExtern:
		return "extern " + Sprint(it.Extern, prec) + ";"
	case ItemDefinition, ItemExpression:
		return Sprint(it.Function, prec) + ";"
	default:
		return ""
	}
}

// Next parses the next top-level construct.
//
// Stray ';' tokens are skipped. At the end of input Next returns [io.EOF].
// When a construct fails to parse, exactly one token is skipped before the
// error is returned, so the following call resumes with the next construct.
func (p *Parser) Next(ctx context.Context) (Item, error) {
	if err := ctx.Err(); err != nil {
		return Item{}, err
	}

	p.prime()

	for p.cur.Is(';') {
		p.advance(ctx)
	}

	var (
		item Item
		err  error
	)

	switch p.cur.Kind {
	case KindEOF:
		return Item{}, io.EOF

	case KindDef:
		item.Kind = ItemDefinition
		item.Function, err = p.ParseDefinition(ctx)

	case KindExtern:
		item.Kind = ItemExtern
		item.Extern, err = p.ParseExtern(ctx)

	default:
		item.Kind = ItemExpression
		item.Function, err = p.ParseTopLevelExpr(ctx)
	}

	if err != nil {
		skip := p.cur
		p.advance(ctx)

		p.logger.TraceContext(ctx, "parse failed",
			slog.String("item", item.Kind.String()),
			slog.Any("error", err),
			slog.String("skipped", skip.String()))

		return Item{}, err
	}

	item.Pos = item.Node().Position()

	p.logger.TraceContext(ctx, "parsed item",
		slog.String("item", item.Kind.String()),
		slog.String("pos", item.Pos.String()))

	return item, nil
}

// Items returns an iterator over every remaining construct. Parse errors are
// yielded with a zero Item and iteration continues after them. A read error
// from the underlying source, or the context's error, is yielded last.
func (p *Parser) Items(ctx context.Context) iter.Seq2[Item, error] {
	return func(yield func(Item, error) bool) {
		for {
			item, err := p.Next(ctx)

			switch {
			case errors.Is(err, io.EOF):
				if rerr := p.Err(); rerr != nil {
					yield(Item{}, rerr)
				}

				return

			case err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()):
				yield(Item{}, err)

				return
			}

			if !yield(item, err) {
				return
			}
		}
	}
}

// AST is the result of parsing a complete source.
//
// Precedence is the operator table the items were parsed with. [AST.Format]
// prints for it; a nil table means [DefaultPrecedence].
type AST struct {
	Precedence *Precedence
	Items      []Item
}

// ParseString parses every construct in s.
//
// Parse failures do not stop the parse: the returned AST holds every item
// that parsed, and the error, if not nil, is an [Errors] listing the
// failures in source order.
func ParseString(ctx context.Context, s string, opts ...Option) (*AST, error) {
	return parse(ctx, NewParser(strings.NewReader(s), opts...))
}

// ParseReader parses every construct read from r. See [ParseString].
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*AST, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	return parse(ctx, NewParser(ra, opts...))
}

func parse(ctx context.Context, p *Parser) (*AST, error) {
	ast := &AST{Precedence: p.Precedence()}

	var errs Errors

	for item, err := range p.Items(ctx) {
		if err != nil {
			errs = append(errs, err)

			continue
		}

		ast.Items = append(ast.Items, item)
	}

	p.logger.TraceContext(ctx, "parse complete",
		slog.Int("items", len(ast.Items)),
		slog.Int("errors", len(errs)))

	if len(errs) > 0 {
		return ast, errs
	}

	return ast, nil
}

// Definitions returns an iterator over the named function definitions.
func (ast *AST) Definitions() iter.Seq[*Function] {
	return ast.functions(ItemDefinition)
}

// Expressions returns an iterator over the anonymous functions wrapping
// top-level expressions.
func (ast *AST) Expressions() iter.Seq[*Function] {
	return ast.functions(ItemExpression)
}

func (ast *AST) functions(kind ItemKind) iter.Seq[*Function] {
	return func(yield func(*Function) bool) {
		for _, it := range ast.Items {
			if it.Kind == kind && !yield(it.Function) {
				return
			}
		}
	}
}

// Externs returns an iterator over the extern declarations.
func (ast *AST) Externs() iter.Seq[*Prototype] {
	return func(yield func(*Prototype) bool) {
		for _, it := range ast.Items {
			if it.Kind == ItemExtern && !yield(it.Extern) {
				return
			}
		}
	}
}

// Lookup returns the prototype of the last definition or extern named name.
func (ast *AST) Lookup(name string) (*Prototype, bool) {
	if name == "" {
		return nil, false
	}

	for i := len(ast.Items) - 1; i >= 0; i-- {
		if proto := ast.Items[i].Prototype(); proto != nil && proto.Name == name {
			return proto, true
		}
	}

	return nil, false
}
