package lang

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/kaleido/log"
)

// Parser is a parsing session over one source. It buffers a single current
// token, pulled from its [Scanner] on demand.
//
// A Parser must not be used from more than one goroutine at a time.
// Independent parsers share no state.
type Parser struct {
	scan     *Scanner
	prec     *Precedence
	logger   log.Logger
	cur      Token
	depth    int
	maxDepth int
	primed   bool
}

// NewParser returns a parser reading source text from r. Nothing is read
// until the first parse call.
func NewParser(r io.Reader, opts ...Option) *Parser {
	o := makeOptions(opts...)

	return &Parser{
		scan:     NewScanner(r, o.scanOptions()...),
		prec:     o.prec,
		logger:   o.logger,
		maxDepth: o.maxDepth,
	}
}

// Precedence returns a copy of the parser's operator table.
func (p *Parser) Precedence() *Precedence { return p.prec.Clone() }

// Err returns the error that ended the input early, if any.
func (p *Parser) Err() error { return p.scan.Err() }

// Current returns the buffered token, reading the first token if necessary.
func (p *Parser) Current() Token {
	p.prime()

	return p.cur
}

// Advance replaces the buffered token with the next scanned token and
// returns it.
func (p *Parser) Advance(ctx context.Context) Token {
	p.prime()
	p.advance(ctx)

	return p.cur
}

func (p *Parser) prime() {
	if !p.primed {
		p.primed = true
		p.cur = p.scan.Next()
	}
}

func (p *Parser) advance(ctx context.Context) {
	p.cur = p.scan.Next()

	p.logger.TraceContext(ctx, "token",
		slog.String("kind", p.cur.Kind.String()),
		slog.String("text", p.cur.Text),
		slog.String("pos", p.cur.Pos.String()))
}

// enter records one more level of nesting at tok.
func (p *Parser) enter(tok Token) error {
	if p.depth >= p.maxDepth {
		return ErrMaxDepthExceeded.At(tok).With(slog.Int("max_depth", p.maxDepth))
	}

	p.depth++

	return nil
}

func (p *Parser) leave() { p.depth-- }

// ParsePrimary parses an identifier expression, a number, or a parenthesized
// expression.
func (p *Parser) ParsePrimary(ctx context.Context) (Expr, error) {
	p.prime()

	switch {
	case p.cur.Kind == KindIdentifier:
		return p.ParseIdentifierExpr(ctx)

	case p.cur.Kind == KindNumber:
		n := &NumberExpr{Value: p.cur.Number, Pos: p.cur.Pos}
		p.advance(ctx)

		return n, nil

	case p.cur.Is('('):
		return p.ParseParenExpr(ctx)

	default:
		return nil, ErrUnknownToken.At(p.cur)
	}
}

// ParseIdentifierExpr parses a variable reference, or a call when the
// identifier is followed by '('.
func (p *Parser) ParseIdentifierExpr(ctx context.Context) (Expr, error) {
	p.prime()

	if p.cur.Kind != KindIdentifier {
		return nil, ErrUnexpectedToken.At(p.cur).
			With(slog.String("expected", "identifier"))
	}

	name, pos := p.cur.Text, p.cur.Pos
	p.advance(ctx)

	if !p.cur.Is('(') {
		return &VariableExpr{Name: name, Pos: pos}, nil
	}

	p.advance(ctx)

	var args []Expr

	if !p.cur.Is(')') {
		for {
			arg, err := p.ParseExpression(ctx)
			if err != nil {
				return nil, err
			}

			args = append(args, arg)

			if p.cur.Is(')') {
				break
			}

			if !p.cur.Is(',') {
				return nil, ErrExpectedArgument.At(p.cur).
					With(slog.String("callee", name))
			}

			p.advance(ctx)
		}
	}

	p.advance(ctx)

	return &CallExpr{Callee: name, Args: args, Pos: pos}, nil
}

// ParseParenExpr parses '(' expression ')' and returns the inner expression.
func (p *Parser) ParseParenExpr(ctx context.Context) (Expr, error) {
	p.prime()

	if !p.cur.Is('(') {
		return nil, ErrUnexpectedToken.At(p.cur).
			With(slog.String("expected", "'('"))
	}

	open := p.cur
	p.advance(ctx)

	e, err := p.ParseExpression(ctx)
	if err != nil {
		return nil, err
	}

	if !p.cur.Is(')') {
		return nil, ErrExpectedCloseParen.At(p.cur).
			With(slog.String("open", open.Pos.String()))
	}

	p.advance(ctx)

	return e, nil
}

// ParseExpression parses a primary expression followed by any number of
// binary operators and their operands.
func (p *Parser) ParseExpression(ctx context.Context) (Expr, error) {
	p.prime()

	if err := p.enter(p.cur); err != nil {
		return nil, err
	}
	defer p.leave()

	lhs, err := p.ParsePrimary(ctx)
	if err != nil {
		return nil, err
	}

	return p.parseBinOpRHS(ctx, 0, lhs)
}

// parseBinOpRHS extends lhs with operators binding at least as tightly as
// minPrec. An operand followed by a tighter operator absorbs it first, so
// equal precedence associates left.
func (p *Parser) parseBinOpRHS(
	ctx context.Context,
	minPrec int,
	lhs Expr,
) (Expr, error) {
	for {
		tokPrec := p.prec.Of(p.cur)
		if tokPrec < minPrec {
			return lhs, nil
		}

		op := p.cur
		p.advance(ctx)

		rhs, err := p.ParsePrimary(ctx)
		if err != nil {
			return nil, err
		}

		if nextPrec := p.prec.Of(p.cur); tokPrec < nextPrec {
			if err := p.enter(p.cur); err != nil {
				return nil, err
			}

			rhs, err = p.parseBinOpRHS(ctx, tokPrec+1, rhs)

			p.leave()

			if err != nil {
				return nil, err
			}
		}

		lhs = &BinaryExpr{Op: op.Char, LHS: lhs, RHS: rhs, Pos: op.Pos}
	}
}

// ParsePrototype parses name '(' params ')'. Parameters are identifiers;
// commas between them are skipped without checking their placement.
func (p *Parser) ParsePrototype(ctx context.Context) (*Prototype, error) {
	p.prime()

	if p.cur.Kind != KindIdentifier {
		return nil, ErrExpectedFunctionName.At(p.cur)
	}

	name, pos := p.cur.Text, p.cur.Pos
	p.advance(ctx)

	if !p.cur.Is('(') {
		return nil, ErrExpectedPrototypeOpen.At(p.cur).
			With(slog.String("name", name))
	}

	p.advance(ctx)

	var params []string

	for p.cur.Kind == KindIdentifier || p.cur.Is(',') {
		if p.cur.Kind == KindIdentifier {
			params = append(params, p.cur.Text)
		}

		p.advance(ctx)
	}

	if !p.cur.Is(')') {
		return nil, ErrExpectedPrototypeClose.At(p.cur).
			With(slog.String("name", name))
	}

	p.advance(ctx)

	return &Prototype{Name: name, Params: params, Pos: pos}, nil
}

// ParseDefinition parses 'def' prototype expression.
func (p *Parser) ParseDefinition(ctx context.Context) (*Function, error) {
	p.prime()

	if p.cur.Kind != KindDef {
		return nil, ErrUnexpectedToken.At(p.cur).
			With(slog.String("expected", "def"))
	}

	p.advance(ctx)

	proto, err := p.ParsePrototype(ctx)
	if err != nil {
		return nil, err
	}

	body, err := p.ParseExpression(ctx)
	if err != nil {
		return nil, err
	}

	return &Function{Proto: proto, Body: body}, nil
}

// ParseExtern parses 'extern' prototype.
func (p *Parser) ParseExtern(ctx context.Context) (*Prototype, error) {
	p.prime()

	if p.cur.Kind != KindExtern {
		return nil, ErrUnexpectedToken.At(p.cur).
			With(slog.String("expected", "extern"))
	}

	p.advance(ctx)

	return p.ParsePrototype(ctx)
}

// ParseTopLevelExpr parses an expression and wraps it in an anonymous
// function with no parameters.
func (p *Parser) ParseTopLevelExpr(ctx context.Context) (*Function, error) {
	p.prime()

	pos := p.cur.Pos

	body, err := p.ParseExpression(ctx)
	if err != nil {
		return nil, err
	}

	return &Function{Proto: &Prototype{Pos: pos}, Body: body}, nil
}
