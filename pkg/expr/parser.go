package expr

import (
	"fmt"
	"strconv"
)

var assignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true,
	"/=": true, "//=": true, "%=": true, "**=": true,
}

// Parse compiles an expression source string into its tree form.
//
// Precedence, loosest to tightest: or, and, assignment, not, comparison,
// additive, multiplicative, power (right associative), unary minus,
// primary. Assignments sit directly below "not" so that a condition like
// "x = 1 and y = 2" reads as two assignments joined by "and"; earlier
// assignments stay visible to later operands of the same chain.
func Parse(src string) (Node, error) {
	toks, err := Lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks}
	node, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Kind != EOF {
		return nil, p.errorf(tok, "unexpected token %q", tok.Text)
	}
	return node, nil
}

type parser struct {
	src  string
	toks []Token
	pos  int
}

func (p *parser) peek() Token { return p.toks[p.pos] }

func (p *parser) peekAt(n int) Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *parser) next() Token {
	t := p.toks[p.pos]
	if t.Kind != EOF {
		p.pos++
	}
	return t
}

// acceptOp consumes the next token when it is an OP with one of the given
// spellings.
func (p *parser) acceptOp(ops ...string) (Token, bool) {
	t := p.peek()
	if t.Kind != OP {
		return Token{}, false
	}
	for _, op := range ops {
		if t.Text == op {
			p.pos++
			return t, true
		}
	}
	return Token{}, false
}

func (p *parser) errorf(tok Token, format string, args ...any) error {
	return &ParseError{Expr: p.src, Pos: tok.Pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.acceptOp("or", "||", "|"); !ok {
			return left, nil
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: "or", Left: left, Right: right}
	}
}

func (p *parser) parseAnd() (Node, error) {
	left, err := p.parseAssign()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.acceptOp("and", "&&", "&"); !ok {
			return left, nil
		}
		right, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: "and", Left: left, Right: right}
	}
}

// parseAssign handles the IDENT <op>= RHS form, right associative. The
// target must be a bare identifier; any other left side that runs into an
// assignment operator is rejected by the EOF check in Parse or by the
// explicit check here when the operator follows a non-identifier primary.
func (p *parser) parseAssign() (Node, error) {
	if p.peek().Kind == IDENT && p.peekAt(1).Kind == OP && assignOps[p.peekAt(1).Text] {
		name := p.next()
		op := p.next()
		right, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		return &Assignment{Name: name.Text, Op: op.Text, Right: right}, nil
	}
	node, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Kind == OP && assignOps[tok.Text] {
		return nil, p.errorf(tok, "left side of %q must be a variable", tok.Text)
	}
	return node, nil
}

func (p *parser) parseNot() (Node, error) {
	if _, ok := p.acceptOp("not", "!"); ok {
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: "not", Operand: operand}, nil
	}
	return p.parseComparison()
}

// parseComparison is non-associative: at most one comparison per level.
func (p *parser) parseComparison() (Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.acceptOp("==", "!=", "<", "<=", ">", ">="); ok {
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return &Binary{Op: tok.Text, Left: left, Right: right}, nil
	}
	return left, nil
}

func (p *parser) parseAdditive() (Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.acceptOp("+", "-")
		if !ok {
			return left, nil
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: tok.Text, Left: left, Right: right}
	}
}

func (p *parser) parseMultiplicative() (Node, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.acceptOp("*", "/", "//", "%")
		if !ok {
			return left, nil
		}
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: tok.Text, Left: left, Right: right}
	}
}

// parsePower is right associative; the base binds at unary-minus level so
// that "-7 ** 2" squares negative seven.
func (p *parser) parsePower() (Node, error) {
	base, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if _, ok := p.acceptOp("**"); ok {
		exp, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		return &Binary{Op: "**", Left: base, Right: exp}, nil
	}
	return base, nil
}

func (p *parser) parseUnary() (Node, error) {
	if _, ok := p.acceptOp("-"); ok {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: "-", Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Node, error) {
	tok := p.peek()
	switch tok.Kind {
	case NUMBER:
		p.next()
		n, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, p.errorf(tok, "invalid number %q", tok.Text)
		}
		return &Literal{Val: Number(n)}, nil
	case STRING:
		p.next()
		return &Literal{Val: String(tok.Text)}, nil
	case BOOLEAN:
		p.next()
		return &Literal{Val: Bool(tok.Text == "true")}, nil
	case IDENT:
		p.next()
		return &VariableRef{Name: tok.Text}, nil
	case LPAREN:
		p.next()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if closing := p.peek(); closing.Kind != RPAREN {
			return nil, p.errorf(closing, "expected closing parenthesis")
		}
		p.next()
		return &Grouping{Inner: inner}, nil
	case EOF:
		return nil, p.errorf(tok, "unexpected end of expression")
	default:
		return nil, p.errorf(tok, "unexpected token %q", tok.Text)
	}
}
