package symbolic

import (
	"strings"

	"github.com/hupe1980/dimgo/ratio"
)

// Parse converts unit-expression text into canonical form.
//
// Grammar:
//
//   - whitespace or '*' separates multiplied factors: "kg m" and "kg*m" are
//     the product of kg and m;
//   - '^' attaches a rational exponent to the preceding factor with no
//     intervening space: "s^-1", "m^3/2", "m^0.5";
//   - '/' divides everything already parsed in the current group by all
//     following factors up to the group's end; a later '/' continues the
//     denominator, so "kg / m s" and "kg / m / s" both mean "kg m^-1 s^-1";
//   - parentheses and square brackets group sub-expressions before an
//     exponent or division applies: "(m / s)^2" is "m^2 s^-2";
//   - the literal "1" is the multiplicative identity: "1 / s" is "s^-1".
//
// Parsing is deterministic and total for well-formed input. Malformed input
// (unbalanced groups, dangling operators, malformed exponents, bare numbers
// other than "1") fails with a *ParseError carrying the offending substring
// and its byte position.
func Parse(text string, opts ...Option) (Expression, error) {
	o := applyOptions(opts...)
	if strings.TrimSpace(text) == "" {
		return Expression{}, wrapParseError(ErrEmptyInput, "", 0, "empty expression")
	}
	p := newParser(text, o)
	expr, err := p.parseGroup()
	if err != nil {
		return Expression{}, err
	}
	if p.cur.Type != EOF {
		switch p.cur.Type {
		case RPAREN, RBRACKET:
			return Expression{}, newParseError(p.cur.Literal, p.cur.Position, "unbalanced group")
		default:
			return Expression{}, newParseError(p.cur.Literal, p.cur.Position, "unexpected token")
		}
	}
	return expr, nil
}

// MustParse is like Parse but panics on malformed input. It is intended for
// package-level constants and tables.
func MustParse(text string, opts ...Option) Expression {
	expr, err := Parse(text, opts...)
	if err != nil {
		panic(err)
	}
	return expr
}

type parser struct {
	lex    *Lexer
	cur    Token
	strict bool
}

func newParser(text string, o options) *parser {
	p := &parser{
		lex:    NewLexer(text),
		strict: o.strict,
	}
	p.advance()
	return p
}

func (p *parser) advance() {
	p.cur = p.lex.NextToken()
}

// parseGroup parses a numerator followed by zero or more denominator runs.
// It stops at a closing bracket, an exponent attached to the enclosing
// group, or the end of input.
func (p *parser) parseGroup() (Expression, error) {
	expr, err := p.parseFactors(false)
	if err != nil {
		return Expression{}, err
	}
	divisions := 0
	for p.cur.Type == SLASH {
		divisions++
		if p.strict && divisions > 1 {
			return Expression{}, wrapParseError(ErrRatioForm, p.cur.Literal, p.cur.Position,
				"only one '/' per group in strict mode")
		}
		p.advance()
		denom, err := p.parseFactors(true)
		if err != nil {
			return Expression{}, err
		}
		expr = expr.Over(denom)
	}
	return expr, nil
}

// parseFactors parses one or more multiplied factors.
func (p *parser) parseFactors(denominator bool) (Expression, error) {
	expr := Identity()
	parsed := false
	for {
		switch p.cur.Type {
		case STAR:
			if !parsed {
				return Expression{}, newParseError(p.cur.Literal, p.cur.Position, "dangling operator")
			}
			if p.strict && denominator {
				return Expression{}, wrapParseError(ErrProductForm, p.cur.Literal, p.cur.Position,
					"no explicit product after '/' in strict mode")
			}
			p.advance()
			if !p.atFactorStart() {
				return Expression{}, newParseError(p.cur.Literal, p.cur.Position, "dangling operator")
			}
			continue
		case SYMBOL, NUMBER, LPAREN, LBRACKET:
			factor, err := p.parseFactor()
			if err != nil {
				return Expression{}, err
			}
			expr = expr.Times(factor)
			parsed = true
		case ILLEGAL:
			reason := "invalid character"
			if strings.HasPrefix(p.cur.Literal, "^") {
				reason = "malformed exponent"
			}
			return Expression{}, newParseError(p.cur.Literal, p.cur.Position, reason)
		default:
			if !parsed {
				return Expression{}, newParseError(p.cur.Literal, p.cur.Position, "expected unit symbol")
			}
			return expr, nil
		}
	}
}

func (p *parser) atFactorStart() bool {
	switch p.cur.Type {
	case SYMBOL, NUMBER, LPAREN, LBRACKET:
		return true
	default:
		return false
	}
}

// parseFactor parses a single operand and any exponent attached to it.
func (p *parser) parseFactor() (Expression, error) {
	operand, err := p.parseOperand()
	if err != nil {
		return Expression{}, err
	}
	if p.cur.Type == EXPONENT {
		exp, perr := ratio.Parse(p.cur.Literal)
		if perr != nil {
			return Expression{}, newParseError(p.cur.Literal, p.cur.Position, "malformed exponent")
		}
		operand = operand.Pow(exp)
		p.advance()
	}
	return operand, nil
}

func (p *parser) parseOperand() (Expression, error) {
	switch p.cur.Type {
	case SYMBOL:
		expr := FromTerms(NewTermInt(p.cur.Literal, 1))
		p.advance()
		return expr, nil
	case NUMBER:
		value, err := ratio.Parse(p.cur.Literal)
		if err != nil || !value.Equal(ratio.One) {
			return Expression{}, newParseError(p.cur.Literal, p.cur.Position,
				"numeric factors other than 1 are not valid units")
		}
		p.advance()
		return Identity(), nil
	case LPAREN:
		return p.parseGrouped(RPAREN, "unbalanced parentheses")
	case LBRACKET:
		return p.parseGrouped(RBRACKET, "unbalanced brackets")
	default:
		return Expression{}, newParseError(p.cur.Literal, p.cur.Position, "expected unit symbol")
	}
}

func (p *parser) parseGrouped(closing TokenType, unbalanced string) (Expression, error) {
	open := p.cur
	p.advance()
	inner, err := p.parseGroup()
	if err != nil {
		return Expression{}, err
	}
	if p.cur.Type != closing {
		return Expression{}, newParseError(open.Literal, open.Position, unbalanced)
	}
	p.advance()
	return inner, nil
}
