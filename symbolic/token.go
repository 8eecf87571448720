package symbolic

import "fmt"

// TokenType identifies the lexical class of a token.
type TokenType int

const (
	// ILLEGAL marks input the lexer cannot classify.
	ILLEGAL TokenType = iota
	// EOF marks the end of input.
	EOF
	// SYMBOL is a unit symbol such as "m", "Hz", or "#".
	SYMBOL
	// NUMBER is a bare numeric factor. Only the literal "1" is a valid
	// operand; the parser rejects everything else.
	NUMBER
	// EXPONENT is the rational literal following a caret, e.g. the "-3/2"
	// in "m^-3/2". The caret itself is part of the token.
	EXPONENT
	// SLASH starts a denominator run.
	SLASH
	// STAR separates multiplied factors, equivalent to whitespace.
	STAR
	// LPAREN and RPAREN group sub-expressions; LBRACKET and RBRACKET are
	// the square-bracket spellings of the same thing.
	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
)

// String returns a readable name for the token type.
func (t TokenType) String() string {
	switch t {
	case ILLEGAL:
		return "ILLEGAL"
	case EOF:
		return "EOF"
	case SYMBOL:
		return "SYMBOL"
	case NUMBER:
		return "NUMBER"
	case EXPONENT:
		return "EXPONENT"
	case SLASH:
		return "SLASH"
	case STAR:
		return "STAR"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	case LBRACKET:
		return "LBRACKET"
	case RBRACKET:
		return "RBRACKET"
	default:
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
}

// Token is a single lexical unit of a unit expression.
type Token struct {
	Type    TokenType
	Literal string
	// Position is the byte offset of the token's first character in the
	// original input. Error messages report it to the caller.
	Position int
}
