package symbolic

import (
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes a unit-expression string.
//
// The lexer is rune-aware so that symbols like "μ" and "Ω" survive intact,
// but it never interprets symbols itself; resolving them against the unit
// table is the metric package's job.
type Lexer struct {
	input   string
	pos     int  // byte offset of ch
	readPos int  // byte offset after ch
	ch      rune // current rune, 0 at EOF
}

// NewLexer creates a lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readRune()
	return l
}

func (l *Lexer) readRune() {
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.pos = len(l.input)
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.ch = r
	l.pos = l.readPos
	l.readPos += w
}

func (l *Lexer) peekRune() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readRune()
	}
}

// NextToken returns the next token in the input.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	tok := Token{Position: l.pos}

	switch {
	case l.ch == 0:
		tok.Type = EOF
	case l.ch == '/':
		tok.Type = SLASH
		tok.Literal = "/"
		l.readRune()
	case l.ch == '*':
		tok.Type = STAR
		tok.Literal = "*"
		l.readRune()
	case l.ch == '(':
		tok.Type = LPAREN
		tok.Literal = "("
		l.readRune()
	case l.ch == ')':
		tok.Type = RPAREN
		tok.Literal = ")"
		l.readRune()
	case l.ch == '[':
		tok.Type = LBRACKET
		tok.Literal = "["
		l.readRune()
	case l.ch == ']':
		tok.Type = RBRACKET
		tok.Literal = "]"
		l.readRune()
	case l.ch == '^':
		tok = l.readExponent()
	case isSymbolStart(l.ch):
		tok.Type = SYMBOL
		tok.Literal = l.readSymbol()
	case unicode.IsDigit(l.ch) || l.ch == '.':
		tok.Type = NUMBER
		tok.Literal = l.readNumber()
	default:
		tok.Type = ILLEGAL
		tok.Literal = string(l.ch)
		l.readRune()
	}

	return tok
}

// readSymbol scans a unit symbol: one or more letters (or '#', '_'), then
// optional trailing digits. Digits end the symbol, so "R2s" lexes as "R2"
// followed by "s".
func (l *Lexer) readSymbol() string {
	start := l.pos
	for isSymbolRune(l.ch) {
		l.readRune()
	}
	for unicode.IsDigit(l.ch) {
		l.readRune()
	}
	return l.input[start:l.pos]
}

// readNumber scans a bare numeric literal, including decimal and scientific
// forms. The parser only accepts "1" as an operand, but scanning the whole
// literal keeps error positions on the full offending text.
func (l *Lexer) readNumber() string {
	start := l.pos
	for unicode.IsDigit(l.ch) {
		l.readRune()
	}
	if l.ch == '.' {
		l.readRune()
		for unicode.IsDigit(l.ch) {
			l.readRune()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		if next := l.peekRune(); unicode.IsDigit(next) || next == '+' || next == '-' {
			l.readRune()
			if l.ch == '+' || l.ch == '-' {
				l.readRune()
			}
			for unicode.IsDigit(l.ch) {
				l.readRune()
			}
		}
	}
	return l.input[start:l.pos]
}

// readExponent scans a caret and the rational literal that must follow it
// with no intervening space: an optional sign, then either digits with an
// optional "/digits" or decimal tail, or a leading-dot decimal.
//
// A '/' is consumed only when a digit follows it, so "m^2/s" yields the
// exponent "2" and leaves "/s" for the parser.
func (l *Lexer) readExponent() Token {
	tok := Token{Position: l.pos}
	l.readRune() // consume '^'

	start := l.pos
	if l.ch == '+' || l.ch == '-' {
		l.readRune()
	}
	switch {
	case unicode.IsDigit(l.ch):
		for unicode.IsDigit(l.ch) {
			l.readRune()
		}
		switch {
		case l.ch == '/' && unicode.IsDigit(l.peekRune()):
			l.readRune()
			for unicode.IsDigit(l.ch) {
				l.readRune()
			}
		case l.ch == '.':
			l.readRune()
			for unicode.IsDigit(l.ch) {
				l.readRune()
			}
			l.readScientificTail()
		case l.ch == 'e' || l.ch == 'E':
			l.readScientificTail()
		}
	case l.ch == '.' && unicode.IsDigit(l.peekRune()):
		l.readRune()
		for unicode.IsDigit(l.ch) {
			l.readRune()
		}
		l.readScientificTail()
	default:
		// Nothing exponent-like follows the caret.
		tok.Type = ILLEGAL
		tok.Literal = l.input[tok.Position:l.pos]
		return tok
	}

	tok.Type = EXPONENT
	tok.Literal = l.input[start:l.pos]
	return tok
}

func (l *Lexer) readScientificTail() {
	if l.ch != 'e' && l.ch != 'E' {
		return
	}
	next := l.peekRune()
	if !unicode.IsDigit(next) && next != '+' && next != '-' {
		return
	}
	l.readRune()
	if l.ch == '+' || l.ch == '-' {
		l.readRune()
	}
	for unicode.IsDigit(l.ch) {
		l.readRune()
	}
}

func isSymbolStart(r rune) bool {
	return r == '#' || r == '_' || unicode.IsLetter(r)
}

func isSymbolRune(r rune) bool {
	return r == '#' || r == '_' || unicode.IsLetter(r)
}
