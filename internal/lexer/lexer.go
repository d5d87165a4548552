// Package lexer tokenizes Lumo source text for internal/parser.
package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/lumo-lang/lumoc/internal/token"
)

// Lexer scans a single source file one rune at a time.
type Lexer struct {
	input        string
	position     int
	readPosition int
	ch           rune
	line         int
	column       int
}

// New returns a Lexer positioned at the start of input.
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// NextToken returns the next token in the input, advancing the scan
// position. Repeated calls after EOF keep returning an EOF token.
func (l *Lexer) NextToken() token.Token {
	l.skipSpacesAndComments()

	pos := token.Position{Line: l.line, Column: l.column}

	switch {
	case l.ch == 0:
		return token.Token{Type: token.EOF, Lexeme: "", Pos: pos}
	case l.ch == '\n':
		l.readChar()
		return token.Token{Type: token.NEWLINE, Lexeme: "\n", Pos: pos}
	case l.ch == '.':
		l.readChar()
		return token.Token{Type: token.DOT, Lexeme: ".", Pos: pos}
	case l.ch == ',':
		l.readChar()
		return token.Token{Type: token.COMMA, Lexeme: ",", Pos: pos}
	case l.ch == ':':
		l.readChar()
		return token.Token{Type: token.COLON, Lexeme: ":", Pos: pos}
	case l.ch == '(':
		l.readChar()
		return token.Token{Type: token.LPAREN, Lexeme: "(", Pos: pos}
	case l.ch == ')':
		l.readChar()
		return token.Token{Type: token.RPAREN, Lexeme: ")", Pos: pos}
	case l.ch == '{':
		l.readChar()
		return token.Token{Type: token.LBRACE, Lexeme: "{", Pos: pos}
	case l.ch == '}':
		l.readChar()
		return token.Token{Type: token.RBRACE, Lexeme: "}", Pos: pos}
	case l.ch == '-' && l.peekChar() == '>':
		l.readChar()
		l.readChar()
		return token.Token{Type: token.ARROW, Lexeme: "->", Pos: pos}
	case l.ch == '=' && l.peekChar() == '>':
		l.readChar()
		l.readChar()
		return token.Token{Type: token.FATARROW, Lexeme: "=>", Pos: pos}
	case l.ch == '_' && !isIdentRune(l.peekChar()):
		l.readChar()
		return token.Token{Type: token.UNDERSCORE, Lexeme: "_", Pos: pos}
	case isDigit(l.ch):
		lit := l.readWhile(isDigit)
		return token.Token{Type: token.INT, Lexeme: lit, Pos: pos}
	case isIdentStart(l.ch):
		lit := l.readWhile(isIdentRune)
		return token.Token{Type: token.LookupIdent(lit), Lexeme: lit, Pos: pos}
	default:
		ch := l.ch
		l.readChar()
		return token.Token{Type: token.EOF, Lexeme: string(ch), Pos: pos}
	}
}

func (l *Lexer) readWhile(pred func(rune) bool) string {
	start := l.position
	for pred(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) skipSpacesAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
			l.readChar()
		}
		if l.ch == '/' && l.peekChar() == '/' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		break
	}
}

func isDigit(ch rune) bool { return '0' <= ch && ch <= '9' }

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentRune(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}
