package expr

import "fmt"

// TokenType identifies a lexical token of the layout expression language.
type TokenType int

const (
	TokenEOF     TokenType = iota // end of input
	TokenIllegal                  // unexpected character
	TokenIdent                    // label or direction keyword
	TokenSize                     // 3, 50%, 150px
	TokenLParen                   // (
	TokenRParen                   // )
	TokenComma                    // ,
	TokenEquals                   // =
	TokenAt                       // @
)

var tokenNames = map[TokenType]string{
	TokenEOF:     "end of input",
	TokenIllegal: "illegal character",
	TokenIdent:   "label",
	TokenSize:    "size",
	TokenLParen:  "'('",
	TokenRParen:  "')'",
	TokenComma:   "','",
	TokenEquals:  "'='",
	TokenAt:      "'@'",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// Token is one lexeme with its byte offset in the source.
type Token struct {
	Type    TokenType
	Literal string
	Offset  int
}

// Lexer splits an expression into tokens. Whitespace is skipped.
type Lexer struct {
	src string
	pos int
}

// NewLexer creates a Lexer over src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// Next returns the next token. After the end of input it keeps returning TokenEOF.
func (l *Lexer) Next() Token {
	l.skipWhitespace()
	start := l.pos
	if l.pos >= len(l.src) {
		return Token{Type: TokenEOF, Offset: start}
	}

	ch := l.src[l.pos]
	switch ch {
	case '(':
		l.pos++
		return Token{Type: TokenLParen, Literal: "(", Offset: start}
	case ')':
		l.pos++
		return Token{Type: TokenRParen, Literal: ")", Offset: start}
	case ',':
		l.pos++
		return Token{Type: TokenComma, Literal: ",", Offset: start}
	case '=':
		l.pos++
		return Token{Type: TokenEquals, Literal: "=", Offset: start}
	case '@':
		l.pos++
		return Token{Type: TokenAt, Literal: "@", Offset: start}
	}

	switch {
	case isDigit(ch):
		return l.readSize()
	case isLetter(ch):
		return l.readIdent()
	}
	l.pos++
	return Token{Type: TokenIllegal, Literal: string(ch), Offset: start}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

// readSize reads digits with an optional "%" or "px" suffix.
func (l *Lexer) readSize() Token {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	switch {
	case l.pos < len(l.src) && l.src[l.pos] == '%':
		l.pos++
	case len(l.src)-l.pos >= 2 && l.src[l.pos:l.pos+2] == "px":
		l.pos += 2
	}
	return Token{Type: TokenSize, Literal: l.src[start:l.pos], Offset: start}
}

func (l *Lexer) readIdent() Token {
	start := l.pos
	for l.pos < len(l.src) && isIdentChar(l.src[l.pos]) {
		l.pos++
	}
	return Token{Type: TokenIdent, Literal: l.src[start:l.pos], Offset: start}
}

func isLetter(ch byte) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isIdentChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '.' || ch == '-'
}
