package internal

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer walks the source one rune at a time, tracking the 1-based
// line/column of the character it most recently consumed. Every
// consumption goes through advance so the bookkeeping holds on all
// scan paths.
type Lexer struct {
	source string
	offset int
	line   int
	col    int
	prev   rune
}

var keywords = map[string]TokenType{
	"and":    AND,
	"class":  CLASS,
	"else":   ELSE,
	"false":  FALSE,
	"fun":    FUN,
	"for":    FOR,
	"if":     IF,
	"nil":    NIL,
	"or":     OR,
	"print":  PRINT,
	"return": RETURN,
	"super":  SUPER,
	"this":   THIS,
	"true":   TRUE,
	"var":    VAR,
	"while":  WHILE,
}

func NewLexer(source string) *Lexer {
	return &Lexer{
		source: source,
		line:   1,
	}
}

// Next consumes one lexeme and returns its token, or an EOF-typed
// token once the input is exhausted. Malformed input comes back as
// UNKNOWN or UNTERMINATED tokens, never as an error.
func (l *Lexer) Next() Token {
	c, ok := l.advance()
	if !ok {
		return Token{Type: EOF}
	}

	if unicode.IsSpace(c) {
		l.eatWhile(unicode.IsSpace)
		return Token{Type: WHITESPACE}
	}

	switch c {
	case '(':
		return Token{Type: LEFT_PAREN}
	case ')':
		return Token{Type: RIGHT_PAREN}
	case '{':
		return Token{Type: LEFT_BRACE}
	case '}':
		return Token{Type: RIGHT_BRACE}
	case ',':
		return Token{Type: COMMA}
	case '.':
		return Token{Type: DOT}
	case '-':
		return Token{Type: MINUS}
	case '+':
		return Token{Type: PLUS}
	case ';':
		return Token{Type: SEMICOLON}
	case '*':
		return Token{Type: STAR}
	case '!':
		if l.match('=') {
			return Token{Type: BANG_EQUAL}
		}
		return Token{Type: BANG}
	case '=':
		if l.match('=') {
			return Token{Type: EQUAL_EQUAL}
		}
		return Token{Type: EQUAL}
	case '<':
		if l.match('=') {
			return Token{Type: LESS_EQUAL}
		}
		return Token{Type: LESS}
	case '>':
		if l.match('=') {
			return Token{Type: GREATER_EQUAL}
		}
		return Token{Type: GREATER}
	case '/':
		if l.match('/') {
			text := l.takeWhile(func(r rune) bool { return r != '\n' })
			return Token{Type: COMMENT, Literal: text}
		}
		return Token{Type: SLASH}
	case '"':
		return l.string()
	}

	if isDigit(c) {
		return l.number(c)
	}
	if isAlpha(c) {
		return l.identifier(c)
	}

	return Token{Type: UNKNOWN}
}

// string scans the body after the opening quote. A backslash keeps the
// following character in the body unconditionally; nothing is decoded.
// Without a closing quote the token reports where the scan stopped.
func (l *Lexer) string() Token {
	escaped := false
	body := l.takeWhile(func(r rune) bool {
		cont := escaped || r != '"'
		escaped = r == '\\'
		return cont
	})

	if r, ok := l.peek(); !ok || r != '"' {
		return Token{Type: UNTERMINATED, Line: l.line, Col: l.col}
	}

	// Consume ending "
	l.advance()

	return Token{Type: STRING, Literal: body}
}

func (l *Lexer) number(first rune) Token {
	hasDot := false
	lexeme := string(first) + l.takeWhile(func(r rune) bool {
		if isDigit(r) {
			return true
		}
		if r == '.' && !hasDot {
			hasDot = true
			return true
		}
		return false
	})

	value, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return Token{Type: UNKNOWN}
	}

	return Token{Type: NUMBER, Literal: value}
}

func (l *Lexer) identifier(first rune) Token {
	lexeme := string(first) + l.takeWhile(isAlphaNumeric)

	if tokenType, ok := keywords[lexeme]; ok {
		return Token{Type: tokenType}
	}

	return Token{Type: IDENTIFIER, Literal: lexeme}
}

// advance consumes the next rune. The line/column update for a newline
// is deferred until the following consumption, so the fields always
// describe the rune just returned.
func (l *Lexer) advance() (rune, bool) {
	if l.offset >= len(l.source) {
		return 0, false
	}

	if l.prev == '\n' {
		l.line++
		l.col = 0
	}
	l.col++

	r, size := utf8.DecodeRuneInString(l.source[l.offset:])
	l.offset += size
	l.prev = r

	return r, true
}

func (l *Lexer) peek() (rune, bool) {
	if l.offset >= len(l.source) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.offset:])
	return r, true
}

func (l *Lexer) match(expected rune) bool {
	if r, ok := l.peek(); ok && r == expected {
		l.advance()
		return true
	}
	return false
}

func (l *Lexer) takeWhile(pred func(rune) bool) string {
	var b strings.Builder
	for {
		r, ok := l.peek()
		if !ok || !pred(r) {
			break
		}
		b.WriteRune(r)
		l.advance()
	}
	return b.String()
}

func (l *Lexer) eatWhile(pred func(rune) bool) {
	for {
		r, ok := l.peek()
		if !ok || !pred(r) {
			break
		}
		l.advance()
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isAlphaNumeric(r rune) bool {
	return isAlpha(r) || isDigit(r)
}

// TokenStream is a lazy, forward-only view over one scan of a source
// text. It does not filter whitespace or comments.
type TokenStream struct {
	lexer *Lexer
}

// Tokenize is the entry point for consumers: it never fails, and the
// stream ends when the input runs out.
func Tokenize(source string) *TokenStream {
	return &TokenStream{lexer: NewLexer(source)}
}

// Next returns the next token, or false once the input is exhausted.
func (s *TokenStream) Next() (Token, bool) {
	token := s.lexer.Next()
	if token.Type == EOF {
		return Token{}, false
	}
	return token, true
}
