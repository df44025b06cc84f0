package internal

import "fmt"

// TokenType identifies the lexical category of a token
type TokenType int

const (
	EOF TokenType = iota - 1

	// Single-character tokens.
	// (, ), {, } ',', ., -, +, ;, /, *
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	COMMA
	DOT
	MINUS
	PLUS
	SEMICOLON
	SLASH
	STAR

	// One or two character tokens.
	// !, !=, =, ==, >, >=, <, <=
	BANG
	BANG_EQUAL
	EQUAL
	EQUAL_EQUAL
	GREATER
	GREATER_EQUAL
	LESS
	LESS_EQUAL

	// Literals.
	// *variable*, string, number
	IDENTIFIER
	STRING
	NUMBER

	// Keywords.
	// and, class, else, false, fun, for, if, nil, or,
	// print, return, super, this, true, var, while
	AND
	CLASS
	ELSE
	FALSE
	FUN
	FOR
	IF
	NIL
	OR
	PRINT
	RETURN
	SUPER
	THIS
	TRUE
	VAR
	WHILE

	// Meaningless lexemes, still part of the stream.
	WHITESPACE
	COMMENT

	// Diagnostics.
	UNKNOWN
	UNTERMINATED
)

// Token is one classified lexeme. Literal carries the identifier text,
// string body or comment text as a string, or the parsed float64 for
// NUMBER. Line and Col are set only on UNTERMINATED.
type Token struct {
	Type    TokenType
	Literal interface{}
	Line    int
	Col     int
}

var tokenNames = map[TokenType]string{
	EOF:           "EOF",
	LEFT_PAREN:    "LEFT_PAREN",
	RIGHT_PAREN:   "RIGHT_PAREN",
	LEFT_BRACE:    "LEFT_BRACE",
	RIGHT_BRACE:   "RIGHT_BRACE",
	COMMA:         "COMMA",
	DOT:           "DOT",
	MINUS:         "MINUS",
	PLUS:          "PLUS",
	SEMICOLON:     "SEMICOLON",
	SLASH:         "SLASH",
	STAR:          "STAR",
	BANG:          "BANG",
	BANG_EQUAL:    "BANG_EQUAL",
	EQUAL:         "EQUAL",
	EQUAL_EQUAL:   "EQUAL_EQUAL",
	GREATER:       "GREATER",
	GREATER_EQUAL: "GREATER_EQUAL",
	LESS:          "LESS",
	LESS_EQUAL:    "LESS_EQUAL",
	IDENTIFIER:    "IDENTIFIER",
	STRING:        "STRING",
	NUMBER:        "NUMBER",
	AND:           "AND",
	CLASS:         "CLASS",
	ELSE:          "ELSE",
	FALSE:         "FALSE",
	FUN:           "FUN",
	FOR:           "FOR",
	IF:            "IF",
	NIL:           "NIL",
	OR:            "OR",
	PRINT:         "PRINT",
	RETURN:        "RETURN",
	SUPER:         "SUPER",
	THIS:          "THIS",
	TRUE:          "TRUE",
	VAR:           "VAR",
	WHILE:         "WHILE",
	WHITESPACE:    "WHITESPACE",
	COMMENT:       "COMMENT",
	UNKNOWN:       "UNKNOWN",
	UNTERMINATED:  "UNTERMINATED",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

func (t Token) String() string {
	switch t.Type {
	case IDENTIFIER, STRING, COMMENT:
		return fmt.Sprintf("%s(%q)", t.Type, t.Literal)
	case NUMBER:
		return fmt.Sprintf("%s(%v)", t.Type, t.Literal)
	case UNTERMINATED:
		return fmt.Sprintf("%s(line %d, col %d)", t.Type, t.Line, t.Col)
	}
	return t.Type.String()
}
