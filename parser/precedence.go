package parser

import "github.com/varlet-dev/varlet/internal/token"

// Precedence order for operators
const (
	_ int = iota
	LOWEST
	ASSIGN      // =
	EQUALS      // == or !=
	LESSGREATER // > or <
	SUM         // + or -
	PRODUCT     // * or /
	PREFIX      // -X or !X
	CALL        // f(x)
	INDEX       // arr[index]
	HIGHEST
)

// Precedences for each token type
var precedences = map[token.Type]int{
	token.ASSIGN:    ASSIGN,
	token.EQ:        EQUALS,
	token.NOT_EQ:    EQUALS,
	token.LT:        LESSGREATER,
	token.LT_EQUALS: LESSGREATER,
	token.GT:        LESSGREATER,
	token.GT_EQUALS: LESSGREATER,
	token.PLUS:      SUM,
	token.MINUS:     SUM,
	token.ASTERISK:  PRODUCT,
	token.SLASH:     PRODUCT,
	token.LPAREN:    CALL,
	token.LBRACKET:  INDEX,
}
