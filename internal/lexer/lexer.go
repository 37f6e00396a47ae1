// Package lexer scans source text and produces a stream of tokens.
package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/varlet-dev/varlet/internal/token"
)

// Lexer holds the state of the scanner as it walks the input string.
type Lexer struct {
	// input is the full source text being scanned
	input string

	// filename of the input, used in positions and error messages
	filename string

	// position is the byte offset of ch within the input
	position int

	// readPosition is the byte offset following ch
	readPosition int

	// ch is the current character under examination
	ch rune

	// line is the 0-indexed line number of the current character
	line int

	// lineStart is the byte offset of the start of the current line
	lineStart int
}

// State is an opaque snapshot of lexer state, used to backtrack.
type State struct {
	position     int
	readPosition int
	ch           rune
	line         int
	lineStart    int
}

// New returns a Lexer for the given input string.
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// SetFilename sets the filename associated with the input.
func (l *Lexer) SetFilename(filename string) {
	l.filename = filename
}

// Filename returns the filename associated with the input.
func (l *Lexer) Filename() string {
	return l.filename
}

// SaveState captures the current lexer state for later restoration.
func (l *Lexer) SaveState() State {
	return State{
		position:     l.position,
		readPosition: l.readPosition,
		ch:           l.ch,
		line:         l.line,
		lineStart:    l.lineStart,
	}
}

// RestoreState rewinds the lexer to a previously saved state.
func (l *Lexer) RestoreState(s State) {
	l.position = s.position
	l.readPosition = s.readPosition
	l.ch = s.ch
	l.line = s.line
	l.lineStart = s.lineStart
}

// GetLineText returns the full line of source text containing the token.
func (l *Lexer) GetLineText(t token.Token) string {
	start := t.StartPosition.LineStart
	if start < 0 || start > len(l.input) {
		return ""
	}
	end := strings.IndexByte(l.input[start:], '\n')
	if end == -1 {
		return l.input[start:]
	}
	return l.input[start : start+end]
}

// Next returns the next token from the input. Once the input is exhausted,
// EOF tokens are returned indefinitely.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespace()

	// Comments run to the end of the line
	for l.ch == '#' || (l.ch == '/' && l.peekChar() == '/') {
		l.skipComment()
		l.skipWhitespace()
	}

	pos := l.currentPosition()

	switch l.ch {
	case '\n':
		tok := l.newToken(token.NEWLINE, "\n", pos)
		l.readChar()
		l.line++
		l.lineStart = l.position
		return tok, nil
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.newToken(token.EQ, "==", pos), nil
		}
		l.readChar()
		return l.newToken(token.ASSIGN, "=", pos), nil
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.newToken(token.NOT_EQ, "!=", pos), nil
		}
		l.readChar()
		return l.newToken(token.BANG, "!", pos), nil
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.newToken(token.LT_EQUALS, "<=", pos), nil
		}
		l.readChar()
		return l.newToken(token.LT, "<", pos), nil
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.newToken(token.GT_EQUALS, ">=", pos), nil
		}
		l.readChar()
		return l.newToken(token.GT, ">", pos), nil
	case '.':
		if l.peekChar() == '.' {
			l.readChar()
			if l.peekChar() != '.' {
				tok := l.newToken(token.ILLEGAL, "..", pos)
				l.readChar()
				return tok, fmt.Errorf("unexpected \"..\" (line %d)", pos.LineNumber())
			}
			l.readChar()
			l.readChar()
			return l.newToken(token.SPREAD, "...", pos), nil
		}
		l.readChar()
		return l.newToken(token.PERIOD, ".", pos), nil
	case '+':
		l.readChar()
		return l.newToken(token.PLUS, "+", pos), nil
	case '-':
		l.readChar()
		return l.newToken(token.MINUS, "-", pos), nil
	case '*':
		l.readChar()
		return l.newToken(token.ASTERISK, "*", pos), nil
	case '/':
		l.readChar()
		return l.newToken(token.SLASH, "/", pos), nil
	case ',':
		l.readChar()
		return l.newToken(token.COMMA, ",", pos), nil
	case ';':
		l.readChar()
		return l.newToken(token.SEMICOLON, ";", pos), nil
	case '(':
		l.readChar()
		return l.newToken(token.LPAREN, "(", pos), nil
	case ')':
		l.readChar()
		return l.newToken(token.RPAREN, ")", pos), nil
	case '[':
		l.readChar()
		return l.newToken(token.LBRACKET, "[", pos), nil
	case ']':
		l.readChar()
		return l.newToken(token.RBRACKET, "]", pos), nil
	case '{':
		l.readChar()
		return l.newToken(token.LBRACE, "{", pos), nil
	case '}':
		l.readChar()
		return l.newToken(token.RBRACE, "}", pos), nil
	case '"', '\'':
		return l.readString(l.ch, pos)
	case 0:
		return token.Token{
			Type:          token.EOF,
			Literal:       "",
			StartPosition: pos,
			EndPosition:   pos,
		}, nil
	}

	if isDigit(l.ch) {
		return l.readNumber(pos)
	}
	if isIdentStart(l.ch) {
		lit := l.readIdentifier()
		return l.newToken(token.LookupIdentifier(lit), lit, pos), nil
	}

	lit := string(l.ch)
	l.readChar()
	return l.newToken(token.ILLEGAL, lit, pos), fmt.Errorf("unexpected character %q (line %d)", lit, pos.LineNumber())
}

func (l *Lexer) newToken(typ token.Type, literal string, start token.Position) token.Token {
	end := start
	if n := len(literal); n > 0 {
		end = start.Advance(n - 1)
	}
	return token.Token{
		Type:          typ,
		Literal:       literal,
		StartPosition: start,
		EndPosition:   end,
	}
}

func (l *Lexer) currentPosition() token.Position {
	return token.Position{
		Char:      l.position,
		LineStart: l.lineStart,
		Line:      l.line,
		Column:    l.position - l.lineStart,
		File:      l.filename,
	}
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		return
	}
	r, width := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += width
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) skipComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isIdentPart(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) readNumber(pos token.Position) (token.Token, error) {
	start := l.position
	typ := token.INT
	for isDigit(l.ch) {
		l.readChar()
	}
	// A period followed by a digit makes this a float. A period followed by
	// anything else (e.g. "...") is left for the next token.
	if l.ch == '.' && isDigit(l.peekChar()) {
		typ = token.FLOAT
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	lit := l.input[start:l.position]
	if isIdentStart(l.ch) {
		bad := lit + string(l.ch)
		l.readChar()
		tok := l.newToken(token.ILLEGAL, bad, pos)
		return tok, fmt.Errorf("invalid number literal %q (line %d)", bad, pos.LineNumber())
	}
	return l.newToken(typ, lit, pos), nil
}

func (l *Lexer) readString(quote rune, pos token.Position) (token.Token, error) {
	var sb strings.Builder
	l.readChar() // consume the opening quote
	for l.ch != quote {
		if l.ch == 0 || l.ch == '\n' {
			tok := l.newToken(token.ILLEGAL, sb.String(), pos)
			return tok, fmt.Errorf("unterminated string literal (line %d)", pos.LineNumber())
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case 'r':
				sb.WriteRune('\r')
			case '\\':
				sb.WriteRune('\\')
			case '"':
				sb.WriteRune('"')
			case '\'':
				sb.WriteRune('\'')
			default:
				tok := l.newToken(token.ILLEGAL, sb.String(), pos)
				return tok, fmt.Errorf("invalid escape sequence \"\\%c\" (line %d)", l.ch, pos.LineNumber())
			}
			l.readChar()
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	l.readChar() // consume the closing quote
	value := sb.String()
	tok := token.Token{
		Type:          token.STRING,
		Literal:       value,
		StartPosition: pos,
		EndPosition:   pos.Advance(l.position - pos.Char - 1),
	}
	return tok, nil
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}
