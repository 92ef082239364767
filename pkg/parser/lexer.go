package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rhino1998/configlang/pkg/operators"
)

const (
	multilineOpen  = "#%%%"
	multilineClose = "%%%#"
)

// Limits bounds the length of identifiers and string literals. Longer lexemes
// are consumed whole but truncated, and the token is marked Truncated. A
// non-positive limit disables truncation.
type Limits struct {
	MaxNameLength   int
	MaxStringLength int
}

var DefaultLimits = Limits{
	MaxNameLength:   31,
	MaxStringLength: 1023,
}

// Lexer produces tokens on demand from a source buffer. Once it has returned
// EOF it keeps returning EOF. Literal text is copied from the source bytes
// unchanged, including bytes that are not valid UTF-8.
type Lexer struct {
	name   string
	src    string
	pos    int
	line   int
	limits Limits
}

func NewLexer(name, source string, limits Limits) *Lexer {
	return &Lexer{
		name:   name,
		src:    source,
		line:   1,
		limits: limits,
	}
}

func (l *Lexer) isEOF() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) current() rune {
	return l.peekRune(0)
}

// peekRune decodes the rune offset runes ahead of the cursor, or 0 past the
// end of input.
func (l *Lexer) peekRune(offset int) rune {
	i := l.pos
	for {
		if i >= len(l.src) {
			return 0
		}
		r, width := utf8.DecodeRuneInString(l.src[i:])
		if offset == 0 {
			return r
		}
		offset--
		i += width
	}
}

func (l *Lexer) hasPrefix(s string) bool {
	return strings.HasPrefix(l.src[l.pos:], s)
}

func (l *Lexer) advance() {
	if l.isEOF() {
		return
	}
	r, width := utf8.DecodeRuneInString(l.src[l.pos:])
	if r == '\n' {
		l.line++
	}
	l.pos += width
}

func (l *Lexer) advanceN(n int) {
	for range n {
		l.advance()
	}
}

func (l *Lexer) skipWhitespace() {
	for !l.isEOF() {
		switch l.current() {
		case ' ', '\t', '\r':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) skipComment() {
	for !l.isEOF() && l.current() != '\n' {
		l.advance()
	}
}

func (l *Lexer) position() Position {
	return Position{File: l.name, Line: l.line}
}

func (l *Lexer) Next() Token {
	for {
		l.skipWhitespace()
		if l.current() != '#' || l.hasPrefix(multilineOpen) {
			break
		}
		l.skipComment()
	}

	pos := l.position()
	if l.isEOF() {
		return Token{Kind: EOF, Position: pos}
	}

	c := l.current()
	switch {
	case c == '\n':
		l.advance()
		return Token{Kind: Newline, Text: "\n", Position: pos}
	case l.hasPrefix(multilineOpen):
		l.advanceN(len(multilineOpen))
		return l.lexMultiline(pos)
	case c == '"':
		return l.lexString(pos)
	case isDigit(c) || (c == '-' && isDigit(l.peekRune(1))):
		return l.lexNumber(pos)
	case isIdentStart(c):
		return l.lexIdentifier(pos)
	default:
		return l.lexOperator(pos)
	}
}

func (l *Lexer) lexMultiline(pos Position) Token {
	if l.hasPrefix("\r\n") {
		l.advanceN(2)
	} else if l.current() == '\n' {
		l.advance()
	}

	start := l.pos
	for !l.hasPrefix(multilineClose) {
		if l.isEOF() {
			return Token{Kind: Illegal, Err: ErrUnterminatedMultiline, Position: pos}
		}
		l.advance()
	}
	content := l.src[start:l.pos]
	l.advanceN(len(multilineClose))

	if strings.HasSuffix(content, "\r\n") {
		content = strings.TrimSuffix(content, "\r\n")
	} else {
		content = strings.TrimSuffix(content, "\n")
	}
	text, truncated := truncate(content, l.limits.MaxStringLength)

	return Token{Kind: String, Text: text, Truncated: truncated, Position: pos}
}

func (l *Lexer) lexString(pos Position) Token {
	l.advance()

	start := l.pos
	for l.current() != '"' {
		if l.isEOF() || l.current() == '\n' {
			return Token{Kind: Illegal, Err: ErrUnterminatedString, Position: pos}
		}
		l.advance()
	}
	content := l.src[start:l.pos]
	l.advance()

	text, truncated := truncate(content, l.limits.MaxStringLength)

	return Token{Kind: String, Text: text, Truncated: truncated, Position: pos}
}

func (l *Lexer) lexNumber(pos Position) Token {
	start := l.pos
	if l.current() == '-' {
		l.advance()
	}
	for isDigit(l.current()) {
		l.advance()
	}
	text := l.src[start:l.pos]

	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Token{
			Kind:     Illegal,
			Text:     text,
			Err:      fmt.Errorf("%w: integer literal %s out of range", ErrSyntax, text),
			Position: pos,
		}
	}

	return Token{Kind: Int, Text: text, Int: n, Position: pos}
}

func (l *Lexer) lexIdentifier(pos Position) Token {
	start := l.pos
	for isIdentPart(l.current()) {
		l.advance()
	}
	text := l.src[start:l.pos]

	if kind, ok := keywords[Keyword(text)]; ok {
		return Token{Kind: kind, Text: text, Position: pos}
	}

	text, truncated := truncate(text, l.limits.MaxNameLength)

	return Token{Kind: Ident, Text: text, Truncated: truncated, Position: pos}
}

func (l *Lexer) lexOperator(pos Position) Token {
	c := l.current()
	l.advance()

	comparison := func(op operators.Operator) Token {
		return Token{Kind: Comparison, Text: string(op), Operator: op, Position: pos}
	}

	switch c {
	case '{':
		return Token{Kind: LBrace, Text: "{", Position: pos}
	case '}':
		return Token{Kind: RBrace, Text: "}", Position: pos}
	case '=':
		if l.current() == '=' {
			l.advance()
			return comparison(operators.Equal)
		}
		return Token{Kind: Assign, Text: "=", Position: pos}
	case '!':
		if l.current() == '=' {
			l.advance()
			return comparison(operators.NotEqual)
		}
	case '>':
		if l.current() == '=' {
			l.advance()
			return comparison(operators.GreaterThanOrEqual)
		}
		return comparison(operators.GreaterThan)
	case '<':
		if l.current() == '=' {
			l.advance()
			return comparison(operators.LessThanOrEqual)
		}
		return comparison(operators.LessThan)
	}

	return Token{
		Kind:     Illegal,
		Text:     string(c),
		Err:      fmt.Errorf("%w: unexpected character %q", ErrSyntax, c),
		Position: pos,
	}
}

func truncate(s string, max int) (string, bool) {
	if max <= 0 {
		return s, false
	}

	i := 0
	for n := 0; i < len(s); n++ {
		if n == max {
			return s[:i], true
		}
		_, width := utf8.DecodeRuneInString(s[i:])
		i += width
	}

	return s, false
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}
