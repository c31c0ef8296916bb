package fgd

import "fmt"

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokAt
	tokIdent
	tokString
	tokNumber
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokEquals
	tokColon
	tokComma
	tokPlus
)

type token struct {
	kind tokenKind
	text string
	line int
}

// lexer produces FGD tokens. It handles // comments, quoted strings
// (no escape sequences, matching the format), signed numbers, and
// identifier characters including '.' (used in value types).
type lexer struct {
	src  string
	pos  int
	line int
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	start := l.line
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: start}, nil
	}

	c := l.src[l.pos]
	switch c {
	case '@':
		l.pos++
		return token{kind: tokAt, text: "@", line: start}, nil
	case '(':
		l.pos++
		return token{kind: tokLParen, text: "(", line: start}, nil
	case ')':
		l.pos++
		return token{kind: tokRParen, text: ")", line: start}, nil
	case '[':
		l.pos++
		return token{kind: tokLBracket, text: "[", line: start}, nil
	case ']':
		l.pos++
		return token{kind: tokRBracket, text: "]", line: start}, nil
	case '=':
		l.pos++
		return token{kind: tokEquals, text: "=", line: start}, nil
	case ':':
		l.pos++
		return token{kind: tokColon, text: ":", line: start}, nil
	case ',':
		l.pos++
		return token{kind: tokComma, text: ",", line: start}, nil
	case '+':
		l.pos++
		return token{kind: tokPlus, text: "+", line: start}, nil
	case '"':
		return l.lexString()
	}

	if c == '-' || isDigit(c) {
		return l.lexNumber()
	}
	if isIdentStart(c) {
		return l.lexIdent()
	}
	return token{}, fmt.Errorf("unexpected character %q", c)
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

func (l *lexer) lexString() (token, error) {
	start := l.line
	l.pos++ // opening quote
	begin := l.pos
	for l.pos < len(l.src) {
		if l.src[l.pos] == '"' {
			text := l.src[begin:l.pos]
			l.pos++
			return token{kind: tokString, text: text, line: start}, nil
		}
		if l.src[l.pos] == '\n' {
			l.line++
		}
		l.pos++
	}
	return token{}, fmt.Errorf("unterminated string literal")
}

func (l *lexer) lexNumber() (token, error) {
	start := l.line
	begin := l.pos
	if l.src[l.pos] == '-' {
		l.pos++
	}
	for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '.') {
		l.pos++
	}
	if l.pos == begin+1 && l.src[begin] == '-' {
		return token{}, fmt.Errorf("unexpected character %q", '-')
	}
	return token{kind: tokNumber, text: l.src[begin:l.pos], line: start}, nil
}

func (l *lexer) lexIdent() (token, error) {
	start := l.line
	begin := l.pos
	for l.pos < len(l.src) && isIdentChar(l.src[l.pos]) {
		l.pos++
	}
	return token{kind: tokIdent, text: l.src[begin:l.pos], line: start}, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '.'
}
