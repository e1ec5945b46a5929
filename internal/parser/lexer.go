package parser

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// tokenKind represents the type of a token.
type tokenKind uint8

const (
	tokError tokenKind = iota
	tokEOF

	tokIdent  // uint, firrtl, add, flip
	tokValue  // %a, %0 (stored without the %)
	tokSymbol // @adder (stored without the @)
	tokInt    // 42, -7
	tokString // "out"

	tokLParen   // (
	tokRParen   // )
	tokLBrace   // {
	tokRBrace   // }
	tokLBracket // [
	tokRBracket // ]
	tokLAngle   // <
	tokRAngle   // >
	tokColon    // :
	tokComma    // ,
	tokEq       // =
	tokDot      // .
)

// token is a lexed token with its source line for diagnostics.
type token struct {
	kind tokenKind
	text string
	line int
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokValue:
		return "%" + t.text
	case tokSymbol:
		return "@" + t.text
	case tokString:
		return fmt.Sprintf("%q", t.text)
	default:
		return t.text
	}
}

// lexer scans assembly text into tokens. Comments run from // to the
// end of the line; whitespace (including newlines) only separates
// tokens and carries no meaning of its own.
type lexer struct {
	src  string
	pos  int
	line int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1}
}

// lex scans the whole input. On a bad character it emits a single
// tokError carrying the offending text and stops.
func (l *lexer) lex() []token {
	var toks []token
	for {
		t := l.next()
		toks = append(toks, t)
		if t.kind == tokEOF || t.kind == tokError {
			return toks
		}
	}
}

func (l *lexer) next() token {
	l.skipSpace()
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: l.line}
	}
	line := l.line
	c := l.src[l.pos]
	switch {
	case c == '%':
		l.pos++
		return token{kind: tokValue, text: l.word(), line: line}
	case c == '@':
		l.pos++
		return token{kind: tokSymbol, text: l.word(), line: line}
	case c == '"':
		return l.stringLit()
	case c == '-' || isDigit(rune(c)):
		return l.number()
	case isWordStart(rune(c)):
		return token{kind: tokIdent, text: l.word(), line: line}
	}

	l.pos++
	punct := map[byte]tokenKind{
		'(': tokLParen, ')': tokRParen,
		'{': tokLBrace, '}': tokRBrace,
		'[': tokLBracket, ']': tokRBracket,
		'<': tokLAngle, '>': tokRAngle,
		':': tokColon, ',': tokComma,
		'=': tokEq, '.': tokDot,
	}
	if k, ok := punct[c]; ok {
		return token{kind: k, text: string(c), line: line}
	}
	return token{kind: tokError, text: string(c), line: line}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		switch {
		case l.src[l.pos] == '\n':
			l.line++
			l.pos++
		case l.src[l.pos] == ' ' || l.src[l.pos] == '\t' || l.src[l.pos] == '\r':
			l.pos++
		case l.pos+1 < len(l.src) && l.src[l.pos] == '/' && l.src[l.pos+1] == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

// word consumes an identifier run. Value and symbol names share the
// identifier character set.
func (l *lexer) word() string {
	start := l.pos
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !isWordPart(r) {
			break
		}
		l.pos += size
	}
	return l.src[start:l.pos]
}

func (l *lexer) number() token {
	line := l.line
	start := l.pos
	if l.src[l.pos] == '-' {
		l.pos++
	}
	digits := 0
	for l.pos < len(l.src) && isDigit(rune(l.src[l.pos])) {
		l.pos++
		digits++
	}
	if digits == 0 {
		return token{kind: tokError, text: l.src[start:l.pos], line: line}
	}
	return token{kind: tokInt, text: l.src[start:l.pos], line: line}
}

func (l *lexer) stringLit() token {
	line := l.line
	l.pos++ // opening quote
	start := l.pos
	for l.pos < len(l.src) && l.src[l.pos] != '"' && l.src[l.pos] != '\n' {
		l.pos++
	}
	if l.pos >= len(l.src) || l.src[l.pos] != '"' {
		return token{kind: tokError, text: l.src[start-1 : l.pos], line: line}
	}
	text := l.src[start:l.pos]
	l.pos++ // closing quote
	return token{kind: tokString, text: text, line: line}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isWordStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isWordPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
