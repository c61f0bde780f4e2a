// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/pipec-lang/pipec/cerrs"
	"github.com/pipec-lang/pipec/internal/pipec/source"
	"github.com/pipec-lang/pipec/internal/pipec/token"
)

const eofRune rune = -1

// DefaultPathDelimiter is the module-path segment separator this
// implementation picks among the variants spec.md §4.D observes
// (`/` or `\`), per spec.md §9's requirement to choose one and
// document it.
const DefaultPathDelimiter byte = '/'

// Lexer scans one file's bytes into token.Token values. The caller owns
// input and must not mutate it while the Lexer is in use.
type Lexer struct {
	pos       int // byte offset of the current rune
	line, col int // position of the current rune, 1-indexed

	input []byte
	delim byte // path-segment delimiter byte; lexes to token.Slash
}

// New returns a Lexer scanning input from its first byte, using the
// default path delimiter.
func New(input []byte) *Lexer {
	return NewWithDelimiter(input, DefaultPathDelimiter)
}

// NewWithDelimiter returns a Lexer that additionally treats delim as a
// path-segment separator, lexing it to the same token.Slash kind as
// `/` (spec.md §4.D's path grammar does not distinguish which
// character separates segments; internal/config wires this from
// pipec.json's Parser.PathDelimiter).
func NewWithDelimiter(input []byte, delim byte) *Lexer {
	if delim == 0 {
		delim = DefaultPathDelimiter
	}
	return &Lexer{line: 1, col: 1, input: input, delim: delim}
}

// LexError reports a span carrying lexical failure: an unrecognized
// byte, an unterminated string literal, or an unterminated block
// comment (spec.md §4.C).
type LexError struct {
	Span source.Span
	Err  error
}

func (e *LexError) Error() string { return e.Err.Error() }
func (e *LexError) Unwrap() error { return e.Err }

// Next returns the next token in the input. Comments are discarded
// silently; a run of whitespace is collapsed into one Whitespace token
// that the caller is responsible for discarding (spec.md §4.C — the
// parser does this with a dedicated helper, not the lexer). It returns
// a token.EOF token, never an error, once scanning reaches the end of
// input; callers should stop calling Next after observing token.EOF.
func (l *Lexer) Next() (token.Token, error) {
	if err := l.skipComments(); err != nil {
		return token.Token{}, err
	}

	start := l.pos
	if l.isEOF() {
		return token.Token{Kind: token.EOF, Span: source.Span{Begin: start, End: start}}, nil
	}

	if l.isWhitespace() {
		for l.isWhitespace() {
			l.advance()
		}
		return l.tok(token.Whitespace, start), nil
	}

	ch := l.current()
	switch {
	case l.delim != DefaultPathDelimiter && ch == rune(l.delim):
		l.advance()
		return l.tok(token.Slash, start), nil
	case ch == '(':
		l.advance()
		return l.tok(token.LParen, start), nil
	case ch == ')':
		l.advance()
		return l.tok(token.RParen, start), nil
	case ch == '{':
		l.advance()
		return l.tok(token.LBrace, start), nil
	case ch == '}':
		l.advance()
		return l.tok(token.RBrace, start), nil
	case ch == '[':
		l.advance()
		return l.tok(token.LBracket, start), nil
	case ch == ']':
		l.advance()
		return l.tok(token.RBracket, start), nil
	case ch == ',':
		l.advance()
		return l.tok(token.Comma, start), nil
	case ch == ';':
		l.advance()
		return l.tok(token.Semicolon, start), nil
	case ch == '#':
		l.advance()
		return l.tok(token.Hash, start), nil
	case ch == '@':
		l.advance()
		return l.tok(token.At, start), nil
	case ch == '~':
		l.advance()
		return l.tok(token.Tilde, start), nil
	case ch == '.':
		l.advance()
		return l.tok(token.Dot, start), nil
	case ch == ':':
		l.advance()
		if l.current() == ':' {
			l.advance()
			return l.tok(token.DoubleColon, start), nil
		}
		return l.tok(token.Colon, start), nil
	case ch == '/':
		l.advance()
		if l.current() == '=' {
			l.advance()
			return l.tok(token.SlashEq, start), nil
		}
		return l.tok(token.Slash, start), nil
	case ch == '=':
		l.advance()
		switch l.current() {
		case '=':
			l.advance()
			return l.tok(token.EqEq, start), nil
		case '>':
			l.advance()
			return l.tok(token.FatArrow, start), nil
		}
		return l.tok(token.Equal, start), nil
	case ch == '+':
		l.advance()
		if l.current() == '=' {
			l.advance()
			return l.tok(token.PlusEq, start), nil
		}
		return l.tok(token.Plus, start), nil
	case ch == '-':
		l.advance()
		switch l.current() {
		case '=':
			l.advance()
			return l.tok(token.MinusEq, start), nil
		case '>':
			l.advance()
			return l.tok(token.ThinArrow, start), nil
		}
		return l.tok(token.Minus, start), nil
	case ch == '*':
		l.advance()
		if l.current() == '=' {
			l.advance()
			return l.tok(token.StarEq, start), nil
		}
		return l.tok(token.Star, start), nil
	case ch == '%':
		l.advance()
		if l.current() == '=' {
			l.advance()
			return l.tok(token.PercentEq, start), nil
		}
		return l.tok(token.Percent, start), nil
	case ch == '!':
		if l.peek(1) == '=' {
			l.advance()
			l.advance()
			return l.tok(token.NotEq, start), nil
		}
		l.advance()
		return token.Token{}, l.errorHere(start, cerrs.ErrUnexpectedCharacter)
	case ch == '<':
		l.advance()
		if l.current() == '=' {
			l.advance()
			return l.tok(token.LtEq, start), nil
		}
		return l.tok(token.Lt, start), nil
	case ch == '>':
		l.advance()
		if l.current() == '=' {
			l.advance()
			return l.tok(token.GtEq, start), nil
		}
		return l.tok(token.Gt, start), nil
	case ch == '&':
		if l.peek(1) == '&' {
			l.advance()
			l.advance()
			return l.tok(token.AndAnd, start), nil
		}
		l.advance()
		return token.Token{}, l.errorHere(start, cerrs.ErrUnexpectedCharacter)
	case ch == '|':
		if l.peek(1) == '|' {
			l.advance()
			l.advance()
			return l.tok(token.OrOr, start), nil
		}
		l.advance()
		return l.tok(token.Pipe, start), nil
	case ch == '"':
		return l.lexString(start)
	case l.isDigit():
		return l.lexNumber(start)
	case l.isIdentStart():
		return l.lexIdentOrKeyword(start)
	default:
		l.advance()
		return token.Token{}, l.errorHere(start, cerrs.ErrUnexpectedCharacter)
	}
}

func (l *Lexer) tok(kind token.Kind, start int) token.Token {
	return token.Token{Kind: kind, Span: source.Span{Begin: start, End: l.pos}}
}

func (l *Lexer) errorHere(start int, sentinel error) error {
	return &LexError{Span: source.Span{Begin: start, End: l.pos}, Err: sentinel}
}

// skipComments discards "//" line comments and "/* */" block comments
// ahead of the next token; it leaves whitespace alone, since that is
// tokenized by Next itself rather than swallowed here.
func (l *Lexer) skipComments() error {
	for {
		switch {
		case l.current() == '/' && l.peek(1) == '/':
			for !l.isEOF() && l.current() != '\n' {
				l.advance()
			}
		case l.current() == '/' && l.peek(1) == '*':
			start := l.pos
			l.advance()
			l.advance()
			closed := false
			for !l.isEOF() {
				if l.current() == '*' && l.peek(1) == '/' {
					l.advance()
					l.advance()
					closed = true
					break
				}
				l.advance()
			}
			if !closed {
				return &LexError{Span: source.Span{Begin: start, End: l.pos}, Err: cerrs.ErrUnterminatedComment}
			}
		default:
			return nil
		}
	}
}

func (l *Lexer) lexString(start int) (token.Token, error) {
	l.advance() // opening quote
	for {
		if l.isEOF() {
			return token.Token{}, &LexError{Span: source.Span{Begin: start, End: l.pos}, Err: cerrs.ErrUnterminatedString}
		}
		if l.current() == '\\' && !l.isEOF() {
			l.advance()
			if !l.isEOF() {
				l.advance()
			}
			continue
		}
		if l.current() == '"' {
			l.advance()
			return l.tok(token.String, start), nil
		}
		if l.current() == '\n' {
			return token.Token{}, &LexError{Span: source.Span{Begin: start, End: l.pos}, Err: cerrs.ErrUnterminatedString}
		}
		l.advance()
	}
}

// lexNumber reads a run of ASCII digits. A single trailing '.' marks
// the literal Float even with no digits after it (spec.md §4.C).
func (l *Lexer) lexNumber(start int) (token.Token, error) {
	for l.isDigit() {
		l.advance()
	}
	kind := token.Int
	if l.current() == '.' {
		kind = token.Float
		l.advance()
		for l.isDigit() {
			l.advance()
		}
	}
	t := l.tok(token.Digit, start)
	t.Number = kind
	return t, nil
}

func (l *Lexer) lexIdentOrKeyword(start int) (token.Token, error) {
	for l.isIdentContinue() {
		l.advance()
	}
	text := string(l.input[start:l.pos])
	if kind, ok := token.LookupKeyword(text); ok {
		return l.tok(kind, start), nil
	}
	return l.tok(token.Ident, start), nil
}

// current returns the rune at the current position, or eofRune at end
// of input.
func (l *Lexer) current() rune {
	return l.peek(0)
}

// peek returns the nth rune ahead of the current position (0 is the
// current rune) without consuming any input. n is small (never more
// than 3 in this lexer's grammar), so decoding from scratch each call
// is cheap and keeps the scanner free of ring-buffer bookkeeping.
func (l *Lexer) peek(n int) rune {
	off := l.pos
	r := eofRune
	for i := 0; i <= n; i++ {
		if off >= len(l.input) {
			return eofRune
		}
		var w int
		r, w = utf8.DecodeRune(l.input[off:])
		off += w
	}
	return r
}

func (l *Lexer) advance() {
	if l.pos >= len(l.input) {
		return
	}
	r, w := utf8.DecodeRune(l.input[l.pos:])
	l.pos += w
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

func (l *Lexer) isEOF() bool { return l.pos >= len(l.input) }

func (l *Lexer) isWhitespace() bool {
	ch := l.current()
	return ch != eofRune && unicode.IsSpace(ch)
}

func (l *Lexer) isDigit() bool { return isDigitRune(l.current()) }

func isDigitRune(ch rune) bool { return ch >= '0' && ch <= '9' }

// isIdentStart follows spec.md §4.C: identifiers start with an ASCII
// letter (not a digit or underscore).
func (l *Lexer) isIdentStart() bool {
	ch := l.current()
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func (l *Lexer) isIdentContinue() bool {
	ch := l.current()
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || isDigitRune(ch)
}
