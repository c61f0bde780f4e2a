// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package parser

import (
	"github.com/pipec-lang/pipec/cerrs"
	"github.com/pipec-lang/pipec/internal/pipec/ast"
	"github.com/pipec-lang/pipec/internal/pipec/lexer"
	"github.com/pipec-lang/pipec/internal/pipec/source"
	"github.com/pipec-lang/pipec/internal/pipec/token"
)

// parser holds the state for one file's recursive descent. Module
// resolution constructs a fresh parser per file, all sharing the same
// collector and recursion guard (spec.md §4.D.1).
type parser struct {
	lx     *lexer.Lexer
	store  *source.Store
	fileID source.FileID
	src    []byte
	dir    string // directory of the file being parsed, for module resolution

	guard *Guard
	coll  *collector
	delim byte

	// cur/next prefetch ring; Whitespace is never visible here (spec.md
	// §9). Only buf[0] (cur) is read by any production — buf[1] exists
	// so bump can slide the window forward without a fallible lex call
	// on the hot path, not to expose a second token of grammar lookahead.
	buf    [2]token.Token
	filled int
	last   source.Span
}

// Parse parses the file identified by rootID and, recursively, every
// filesystem module it declares, using the default path delimiter
// (lexer.DefaultPathDelimiter). It returns the root file's top-level
// nodes and every diagnostic collected across the whole run. In
// ModeFailFast the returned error is non-nil as soon as the first
// diagnostic is produced, anywhere in the recursion.
func Parse(store *source.Store, rootID source.FileID, mode Mode) (nodes []ast.Node, diags []Diagnostic, err error) {
	return ParseWithDelimiter(store, rootID, mode, lexer.DefaultPathDelimiter)
}

// ParseWithDelimiter is Parse, but lexes delim as an additional path
// segment separator (spec.md §4.D, §9 — the "implementations MUST pick
// one delimiter" choice, made runtime-configurable via
// internal/config's Parser.PathDelimiter).
func ParseWithDelimiter(store *source.Store, rootID source.FileID, mode Mode, delim byte) (nodes []ast.Node, diags []Diagnostic, err error) {
	coll := &collector{mode: mode}
	guard := NewGuard()

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if io, ok := r.(ioBailout); ok {
			err = io.err
			return
		}
		if b, ok := r.(bailout); ok && mode == ModeFailFast {
			err = &ParseError{Diagnostic: b.diag}
			return
		}
		panic(r)
	}()

	nodes = parseFile(store, rootID, guard, coll, delim)
	return nodes, coll.diags, err
}

// parseFile parses one file's top-level nodes. It is called once for
// the compilation root and once more for every module resolved from
// the filesystem.
func parseFile(store *source.Store, fileID source.FileID, guard *Guard, coll *collector, delim byte) []ast.Node {
	src := store.Bytes(fileID)
	p := &parser{
		lx:     lexer.NewWithDelimiter(src, delim),
		store:  store,
		fileID: fileID,
		src:    src,
		dir:    dirOf(store.Path(fileID)),
		guard:  guard,
		coll:   coll,
		delim:  delim,
	}
	p.fill()

	var out []ast.Node
	for !p.atEOF() {
		node, ok := p.parseTopLevel()
		if !ok {
			p.recoverToTopLevel()
			continue
		}
		out = append(out, node)
	}
	return out
}

func dirOf(path string) string {
	i := len(path) - 1
	for i >= 0 && path[i] != '/' && path[i] != '\\' {
		i--
	}
	if i < 0 {
		return "."
	}
	return path[:i]
}

// ---- lookahead ----

func (p *parser) fill() {
	for p.filled < len(p.buf) {
		tok, err := p.nextSignificant()
		if err != nil {
			// A lex error is reported like any other diagnostic and
			// represented downstream as an EOF so parsing can wind down.
			var le *lexer.LexError
			span := source.Span{}
			if ok := asLexError(err, &le); ok {
				span = le.Span
			}
			p.coll.record(Diagnostic{File: p.fileID, Span: span, Err: err, Found: "invalid input"})
			tok = token.Token{Kind: token.EOF, Span: span}
		}
		p.buf[p.filled] = tok
		p.filled++
	}
}

func asLexError(err error, target **lexer.LexError) bool {
	if le, ok := err.(*lexer.LexError); ok {
		*target = le
		return true
	}
	return false
}

// nextSignificant returns the next non-Whitespace token, discarding
// whitespace the way the parser's dedicated helper is described to do
// (spec.md §4.C, §4.D).
func (p *parser) nextSignificant() (token.Token, error) {
	for {
		tok, err := p.lx.Next()
		if err != nil {
			return token.Token{}, err
		}
		if tok.Kind != token.Whitespace {
			return tok, nil
		}
	}
}

func (p *parser) cur() token.Token { return p.buf[0] }

func (p *parser) atEOF() bool { return p.cur().Kind == token.EOF }

func (p *parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *parser) atAny(ks ...token.Kind) bool {
	for _, k := range ks {
		if p.cur().Kind == k {
			return true
		}
	}
	return false
}

// bump consumes and returns the current token, sliding the lookahead
// window forward by one.
func (p *parser) bump() token.Token {
	tok := p.buf[0]
	p.last = tok.Span
	p.buf[0] = p.buf[1]
	if tok.Kind != token.EOF {
		next, err := p.nextSignificant()
		if err != nil {
			var le *lexer.LexError
			span := source.Span{}
			if asLexError(err, &le) {
				span = le.Span
			}
			p.coll.record(Diagnostic{File: p.fileID, Span: span, Err: err, Found: "invalid input"})
			next = token.Token{Kind: token.EOF, Span: span}
		}
		p.buf[1] = next
	}
	return tok
}

// want consumes the current token if it matches k; otherwise it
// records a diagnostic and synthesizes a zero-width token of kind k so
// that parsing can continue (batch mode) or panics into Parse's
// recover (fail-fast mode).
func (p *parser) want(k token.Kind) token.Token {
	if p.at(k) {
		return p.bump()
	}
	p.errorExpected([]token.Kind{k})
	return token.Token{Kind: k, Span: p.insertionSpan()}
}

func (p *parser) wantOneOf(ks ...token.Kind) token.Token {
	if p.atAny(ks...) {
		return p.bump()
	}
	p.errorExpected(ks)
	return token.Token{Kind: ks[0], Span: p.insertionSpan()}
}

func (p *parser) insertionSpan() source.Span {
	s := p.cur().Span
	return source.Span{Begin: s.Begin, End: s.Begin}
}

func (p *parser) errorExpected(ks []token.Kind) {
	expected := make([]string, len(ks))
	for i, k := range ks {
		expected[i] = k.String()
	}
	sentinel := error(cerrs.ErrUnexpectedToken)
	if p.atEOF() {
		sentinel = cerrs.ErrUnexpectedEOF
	}
	p.coll.record(Diagnostic{
		File:     p.fileID,
		Span:     p.cur().Span,
		Err:      sentinel,
		Expected: expected,
		Found:    p.foundDesc(),
	})
}

func (p *parser) foundDesc() string {
	if p.atEOF() {
		return "EOF"
	}
	return p.cur().Kind.String()
}

// recoverToTopLevel discards tokens until one that can start a
// top-level production, or EOF, matching the spec's batch-mode
// resynchronization requirement (spec.md §4.D.2).
func (p *parser) recoverToTopLevel() {
	for !p.atEOF() && !p.atTopLevelStart() {
		p.bump()
	}
}

func (p *parser) atTopLevelStart() bool {
	return p.atAny(
		token.KeywordUsing, token.KeywordModule, token.KeywordComponent,
		token.KeywordViewport, token.KeywordFunction, token.KeywordType,
		token.KeywordTrait, token.KeywordImplement, token.KeywordPublic,
		token.At,
	)
}

func (p *parser) span(begin source.Span) source.Span {
	return source.Cover(begin, p.last)
}
