// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package parser

import (
	"github.com/pipec-lang/pipec/cerrs"
	"github.com/pipec-lang/pipec/internal/pipec/ast"
	"github.com/pipec-lang/pipec/internal/pipec/source"
	"github.com/pipec-lang/pipec/internal/pipec/token"
)

// parsePath parses a `/`-delimited path (spec.md §4.D, worked example
// S2). Each segment is either a plain name with optional trailing
// generics, or a parenthesized group of sub-paths.
func (p *parser) parsePath() ast.Path {
	var segs []ast.Segment
	segs = append(segs, p.parseSegment())
	for p.at(token.Slash) {
		p.bump()
		segs = append(segs, p.parseSegment())
	}
	return ast.Path{Segments: segs}
}

func (p *parser) parseSegment() ast.Segment {
	if p.at(token.LParen) {
		p.bump()
		var group []ast.Path
		if !p.at(token.RParen) {
			group = append(group, p.parsePath())
			for p.at(token.Comma) {
				p.bump()
				if p.at(token.RParen) {
					break
				}
				group = append(group, p.parsePath())
			}
		}
		p.want(token.RParen)
		return ast.Segment{Kind: ast.SegmentMulti, Group: group}
	}

	if p.at(token.String) {
		// A string literal used as a path source names its segment by
		// the quoted text, with the surrounding quotes stripped
		// (spec.md §4.D's expression table: "String -> path-expression").
		str := p.bump()
		return ast.Segment{Kind: ast.SegmentSingly, Name: trimQuotes(str.Span)}
	}

	name := p.want(token.Ident)
	generics := p.parseGenerics()
	return ast.Segment{Kind: ast.SegmentSingly, Name: name.Span, Generics: generics}
}

// trimQuotes narrows a String token's span to exclude its opening and
// closing '"' bytes.
func trimQuotes(s source.Span) source.Span {
	if s.End-s.Begin < 2 {
		return s
	}
	return source.Span{Begin: s.Begin + 1, End: s.End - 1}
}

// parseGenerics parses an optional `[ param (, param)* ]` list trailing
// a declaration name or path segment (spec.md §4.D).
func (p *parser) parseGenerics() ast.Generics {
	if !p.at(token.LBracket) {
		return ast.Generics{}
	}
	p.bump()

	var params []ast.Generic
	if !p.at(token.RBracket) {
		params = p.appendGeneric(params, p.parseGeneric())
		for p.at(token.Comma) {
			p.bump()
			if p.at(token.RBracket) {
				break
			}
			params = p.appendGeneric(params, p.parseGeneric())
		}
	}
	p.want(token.RBracket)
	return ast.Generics{Params: params}
}

// appendGeneric appends g to params, recording a diagnostic instead of
// a duplicate entry if a generic parameter of the same name already
// appears earlier in the list (spec.md §7's ErrDuplicateGenerics).
func (p *parser) appendGeneric(params []ast.Generic, g ast.Generic) []ast.Generic {
	name := nameText(p.src, g.Name)
	for _, existing := range params {
		if nameText(p.src, existing.Name) == name {
			p.coll.record(Diagnostic{File: p.fileID, Span: g.Name, Err: cerrs.ErrDuplicateGenerics, Found: name})
			return params
		}
	}
	return append(params, g)
}

func (p *parser) parseGeneric() ast.Generic {
	kind := ast.GenericType
	if p.at(token.Hash) {
		p.bump()
		kind = ast.GenericLifetime
	}
	name := p.want(token.Ident)

	var bounds []ast.Path
	if p.at(token.Colon) {
		p.bump()
		bounds = p.parseTraitBounds()
	}
	return ast.Generic{Name: name.Span, Kind: kind, Bounds: bounds}
}

// parseTraitBounds parses a `+`-joined list of paths, used both after a
// generic parameter's `:` and after a trait declaration's `:`.
func (p *parser) parseTraitBounds() []ast.Path {
	var bounds []ast.Path
	bounds = append(bounds, p.parsePath())
	for p.at(token.Plus) {
		p.bump()
		bounds = append(bounds, p.parsePath())
	}
	return bounds
}

// parseParams parses a function or viewport parameter list:
// `( name: Type (, name: Type)* ,? )` (spec.md §4.D).
func (p *parser) parseParams() []ast.Param {
	p.want(token.LParen)

	var params []ast.Param
	for !p.atEOF() && !p.at(token.RParen) {
		nameTok := p.want(token.Ident)
		p.want(token.Colon)
		typ := p.parsePath()
		params = append(params, ast.Param{Name: nameTok.Span, Type: typ})

		if p.at(token.Comma) {
			p.bump()
			continue
		}
		break
	}
	p.want(token.RParen)
	return params
}
