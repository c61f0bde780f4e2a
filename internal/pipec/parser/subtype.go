// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package parser

import (
	"github.com/pipec-lang/pipec/internal/pipec/ast"
	"github.com/pipec-lang/pipec/internal/pipec/token"
)

// parseSubType parses the right-hand side of a `type` declaration's
// `=` (spec.md §4.D). The empty body (no `=`) is handled by the caller.
func (p *parser) parseSubType() ast.SubType {
	switch p.cur().Kind {
	case token.Ident:
		return p.parseNamedSubType()
	case token.LParen:
		return p.parseUnionSubType()
	case token.LBrace:
		return p.parseMapSubType()
	default:
		p.errorExpected([]token.Kind{token.Ident, token.LParen, token.LBrace})
		return ast.SubType{Kind: ast.SubTypeEmpty}
	}
}

func (p *parser) parseNamedSubType() ast.SubType {
	name := p.want(token.Ident)
	if p.at(token.Colon) {
		p.bump()
		inner := p.parseSubType()
		return ast.SubType{Kind: ast.SubTypeNamed, Name: name.Span, Inner: &inner}
	}
	return ast.SubType{Kind: ast.SubTypeName, Name: name.Span}
}

func (p *parser) parseUnionSubType() ast.SubType {
	p.bump() // (
	var members []ast.SubType
	for !p.atEOF() && !p.at(token.RParen) {
		members = append(members, p.parseSubType())
		if p.at(token.Pipe) {
			p.bump()
			continue
		}
		break
	}
	p.want(token.RParen)
	return ast.SubType{Kind: ast.SubTypeUnion, Union: members}
}

func (p *parser) parseMapSubType() ast.SubType {
	p.bump() // {
	fields := make(map[string]ast.SubType)
	for !p.atEOF() && !p.at(token.RBrace) {
		nameTok := p.want(token.Ident)
		p.want(token.Colon)
		fields[nameText(p.src, nameTok.Span)] = p.parseSubType()
		if p.at(token.Comma) {
			p.bump()
			continue
		}
		break
	}
	p.want(token.RBrace)
	return ast.SubType{Kind: ast.SubTypeMap, Fields: fields}
}
