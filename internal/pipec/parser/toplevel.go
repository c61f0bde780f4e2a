// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package parser

import (
	"github.com/pipec-lang/pipec/cerrs"
	"github.com/pipec-lang/pipec/internal/pipec/ast"
	"github.com/pipec-lang/pipec/internal/pipec/token"
)

// parseTopLevel dispatches on the current token to one of the
// productions in spec.md §4.D. It returns ok == false when the
// current token starts none of them; the caller resynchronizes.
func (p *parser) parseTopLevel() (ast.Node, bool) {
	switch p.cur().Kind {
	case token.KeywordUsing:
		return p.parseUsing()
	case token.KeywordModule:
		return p.parseModule()
	case token.KeywordFunction:
		return p.parseFunction()
	case token.KeywordViewport:
		return p.parseViewport()
	case token.KeywordComponent:
		return p.parseComponent()
	case token.KeywordType:
		return p.parseType()
	case token.KeywordTrait:
		return p.parseTrait()
	case token.KeywordImplement:
		return p.parseImplement()
	case token.KeywordPublic:
		return p.parsePublic()
	case token.At:
		return p.parseAttributed()
	default:
		p.errorExpected([]token.Kind{
			token.KeywordUsing, token.KeywordModule, token.KeywordFunction,
			token.KeywordViewport, token.KeywordComponent, token.KeywordType,
			token.KeywordTrait, token.KeywordImplement, token.KeywordPublic, token.At,
		})
		return ast.Node{}, false
	}
}

func (p *parser) parseUsing() (ast.Node, bool) {
	begin := p.cur().Span
	p.bump() // using
	path := p.parsePath()
	p.want(token.Semicolon)
	return ast.Node{Kind: ast.NodeUsingStatement, Span: p.span(begin), Using: path}, true
}

func (p *parser) parseModule() (ast.Node, bool) {
	begin := p.cur().Span
	declSpan := begin
	p.bump() // module
	name := p.want(token.Ident)

	switch p.cur().Kind {
	case token.Semicolon:
		p.bump()
		return p.resolveModule(name.Span, p.span(declSpan))
	case token.LBrace:
		p.bump()
		var nodes []ast.Node
		for !p.atEOF() && !p.at(token.RBrace) {
			node, ok := p.parseTopLevel()
			if !ok {
				p.recoverToTopLevel()
				continue
			}
			nodes = append(nodes, node)
		}
		p.want(token.RBrace)
		return ast.Node{Kind: ast.NodeModStatement, Span: p.span(begin), Name: name.Span, ModTree: nodes, TreeFileID: p.fileID}, true
	default:
		p.errorExpected([]token.Kind{token.Semicolon, token.LBrace})
		return ast.Node{}, false
	}
}

func (p *parser) parseFunction() (ast.Node, bool) {
	begin := p.cur().Span
	p.bump() // function
	name := p.want(token.Ident)
	generics := p.parseGenerics()
	params := p.parseParams()

	var returnType *ast.Path
	if p.at(token.FatArrow) {
		p.bump()
		rt := p.parsePath()
		returnType = &rt
	}

	block := p.parseBlock()
	return ast.Node{
		Kind: ast.NodeFunctionDeclaration, Span: p.span(begin),
		Name: name.Span, Generics: generics, Params: params,
		ReturnType: returnType, Block: block,
	}, true
}

func (p *parser) parseViewport() (ast.Node, bool) {
	begin := p.cur().Span
	p.bump() // viewport
	name := p.want(token.Ident)
	params := p.parseParams()
	block := p.parseBlock()
	return ast.Node{
		Kind: ast.NodeViewportDeclaration, Span: p.span(begin),
		Name: name.Span, Params: params, Block: block,
	}, true
}

func (p *parser) parseComponent() (ast.Node, bool) {
	begin := p.cur().Span
	p.bump() // component
	name := p.want(token.Ident)
	block := p.parseComponentBlock()
	return ast.Node{Kind: ast.NodeComponentDeclaration, Span: p.span(begin), Name: name.Span, ComponentBlock: block}, true
}

func (p *parser) parseType() (ast.Node, bool) {
	begin := p.cur().Span
	p.bump() // type
	name := p.want(token.Ident)
	generics := p.parseGenerics()

	var sub ast.SubType
	switch p.cur().Kind {
	case token.Equal:
		p.bump()
		sub = p.parseSubType()
		p.want(token.Semicolon)
	case token.Semicolon:
		p.bump()
		sub = ast.SubType{Kind: ast.SubTypeEmpty}
	default:
		p.errorExpected([]token.Kind{token.Equal, token.Semicolon})
	}
	return ast.Node{Kind: ast.NodeTypeDeclaration, Span: p.span(begin), Name: name.Span, Generics: generics, SubType: sub}, true
}

func (p *parser) parseTrait() (ast.Node, bool) {
	begin := p.cur().Span
	p.bump() // trait
	name := p.want(token.Ident)
	generics := p.parseGenerics()

	var supertraits []ast.Path
	if p.at(token.Colon) {
		p.bump()
		supertraits = p.parseTraitBounds()
	}

	p.want(token.LBrace)
	var body []ast.Node
	for !p.atEOF() && !p.at(token.RBrace) {
		node, ok := p.parseTopLevel()
		if !ok {
			p.recoverToTopLevel()
			continue
		}
		body = append(body, node)
	}
	p.want(token.RBrace)

	return ast.Node{
		Kind: ast.NodeTraitDeclaration, Span: p.span(begin),
		Name: name.Span, Generics: generics, Supertraits: supertraits, Body: body,
	}, true
}

func (p *parser) parseImplement() (ast.Node, bool) {
	begin := p.cur().Span
	p.bump() // implement
	generics := p.parseGenerics()
	first := p.parsePath()

	var traitPath *ast.Path
	implementor := first
	if p.at(token.KeywordFor) {
		p.bump()
		traitPath = &first
		implementor = p.parsePath()
	}

	p.want(token.LBrace)
	var body []ast.Node
	for !p.atEOF() && !p.at(token.RBrace) {
		node, ok := p.parseTopLevel()
		if !ok {
			p.recoverToTopLevel()
			continue
		}
		body = append(body, node)
	}
	p.want(token.RBrace)

	return ast.Node{
		Kind: ast.NodeImplementBlock, Span: p.span(begin),
		Generics: generics, TraitPath: traitPath, Implementor: implementor, Body: body,
	}, true
}

func (p *parser) parsePublic() (ast.Node, bool) {
	begin := p.cur().Span
	p.bump() // public
	child, ok := p.parseTopLevel()
	if !ok {
		return ast.Node{}, false
	}
	return ast.Node{Kind: ast.NodePublic, Span: p.span(begin), Child: &child}, true
}

func (p *parser) parseAttributed() (ast.Node, bool) {
	begin := p.cur().Span
	var attrs []ast.Attribute
	for p.at(token.At) {
		p.bump()
		nameTok := p.want(token.Ident)
		switch nameText(p.src, nameTok.Span) {
		case "language":
			p.want(token.LParen)
			str := p.want(token.String)
			p.want(token.RParen)
			attrs = append(attrs, ast.Attribute{Kind: ast.AttributeLanguage, Arg: str.Span})
		case "inline":
			attrs = append(attrs, ast.Attribute{Kind: ast.AttributeInline})
		default:
			p.coll.record(Diagnostic{
				File: p.fileID, Span: nameTok.Span, Err: cerrs.ErrUnknownAttribute,
				Found: nameText(p.src, nameTok.Span),
			})
		}
	}
	child, ok := p.parseTopLevel()
	if !ok {
		return ast.Node{}, false
	}
	return ast.Node{Kind: ast.NodeAttributed, Span: p.span(begin), Attributes: attrs, Child: &child}, true
}
