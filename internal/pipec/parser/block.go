// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package parser

import (
	"github.com/pipec-lang/pipec/cerrs"
	"github.com/pipec-lang/pipec/internal/pipec/ast"
	"github.com/pipec-lang/pipec/internal/pipec/token"
)

// parseBlock parses a `{ stmt* }` function, viewport, or render body
// (spec.md §4.D).
func (p *parser) parseBlock() []ast.Stmt {
	p.want(token.LBrace)
	var stmts []ast.Stmt
	for !p.atEOF() && !p.at(token.RBrace) {
		stmt, ok := p.parseBlockStmt()
		if !ok {
			p.recoverToBlockStmt()
			continue
		}
		stmts = append(stmts, stmt)
	}
	p.want(token.RBrace)
	return stmts
}

func (p *parser) parseBlockStmt() (ast.Stmt, bool) {
	switch p.cur().Kind {
	case token.KeywordMutable:
		return p.parseVarDecl(ast.StmtMutableVariable), true
	case token.KeywordImmutable:
		return p.parseVarDecl(ast.StmtImmutableVariable), true
	case token.KeywordExport:
		return p.parseExportDecl(), true
	case token.KeywordRender:
		return p.parseRenderStmt(), true
	default:
		if !p.atExprStart() {
			p.errorExpected([]token.Kind{
				token.KeywordMutable, token.KeywordImmutable, token.KeywordExport, token.KeywordRender,
				token.Digit, token.LParen, token.LBracket, token.Tilde, token.Ident, token.String,
				token.KeywordRequired, token.KeywordSwitch,
			})
			return ast.Stmt{}, false
		}
		return p.parseExprStmt(), true
	}
}

// atExprStart reports whether the current token can start
// parsePrimaryExpr, mirroring the set it switches on. A block
// statement whose token starts neither a keyword form nor an
// expression must fail so parseBlock's recovery loop advances past it,
// instead of looping forever re-parsing a zero-width expression.
func (p *parser) atExprStart() bool {
	return p.atAny(
		token.Digit, token.LParen, token.LBracket, token.Tilde,
		token.Ident, token.String, token.KeywordRequired, token.KeywordSwitch,
	)
}

// parseVarDecl parses `mutable`/`immutable name (: Type)? = expr ;`.
// The source the spec distills from requires an explicit declaration
// expression either way: a `: Type` is always followed by `= expr`,
// never left bare.
func (p *parser) parseVarDecl(kind ast.StmtKind) ast.Stmt {
	begin := p.cur().Span
	p.bump() // mutable | immutable
	nameTok := p.want(token.Ident)
	name := nameTok.Span

	var varType *ast.Path
	var value *ast.Expr
	switch p.cur().Kind {
	case token.Colon:
		p.bump()
		t := p.parsePath()
		varType = &t
		p.want(token.Equal)
		e := p.parseExpr()
		value = &e
	case token.Equal:
		p.bump()
		e := p.parseExpr()
		value = &e
	default:
		p.errorExpected([]token.Kind{token.Colon, token.Equal})
	}
	p.want(token.Semicolon)
	return ast.Stmt{Kind: kind, Span: p.span(begin), VarName: &name, VarType: varType, Value: value}
}

// parseExportDecl parses `export ( #name | name ) (: Type)? = expr ;`.
// `#col`/`#pos` name the two builtin export slots (spec.md §6); any
// other `#name` is rejected.
func (p *parser) parseExportDecl() ast.Stmt {
	begin := p.cur().Span
	p.bump() // export

	var exported ast.Exported
	switch p.cur().Kind {
	case token.Hash:
		p.bump()
		nameTok := p.want(token.Ident)
		switch nameText(p.src, nameTok.Span) {
		case "col":
			exported = ast.Exported{Kind: ast.ExportedColorBuiltin}
		case "pos":
			exported = ast.Exported{Kind: ast.ExportedPositionBuiltin}
		default:
			p.coll.record(Diagnostic{
				File: p.fileID, Span: nameTok.Span, Err: cerrs.ErrInvalidExportName,
				Found: nameText(p.src, nameTok.Span),
			})
			exported = ast.Exported{Kind: ast.ExportedCustom, Name: nameTok.Span}
		}
	case token.Ident:
		nameTok := p.bump()
		exported = ast.Exported{Kind: ast.ExportedCustom, Name: nameTok.Span}
	default:
		p.errorExpected([]token.Kind{token.Hash, token.Ident})
	}

	var varType *ast.Path
	switch p.cur().Kind {
	case token.Colon:
		p.bump()
		t := p.parsePath()
		varType = &t
		p.want(token.Equal)
	case token.Equal:
		p.bump()
	default:
		p.errorExpected([]token.Kind{token.Colon, token.Equal})
	}
	value := p.parseExpr()
	p.want(token.Semicolon)

	return ast.Stmt{Kind: ast.StmtExport, Span: p.span(begin), Export: exported, VarType: varType, Value: &value}
}

func (p *parser) parseRenderStmt() ast.Stmt {
	begin := p.cur().Span
	p.bump() // render
	block := p.parseBlock()
	return ast.Stmt{Kind: ast.StmtRenderBlock, Span: p.span(begin), Block: block}
}

func (p *parser) parseExprStmt() ast.Stmt {
	begin := p.cur().Span
	e := p.parseExpr()
	hidden := false
	if p.at(token.Semicolon) {
		p.bump()
		hidden = true
	}
	return ast.Stmt{Kind: ast.StmtExpression, Span: p.span(begin), Value: &e, Hidden: hidden}
}

func (p *parser) recoverToBlockStmt() {
	for !p.atEOF() && !p.at(token.RBrace) && !p.atBlockStmtStart() {
		p.bump()
	}
}

func (p *parser) atBlockStmtStart() bool {
	return p.atAny(token.KeywordMutable, token.KeywordImmutable, token.KeywordExport, token.KeywordRender)
}

// parseComponentBlock parses a `component { compstmt* }` body (spec.md
// §3, §4.D).
func (p *parser) parseComponentBlock() []ast.ComponentStmt {
	p.want(token.LBrace)
	var stmts []ast.ComponentStmt
	for !p.atEOF() && !p.at(token.RBrace) {
		stmt, ok := p.parseComponentStmt()
		if !ok {
			p.recoverToComponentStmt()
			continue
		}
		stmts = append(stmts, stmt)
	}
	p.want(token.RBrace)
	return stmts
}

func (p *parser) parseComponentStmt() (ast.ComponentStmt, bool) {
	switch p.cur().Kind {
	case token.KeywordFinal:
		return p.parseFinalVarDecl(), true
	case token.KeywordRender:
		return p.parseComponentRenderBlock(), true
	default:
		p.errorExpected([]token.Kind{token.KeywordFinal, token.KeywordRender})
		return ast.ComponentStmt{}, false
	}
}

// parseFinalVarDecl parses `final name (: Type)? (= expr)? ;`. Unlike a
// function-block variable, a typed final with no initializer is valid.
func (p *parser) parseFinalVarDecl() ast.ComponentStmt {
	begin := p.cur().Span
	p.bump() // final
	nameTok := p.want(token.Ident)
	name := nameTok.Span

	var varType *ast.Path
	var value *ast.Expr
	switch p.cur().Kind {
	case token.Colon:
		p.bump()
		t := p.parsePath()
		varType = &t
		if p.at(token.Equal) {
			p.bump()
			e := p.parseExpr()
			value = &e
		}
	case token.Equal:
		p.bump()
		e := p.parseExpr()
		value = &e
	default:
		p.errorExpected([]token.Kind{token.Colon, token.Equal})
	}
	p.want(token.Semicolon)
	return ast.ComponentStmt{Kind: ast.ComponentStmtFinalVariable, Span: p.span(begin), VarName: &name, VarType: varType, Value: value}
}

func (p *parser) parseComponentRenderBlock() ast.ComponentStmt {
	begin := p.cur().Span
	p.bump() // render
	p.want(token.LBrace)
	p.want(token.KeywordVertices)
	vertices := p.parseBlock()
	p.want(token.KeywordFragments)
	fragments := p.parseBlock()
	p.want(token.RBrace)
	return ast.ComponentStmt{Kind: ast.ComponentStmtRenderBlock, Span: p.span(begin), Vertices: vertices, Fragments: fragments}
}

func (p *parser) recoverToComponentStmt() {
	for !p.atEOF() && !p.at(token.RBrace) && !p.atAny(token.KeywordFinal, token.KeywordRender) {
		p.bump()
	}
}
