// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package parser

import (
	"github.com/pipec-lang/pipec/cerrs"
	"github.com/pipec-lang/pipec/internal/pipec/ast"
	"github.com/pipec-lang/pipec/internal/pipec/token"
)

// parseExpr parses one expression and, if a binary operator follows,
// its right-hand side: all ten operators sit at a single
// right-associative precedence level (spec.md §4.D, §9).
func (p *parser) parseExpr() ast.Expr {
	lhs := p.parsePrimaryExpr()
	return p.parseExprRHS(lhs)
}

func (p *parser) parseExprRHS(lhs ast.Expr) ast.Expr {
	op, ok := binaryOpFor(p.cur().Kind)
	if !ok {
		return lhs
	}
	begin := lhs.Span
	p.bump()
	rhs := p.parseExpr()
	return ast.Expr{
		Kind: ast.ExprBinaryOp, Span: p.span(begin),
		Op: op, LHS: &lhs, RHS: &rhs,
	}
}

func binaryOpFor(k token.Kind) (ast.BinaryOp, bool) {
	switch k {
	case token.Plus:
		return ast.OpAdd, true
	case token.Minus:
		return ast.OpSub, true
	case token.Star:
		return ast.OpMul, true
	case token.Slash:
		return ast.OpDiv, true
	case token.Percent:
		return ast.OpMod, true
	case token.PlusEq:
		return ast.OpAddEq, true
	case token.MinusEq:
		return ast.OpSubEq, true
	case token.StarEq:
		return ast.OpMulEq, true
	case token.SlashEq:
		return ast.OpDivEq, true
	case token.PercentEq:
		return ast.OpModEq, true
	default:
		return 0, false
	}
}

func (p *parser) parsePrimaryExpr() ast.Expr {
	switch p.cur().Kind {
	case token.Digit:
		return p.parseNumberExpr()
	case token.LParen:
		return p.parseTupleExpr()
	case token.LBracket:
		return p.parseListExpr()
	case token.Tilde:
		return p.parseTildeExpr()
	case token.Ident, token.String:
		return p.parsePathExpr()
	case token.KeywordRequired:
		return p.parseRequiredExpr()
	case token.KeywordSwitch:
		return p.parseSwitchExpr()
	default:
		p.errorExpected([]token.Kind{
			token.Digit, token.LParen, token.LBracket, token.Tilde,
			token.Ident, token.String, token.KeywordRequired, token.KeywordSwitch,
		})
		return ast.Expr{Kind: ast.ExprPath, Span: p.insertionSpan()}
	}
}

func (p *parser) parseNumberExpr() ast.Expr {
	tok := p.bump()
	num := ast.NumberInt
	if tok.Number == token.Float {
		num = ast.NumberFloat
	}
	return ast.Expr{Kind: ast.ExprNumber, Span: tok.Span, Number: num}
}

func (p *parser) parsePathExpr() ast.Expr {
	begin := p.cur().Span
	path := p.parsePath()
	return ast.Expr{Kind: ast.ExprPath, Span: p.span(begin), Value: path}
}

func (p *parser) parseTupleExpr() ast.Expr {
	begin := p.cur().Span
	p.bump() // (
	var elems []*ast.Expr
	for {
		e := p.parseExpr()
		elems = append(elems, &e)
		if p.at(token.Comma) {
			p.bump()
			continue
		}
		break
	}
	p.want(token.RParen)
	return ast.Expr{Kind: ast.ExprTuple, Span: p.span(begin), Elements: elems}
}

func (p *parser) parseListExpr() ast.Expr {
	begin := p.cur().Span
	p.bump() // [
	var elems []*ast.Expr
	for {
		e := p.parseExpr()
		elems = append(elems, &e)
		if p.at(token.Comma) {
			p.bump()
			continue
		}
		break
	}
	p.want(token.RBracket)
	return ast.Expr{Kind: ast.ExprList, Span: p.span(begin), Elements: elems}
}

func (p *parser) parseTildeExpr() ast.Expr {
	begin := p.cur().Span
	p.bump() // ~
	inner := p.parseExpr()
	return ast.Expr{Kind: ast.ExprTilde, Span: p.span(begin), Inner: &inner}
}

func (p *parser) parseRequiredExpr() ast.Expr {
	begin := p.cur().Span
	p.bump() // required
	inner := p.parseExpr()
	return ast.Expr{Kind: ast.ExprRequired, Span: p.span(begin), Inner: &inner}
}

func (p *parser) parseSwitchExpr() ast.Expr {
	begin := p.cur().Span
	p.bump() // switch
	predicate := p.parseExpr()
	p.want(token.LBrace)

	var arms []ast.SwitchArm
	for !p.atEOF() && !p.at(token.RBrace) {
		lhs := p.parseExpr()
		p.want(token.ThinArrow)
		rhs := p.parseExpr()
		arms = append(arms, ast.SwitchArm{LHS: &lhs, RHS: &rhs})
		if p.at(token.Comma) {
			p.bump()
		}
	}
	p.want(token.RBrace)

	if len(arms) == 0 {
		p.coll.record(Diagnostic{File: p.fileID, Span: p.span(begin), Err: cerrs.ErrEmptySwitch})
	}

	return ast.Expr{Kind: ast.ExprSwitch, Span: p.span(begin), Predicate: &predicate, Arms: arms}
}
