// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package ast

import "github.com/pipec-lang/pipec/internal/pipec/source"

// ExprKind is the closed set of expression node kinds (spec.md §3).
type ExprKind int

const (
	ExprNumber ExprKind = iota
	ExprPath
	ExprTuple
	ExprList
	ExprBinaryOp
	ExprTilde
	ExprRequired
	ExprSwitch
)

// NumberKind mirrors token.NumberKind without importing the token
// package into the tree; the lexer's digit classification is carried
// straight through to the number expression it produces.
type NumberKind int

const (
	NumberInt NumberKind = iota
	NumberFloat
)

// BinaryOp is the closed set of binary operators spec.md §3 allows.
// The grammar treats all of them as right-associative at one
// precedence level (spec.md §4.D, §9).
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpAddEq
	OpSubEq
	OpMulEq
	OpDivEq
	OpModEq
)

// SwitchArm is one "lhs -> rhs" arm of a switch expression.
type SwitchArm struct {
	LHS *Expr
	RHS *Expr
}

// Expr is a tagged expression node. Only the fields relevant to Kind
// are populated.
type Expr struct {
	Kind ExprKind
	Span source.Span

	Number     NumberKind // ExprNumber
	Value      Path       // ExprPath
	Elements   []*Expr    // ExprTuple, ExprList
	Op         BinaryOp   // ExprBinaryOp
	LHS        *Expr      // ExprBinaryOp
	RHS        *Expr      // ExprBinaryOp
	Inner      *Expr      // ExprTilde, ExprRequired
	Predicate  *Expr      // ExprSwitch
	Arms       []SwitchArm // ExprSwitch
}
