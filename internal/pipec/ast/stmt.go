// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package ast

import "github.com/pipec-lang/pipec/internal/pipec/source"

// ExportedKind distinguishes the two built-in export names from a
// user-chosen one (spec.md §4.D, §6).
type ExportedKind int

const (
	ExportedColorBuiltin ExportedKind = iota
	ExportedPositionBuiltin
	ExportedCustom
)

// Exported names the left-hand side of an `export` statement.
type Exported struct {
	Kind ExportedKind
	Name source.Span // valid when Kind == ExportedCustom
}

// StmtKind is the closed set of statements that may appear inside a
// function, viewport, vertices, or fragments block (spec.md §4.D).
type StmtKind int

const (
	StmtMutableVariable StmtKind = iota
	StmtImmutableVariable
	StmtExpression
	StmtExport
	StmtRenderBlock
)

// Stmt is a tagged block statement.
type Stmt struct {
	Kind StmtKind
	Span source.Span

	VarName *source.Span // StmtMutableVariable, StmtImmutableVariable
	VarType *Path        // StmtMutableVariable, StmtImmutableVariable, StmtExport
	Value   *Expr        // StmtMutableVariable, StmtImmutableVariable, StmtExport, StmtExpression

	Hidden bool // StmtExpression: true when the statement had a trailing ';'

	Export Exported // StmtExport

	Block []Stmt // StmtRenderBlock
}

// ComponentStmtKind is the closed set of statements inside a
// `component { ... }` body (spec.md §3, §4.D).
type ComponentStmtKind int

const (
	ComponentStmtFinalVariable ComponentStmtKind = iota
	ComponentStmtRenderBlock
)

// ComponentStmt is a tagged component-body statement.
type ComponentStmt struct {
	Kind ComponentStmtKind
	Span source.Span

	VarName *source.Span // ComponentStmtFinalVariable
	VarType *Path        // ComponentStmtFinalVariable
	Value   *Expr        // ComponentStmtFinalVariable

	Vertices  []Stmt // ComponentStmtRenderBlock
	Fragments []Stmt // ComponentStmtRenderBlock
}
