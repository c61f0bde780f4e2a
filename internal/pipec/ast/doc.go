// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package ast defines the syntactic tree the parser produces: paths,
// generics, expressions, and the closed set of top-level declaration
// nodes. Every node category (Node, Stmt, ComponentStmt, Expr, SubType)
// is one flat struct carrying a Kind tag plus every kind's fields side
// by side, switched over exhaustively by callers — never a
// runtime-polymorphic interface per kind.
package ast
