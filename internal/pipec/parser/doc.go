// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package parser implements the recursive-descent parser that turns a
// token stream into the syntactic tree defined by package ast,
// including the filesystem-driven module resolution that recursively
// opens, lexes, and parses `module <name>;` declarations (spec.md
// §4.D.1). Every parse_X production skips whitespace and peeks at
// the token stream to decide which production to run, following the
// want/wantOneOf/recoverTo helper shape of a lossless CST parser
// generalized to a syntax tree that discards trivia.
package parser
