// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package token defines the closed set of token kinds the lexer
// produces and the reserved-word table the lexer classifies identifiers
// against (spec.md §3, §6, §9 "Dynamic string membership in keywords").
package token
