// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package source implements the file loader and source span used by the
// lexer, parser, and symbol-tree builder. Every file opened by the
// loader is read into the compilation's arena exactly once. Tokens and
// syntactic-tree nodes refer to source text as spans into one of these
// loaded slices; the symbol-tree builder and map-type field keys copy
// the text they keep into Go strings.
package source
