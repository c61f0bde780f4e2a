// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package compiler wires the arena, source loader, lexer, parser, and
// symbol-tree builder (packages arena, source, lexer, parser, symbols)
// into a single compilation, following main.go's Execute(cfg) error
// orchestration style. It is the only package that knows about all of
// A–F at once; every other package only knows its neighbors.
package compiler
