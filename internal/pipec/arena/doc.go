// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package arena implements a bump-allocating byte buffer that hands out
// opaque handles instead of native pointers. Package source is its only
// user: every loaded file's bytes live in the arena behind a Slice
// handle. The syntactic tree (package ast) and the scope graph (package
// symbols) are not arena-allocated; they are ordinary Go structs,
// slices, maps, and pointers, with scope aliases held as indices.
package arena
