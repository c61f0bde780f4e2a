// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package cerrs defines constant error types using a custom Error string type.
// It centralizes the sentinel errors used throughout the compiler for
// I/O, lexing, parsing, module resolution, and symbol resolution failures.
// The Error type supports comparison via errors.Is().
package cerrs
