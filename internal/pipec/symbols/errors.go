// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package symbols

import (
	"fmt"

	"github.com/pipec-lang/pipec/internal/pipec/source"
)

// Error reports a symbol-resolution failure: a duplicate declaration, an
// unresolved `using` path, or a path segment that names a non-module
// symbol where a module was expected (spec.md §7).
type Error struct {
	File source.FileID
	Span source.Span
	Name string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Name)
}

func (e *Error) Unwrap() error { return e.Err }
