// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package compiler

import (
	"fmt"

	"github.com/pipec-lang/pipec/internal/pipec/parser"
	"github.com/pipec-lang/pipec/internal/pipec/source"
	"github.com/pipec-lang/pipec/internal/pipec/symbols"
)

// Diagnostic is the driver's user-visible report of one lex, parse, or
// symbol-resolution failure: the file path, the 1-indexed line and
// column of the span's start, the underlying error kind, and a short
// message (spec.md §7).
type Diagnostic struct {
	Path string
	Pos  source.Position
	Err  error
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s:%d:%d: %v", d.Path, d.Pos.Line, d.Pos.Col, d.Err)
}

func (d Diagnostic) Unwrap() error { return d.Err }

func fromParseDiagnostic(store *source.Store, pd parser.Diagnostic) Diagnostic {
	return Diagnostic{
		Path: store.Path(pd.File),
		Pos:  source.PositionOf(store.Bytes(pd.File), pd.Span.Begin),
		Err:  pd,
	}
}

func fromSymbolError(store *source.Store, se symbols.Error) Diagnostic {
	return Diagnostic{
		Path: store.Path(se.File),
		Pos:  source.PositionOf(store.Bytes(se.File), se.Span.Begin),
		Err:  &se,
	}
}
