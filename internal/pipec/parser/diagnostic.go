// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package parser

import (
	"fmt"

	"github.com/pipec-lang/pipec/internal/pipec/source"
)

// Mode selects the parser's failure policy (spec.md §4.D.2).
type Mode int

const (
	// ModeBatch collects every diagnostic and resynchronizes at the next
	// top-level boundary, matching the spec's default reporting style.
	ModeBatch Mode = iota
	// ModeFailFast aborts parsing at the first diagnostic, returning it
	// as an error. Offered as a compatibility mode (spec.md §4.D.2).
	ModeFailFast
)

// Diagnostic reports one parse failure: an unexpected token, an
// unexpected EOF, or a malformed production, with the offending span
// and an expected-set (spec.md §7).
type Diagnostic struct {
	File     source.FileID
	Span     source.Span
	Err      error
	Expected []string
	Found    string
}

func (d Diagnostic) Error() string {
	if len(d.Expected) == 0 {
		return fmt.Sprintf("%v: found %s", d.Err, d.Found)
	}
	if len(d.Expected) == 1 {
		return fmt.Sprintf("%v: expected %s, found %s", d.Err, d.Expected[0], d.Found)
	}
	return fmt.Sprintf("%v: expected one of %v, found %s", d.Err, d.Expected, d.Found)
}

func (d Diagnostic) Unwrap() error { return d.Err }

// ParseError is returned by Parse in ModeFailFast, wrapping the first
// diagnostic encountered.
type ParseError struct {
	Diagnostic Diagnostic
}

func (e *ParseError) Error() string { return e.Diagnostic.Error() }
func (e *ParseError) Unwrap() error { return &e.Diagnostic }

// bailout unwinds the recursive-descent call stack back to Parse when
// running in ModeFailFast, the way go/parser's own bailout type does.
type bailout struct {
	diag Diagnostic
}

// ioBailout unwinds the call stack back to Parse on a filesystem
// failure while resolving a module file. It is raised regardless of
// Mode, since I/O errors are always fatal (spec.md §7).
type ioBailout struct {
	err error
}

// collector accumulates diagnostics across every file opened during a
// single compilation, including recursively-resolved modules.
type collector struct {
	mode  Mode
	diags []Diagnostic
}

func (c *collector) record(d Diagnostic) {
	c.diags = append(c.diags, d)
	if c.mode == ModeFailFast {
		panic(bailout{diag: d})
	}
}
