// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package ast

import "github.com/pipec-lang/pipec/internal/pipec/source"

// SubTypeKind is the closed set of `type` declaration bodies (spec.md §3).
type SubTypeKind int

const (
	SubTypeEmpty SubTypeKind = iota
	SubTypeName
	SubTypeNamed
	SubTypeUnion
	SubTypeMap
)

// SubType is a tagged `type` declaration body.
type SubType struct {
	Kind SubTypeKind

	Name   source.Span        // SubTypeName, SubTypeNamed
	Inner  *SubType           // SubTypeNamed
	Union  []SubType          // SubTypeUnion
	Fields map[string]SubType // SubTypeMap, keyed by the already-resolved field name
}
