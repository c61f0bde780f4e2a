// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package ast

import "github.com/pipec-lang/pipec/internal/pipec/source"

// Path is a non-empty ordered sequence of segments.
type Path struct {
	Segments []Segment
}

// SegmentKind distinguishes a plain named segment from a grouped
// "(a, b, c)" import.
type SegmentKind int

const (
	SegmentSingly SegmentKind = iota
	SegmentMulti
)

// Segment is one element of a Path. Singly carries a name and its
// trailing generics; Multi carries the grouped sub-paths.
type Segment struct {
	Kind     SegmentKind
	Name     source.Span // valid when Kind == SegmentSingly
	Generics Generics     // valid when Kind == SegmentSingly
	Group    []Path       // valid when Kind == SegmentMulti
}

// GenericKind distinguishes a lifetime parameter ("#name") from a type
// parameter ("name").
type GenericKind int

const (
	GenericType GenericKind = iota
	GenericLifetime
)

// Generic is one parametric-type parameter with its trait bounds.
type Generic struct {
	Name   source.Span
	Kind   GenericKind
	Bounds []Path
}

// Generics is the (possibly empty) bracketed parameter list trailing a
// declaration name or path segment.
type Generics struct {
	Params []Generic
}
