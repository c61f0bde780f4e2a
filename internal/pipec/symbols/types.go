// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package symbols

import (
	"strings"

	"github.com/pipec-lang/pipec/internal/pipec/ast"
)

// TypeKind is the closed set of built-in types, plus Link for anything
// that isn't one of them (spec.md §3, §4.E).
type TypeKind int

const (
	Integer8 TypeKind = iota
	Unsigned8
	Float8
	Integer16
	Unsigned16
	Float16
	Integer32
	Unsigned32
	Float32
	Integer64
	Unsigned64
	Float64
	FloatPort
	Nothing
	Link
)

var builtinNames = map[string]TypeKind{
	"integer8":   Integer8,
	"unsigned8":  Unsigned8,
	"float8":     Float8,
	"integer16":  Integer16,
	"unsigned16": Unsigned16,
	"float16":    Float16,
	"integer32":  Integer32,
	"unsigned32": Unsigned32,
	"float32":    Float32,
	"integer64":  Integer64,
	"unsigned64": Unsigned64,
	"float64":    Float64,
	"floatport":  FloatPort,
	"nothing":    Nothing,
}

// TypeTag classifies a parsed Path as either one of the closed built-in
// types or a Link naming a user-defined type by its qualified path
// (spec.md §3, §4.E).
type TypeTag struct {
	Kind          TypeKind
	QualifiedName []string // populated when Kind == Link
}

func (t TypeTag) String() string {
	if t.Kind != Link {
		for name, k := range builtinNames {
			if k == t.Kind {
				return name
			}
		}
	}
	return strings.Join(t.QualifiedName, "/")
}

// ClassifyType implements spec.md §4.E's type-classification rule: a
// Path of length 1 with no generics is matched against the closed
// built-in table; everything else — multi-segment paths, paths with
// generics, and single-segment misses — becomes a Link carrying the
// path's segment names in order.
func ClassifyType(path ast.Path, src []byte) TypeTag {
	if len(path.Segments) == 1 {
		seg := path.Segments[0]
		if seg.Kind == ast.SegmentSingly && len(seg.Generics.Params) == 0 {
			name := seg.Name.Text(src)
			if kind, ok := builtinNames[name]; ok {
				return TypeTag{Kind: kind}
			}
		}
	}
	return TypeTag{Kind: Link, QualifiedName: qualifiedName(path, src)}
}

// qualifiedName returns the sequence of segment names in path, in
// order. Multi (grouped) segments have no single name and are not
// expected to appear in a type position; they contribute nothing.
func qualifiedName(path ast.Path, src []byte) []string {
	names := make([]string, 0, len(path.Segments))
	for _, seg := range path.Segments {
		if seg.Kind == ast.SegmentSingly {
			names = append(names, seg.Name.Text(src))
		}
	}
	return names
}
