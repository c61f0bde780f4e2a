// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package token

import (
	"fmt"

	"github.com/pipec-lang/pipec/internal/pipec/source"
)

// Kind is the closed set of token kinds spec.md §3 defines.
type Kind int

const (
	EOF Kind = iota
	Whitespace
	Ident
	String
	Digit

	// single- and multi-byte punctuation/operators (spec.md §4.C)
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Semicolon
	Colon
	DoubleColon // ::
	Dot
	Slash // also the module-path separator (spec.md §4.D, §9)
	Hash
	At
	Tilde
	Equal
	Plus
	Minus
	Star
	Percent
	Lt
	Gt
	ThinArrow // ->
	FatArrow  // =>
	EqEq      // ==
	NotEq     // !=
	LtEq      // <=
	GtEq      // >=
	AndAnd    // &&
	OrOr      // ||
	Pipe      // | (subtype union separator, spec.md §4.D)
	PlusEq    // +=
	MinusEq   // -=
	StarEq    // *=
	SlashEq   // /=
	PercentEq // %=

	// keywords (spec.md §3, §6)
	KeywordUsing
	KeywordModule
	KeywordComponent
	KeywordViewport
	KeywordFunction
	KeywordPublic
	KeywordFinal
	KeywordRender
	KeywordVertices
	KeywordFragments
	KeywordExport
	KeywordRequired
	KeywordSwitch
	KeywordMutable
	KeywordImmutable
	KeywordType
	KeywordTrait
	KeywordImplement
	KeywordFor

	// reserved for forward compatibility (spec.md §6); the grammar never
	// produces a production for these, but the lexer still refuses to
	// treat them as plain identifiers.
	KeywordLet
	KeywordMut
	KeywordMod
	KeywordMain
)

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var kindNames = map[Kind]string{
	EOF:              "EOF",
	Whitespace:       "Whitespace",
	Ident:            "Ident",
	String:           "String",
	Digit:            "Digit",
	LParen:           "(",
	RParen:           ")",
	LBrace:           "{",
	RBrace:           "}",
	LBracket:         "[",
	RBracket:         "]",
	Comma:            ",",
	Semicolon:        ";",
	Colon:            ":",
	DoubleColon:      "::",
	Dot:              ".",
	Slash:            "/",
	Hash:             "#",
	At:               "@",
	Tilde:            "~",
	Equal:            "=",
	Plus:             "+",
	Minus:            "-",
	Star:             "*",
	Percent:          "%",
	Lt:               "<",
	Gt:               ">",
	ThinArrow:        "->",
	FatArrow:         "=>",
	EqEq:             "==",
	NotEq:            "!=",
	LtEq:             "<=",
	GtEq:             ">=",
	AndAnd:           "&&",
	OrOr:             "||",
	Pipe:             "|",
	PlusEq:           "+=",
	MinusEq:          "-=",
	StarEq:           "*=",
	SlashEq:          "/=",
	PercentEq:        "%=",
	KeywordUsing:     "using",
	KeywordModule:    "module",
	KeywordComponent: "component",
	KeywordViewport:  "viewport",
	KeywordFunction:  "function",
	KeywordPublic:    "public",
	KeywordFinal:     "final",
	KeywordRender:    "render",
	KeywordVertices:  "vertices",
	KeywordFragments: "fragments",
	KeywordExport:    "export",
	KeywordRequired:  "required",
	KeywordSwitch:    "switch",
	KeywordMutable:   "mutable",
	KeywordImmutable: "immutable",
	KeywordType:      "type",
	KeywordTrait:     "trait",
	KeywordImplement: "implement",
	KeywordFor:       "for",
	KeywordLet:       "let",
	KeywordMut:       "mut",
	KeywordMod:       "mod",
	KeywordMain:      "main",
}

// LookupKeyword classifies an identifier's text against the closed
// reserved-word table (spec.md §6, §9). A generated switch, not a
// runtime-constructed map, per spec.md §9's "perfect hash or generated
// switch" guidance.
func LookupKeyword(text string) (Kind, bool) {
	switch text {
	case "using":
		return KeywordUsing, true
	case "module":
		return KeywordModule, true
	case "component":
		return KeywordComponent, true
	case "viewport":
		return KeywordViewport, true
	case "function":
		return KeywordFunction, true
	case "public":
		return KeywordPublic, true
	case "final":
		return KeywordFinal, true
	case "render":
		return KeywordRender, true
	case "vertices":
		return KeywordVertices, true
	case "fragments":
		return KeywordFragments, true
	case "export":
		return KeywordExport, true
	case "required":
		return KeywordRequired, true
	case "switch":
		return KeywordSwitch, true
	case "mutable":
		return KeywordMutable, true
	case "immutable":
		return KeywordImmutable, true
	case "type":
		return KeywordType, true
	case "trait":
		return KeywordTrait, true
	case "implement":
		return KeywordImplement, true
	case "for":
		return KeywordFor, true
	case "let":
		return KeywordLet, true
	case "mut":
		return KeywordMut, true
	case "mod":
		return KeywordMod, true
	case "main":
		return KeywordMain, true
	default:
		return Ident, false
	}
}

// NumberKind distinguishes integer from floating-point digit tokens.
type NumberKind int

const (
	Int NumberKind = iota
	Float
)

// Token is a tagged token with a position-preserving span into its
// owning file's source (spec.md §3). Number is only meaningful when
// Kind == Digit.
type Token struct {
	Kind   Kind
	Span   source.Span
	Number NumberKind
}

// Text returns the token's source text.
func (t Token) Text(src []byte) string {
	return t.Span.Text(src)
}
