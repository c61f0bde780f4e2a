// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package ast

import "github.com/pipec-lang/pipec/internal/pipec/source"

// Param is one `name: Type` entry in a function or viewport parameter
// list (spec.md §4.D).
type Param struct {
	Name source.Span
	Type Path
}

// AttributeKind is the closed set of `@name(...)` attributes a
// declaration may carry (spec.md §4.D).
type AttributeKind int

const (
	AttributeLanguage AttributeKind = iota
	AttributeInline
)

// Attribute is a single parsed `@name` annotation.
type Attribute struct {
	Kind AttributeKind
	Arg  source.Span // valid when Kind == AttributeLanguage; the quoted string literal's span
}

// Kind is the closed set of top-level syntactic tree node kinds
// (spec.md §3).
type Kind int

const (
	NodeUsingStatement Kind = iota
	NodeModStatement
	NodeFunctionDeclaration
	NodeViewportDeclaration
	NodeComponentDeclaration
	NodeTypeDeclaration
	NodeTraitDeclaration
	NodeImplementBlock
	NodePublic
	NodeAttributed
	NodeEOF
)

// Node is a tagged top-level declaration. Only the fields relevant to
// Kind are populated; callers switch exhaustively on Kind rather than
// relying on type assertions.
type Node struct {
	Kind Kind
	Span source.Span

	// NodeUsingStatement
	Using Path

	// NodeModStatement, NodeFunctionDeclaration, NodeViewportDeclaration,
	// NodeComponentDeclaration, NodeTypeDeclaration, NodeTraitDeclaration
	Name source.Span

	// NodeModStatement: the child tree, parsed either inline or from the
	// filesystem module resolved for Name (spec.md §4.D.1). TreeFileID
	// names which file's bytes back every span in ModTree: the parent
	// file's id for an inline `module X { ... }`, or the freshly opened
	// file's id when resolveModule pulled the tree off disk. The symbol
	// builder switches its active source slice to this id while it
	// walks ModTree, and restores the caller's id on return (spec.md
	// §4.E).
	ModTree    []Node
	TreeFileID source.FileID

	// NodeFunctionDeclaration, NodeTraitDeclaration, NodeImplementBlock,
	// NodeTypeDeclaration
	Generics Generics

	// NodeFunctionDeclaration, NodeViewportDeclaration
	Params     []Param
	ReturnType *Path // NodeFunctionDeclaration only
	Block      []Stmt

	// NodeComponentDeclaration
	ComponentBlock []ComponentStmt

	// NodeTypeDeclaration
	SubType SubType

	// NodeTraitDeclaration, NodeImplementBlock
	Supertraits []Path
	Body        []Node

	// NodeImplementBlock
	TraitPath   *Path
	Implementor Path

	// NodePublic, NodeAttributed: the wrapped production.
	Child *Node

	// NodeAttributed
	Attributes []Attribute
}
