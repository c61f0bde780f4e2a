// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package symbols

import (
	"strings"

	"github.com/pipec-lang/pipec/cerrs"
	"github.com/pipec-lang/pipec/internal/pipec/ast"
	"github.com/pipec-lang/pipec/internal/pipec/source"
)

// Mode selects the builder's failure policy, mirroring the parser
// package's batch/fail-fast distinction (spec.md §4.D.2, applied here
// to symbol errors per §7's propagation policy).
type Mode int

const (
	ModeBatch Mode = iota
	ModeFailFast
)

// Build walks the syntactic tree rooted at rootNodes (parsed from
// rootFileID) and produces its ModuleScope graph: a full
// declarations pass across the whole tree, followed by a full
// imports pass, per spec.md §4.E. It returns the root scope, every
// scope reachable from it (indexed by ScopeID), and any diagnostics
// collected in ModeBatch. In ModeFailFast, err is non-nil as soon as
// the first diagnostic is produced.
func Build(store *source.Store, rootFileID source.FileID, rootNodes []ast.Node, mode Mode) (root *ModuleScope, scopes []*ModuleScope, diags []Error, err error) {
	b := &Builder{store: store, mode: mode}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if bo, ok := r.(bailout); ok {
			err = bo.err
			return
		}
		panic(r)
	}()

	root = b.newScope("")
	b.buildDecls(root, rootFileID, rootNodes)
	b.buildAliases(root, rootFileID, rootNodes)
	return root, b.scopes, b.diags, nil
}

// Builder holds the state threaded through one Build call: the flat
// scope vector (aliases index into this rather than holding a native
// pointer, spec.md §9) and the collected diagnostics.
type Builder struct {
	store  *source.Store
	mode   Mode
	scopes []*ModuleScope
	diags  []Error
}

type bailout struct{ err error }

func (b *Builder) newScope(name string) *ModuleScope {
	s := newScope(ScopeID(len(b.scopes)), name)
	b.scopes = append(b.scopes, s)
	return s
}

func (b *Builder) record(e Error) {
	b.diags = append(b.diags, e)
	if b.mode == ModeFailFast {
		panic(bailout{err: &e})
	}
}

// unwrap strips NodePublic/NodeAttributed wrappers to reach the
// wrapped declaration, per spec.md §4.D's "Public(child)" and
// "Attributed([attr], child)" node shapes — symbol classification
// does not depend on visibility or attributes.
func unwrap(n ast.Node) ast.Node {
	for (n.Kind == ast.NodePublic || n.Kind == ast.NodeAttributed) && n.Child != nil {
		n = *n.Child
	}
	return n
}

// ---- pass 1: declarations ----

func (b *Builder) buildDecls(scope *ModuleScope, fileID source.FileID, nodes []ast.Node) {
	src := b.store.Bytes(fileID)
	for _, raw := range nodes {
		n := unwrap(raw)
		switch n.Kind {
		case ast.NodeModStatement:
			name := n.Name.Text(src)
			child := b.newScope(name)
			b.buildDecls(child, n.TreeFileID, n.ModTree)
			if !scope.insertSubmodule(name, child.ID) {
				b.record(Error{File: fileID, Span: n.Span, Name: name, Err: cerrs.ErrDuplicateSymbol})
			}

		case ast.NodeFunctionDeclaration:
			name := n.Name.Text(src)
			sym := Symbol{
				Kind:       SymbolFunction,
				Name:       name,
				Params:     classifyParams(n.Params, src),
				ReturnType: classifyReturn(n.ReturnType, src),
			}
			b.insert(scope, fileID, n.Span, name, sym)

		case ast.NodeViewportDeclaration:
			name := n.Name.Text(src)
			sym := Symbol{
				Kind:   SymbolViewport,
				Name:   name,
				Params: classifyParams(n.Params, src),
			}
			b.insert(scope, fileID, n.Span, name, sym)

		case ast.NodeComponentDeclaration:
			name := n.Name.Text(src)
			b.insert(scope, fileID, n.Span, name, Symbol{Kind: SymbolComponent, Name: name})

		case ast.NodeTypeDeclaration:
			name := n.Name.Text(src)
			b.insert(scope, fileID, n.Span, name, Symbol{Kind: SymbolType, Name: name})

		case ast.NodeTraitDeclaration:
			name := n.Name.Text(src)
			b.insert(scope, fileID, n.Span, name, Symbol{Kind: SymbolTrait, Name: name})

		case ast.NodeImplementBlock:
			// ImplementBlock has no declared name of its own; it is
			// keyed by the qualified name of the type it implements
			// for, since that is the only name spec.md §4.E's pass 1
			// has to offer it (documented in DESIGN.md as an open-
			// question resolution).
			name := strings.Join(qualifiedName(n.Implementor, src), "/")
			b.insert(scope, fileID, n.Span, name, Symbol{Kind: SymbolImplement, Name: name})

		case ast.NodeUsingStatement, ast.NodeEOF:
			// handled in pass 2 / carries no declaration
		}
	}
}

func (b *Builder) insert(scope *ModuleScope, fileID source.FileID, span source.Span, name string, sym Symbol) {
	if !scope.insertSymbol(name, sym) {
		b.record(Error{File: fileID, Span: span, Name: name, Err: cerrs.ErrDuplicateSymbol})
	}
}

func classifyParams(params []ast.Param, src []byte) []Param {
	out := make([]Param, len(params))
	for i, p := range params {
		out[i] = Param{Name: p.Name.Text(src), Type: ClassifyType(p.Type, src)}
	}
	return out
}

func classifyReturn(rt *ast.Path, src []byte) TypeTag {
	if rt == nil {
		return TypeTag{Kind: Nothing}
	}
	return ClassifyType(*rt, src)
}

// ---- pass 2: imports ----

func (b *Builder) buildAliases(scope *ModuleScope, fileID source.FileID, nodes []ast.Node) {
	src := b.store.Bytes(fileID)
	for _, raw := range nodes {
		n := unwrap(raw)
		switch n.Kind {
		case ast.NodeUsingStatement:
			b.applyUsing(scope, fileID, n.Span, n.Using, src)

		case ast.NodeModStatement:
			name := n.Name.Text(src)
			if id, ok := scope.Submodule(name); ok {
				b.buildAliases(b.scopes[id], n.TreeFileID, n.ModTree)
			}
		}
	}
}

// applyUsing implements spec.md §4.E pass 2's path-walk rule: all but
// the last segment select nested submodules from the current scope;
// the last segment's name becomes both the alias key inserted into the
// statement's owning scope and the name resolved, one level deeper, to
// find the module scope the alias points at. Multi segments expand
// into one walk per grouped path, each prefixed by whatever segments
// were already consumed (spec.md §4.D, §4.E).
func (b *Builder) applyUsing(owner *ModuleScope, fileID source.FileID, span source.Span, path ast.Path, src []byte) {
	b.walkUsing(owner, owner, fileID, span, path.Segments, src)
}

func (b *Builder) walkUsing(owner, target *ModuleScope, fileID source.FileID, span source.Span, segs []ast.Segment, src []byte) {
	if len(segs) == 0 {
		return
	}
	seg := segs[0]
	rest := segs[1:]

	if seg.Kind == ast.SegmentMulti {
		for _, sub := range seg.Group {
			combined := append(append([]ast.Segment{}, sub.Segments...), rest...)
			b.walkUsing(owner, target, fileID, span, combined, src)
		}
		return
	}

	name := seg.Name.Text(src)
	next, ok := target.Submodule(name)
	if !ok {
		if _, isSymbol := target.Symbol(name); isSymbol {
			b.record(Error{File: fileID, Span: span, Name: name, Err: cerrs.ErrNotAModule})
		} else {
			b.record(Error{File: fileID, Span: span, Name: name, Err: cerrs.ErrUnresolvedUsing})
		}
		return
	}

	if len(rest) == 0 {
		if !owner.insertSymbol(name, Symbol{Kind: SymbolAlias, Name: name, AliasTarget: next}) {
			b.record(Error{File: fileID, Span: span, Name: name, Err: cerrs.ErrDuplicateSymbol})
		}
		return
	}

	b.walkUsing(owner, b.scopes[next], fileID, span, rest, src)
}
