// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package parser

import (
	"os"
	"path/filepath"

	"github.com/pipec-lang/pipec/cerrs"
	"github.com/pipec-lang/pipec/internal/pipec/ast"
	"github.com/pipec-lang/pipec/internal/pipec/source"
)

// resolveModule implements spec.md §4.D.1: on `module <name>;`, resolve
// the declaration against the filesystem and recursively parse the
// module file it names.
func (p *parser) resolveModule(name source.Span, declSpan source.Span) (ast.Node, bool) {
	candidateDir := filepath.Join(p.dir, nameText(p.src, name), "mod.pipec")
	candidateFile := filepath.Join(p.dir, nameText(p.src, name)+".pipec")

	if p.guard.Contains(candidateDir) || p.guard.Contains(candidateFile) {
		p.coll.record(Diagnostic{
			File: p.fileID, Span: declSpan, Err: cerrs.ErrModuleCycle,
			Found: candidateDir + ", " + candidateFile,
		})
		return ast.Node{}, false
	}
	// Both candidates are pushed unconditionally, whether or not either
	// exists, preserving the source's eager guard behavior (spec.md §9).
	// They are popped again once this call returns — including the
	// recursive parse below having fully unwound — so the guard models
	// the current recursion frame rather than every path ever visited in
	// the compilation: two sibling modules that happen to import a
	// submodule of the same name must not see one another's entries.
	p.guard.Push(candidateDir)
	p.guard.Push(candidateFile)
	defer p.guard.Pop(candidateDir)
	defer p.guard.Pop(candidateFile)

	dirCandidateExists := fileExists(candidateDir)
	fileCandidateExists := fileExists(candidateFile)

	switch {
	case dirCandidateExists && fileCandidateExists:
		p.coll.record(Diagnostic{
			File: p.fileID, Span: declSpan, Err: cerrs.ErrModuleAmbiguous,
			Found: candidateDir + ", " + candidateFile,
		})
		return ast.Node{}, false
	case dirCandidateExists:
		return p.parseModuleFile(name, declSpan, candidateDir)
	case fileCandidateExists:
		return p.parseModuleFile(name, declSpan, candidateFile)
	default:
		p.coll.record(Diagnostic{
			File: p.fileID, Span: declSpan, Err: cerrs.ErrModuleNotFound,
			Found: candidateDir + ", " + candidateFile,
		})
		return ast.Node{}, false
	}
}

func (p *parser) parseModuleFile(name source.Span, declSpan source.Span, path string) (ast.Node, bool) {
	childID, err := p.store.Open(path)
	if err != nil {
		// I/O failures are always fatal for the compilation (spec.md §7),
		// unlike lex/parse/resolution diagnostics, which may be batched.
		panic(ioBailout{err: err})
	}
	tree := parseFile(p.store, childID, p.guard, p.coll, p.delim)
	return ast.Node{
		Kind:       ast.NodeModStatement,
		Span:       p.span(declSpan),
		Name:       name,
		ModTree:    tree,
		TreeFileID: childID,
	}, true
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func nameText(src []byte, span source.Span) string {
	return span.Text(src)
}
