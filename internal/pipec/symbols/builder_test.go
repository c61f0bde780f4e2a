// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package symbols_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pipec-lang/pipec/internal/pipec/arena"
	"github.com/pipec-lang/pipec/internal/pipec/parser"
	"github.com/pipec-lang/pipec/internal/pipec/source"
	"github.com/pipec-lang/pipec/internal/pipec/symbols"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func build(t *testing.T, root string) (*symbols.ModuleScope, []*symbols.ModuleScope, []symbols.Error) {
	t.Helper()
	a := arena.New(arena.MiB(4))
	store := source.NewStore(a)
	id, err := store.Open(root)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	nodes, pdiags, err := parser.Parse(store, id, parser.ModeBatch)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(pdiags) != 0 {
		t.Fatalf("unexpected parse diagnostics: %+v", pdiags)
	}
	scope, scopes, diags, err := symbols.Build(store, id, nodes, symbols.ModeBatch)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return scope, scopes, diags
}

// S2: using-only file with no matching submodule is a symbol error.
func TestUsingUnresolvedIsSymbolError(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "root.pipec")
	writeFile(t, root, "using std/graphics/color;\n")

	_, _, diags := build(t, root)
	if len(diags) != 1 {
		t.Fatalf("want 1 diagnostic, got %d: %+v", len(diags), diags)
	}
}

// S2 variant: when std/graphics/color all exist as inline modules, the
// alias resolves and "color" names it.
func TestUsingResolvesAlias(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "root.pipec")
	writeFile(t, root, `
module std { module graphics { module color { function hue() => nothing {} } } }
using std/graphics/color;
`)

	scope, scopes, diags := build(t, root)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	sym, ok := scope.Symbol("color")
	if !ok {
		t.Fatal("want symbol \"color\", found none")
	}
	if sym.Kind != symbols.SymbolAlias {
		t.Fatalf("want SymbolAlias, got %v", sym.Kind)
	}
	target := scopes[sym.AliasTarget]
	if _, ok := target.Symbol("hue"); !ok {
		t.Fatal("alias target scope missing \"hue\"")
	}
}

// S3: function with generics and a return type.
func TestFunctionWithGenericsAndReturnType(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "root.pipec")
	writeFile(t, root, "function add[T: Number](x: T, y: T) => T { }\n")

	scope, _, diags := build(t, root)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	sym, ok := scope.Symbol("add")
	if !ok {
		t.Fatal("want symbol \"add\"")
	}
	if sym.Kind != symbols.SymbolFunction {
		t.Fatalf("want SymbolFunction, got %v", sym.Kind)
	}
	if len(sym.Params) != 2 {
		t.Fatalf("want 2 params, got %d", len(sym.Params))
	}
	for _, p := range sym.Params {
		if p.Type.Kind != symbols.Link || p.Type.String() != "T" {
			t.Errorf("param %s: want Link(T), got %+v", p.Name, p.Type)
		}
	}
	if sym.ReturnType.Kind != symbols.Link || sym.ReturnType.String() != "T" {
		t.Errorf("return type: want Link(T), got %+v", sym.ReturnType)
	}
}

// S4: built-in type classification.
func TestBuiltinTypeClassification(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "root.pipec")
	writeFile(t, root, "function f(a: integer32, b: floatport) => nothing { }\n")

	scope, _, diags := build(t, root)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	sym, _ := scope.Symbol("f")
	if sym.Params[0].Type.Kind != symbols.Integer32 {
		t.Errorf("param a: want Integer32, got %v", sym.Params[0].Type.Kind)
	}
	if sym.Params[1].Type.Kind != symbols.FloatPort {
		t.Errorf("param b: want FloatPort, got %v", sym.Params[1].Type.Kind)
	}
	if sym.ReturnType.Kind != symbols.Nothing {
		t.Errorf("return: want Nothing, got %v", sym.ReturnType.Kind)
	}
}

// S5: inline module shadows filesystem lookup.
func TestInlineModuleShadowsFilesystem(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "root.pipec")
	writeFile(t, root, "module utils { function id(x: integer32) => integer32 { } }\n")
	// a filesystem candidate also exists; it must never be consulted
	// because the module body was given inline (spec.md §4.D "module
	// <ident> { <top-level>* }").
	writeFile(t, filepath.Join(dir, "utils.pipec"), "function shouldNeverBeSeen() => nothing {}\n")

	scope, scopes, diags := build(t, root)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	id, ok := scope.Submodule("utils")
	if !ok {
		t.Fatal("want submodule \"utils\"")
	}
	utils := scopes[id]
	if _, ok := utils.Symbol("id"); !ok {
		t.Fatal("utils scope missing \"id\"")
	}
	if _, ok := utils.Symbol("shouldNeverBeSeen"); ok {
		t.Fatal("inline module leaked the filesystem candidate's symbols")
	}
}

// Duplicate symbol names within the same scope raise an error rather
// than silently overwriting (spec.md §9).
func TestDuplicateSymbolIsError(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "root.pipec")
	writeFile(t, root, "function f() => nothing {}\nfunction f() => nothing {}\n")

	_, _, diags := build(t, root)
	if len(diags) != 1 {
		t.Fatalf("want 1 diagnostic, got %d: %+v", len(diags), diags)
	}
}

// Alias reachability (spec.md §8 property 4): every alias target is
// some scope in the flat vector returned alongside the root.
func TestAliasReachability(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "root.pipec")
	writeFile(t, root, `
module a { module b { function f() => nothing {} } }
using a/b;
`)
	scope, scopes, diags := build(t, root)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	sym, ok := scope.Symbol("b")
	if !ok || sym.Kind != symbols.SymbolAlias {
		t.Fatalf("want alias \"b\", got %+v ok=%v", sym, ok)
	}
	if int(sym.AliasTarget) >= len(scopes) {
		t.Fatalf("alias target %d out of range of %d scopes", sym.AliasTarget, len(scopes))
	}
}
