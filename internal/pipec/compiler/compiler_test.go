// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package compiler_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pipec-lang/pipec/internal/pipec/arena"
	"github.com/pipec-lang/pipec/internal/pipec/compiler"
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

func TestCompileCleanTreeProducesNoDiagnostics(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "root.pipec")
	writeFile(t, root, `
module std {
	module graphics {
		module color {
			type rgb;
		}
	}
}

using std/graphics/color;

function area(radius: float32) => float32 {
	mutable pi = 3;
}
`)

	d, err := compiler.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result, err := d.Compile(root)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(result.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", result.Diagnostics)
	}
	if result.Root == nil {
		t.Fatalf("expected a non-nil root scope")
	}
	if len(result.Scopes) == 0 {
		t.Fatalf("expected at least one scope")
	}
	if result.RunID == "" {
		t.Errorf("expected a non-empty RunID")
	}
}

func TestCompileSurfacesParseDiagnostics(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "root.pipec")
	writeFile(t, root, `module nowhere;`)

	d, err := compiler.New(compiler.WithMode(compiler.ModeBatch))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result, err := d.Compile(root)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(result.Diagnostics) == 0 {
		t.Fatalf("expected a module-not-found diagnostic")
	}
}

func TestCompileFailFastReturnsError(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "root.pipec")
	writeFile(t, root, `module nowhere;`)

	d, err := compiler.New(compiler.WithMode(compiler.ModeFailFast))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = d.Compile(root)
	if err == nil {
		t.Fatalf("expected an error in fail-fast mode")
	}
}

func TestCompileWithCacheDirIsAdvisoryOnly(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "root.pipec")
	writeFile(t, root, `function entry() { }`)

	cacheDir := filepath.Join(t.TempDir(), "cache.db")
	d, err := compiler.New(compiler.WithCacheDir(cacheDir))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result, err := d.Compile(root)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(result.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", result.Diagnostics)
	}

	// A second compilation pointed at the same cache directory must
	// produce an identical result; the cache's presence must not
	// change compilation output (spec.md §6).
	result2, err := d.Compile(root)
	if err != nil {
		t.Fatalf("second Compile: %v", err)
	}
	if len(result2.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics on second run: %+v", result2.Diagnostics)
	}
	if len(result2.Scopes) != len(result.Scopes) {
		t.Errorf("cache presence changed scope count: %d != %d", len(result2.Scopes), len(result.Scopes))
	}
}

func TestCompileMissingRootIsFatalError(t *testing.T) {
	d, err := compiler.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = d.Compile(filepath.Join(t.TempDir(), "does-not-exist.pipec"))
	if err == nil {
		t.Fatalf("expected an I/O error for a missing root file")
	}
}

func TestWithCapacityOverridesDefault(t *testing.T) {
	d, err := compiler.New(compiler.WithCapacity(arena.MiB(8)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d == nil {
		t.Fatalf("expected a non-nil Driver")
	}
}
