// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package source_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pipec-lang/pipec/internal/pipec/arena"
	"github.com/pipec-lang/pipec/internal/pipec/source"
)

func TestOpenAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "root.pipec")
	if err := os.WriteFile(path, []byte("module foo;\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	a := arena.New(arena.KiB(4))
	store := source.NewStore(a)

	id, err := store.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if got := string(store.Bytes(id)); got != "module foo;\n" {
		t.Errorf("bytes: want %q, got %q", "module foo;\n", got)
	}
	if got := store.Path(id); got != path {
		t.Errorf("path: want %q, got %q", path, got)
	}
}

func TestOpenMissingFileIsIOError(t *testing.T) {
	a := arena.New(arena.KiB(1))
	store := source.NewStore(a)

	_, err := store.Open(filepath.Join(t.TempDir(), "nope.pipec"))
	if err == nil {
		t.Fatal("want error, got nil")
	}
	var ioErr *source.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("want *source.IOError, got %T", err)
	}
}

func TestOpenSamePathTwiceYieldsDistinctIDs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.pipec")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	a := arena.New(arena.KiB(1))
	store := source.NewStore(a)

	id1, err := store.Open(path)
	if err != nil {
		t.Fatalf("open 1: %v", err)
	}
	id2, err := store.Open(path)
	if err != nil {
		t.Fatalf("open 2: %v", err)
	}
	if id1 == id2 {
		t.Errorf("want distinct ids, got %d and %d", id1, id2)
	}
}

func TestPositionOf(t *testing.T) {
	src := []byte("ab\ncd\nef")
	for _, tc := range []struct {
		offset int
		want   source.Position
	}{
		{0, source.Position{Line: 1, Col: 1}},
		{2, source.Position{Line: 1, Col: 3}},
		{3, source.Position{Line: 2, Col: 1}},
		{6, source.Position{Line: 3, Col: 1}},
	} {
		if got := source.PositionOf(src, tc.offset); got != tc.want {
			t.Errorf("offset %d: want %+v, got %+v", tc.offset, tc.want, got)
		}
	}
}
