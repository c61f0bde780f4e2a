// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package source

import (
	"fmt"
	"os"

	"github.com/pipec-lang/pipec/internal/pipec/arena"
)

// FileID is a dense, non-negative integer identifying a loaded source
// file. The same logical path opened twice may receive a new id; the
// module-resolution cycle guard (internal/pipec/parser) ensures
// termination either way (spec.md §3).
type FileID int

// Store maps file ids to arena-backed byte slices containing each
// file's UTF-8 source. It never deduplicates by path.
type Store struct {
	arena *arena.Arena
	slabs []arena.Slice
	paths []string
}

// NewStore returns a Store that loads file bytes into a.
func NewStore(a *arena.Arena) *Store {
	return &Store{arena: a}
}

// Open reads path's bytes into the arena as a UTF-8 slice, appends it
// to the store, and returns the file's new dense id.
func (s *Store) Open(path string) (FileID, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, &IOError{Path: path, Err: err}
	}
	defer f.Close()

	slab, err := s.arena.AllocFromReader(f)
	if err != nil {
		return 0, &IOError{Path: path, Err: err}
	}

	id := FileID(len(s.slabs))
	s.slabs = append(s.slabs, slab)
	s.paths = append(s.paths, path)
	return id, nil
}

// Load returns the arena slice handle for a previously-issued id. Load
// is total over ids this Store has issued; passing an id it never
// issued is a programming error.
func (s *Store) Load(id FileID) arena.Slice {
	return s.slabs[id]
}

// Bytes returns the loaded bytes for id.
func (s *Store) Bytes(id FileID) []byte {
	return s.arena.DerefSlice(s.slabs[id])
}

// Path returns the path id was opened from.
func (s *Store) Path(id FileID) string {
	return s.paths[id]
}

// IOError reports a file-open or file-read failure. It carries the path
// and the underlying OS error, per spec.md §7.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
