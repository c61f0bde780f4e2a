// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package compiler

import (
	"log"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/pipec-lang/pipec/internal/pipec/arena"
	"github.com/pipec-lang/pipec/internal/pipec/cache"
	"github.com/pipec-lang/pipec/internal/pipec/lexer"
	"github.com/pipec-lang/pipec/internal/pipec/parser"
	"github.com/pipec-lang/pipec/internal/pipec/source"
	"github.com/pipec-lang/pipec/internal/pipec/symbols"
)

// Mode selects batch (collect every diagnostic, keep going) versus
// fail-fast (stop at the first one) for both parsing and symbol
// resolution, per spec.md §4.D.2 and §7.
type Mode int

const (
	ModeBatch Mode = iota
	ModeFailFast
)

// Driver runs a single compilation end to end: open the root file,
// lex and parse it (recursively expanding filesystem modules), then
// build its module scope graph (spec.md §2's "Driver" row, §5's
// single-threaded synchronous model).
type Driver struct {
	capacity arena.Size
	mode     Mode
	cacheDir string
	debug    bool
	delim    byte
}

// Options is a slice of functional Options applied in order, following
// the teacher's apps/rest Option pattern.
type Options []Option

// Option configures a Driver.
type Option func(*Driver) error

// WithCapacity sets the arena's capacity. The zero value leaves
// arena.DefaultCapacity (1 GiB, spec.md §5) in effect.
func WithCapacity(capacity arena.Size) Option {
	return func(d *Driver) error {
		if capacity != 0 {
			d.capacity = capacity
		}
		return nil
	}
}

// WithMode sets the batch/fail-fast policy for this compilation.
func WithMode(mode Mode) Option {
	return func(d *Driver) error {
		d.mode = mode
		return nil
	}
}

// WithCacheDir points the driver at an on-disk directory for the
// optional content-hash-keyed artifact cache (spec.md §6). An empty
// path (the default) disables the cache entirely.
func WithCacheDir(dir string) Option {
	return func(d *Driver) error {
		d.cacheDir = dir
		return nil
	}
}

// WithDebug enables the driver's startup/shutdown log lines.
func WithDebug(debug bool) Option {
	return func(d *Driver) error {
		d.debug = debug
		return nil
	}
}

// WithPathDelimiter sets the byte the lexer additionally accepts as a
// module-path segment separator, alongside `/` (spec.md §4.D, §9).
// The zero value leaves lexer.DefaultPathDelimiter in effect.
func WithPathDelimiter(delim byte) Option {
	return func(d *Driver) error {
		d.delim = delim
		return nil
	}
}

// New returns a Driver configured with the given options, defaulting
// to a 1 GiB arena in batch mode with no cache.
func New(opts ...Option) (*Driver, error) {
	d := &Driver{capacity: arena.DefaultCapacity, mode: ModeBatch, delim: lexer.DefaultPathDelimiter}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Result is the outcome of one compilation: the root module scope, the
// flat vector every scope ID in it indexes into, and every diagnostic
// collected along the way (empty in ModeFailFast once an error has been
// returned).
type Result struct {
	RunID       string
	Store       *source.Store
	RootID      source.FileID
	Root        *symbols.ModuleScope
	Scopes      []*symbols.ModuleScope
	Diagnostics []Diagnostic
}

// Compile runs the whole pipeline — open, lex+parse (with recursive
// module resolution), then build the symbol tree — over the file at
// rootPath. I/O and arena-OOM errors are always fatal and returned
// directly (spec.md §7); lex/parse/symbol errors are surfaced as
// Diagnostics on Result, with err non-nil only in ModeFailFast.
func (d *Driver) Compile(rootPath string) (*Result, error) {
	runID := uuid.NewString()
	if d.debug {
		log.Printf("[compiler] %s: capacity=%s root=%s\n", runID, humanize.Bytes(uint64(d.capacity.Bytes())), rootPath)
	}

	var c *cache.Cache
	if d.cacheDir != "" {
		var err error
		c, err = cache.Open(d.cacheDir)
		if err != nil {
			// The cache is advisory; a failure to open it must not fail
			// the compilation (spec.md §6).
			log.Printf("[compiler] %s: cache unavailable: %v\n", runID, err)
		} else {
			defer c.Close()
		}
	}

	a := arena.New(d.capacity)
	store := source.NewStore(a)

	rootID, err := store.Open(rootPath)
	if err != nil {
		return nil, err
	}

	pMode := parser.ModeBatch
	sMode := symbols.ModeBatch
	if d.mode == ModeFailFast {
		pMode = parser.ModeFailFast
		sMode = symbols.ModeFailFast
	}

	nodes, pdiags, err := parser.ParseWithDelimiter(store, rootID, pMode, d.delim)
	if err != nil {
		return nil, err
	}

	var diags []Diagnostic
	for _, pd := range pdiags {
		diags = append(diags, fromParseDiagnostic(store, pd))
	}

	if c != nil {
		cacheArtifact(c, store, rootID)
	}

	root, scopes, sdiags, err := symbols.Build(store, rootID, nodes, sMode)
	if err != nil {
		for _, sd := range sdiags {
			diags = append(diags, fromSymbolError(store, sd))
		}
		return &Result{RunID: runID, Store: store, RootID: rootID, Diagnostics: diags}, err
	}
	for _, sd := range sdiags {
		diags = append(diags, fromSymbolError(store, sd))
	}

	if d.debug {
		log.Printf("[compiler] %s: %d diagnostic(s), %d scope(s)\n", runID, len(diags), len(scopes))
	}

	return &Result{
		RunID:       runID,
		Store:       store,
		RootID:      rootID,
		Root:        root,
		Scopes:      scopes,
		Diagnostics: diags,
	}, nil
}

// cacheArtifact opportunistically records the root file's bytes under
// their own content hash. It has no effect on Compile's output: nothing
// in Compile reads the blob back, and the root file is always read from
// disk through the source store (spec.md §6).
func cacheArtifact(c *cache.Cache, store *source.Store, rootID source.FileID) {
	bytes := store.Bytes(rootID)
	hash := cache.Hash(bytes)
	if _, ok := c.Get(hash); !ok {
		c.Put(hash, bytes)
	}
}
