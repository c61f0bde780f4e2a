// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package cache

import (
	"crypto/sha256"
	"database/sql"
	_ "embed"
	"encoding/hex"
	"errors"
	"log"
	"os"
	"path/filepath"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "modernc.org/sqlite"

	"github.com/pipec-lang/pipec/cerrs"
)

//go:embed schema.sql
var schemaDDL string

// Cache is an opaque-blob, content-hash-keyed store. It never changes
// a compilation's result — callers compute the value whether or not
// Get hits, and use Put only to make future Gets cheaper (spec.md §6).
type Cache struct {
	path string
	db   *sql.DB
	memo *lru.Cache[string, []byte]
}

// DefaultMemoSize is the in-process LRU's entry cap.
const DefaultMemoSize = 256

// Hash returns the stable content-hash key for data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Open opens (creating if necessary) the sqlite-backed cache at path.
// path names either the database file itself or an existing directory,
// in which case the database is the file cache.db inside it. Unlike
// internal/stores/sqlite's Create/Open split, Open is idempotent:
// a cache directory is advisory infrastructure, not a database whose
// existence is meaningful on its own (spec.md §6's "presence or absence
// of any blob MUST NOT change compilation output").
func Open(path string) (*Cache, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, "cache.db")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, &OpenError{Path: path, Err: err}
	}
	if _, err := db.Exec(schemaDDL); err != nil {
		_ = db.Close()
		return nil, &OpenError{Path: path, Err: err}
	}
	memo, err := lru.New[string, []byte](DefaultMemoSize)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Cache{path: path, db: db, memo: memo}, nil
}

// Stat reports the number of artifacts currently stored and their
// total blob size in bytes, for the `pipec cache stat` subcommand.
// Read-only: it never affects compilation output (spec.md §6, §9).
func (c *Cache) Stat() (count int, size int64, err error) {
	row := c.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(LENGTH(value)), 0) FROM artifacts`)
	if err := row.Scan(&count, &size); err != nil {
		return 0, 0, err
	}
	return count, size, nil
}

// Clear deletes every artifact and drops the in-process memo, for the
// `pipec cache clear` subcommand. A cleared cache is indistinguishable
// from one that was never populated: the next Get for any hash misses
// and the driver recomputes, exactly as if --cache-dir had been unset.
func (c *Cache) Clear() error {
	if _, err := c.db.Exec(`DELETE FROM artifacts`); err != nil {
		return err
	}
	c.memo.Purge()
	return nil
}

// Close closes the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the blob stored under hash, if any, checking the
// in-process LRU before the database.
func (c *Cache) Get(hash string) ([]byte, bool) {
	if v, ok := c.memo.Get(hash); ok {
		return v, true
	}
	var value []byte
	err := c.db.QueryRow(`SELECT value FROM artifacts WHERE hash = ?`, hash).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false
	}
	if err != nil {
		log.Printf("cache: get %s: %v\n", hash, err)
		return nil, false
	}
	c.memo.Add(hash, value)
	return value, true
}

// Put stores value under hash, replacing any prior blob for the same
// key. A write failure is logged and otherwise swallowed: the cache is
// advisory, so a failed Put never fails the compilation it's serving
// (spec.md §6, §7 — only I/O and arena OOM are fatal, and this is
// neither).
func (c *Cache) Put(hash string, value []byte) {
	_, err := c.db.Exec(
		`INSERT INTO artifacts (hash, value, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(hash) DO UPDATE SET value = excluded.value, created_at = excluded.created_at`,
		hash, value, time.Now().Unix(),
	)
	if err != nil {
		log.Printf("cache: put %s: %v\n", hash, err)
		return
	}
	c.memo.Add(hash, value)
}

// OpenError reports a failure to open or initialize the cache
// database. It always wraps cerrs.ErrCacheUnavailable so callers can
// treat the cache as absent and proceed without it.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *OpenError) Unwrap() error { return cerrs.ErrCacheUnavailable }
