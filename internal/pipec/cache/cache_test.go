// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package cache_test

import (
	"path/filepath"
	"testing"

	"github.com/pipec-lang/pipec/internal/pipec/cache"
)

func TestHashIsStable(t *testing.T) {
	a := cache.Hash([]byte("hello"))
	b := cache.Hash([]byte("hello"))
	if a != b {
		t.Errorf("Hash is not stable: %q != %q", a, b)
	}
	if a == cache.Hash([]byte("world")) {
		t.Errorf("Hash collided for different inputs")
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	c, err := cache.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()

	hash := cache.Hash([]byte("payload"))
	if _, ok := c.Get(hash); ok {
		t.Fatalf("expected a miss before any Put")
	}

	c.Put(hash, []byte("payload"))
	value, ok := c.Get(hash)
	if !ok {
		t.Fatalf("expected a hit after Put")
	}
	if string(value) != "payload" {
		t.Errorf("got %q, want %q", value, "payload")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	c1, err := cache.Open(path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	hash := cache.Hash([]byte("survives-reopen"))
	c1.Put(hash, []byte("survives-reopen"))
	if err := c1.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	c2, err := cache.Open(path)
	if err != nil {
		t.Fatalf("second Open on an existing cache file: %v", err)
	}
	defer c2.Close()

	value, ok := c2.Get(hash)
	if !ok || string(value) != "survives-reopen" {
		t.Errorf("expected the blob to survive a close/reopen, got %q, %v", value, ok)
	}
}

func TestPutOverwritesExistingHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	c, err := cache.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()

	hash := cache.Hash([]byte("v1"))
	c.Put(hash, []byte("v1"))
	c.Put(hash, []byte("v2")) // same key, different value: tests ON CONFLICT DO UPDATE

	value, ok := c.Get(hash)
	if !ok {
		t.Fatalf("expected a hit")
	}
	if string(value) != "v2" {
		t.Errorf("got %q, want %q after overwrite", value, "v2")
	}
}

func TestStatReportsCountAndSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	c, err := cache.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()

	if count, size, err := c.Stat(); err != nil || count != 0 || size != 0 {
		t.Fatalf("expected an empty cache to report 0, 0, got %d, %d, %v", count, size, err)
	}

	c.Put(cache.Hash([]byte("aaa")), []byte("aaa"))
	c.Put(cache.Hash([]byte("bbbb")), []byte("bbbb"))

	count, size, err := c.Stat()
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}
	if size != 7 {
		t.Errorf("expected total size 7, got %d", size)
	}
}

func TestClearRemovesEveryArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	c, err := cache.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()

	hash := cache.Hash([]byte("payload"))
	c.Put(hash, []byte("payload"))

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := c.Get(hash); ok {
		t.Errorf("expected a miss after Clear")
	}
	if count, _, err := c.Stat(); err != nil || count != 0 {
		t.Errorf("expected Stat to report 0 artifacts after Clear, got %d, %v", count, err)
	}
}
