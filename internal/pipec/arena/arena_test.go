// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package arena_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/pipec-lang/pipec/internal/pipec/arena"
)

func TestAllocRoundTrip(t *testing.T) {
	a := arena.New(arena.KiB(4))

	type point struct {
		X, Y int32
	}

	h1 := mustAlloc(t, a, point{X: 1, Y: 2})
	h2 := mustAlloc(t, a, point{X: 3, Y: 4})

	if got := *arena.Deref(a, h1); got != (point{1, 2}) {
		t.Errorf("h1: want {1 2}, got %+v", got)
	}
	if got := *arena.Deref(a, h2); got != (point{3, 4}) {
		t.Errorf("h2: want {3 4}, got %+v", got)
	}
}

func mustAlloc[T any](t *testing.T, a *arena.Arena, v T) arena.Handle[T] {
	t.Helper()
	h, err := arena.Alloc(a, v)
	if err != nil {
		t.Fatalf("alloc: %v", err)
	}
	return h
}

func TestAllocSliceRoundTrip(t *testing.T) {
	a := arena.New(arena.KiB(1))
	s, err := a.AllocSlice(5)
	if err != nil {
		t.Fatalf("alloc slice: %v", err)
	}
	copy(a.DerefSlice(s), []byte("hello"))
	if got := string(a.DerefSlice(s)); got != "hello" {
		t.Errorf("want %q, got %q", "hello", got)
	}
}

func TestAllocFromReader(t *testing.T) {
	a := arena.New(arena.KiB(1))
	s, err := a.AllocFromReader(strings.NewReader("the quick brown fox"))
	if err != nil {
		t.Fatalf("alloc from reader: %v", err)
	}
	if got := string(a.DerefSlice(s)); got != "the quick brown fox" {
		t.Errorf("want %q, got %q", "the quick brown fox", got)
	}
}

func TestAllocFailsOnOOM(t *testing.T) {
	a := arena.New(arena.Size(8))
	if _, err := a.AllocSlice(4); err != nil {
		t.Fatalf("first alloc: %v", err)
	}
	_, err := a.AllocSlice(5)
	if err == nil {
		t.Fatal("want OOM error, got nil")
	}
	var oom *arena.OOMError
	if !errors.As(err, &oom) {
		t.Fatalf("want *arena.OOMError, got %T", err)
	}
}

func TestCapacityAndUsed(t *testing.T) {
	a := arena.New(arena.KiB(1))
	if a.Capacity() != 1024 {
		t.Errorf("capacity: want 1024, got %d", a.Capacity())
	}
	if a.Used() != 0 {
		t.Errorf("used: want 0, got %d", a.Used())
	}
	if _, err := a.AllocSlice(100); err != nil {
		t.Fatalf("alloc: %v", err)
	}
	if a.Used() != 100 {
		t.Errorf("used: want 100, got %d", a.Used())
	}
}
