// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package cache implements the optional, advisory, content-hash-keyed
// artifact cache spec.md §6 and §9 allow but do not require: an opaque
// []byte blob store keyed by a stable hash, backed by sqlite, with an
// in-process LRU in front of it so one compilation's repeated lookups
// for the same hash don't round-trip to disk. Its presence or absence
// must never change compilation output — nothing outside this package
// reads a cache hit as anything but a shortcut to a value it could have
// recomputed.
package cache
