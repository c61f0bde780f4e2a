// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package arena

import (
	"fmt"
	"io"
	"unsafe"

	"github.com/dustin/go-humanize"

	"github.com/pipec-lang/pipec/cerrs"
)

// Size is a capacity for an Arena, expressed in bytes.
type Size int

// KiB returns a Size of n kibibytes.
func KiB(n int) Size { return Size(n * 1024) }

// MiB returns a Size of n mebibytes.
func MiB(n int) Size { return Size(n * 1024 * 1024) }

// GiB returns a Size of n gibibytes.
func GiB(n int) Size { return Size(n * 1024 * 1024 * 1024) }

// Bytes returns the size as a plain byte count.
func (s Size) Bytes() int { return int(s) }

// DefaultCapacity is the arena capacity the driver uses when the caller
// does not configure one explicitly.
const DefaultCapacity = Size(1 << 30) // 1 GiB

// Arena is a bump-allocating byte buffer. It never compacts or frees;
// every handle it issues stays valid for the arena's whole lifetime.
type Arena struct {
	data []byte
	bump int
}

// New returns a new Arena with the given capacity.
func New(capacity Size) *Arena {
	return &Arena{data: make([]byte, capacity.Bytes())}
}

// Capacity returns the arena's total capacity in bytes.
func (a *Arena) Capacity() int { return len(a.data) }

// Used returns the number of bytes bump-allocated so far.
func (a *Arena) Used() int { return a.bump }

// Handle is an opaque, phantom-typed offset into an Arena. Handles carry
// no native pointer, so arena-held data can never form a Go-GC-visible
// reference cycle.
type Handle[T any] struct {
	offset int
}

// Slice is an opaque (start, end) byte-range handle into an Arena.
type Slice struct {
	Start int
	End   int
}

// Len returns the number of bytes the slice handle covers.
func (s Slice) Len() int { return s.End - s.Start }

// padding returns the number of pad bytes needed to align the bump
// cursor to align bytes.
func (a *Arena) padding(align int) int {
	if align <= 1 {
		return 0
	}
	rem := a.bump % align
	if rem == 0 {
		return 0
	}
	return align - rem
}

// Alloc places value at the current bump cursor, after any alignment
// padding T requires, and returns a handle to it.
func Alloc[T any](a *Arena, value T) (Handle[T], error) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	align := int(unsafe.Alignof(zero))
	pad := a.padding(align)
	need := pad + size
	if a.bump+need > len(a.data) {
		return Handle[T]{}, a.oomError(need)
	}
	offset := a.bump + pad
	*(*T)(unsafe.Pointer(&a.data[offset])) = value
	a.bump += need
	return Handle[T]{offset: offset}, nil
}

// Deref returns a mutable pointer to the value held at h. The pointer is
// valid for the arena's lifetime.
func Deref[T any](a *Arena, h Handle[T]) *T {
	return (*T)(unsafe.Pointer(&a.data[h.offset]))
}

// AllocSlice reserves n bytes and returns a handle to them. The bytes are
// zero-valued until the caller writes into DerefSlice's result.
func (a *Arena) AllocSlice(n int) (Slice, error) {
	if a.bump+n > len(a.data) {
		return Slice{}, a.oomError(n)
	}
	start := a.bump
	a.bump += n
	return Slice{Start: start, End: a.bump}, nil
}

// AllocFromReader streams bytes from r into the arena until EOF and
// returns a handle to the copied range. It fails with an I/O error if
// the reader fails, or an OOM error if capacity is exhausted first.
func (a *Arena) AllocFromReader(r io.Reader) (Slice, error) {
	start := a.bump
	for {
		if a.bump >= len(a.data) {
			return Slice{}, a.oomError(len(a.data) - start + 1)
		}
		n, err := r.Read(a.data[a.bump:])
		a.bump += n
		if err == io.EOF {
			break
		}
		if err != nil {
			return Slice{}, err
		}
		if n == 0 {
			break
		}
	}
	return Slice{Start: start, End: a.bump}, nil
}

// DerefSlice returns the bytes a slice handle covers.
func (a *Arena) DerefSlice(s Slice) []byte {
	return a.data[s.Start:s.End]
}

func (a *Arena) oomError(requested int) error {
	return &OOMError{
		Capacity:  len(a.data),
		Used:      a.bump,
		Requested: requested,
	}
}

// OOMError reports that an allocation would exceed the arena's capacity.
// It is always fatal for the current compilation (spec.md §5, §7).
type OOMError struct {
	Capacity  int
	Used      int
	Requested int
}

func (e *OOMError) Error() string {
	return fmt.Sprintf("arena: %s capacity, %s used, %s requested: %v",
		humanize.Bytes(uint64(e.Capacity)), humanize.Bytes(uint64(e.Used)), humanize.Bytes(uint64(e.Requested)), cerrs.ErrArenaOOM)
}

func (e *OOMError) Unwrap() error { return cerrs.ErrArenaOOM }
