// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package parser

// Guard is the recursion guard threaded through module resolution: the
// set of absolute candidate paths already pushed on the current call
// stack, used to refuse a module that would recurse into itself
// (spec.md §3, §4.D.1).
type Guard struct {
	seen map[string]bool
}

// NewGuard returns an empty recursion guard.
func NewGuard() *Guard {
	return &Guard{seen: make(map[string]bool)}
}

// Contains reports whether path is already on the current recursion
// frame.
func (g *Guard) Contains(path string) bool {
	return g.seen[path]
}

// Push adds path to the guard. Both module-resolution candidates are
// pushed unconditionally, whether or not either exists on disk — this
// preserves the source's eager behavior (spec.md §9) rather than
// narrowing the guard to only the chosen candidate.
func (g *Guard) Push(path string) {
	g.seen[path] = true
}

// Pop removes path from the guard. Callers pop a pushed candidate once
// the recursion it guarded against has returned, so that two sibling
// module declarations resolving the same submodule name don't see each
// other's entries as a false cycle — only a path still open on the
// current call stack counts (spec.md §3, §8 property 5).
func (g *Guard) Pop(path string) {
	delete(g.seen, path)
}
