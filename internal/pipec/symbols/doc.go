// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package symbols walks a syntactic tree and builds the nested module
// scope graph spec.md §4.E describes: a two-pass declarations-then-
// aliases build per scope, with built-in/user-defined type
// classification for every parameter and return type along the way.
package symbols
