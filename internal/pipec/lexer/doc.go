// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package lexer turns a loaded source file's bytes into a stream of
// token.Token values. It keeps up to four characters of lookahead so it
// can disambiguate compound operators (->, =>, ==, !=, <=, >=, &&, ||,
// ::, +=, -=, *=, /=, %=) from their single-character prefixes without
// backtracking.
package lexer
