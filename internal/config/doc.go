// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package config manages JSON configuration loading for the pipec
// compiler driver. It handles debug flags, the arena's default
// capacity, the optional artifact cache's directory, and the parser's
// failure policy and module-path delimiter. Configuration is loaded
// from a pipec.json file with sensible defaults.
package config
