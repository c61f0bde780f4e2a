// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"reflect"

	"github.com/pipec-lang/pipec/cerrs"
)

// Config holds the compiler driver's persisted defaults. It is loaded
// once at startup and merged with any command-line flags the caller
// supplies (internal/config/config.go's Default()/Load(path, debug)
// shape, carried over from the teacher's player-configuration layer).
type Config struct {
	AllowConfig bool         `json:"AllowConfig,omitempty"`
	DebugFlags  DebugFlags_t `json:"DebugFlags"`
	Arena       Arena_t      `json:"Arena"`
	Cache       Cache_t      `json:"Cache"`
	Parser      Parser_t     `json:"Parser"`
}

type DebugFlags_t struct {
	LogFile  bool `json:"LogFile,omitempty"`
	LogTime  bool `json:"LogTime,omitempty"`
	Lexer    bool `json:"Lexer,omitempty"`
	Parser   bool `json:"Parser,omitempty"`
	Symbols  bool `json:"Symbols,omitempty"`
	Compiler bool `json:"Compiler,omitempty"`
}

// Arena_t configures the bump allocator every compilation creates
// fresh (spec.md §5).
type Arena_t struct {
	CapacityMiB int `json:"CapacityMiB,omitempty"`
}

// Cache_t configures the optional, advisory content-hash-keyed
// artifact cache (spec.md §6).
type Cache_t struct {
	Dir string `json:"Dir,omitempty"`
}

// Parser_t configures the front end's failure policy (spec.md §4.D.2)
// and the module-path segment delimiter the lexer and parser agree on
// (spec.md §4.D's "implementations MUST pick one delimiter").
type Parser_t struct {
	FailFast      bool   `json:"FailFast,omitempty"`
	PathDelimiter string `json:"PathDelimiter,omitempty"`
}

func Default() *Config {
	return &Config{
		Arena: Arena_t{
			CapacityMiB: 1024,
		},
		Parser: Parser_t{
			PathDelimiter: "/",
		},
	}
}

func Load(name string, debug bool) (*Config, error) {
	if debug {
		log.Printf("[config] %q: loading configuration...\n", name)
	}
	// create a config with default values for the application
	cfg := Default()
	if sb, err := os.Stat(name); errors.Is(err, os.ErrNotExist) || os.IsNotExist(err) {
		if debug {
			log.Printf("[config] %q: %v\n", name, err)
		}
		return cfg, nil
	} else if sb.Mode().IsDir() {
		return cfg, cerrs.ErrNotAFile
	} else if !sb.Mode().IsRegular() {
		return cfg, cerrs.ErrNotAFile
	}

	var tmp Config
	if data, err := os.ReadFile(name); err != nil {
		if debug {
			log.Printf("[config] %q: %v\n", name, err)
		}
		return cfg, nil
	} else if err = json.Unmarshal(data, &tmp); err != nil {
		if debug {
			log.Printf("[config] %q: %v\n", name, err)
		}
		return cfg, nil
	} else if debug {
		if nice, err := json.MarshalIndent(tmp, "", "  "); err == nil {
			log.Printf("[config] %s\n", nice)
		} else {
			log.Printf("[config] %q: loaded %s\n", name, string(data))
		}
	}

	// copy over every value from tmp to config that isn't the default (zero) value
	copyNonZeroFields(&tmp, cfg)
	if cfg.Parser.PathDelimiter == "" {
		cfg.Parser.PathDelimiter = "/"
	}

	return cfg, nil
}

// copyNonZeroFields recursively copies non-zero fields from src to dst using reflection
func copyNonZeroFields(src, dst interface{}) {
	srcVal := reflect.ValueOf(src)
	dstVal := reflect.ValueOf(dst)

	// Dereference pointers
	if srcVal.Kind() == reflect.Ptr {
		srcVal = srcVal.Elem()
	}
	if dstVal.Kind() == reflect.Ptr {
		dstVal = dstVal.Elem()
	}

	// Only work with structs
	if srcVal.Kind() != reflect.Struct || dstVal.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < srcVal.NumField(); i++ {
		srcField := srcVal.Field(i)
		dstField := dstVal.Field(i)

		// Skip unexported fields
		if !srcField.CanInterface() || !dstField.CanSet() {
			continue
		}

		// Check if source field is zero value
		if srcField.IsZero() {
			continue
		}

		// Handle different field types
		switch srcField.Kind() {
		case reflect.Struct:
			// Recursively copy struct fields
			copyNonZeroFields(srcField.Interface(), dstField.Addr().Interface())
		default:
			// Copy primitive types and other values
			dstField.Set(srcField)
		}
	}
}
