// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package config_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pipec-lang/pipec/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("non-existent file", func(t *testing.T) {
		cfg, err := config.Load("non-existent-file.json", false)
		if err != nil {
			t.Errorf("expected no error for non-existent file, got %v", err)
		}
		if cfg == nil {
			t.Fatalf("expected non-nil config")
		}
		if cfg.Arena.CapacityMiB != 1024 {
			t.Errorf("expected default arena capacity 1024, got %d", cfg.Arena.CapacityMiB)
		}
		if cfg.Parser.PathDelimiter != "/" {
			t.Errorf("expected default path delimiter %q, got %q", "/", cfg.Parser.PathDelimiter)
		}
	})

	t.Run("directory error", func(t *testing.T) {
		tmpDir := t.TempDir()
		_, err := config.Load(tmpDir, false)
		if err == nil {
			t.Errorf("expected error for directory, got nil")
		}
	})

	t.Run("empty config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.json")

		if err := os.WriteFile(configFile, []byte("{}"), 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		cfg, err := config.Load(configFile, false)
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		if cfg.Arena.CapacityMiB != 1024 {
			t.Errorf("expected default arena capacity to survive an empty file, got %d", cfg.Arena.CapacityMiB)
		}
	})

	t.Run("partial config", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.json")

		testConfig := config.Config{
			AllowConfig: true,
			Cache:       config.Cache_t{Dir: "/tmp/pipec-cache"},
		}

		data, err := json.Marshal(testConfig)
		if err != nil {
			t.Fatalf("failed to marshal test config: %v", err)
		}
		if err := os.WriteFile(configFile, data, 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		cfg, err := config.Load(configFile, false)
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		if !cfg.AllowConfig {
			t.Errorf("expected AllowConfig to be true")
		}
		if cfg.Cache.Dir != "/tmp/pipec-cache" {
			t.Errorf("expected cache dir to be carried over, got %q", cfg.Cache.Dir)
		}
		// Unset fields should remain at their defaults.
		if cfg.Arena.CapacityMiB != 1024 {
			t.Errorf("expected arena capacity to remain default, got %d", cfg.Arena.CapacityMiB)
		}
	})

	t.Run("full config", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.json")

		testConfig := config.Config{
			AllowConfig: true,
			Arena:       config.Arena_t{CapacityMiB: 2048},
			Parser:      config.Parser_t{FailFast: true, PathDelimiter: "."},
		}

		data, err := json.Marshal(testConfig)
		if err != nil {
			t.Fatalf("failed to marshal test config: %v", err)
		}
		if err := os.WriteFile(configFile, data, 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		cfg, err := config.Load(configFile, false)
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		if cfg.Arena.CapacityMiB != 2048 {
			t.Errorf("expected arena capacity 2048, got %d", cfg.Arena.CapacityMiB)
		}
		if !cfg.Parser.FailFast {
			t.Errorf("expected FailFast to be true")
		}
		if cfg.Parser.PathDelimiter != "." {
			t.Errorf("expected path delimiter %q, got %q", ".", cfg.Parser.PathDelimiter)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.json")

		if err := os.WriteFile(configFile, []byte("not json"), 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		cfg, err := config.Load(configFile, true)
		if err != nil {
			t.Errorf("expected no error for invalid JSON, got %v", err)
		}
		if cfg.Arena.CapacityMiB != 1024 {
			t.Errorf("expected default config for invalid JSON, got %d", cfg.Arena.CapacityMiB)
		}
	})
}

func TestCopyNonZeroFields(t *testing.T) {
	t.Run("copy only non-zero fields, blank delimiter falls back to default", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.json")

		testConfig := config.Config{
			Arena: config.Arena_t{CapacityMiB: 4096},
			// Parser.PathDelimiter left unset; Load must still default it.
		}

		data, err := json.Marshal(testConfig)
		if err != nil {
			t.Fatalf("failed to marshal test config: %v", err)
		}
		if err := os.WriteFile(configFile, data, 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		cfg, err := config.Load(configFile, true)
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		if cfg.Arena.CapacityMiB != 4096 {
			t.Errorf("expected arena capacity 4096, got %d", cfg.Arena.CapacityMiB)
		}
		if cfg.Parser.PathDelimiter != "/" {
			t.Errorf("expected blank delimiter to fall back to %q, got %q", "/", cfg.Parser.PathDelimiter)
		}
		if cfg.Parser.FailFast != false {
			t.Errorf("expected FailFast to remain false (default)")
		}
	})
}
