// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package main implements the pipec compiler front end's command-line
// driver: argument parsing, configuration loading, and the exit-code
// mapping spec.md §6 defines. Lexing, parsing, module resolution, and
// symbol-tree construction all live in internal/pipec/...; this file
// only wires them together and reports the result.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/maloquacious/semver"
	"github.com/spf13/cobra"

	"github.com/dustin/go-humanize"

	"github.com/pipec-lang/pipec/cerrs"
	"github.com/pipec-lang/pipec/internal/config"
	"github.com/pipec-lang/pipec/internal/pipec/arena"
	"github.com/pipec-lang/pipec/internal/pipec/cache"
	"github.com/pipec-lang/pipec/internal/pipec/compiler"
	"github.com/pipec-lang/pipec/internal/pipec/lexer"
	"github.com/pipec-lang/pipec/internal/pipec/source"
)

var (
	version = semver.Version{
		Major: 0,
		Minor: 1,
		Patch: 0,
		Build: semver.Commit(),
	}
	globalConfig *config.Config
)

func main() {
	// if version is on the command line, show it and exit
	for _, arg := range os.Args {
		if arg == "-version" || arg == "--version" {
			fmt.Printf("%s\n", version.Short())
			return
		} else if arg == "-build-info" || arg == "--build-info" {
			fmt.Printf("%s\n", version.String())
			return
		}
	}
	log.SetFlags(log.Lshortfile | log.Ltime)

	const configFileName = "pipec.json"
	// set the debug flag only if there is a configuration file to debug
	debugConfigFile := false
	if sb, err := os.Stat(configFileName); err == nil && sb.Mode().IsRegular() {
		debugConfigFile = true
	}
	cfg, err := config.Load(configFileName, debugConfigFile)
	if err != nil && debugConfigFile {
		log.Printf("[config] %q: %v\n", configFileName, err)
	}

	os.Exit(Execute(cfg))
}

// Execute wires the cobra command tree and runs it, returning the
// process exit code spec.md §6 specifies: 0 success, 1 compilation
// error (lex/parse/resolve diagnostics), 2 I/O error, 3 invalid usage.
func Execute(cfg *config.Config) int {
	if cfg == nil || !cfg.AllowConfig {
		globalConfig = config.Default()
	} else {
		globalConfig = cfg
	}

	cmdRoot.PersistentFlags().BoolVar(&argsRoot.showVersion, "show-version", false, "show version")
	cmdRoot.PersistentFlags().StringVar(&argsRoot.logFile.name, "log-file", "", "set log file")

	// Flag defaults come from globalConfig: the loaded pipec.json when it
	// sets AllowConfig, config.Default() otherwise. The command line
	// overrides either per invocation.
	cmdCompile.Flags().StringVar(&argsRoot.compile.cacheDir, "cache-dir", globalConfig.Cache.Dir, "optional path to the artifact cache directory")
	cmdCompile.Flags().IntVar(&argsRoot.compile.arenaMiB, "arena-mib", globalConfig.Arena.CapacityMiB, "arena capacity, in mebibytes")
	cmdCompile.Flags().BoolVar(&argsRoot.compile.failFast, "fail-fast", globalConfig.Parser.FailFast, "stop at the first diagnostic instead of batching")
	cmdCacheStat.Flags().StringVar(&argsRoot.cache.dir, "cache-dir", globalConfig.Cache.Dir, "path to the artifact cache directory")
	cmdCacheClear.Flags().StringVar(&argsRoot.cache.dir, "cache-dir", globalConfig.Cache.Dir, "path to the artifact cache directory")

	cmdCache.AddCommand(cmdCacheStat, cmdCacheClear)
	cmdRoot.AddCommand(cmdCompile, cmdVersion, cmdCache)

	if err := cmdRoot.Execute(); err != nil {
		return exitCodeFor(err)
	}
	return 0
}

var argsRoot struct {
	logFile struct {
		name string
		fd   *os.File
	}
	showVersion bool
	compile     struct {
		cacheDir string
		arenaMiB int
		failFast bool
	}
	cache struct {
		dir string
	}
}

var cmdRoot = &cobra.Command{
	Use:   "pipec",
	Short: "Compile a pipec source tree's front end",
	Long:  `Lex, parse, and resolve the module/symbol graph for a pipec root source file.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if argsRoot.logFile.name != "" {
			fd, err := os.OpenFile(argsRoot.logFile.name, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
			if err != nil {
				return err
			}
			argsRoot.logFile.fd = fd
			log.SetOutput(argsRoot.logFile.fd)
			argsRoot.showVersion = true
		}
		if argsRoot.showVersion {
			log.Printf("version: %s\n", version)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if argsRoot.logFile.fd != nil {
			if err := log.Output(2, "log file closed"); err != nil {
				return err
			} else if err = argsRoot.logFile.fd.Close(); err != nil {
				return err
			}
		}
		return nil
	},
	SilenceUsage: true,
}

var cmdCompile = &cobra.Command{
	Use:   "compile <root-file>",
	Short: "Lex, parse, and resolve the module/symbol graph for a root source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := compiler.ModeBatch
		if argsRoot.compile.failFast {
			mode = compiler.ModeFailFast
		}
		delim := lexer.DefaultPathDelimiter
		if pd := globalConfig.Parser.PathDelimiter; pd != "" {
			delim = pd[0]
		}
		// Any debug flag set in globalConfig (so in pipec.json only when
		// it also sets AllowConfig) turns on the driver's own
		// startup/shutdown log lines: this front end has no separate
		// per-phase tracer for Lexer/Parser/Symbols to hook into, so
		// the finer-grained flags fold into the one log line Compile
		// emits rather than silently doing nothing.
		debug := argsRoot.showVersion || globalConfig.DebugFlags.Compiler ||
			globalConfig.DebugFlags.Lexer || globalConfig.DebugFlags.Parser ||
			globalConfig.DebugFlags.Symbols || globalConfig.DebugFlags.LogTime ||
			globalConfig.DebugFlags.LogFile
		d, err := compiler.New(
			compiler.WithCapacity(arena.MiB(argsRoot.compile.arenaMiB)),
			compiler.WithMode(mode),
			compiler.WithCacheDir(argsRoot.compile.cacheDir),
			compiler.WithDebug(debug),
			compiler.WithPathDelimiter(delim),
		)
		if err != nil {
			return err
		}

		result, err := d.Compile(args[0])
		if err != nil {
			return err
		}
		for _, diag := range result.Diagnostics {
			fmt.Fprintln(os.Stderr, diag.Error())
		}
		if len(result.Diagnostics) > 0 {
			return fmt.Errorf("%w: %d diagnostic(s)", cerrs.ErrCompilationFailed, len(result.Diagnostics))
		}

		fmt.Printf("ok: %d module scope(s)\n", len(result.Scopes))
		return nil
	},
}

var cmdCache = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the optional artifact cache",
}

var cmdCacheStat = &cobra.Command{
	Use:   "stat",
	Short: "Report the artifact cache's entry count and size",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if argsRoot.cache.dir == "" {
			return fmt.Errorf("%w: --cache-dir is required", cerrs.ErrInvalidUsage)
		}
		c, err := cache.Open(argsRoot.cache.dir)
		if err != nil {
			return err
		}
		defer c.Close()

		count, size, err := c.Stat()
		if err != nil {
			return err
		}
		fmt.Printf("%d artifact(s), %s\n", count, humanize.Bytes(uint64(size)))
		return nil
	},
}

var cmdCacheClear = &cobra.Command{
	Use:   "clear",
	Short: "Delete every artifact from the cache",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if argsRoot.cache.dir == "" {
			return fmt.Errorf("%w: --cache-dir is required", cerrs.ErrInvalidUsage)
		}
		c, err := cache.Open(argsRoot.cache.dir)
		if err != nil {
			return err
		}
		defer c.Close()
		return c.Clear()
	},
}

// exitCodeFor classifies a failed compilation's error into the exit
// code spec.md §6 assigns it.
func exitCodeFor(err error) int {
	if errors.Is(err, cerrs.ErrInvalidUsage) {
		return 3
	}
	var ioErr *source.IOError
	if errors.As(err, &ioErr) {
		return 2
	}
	return 1
}
