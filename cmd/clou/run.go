package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"clou/interpreter"
	"clou/internal/config"
	"clou/module"
)

// diskStore is a module.Store that resolves GetFile misses against the
// real filesystem and remembers what it read, so `require` can pull in
// any file it resolves to without the caller having to preload every
// dependency up front. The top-level script's relative require paths
// resolve against the process's working directory, not the script's.
type diskStore struct {
	files map[string]string
}

func newDiskStore() *diskStore {
	return &diskStore{files: make(map[string]string)}
}

func (d *diskStore) AddFile(path, content string) { d.files[path] = content }

func (d *diskStore) GetFile(path string) (string, bool) {
	if c, ok := d.files[path]; ok {
		return c, true
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	d.files[path] = string(content)
	return string(content), true
}

func runCmd(args []string, cfg *config.Config, logger zerolog.Logger) {
	var watch, dumpAST bool
	var file string
	for _, a := range args {
		switch a {
		case "--watch":
			watch = true
		case "--ast":
			dumpAST = true
		default:
			file = a
		}
	}
	if file == "" {
		fmt.Fprintln(os.Stderr, "clou run: missing FILE argument")
		os.Exit(1)
	}

	if dumpAST {
		printAST(file)
	}

	if !watch {
		if !runOnce(file, cfg, logger) {
			os.Exit(1)
		}
		return
	}

	runWatching(file, cfg, logger)
}

func printAST(file string) {
	content, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "clou run --ast: cannot open %q: %v\n", file, err)
		return
	}
	stmts, err := interpreter.Parse(string(content))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return
	}
	for _, line := range interpreter.DumpAST(stmts) {
		fmt.Println(line)
	}
}

// runOnce loads and evaluates file with a fresh interpreter and module
// cache, reporting success.
func runOnce(file string, cfg *config.Config, logger zerolog.Logger) bool {
	store := newDiskStore()
	loader := module.NewLoaderWithRoots(store, cfg.Module.Roots)

	content, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "clou: cannot open %q: %v\n", file, err)
		return false
	}
	store.AddFile(file, string(content))

	absDir, _ := filepath.Abs(filepath.Dir(file))
	logger.Info().Str("file", file).Str("dir", absDir).Msg("run_file")

	engine := interpreter.New(os.Stdout, loader)
	if err := engine.RunFile(file); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		logger.Error().Err(err).Str("file", file).Msg("run_file failed")
		return false
	}
	return true
}

// runWatching re-runs file (and the directory it lives in, so a change to
// a required module also triggers a reload) whenever fsnotify reports a
// write, matching the teacher-pack's watcher debounce-free reload shape.
func runWatching(file string, cfg *config.Config, logger zerolog.Logger) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "clou: cannot start watcher: %v\n", err)
		os.Exit(1)
	}
	defer watcher.Close()

	dir := filepath.Dir(file)
	if err := watcher.Add(dir); err != nil {
		fmt.Fprintf(os.Stderr, "clou: cannot watch %q: %v\n", dir, err)
		os.Exit(1)
	}

	runOnce(file, cfg, logger)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Info().Str("event", event.Name).Msg("watch reload")
			fmt.Fprintf(os.Stderr, "\n--- reload (%s) ---\n", filepath.Base(event.Name))
			runOnce(file, cfg, logger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Error().Err(err).Msg("watcher error")
		}
	}
}
