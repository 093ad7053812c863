package main

import (
	"fmt"
	"os"
	"sort"

	humanize "github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"clou/internal/config"
	"clou/module"
)

// modulesCmd implements `clou modules stats [--store memory|sqlite]`: it
// loads the given bundle into the selected store and prints each
// module's size (formatted with go-humanize) and content hash.
func modulesCmd(args []string, cfg *config.Config, logger zerolog.Logger) {
	if len(args) == 0 || args[0] != "stats" {
		fmt.Fprintln(os.Stderr, "clou modules: usage: clou modules stats [FILE.cloub] [--store memory|sqlite]")
		os.Exit(1)
	}

	storeKind := cfg.Module.Store
	var bundlePath string
	rest := args[1:]
	for idx := 0; idx < len(rest); idx++ {
		a := rest[idx]
		if a == "--store" && idx+1 < len(rest) {
			idx++
			a = "--store=" + rest[idx]
		}
		switch a {
		case "--store=sqlite":
			storeKind = "sqlite"
		case "--store=memory":
			storeKind = "memory"
		default:
			bundlePath = a
		}
	}

	var store module.Store
	switch storeKind {
	case "sqlite":
		path := cfg.Module.SQLitePath
		if path == "" {
			path = "clou-modules.db"
		}
		sqliteStore, err := module.OpenSQLiteStore(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "clou modules: %v\n", err)
			os.Exit(1)
		}
		defer sqliteStore.Close()
		store = sqliteStore
	default:
		store = module.NewMemoryStore()
	}

	sources := map[string]string{}
	if bundlePath != "" {
		bundle, err := module.LoadBundle(bundlePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "clou modules: %v\n", err)
			os.Exit(1)
		}
		for path, content := range bundle.Files() {
			sources[path] = content
			store.AddFile(path, content)
		}
	}

	logger.Debug().Str("store", storeKind).Int("modules", len(sources)).Msg("modules stats")

	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		content := sources[name]
		fmt.Printf("%-30s %10s  %s\n", name, humanize.Bytes(uint64(len(content))), module.ContentHash(content))
	}
	if len(names) == 0 {
		fmt.Println("(no modules loaded; pass a .cloub bundle path)")
	}
}
