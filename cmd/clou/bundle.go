package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"clou/module"
)

func bundleCmd(args []string, logger zerolog.Logger) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "clou bundle: usage: clou bundle OUT.cloub FILE...")
		os.Exit(1)
	}
	out := args[0]
	files := args[1:]

	sources := make(map[string]string, len(files))
	for _, f := range files {
		content, err := os.ReadFile(f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "clou bundle: cannot read %q: %v\n", f, err)
			os.Exit(1)
		}
		sources[f] = string(content)
	}

	if err := module.WriteBundle(out, sources); err != nil {
		fmt.Fprintf(os.Stderr, "clou bundle: %v\n", err)
		os.Exit(1)
	}
	logger.Info().Str("out", out).Int("files", len(files)).Msg("bundle written")
	fmt.Printf("wrote %s (%d modules)\n", out, len(files))
}
