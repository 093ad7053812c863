// Command clou is the REPL/file-runner driver for the Clou language: a
// thin consumer of package interpreter's embedding API, the way the
// teacher's own main.go is a thin consumer of its parser/interpreter.
package main

import (
	"fmt"
	"os"
	"strings"

	"clou/internal/config"
	"clou/internal/telemetry"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	configPath, args := extractConfigFlag(os.Args[1:])

	cfg, err := config.Load(configPath, os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "clou: %v\n", err)
		os.Exit(1)
	}
	logger := telemetry.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	switch args[0] {
	case "run":
		runCmd(args[1:], cfg, logger)
	case "repl":
		replCmd(args[1:], cfg, logger)
	case "bundle":
		bundleCmd(args[1:], logger)
	case "modules":
		modulesCmd(args[1:], cfg, logger)
	default:
		usage()
		os.Exit(1)
	}
}

// extractConfigFlag pulls the first "--config PATH" (or "--config=PATH"),
// wherever it appears, out of args, per the resolution order explicit --config flag > CLOU_CONFIG
// env var > ./clou.yaml > ~/.config/clou/clou.yaml. An empty return lets
// config.Load fall through to the env var and the rest of the order.
func extractConfigFlag(args []string) (path string, rest []string) {
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--config" && i+1 < len(args):
			path = args[i+1]
			rest = append(rest, args[:i]...)
			rest = append(rest, args[i+2:]...)
			return path, rest
		case strings.HasPrefix(a, "--config="):
			path = strings.TrimPrefix(a, "--config=")
			rest = append(rest, args[:i]...)
			rest = append(rest, args[i+1:]...)
			return path, rest
		}
	}
	return "", args
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: clou [--config PATH] <command> [arguments]

Commands:
  run FILE [--watch]                run a Clou script
  repl                               start an interactive session
  bundle OUT.cloub FILE...          write a module bundle
  modules stats [--store memory|sqlite]  show module store diagnostics`)
}
