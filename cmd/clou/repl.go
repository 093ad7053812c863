package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/peterh/liner"
	"github.com/rs/zerolog"

	"clou/interpreter"
	"clou/internal/config"
	"clou/module"
)

var replCompletionWords = []string{
	"let", "const", "function", "return", "if", "else", "while", "for",
	"class", "new", "extends", "this", "super", "null", "true", "false",
	"and", "or", "not", "print", "len", "clock", "require", "exports",
}

const replHistoryFile = ".clou_history"

func replCmd(args []string, cfg *config.Config, logger zerolog.Logger) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(partial string) []string {
		var matches []string
		for _, w := range replCompletionWords {
			if len(partial) > 0 && len(w) >= len(partial) && w[:len(partial)] == partial {
				matches = append(matches, w)
			}
		}
		return matches
	})

	historyPath := filepath.Join(os.TempDir(), replHistoryFile)
	if cfg.Repl.History {
		if f, err := os.Open(historyPath); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				line.WriteHistory(f)
				f.Close()
			}
		}()
	}

	loader := module.NewLoaderWithRoots(module.NewMemoryStore(), cfg.Module.Roots)
	engine := interpreter.New(os.Stdout, loader)

	fmt.Println("Clou REPL — type 'exit' or Ctrl+D to quit")

	for {
		input, err := line.Prompt("clou> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println("^C")
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Println()
				return
			}
			fmt.Fprintf(os.Stderr, "clou: %v\n", err)
			continue
		}

		if input == "exit" || input == "quit" {
			return
		}
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if err := engine.RunPrompt(input); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			logger.Debug().Err(err).Msg("run_prompt error")
		}
	}
}
