// Package config loads cmd/clou's optional clou.yaml configuration, in the
// resolution-order and ${VAR} interpolation style the retrieval pack's
// YAML-backed config loader uses.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config is cmd/clou's configuration surface. Everything has a usable
// zero-value default (Defaults below), so a missing clou.yaml is fine.
type Config struct {
	Module ModuleConfig `yaml:"module"`
	Repl   ReplConfig   `yaml:"repl"`
	Log    LogConfig    `yaml:"log"`
}

type ModuleConfig struct {
	// Roots are directories searched, in order, for a module path that
	// doesn't resolve relative to the requiring module's own directory.
	Roots []string `yaml:"roots"`
	// Store selects the module.Store backend `clou modules stats` loads
	// into: "memory" or "sqlite". `clou run` and `clou repl` do not read it.
	Store string `yaml:"store"`
	// SQLitePath is the DSN used when Store is "sqlite".
	SQLitePath string `yaml:"sqlite_path"`
}

type ReplConfig struct {
	History bool `yaml:"history"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Defaults returns the configuration used when no clou.yaml is found.
func Defaults() *Config {
	return &Config{
		Module: ModuleConfig{Store: "memory"},
		Repl:   ReplConfig{History: true},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// Load resolves and parses clou.yaml per the search order: explicit path >
// CLOU_CONFIG env var > ./clou.yaml > ~/.config/clou/clou.yaml. A total
// miss is not an error — it returns Defaults().
func Load(explicitPath string, getenv func(string) string) (*Config, error) {
	path, ok := resolvePath(explicitPath, getenv)
	if !ok {
		return Defaults(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	data = interpolateEnv(data, getenv)

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}

func resolvePath(explicit string, getenv func(string) string) (string, bool) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit, true
		}
		return "", false
	}

	if envPath := getenv("CLOU_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, true
		}
		return "", false
	}

	if _, err := os.Stat("clou.yaml"); err == nil {
		return "clou.yaml", true
	}

	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "clou", "clou.yaml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath, true
		}
	}

	return "", false
}

// envPattern matches ${VAR} or ${VAR:-default}.
var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func interpolateEnv(data []byte, getenv func(string) string) []byte {
	return envPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		parts := envPattern.FindSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		val := getenv(string(parts[1]))
		if val == "" && len(parts) >= 3 && len(parts[2]) > 0 {
			val = string(parts[2])
		}
		return []byte(val)
	})
}
