// Package module implements the Clou module loader contract (§4.4): a
// pluggable source Store, an exports cache keyed by resolved path, and
// the path-resolution rules `require` depends on.
package module

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store is a key→source text table. The spec says "any key→source store
// suffices" (§4.4); this repo provides MemoryStore (the default) and
// SQLiteStore (an opt-in persistent cache of source text only, never of
// exports — see SQLiteStore's doc comment).
type Store interface {
	AddFile(path, content string)
	GetFile(path string) (string, bool)
}

// MemoryStore is the plain map-backed Store the spec's loader examples
// assume; the loader is single-threaded (§5), so no locking is needed.
type MemoryStore struct {
	files map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{files: make(map[string]string)}
}

func (s *MemoryStore) AddFile(path, content string) {
	s.files[path] = content
}

func (s *MemoryStore) GetFile(path string) (string, bool) {
	c, ok := s.files[path]
	return c, ok
}

// Files returns the store's whole path→source table, used by `clou
// modules stats` to enumerate what a loaded bundle contains. Callers
// must not mutate the returned map.
func (s *MemoryStore) Files() map[string]string { return s.files }

// resolveSource implements §4.4's get_module_source resolution order:
// try the path as-is, then with ".clou" appended, then joined under
// currentDir, then both, then joined under each configured root (NEW,
// `module.roots`), in order, both bare and with ".clou" appended. The
// first hit wins; a miss is reported to the caller so it can raise the
// "missing module path" runtime error (§7).
func resolveSource(store Store, path, currentDir string, roots []string) (resolvedPath, content string, err error) {
	candidates := []string{
		path,
		path + ".clou",
	}
	if currentDir != "" {
		candidates = append(candidates,
			filepath.Join(currentDir, path),
			filepath.Join(currentDir, path+".clou"),
		)
	}
	for _, root := range roots {
		candidates = append(candidates,
			filepath.Join(root, path),
			filepath.Join(root, path+".clou"),
		)
	}

	for _, candidate := range candidates {
		if c, ok := store.GetFile(candidate); ok {
			return candidate, c, nil
		}
	}
	return "", "", fmt.Errorf("Cannot find module %q.", path)
}

// ReadFile loads path from the host filesystem and registers it under
// path in store — a convenience for seeding a store from real files
// rather than in-memory strings.
func ReadFile(store Store, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	store.AddFile(path, string(content))
	return nil
}
