package module

import (
	"path/filepath"

	"clou/value"
)

// Loader is the §4.4 module-loader state: a Store for source text plus
// the exports cache keyed by resolved path. It does not itself lex,
// parse, or evaluate — that's the interpreter's job, driven through
// GetModuleSource/GetCached/Cache — because only the interpreter has an
// Environment and an evaluator to run a module body in.
type Loader struct {
	store Store
	cache map[string]value.Value
	roots []string
}

func NewLoader(store Store) *Loader {
	return &Loader{store: store, cache: make(map[string]value.Value)}
}

// NewLoaderWithRoots is NewLoader plus additional module search roots
// (config's `module.roots`), consulted after the current-directory
// candidates when a bare require path doesn't resolve relative to the
// requiring module.
func NewLoaderWithRoots(store Store, roots []string) *Loader {
	return &Loader{store: store, cache: make(map[string]value.Value), roots: roots}
}

func (l *Loader) AddFile(path, content string) { l.store.AddFile(path, content) }

func (l *Loader) GetFile(path string) (string, bool) { return l.store.GetFile(path) }

// GetModuleSource resolves path against currentDir and the loader's
// configured roots per §4.4's order and returns both the resolved key
// (used as the cache key) and content.
func (l *Loader) GetModuleSource(path, currentDir string) (resolvedPath, content string, err error) {
	return resolveSource(l.store, path, currentDir, l.roots)
}

func (l *Loader) GetCached(resolvedPath string) (value.Value, bool) {
	v, ok := l.cache[resolvedPath]
	return v, ok
}

func (l *Loader) Cache(resolvedPath string, v value.Value) {
	l.cache[resolvedPath] = v
}

func (l *Loader) ClearCache() {
	l.cache = make(map[string]value.Value)
}

// DirOf is a small filepath convenience the interpreter's require()
// built-in uses to compute the next module's currentDir from the
// resolved path of the module doing the requiring.
func DirOf(resolvedPath string) string {
	return filepath.Dir(resolvedPath)
}
