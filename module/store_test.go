package module

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSourceExactPath(t *testing.T) {
	store := NewMemoryStore()
	store.AddFile("math.clou", "exports.add = 1;")

	resolved, content, err := resolveSource(store, "math.clou", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "math.clou", resolved)
	assert.Equal(t, "exports.add = 1;", content)
}

func TestResolveSourceAppendsExtension(t *testing.T) {
	store := NewMemoryStore()
	store.AddFile("math.clou", "exports.add = 1;")

	resolved, _, err := resolveSource(store, "math", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "math.clou", resolved)
}

func TestResolveSourceJoinsCurrentDir(t *testing.T) {
	store := NewMemoryStore()
	store.AddFile("lib/math.clou", "exports.add = 1;")

	resolved, _, err := resolveSource(store, "math.clou", "lib", nil)
	require.NoError(t, err)
	assert.Equal(t, "lib/math.clou", resolved)
}

func TestResolveSourceJoinsCurrentDirWithExtension(t *testing.T) {
	store := NewMemoryStore()
	store.AddFile("lib/math.clou", "exports.add = 1;")

	resolved, _, err := resolveSource(store, "math", "lib", nil)
	require.NoError(t, err)
	assert.Equal(t, "lib/math.clou", resolved)
}

func TestResolveSourceMissReportsModulePath(t *testing.T) {
	store := NewMemoryStore()
	_, _, err := resolveSource(store, "nope", "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestResolveSourceFallsBackToConfiguredRoots(t *testing.T) {
	store := NewMemoryStore()
	store.AddFile("vendor/math.clou", "exports.add = 1;")

	_, _, err := resolveSource(store, "math.clou", "", nil)
	require.Error(t, err)

	resolved, content, err := resolveSource(store, "math.clou", "", []string{"vendor"})
	require.NoError(t, err)
	assert.Equal(t, "vendor/math.clou", resolved)
	assert.Equal(t, "exports.add = 1;", content)
}

func TestResolveSourcePrefersCurrentDirOverRoots(t *testing.T) {
	store := NewMemoryStore()
	store.AddFile("lib/math.clou", "local")
	store.AddFile("vendor/math.clou", "vendored")

	resolved, content, err := resolveSource(store, "math.clou", "lib", []string{"vendor"})
	require.NoError(t, err)
	assert.Equal(t, "lib/math.clou", resolved)
	assert.Equal(t, "local", content)
}

func TestMemoryStoreFilesReflectsAddedContent(t *testing.T) {
	store := NewMemoryStore()
	store.AddFile("a.clou", "1")
	store.AddFile("b.clou", "2")

	files := store.Files()
	assert.Equal(t, map[string]string{"a.clou": "1", "b.clou": "2"}, files)
}

func TestLoaderCachePersistsAcrossRequires(t *testing.T) {
	store := NewMemoryStore()
	store.AddFile("math.clou", "exports.add = 1;")
	loader := NewLoader(store)

	resolved, _, err := loader.GetModuleSource("math.clou", "")
	require.NoError(t, err)

	_, ok := loader.GetCached(resolved)
	assert.False(t, ok)

	loader.Cache(resolved, nil)
	_, ok = loader.GetCached(resolved)
	assert.True(t, ok)

	loader.ClearCache()
	_, ok = loader.GetCached(resolved)
	assert.False(t, ok)
}

func TestLoaderWithRootsResolvesAgainstConfiguredSearchPath(t *testing.T) {
	store := NewMemoryStore()
	store.AddFile("vendor/math.clou", "exports.add = 1;")
	loader := NewLoaderWithRoots(store, []string{"vendor"})

	resolved, content, err := loader.GetModuleSource("math.clou", "")
	require.NoError(t, err)
	assert.Equal(t, "vendor/math.clou", resolved)
	assert.Equal(t, "exports.add = 1;", content)
}
