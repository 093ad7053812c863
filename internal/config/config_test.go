package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeEnv(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestLoadReturnsDefaultsWhenNothingFound(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(cwd)

	cfg, err := Load("", fakeEnv(nil))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoadExplicitPathParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clou.yaml")
	content := "module:\n  store: sqlite\n  sqlite_path: /tmp/clou.db\nrepl:\n  history: false\nlog:\n  level: debug\n  format: json\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, fakeEnv(nil))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Module.Store)
	assert.Equal(t, "/tmp/clou.db", cfg.Module.SQLitePath)
	assert.False(t, cfg.Repl.History)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadExplicitPathParsesModuleRoots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clou.yaml")
	content := "module:\n  roots:\n    - /usr/lib/clou\n    - ./vendor\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, fakeEnv(nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"/usr/lib/clou", "./vendor"}, cfg.Module.Roots)
}

func TestLoadExplicitPathMissingReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"), fakeEnv(nil))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestInterpolateEnvSubstitutesVariable(t *testing.T) {
	data := []byte("module:\n  sqlite_path: ${DB_PATH}\n")
	got := interpolateEnv(data, fakeEnv(map[string]string{"DB_PATH": "/var/clou.db"}))
	assert.Equal(t, "module:\n  sqlite_path: /var/clou.db\n", string(got))
}

func TestInterpolateEnvFallsBackToDefault(t *testing.T) {
	data := []byte("log:\n  level: ${LOG_LEVEL:-info}\n")
	got := interpolateEnv(data, fakeEnv(nil))
	assert.Equal(t, "log:\n  level: info\n", string(got))
}

func TestInterpolateEnvPrefersSetVariableOverDefault(t *testing.T) {
	data := []byte("log:\n  level: ${LOG_LEVEL:-info}\n")
	got := interpolateEnv(data, fakeEnv(map[string]string{"LOG_LEVEL": "debug"}))
	assert.Equal(t, "log:\n  level: debug\n", string(got))
}
