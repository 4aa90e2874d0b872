package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.Store)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, 4096, cfg.CacheSize)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "dot", cfg.Render.Program)
	assert.Equal(t, "png", cfg.Render.Format)
	assert.Equal(t, "my_graph.dot", cfg.Render.Output)
}

func TestLoadFromYAML(t *testing.T) {
	configYAML := `
store: /srv/repo
workers: 3
cache_size: 0
log:
  level: debug
  format: json
render:
  program: neato
  format: svg
  output: out/graph.dot
`
	path := filepath.Join(t.TempDir(), "blobtrace.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o644))

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/repo", cfg.Store)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 0, cfg.CacheSize)
	assert.Equal(t, LogConfig{Level: "debug", Format: "json"}, cfg.Log)
	assert.Equal(t, RenderConfig{Program: "neato", Format: "svg", Output: "out/graph.dot"}, cfg.Render)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("BLOBTRACE_WORKERS", "7")
	t.Setenv("BLOBTRACE_RENDER_PROGRAM", "/opt/graphviz/bin/dot")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Workers)
	assert.Equal(t, "/opt/graphviz/bin/dot", cfg.Render.Program)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"negative cache", func(c *Config) { c.CacheSize = -5 }},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }},
		{"empty render format", func(c *Config) { c.Render.Format = " " }},
		{"empty output", func(c *Config) { c.Render.Output = "" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Defaults()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	d := Defaults()
	assert.NoError(t, d.Validate())
}

func TestObjectDir(t *testing.T) {
	repo := t.TempDir()
	gitObjects := filepath.Join(repo, ".git", "objects")
	require.NoError(t, os.MkdirAll(gitObjects, 0o755))
	got, err := ObjectDir(repo)
	require.NoError(t, err)
	assert.Equal(t, gitObjects, got)

	bare := t.TempDir()
	bareObjects := filepath.Join(bare, "objects")
	require.NoError(t, os.MkdirAll(bareObjects, 0o755))
	got, err = ObjectDir(bare)
	require.NoError(t, err)
	assert.Equal(t, bareObjects, got)

	plain := t.TempDir()
	got, err = ObjectDir(plain)
	require.NoError(t, err)
	assert.Equal(t, plain, got)

	_, err = ObjectDir(filepath.Join(plain, "missing"))
	assert.ErrorIs(t, err, ErrStoreNotExist)

	file := filepath.Join(plain, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = ObjectDir(file)
	assert.Error(t, err)
}
