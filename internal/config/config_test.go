package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepsight/stepsight/pkg/highlight"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, EngineBuiltin, cfg.Engine)
	assert.Equal(t, highlight.ThemeSolarizedDark, cfg.ResolvedTheme())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `theme: monokai
engine: dot
dot_path: /usr/bin/dot
listen: "127.0.0.1:9000"
path_aliases:
  /home/me/project/: "<proj>/"
verbose: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "monokai", cfg.Theme)
	assert.Equal(t, EngineDot, cfg.Engine)
	assert.Equal(t, "/usr/bin/dot", cfg.DotPath)
	assert.Equal(t, "127.0.0.1:9000", cfg.Listen)
	assert.Equal(t, "<proj>/", cfg.PathAliases["/home/me/project/"])
	assert.True(t, cfg.Verbose)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFromFilePartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: github\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "github", cfg.Theme)
	assert.Equal(t, EngineBuiltin, cfg.Engine, "unset keys keep their defaults")
	assert.Equal(t, "127.0.0.1:54321", cfg.Listen)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("STEPSIGHT_THEME", "dracula")
	t.Setenv("STEPSIGHT_LISTEN", "0.0.0.0:8080")
	t.Setenv("STEPSIGHT_SNAPSHOT_PATH", "/tmp/snap.msgpack")
	t.Setenv("STEPSIGHT_VERBOSE", "1")

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)

	assert.Equal(t, "dracula", cfg.Theme)
	assert.Equal(t, "0.0.0.0:8080", cfg.Listen)
	assert.Equal(t, "/tmp/snap.msgpack", cfg.SnapshotPath)
	assert.True(t, cfg.Verbose)
}

func TestValidateRejectsUnknownTheme(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Theme = "neon-vomit"
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownEngine(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine = "crayon"
	assert.Error(t, cfg.Validate())
}

func TestValidateRequiresDotPathForDotEngine(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine = EngineDot
	cfg.DotPath = ""
	assert.Error(t, cfg.Validate())

	cfg.DotPath = "dot"
	assert.NoError(t, cfg.Validate())
}

func TestValidateRequiresListenAddress(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Listen = ""
	assert.Error(t, cfg.Validate())
}

func TestSaveRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Theme = "monokai"
	cfg.PathAliases = map[string]string{"/opt/src/": "<src>/"}
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Theme, loaded.Theme)
	assert.Equal(t, cfg.PathAliases, loaded.PathAliases)
}
