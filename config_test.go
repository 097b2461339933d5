package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[store]
type = "sqlite"

[sqlite]
path = "/tmp/kb.db"

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Store.Type)
	assert.Equal(t, "/tmp/kb.db", cfg.SQLite.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched sections keep their defaults.
	assert.Equal(t, "knowledge_base.json", cfg.JSON.Path)
	assert.Equal(t, "learnbot.log", cfg.Log.File)
}

func TestLoadConfig_EmptyStoreTypeDefaultsToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[store]\ntype = \"\"\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Store.Type)
}

func TestLoadConfig_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[store\ntype = "), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestExampleConfig_MatchesDefaults(t *testing.T) {
	var cfg Config
	_, err := toml.Decode(ExampleConfig(), &cfg)
	require.NoError(t, err)
	assert.Equal(t, *DefaultConfig(), cfg)
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv("LEARNBOT_CONFIG", "/from/env.toml")
	assert.Equal(t, "/from/flag.toml", ResolveConfigPath("/from/flag.toml"))
	assert.Equal(t, "/from/env.toml", ResolveConfigPath(""))
}

func TestResolveConfigPath_NothingFound(t *testing.T) {
	t.Setenv("LEARNBOT_CONFIG", "")
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	assert.Equal(t, "", ResolveConfigPath(""))
}

func TestConfig_SetStorePath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SetStorePath("custom.json")
	assert.Equal(t, "custom.json", cfg.JSON.Path)
	assert.Equal(t, "knowledge_base.db", cfg.SQLite.Path)

	cfg = DefaultConfig()
	cfg.Store.Type = "sqlite"
	cfg.SetStorePath("custom.db")
	assert.Equal(t, "custom.db", cfg.SQLite.Path)
	assert.Equal(t, "knowledge_base.json", cfg.JSON.Path)
}
