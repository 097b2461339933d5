package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Store  StoreConfig  `toml:"store"`
	JSON   FileConfig   `toml:"json"`
	SQLite FileConfig   `toml:"sqlite"`
	Log    LoggerConfig `toml:"log"`
}

type StoreConfig struct {
	Type string `toml:"type"` // "json" or "sqlite"
}

type FileConfig struct {
	Path string `toml:"path"`
}

type LoggerConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // "-" for stderr
}

func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Type: "json",
		},
		JSON: FileConfig{
			Path: "knowledge_base.json",
		},
		SQLite: FileConfig{
			Path: "knowledge_base.db",
		},
		Log: LoggerConfig{
			Level: "info",
			File:  "learnbot.log",
		},
	}
}

func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Store.Type == "" {
		cfg.Store.Type = "json"
	}
	return cfg, nil
}

// ResolveConfigPath picks the config file: flag > LEARNBOT_CONFIG > default
// locations. It returns "" when nothing is found.
func ResolveConfigPath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if env := os.Getenv("LEARNBOT_CONFIG"); env != "" {
		return env
	}
	candidates := []string{"config.toml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "learnbot", "config.toml"))
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// SetStorePath points the selected backend at path.
func (c *Config) SetStorePath(path string) {
	if c.Store.Type == "sqlite" {
		c.SQLite.Path = path
		return
	}
	c.JSON.Path = path
}

func ExampleConfig() string {
	return `# learnbot configuration

[store]
# "json" or "sqlite"
type = "json"

[json]
path = "knowledge_base.json"

[sqlite]
path = "knowledge_base.db"

[log]
level = "info"
# "-" logs to stderr; the terminal UI owns stdout
file  = "learnbot.log"
`
}
