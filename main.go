package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/srclos-net/learnbot/internal/knowledge"
	"github.com/srclos-net/learnbot/internal/session"
	"github.com/srclos-net/learnbot/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "Path to TOML config file (default: look for config.toml)")
	storePath := flag.String("store", "", "Override the knowledge base path of the selected backend")
	printConfig := flag.Bool("print-config", false, "Print an example config file and exit")
	dump := flag.Bool("dump", false, "Print the knowledge base as YAML and exit")
	flag.Parse()

	if *printConfig {
		fmt.Print(ExampleConfig())
		os.Exit(0)
	}

	path := ResolveConfigPath(*configPath)
	cfg, err := LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	if *storePath != "" {
		cfg.SetStorePath(*storePath)
	}

	closer, err := setupLogging(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	if path != "" {
		logrus.WithField("path", path).Info("loaded config")
	} else {
		logrus.Info("using default config (no config file found)")
	}

	backend, err := knowledge.NewBackend(cfg.Store.Type, cfg.JSON.Path, cfg.SQLite.Path)
	if err != nil {
		logrus.WithError(err).Fatal("backend init failed")
	}
	defer backend.Close()

	brain := knowledge.NewBrain(backend)

	if *dump {
		if err := dumpYAML(os.Stdout, brain); err != nil {
			logrus.WithError(err).Fatal("dump failed")
		}
		return
	}

	s := session.New(brain)
	logrus.WithFields(logrus.Fields{
		"session": s.ID(),
		"backend": backend.Describe(),
	}).Info("session started")

	if _, err := tea.NewProgram(tui.NewModel(s), tea.WithAltScreen()).Run(); err != nil {
		logrus.WithError(err).Fatal("terminal ui failed")
	}

	stats := brain.Stats()
	logrus.WithFields(logrus.Fields{
		"session":   s.ID(),
		"records":   stats.Records,
		"questions": stats.Questions,
	}).Info("session ended")
}

func dumpYAML(w io.Writer, brain *knowledge.Brain) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(brain.Snapshot())
}
