package main

import (
	"os"

	"golang.org/x/term"

	"github.com/deckforge/deckforge/internal/config"
	"github.com/deckforge/deckforge/internal/content"
	"github.com/deckforge/deckforge/internal/logger"
	"github.com/deckforge/deckforge/internal/store"
	"github.com/deckforge/deckforge/internal/templates"
)

// AppContext bundles the long-lived services a command needs.
type AppContext struct {
	Config *config.Config
	Log    *logger.Logger

	st *store.Store
}

// newAppContext loads configuration and builds the logger. The store opens
// lazily on first use.
func newAppContext(flags *rootFlags) (*AppContext, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if flags.verbose {
		level = "debug"
	}
	human := cfg.HumanLogs || term.IsTerminal(int(os.Stderr.Fd()))
	log, err := logger.New(logger.Options{Level: level, HumanReadable: human})
	if err != nil {
		return nil, err
	}

	return &AppContext{Config: cfg, Log: log}, nil
}

// Store opens (once) and returns the SQLite store.
func (a *AppContext) Store() (*store.Store, error) {
	if a.st != nil {
		return a.st, nil
	}
	st, err := store.Open(a.Config.StorePath)
	if err != nil {
		return nil, err
	}
	a.st = st
	return st, nil
}

// Close releases the store if it was opened.
func (a *AppContext) Close() {
	if a.st != nil {
		_ = a.st.Close()
		a.st = nil
	}
}

// Engine builds the template engine over the store, with the AI content
// collaborator attached when one is configured.
func (a *AppContext) Engine() (*templates.Engine, error) {
	st, err := a.Store()
	if err != nil {
		return nil, err
	}

	var gen templates.Generator
	if a.Config.ContentService.URL != "" {
		gen = content.NewClient(
			a.Config.ContentService.URL,
			a.Log.WithComponent("content"),
			content.WithAPIKey(a.Config.ContentService.APIKey),
		)
	}
	return templates.NewEngine(st, gen, a.Log.WithComponent("engine")), nil
}
