package commands

import (
	"github.com/charmbracelet/log"

	"tableflip.dev/prasia/pkg/logging"
	"tableflip.dev/prasia/pkg/store"
	"tableflip.dev/prasia/pkg/template"
)

// env is what a command needs to run: config, logger, an open store and
// the template registry with any configured packs loaded.
type env struct {
	Config   store.Config
	Log      *log.Logger
	Store    *store.Store
	Registry *template.Registry
}

func load() (*env, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel()
	if logLevel != "" {
		level = logLevel
	}
	logger := logging.New(logging.Options{Level: level, Formatter: logFormat})

	s, err := store.LoadStore(cfg, store.WithLogger(logging.New(logging.Options{
		Level:     level,
		Formatter: logFormat,
		Prefix:    "prasia/store",
	})))
	if err != nil {
		return nil, err
	}
	m := s.Migration()
	if m.Ran() {
		logger.Info("migrated store", "from", m.From, "to", m.To, "characters", m.Characters, "tasks", m.Tasks)
	}
	if m.Incomplete {
		logger.Error("migration could not write its data and will run again", "from", m.From)
	}
	for _, key := range m.Skipped {
		logger.Warn("legacy data left in place", "key", key)
	}

	registry := template.NewRegistry()
	loaded, err := registry.LoadDir(cfg.TemplateDir())
	if err != nil {
		logger.Warn("some template packs were not loaded", "dir", cfg.TemplateDir(), "err", err)
	}
	if len(loaded) > 0 {
		logger.Debug("loaded template packs", "dir", cfg.TemplateDir(), "templates", loaded)
	}

	return &env{Config: cfg, Log: logger, Store: s, Registry: registry}, nil
}

func (e *env) Close() {
	if err := e.Store.Close(); err != nil {
		e.Log.Warn("close store", "err", err)
	}
}

// run loads the environment, hands it to fn and reports the error through
// the output options.
func run(fn func(e *env) error) error {
	e, err := load()
	if err != nil {
		return oo.HandleError(err)
	}
	defer e.Close()
	return oo.HandleError(fn(e))
}
