package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Backend names accepted by the "backend" config key.
const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
)

// Config locates the store and its collaborators.
type Config interface {
	BasePath() string
	Backend() string
	TemplateDir() string
	LogLevel() string
}

// LoadConfig reads .prasia.yaml from $PRASIA_CONFIG_PATH or the working
// directory, with PRASIA_* environment overrides.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.prasia.db")
	v.SetDefault("backend", BackendDiskv)
	v.SetDefault("templates", "")
	v.SetDefault("log-level", "warn")
	v.SetConfigName(".prasia") // .yaml is implicit
	v.SetEnvPrefix("PRASIA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("PRASIA_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}

	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("expand path: %w", err)
	}
	templates := v.GetString("templates")
	if templates != "" {
		if templates, err = homedir.Expand(templates); err != nil {
			return nil, fmt.Errorf("expand templates: %w", err)
		}
	}

	return StaticConfig{
		Path:      path,
		Driver:    strings.ToLower(v.GetString("backend")),
		Templates: templates,
		Level:     v.GetString("log-level"),
	}, nil
}

// StaticConfig is a Config with fixed values.
type StaticConfig struct {
	Path      string
	Driver    string
	Templates string
	Level     string
}

func (c StaticConfig) BasePath() string    { return c.Path }
func (c StaticConfig) Backend() string     { return c.Driver }
func (c StaticConfig) TemplateDir() string { return c.Templates }
func (c StaticConfig) LogLevel() string    { return c.Level }

// OpenBackend creates the backend named by cfg.
func OpenBackend(cfg Config) (Backend, error) {
	base := cfg.BasePath()
	if base == "" {
		return nil, fmt.Errorf("store: base path unknown")
	}
	switch cfg.Backend() {
	case "", BackendDiskv:
		return NewDiskvBackend(base), nil
	case BackendSQLite:
		if err := os.MkdirAll(base, 0o755); err != nil {
			return nil, fmt.Errorf("store: ensure base path: %w", err)
		}
		b, err := OpenSQLite(filepath.Join(base, "prasia.sqlite"))
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend())
	}
}

// LoadStore opens the store described by cfg, reading the config from disk when
// cfg is nil.
func LoadStore(cfg Config, opts ...Option) (*Store, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	backend, err := OpenBackend(cfg)
	if err != nil {
		return nil, err
	}
	return Open(backend, opts...)
}
