// Package config loads the dotstitch project configuration from TOML.
//
// A project file names the template images per view, the roster source,
// optional placement-ratio overrides, export defaults, and the placement
// store backend. Everything is optional; the zero config composes blank
// views against the in-process store.
package config

import (
	"context"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/dotstitch/dotstitch/pkg/assets"
	"github.com/dotstitch/dotstitch/pkg/composer"
	"github.com/dotstitch/dotstitch/pkg/errors"
	"github.com/dotstitch/dotstitch/pkg/export"
	"github.com/dotstitch/dotstitch/pkg/store"
)

// Config is the full project configuration.
type Config struct {
	Templates assets.TemplateSet `toml:"templates"`
	Roster    string             `toml:"roster"`
	Ratios    composer.Ratios    `toml:"ratios"`
	Export    Export             `toml:"export"`
	Store     Store              `toml:"store"`
}

// Export holds export defaults, overridable per invocation by CLI flags.
type Export struct {
	Format     string `toml:"format"`
	DPI        int    `toml:"dpi"`
	Background string `toml:"background"`
	Opaque     bool   `toml:"opaque"`
	Quality    int    `toml:"quality"`
	OutDir     string `toml:"out_dir"`
}

// Store selects and configures the placement store backend.
type Store struct {
	Backend string `toml:"backend"` // memory, file, redis, or mongo
	Dir     string `toml:"dir"`     // file backend

	Redis RedisStore `toml:"redis"`
	Mongo MongoStore `toml:"mongo"`
}

// RedisStore mirrors store.RedisConfig with TOML tags.
type RedisStore struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// MongoStore mirrors store.MongoConfig with TOML tags.
type MongoStore struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Ratios: composer.DefaultRatios(),
		Export: Export{
			Format:     string(export.FormatPNG),
			DPI:        300,
			Background: "#ffffff",
			Quality:    export.DefaultJPEGQuality,
			OutDir:     ".",
		},
		Store: Store{Backend: "file"},
	}
}

// Load reads a TOML config file, layered over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks cross-field consistency.
func (c Config) Validate() error {
	if c.Export.Format != "" && !export.Format(c.Export.Format).Valid() {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown export format: %s", c.Export.Format)
	}
	switch c.Store.Backend {
	case "", "memory", "file":
	case "redis":
		if c.Store.Redis.Addr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "store.redis.addr is required for the redis backend")
		}
	case "mongo":
		if c.Store.Mongo.URI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "store.mongo.uri is required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend: %s", c.Store.Backend)
	}
	if c.Ratios.NameTopRatio < 0 || c.Ratios.NumberTopRatio < 0 ||
		c.Ratios.NameFontRatio < 0 || c.Ratios.NumberFontRatio < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "placement ratios must not be negative")
	}
	return nil
}

// ExportOptions converts the export defaults to engine options.
func (c Config) ExportOptions() export.Options {
	opts := export.Options{
		Format:      export.Format(c.Export.Format),
		Background:  c.Export.Background,
		Opaque:      c.Export.Opaque,
		JPEGQuality: c.Export.Quality,
	}
	if c.Export.DPI > 0 {
		opts.Multiplier = export.MultiplierForDPI(c.Export.DPI)
	}
	opts.Normalize()
	return opts
}

// OpenBackend constructs the configured placement store backend.
func (c Config) OpenBackend(ctx context.Context) (store.Backend, error) {
	switch c.Store.Backend {
	case "memory":
		return store.NewMemoryBackend(), nil
	case "", "file":
		return store.NewFileBackend(c.Store.Dir)
	case "redis":
		return store.NewRedisBackend(ctx, store.RedisConfig{
			Addr:     c.Store.Redis.Addr,
			Password: c.Store.Redis.Password,
			DB:       c.Store.Redis.DB,
			Prefix:   c.Store.Redis.Prefix,
		})
	case "mongo":
		return store.NewMongoBackend(ctx, store.MongoConfig{
			URI:        c.Store.Mongo.URI,
			Database:   c.Store.Mongo.Database,
			Collection: c.Store.Mongo.Collection,
		})
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown store backend: %s", c.Store.Backend)
	}
}
