// Package config loads the server configuration: a YAML file overlaid by
// GOLIVEFOLIO_* environment variables.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/gabrielmiguelok/golivefolio/pkg/core"
)

// EnvPrefix prefixes every environment override. A double underscore
// separates nested keys: GOLIVEFOLIO_SERVER__ADDRESS sets server.address.
const EnvPrefix = "GOLIVEFOLIO_"

// Store drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Config is the top-level configuration, corresponding to golivefolio.yml.
type Config struct {
	Server   ServerConfig  `yaml:"server" koanf:"server"`
	Log      LogConfig     `yaml:"log" koanf:"log"`
	Store    StoreConfig   `yaml:"store" koanf:"store"`
	Content  ContentConfig `yaml:"content" koanf:"content"`
	Live     LiveConfig    `yaml:"live" koanf:"live"`
	Features FeatureConfig `yaml:"features" koanf:"features"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Address        string        `yaml:"address" koanf:"address"`
	Dev            bool          `yaml:"dev" koanf:"dev"`
	AllowedOrigins []string      `yaml:"allowed_origins" koanf:"allowed_origins"`
	ReadTimeout    time.Duration `yaml:"read_timeout" koanf:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout" koanf:"write_timeout"`
}

// LogConfig selects the log level and handler format.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}

// StoreConfig selects where theme preferences live.
type StoreConfig struct {
	Driver string `yaml:"driver" koanf:"driver"`
	Path   string `yaml:"path" koanf:"path"`
}

// ContentConfig points at the portfolio content file. An empty path uses
// the built-in content. Static, when set, is a directory served under
// /static/ (profile image and other assets).
type ContentConfig struct {
	Path   string `yaml:"path" koanf:"path"`
	Static string `yaml:"static" koanf:"static"`
}

// LiveConfig tunes live connections.
type LiveConfig struct {
	Codec          string `yaml:"codec" koanf:"codec"`
	MaxConnections int    `yaml:"max_connections" koanf:"max_connections"`
}

// FeatureConfig switches page behaviors on and off. A disabled behavior
// ignores its events.
type FeatureConfig struct {
	Theme        bool `yaml:"theme" koanf:"theme"`
	Navigation   bool `yaml:"navigation" koanf:"navigation"`
	Typing       bool `yaml:"typing" koanf:"typing"`
	Reveal       bool `yaml:"reveal" koanf:"reveal"`
	SkillBars    bool `yaml:"skill_bars" koanf:"skill_bars"`
	Filter       bool `yaml:"filter" koanf:"filter"`
	ContactForm  bool `yaml:"contact_form" koanf:"contact_form"`
	SmoothScroll bool `yaml:"smooth_scroll" koanf:"smooth_scroll"`
	Particles    bool `yaml:"particles" koanf:"particles"`
}

// DefaultConfig returns a configuration with every feature enabled and an
// in-memory store.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address:      ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Store: StoreConfig{
			Driver: DriverMemory,
		},
		Live: LiveConfig{
			Codec:          "phoenix",
			MaxConnections: core.DefaultConfig().MaxConnections,
		},
		Features: FeatureConfig{
			Theme:        true,
			Navigation:   true,
			Typing:       true,
			Reveal:       true,
			SkillBars:    true,
			Filter:       true,
			ContactForm:  true,
			SmoothScroll: true,
			Particles:    true,
		},
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, errors.Wrapf(err, "reading config %s", path)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "accessing config %s", path)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, "loading env overrides")
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshalling config")
	}
	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshalling config")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "writing config to %s", path)
	}
	return nil
}

var (
	validLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validFormats = map[string]bool{"text": true, "json": true}
	validCodecs  = map[string]bool{"phoenix": true, "json": true, "msgpack": true}
)

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return errors.New("server.address is required")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return errors.New("server timeouts must be non-negative")
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return errors.Errorf("invalid log.level %q: must be one of debug, info, warn, error", c.Log.Level)
	}
	if !validFormats[c.Log.Format] {
		return errors.Errorf("invalid log.format %q: must be text or json", c.Log.Format)
	}

	switch c.Store.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Store.Path == "" {
			return errors.New("store.path is required for the sqlite driver")
		}
	default:
		return errors.Errorf("invalid store.driver %q: must be memory or sqlite", c.Store.Driver)
	}

	if !validCodecs[c.Live.Codec] {
		return errors.Errorf("invalid live.codec %q: must be one of phoenix, json, msgpack", c.Live.Codec)
	}
	if c.Live.MaxConnections < 0 {
		return errors.New("live.max_connections must be non-negative")
	}
	return nil
}

// CoreConfig builds the live connection settings. Development mode relaxes
// timeouts and origin checks.
func (c *Config) CoreConfig() core.Config {
	var lc core.Config
	if c.Server.Dev {
		lc = core.DevelopmentConfig()
	} else {
		lc = core.ProductionConfig(c.Server.AllowedOrigins...)
	}
	if c.Live.MaxConnections > 0 {
		lc.MaxConnections = c.Live.MaxConnections
	}
	return lc
}
