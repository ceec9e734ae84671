// Package config loads the simulation configuration from JSON or YAML with
// optional environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/naveeng/ndrsim/core/dispatch"
	"github.com/naveeng/ndrsim/infra/feed"
)

// Config is the full configuration surface of the simulation.
type Config struct {
	Simulation SimulationConfig `json:"simulation"`
	Pool       PoolConfig       `json:"pool"`
	Dispatch   dispatch.Config  `json:"dispatch"`
	Regions    []RegionConfig   `json:"regions"`
	Metrics    MetricsConfig    `json:"metrics"`
	Feed       feed.Config      `json:"feed"`
}

// Load reads the configuration file at path. Environment variables prefixed
// with NDR_ override file values, with "__" as the nesting separator.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("NDR_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "ndr_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	if err := cfg.Finalize(); err != nil {
		// The built-in defaults always validate.
		panic(err)
	}
	return cfg
}

// Finalize applies defaults and validates every section.
func (c *Config) Finalize() error {
	c.Simulation.SetDefaults()
	c.Pool.SetDefaults()
	c.Dispatch.SetDefaults()
	c.Metrics.SetDefaults()
	c.Feed.SetDefaults()
	if len(c.Regions) == 0 {
		c.Regions = DefaultRegions()
	}
	if err := c.Simulation.Validate(); err != nil {
		return err
	}
	if err := c.Pool.Validate(); err != nil {
		return err
	}
	if err := c.Dispatch.Validate(); err != nil {
		return err
	}
	if err := c.Feed.Validate(); err != nil {
		return err
	}
	for _, r := range c.Regions {
		if _, err := r.Profile(); err != nil {
			return err
		}
	}
	return nil
}
