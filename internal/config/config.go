// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

// Package config holds the settings of an experiment run.
// Values come from, lowest precedence first, the defaults, a config file,
// HFBENCH_ environment variables, and the overrides passed to Load (command line flags).
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

var ErrInvalid = errors.New("config: invalid")

// MaxMethod is the highest method number the driver knows.
const MaxMethod = 15

type Config struct {
	Seed         int64   `mapstructure:"seed"`                // seed of the first trial, incremented per trial
	Method       int     `mapstructure:"method"`              // hash function, see "hfbench methods"
	N            int     `mapstructure:"n"`                   // number of keys, 0 for the hypercube
	Cube         int     `mapstructure:"cube"`                // hypercube side
	Trials       int     `mapstructure:"trials"`              // number of runs
	Load         float64 `mapstructure:"load"`                // m = load * n
	Prime        bool    `mapstructure:"prime"`               // round m up to a prime
	Verify       bool    `mapstructure:"verify"`              // look up and delete every key after the fill
	Reproducible bool    `mapstructure:"murmur_reproducible"` // seed Murmur3 from the run seed
	Counters     bool    `mapstructure:"counters"`            // read hardware counters
	Keys         string  `mapstructure:"keys"`                // load keys from this file
	SaveKeys     string  `mapstructure:"save_keys"`           // write the generated keys here
	DB           string  `mapstructure:"db"`                  // append results to this sqlite database
	JSON         bool    `mapstructure:"json"`                // print results as JSON
	Verbosity    int     `mapstructure:"verbosity"`           // 0 info, 1 debug, 2 trace
	CPUProfile   string  `mapstructure:"cpuprofile"`
	MemProfile   string  `mapstructure:"memprofile"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("seed", 0)
	v.SetDefault("method", 0)
	v.SetDefault("n", 0)
	v.SetDefault("cube", 32)
	v.SetDefault("trials", 1)
	v.SetDefault("load", 1.005)
	v.SetDefault("prime", false)
	v.SetDefault("verify", false)
	v.SetDefault("murmur_reproducible", false)
	v.SetDefault("counters", true)
	v.SetDefault("keys", "")
	v.SetDefault("save_keys", "")
	v.SetDefault("db", "")
	v.SetDefault("json", false)
	v.SetDefault("verbosity", 0)
	v.SetDefault("cpuprofile", "")
	v.SetDefault("memprofile", "")
}

// Load reads the config file at path, if path is not empty, applies the
// environment and then overrides, keyed by mapstructure name, and validates.
func Load(path string, overrides map[string]any) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("HFBENCH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	for k, val := range overrides {
		v.Set(k, val)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Method < 0 || c.Method > MaxMethod:
		return fmt.Errorf("%w: method=%d, want 0..%d", ErrInvalid, c.Method, MaxMethod)
	case c.N < 0:
		return fmt.Errorf("%w: n=%d", ErrInvalid, c.N)
	case c.Cube < 1 || c.Cube > 256:
		return fmt.Errorf("%w: cube=%d, want 1..256", ErrInvalid, c.Cube)
	case c.Trials < 1:
		return fmt.Errorf("%w: trials=%d", ErrInvalid, c.Trials)
	case c.Load <= 0:
		return fmt.Errorf("%w: load=%g", ErrInvalid, c.Load)
	case c.Verbosity < 0 || c.Verbosity > 2:
		return fmt.Errorf("%w: verbosity=%d, want 0..2", ErrInvalid, c.Verbosity)
	}
	return nil
}
