// Package config decodes the dotted-path configuration tree of §6 (the
// "Configuration key list": solve.*, solver.*, share_mode, sat_prepro.*)
// from arbitrary map input, the way a front end would after parsing a
// config file or a sequence of --key=value CLI flags.
package config

import (
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// RestartPolicy configures solver.restart.*.
type RestartPolicy struct {
	Scheme string  `mapstructure:"scheme"` // "geometric", "luby", "none"
	Base   int     `mapstructure:"base"`
	Factor float64 `mapstructure:"factor"`
}

// DeletionPolicy configures solver.deletion.*.
type DeletionPolicy struct {
	Strategy string  `mapstructure:"strategy"` // "lbd", "activity", "none"
	MaxSize  int     `mapstructure:"max_size"`
	Ratio    float64 `mapstructure:"ratio"`
}

// SolverConfig configures solver.*.
type SolverConfig struct {
	Heuristic string         `mapstructure:"heuristic"` // "vsids", "berkmin", "none"
	Restart   RestartPolicy  `mapstructure:"restart"`
	Deletion  DeletionPolicy `mapstructure:"deletion"`
}

// SolveConfig configures solve.*.
type SolveConfig struct {
	Models   int    `mapstructure:"models"` // 0 = enumerate all, 1 = stop at first
	OptMode  string `mapstructure:"opt_mode"`
	Project  bool   `mapstructure:"project"`
	EnumMode string `mapstructure:"enum_mode"`
}

// PreproConfig configures sat_prepro.*.
type PreproConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Iters   int  `mapstructure:"iters"`
}

// Config is the full tree of §6's configuration keys.
type Config struct {
	Solve     SolveConfig    `mapstructure:"solve"`
	Solver    SolverConfig   `mapstructure:"solver"`
	ShareMode string         `mapstructure:"share_mode"`
	SatPrepro PreproConfig   `mapstructure:"sat_prepro"`
}

// Default returns the configuration clasp itself ships with out of the
// box (§6's key list, given clasp's documented defaults).
func Default() *Config {
	return &Config{
		Solve: SolveConfig{
			Models:   1,
			OptMode:  "optimize",
			EnumMode: "auto",
		},
		Solver: SolverConfig{
			Heuristic: "vsids",
			Restart:   RestartPolicy{Scheme: "geometric", Base: 100, Factor: 1.5},
			Deletion:  DeletionPolicy{Strategy: "lbd", MaxSize: 0, Ratio: 0.5},
		},
		ShareMode: "auto",
		SatPrepro: PreproConfig{Enabled: true, Iters: 20},
	}
}

// Load decodes raw (typically the result of parsing a JSON/YAML config
// file) onto a Default configuration, leaving any key raw omits at its
// default value.
func Load(raw map[string]interface{}) (*Config, error) {
	cfg := Default()
	if err := decodeInto(cfg, raw); err != nil {
		return nil, errors.Wrap(err, "config: decode")
	}
	return cfg, nil
}

// Set applies a single dotted-path override, e.g. Set("solver.restart.base", 100)
// or Set("share_mode", "all") — the mechanism behind a front end's
// repeated --key=value flags (§6).
func (c *Config) Set(path string, value interface{}) error {
	keys := strings.Split(path, ".")
	if len(keys) == 0 || keys[0] == "" {
		return errors.Errorf("config: empty key path")
	}
	var nested interface{} = value
	for i := len(keys) - 1; i >= 0; i-- {
		nested = map[string]interface{}{keys[i]: nested}
	}
	raw, ok := nested.(map[string]interface{})
	if !ok {
		return errors.Errorf("config: internal: Set built a non-map root")
	}
	if err := decodeInto(c, raw); err != nil {
		return errors.Wrapf(err, "config: set %q", path)
	}
	return nil
}

func decodeInto(dst interface{}, raw map[string]interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}
