package main

import (
	"os"

	vec3d "github.com/flywave/go3d/float64/vec3"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/flywave/go-simscene/field"
	"github.com/flywave/go-simscene/streamline"
)

// Config is the windviewer TOML file. Every field has a default, so an
// absent file and an empty file both run the synthetic wind demo.
type Config struct {
	Listen string      `toml:"listen"`
	Field  FieldConfig `toml:"field"`
	Trace  TraceConfig `toml:"trace"`
	Log    LogConfig   `toml:"log"`
}

// FieldConfig selects the stream field: a structured-points path, or the
// synthetic generator parameters when the path is empty.
type FieldConfig struct {
	Path        string     `toml:"path"`
	Dims        [3]int     `toml:"dims"`
	Spacing     [3]float64 `toml:"spacing"`
	Variance    float64    `toml:"variance"`
	LengthScale float64    `toml:"length_scale"`
	Mean        [3]float64 `toml:"mean"`
	Seed        uint64     `toml:"seed"`
	Modes       int        `toml:"modes"`
}

type TraceConfig struct {
	Radius         float64 `toml:"radius"`
	Sides          int     `toml:"sides"`
	Resolution     int     `toml:"resolution"`
	MaxPropagation float64 `toml:"max_propagation"`
	Step           float64 `toml:"step"`
	MaxSteps       int     `toml:"max_steps"`
}

type LogConfig struct {
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

func DefaultConfig() Config {
	f := field.DefaultSyntheticConfig()
	t := streamline.DefaultOptions()
	return Config{
		Listen: ":8460",
		Field: FieldConfig{
			Dims:        f.Dims,
			Spacing:     [3]float64{f.Spacing[0], f.Spacing[1], f.Spacing[2]},
			Variance:    f.Variance,
			LengthScale: f.LengthScale,
			Mean:        [3]float64{f.Mean[0], f.Mean[1], f.Mean[2]},
			Seed:        f.Seed,
			Modes:       f.Modes,
		},
		Trace: TraceConfig{
			Radius:         t.Radius,
			Sides:          t.Sides,
			Resolution:     t.Resolution,
			MaxPropagation: t.MaxPropagation,
			Step:           t.Step,
			MaxSteps:       t.MaxSteps,
		},
		Log: LogConfig{
			MaxSizeMB:  32,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
	}
}

// LoadConfig overlays the TOML file at path onto the defaults. An empty
// path keeps the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

func (c Config) SyntheticConfig() field.SyntheticConfig {
	dims := c.Field.Dims
	spacing := vec3d.T{c.Field.Spacing[0], c.Field.Spacing[1], c.Field.Spacing[2]}
	return field.SyntheticConfig{
		Dims:        dims,
		Spacing:     spacing,
		Origin:      field.CenteredOrigin(dims, spacing),
		Variance:    c.Field.Variance,
		LengthScale: c.Field.LengthScale,
		Mean:        vec3d.T{c.Field.Mean[0], c.Field.Mean[1], c.Field.Mean[2]},
		Seed:        c.Field.Seed,
		Modes:       c.Field.Modes,
	}
}

func (c Config) TraceOptions() streamline.Options {
	opts := streamline.DefaultOptions()
	opts.Radius = c.Trace.Radius
	opts.Sides = c.Trace.Sides
	opts.Resolution = c.Trace.Resolution
	opts.MaxPropagation = c.Trace.MaxPropagation
	opts.Step = c.Trace.Step
	opts.MaxSteps = c.Trace.MaxSteps
	return opts
}

// BuildField runs stage 1: load the structured-points file when a path is
// configured, synthesize otherwise. A configured file that fails to load
// is fatal to the caller; there is no fallback to synthesis.
func (c Config) BuildField() (*field.Grid, error) {
	if c.Field.Path != "" {
		return field.LoadStructuredPoints(c.Field.Path)
	}
	return field.Synthesize(c.SyntheticConfig()), nil
}
