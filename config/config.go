// Package config loads the settings of ffdata runs from YAML files, with
// environment-variable overrides. Defaults are the file names and
// constants used to build the existing training sets.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rmera/ffdata"
	"github.com/rmera/ffdata/convert"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration.
type Config struct {
	Archives []string      `yaml:"archives"`
	Convert  ConvertConfig `yaml:"convert"`
	Sample   SampleConfig  `yaml:"sample"`
	Stats    StatsConfig   `yaml:"stats"`
	Logging  LoggingConfig `yaml:"logging"`
	Metrics  MetricsConfig `yaml:"metrics"`
}

// ConvertConfig holds the output files and filters of the conversion.
type ConvertConfig struct {
	Output                string  `yaml:"output"`
	NoEdgesOutput         string  `yaml:"noEdgesOutput"`
	DiagnosticLog         string  `yaml:"diagnosticLog"`
	StressScale           float64 `yaml:"stressScale"`
	SpeciesFilter         bool    `yaml:"speciesFilter"`
	AllowedSpecies        []int   `yaml:"allowedSpecies"`
	EdgeFilter            bool    `yaml:"edgeFilter"`
	Cutoff                float64 `yaml:"cutoff"`
	StrictSelfInteraction bool    `yaml:"strictSelfInteraction"`
	SelfInteraction       bool    `yaml:"selfInteraction"`
	ProgressEvery         int     `yaml:"progressEvery"`
}

// Options returns the converter options for c.
func (c ConvertConfig) Options() convert.Options {
	return convert.Options{
		StressScale:           c.StressScale,
		SpeciesFilter:         c.SpeciesFilter,
		AllowedSpecies:        c.AllowedSpecies,
		EdgeFilter:            c.EdgeFilter,
		Cutoff:                c.Cutoff,
		StrictSelfInteraction: c.StrictSelfInteraction,
		SelfInteraction:       c.SelfInteraction,
		ProgressEvery:         c.ProgressEvery,
	}
}

// SampleConfig holds the sampling parameters. Mode is "prefix" or "random".
// With Repeats > 1, Output is a pattern containing one %d verb, replaced by
// the draw number.
type SampleConfig struct {
	Mode    string `yaml:"mode"`
	Count   int    `yaml:"count"`
	Repeats int    `yaml:"repeats"`
	Seed    uint64 `yaml:"seed"`
	Output  string `yaml:"output"`
}

// StatsConfig holds the optional outputs of the count command.
type StatsConfig struct {
	HistogramPlot string `yaml:"histogramPlot"`
	Normalize     bool   `yaml:"normalize"`
}

// LoggingConfig holds the process logger settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig holds the textfile where run counters are written. Empty
// disables it.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Load reads the configuration from a YAML file, if path is not empty, over the
// defaults, then applies environment-variable overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the default configuration.
func Default() *Config {
	opts := convert.DefaultOptions()
	return &Config{
		Convert: ConvertConfig{
			Output:                "output_file.extxyz",
			NoEdgesOutput:         "output_no_edges.extxyz",
			DiagnosticLog:         "extraction.log",
			StressScale:           opts.StressScale,
			AllowedSpecies:        ffdata.DefaultAllowedSpecies(),
			Cutoff:                opts.Cutoff,
			StrictSelfInteraction: opts.StrictSelfInteraction,
			ProgressEvery:         opts.ProgressEvery,
		},
		Sample: SampleConfig{
			Mode:    "prefix",
			Count:   100,
			Repeats: 1,
			Seed:    1,
			Output:  "sampled_data.json.zst",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func applyEnvOverrides(cfg *Config) error {
	var errs []error
	parseFloat := func(key string, dest *float64) {
		if v := os.Getenv(key); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dest = f
		}
	}
	parseBool := func(key string, dest *bool) {
		if v := os.Getenv(key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dest = b
		}
	}
	parseInt := func(key string, dest *int) {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dest = n
		}
	}
	if v := os.Getenv("FFDATA_ARCHIVES"); v != "" {
		cfg.Archives = strings.Split(v, ",")
	}
	if v := os.Getenv("FFDATA_OUTPUT"); v != "" {
		cfg.Convert.Output = v
	}
	if v := os.Getenv("FFDATA_NO_EDGES_OUTPUT"); v != "" {
		cfg.Convert.NoEdgesOutput = v
	}
	if v := os.Getenv("FFDATA_DIAGNOSTIC_LOG"); v != "" {
		cfg.Convert.DiagnosticLog = v
	}
	parseFloat("FFDATA_STRESS_SCALE", &cfg.Convert.StressScale)
	parseFloat("FFDATA_CUTOFF", &cfg.Convert.Cutoff)
	parseBool("FFDATA_SPECIES_FILTER", &cfg.Convert.SpeciesFilter)
	parseBool("FFDATA_EDGE_FILTER", &cfg.Convert.EdgeFilter)
	parseInt("FFDATA_SAMPLE_COUNT", &cfg.Sample.Count)
	parseInt("FFDATA_SAMPLE_REPEATS", &cfg.Sample.Repeats)
	if v := os.Getenv("FFDATA_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("FFDATA_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("FFDATA_METRICS_TEXTFILE"); v != "" {
		cfg.Metrics.Textfile = v
	}
	return errors.Join(errs...)
}

// Validate returns an error describing every problem found in cfg.
func (cfg *Config) Validate() error {
	var errs []error
	if err := cfg.Convert.Options().Validate(); err != nil {
		errs = append(errs, err)
	}
	if cfg.Convert.Output == "" {
		errs = append(errs, errors.New("no output file"))
	}
	if cfg.Convert.EdgeFilter && cfg.Convert.NoEdgesOutput == "" {
		errs = append(errs, errors.New("edge filter enabled without a no-edges output file"))
	}
	if cfg.Convert.EdgeFilter && cfg.Convert.NoEdgesOutput == cfg.Convert.Output {
		errs = append(errs, errors.New("the output and no-edges output are the same file"))
	}
	switch cfg.Sample.Mode {
	case "prefix", "random":
	default:
		errs = append(errs, fmt.Errorf("unknown sampling mode %q", cfg.Sample.Mode))
	}
	if cfg.Sample.Count < 0 {
		errs = append(errs, fmt.Errorf("negative sample count %d", cfg.Sample.Count))
	}
	if cfg.Sample.Repeats < 1 {
		errs = append(errs, fmt.Errorf("sample repeats must be at least 1, not %d", cfg.Sample.Repeats))
	}
	if cfg.Sample.Repeats > 1 && !strings.Contains(cfg.Sample.Output, "%d") {
		errs = append(errs, fmt.Errorf("sample output %q needs a %%d verb for repeated draws", cfg.Sample.Output))
	}
	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", cfg.Logging.Format))
	}
	return errors.Join(errs...)
}
