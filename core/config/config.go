// Package config loads study configuration. The defaults reproduce the
// reference study exactly; a yaml file can override any field.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/adalundhe/alphasim/core/design"
	"github.com/adalundhe/alphasim/core/discretize"
	simerr "github.com/adalundhe/alphasim/core/errors"
	"github.com/adalundhe/alphasim/core/results"
	"github.com/adalundhe/alphasim/core/runner"
)

// Config describes a full simulation study.
type Config struct {
	ItemCounts   []int     `yaml:"item_counts"`
	Correlations []float64 `yaml:"correlations"`
	SampleSizes  []int     `yaml:"sample_sizes"`
	Replications int       `yaml:"replications"`
	Threshold    float64   `yaml:"threshold"`
	CutPoints    []float64 `yaml:"cut_points"`
	Workers      int       `yaml:"workers"`
	Seed         uint64    `yaml:"seed"`
}

// DefaultConfig returns the reference study configuration: the 200-cell
// grid, 1000 replications, threshold 0.70, and cut points {-2,-1,1,2}.
func DefaultConfig() *Config {
	return &Config{
		ItemCounts:   design.DefaultItemCounts,
		Correlations: design.DefaultCorrelations,
		SampleSizes:  design.DefaultSampleSizes,
		Replications: runner.DefaultReplications,
		Threshold:    results.DefaultThreshold,
		CutPoints:    discretize.DefaultCutPoints,
		Workers:      0, // 0 means GOMAXPROCS
		Seed:         1,
	}
}

// Load reads a yaml file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field against the contract of the component that
// consumes it.
func (c *Config) Validate() error {
	if _, err := design.NewGrid(c.ItemCounts, c.Correlations, c.SampleSizes); err != nil {
		return err
	}
	if _, err := discretize.NewScheme(c.CutPoints); err != nil {
		return err
	}
	if c.Replications < 1 {
		return &simerr.InvalidParameterError{Param: "replications", Value: c.Replications, Reason: "must be at least 1"}
	}
	if c.Threshold <= 0 || c.Threshold >= 1 {
		return &simerr.InvalidParameterError{Param: "threshold", Value: c.Threshold, Reason: "must be in (0,1)"}
	}
	if c.Workers < 0 {
		return &simerr.InvalidParameterError{Param: "workers", Value: c.Workers, Reason: "must be non-negative"}
	}
	return nil
}

// Grid builds the design grid described by the config.
func (c *Config) Grid() (*design.Grid, error) {
	return design.NewGrid(c.ItemCounts, c.Correlations, c.SampleSizes)
}

// RunnerConfig maps the study configuration onto the runner's knobs.
func (c *Config) RunnerConfig() runner.Config {
	return runner.Config{
		Replications: c.Replications,
		Workers:      c.Workers,
		BaseSeed:     c.Seed,
		CutPoints:    c.CutPoints,
	}
}
