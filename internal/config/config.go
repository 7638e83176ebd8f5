package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk simulation configuration shape (YAML).
type Config struct {
	Grid       GridConfig       `yaml:"grid"`
	Simulation SimulationConfig `yaml:"simulation"`
	API        APIConfig        `yaml:"api"`
}

type GridConfig struct {
	Nodes              int     `yaml:"nodes"`
	LoadSources        int     `yaml:"load_sources"`
	NodeBaseCapacity   float64 `yaml:"node_base_capacity"`
	OverloadThreshold  float64 `yaml:"overload_threshold"`
	UnderloadThreshold float64 `yaml:"underload_threshold"`
}

// SimulationConfig intervals are in seconds.
type SimulationConfig struct {
	LoadUpdateIntervalSec   int `yaml:"load_update_interval"`
	OptimizationIntervalSec int `yaml:"optimization_interval"`
	ReportingIntervalSec    int `yaml:"reporting_interval"`
	DurationSec             int `yaml:"duration"`
}

func (s SimulationConfig) LoadUpdateInterval() time.Duration {
	return time.Duration(s.LoadUpdateIntervalSec) * time.Second
}

func (s SimulationConfig) OptimizationInterval() time.Duration {
	return time.Duration(s.OptimizationIntervalSec) * time.Second
}

func (s SimulationConfig) ReportingInterval() time.Duration {
	return time.Duration(s.ReportingIntervalSec) * time.Second
}

func (s SimulationConfig) Duration() time.Duration {
	return time.Duration(s.DurationSec) * time.Second
}

type APIConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// Default returns the configuration used when no file is provided.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			Nodes:              10,
			LoadSources:        50,
			NodeBaseCapacity:   100.0,
			OverloadThreshold:  85.0,
			UnderloadThreshold: 40.0,
		},
		Simulation: SimulationConfig{
			LoadUpdateIntervalSec:   5,
			OptimizationIntervalSec: 15,
			ReportingIntervalSec:    10,
			DurationSec:             300,
		},
		API: APIConfig{
			Endpoint: "http://localhost:8080",
		},
	}
}

// Load reads a YAML config, fills unset fields from Default and validates it.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Grid.Nodes <= 0 {
		return errors.New("grid.nodes must be positive")
	}
	if c.Grid.LoadSources <= 0 {
		return errors.New("grid.load_sources must be positive")
	}
	if c.Grid.NodeBaseCapacity <= 0 {
		return errors.New("grid.node_base_capacity must be positive")
	}
	if c.Grid.OverloadThreshold <= c.Grid.UnderloadThreshold {
		return errors.New("grid.overload_threshold must exceed grid.underload_threshold")
	}
	if c.Simulation.LoadUpdateIntervalSec <= 0 || c.Simulation.OptimizationIntervalSec <= 0 || c.Simulation.ReportingIntervalSec <= 0 {
		return errors.New("simulation intervals must be positive")
	}
	if c.API.Endpoint == "" {
		return errors.New("api.endpoint is required")
	}
	return nil
}
