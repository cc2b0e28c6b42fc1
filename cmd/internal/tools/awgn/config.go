package awgn

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config mirrors the simulation flags. Values that are set override the flags.
type Config struct {
	EbN0dB      []float64 `yaml:"ebn0_db"`
	Frames      uint      `yaml:"frames"`
	MaxIter     uint      `yaml:"max_iter"`
	Threads     uint      `yaml:"threads"`
	Seed        *uint64   `yaml:"seed"`
	ResultsDir  string    `yaml:"results_dir"`
	MetricsAddr string    `yaml:"metrics_addr"`
}

func LoadConfig(path string) (*Config, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(bs, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &config, nil
}

func (c *Config) apply() {
	if len(c.EbN0dB) > 0 {
		EbN0dB = c.EbN0dB
	}
	if c.Frames > 0 {
		Frames = c.Frames
	}
	if c.MaxIter > 0 {
		MaxIter = c.MaxIter
	}
	if c.Threads > 0 {
		Threads = c.Threads
	}
	if c.Seed != nil {
		Seed = *c.Seed
	}
	if c.ResultsDir != "" {
		ResultsDir = c.ResultsDir
	}
	if c.MetricsAddr != "" {
		MetricsAddr = c.MetricsAddr
	}
}
