package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML configuration accepted via --config. Command-line
// flags override whatever the file sets.
type fileConfig struct {
	// InputDir is the corpus root holding markdown/ and images/.
	InputDir string `yaml:"input_dir"`

	// SearchRange is the line distance searched around each image marker.
	SearchRange int `yaml:"search_range"`

	// SampleRate is the percentage of abnormal context files copied by the
	// sample command.
	SampleRate float64 `yaml:"sample_rate"`

	// Force reprocesses books that already have a context file.
	Force bool `yaml:"force"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		InputDir:    "input",
		SearchRange: 5,
		SampleRate:  1.0,
	}
}

// loadConfig reads the YAML file at path over the defaults. An empty path
// returns the defaults unchanged.
func loadConfig(path string) (fileConfig, error) {
	cfg := defaultFileConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}
