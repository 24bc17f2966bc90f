package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigLoader defines the interface for loading pipeline configuration
type ConfigLoader interface {
	// Load reads the configuration at path, or returns the defaults when
	// path is empty
	Load(path string) (*Config, error)
	// Validate checks the configuration for missing required fields
	Validate(config *Config) error
}

// Loader handles loading configuration files
type Loader struct{}

// Ensure Loader implements ConfigLoader
var _ ConfigLoader = (*Loader)(nil)

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{}
}

// Default returns the built-in pipeline configuration
func Default() *Config {
	return &Config{
		HeadBranch:        "__tmp-localonly-head",
		BaseBranch:        "__tmp-localonly-base",
		OutputPath:        "tmp-codegen-diff",
		CdnURL:            "https://d2luzm2xt3nokh.cloudfront.net",
		CommitAuthorName:  "GitHub Action (generated code preview)",
		CommitAuthorEmail: "generated-code-action@github.com",
		DiffContext:       30,
		Benchmark: BenchmarkConfig{
			InputPath:  "/tmp/compiletime-benchmark.txt",
			OutputPath: "/tmp/compiletime-benchmark.md",
		},
	}
}

// Load reads the configuration at path, or returns the defaults when path is
// empty. Values absent from the file keep their defaults.
func (l *Loader) Load(path string) (*Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := l.Validate(config); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration for missing required fields
func (l *Loader) Validate(config *Config) error {
	if config.HeadBranch == "" || config.BaseBranch == "" {
		return fmt.Errorf("headBranch and baseBranch are required")
	}
	if config.HeadBranch == config.BaseBranch {
		return fmt.Errorf("headBranch and baseBranch must differ")
	}
	if config.OutputPath == "" {
		return fmt.Errorf("outputPath is required")
	}
	if config.CdnURL == "" {
		return fmt.Errorf("cdnUrl is required")
	}
	if config.CommitAuthorName == "" || config.CommitAuthorEmail == "" {
		return fmt.Errorf("commit author identity is required")
	}
	if config.DiffContext <= 0 {
		return fmt.Errorf("diffContext must be positive")
	}
	return nil
}
