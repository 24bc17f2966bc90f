package pipeline

import (
	"fmt"
	"os"
)

// Options configures one pipeline invocation
type Options struct {
	// Repository the pipeline mutates; callers must ensure no concurrent
	// invocation targets the same checkout
	RepositoryRoot string
	// Revision the diff baseline is generated from
	BaseSHA string

	// Optional pipeline config file; empty means built-in defaults
	ConfigPath string
	// Targets to regenerate; empty means the canonical three
	Targets []string

	// When set, the summary is also posted as a PR comment
	GhRepo     string
	GhPrNumber int

	// Record phase timings into the staging directory
	TraceEnabled bool
}

// Validate checks option consistency common to all subcommands
func (o *Options) Validate() error {
	if o.RepositoryRoot == "" {
		return fmt.Errorf("repository root is required")
	}
	info, err := os.Stat(o.RepositoryRoot)
	if err != nil {
		return fmt.Errorf("repository root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("repository root %s is not a directory", o.RepositoryRoot)
	}

	if (o.GhRepo == "") != (o.GhPrNumber == 0) {
		return fmt.Errorf("--gh-repo and --gh-pr-number must be set together")
	}
	return nil
}
