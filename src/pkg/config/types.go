package config

// Config carries the settings shared by the codegen-diff pipeline and the
// compile-time benchmark formatter
type Config struct {
	// Ephemeral branches used to snapshot generated output. The caller is
	// responsible for deleting them after diffing completes.
	HeadBranch string `yaml:"headBranch"`
	BaseBranch string `yaml:"baseBranch"`

	// Staging directory for generated output and diff artifacts, relative to
	// the repository root
	OutputPath string `yaml:"outputPath"`

	// CDN the rendered HTML diffs are served from
	CdnURL string `yaml:"cdnUrl"`

	// Bot identity used for snapshot commits
	CommitAuthorName  string `yaml:"commitAuthorName"`
	CommitAuthorEmail string `yaml:"commitAuthorEmail"`

	// Context lines for materialized diffs
	DiffContext int `yaml:"diffContext"`

	Benchmark BenchmarkConfig `yaml:"benchmark"`
}

// BenchmarkConfig locates the benchmark log and its markdown rendering
type BenchmarkConfig struct {
	InputPath  string `yaml:"inputPath"`
	OutputPath string `yaml:"outputPath"`
}
