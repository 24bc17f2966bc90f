package codegen

import "fmt"

// Target identifies one generated-code category
type Target string

const (
	TargetSdk              Target = "sdk"
	TargetClientTest       Target = "client-test"
	TargetServerTest       Target = "server-test"
	TargetServerTestPython Target = "server-test-python"
)

type targetSpec struct {
	// Gradle project assembled for the target; empty when the output is a
	// side effect of another target
	gradleProject string
	// Build output location relative to the repository root
	buildOutput string
	// Subdirectory under the staging directory
	stagingDir string
	// Human-readable title used for diff pages and links
	title string
	// Artifact directory suffix for the whitespace-sensitive diff
	suffix string
	// Label emitted when the target has no difference
	emptyDiffText string
}

var targetSpecs = map[Target]targetSpec{
	TargetSdk: {
		gradleProject: "aws:sdk",
		buildOutput:   "aws/sdk/build/aws-sdk",
		stagingDir:    "aws-sdk",
		title:         "AWS SDK",
		suffix:        "aws-sdk",
		emptyDiffText: "No codegen difference in the AWS SDK",
	},
	TargetClientTest: {
		gradleProject: "codegen-client-test",
		buildOutput:   "codegen-client-test/build/smithyprojections/codegen-client-test",
		stagingDir:    "codegen-client-test",
		title:         "Client Test",
		suffix:        "client-test",
		emptyDiffText: "No codegen difference in the Client Test",
	},
	TargetServerTest: {
		gradleProject: "codegen-server-test",
		buildOutput:   "codegen-server-test/build/smithyprojections/codegen-server-test",
		stagingDir:    "codegen-server-test",
		title:         "Server Test",
		suffix:        "server-test",
		emptyDiffText: "No codegen difference in the Server Test",
	},
	TargetServerTestPython: {
		buildOutput:   pythonServerSdkDir,
		stagingDir:    "codegen-server-test-python",
		title:         "Server Test Python",
		suffix:        "server-test-python",
		emptyDiffText: "No codegen difference in the Server Test Python",
	},
}

// DefaultTargets are the categories regenerated when no explicit set is
// requested. The python server SDK is produced as a side effect of the server
// test target, so it never appears here.
func DefaultTargets() []Target {
	return []Target{TargetClientTest, TargetServerTest, TargetSdk}
}

// DiffTargets is the fixed category order of the diff summary
func DiffTargets() []Target {
	return []Target{TargetSdk, TargetClientTest, TargetServerTest, TargetServerTestPython}
}

// ParseTarget converts a CLI argument into a Target
func ParseTarget(s string) (Target, error) {
	t := Target(s)
	if _, ok := targetSpecs[t]; !ok {
		return "", fmt.Errorf("unknown target %q", s)
	}
	if t == TargetServerTestPython {
		return "", fmt.Errorf("target %q cannot be generated directly; it is produced by %q", s, TargetServerTest)
	}
	return t, nil
}

// GradleProject returns the gradle project assembled for the target, or an
// empty string when there is none
func (t Target) GradleProject() string { return targetSpecs[t].gradleProject }

// BuildOutput returns the build output path relative to the repository root
func (t Target) BuildOutput() string { return targetSpecs[t].buildOutput }

// StagingDir returns the target's subdirectory under the staging directory
func (t Target) StagingDir() string { return targetSpecs[t].stagingDir }

// Title returns the human-readable diff title
func (t Target) Title() string { return targetSpecs[t].title }

// Suffix returns the artifact directory suffix for the whitespace-sensitive
// diff; the insensitive variant appends "-ignore-whitespace"
func (t Target) Suffix() string { return targetSpecs[t].suffix }

// EmptyDiffText returns the label emitted when the target has no difference
func (t Target) EmptyDiffText() string { return targetSpecs[t].emptyDiffText }

func hasTarget(targets []Target, want Target) bool {
	for _, t := range targets {
		if t == want {
			return true
		}
	}
	return false
}
