package semver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/awslabs/smithy-rs/src/pkg/codegen"
	"github.com/awslabs/smithy-rs/src/pkg/git"
)

// mockRunner answers statuses from a canned map and records everything else
type mockRunner struct {
	commands []string
	statuses map[string]int
}

func (m *mockRunner) record(name string, args ...string) string {
	cmd := name + " " + strings.Join(args, " ")
	m.commands = append(m.commands, cmd)
	return cmd
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) error {
	m.record(name, args...)
	return nil
}

func (m *mockRunner) RunShell(ctx context.Context, command string) error {
	m.commands = append(m.commands, command)
	return nil
}

func (m *mockRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	m.record(name, args...)
	return "head5678", nil
}

func (m *mockRunner) Status(ctx context.Context, name string, args ...string) int {
	return m.statuses[m.record(name, args...)]
}

// mockGenerator records snapshot requests without running a build
type mockGenerator struct {
	calls []string
}

func (m *mockGenerator) GenerateAndCommit(ctx context.Context, revisionSHA string, targets []codegen.Target) error {
	m.calls = append(m.calls, revisionSHA)
	return nil
}

// TestChecker_Check tests crate iteration and baseline skipping
func TestChecker_Check(t *testing.T) {
	root := t.TempDir()
	for _, crate := range []string{"s3", "brand-new"} {
		if err := os.MkdirAll(filepath.Join(root, "tmp-codegen-diff/aws-sdk/sdk", crate), 0755); err != nil {
			t.Fatal(err)
		}
	}

	runner := &mockRunner{statuses: map[string]int{
		// clean working tree
		"git diff --quiet": 0,
		// s3 exists in base, brand-new does not
		"git cat-file -e base:tmp-codegen-diff/aws-sdk/sdk/s3/Cargo.toml":        0,
		"git cat-file -e base:tmp-codegen-diff/aws-sdk/sdk/brand-new/Cargo.toml": 128,
	}}
	gen := &mockGenerator{}
	checker := NewChecker(runner, git.New(runner), gen, root, "tmp-codegen-diff")

	if err := checker.Check(context.Background(), "base1234"); err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	// One snapshot per revision: head first, then base
	if len(gen.calls) != 2 || gen.calls[0] != "head5678" || gen.calls[1] != "base1234" {
		t.Errorf("snapshot calls = %v, want [head5678 base1234]", gen.calls)
	}

	joined := strings.Join(runner.commands, "\n")
	if !strings.Contains(joined, "cargo semver-checks check-release --baseline-rev base1234 --manifest-path tmp-codegen-diff/aws-sdk/sdk/s3/Cargo.toml -p s3 --release-type patch") {
		t.Errorf("expected semver check for s3:\n%s", joined)
	}
	if strings.Contains(joined, "-p brand-new") {
		t.Errorf("brand-new crate should be skipped:\n%s", joined)
	}
}

// TestChecker_DirtyTree tests the clean working tree precondition
func TestChecker_DirtyTree(t *testing.T) {
	runner := &mockRunner{statuses: map[string]int{"git diff --quiet": 1}}
	checker := NewChecker(runner, git.New(runner), &mockGenerator{}, t.TempDir(), "tmp-codegen-diff")

	if err := checker.Check(context.Background(), "base1234"); err == nil {
		t.Error("Check() error = nil, want dirty tree error")
	}
}
