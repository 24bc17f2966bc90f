package semver

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/awslabs/smithy-rs/src/pkg/codegen"
	"github.com/awslabs/smithy-rs/src/pkg/git"
	"github.com/awslabs/smithy-rs/src/pkg/shell"
)

var logger = log.WithField("package", "semver")

// Branch names for the two generated-code snapshots the check compares
const (
	currentBranch  = "current"
	baselineBranch = "base"
)

// Checker runs cargo semver-checks for every generated SDK crate that also
// exists in the baseline revision
type Checker struct {
	repoRoot string
	staging  string
	runner   shell.CommandRunner
	git      *git.Git
	gen      codegen.CodeGenerator
}

// NewChecker creates a checker for the repository at repoRoot. staging is the
// staging directory relative to repoRoot.
func NewChecker(runner shell.CommandRunner, g *git.Git, gen codegen.CodeGenerator, repoRoot, staging string) *Checker {
	return &Checker{
		repoRoot: repoRoot,
		staging:  staging,
		runner:   runner,
		git:      g,
		gen:      gen,
	}
}

// Check generates the SDK at HEAD and at baseSHA, then checks each crate
// present in both snapshots for breaking changes. Crates absent from the
// baseline are new and are skipped.
func (c *Checker) Check(ctx context.Context, baseSHA string) error {
	if !c.git.IsClean(ctx) {
		return fmt.Errorf("working tree is not clean, aborting")
	}

	headSHA, err := c.git.RevParseHead(ctx)
	if err != nil {
		return err
	}
	logger.Infof("checking %s against baseline %s", headSHA, baseSHA)

	if err := c.snapshot(ctx, headSHA, currentBranch); err != nil {
		return err
	}
	if err := c.snapshot(ctx, baseSHA, baselineBranch); err != nil {
		return err
	}
	if err := c.git.Checkout(ctx, currentBranch); err != nil {
		return err
	}

	sdkDir := path.Join(c.staging, "aws-sdk", "sdk")
	entries, err := os.ReadDir(filepath.Join(c.repoRoot, sdkDir))
	if err != nil {
		return fmt.Errorf("failed to list SDK crates: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		crate := entry.Name()
		manifest := path.Join(sdkDir, crate, "Cargo.toml")

		if !c.git.HasRevisionPath(ctx, baselineBranch, manifest) {
			logger.Infof("skipping %s because it does not exist in base", crate)
			continue
		}

		logger.Infof("checking %s...", crate)
		err := c.runner.Run(ctx, "cargo", "semver-checks", "check-release",
			"--baseline-rev", baseSHA,
			"--manifest-path", manifest,
			"-p", crate,
			"--release-type", "patch")
		if err != nil {
			return fmt.Errorf("semver check failed for %s: %w", crate, err)
		}
		logger.Infof("%s ok", crate)
	}
	return nil
}

func (c *Checker) snapshot(ctx context.Context, sha, branch string) error {
	if err := c.git.CheckoutBranch(ctx, sha, branch); err != nil {
		return err
	}
	return c.gen.GenerateAndCommit(ctx, sha, []codegen.Target{codegen.TargetSdk})
}
