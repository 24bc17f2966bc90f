package diff

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/awslabs/smithy-rs/src/pkg/codegen"
	"github.com/awslabs/smithy-rs/src/pkg/config"
	"github.com/awslabs/smithy-rs/src/pkg/git"
	"github.com/awslabs/smithy-rs/src/pkg/shell"
	"github.com/awslabs/smithy-rs/src/pkg/template"
)

var logger = log.WithField("package", "diff")

// Request describes one per-target diff computation
type Request struct {
	Title   string
	Path    string
	BaseSHA string
	HeadSHA string
	Suffix  string
	// IgnoreWhitespace selects the whitespace-insensitive diff mode
	IgnoreWhitespace bool
}

// Differ computes per-target diffs between the two snapshot branches and
// renders them to HTML via difftags
type Differ struct {
	config   *config.Config
	repoRoot string
	runner   shell.CommandRunner
	git      *git.Git
	renderer *template.Renderer
}

// NewDiffer creates a differ for the repository at repoRoot
func NewDiffer(cfg *config.Config, repoRoot string, runner shell.CommandRunner, g *git.Git, renderer *template.Renderer) *Differ {
	return &Differ{
		config:   cfg,
		repoRoot: repoRoot,
		runner:   runner,
		git:      g,
		renderer: renderer,
	}
}

// Make computes one diff between the snapshot branches restricted to the
// request path. A quiet probe decides the classification first; only when a
// difference exists is the full diff materialized and rendered. The same two
// branches and path always produce the same classification and location.
func (d *Differ) Make(ctx context.Context, req Request) (Result, error) {
	if !d.git.HasDifference(ctx, d.config.BaseBranch, d.config.HeadBranch, req.Path, req.IgnoreWhitespace) {
		logger.Infof("No diff output for %s..%s (%s)", req.BaseSHA, req.HeadSHA, req.Suffix)
		return NoDifference(), nil
	}

	tmp, err := os.CreateTemp("", "codegen-diff-*.txt")
	if err != nil {
		return Result{}, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if err := tmp.Close(); err != nil {
		return Result{}, fmt.Errorf("failed to close temp file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmpName)
	}()

	err = d.git.DiffToFile(ctx, d.config.BaseBranch, d.config.HeadBranch, req.Path, tmpName,
		d.config.DiffContext, req.IgnoreWhitespace)
	if err != nil {
		return Result{}, fmt.Errorf("failed to materialize diff: %w", err)
	}

	if content, readErr := os.ReadFile(tmpName); readErr == nil {
		added, deleted, _ := CountLineChanges(string(content))
		logger.Infof("%s (%s): +%d/-%d lines", req.Title, req.Suffix, added, deleted)
	}

	partialPath := fmt.Sprintf("%s/%s/%s", req.BaseSHA, req.HeadSHA, req.Suffix)
	outputDir := filepath.Join(d.repoRoot, d.config.OutputPath, req.BaseSHA, req.HeadSHA, req.Suffix)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return Result{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	subtitle := fmt.Sprintf("rev. %s", req.HeadSHA)
	if req.IgnoreWhitespace {
		subtitle += " (ignoring whitespace)"
	}

	logger.Infof("rendering %s diff to %s", req.Title, outputDir)
	err = d.runner.Run(ctx, "difftags",
		"--output-dir", outputDir, "--title", req.Title, "--subtitle", subtitle, tmpName)
	if err != nil {
		return Result{}, fmt.Errorf("difftags failed: %w", err)
	}

	return Difference(partialPath + "/index.html"), nil
}

// MakeAll computes both whitespace modes for every diff target, in the fixed
// order SDK, Client Test, Server Test, Server Test Python, and assembles the
// summary message with escaped newlines.
func (d *Differ) MakeAll(ctx context.Context, baseSHA, headSHA string) (string, error) {
	var links []string
	for _, target := range codegen.DiffTargets() {
		path := d.config.OutputPath + "/" + target.StagingDir()

		sensitive, err := d.Make(ctx, Request{
			Title:   target.Title(),
			Path:    path,
			BaseSHA: baseSHA,
			HeadSHA: headSHA,
			Suffix:  target.Suffix(),
		})
		if err != nil {
			return "", err
		}

		insensitive, err := d.Make(ctx, Request{
			Title:            target.Title(),
			Path:             path,
			BaseSHA:          baseSHA,
			HeadSHA:          headSHA,
			Suffix:           target.Suffix() + "-ignore-whitespace",
			IgnoreWhitespace: true,
		})
		if err != nil {
			return "", err
		}

		links = append(links, Link(d.config.CdnURL, target.Title(), target.EmptyDiffText(),
			sensitive, "ignoring whitespace", insensitive))
	}

	return d.renderer.RenderBotMessage(links)
}
