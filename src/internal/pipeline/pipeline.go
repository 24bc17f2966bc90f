package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/awslabs/smithy-rs/src/pkg/codegen"
	"github.com/awslabs/smithy-rs/src/pkg/config"
	"github.com/awslabs/smithy-rs/src/pkg/diff"
	"github.com/awslabs/smithy-rs/src/pkg/git"
	"github.com/awslabs/smithy-rs/src/pkg/github"
	"github.com/awslabs/smithy-rs/src/pkg/semver"
	"github.com/awslabs/smithy-rs/src/pkg/shell"
	"github.com/awslabs/smithy-rs/src/pkg/template"
	"github.com/awslabs/smithy-rs/src/pkg/trace"
)

var logger = log.WithField("package", "pipeline")

// botMessageFile is the file the summary is written to, inside the staging
// directory, for the CI workflow to pick up
const botMessageFile = "bot-message"

// Pipeline wires the generate, commit and diff steps together over one
// repository checkout
type Pipeline struct {
	opts    *Options
	config  *config.Config
	targets []codegen.Target

	git    *git.Git
	gen    *codegen.Generator
	differ *diff.Differ
	semver *semver.Checker

	// nil unless a PR to post to was configured
	gh github.PRClient
}

// New builds a pipeline from options, loading configuration and
// authenticating with GitHub when posting was requested
func New(opts *Options) (*Pipeline, error) {
	cfg, err := config.NewLoader().Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	targets := codegen.DefaultTargets()
	if len(opts.Targets) > 0 {
		targets = nil
		for _, raw := range opts.Targets {
			target, err := codegen.ParseTarget(raw)
			if err != nil {
				return nil, err
			}
			targets = append(targets, target)
		}
	}

	runner := shell.NewRunner(opts.RepositoryRoot)
	g := git.New(runner)
	author := git.Identity{Name: cfg.CommitAuthorName, Email: cfg.CommitAuthorEmail}
	gen := codegen.NewGenerator(runner, g, opts.RepositoryRoot, cfg.OutputPath, author)
	differ := diff.NewDiffer(cfg, opts.RepositoryRoot, runner, g, template.NewRenderer())
	checker := semver.NewChecker(runner, g, gen, opts.RepositoryRoot, cfg.OutputPath)

	var gh github.PRClient
	if opts.GhRepo != "" {
		client, err := github.NewClient()
		if err != nil {
			return nil, fmt.Errorf("GitHub authentication failed: %w", err)
		}
		gh = client
	}

	return &Pipeline{
		opts:    opts,
		config:  cfg,
		targets: targets,
		git:     g,
		gen:     gen,
		differ:  differ,
		semver:  checker,
		gh:      gh,
	}, nil
}

// StagingPath returns the absolute staging directory
func (p *Pipeline) StagingPath() string {
	return filepath.Join(p.opts.RepositoryRoot, p.config.OutputPath)
}

// Run executes the full diff pipeline: snapshot generated code for HEAD and
// the base revision on their ephemeral branches, compute all per-target
// diffs, write the summary and optionally post it to the PR. The snapshot
// branches are left for the caller to clean up.
func (p *Pipeline) Run(ctx context.Context) error {
	ctx, span := trace.StartSpan(ctx, "codegen-diff-revisions")
	defer span.End()

	headSHA, err := p.git.RevParseHead(ctx)
	if err != nil {
		return err
	}
	logger.Infof("diffing generated code for %s..%s", p.opts.BaseSHA, headSHA)

	if err := p.snapshot(ctx, headSHA, p.config.HeadBranch); err != nil {
		return err
	}
	if err := p.snapshot(ctx, p.opts.BaseSHA, p.config.BaseBranch); err != nil {
		return err
	}

	message, err := p.makeDiffs(ctx, headSHA)
	if err != nil {
		return err
	}

	messagePath := filepath.Join(p.StagingPath(), botMessageFile)
	if err := os.WriteFile(messagePath, []byte(message), 0644); err != nil {
		return fmt.Errorf("failed to write bot message: %w", err)
	}
	logger.Infof("summary written to %s", messagePath)

	if p.gh != nil {
		// The stored message carries escaped newlines for single-line CI
		// fields; a PR comment wants real ones.
		body := strings.ReplaceAll(message, `\n`, "\n")
		if err := p.gh.PostBotMessage(ctx, p.opts.GhRepo, p.opts.GhPrNumber, body); err != nil {
			return fmt.Errorf("failed to post summary to PR: %w", err)
		}
	}
	return nil
}

// CheckDeterministic generates the SDK twice at HEAD and fails when the two
// runs produce different output
func (p *Pipeline) CheckDeterministic(ctx context.Context) error {
	ctx, span := trace.StartSpan(ctx, "check-deterministic-codegen")
	defer span.End()

	headSHA, err := p.git.RevParseHead(ctx)
	if err != nil {
		return err
	}

	sdkOnly := []codegen.Target{codegen.TargetSdk}
	for _, branch := range []string{"once", "twice"} {
		if err := p.git.CheckoutBranch(ctx, headSHA, branch); err != nil {
			return err
		}
		if err := p.gen.GenerateAndCommit(ctx, headSHA, sdkOnly); err != nil {
			return err
		}
	}

	if err := p.git.DiffExitCode(ctx, "once..twice"); err != nil {
		return fmt.Errorf("generated code is not deterministic: %w", err)
	}
	logger.Info("generated code is deterministic")
	return nil
}

// SemverChecks checks every generated SDK crate against the base revision
// for breaking changes
func (p *Pipeline) SemverChecks(ctx context.Context) error {
	ctx, span := trace.StartSpan(ctx, "semver-checks")
	defer span.End()

	return p.semver.Check(ctx, p.opts.BaseSHA)
}

func (p *Pipeline) snapshot(ctx context.Context, sha, branch string) error {
	ctx, span := trace.StartSpan(ctx, "generate-"+branch)
	defer span.End()

	logger.Infof("snapshotting generated code for %s on %s", sha, branch)
	if err := p.git.CheckoutBranch(ctx, sha, branch); err != nil {
		return err
	}
	if err := p.gen.GenerateAndCommit(ctx, sha, p.targets); err != nil {
		return fmt.Errorf("failed to generate code for %s: %w", sha, err)
	}
	return nil
}

func (p *Pipeline) makeDiffs(ctx context.Context, headSHA string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "make-diffs")
	defer span.End()

	return p.differ.MakeAll(ctx, p.opts.BaseSHA, headSHA)
}
