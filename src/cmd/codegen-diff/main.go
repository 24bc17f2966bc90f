package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/awslabs/smithy-rs/src/internal/pipeline"
	"github.com/awslabs/smithy-rs/src/pkg/trace"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "codegen-diff",
		Short: "Generated-code diff tooling for smithy-rs pull requests",
		Long: `codegen-diff regenerates the AWS SDK and codegen test projects for two
revisions of a smithy-rs checkout, commits the generated code onto ephemeral
branches, and renders HTML diff pages plus a PR comment summarizing them.`,
		Version:       fmt.Sprintf("%s (built: %s)", Version, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "Path to a pipeline config file (default: built-in settings)")
	cmd.PersistentFlags().BoolVar(&opts.TraceEnabled, "trace", false, "Record phase timings into the staging directory")

	cmd.AddCommand(newRevisionsCmd(opts))
	cmd.AddCommand(newCheckDeterministicCmd(opts))
	cmd.AddCommand(newSemverChecksCmd(opts))

	return cmd
}

func newRevisionsCmd(opts *pipeline.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revisions <repository-root> <base-commit-sha>",
		Short: "Generate and diff code for the checked-out revision against a base revision",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.RepositoryRoot = args[0]
			opts.BaseSHA = args[1]
			return withPipeline(cmd, opts, (*pipeline.Pipeline).Run)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Targets, "targets", nil, "Codegen targets to diff (comma-separated; default: client-test,server-test,sdk)")
	cmd.Flags().StringVar(&opts.GhRepo, "gh-repo", "", "GitHub repository to post the summary to (e.g., awslabs/smithy-rs)")
	cmd.Flags().IntVar(&opts.GhPrNumber, "gh-pr-number", 0, "GitHub PR number to post the summary to")

	return cmd
}

func newCheckDeterministicCmd(opts *pipeline.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "check-deterministic <repository-root>",
		Short: "Generate the SDK twice at HEAD and fail when the runs differ",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.RepositoryRoot = args[0]
			return withPipeline(cmd, opts, (*pipeline.Pipeline).CheckDeterministic)
		},
	}
}

func newSemverChecksCmd(opts *pipeline.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "semver-checks <repository-root> <base-commit-sha>",
		Short: "Check generated SDK crates against a base revision for breaking changes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.RepositoryRoot = args[0]
			opts.BaseSHA = args[1]
			return withPipeline(cmd, opts, (*pipeline.Pipeline).SemverChecks)
		},
	}
}

// withPipeline validates options, builds the pipeline and runs one of its
// entry points with tracing wired up
func withPipeline(cmd *cobra.Command, opts *pipeline.Options, run func(*pipeline.Pipeline, context.Context) error) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	p, err := pipeline.New(opts)
	if err != nil {
		return err
	}

	shutdown, err := trace.InitTracer("codegen-diff", opts.TraceEnabled, p.StagingPath())
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer shutdown()

	return run(p, cmd.Context())
}
