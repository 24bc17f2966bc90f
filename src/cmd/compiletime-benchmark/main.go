package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/awslabs/smithy-rs/src/pkg/benchmark"
	"github.com/awslabs/smithy-rs/src/pkg/config"
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
	var (
		configPath string
		inputPath  string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "compiletime-benchmark",
		Short: "Format compile-time benchmark logs as a markdown table",
		Long: `compiletime-benchmark reads the raw timing log produced by the compile-time
benchmark CI job and renders it as a markdown table, printed to stdout and
written to a file for the workflow to post.`,
		Version:       fmt.Sprintf("%s (built: %s)", Version, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewLoader().Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if inputPath == "" {
				inputPath = cfg.Benchmark.InputPath
			}
			if outputPath == "" {
				outputPath = cfg.Benchmark.OutputPath
			}

			markdown, err := benchmark.NewFormatter().FormatFile(inputPath, outputPath)
			if err != nil {
				return err
			}
			fmt.Println(markdown)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to a pipeline config file (default: built-in settings)")
	cmd.Flags().StringVar(&inputPath, "input", "", "Benchmark log to read (default: from config)")
	cmd.Flags().StringVar(&outputPath, "output", "", "File the markdown table is written to (default: from config)")

	return cmd
}
