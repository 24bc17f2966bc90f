package shell

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"
)

var logger = log.WithField("package", "shell")

// CommandRunner defines the interface for running external commands
type CommandRunner interface {
	// Run executes a command from an argument list and fails on a non-zero exit
	Run(ctx context.Context, name string, args ...string) error
	// RunShell executes a full shell command string and fails on a non-zero exit
	RunShell(ctx context.Context, command string) error
	// Output executes a command and returns its trimmed stdout
	Output(ctx context.Context, name string, args ...string) (string, error)
	// Status executes a command and returns only its exit code
	Status(ctx context.Context, name string, args ...string) int
}

// Runner executes external commands in a fixed working directory. Both stdout
// and stderr of every command go to the process error stream so that command
// output never mixes with data written to stdout.
type Runner struct {
	Dir string
}

// Ensure Runner implements CommandRunner
var _ CommandRunner = (*Runner)(nil)

// NewRunner creates a runner rooted at dir
func NewRunner(dir string) *Runner {
	return &Runner{Dir: dir}
}

// Run executes a command from an argument list and fails on a non-zero exit
func (r *Runner) Run(ctx context.Context, name string, args ...string) error {
	logger.Debugf("running: %s %s", name, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}

// RunShell executes a full shell command string and fails on a non-zero exit
func (r *Runner) RunShell(ctx context.Context, command string) error {
	logger.Debugf("running shell: %s", command)

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = r.Dir
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("shell command failed: %w", err)
	}
	return nil
}

// Output executes a command and returns its trimmed stdout
func (r *Runner) Output(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	cmd.Stderr = os.Stderr

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%s failed: %w", name, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Status executes a command and returns only its exit code. A command that
// could not be started at all reports -1.
func (r *Runner) Status(ctx context.Context, name string, args ...string) int {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode()
		}
		return -1
	}
	return 0
}
