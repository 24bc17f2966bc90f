package git

import (
	"context"
	"fmt"

	"github.com/awslabs/smithy-rs/src/pkg/shell"
)

// Identity is the author/committer identity used for generated-code commits
type Identity struct {
	Name  string
	Email string
}

// Git runs git operations against the repository the underlying runner is
// rooted at. Callers pass the repository directory explicitly through the
// runner instead of relying on the process working directory.
type Git struct {
	runner shell.CommandRunner
}

// New creates a Git wrapper on top of a command runner
func New(runner shell.CommandRunner) *Git {
	return &Git{runner: runner}
}

// RevParseHead resolves the SHA of the current HEAD
func (g *Git) RevParseHead(ctx context.Context) (string, error) {
	sha, err := g.runner.Output(ctx, "git", "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	return sha, nil
}

// Checkout checks out a revision or branch
func (g *Git) Checkout(ctx context.Context, rev string) error {
	if err := g.runner.Run(ctx, "git", "checkout", rev); err != nil {
		return fmt.Errorf("git checkout %s failed: %w", rev, err)
	}
	return nil
}

// CheckoutBranch checks out a revision and resets branch to point at it
func (g *Git) CheckoutBranch(ctx context.Context, rev, branch string) error {
	if err := g.runner.Run(ctx, "git", "checkout", rev, "-B", branch); err != nil {
		return fmt.Errorf("git checkout %s -B %s failed: %w", rev, branch, err)
	}
	return nil
}

// AddForce stages a path even when it is ignored
func (g *Git) AddForce(ctx context.Context, path string) error {
	if err := g.runner.Run(ctx, "git", "add", "-f", path); err != nil {
		return fmt.Errorf("git add failed: %w", err)
	}
	return nil
}

// Commit creates a commit as the given identity. Hooks are skipped and an
// empty changeset still produces a commit, so two snapshot branches can
// always be compared.
func (g *Git) Commit(ctx context.Context, message string, author Identity) error {
	err := g.runner.Run(ctx, "git",
		"-c", fmt.Sprintf("user.name=%s", author.Name),
		"-c", fmt.Sprintf("user.email=%s", author.Email),
		"commit", "--no-verify", "--allow-empty", "-m", message)
	if err != nil {
		return fmt.Errorf("git commit failed: %w", err)
	}
	return nil
}

// HasDifference probes whether base and head differ under path. The probe is
// a quiet diff, so no output is produced either way.
func (g *Git) HasDifference(ctx context.Context, base, head, path string, ignoreWhitespace bool) bool {
	args := []string{"diff", "--quiet"}
	if ignoreWhitespace {
		args = append(args, "-b")
	}
	args = append(args, base, head, "--", path)
	return g.runner.Status(ctx, "git", args...) != 0
}

// DiffToFile materializes a unified diff between base and head restricted to
// path, with contextLines lines of context, into outputFile.
func (g *Git) DiffToFile(ctx context.Context, base, head, path, outputFile string, contextLines int, ignoreWhitespace bool) error {
	args := []string{"diff", fmt.Sprintf("--output=%s", outputFile), fmt.Sprintf("-U%d", contextLines)}
	if ignoreWhitespace {
		args = append(args, "-b")
	}
	args = append(args, base, head, "--", path)
	if err := g.runner.Run(ctx, "git", args...); err != nil {
		return fmt.Errorf("git diff failed: %w", err)
	}
	return nil
}

// DiffExitCode fails when the given revision range contains any difference
func (g *Git) DiffExitCode(ctx context.Context, revRange string) error {
	return g.runner.Run(ctx, "git", "diff", revRange, "--exit-code")
}

// HasRevisionPath reports whether path exists at the given revision
func (g *Git) HasRevisionPath(ctx context.Context, rev, path string) bool {
	return g.runner.Status(ctx, "git", "cat-file", "-e", fmt.Sprintf("%s:%s", rev, path)) == 0
}

// IsClean reports whether the working tree has no unstaged changes
func (g *Git) IsClean(ctx context.Context) bool {
	return g.runner.Status(ctx, "git", "diff", "--quiet") == 0
}
