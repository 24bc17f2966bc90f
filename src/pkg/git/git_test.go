package git

import (
	"context"
	"strings"
	"testing"
)

// mockRunner records commands and answers exit statuses from a canned map
type mockRunner struct {
	commands []string
	statuses map[string]int
	outputs  map[string]string
	runErr   error
}

func (m *mockRunner) record(name string, args ...string) string {
	cmd := name + " " + strings.Join(args, " ")
	m.commands = append(m.commands, cmd)
	return cmd
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) error {
	m.record(name, args...)
	return m.runErr
}

func (m *mockRunner) RunShell(ctx context.Context, command string) error {
	m.commands = append(m.commands, command)
	return m.runErr
}

func (m *mockRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	cmd := m.record(name, args...)
	return m.outputs[cmd], nil
}

func (m *mockRunner) Status(ctx context.Context, name string, args ...string) int {
	return m.statuses[m.record(name, args...)]
}

// TestGit_HasDifference tests the quiet diff probe and its whitespace flag
func TestGit_HasDifference(t *testing.T) {
	tests := []struct {
		name             string
		ignoreWhitespace bool
		status           int
		wantCmd          string
		want             bool
	}{
		{
			name:    "no difference",
			status:  0,
			wantCmd: "git diff --quiet base head -- some/path",
			want:    false,
		},
		{
			name:    "difference exists",
			status:  1,
			wantCmd: "git diff --quiet base head -- some/path",
			want:    true,
		},
		{
			name:             "ignoring whitespace",
			ignoreWhitespace: true,
			status:           1,
			wantCmd:          "git diff --quiet -b base head -- some/path",
			want:             true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockRunner{statuses: map[string]int{tt.wantCmd: tt.status}}
			g := New(m)

			got := g.HasDifference(context.Background(), "base", "head", "some/path", tt.ignoreWhitespace)
			if got != tt.want {
				t.Errorf("HasDifference() = %v, want %v", got, tt.want)
			}
			if len(m.commands) != 1 || m.commands[0] != tt.wantCmd {
				t.Errorf("commands = %v, want [%s]", m.commands, tt.wantCmd)
			}
		})
	}
}

// TestGit_DiffToFile tests the materialized diff invocation
func TestGit_DiffToFile(t *testing.T) {
	m := &mockRunner{}
	g := New(m)

	err := g.DiffToFile(context.Background(), "base", "head", "some/path", "/tmp/out.txt", 30, false)
	if err != nil {
		t.Fatalf("DiffToFile() error = %v", err)
	}

	want := "git diff --output=/tmp/out.txt -U30 base head -- some/path"
	if len(m.commands) != 1 || m.commands[0] != want {
		t.Errorf("commands = %v, want [%s]", m.commands, want)
	}
}

// TestGit_Commit tests that commits carry the bot identity and survive empty
// changesets
func TestGit_Commit(t *testing.T) {
	m := &mockRunner{}
	g := New(m)

	author := Identity{Name: "Bot", Email: "bot@example.com"}
	if err := g.Commit(context.Background(), "Generated code for abc123", author); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	if len(m.commands) != 1 {
		t.Fatalf("expected 1 command, got %d", len(m.commands))
	}
	cmd := m.commands[0]
	for _, fragment := range []string{
		"user.name=Bot",
		"user.email=bot@example.com",
		"--no-verify",
		"--allow-empty",
		"Generated code for abc123",
	} {
		if !strings.Contains(cmd, fragment) {
			t.Errorf("commit command %q missing %q", cmd, fragment)
		}
	}
}

// TestGit_HasRevisionPath tests the cat-file existence probe
func TestGit_HasRevisionPath(t *testing.T) {
	m := &mockRunner{statuses: map[string]int{
		"git cat-file -e base:sdk/s3/Cargo.toml":  0,
		"git cat-file -e base:sdk/new/Cargo.toml": 128,
	}}
	g := New(m)

	if !g.HasRevisionPath(context.Background(), "base", "sdk/s3/Cargo.toml") {
		t.Error("HasRevisionPath(existing) = false, want true")
	}
	if g.HasRevisionPath(context.Background(), "base", "sdk/new/Cargo.toml") {
		t.Error("HasRevisionPath(missing) = true, want false")
	}
}

// TestGit_CheckoutBranch tests branch reset semantics
func TestGit_CheckoutBranch(t *testing.T) {
	m := &mockRunner{}
	g := New(m)

	if err := g.CheckoutBranch(context.Background(), "abc123", "__tmp-localonly-head"); err != nil {
		t.Fatalf("CheckoutBranch() error = %v", err)
	}
	want := "git checkout abc123 -B __tmp-localonly-head"
	if m.commands[0] != want {
		t.Errorf("command = %q, want %q", m.commands[0], want)
	}
}
