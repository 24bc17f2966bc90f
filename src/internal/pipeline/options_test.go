package pipeline

import (
	"path/filepath"
	"testing"
)

// TestOptions_Validate tests option consistency checks
func TestOptions_Validate(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{
			name: "minimal valid options",
			opts: Options{RepositoryRoot: root, BaseSHA: "base1234"},
		},
		{
			name: "github posting fully configured",
			opts: Options{RepositoryRoot: root, BaseSHA: "base1234", GhRepo: "awslabs/smithy-rs", GhPrNumber: 42},
		},
		{
			name:    "missing repository root",
			opts:    Options{BaseSHA: "base1234"},
			wantErr: true,
		},
		{
			name:    "nonexistent repository root",
			opts:    Options{RepositoryRoot: filepath.Join(root, "missing"), BaseSHA: "base1234"},
			wantErr: true,
		},
		{
			name:    "gh repo without pr number",
			opts:    Options{RepositoryRoot: root, BaseSHA: "base1234", GhRepo: "awslabs/smithy-rs"},
			wantErr: true,
		},
		{
			name:    "pr number without gh repo",
			opts:    Options{RepositoryRoot: root, BaseSHA: "base1234", GhPrNumber: 42},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
