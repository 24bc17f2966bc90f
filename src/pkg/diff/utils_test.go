package diff

import "testing"

// TestCountLineChanges tests added/deleted counting on unified diff text
func TestCountLineChanges(t *testing.T) {
	tests := []struct {
		name        string
		diff        string
		wantAdded   int
		wantDeleted int
	}{
		{
			name:        "mixed changes",
			diff:        "--- a/file\n+++ b/file\n@@ -1,3 +1,3 @@\n context\n-old line\n+new line\n+another\n",
			wantAdded:   2,
			wantDeleted: 1,
		},
		{
			name: "empty diff",
			diff: "",
		},
		{
			name:        "headers are not counted",
			diff:        "--- a/file\n+++ b/file\n",
			wantAdded:   0,
			wantDeleted: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			added, deleted, total := CountLineChanges(tt.diff)
			if added != tt.wantAdded || deleted != tt.wantDeleted {
				t.Errorf("CountLineChanges() = +%d/-%d, want +%d/-%d", added, deleted, tt.wantAdded, tt.wantDeleted)
			}
			if total != added+deleted {
				t.Errorf("total = %d, want %d", total, added+deleted)
			}
		})
	}
}
