package benchmark

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestParse tests record extraction and the leniency rules
func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Record
	}{
		{
			name: "well-formed section",
			text: "START\n header\n iam\n201.92 seconds\n217.43 seconds\n215.10 seconds\n187.71 seconds\nEND",
			want: []Record{{
				SdkName:            "iam",
				Dev:                "201.92",
				Release:            "217.43",
				DevAllFeatures:     "215.10",
				ReleaseAllFeatures: "187.71",
			}},
		},
		{
			name: "five surviving lines are skipped",
			text: "START\n header\n iam\n201.92 seconds\n217.43 seconds\n215.10 seconds\nEND",
			want: nil,
		},
		{
			name: "seven surviving lines are skipped",
			text: "START\n header\n iam\nextra\n201.92 seconds\n217.43 seconds\n215.10 seconds\n187.71 seconds\nEND",
			want: nil,
		},
		{
			name: "rule lines are invisible",
			text: "START\n+----+\n header\n+----+\n iam\n201.92 seconds\n217.43 seconds\n215.10 seconds\n187.71 seconds\n+----+\nEND",
			want: []Record{{
				SdkName:            "iam",
				Dev:                "201.92",
				Release:            "217.43",
				DevAllFeatures:     "215.10",
				ReleaseAllFeatures: "187.71",
			}},
		},
		{
			name: "multiple sections in input order",
			text: "START\nh\niam\n1 seconds\n2 seconds\n3 seconds\n4 seconds\nEND\n" +
				"START\nh\ns3\n5 seconds\n6 seconds\n7 seconds\n8 seconds\nEND",
			want: []Record{
				{SdkName: "iam", Dev: "1", Release: "2", DevAllFeatures: "3", ReleaseAllFeatures: "4"},
				{SdkName: "s3", Dev: "5", Release: "6", DevAllFeatures: "7", ReleaseAllFeatures: "8"},
			},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name: "text outside sentinels is still chunked",
			text: "noise\nmore noise",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Parse() returned %d records, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("record %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// TestFormatter_Render tests the concrete table shape
func TestFormatter_Render(t *testing.T) {
	f := NewFormatter()

	records := Parse("START\n header\n iam\n201.92 seconds\n217.43 seconds\n215.10 seconds\n187.71 seconds\nEND")
	markdown, err := f.Render(records)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(markdown, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header, separator and one row, got %d lines:\n%s", len(lines), markdown)
	}
	if lines[0] != "| sdk name | dev | release | dev all features | release all features |" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[2] != "|iam|201.92|217.43|215.10|187.71|" {
		t.Errorf("row = %q, want %q", lines[2], "|iam|201.92|217.43|215.10|187.71|")
	}
}

// TestFormatter_FormatFile tests the file-to-file path
func TestFormatter_FormatFile(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "compiletime-benchmark.txt")
	outputPath := filepath.Join(dir, "compiletime-benchmark.md")

	input := "START\nh\niam\n1 seconds\n2 seconds\n3 seconds\n4 seconds\nEND"
	if err := os.WriteFile(inputPath, []byte(input), 0644); err != nil {
		t.Fatal(err)
	}

	f := NewFormatter()
	markdown, err := f.FormatFile(inputPath, outputPath)
	if err != nil {
		t.Fatalf("FormatFile() error = %v", err)
	}

	written, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if string(written) != markdown {
		t.Error("written table differs from returned markdown")
	}
	if !strings.Contains(markdown, "|iam|1|2|3|4|") {
		t.Errorf("markdown missing row: %q", markdown)
	}

	t.Run("missing input is an error", func(t *testing.T) {
		if _, err := f.FormatFile(filepath.Join(dir, "nope.txt"), outputPath); err == nil {
			t.Error("FormatFile() error = nil, want error")
		}
	})
}
