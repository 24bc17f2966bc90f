package benchmark

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/awslabs/smithy-rs/src/pkg/template"
)

var logger = log.WithField("package", "benchmark")

const (
	sectionStart  = "START"
	sectionEnd    = "END"
	secondsSuffix = " seconds"
)

// Record is one qualifying benchmark entry: an SDK name and the four compile
// timings in seconds
type Record struct {
	SdkName            string
	Dev                string
	Release            string
	DevAllFeatures     string
	ReleaseAllFeatures string
}

// Row renders the record as a markdown table row
func (r Record) Row() string {
	return fmt.Sprintf("|%s|%s|%s|%s|%s|", r.SdkName, r.Dev, r.Release, r.DevAllFeatures, r.ReleaseAllFeatures)
}

// Parse extracts qualifying records from a benchmark log. The log is split on
// the START and END sentinels; the sentinels only delimit sections and carry
// no data themselves. Chunks that do not match the expected shape are skipped
// silently.
func Parse(text string) []Record {
	var records []Record
	for _, section := range strings.Split(text, sectionStart) {
		for _, chunk := range strings.Split(section, sectionEnd) {
			if record, ok := parseChunk(chunk); ok {
				records = append(records, record)
			}
		}
	}
	return records
}

// parseChunk filters a chunk down to its data lines: rule lines (anything
// containing "+") and blank lines are dropped, and the literal " seconds"
// suffix is stripped. A chunk qualifies only when exactly six lines survive.
// The first surviving line is a label artifact of the log format and is
// discarded without interpretation.
func parseChunk(chunk string) (Record, bool) {
	var fields []string
	for _, line := range strings.Split(chunk, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, "+") {
			continue
		}
		fields = append(fields, strings.ReplaceAll(line, secondsSuffix, ""))
	}

	if len(fields) != 6 {
		return Record{}, false
	}

	fields = fields[1:]
	return Record{
		SdkName:            fields[0],
		Dev:                fields[1],
		Release:            fields[2],
		DevAllFeatures:     fields[3],
		ReleaseAllFeatures: fields[4],
	}, true
}

// Formatter renders benchmark logs as markdown tables
type Formatter struct {
	renderer *template.Renderer
}

// NewFormatter creates a new benchmark formatter
func NewFormatter() *Formatter {
	return &Formatter{renderer: template.NewRenderer()}
}

// Render produces the markdown table for the given records, rows in input
// order
func (f *Formatter) Render(records []Record) (string, error) {
	rows := make([]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, record.Row())
	}
	return f.renderer.RenderBenchmarkTable(rows)
}

// FormatFile reads a benchmark log, renders the table, writes it to
// outputPath and returns the markdown
func (f *Formatter) FormatFile(inputPath, outputPath string) (string, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return "", fmt.Errorf("failed to read benchmark log: %w", err)
	}

	records := Parse(string(data))
	logger.Infof("parsed %d benchmark records from %s", len(records), inputPath)

	markdown, err := f.Render(records)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(outputPath, []byte(markdown), 0644); err != nil {
		return "", fmt.Errorf("failed to write benchmark table: %w", err)
	}
	return markdown, nil
}
