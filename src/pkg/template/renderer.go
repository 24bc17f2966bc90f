package template

import (
	"bytes"
	"fmt"
	"text/template"
)

// ToolCommentSignature marks PR comments created by the pipeline so that a
// rerun updates the existing comment instead of stacking a new one
const ToolCommentSignature = "<!-- codegen-diff: auto-generated comment, please do not remove -->"

// The summary is embedded in a single-line CI message field, so newlines are
// saved as literal backslash-n escapes.
const botMessageTemplate = `A new generated diff is ready to view.\n{{range .Links}}- {{.}}\n{{end}}`

const benchmarkTableTemplate = `| sdk name | dev | release | dev all features | release all features |
| -------- | --- | ------- | ---------------- | -------------------- |
{{range .Rows}}{{.}}
{{end}}`

// Renderer handles template rendering
type Renderer struct{}

// NewRenderer creates a new template renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderString renders a template string with the given data
func (r *Renderer) RenderString(tmpl string, data interface{}) (string, error) {
	t, err := template.New("render").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}

// RenderBotMessage renders the diff summary with escaped newlines, one bullet
// per diff target in the order given
func (r *Renderer) RenderBotMessage(links []string) (string, error) {
	return r.RenderString(botMessageTemplate, struct{ Links []string }{Links: links})
}

// RenderBenchmarkTable renders the five-column compile-time benchmark table,
// one row per record in input order
func (r *Renderer) RenderBenchmarkTable(rows []string) (string, error) {
	return r.RenderString(benchmarkTableTemplate, struct{ Rows []string }{Rows: rows})
}
