package report

import (
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/matzehuels/techdd/pkg/deps"
	"github.com/matzehuels/techdd/pkg/license"
)

// Terminal renders the markdown report for a terminal of the given width.
// dark selects the dark color scheme; a width of 0 disables wrapping.
func Terminal(report deps.Report, summary *license.Summary, width int, dark bool) (string, error) {
	style := styles.LightStyleConfig
	if dark {
		style = styles.DarkStyleConfig
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(MarkdownString(report, summary, Options{Overview: true}))
}

// Table writes one row per package to w.
func Table(w io.Writer, report deps.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Ecosystem", "Package", "Version", "License", "Released", "Vulnerable", "Deprecated"})
	for _, r := range report.Records() {
		t.AppendRow(table.Row{
			string(r.Ecosystem), r.Name, r.Version, license.Normalize(r.License),
			r.ReleaseDate, yesNo(r.HasKnownVulnerability), yesNo(r.Deprecated),
		})
	}
	t.Render()
}
