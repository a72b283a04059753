package pipeline

import (
	"bytes"

	"github.com/matzehuels/techdd/pkg/deps"
	reportio "github.com/matzehuels/techdd/pkg/io"
	"github.com/matzehuels/techdd/pkg/license"
	"github.com/matzehuels/techdd/pkg/report"
)

// Render produces one artifact per format. overview adds the summary table
// to the markdown report.
func Render(rep deps.Report, summary *license.Summary, formats []string, overview bool) (map[string][]byte, error) {
	if summary == nil {
		summary = license.Analyze(rep)
	}
	artifacts := make(map[string][]byte, len(formats))
	for _, f := range formats {
		var buf bytes.Buffer
		var err error
		switch f {
		case FormatMarkdown:
			err = report.Markdown(&buf, rep, summary, report.Options{Overview: overview})
		case FormatJSON:
			err = reportio.WriteJSON(rep, &buf)
		default:
			return nil, errUnknownFormat(f)
		}
		if err != nil {
			return nil, err
		}
		artifacts[f] = buf.Bytes()
	}
	return artifacts, nil
}
