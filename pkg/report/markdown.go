package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/matzehuels/techdd/pkg/deps"
	"github.com/matzehuels/techdd/pkg/license"
)

// DefaultFilename is where the CLI writes the markdown report.
const DefaultFilename = "tech_due_diligence_report.md"

// Options controls optional parts of the markdown report.
type Options struct {
	// Overview adds a per-ecosystem table after the title.
	Overview bool
}

// Markdown writes the report document to w. summary may be nil, in which
// case it is computed with [license.Analyze].
//
// Ecosystems appear in [deps.Report.Ecosystems] order and only when they
// have at least one package.
func Markdown(w io.Writer, report deps.Report, summary *license.Summary, opts Options) error {
	if summary == nil {
		summary = license.Analyze(report)
	}
	b := bufio.NewWriter(w)

	b.WriteString("# Tech Due Diligence Report\n\n")
	if opts.Overview {
		b.WriteString("## Overview\n\n")
		b.WriteString(overview(report))
		b.WriteString("\n\n")
	}
	b.WriteString("## Open Source Dependencies\n\n")
	for _, e := range report.Ecosystems() {
		recs := report[e]
		if len(recs) == 0 {
			continue
		}
		fmt.Fprintf(b, "### %s Packages\n\n", e)
		for _, r := range recs {
			writePackage(b, r)
		}
	}

	b.WriteString("\n## License Summary\n\n")
	for _, l := range summary.Known() {
		fmt.Fprintf(b, "- %s: %d package(s)\n", l, summary.Counts[l])
	}
	if n := summary.Counts[license.Unknown]; n > 0 {
		fmt.Fprintf(b, "- Unknown: %d package(s)\n", n)
	}

	b.WriteString("\n## License Compatibility\n\n")
	if len(summary.Checked) > 1 {
		b.WriteString("### Potential Incompatibilities\n\n")
		for _, c := range summary.Conflicts {
			fmt.Fprintf(b, "- %s may be incompatible with %s\n", c.A, c.B)
			b.WriteString("  Affected packages:\n")
			for _, r := range c.Affected {
				fmt.Fprintf(b, "  - %s (%s)\n", r.Name, license.Normalize(r.License))
			}
			b.WriteString("\n")
		}
		if len(summary.Conflicts) == 0 {
			b.WriteString("No potential license incompatibilities found among known licenses.\n\n")
		}
	} else {
		b.WriteString("All packages with known licenses use the same license or there's only one " +
			"package with a known license. No compatibility issues among known licenses.\n\n")
	}

	if len(summary.Unknown) > 0 {
		b.WriteString("### Packages with Unknown Licenses\n\n")
		b.WriteString("The following packages have unknown or unspecified licenses. " +
			"These should be investigated further:\n\n")
		for _, r := range summary.Unknown {
			fmt.Fprintf(b, "- %s (%s)\n", r.Name, r.ProjectURL)
		}
		b.WriteString("\nNote: Packages with unknown licenses are not included in the compatibility " +
			"check and may pose additional licensing risks.\n\n")
	}
	return b.Flush()
}

// MarkdownString is [Markdown] into a string.
func MarkdownString(report deps.Report, summary *license.Summary, opts Options) string {
	var sb strings.Builder
	_ = Markdown(&sb, report, summary, opts)
	return sb.String()
}

func writePackage(b *bufio.Writer, r deps.PackageRecord) {
	fmt.Fprintf(b, "#### %s\n\n", r.Name)
	fmt.Fprintf(b, "- Description: %s\n", r.Description)
	fmt.Fprintf(b, "- Author: %s\n", r.Author)
	fmt.Fprintf(b, "- License: %s\n", license.Normalize(r.License))
	fmt.Fprintf(b, "- Project URL: %s\n", r.ProjectURL)
	fmt.Fprintf(b, "- Release Date: %s\n", r.ReleaseDate)
	if r.Deprecated {
		b.WriteString("- **Note: This package may be deprecated or no longer available.**\n")
	}
	fmt.Fprintf(b, "- Known Vulnerability: %s\n\n", yesNo(r.HasKnownVulnerability))
}

func overview(report deps.Report) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Ecosystem", "Packages", "Vulnerable", "Deprecated", "Unknown License"})
	var total, vuln, depr, unknown int
	for _, e := range report.Ecosystems() {
		recs := report[e]
		if len(recs) == 0 {
			continue
		}
		v, d, u := counts(recs)
		t.AppendRow(table.Row{string(e), len(recs), v, d, u})
		total += len(recs)
		vuln += v
		depr += d
		unknown += u
	}
	t.AppendFooter(table.Row{"Total", total, vuln, depr, unknown})
	return t.RenderMarkdown()
}

func counts(recs []deps.PackageRecord) (vulnerable, deprecated, unknown int) {
	for _, r := range recs {
		if r.HasKnownVulnerability {
			vulnerable++
		}
		if r.Deprecated {
			deprecated++
		}
		if license.Normalize(r.License) == license.Unknown {
			unknown++
		}
	}
	return vulnerable, deprecated, unknown
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
