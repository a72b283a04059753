package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	reportio "github.com/matzehuels/techdd/pkg/io"
	"github.com/matzehuels/techdd/pkg/license"
	"github.com/matzehuels/techdd/pkg/pipeline"
)

// renderCommand creates the render command: turn a JSON report saved by
// scan or enrich back into markdown or terminal output, offline.
func (c *CLI) renderCommand() *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "render <report.json>",
		Short: "Render a saved JSON report",
		Example: `  techdd scan --json report.json
  techdd render report.json -o report.md --overview
  techdd render report.json --print -o ""`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := reportio.ImportJSON(args[0])
			if err != nil {
				return err
			}
			summary := license.Analyze(rep)
			artifacts, err := pipeline.Render(rep, summary, []string{pipeline.FormatMarkdown}, out.overview)
			if err != nil {
				return err
			}
			if err := c.writeOutputs(&out, rep, summary, artifacts); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			return nil
		},
	}
	out.register(cmd, "-")
	return cmd
}
