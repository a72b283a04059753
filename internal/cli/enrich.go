package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/techdd/pkg/pipeline"
	"github.com/matzehuels/techdd/pkg/report"
)

// enrichOpts holds the command-line flags for the enrich command.
type enrichOpts struct {
	enrich enrichFlags
	out    outputFlags
}

// enrichCommand creates the enrich command: look up packages named on the
// command line and print them as a table.
func (c *CLI) enrichCommand() *cobra.Command {
	var opts enrichOpts
	cmd := &cobra.Command{
		Use:   "enrich <ecosystem:name>...",
		Short: "Look up individual packages",
		Long: `Enrich looks up each package in its registry and in the vulnerability
database and prints the results as a table. The ecosystem may be given by
name or alias (python, pypi, npm, node, gem, composer, cargo, dotnet, ...).`,
		Example: `  techdd enrich python:flask npm:react rust:serde
  techdd enrich npm:@babel/core -o babel.md`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEnrich(cmd, args, &opts)
		},
	}
	opts.enrich.register(cmd)
	opts.out.register(cmd, "")
	return cmd
}

func (c *CLI) runEnrich(cmd *cobra.Command, args []string, opts *enrichOpts) error {
	inv, err := pipeline.ParseInventory(args)
	if err != nil {
		return err
	}
	popts, err := c.options(cmd, &opts.enrich)
	if err != nil {
		return err
	}
	popts.Overview = opts.out.overview

	result, err := c.execute(cmd.Context(), popts, "Enriching packages",
		func(ctx context.Context, r *pipeline.Runner) (*pipeline.Result, error) {
			return r.ExecuteInventory(ctx, inv)
		})
	if err != nil {
		return err
	}

	report.Table(c.Out, result.Report)
	if err := c.writeOutputs(&opts.out, result.Report, result.Summary, result.Artifacts); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	c.printFindings(result.Stats.Requested, result.Report, result.Summary)
	return nil
}
