package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/techdd/pkg/pipeline"
	"github.com/matzehuels/techdd/pkg/report"
)

// scanOpts holds the command-line flags for the scan command.
type scanOpts struct {
	enrich     enrichFlags
	out        outputFlags
	ecosystems []string
}

// scanCommand creates the scan command: inventory a source tree, enrich
// every declared package and write the report.
func (c *CLI) scanCommand() *cobra.Command {
	var opts scanOpts
	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Scan a source tree and write the due diligence report",
		Long: `Scan walks dir (default: the current directory) for dependency manifests
(requirements*.txt, *.csproj, package.json, Gemfile, composer.json,
Cargo.toml), looks up every declared package and writes a markdown report.`,
		Example: `  techdd scan
  techdd scan ./service -o service.md --json service.json
  techdd scan --ecosystem python --ecosystem npm --print`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return c.runScan(cmd, dir, &opts)
		},
	}
	opts.enrich.register(cmd)
	opts.out.register(cmd, report.DefaultFilename)
	cmd.Flags().StringSliceVarP(&opts.ecosystems, "ecosystem", "e", nil, "only scan manifests of these ecosystems")
	return cmd
}

func (c *CLI) runScan(cmd *cobra.Command, dir string, opts *scanOpts) error {
	popts, err := c.options(cmd, &opts.enrich)
	if err != nil {
		return err
	}
	popts.Ecosystems = opts.ecosystems
	popts.Overview = opts.out.overview

	result, err := c.execute(cmd.Context(), popts, "Enriching packages",
		func(ctx context.Context, r *pipeline.Runner) (*pipeline.Result, error) {
			return r.Execute(ctx, dir)
		})
	if err != nil {
		return err
	}

	if result.Stats.Manifests == 0 {
		printWarning(c.Out, "No dependency manifests found in %s", dir)
	} else {
		printInfo(c.Out, "Found %d manifests", result.Stats.Manifests)
		for _, m := range result.Scan.Manifests {
			printDetail(c.Out, "%s (%s, %d packages)", m.Path, m.Type, m.Packages)
		}
	}
	if err := c.writeOutputs(&opts.out, result.Report, result.Summary, result.Artifacts); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	c.printFindings(result.Stats.Requested, result.Report, result.Summary)
	return nil
}
