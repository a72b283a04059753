package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/techdd/pkg/deps"
	reportio "github.com/matzehuels/techdd/pkg/io"
	"github.com/matzehuels/techdd/pkg/license"
	"github.com/matzehuels/techdd/pkg/pipeline"
	"github.com/matzehuels/techdd/pkg/report"
)

// outputFlags select where a report goes.
type outputFlags struct {
	output   string
	json     string
	print    bool
	overview bool
	width    int
}

func (f *outputFlags) register(cmd *cobra.Command, defaultOutput string) {
	cmd.Flags().StringVarP(&f.output, "output", "o", defaultOutput, "markdown report file (- for stdout)")
	cmd.Flags().StringVar(&f.json, "json", "", "also write the report as JSON to this file")
	cmd.Flags().BoolVar(&f.print, "print", false, "render the report in the terminal")
	cmd.Flags().BoolVar(&f.overview, "overview", false, "add an overview table to the markdown report")
	cmd.Flags().IntVar(&f.width, "width", 100, "terminal width for --print (0 disables wrapping)")
}

// options builds runner options from the config file and the flags of cmd.
func (c *CLI) options(cmd *cobra.Command, ef *enrichFlags) (pipeline.Options, error) {
	cfg := c.flags.config
	if cfg == nil {
		cfg = &Config{}
	}
	opts := cfg.pipelineOptions()
	if err := ef.apply(cmd, &opts); err != nil {
		return opts, err
	}
	opts.Logger = loggerFromContext(cmd.Context())
	return opts, nil
}

// execute builds a runner from opts and calls fn with it, showing a
// spinner with enrichment progress unless logging is verbose. Metrics are
// written when --metrics is set, whether or not fn succeeds.
func (c *CLI) execute(ctx context.Context, opts pipeline.Options, message string,
	fn func(context.Context, *pipeline.Runner) (*pipeline.Result, error),
) (*pipeline.Result, error) {
	sink := newMetricsSink(c.flags.metrics)
	sink.apply(&opts)

	var spinner *Spinner
	if !c.flags.verbose {
		spinner = newSpinner(ctx, c.Err, message)
		opts.Progress = func(done, total int) {
			spinner.SetMessage("%s %d/%d", message, done, total)
		}
	}

	runner, err := pipeline.NewRunner(opts)
	if err != nil {
		return nil, err
	}

	prog := newProgress(opts.Logger)
	if spinner != nil {
		spinner.Start()
	}
	result, err := fn(ctx, runner)
	if spinner != nil {
		switch {
		case spinner.Cancelled():
			spinner.StopWithError("Cancelled")
		case err != nil:
			spinner.StopWithError(spinner.Message() + " failed")
		default:
			spinner.StopWithSuccess(fmt.Sprintf("Enriched %d/%d packages", result.Stats.Enriched, result.Stats.Requested))
		}
	}
	if ferr := sink.flush(); ferr != nil {
		opts.Logger.Error("write metrics", "path", c.flags.metrics, "err", ferr)
	}
	if err != nil {
		return result, err
	}
	prog.done("Report ready")
	return result, nil
}

// writeOutputs writes the artifacts of result where f says.
func (c *CLI) writeOutputs(f *outputFlags, rep deps.Report, summary *license.Summary, artifacts map[string][]byte) error {
	if f.output != "" {
		md := artifacts[pipeline.FormatMarkdown]
		if f.output == "-" {
			if _, err := c.Out.Write(md); err != nil {
				return err
			}
		} else {
			if err := os.WriteFile(f.output, md, 0o644); err != nil {
				return err
			}
			printSuccess(c.Out, "Markdown report written")
			printFile(c.Out, f.output)
		}
	}
	if f.json != "" {
		if err := reportio.ExportJSON(rep, f.json); err != nil {
			return err
		}
		printSuccess(c.Out, "JSON report written")
		printFile(c.Out, f.json)
	}
	if f.print {
		out, err := report.Terminal(rep, summary, f.width, lipgloss.HasDarkBackground())
		if err != nil {
			return err
		}
		if _, err := c.Out.Write([]byte(out)); err != nil {
			return err
		}
	}
	return nil
}

// printFindings summarizes what needs attention.
func (c *CLI) printFindings(requested int, rep deps.Report, summary *license.Summary) {
	printStats(c.Out, runStats{
		requested:  requested,
		enriched:   rep.Len(),
		vulnerable: len(rep.Vulnerable()),
		conflicts:  len(summary.Conflicts),
		unknown:    len(summary.Unknown),
	})
	for _, r := range rep.Vulnerable() {
		printWarning(c.Out, "%s %s has known vulnerabilities", r.Ecosystem, r.Name)
	}
	for _, cf := range summary.Conflicts {
		printWarning(c.Out, "%s may be incompatible with %s (%d packages)", cf.A, cf.B, len(cf.Affected))
	}
	if missing := requested - rep.Len(); missing > 0 {
		printDetail(c.Out, "%d packages could not be retrieved; run with --verbose for details", missing)
	}
}
