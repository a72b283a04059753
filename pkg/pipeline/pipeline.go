// Package pipeline wires the techdd stages together.
//
// The pipeline has four stages:
//
//  1. Scan: walk a source tree and collect the packages its manifests declare
//  2. Enrich: fetch registry metadata and vulnerability status per package
//  3. Analyze: summarize licenses and flag incompatible pairs
//  4. Render: produce the markdown and JSON artifacts
//
// A [Runner] owns the network stack (HTTP client, backoff fetcher, registry
// adapters, vulnerability checker) built once from [Options], and can run
// the stages individually or all at once:
//
//	runner, err := pipeline.NewRunner(pipeline.Options{Logger: logger})
//	if err != nil {
//	    return err
//	}
//	result, err := runner.Execute(ctx, "./repo")
//	md := result.Artifacts[pipeline.FormatMarkdown]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/techdd/pkg/deps"
	errs "github.com/matzehuels/techdd/pkg/errors"
	"github.com/matzehuels/techdd/pkg/httputil"
	"github.com/matzehuels/techdd/pkg/integrations"
	"github.com/matzehuels/techdd/pkg/license"
	"github.com/matzehuels/techdd/pkg/observability"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultUserAgent identifies techdd to registries. crates.io rejects
// requests without one.
const DefaultUserAgent = "techdd (https://github.com/matzehuels/techdd)"

// OSVRegistryKey names the vulnerability database in [Options.Registries].
const OSVRegistryKey = "osv"

// Format constants for rendered artifacts.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// ValidFormats is the set of supported artifact formats.
var ValidFormats = map[string]bool{
	FormatMarkdown: true,
	FormatJSON:     true,
}

// =============================================================================
// Options
// =============================================================================

// Options configures a [Runner]. Zero values mean defaults.
type Options struct {
	// Fetch options
	MaxAttempts       int
	BaseDelay         time.Duration
	Timeout           time.Duration
	RequestsPerSecond float64
	UserAgent         string

	// Enrich options
	Workers  int
	Throttle time.Duration

	// Registries overrides base URLs, keyed by ecosystem tag or alias, or
	// by [OSVRegistryKey] for the vulnerability database.
	Registries map[string]string
	// VulnerabilityEcosystems overrides the vulnerability database's name
	// for an ecosystem.
	VulnerabilityEcosystems map[string]string
	// Ecosystems restricts scanning to these ecosystems. Empty means all.
	Ecosystems []string

	// Render options
	Formats  []string
	Overview bool

	// Runtime options
	Logger      *log.Logger
	HTTPHooks   observability.HTTPHooks
	EnrichHooks observability.EnrichHooks
	Progress    func(done, total int)
	HTTPClient  httputil.Doer
	Sleep       httputil.SleepFunc

	validated bool
}

// ValidateAndSetDefaults checks the options and fills defaults in place.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.MaxAttempts < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "max attempts must not be negative: %d", o.MaxAttempts)
	}
	if o.Workers < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "workers must not be negative: %d", o.Workers)
	}
	if o.RequestsPerSecond < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "requests per second must not be negative: %g", o.RequestsPerSecond)
	}
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatMarkdown}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return errUnknownFormat(f)
		}
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.HTTPClient == nil {
		o.HTTPClient = integrations.NewHTTPClient(o.Timeout)
	}
	o.validated = true
	return nil
}

func errUnknownFormat(f string) error {
	return errs.New(errs.ErrCodeInvalidFormat, "unknown format %q", f)
}

func (o *Options) policy() httputil.Policy {
	return httputil.Policy{MaxAttempts: o.MaxAttempts, BaseDelay: o.BaseDelay}.WithDefaults()
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scan is the scanner's result, or nil when the run started from an
	// inventory.
	Scan *deps.ScanResult

	// Report holds the enriched records.
	Report deps.Report

	// Summary is the license analysis of Report.
	Summary *license.Summary

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Manifests  int
	Requested  int
	Enriched   int
	Vulnerable int
	Conflicts  int
	ScanTime   time.Duration
	EnrichTime time.Duration
	RenderTime time.Duration
}
