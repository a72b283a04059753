package pipeline

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/matzehuels/techdd/pkg/deps"
	"github.com/matzehuels/techdd/pkg/deps/languages"
	errs "github.com/matzehuels/techdd/pkg/errors"
	"github.com/matzehuels/techdd/pkg/httputil"
	"github.com/matzehuels/techdd/pkg/integrations/osv"
	"github.com/matzehuels/techdd/pkg/license"
)

// Runner executes pipeline stages over one shared network stack.
//
// A Runner holds no per-run state; multiple goroutines may use the same
// Runner concurrently.
type Runner struct {
	Registry *deps.Registry
	Enricher *deps.Enricher
	Scanner  *deps.Scanner
	Logger   *log.Logger

	opts Options
}

// NewRunner builds the HTTP client, backoff fetcher, registry adapters,
// vulnerability checker and enricher described by opts.
func NewRunner(opts Options) (*Runner, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	fetchOpts := []httputil.Option{
		httputil.WithPolicy(opts.policy()),
		httputil.WithHeader("User-Agent", opts.UserAgent),
		httputil.WithLogger(logger),
		httputil.WithHooks(opts.HTTPHooks),
		httputil.WithSleep(opts.Sleep),
	}
	if opts.RequestsPerSecond > 0 {
		fetchOpts = append(fetchOpts, httputil.WithLimiter(rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)))
	}
	fetcher := httputil.NewFetcher(opts.HTTPClient, fetchOpts...)

	registries := maps.Clone(opts.Registries)
	osvURL := ""
	if u, ok := registries[OSVRegistryKey]; ok {
		osvURL = strings.TrimRight(strings.TrimSpace(u), "/")
		if err := errs.ValidateURL(osvURL); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "registry for %s", OSVRegistryKey)
		}
		delete(registries, OSVRegistryKey)
	}

	registry, err := languages.NewRegistry(fetcher, languages.Config{
		Registries:              registries,
		VulnerabilityEcosystems: opts.VulnerabilityEcosystems,
		UserAgent:               opts.UserAgent,
	}, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("registry adapters ready", "ecosystems", registry.Ecosystems())
	checker := deps.NewVulnerabilityChecker(osv.NewClient(fetcher, osvURL), registry, logger)

	enricher, err := deps.NewEnricher(registry, checker, deps.Options{
		Workers:  opts.Workers,
		Throttle: opts.Throttle,
		Logger:   logger,
		Hooks:    opts.EnrichHooks,
		Progress: opts.Progress,
		Sleep:    opts.Sleep,
	})
	if err != nil {
		return nil, err
	}

	langs, err := selectLanguages(opts.Ecosystems)
	if err != nil {
		return nil, err
	}

	return &Runner{
		Registry: registry,
		Enricher: enricher,
		Scanner:  deps.NewScanner(langs, logger),
		Logger:   logger,
		opts:     opts,
	}, nil
}

// Execute runs all stages on the source tree at dir.
func (r *Runner) Execute(ctx context.Context, dir string) (*Result, error) {
	scanStart := time.Now()
	scan, err := r.Scanner.Scan(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	scanTime := time.Since(scanStart)
	r.Logger.Info("scanned source tree",
		"dir", dir,
		"manifests", len(scan.Manifests),
		"packages", scan.Inventory.Len(),
		"duration", scanTime)

	result, err := r.ExecuteInventory(ctx, scan.Inventory)
	if result != nil {
		result.Scan = scan
		result.Stats.Manifests = len(scan.Manifests)
		result.Stats.ScanTime = scanTime
	}
	return result, err
}

// ExecuteInventory runs the enrich, analyze and render stages.
//
// When ctx is cancelled during enrichment the partial result is returned
// together with the context error, without artifacts.
func (r *Runner) ExecuteInventory(ctx context.Context, inv deps.Inventory) (*Result, error) {
	result := &Result{Artifacts: make(map[string][]byte)}
	result.Stats.Requested = inv.Len()

	enrichStart := time.Now()
	rep, err := r.Enricher.Enrich(ctx, inv)
	result.Report = rep
	result.Stats.EnrichTime = time.Since(enrichStart)
	result.Stats.Enriched = rep.Len()
	result.Stats.Vulnerable = len(rep.Vulnerable())
	if err != nil {
		return result, err
	}
	r.Logger.Info("enriched packages",
		"requested", result.Stats.Requested,
		"enriched", result.Stats.Enriched,
		"vulnerable", result.Stats.Vulnerable,
		"duration", result.Stats.EnrichTime)

	result.Summary = license.Analyze(rep)
	result.Stats.Conflicts = len(result.Summary.Conflicts)

	renderStart := time.Now()
	artifacts, err := Render(rep, result.Summary, r.opts.Formats, r.opts.Overview)
	if err != nil {
		return result, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	return result, nil
}
