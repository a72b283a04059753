package deps

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	errs "github.com/matzehuels/techdd/pkg/errors"
	"github.com/matzehuels/techdd/pkg/httputil"
	"github.com/matzehuels/techdd/pkg/observability"
)

// DefaultThrottle is the pause after each completed task.
const DefaultThrottle = 100 * time.Millisecond

// Options configures an [Enricher].
type Options struct {
	// Workers bounds concurrent tasks. Zero or less runs every task at once.
	Workers int
	// Throttle is the pause after each completion. Zero uses
	// [DefaultThrottle]; a negative value disables it.
	Throttle time.Duration
	// Logger receives task failures. Nil discards output.
	Logger *log.Logger
	// Hooks receives task events. Nil uses no-op hooks.
	Hooks observability.EnrichHooks
	// Progress, when set, is called on the collecting goroutine after each
	// completion.
	Progress func(done, total int)
	// Sleep waits for the throttle. Nil uses [httputil.Sleep].
	Sleep httputil.SleepFunc
}

func (o Options) withDefaults() Options {
	if o.Throttle == 0 {
		o.Throttle = DefaultThrottle
	}
	if o.Logger == nil {
		o.Logger = discardLogger()
	}
	if o.Hooks == nil {
		o.Hooks = observability.NoopEnrichHooks{}
	}
	if o.Sleep == nil {
		o.Sleep = httputil.Sleep
	}
	return o
}

// Enricher fans an [Inventory] out to ecosystem adapters and the
// vulnerability checker and aggregates the records into a [Report].
type Enricher struct {
	registry *Registry
	checker  Checker
	opts     Options
}

// NewEnricher creates an enricher. Both registry and checker are required.
func NewEnricher(registry *Registry, checker Checker, opts Options) (*Enricher, error) {
	if registry == nil {
		return nil, errs.New(errs.ErrCodeInvalidInput, "enricher requires an adapter registry")
	}
	if checker == nil {
		return nil, errs.New(errs.ErrCodeInvalidInput, "enricher requires a vulnerability checker")
	}
	return &Enricher{registry: registry, checker: checker, opts: opts.withDefaults()}, nil
}

type outcome struct {
	ref    PackageRef
	record *PackageRecord
	err    error
}

// Enrich runs one task per package name and returns the report.
//
// The report has exactly the inventory's keys. Each list holds the records
// of the packages that could be retrieved, in completion order. Per-package
// failures are logged and leave the package out. The only error is the
// context's: on cancellation Enrich stops waiting and returns what it has
// collected so far.
func (e *Enricher) Enrich(ctx context.Context, inv Inventory) (Report, error) {
	logger := e.opts.Logger.With("run", uuid.NewString())

	report := make(Report, len(inv))
	for eco := range inv {
		report[eco] = []PackageRecord{}
	}
	refs := inv.Refs()
	if len(refs) == 0 {
		return report, nil
	}
	logger.Debug("enriching packages", "packages", len(refs), "ecosystems", len(inv), "workers", e.opts.Workers)

	results := make(chan outcome, len(refs))
	go e.dispatch(ctx, logger, refs, results)

	done := 0
	for {
		select {
		case o, ok := <-results:
			if !ok {
				logger.Debug("enrichment complete", "packages", len(refs), "records", report.Len())
				return report, ctx.Err()
			}
			if o.record != nil {
				report[o.ref.Ecosystem] = append(report[o.ref.Ecosystem], *o.record)
			}
			done++
			if e.opts.Progress != nil {
				e.opts.Progress(done, len(refs))
			}
			if e.opts.Throttle > 0 {
				if err := e.opts.Sleep(ctx, e.opts.Throttle); err != nil {
					return report, err
				}
			}
		case <-ctx.Done():
			return report, ctx.Err()
		}
	}
}

// dispatch starts the tasks and closes results once all have finished.
// The group has no derived context, so no task can cancel a sibling.
func (e *Enricher) dispatch(ctx context.Context, logger *log.Logger, refs []PackageRef, results chan<- outcome) {
	var g errgroup.Group
	if e.opts.Workers > 0 {
		g.SetLimit(e.opts.Workers)
	}
	for _, ref := range refs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			results <- e.run(ctx, logger, ref)
			return nil
		})
	}
	_ = g.Wait()
	close(results)
}

// run enriches one package. It recovers panics so a failing task never
// takes down the batch.
func (e *Enricher) run(ctx context.Context, logger *log.Logger, ref PackageRef) (o outcome) {
	start := time.Now()
	eco := string(ref.Ecosystem)
	e.opts.Hooks.OnTaskStart(ctx, eco, ref.Name)

	defer func() {
		if r := recover(); r != nil {
			o = outcome{ref: ref, err: errs.New(errs.ErrCodeInternal, "panic enriching %s: %v", ref, r)}
			logger.Error("task panicked", "ecosystem", eco, "package", ref.Name, "panic", r)
		}
		found := o.record != nil
		vulnerable := found && o.record.HasKnownVulnerability
		e.opts.Hooks.OnTaskComplete(ctx, eco, ref.Name, found, vulnerable, time.Since(start), o.err)
	}()

	o.ref = ref
	adapter, ok := e.registry.Adapter(ref.Ecosystem)
	if !ok {
		o.err = errs.New(errs.ErrCodeUnsupported, "unsupported ecosystem %q", eco)
		logger.Warn("unsupported ecosystem", "ecosystem", eco, "package", ref.Name)
		return o
	}

	rec := adapter.GetInfo(ctx, ref.Name)
	if rec == nil {
		return o
	}
	rec.HasKnownVulnerability = e.checker.HasVulnerability(ctx, ref.Name, ref.Ecosystem)
	o.record = rec
	return o
}
