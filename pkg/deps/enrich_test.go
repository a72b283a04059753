package deps

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	errs "github.com/matzehuels/techdd/pkg/errors"
)

type fakeAdapter struct {
	eco    Ecosystem
	vulnEc string
	info   func(name string) *PackageRecord
}

func (a *fakeAdapter) Ecosystem() Ecosystem           { return a.eco }
func (a *fakeAdapter) VulnerabilityEcosystem() string { return a.vulnEc }
func (a *fakeAdapter) GetInfo(_ context.Context, name string) *PackageRecord {
	return a.info(name)
}

func found(eco Ecosystem) func(string) *PackageRecord {
	return func(name string) *PackageRecord {
		return &PackageRecord{Ecosystem: eco, Name: name, License: "MIT"}
	}
}

type countingSleep struct {
	calls atomic.Int32
	last  atomic.Int64
}

func (s *countingSleep) sleep(_ context.Context, d time.Duration) error {
	s.calls.Add(1)
	s.last.Store(int64(d))
	return nil
}

func newTestEnricher(t *testing.T, reg *Registry, q *fakeQuerier, opts Options) (*Enricher, *countingSleep) {
	t.Helper()
	s := &countingSleep{}
	if opts.Sleep == nil {
		opts.Sleep = s.sleep
	}
	e, err := NewEnricher(reg, NewVulnerabilityChecker(q, reg, nil), opts)
	if err != nil {
		t.Fatalf("NewEnricher() error = %v", err)
	}
	return e, s
}

func names(recs []PackageRecord) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Name)
	}
	slices.Sort(out)
	return out
}

func TestEnrich(t *testing.T) {
	reg := NewRegistry(
		&fakeAdapter{eco: PyPI, vulnEc: "PyPI", info: found(PyPI)},
		&fakeAdapter{eco: NPM, vulnEc: "npm", info: found(NPM)},
		&fakeAdapter{eco: Ruby, vulnEc: "RubyGems", info: found(Ruby)},
	)
	q := &fakeQuerier{vulnerable: map[string]bool{"PyPI/django": true}}
	e, sleeps := newTestEnricher(t, reg, q, Options{})

	inv := Inventory{
		PyPI: {"flask", "django"},
		NPM:  {"react"},
		Ruby: {},
	}
	report, err := e.Enrich(context.Background(), inv)
	if err != nil {
		t.Fatalf("Enrich() error = %v", err)
	}

	if diff := cmp.Diff([]Ecosystem{PyPI, NPM, Ruby}, report.Ecosystems()); diff != "" {
		t.Errorf("report keys mismatch (-want +got):\n%s", diff)
	}
	if got := names(report[PyPI]); !slices.Equal(got, []string{"django", "flask"}) {
		t.Errorf("PyPI records = %v", got)
	}
	if got := names(report[NPM]); !slices.Equal(got, []string{"react"}) {
		t.Errorf("npm records = %v", got)
	}
	if report[Ruby] == nil || len(report[Ruby]) != 0 {
		t.Errorf("Ruby records = %#v, want empty non-nil list", report[Ruby])
	}
	for _, rec := range report[PyPI] {
		if rec.HasKnownVulnerability != (rec.Name == "django") {
			t.Errorf("%s vulnerable = %v", rec.Name, rec.HasKnownVulnerability)
		}
	}

	if n := sleeps.calls.Load(); n != 3 {
		t.Errorf("throttle sleeps = %d, want one per completion (3)", n)
	}
	if d := time.Duration(sleeps.last.Load()); d != DefaultThrottle {
		t.Errorf("throttle = %v, want %v", d, DefaultThrottle)
	}
}

func TestEnrichIsolatesFailures(t *testing.T) {
	reg := NewRegistry(&fakeAdapter{eco: NPM, vulnEc: "npm", info: func(name string) *PackageRecord {
		switch name {
		case "missing":
			return nil
		case "explodes":
			panic("registry returned garbage")
		}
		return &PackageRecord{Name: name}
	}})
	e, _ := newTestEnricher(t, reg, &fakeQuerier{}, Options{})

	report, err := e.Enrich(context.Background(), Inventory{
		NPM:     {"react", "missing", "explodes", "vue"},
		"Conda": {"numpy"},
	})
	if err != nil {
		t.Fatalf("Enrich() error = %v", err)
	}
	if got := names(report[NPM]); !slices.Equal(got, []string{"react", "vue"}) {
		t.Errorf("npm records = %v, want react and vue", got)
	}
	if recs, ok := report["Conda"]; !ok || len(recs) != 0 {
		t.Errorf("unsupported ecosystem should map to an empty list, got %v (present=%v)", recs, ok)
	}
}

func TestEnrichVulnerabilityFailureIsNotVulnerable(t *testing.T) {
	reg := NewRegistry(&fakeAdapter{eco: PyPI, vulnEc: "PyPI", info: found(PyPI)})
	e, _ := newTestEnricher(t, reg, &fakeQuerier{err: errors.New("503")}, Options{})

	report, err := e.Enrich(context.Background(), Inventory{PyPI: {"requests"}})
	if err != nil {
		t.Fatalf("Enrich() error = %v", err)
	}
	if len(report[PyPI]) != 1 || report[PyPI][0].HasKnownVulnerability {
		t.Errorf("report = %+v, want one non-vulnerable record", report[PyPI])
	}
}

func TestEnrichDuplicatesAreIndependent(t *testing.T) {
	var calls atomic.Int32
	reg := NewRegistry(&fakeAdapter{eco: PyPI, info: func(name string) *PackageRecord {
		calls.Add(1)
		return &PackageRecord{Name: name}
	}})
	e, _ := newTestEnricher(t, reg, &fakeQuerier{}, Options{})

	report, _ := e.Enrich(context.Background(), Inventory{PyPI: {"flask", "flask"}})
	if len(report[PyPI]) != 2 || calls.Load() != 2 {
		t.Errorf("records = %d, fetches = %d; want 2 and 2", len(report[PyPI]), calls.Load())
	}
}

func TestEnrichEmptyInventory(t *testing.T) {
	e, sleeps := newTestEnricher(t, NewRegistry(), &fakeQuerier{}, Options{})
	report, err := e.Enrich(context.Background(), Inventory{})
	if err != nil || len(report) != 0 {
		t.Errorf("Enrich(empty) = %v, %v", report, err)
	}
	if sleeps.calls.Load() != 0 {
		t.Error("empty inventory should not throttle")
	}
}

func TestEnrichThrottleDisabled(t *testing.T) {
	reg := NewRegistry(&fakeAdapter{eco: PyPI, info: found(PyPI)})
	e, sleeps := newTestEnricher(t, reg, &fakeQuerier{}, Options{Throttle: -1})
	if _, err := e.Enrich(context.Background(), Inventory{PyPI: {"a", "b"}}); err != nil {
		t.Fatal(err)
	}
	if sleeps.calls.Load() != 0 {
		t.Errorf("negative throttle slept %d times", sleeps.calls.Load())
	}
}

func TestEnrichWorkerLimit(t *testing.T) {
	var inFlight, peak atomic.Int32
	reg := NewRegistry(&fakeAdapter{eco: NPM, info: func(name string) *PackageRecord {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return &PackageRecord{Name: name}
	}})
	e, _ := newTestEnricher(t, reg, &fakeQuerier{}, Options{Workers: 2, Throttle: -1})

	inv := Inventory{NPM: {"a", "b", "c", "d", "e", "f", "g", "h"}}
	report, err := e.Enrich(context.Background(), inv)
	if err != nil {
		t.Fatal(err)
	}
	if len(report[NPM]) != 8 {
		t.Errorf("records = %d, want 8", len(report[NPM]))
	}
	if p := peak.Load(); p > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", p)
	}
}

func TestEnrichCancellation(t *testing.T) {
	release := make(chan struct{})
	reg := NewRegistry(&fakeAdapter{eco: NPM, info: func(name string) *PackageRecord {
		<-release
		return &PackageRecord{Name: name}
	}})
	e, _ := newTestEnricher(t, reg, &fakeQuerier{}, Options{})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := e.Enrich(ctx, Inventory{NPM: {"react"}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Enrich() error = %v, want context.Canceled", err)
	}
	if _, ok := report[NPM]; !ok {
		t.Error("partial report should still carry the inventory keys")
	}
}

func TestEnrichProgressAndHooks(t *testing.T) {
	reg := NewRegistry(&fakeAdapter{eco: PyPI, info: found(PyPI)})
	hooks := &recordingHooks{}
	var progress []int
	e, _ := newTestEnricher(t, reg, &fakeQuerier{}, Options{
		Hooks:    hooks,
		Progress: func(done, total int) { progress = append(progress, done*10+total) },
	})

	if _, err := e.Enrich(context.Background(), Inventory{PyPI: {"a", "b"}, "Conda": {"c"}}); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{13, 23, 33}, progress); diff != "" {
		t.Errorf("progress mismatch (-want +got):\n%s", diff)
	}
	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if hooks.started != 3 || hooks.found != 2 {
		t.Errorf("hooks started=%d found=%d, want 3 and 2", hooks.started, hooks.found)
	}
	if !errs.Is(hooks.lastErr, errs.ErrCodeUnsupported) {
		t.Errorf("unsupported task error = %v, want UNSUPPORTED", hooks.lastErr)
	}
}

func TestNewEnricherRequiresCollaborators(t *testing.T) {
	if _, err := NewEnricher(nil, NewVulnerabilityChecker(&fakeQuerier{}, nil, nil), Options{}); err == nil {
		t.Error("nil registry should fail")
	}
	if _, err := NewEnricher(NewRegistry(), nil, Options{}); err == nil {
		t.Error("nil checker should fail")
	}
}

type recordingHooks struct {
	mu      sync.Mutex
	started int
	found   int
	lastErr error
}

func (h *recordingHooks) OnTaskStart(context.Context, string, string) {
	h.mu.Lock()
	h.started++
	h.mu.Unlock()
}

func (h *recordingHooks) OnTaskComplete(_ context.Context, _, _ string, found, _ bool, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if found {
		h.found++
	}
	if err != nil {
		h.lastErr = err
	}
}
