package deps

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type fakeQuerier struct {
	mu         sync.Mutex
	vulnerable map[string]bool // "ecosystem/name"
	err        error
	queries    []string
}

func (q *fakeQuerier) Query(_ context.Context, name, ecosystem string) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	key := ecosystem + "/" + name
	q.queries = append(q.queries, key)
	if q.err != nil {
		return false, q.err
	}
	return q.vulnerable[key], nil
}

func TestVulnerabilityCheckerTranslatesEcosystem(t *testing.T) {
	reg := NewRegistry(
		NewAdapter(&Language{Name: Ruby, VulnerabilityEcosystem: "RubyGems"}, nil, nil),
		NewAdapter(&Language{Name: PHP, VulnerabilityEcosystem: "Packagist"}, nil, nil),
	)
	q := &fakeQuerier{vulnerable: map[string]bool{"RubyGems/rack": true}}
	c := NewVulnerabilityChecker(q, reg, nil)

	if !c.HasVulnerability(context.Background(), "rack", Ruby) {
		t.Error("rack should be vulnerable")
	}
	if c.HasVulnerability(context.Background(), "monolog/monolog", PHP) {
		t.Error("monolog should not be vulnerable")
	}
	if c.HasVulnerability(context.Background(), "thing", "Hex") {
		t.Error("thing should not be vulnerable")
	}

	want := []string{"RubyGems/rack", "Packagist/monolog/monolog", "Hex/thing"}
	for i, key := range want {
		if q.queries[i] != key {
			t.Errorf("query %d = %q, want %q", i, q.queries[i], key)
		}
	}
}

func TestVulnerabilityCheckerSwallowsErrors(t *testing.T) {
	q := &fakeQuerier{err: errors.New("connection refused")}
	c := NewVulnerabilityChecker(q, nil, nil)
	if c.HasVulnerability(context.Background(), "requests", PyPI) {
		t.Error("a failed query must report not vulnerable")
	}
}
