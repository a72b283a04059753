package license

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/techdd/pkg/deps"
)

func TestCompatible(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"MIT", "MIT", true},
		{"MIT", "Apache-2.0", true},
		{"MIT", "BSD-3-Clause", true},
		{"Apache-2.0", "BSD-3-Clause", true},
		{"MIT", "GPL-3.0", false},
		{"Apache-2.0", "GPL-2.0", false},
		{"BSD-2-Clause", "MIT", false},
		{"Unknown", "Unknown", false},
		{"Unknown", "MIT", false},
		{"", "MIT", false},
		{"N/A", "N/A", false},
		{"GPL-3.0", "GPL-3.0", true},
	}
	for _, tt := range tests {
		if got := Compatible(tt.a, tt.b); got != tt.want {
			t.Errorf("Compatible(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		if got := Compatible(tt.b, tt.a); got != tt.want {
			t.Errorf("Compatible(%q, %q) = %v, want %v (symmetry)", tt.b, tt.a, got, tt.want)
		}
	}
}

func rec(eco deps.Ecosystem, name, license string) deps.PackageRecord {
	return deps.PackageRecord{Ecosystem: eco, Name: name, License: license, ProjectURL: "https://example.com/" + name}
}

func TestAnalyze(t *testing.T) {
	report := deps.Report{
		deps.PyPI: {
			rec(deps.PyPI, "flask", "BSD-3-Clause"),
			rec(deps.PyPI, "requests", "Apache-2.0"),
			rec(deps.PyPI, "mystery", "Unknown"),
		},
		deps.NPM: {
			rec(deps.NPM, "react", "MIT"),
			rec(deps.NPM, "lodash", "MIT"),
			rec(deps.NPM, "gpl-thing", "GPL-3.0"),
			rec(deps.NPM, "gpl-other", "GPL-3.0"),
			rec(deps.NPM, "left-pad", "WTFPL"),
		},
		deps.Ruby: {},
	}

	s := Analyze(report)

	wantCounts := map[string]int{
		"BSD-3-Clause": 1, "Apache-2.0": 1, "Unknown": 1, "MIT": 2, "GPL-3.0": 2, "WTFPL": 1,
	}
	if diff := cmp.Diff(wantCounts, s.Counts); diff != "" {
		t.Errorf("Counts mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"BSD-3-Clause", "Apache-2.0", "Unknown", "MIT", "GPL-3.0", "WTFPL"}, s.Order); diff != "" {
		t.Errorf("Order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"MIT", "GPL-3.0"}, s.Checked); diff != "" {
		t.Errorf("Checked mismatch (-want +got):\n%s", diff)
	}
	if s.Total() != 8 {
		t.Errorf("Total() = %d, want 8", s.Total())
	}
	if len(s.Unknown) != 1 || s.Unknown[0].Name != "mystery" {
		t.Errorf("Unknown = %+v", s.Unknown)
	}

	if len(s.Conflicts) != 1 {
		t.Fatalf("Conflicts = %+v, want one", s.Conflicts)
	}
	c := s.Conflicts[0]
	if c.A != "MIT" || c.B != "GPL-3.0" {
		t.Errorf("conflict = %s/%s, want MIT/GPL-3.0", c.A, c.B)
	}
	var affected []string
	for _, r := range c.Affected {
		affected = append(affected, r.Name)
	}
	if diff := cmp.Diff([]string{"react", "lodash", "gpl-thing", "gpl-other"}, affected); diff != "" {
		t.Errorf("Affected mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeNoConflicts(t *testing.T) {
	s := Analyze(deps.Report{
		deps.NPM: {
			rec(deps.NPM, "a", "MIT"), rec(deps.NPM, "b", "MIT"),
			rec(deps.NPM, "c", "Apache-2.0"), rec(deps.NPM, "d", "Apache-2.0"),
		},
	})
	if len(s.Checked) != 2 || len(s.Conflicts) != 0 {
		t.Errorf("Checked = %v, Conflicts = %v", s.Checked, s.Conflicts)
	}
}

func TestAnalyzeNormalizesLicenses(t *testing.T) {
	s := Analyze(deps.Report{deps.PyPI: {rec(deps.PyPI, "a", ""), rec(deps.PyPI, "b", "N/A")}})
	if s.Counts[Unknown] != 2 || len(s.Unknown) != 2 || len(s.Checked) != 0 {
		t.Errorf("summary = %+v", s)
	}
	if len(s.Known()) != 0 {
		t.Errorf("Known() = %v, want none", s.Known())
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	s := Analyze(deps.Report{})
	if s.Total() != 0 || len(s.Order) != 0 || len(s.Conflicts) != 0 {
		t.Errorf("Analyze(empty) = %+v", s)
	}
}
