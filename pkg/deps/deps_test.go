package deps

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	errs "github.com/matzehuels/techdd/pkg/errors"
)

func TestNormalizeLicense(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", UnknownLicense},
		{"   ", UnknownLicense},
		{"N/A", UnknownLicense},
		{" N/A ", UnknownLicense},
		{"Unknown", UnknownLicense},
		{"MIT", "MIT"},
		{" Apache-2.0 ", "Apache-2.0"},
		{"MIT OR Apache-2.0", "MIT OR Apache-2.0"},
	}
	for _, tt := range tests {
		got := NormalizeLicense(tt.in)
		if got != tt.want {
			t.Errorf("NormalizeLicense(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if again := NormalizeLicense(got); again != got {
			t.Errorf("NormalizeLicense not idempotent for %q: %q then %q", tt.in, got, again)
		}
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize(PackageRecord{Ecosystem: NPM, Name: "react", Description: "  ", License: "N/A", HasKnownVulnerability: true})
	want := PackageRecord{
		Ecosystem:             NPM,
		Name:                  "react",
		Version:               NotAvailable,
		Description:           NotAvailable,
		Author:                NotAvailable,
		License:               UnknownLicense,
		ProjectURL:            NotAvailable,
		ReleaseDate:           NotAvailable,
		HasKnownVulnerability: true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEcosystem(t *testing.T) {
	tests := []struct {
		in      string
		want    Ecosystem
		wantErr bool
	}{
		{"PyPI", PyPI, false},
		{"pypi", PyPI, false},
		{"NPM", NPM, false},
		{" rust ", Rust, false},
		{"Go", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseEcosystem(tt.in)
		if tt.wantErr {
			if !errs.Is(err, errs.ErrCodeInvalidEcosystem) {
				t.Errorf("ParseEcosystem(%q) error = %v, want INVALID_ECOSYSTEM", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseEcosystem(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestReportEcosystemsOrder(t *testing.T) {
	r := Report{
		"Zig":   nil,
		Rust:    nil,
		PyPI:    nil,
		"Conda": nil,
		NPM:     nil,
	}
	want := []Ecosystem{PyPI, NPM, Rust, "Conda", "Zig"}
	if diff := cmp.Diff(want, r.Ecosystems()); diff != "" {
		t.Errorf("Ecosystems() mismatch (-want +got):\n%s", diff)
	}
}

func TestReportRecordsAndVulnerable(t *testing.T) {
	r := Report{
		NPM:  {{Name: "lodash", HasKnownVulnerability: true}, {Name: "react"}},
		PyPI: {{Name: "requests"}},
		Ruby: {},
	}
	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}
	var names []string
	for _, rec := range r.Records() {
		names = append(names, rec.Name)
	}
	if diff := cmp.Diff([]string{"requests", "lodash", "react"}, names); diff != "" {
		t.Errorf("Records() order mismatch (-want +got):\n%s", diff)
	}
	vuln := r.Vulnerable()
	if len(vuln) != 1 || vuln[0].Name != "lodash" {
		t.Errorf("Vulnerable() = %+v", vuln)
	}
}

func TestInventory(t *testing.T) {
	inv := Inventory{}
	inv.Add(NPM, "react", "react")
	inv.Add(PyPI, "flask")
	inv.Add(Ruby)

	if _, ok := inv[Ruby]; !ok {
		t.Error("Add with no names should still create the key")
	}
	if inv.Len() != 3 {
		t.Errorf("Len() = %d, want 3", inv.Len())
	}
	want := []PackageRef{
		{PyPI, "flask"},
		{NPM, "react"},
		{NPM, "react"},
	}
	if diff := cmp.Diff(want, inv.Refs()); diff != "" {
		t.Errorf("Refs() mismatch (-want +got):\n%s", diff)
	}
}
