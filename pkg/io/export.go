package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tidwall/pretty"

	"github.com/matzehuels/techdd/pkg/deps"
	"github.com/matzehuels/techdd/pkg/license"
)

type document struct {
	Ecosystems     []ecosystem     `json:"ecosystems"`
	LicenseSummary *licenseSummary `json:"license_summary,omitempty"`
}

type ecosystem struct {
	Ecosystem deps.Ecosystem       `json:"ecosystem"`
	Packages  []deps.PackageRecord `json:"packages"`
}

type licenseSummary struct {
	Counts    map[string]int `json:"counts"`
	Unknown   []string       `json:"unknown"`
	Conflicts []conflict     `json:"conflicts"`
}

type conflict struct {
	Licenses [2]string `json:"licenses"`
	Packages []string  `json:"packages"`
}

// WriteJSON encodes report and its license summary as indented JSON and
// writes it to w.
func WriteJSON(report deps.Report, w io.Writer) error {
	out := document{Ecosystems: make([]ecosystem, 0, len(report))}
	for _, e := range report.Ecosystems() {
		pkgs := report[e]
		if pkgs == nil {
			pkgs = []deps.PackageRecord{}
		}
		out.Ecosystems = append(out.Ecosystems, ecosystem{Ecosystem: e, Packages: pkgs})
	}
	out.LicenseSummary = summarize(license.Analyze(report))

	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if _, err := w.Write(pretty.PrettyOptions(data, &pretty.Options{Indent: "  ", Width: 80})); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// ExportJSON writes report to a JSON file at path.
func ExportJSON(report deps.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(report, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func summarize(s *license.Summary) *licenseSummary {
	out := &licenseSummary{
		Counts:    s.Counts,
		Unknown:   make([]string, 0, len(s.Unknown)),
		Conflicts: make([]conflict, 0, len(s.Conflicts)),
	}
	for _, r := range s.Unknown {
		out.Unknown = append(out.Unknown, r.Name)
	}
	for _, c := range s.Conflicts {
		cf := conflict{Licenses: [2]string{c.A, c.B}}
		for _, r := range c.Affected {
			cf.Packages = append(cf.Packages, r.Name)
		}
		out.Conflicts = append(out.Conflicts, cf)
	}
	return out
}
