package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/techdd/pkg/deps"
	errs "github.com/matzehuels/techdd/pkg/errors"
)

// ReadJSON decodes a report written by [WriteJSON].
//
// Each ecosystem must be named and appear once. A package whose ecosystem
// is empty takes the ecosystem of its group; a package naming a different
// ecosystem is rejected. Records are normalized the way adapters normalize
// them, so hand-edited files render the same as fetched ones.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (deps.Report, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode report")
	}

	report := make(deps.Report, len(data.Ecosystems))
	for i, group := range data.Ecosystems {
		if group.Ecosystem == "" {
			return nil, errs.New(errs.ErrCodeInvalidFormat, "ecosystem %d has no name", i)
		}
		if _, dup := report[group.Ecosystem]; dup {
			return nil, errs.New(errs.ErrCodeInvalidFormat, "ecosystem %s listed twice", group.Ecosystem)
		}
		recs := make([]deps.PackageRecord, 0, len(group.Packages))
		for _, rec := range group.Packages {
			switch rec.Ecosystem {
			case "":
				rec.Ecosystem = group.Ecosystem
			case group.Ecosystem:
			default:
				return nil, errs.New(errs.ErrCodeInvalidFormat,
					"package %s is %s but listed under %s", rec.Name, rec.Ecosystem, group.Ecosystem)
			}
			if rec.Name == "" {
				return nil, errs.New(errs.ErrCodeInvalidFormat, "unnamed package under %s", group.Ecosystem)
			}
			recs = append(recs, deps.Normalize(rec))
		}
		report[group.Ecosystem] = recs
	}
	return report, nil
}

// ImportJSON reads a report from the JSON file at path.
func ImportJSON(path string) (deps.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
