package deps

import (
	"path/filepath"

	errs "github.com/matzehuels/techdd/pkg/errors"
)

// ManifestParser reads declared package names from a local manifest file.
type ManifestParser interface {
	// Parse reads the manifest at path and returns the declared package
	// names, deduplicated, in declaration order.
	Parse(path string) ([]string, error)
	// Supports reports whether this parser handles the given filename.
	Supports(filename string) bool
	// Type returns the manifest type identifier (e.g., "requirements.txt").
	Type() string
}

// DetectManifest finds a parser that supports the given file path.
// Returns an error if no parser matches.
func DetectManifest(path string, parsers ...ManifestParser) (ManifestParser, error) {
	name := filepath.Base(path)
	for _, p := range parsers {
		if p.Supports(name) {
			return p, nil
		}
	}
	return nil, errs.New(errs.ErrCodeInvalidManifest, "unsupported manifest: %s", name)
}

// Dedupe drops repeated names, keeping the first occurrence.
func Dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := names[:0:0]
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
