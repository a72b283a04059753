package deps

import (
	"context"
	"strings"

	"github.com/matzehuels/techdd/pkg/integrations"
)

// Source tells a language how to reach its registry.
type Source struct {
	HTTP      integrations.Fetcher
	BaseURL   string // Empty uses Language.DefaultRegistry
	UserAgent string // Sent where the registry requires one
}

// Fetcher retrieves one package's metadata from a registry. The returned
// record may have empty fields; [NewAdapter] normalizes it.
type Fetcher interface {
	Fetch(ctx context.Context, name string) (*PackageRecord, error)
}

// FetcherFunc adapts a function to [Fetcher].
type FetcherFunc func(ctx context.Context, name string) (*PackageRecord, error)

func (f FetcherFunc) Fetch(ctx context.Context, name string) (*PackageRecord, error) {
	return f(ctx, name)
}

// Language describes one ecosystem: its registry, its vulnerability database
// vocabulary, and the manifest files that declare its packages.
type Language struct {
	Name                   Ecosystem
	Aliases                []string
	VulnerabilityEcosystem string // OSV ecosystem name
	PURLType               string // packageurl type, empty to skip purls
	DefaultRegistry        string // Registry base URL
	NewFetcher             func(src Source) Fetcher
	ManifestParsers        []ManifestParser
}

// Fetcher builds the language's registry fetcher, defaulting the base URL.
func (l *Language) Fetcher(src Source) Fetcher {
	if src.BaseURL == "" {
		src.BaseURL = l.DefaultRegistry
	}
	src.BaseURL = strings.TrimRight(src.BaseURL, "/")
	return l.NewFetcher(src)
}

// Matches reports whether name is the ecosystem tag or one of its aliases.
func (l *Language) Matches(name string) bool {
	name = strings.TrimSpace(name)
	if strings.EqualFold(name, string(l.Name)) {
		return true
	}
	for _, a := range l.Aliases {
		if strings.EqualFold(name, a) {
			return true
		}
	}
	return false
}

// Manifest returns the parser that handles the file at path.
func (l *Language) Manifest(path string) (ManifestParser, bool) {
	p, err := DetectManifest(path, l.ManifestParsers...)
	return p, err == nil
}

// HasManifests reports whether the language knows any manifest format.
func (l *Language) HasManifests() bool {
	return len(l.ManifestParsers) > 0
}
