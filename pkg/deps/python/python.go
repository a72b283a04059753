package python

import (
	"context"

	"github.com/package-url/packageurl-go"

	"github.com/matzehuels/techdd/pkg/deps"
	"github.com/matzehuels/techdd/pkg/integrations"
	"github.com/matzehuels/techdd/pkg/integrations/pypi"
)

// Language provides Python package enrichment via PyPI.
// Supports requirements.txt and poetry.lock manifest files.
var Language = &deps.Language{
	Name:                   deps.PyPI,
	Aliases:                []string{"python", "pip", "py"},
	VulnerabilityEcosystem: "PyPI",
	PURLType:               packageurl.TypePyPi,
	DefaultRegistry:        pypi.DefaultBaseURL,
	NewFetcher:             newFetcher,
	ManifestParsers: []deps.ManifestParser{
		&Requirements{},
		&PoetryLock{},
	},
}

func newFetcher(src deps.Source) deps.Fetcher {
	return fetcher{pypi.NewClient(src.HTTP, src.BaseURL)}
}

type fetcher struct{ *pypi.Client }

func (f fetcher) Fetch(ctx context.Context, name string) (*deps.PackageRecord, error) {
	p, err := f.FetchPackage(ctx, name)
	if err != nil {
		return nil, err
	}
	return &deps.PackageRecord{
		Name:        p.Name,
		Version:     p.Version,
		Description: p.Summary,
		Author:      p.Author,
		License:     p.License,
		ProjectURL:  p.ProjectURL,
		ReleaseDate: p.ReleaseDate,
	}, nil
}

func normalize(name string) string {
	return integrations.NormalizePkgName(name)
}
