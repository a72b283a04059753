package javascript

import (
	"context"

	"github.com/package-url/packageurl-go"

	"github.com/matzehuels/techdd/pkg/deps"
	"github.com/matzehuels/techdd/pkg/integrations/npm"
)

// Language provides JavaScript/TypeScript package enrichment via npm.
// Supports package.json manifest files.
var Language = &deps.Language{
	Name:                   deps.NPM,
	Aliases:                []string{"javascript", "js", "node", "nodejs", "typescript"},
	VulnerabilityEcosystem: "npm",
	PURLType:               packageurl.TypeNPM,
	DefaultRegistry:        npm.DefaultBaseURL,
	NewFetcher:             newFetcher,
	ManifestParsers:        []deps.ManifestParser{&PackageJSON{}},
}

func newFetcher(src deps.Source) deps.Fetcher {
	return fetcher{npm.NewClient(src.HTTP, src.BaseURL)}
}

type fetcher struct{ *npm.Client }

func (f fetcher) Fetch(ctx context.Context, name string) (*deps.PackageRecord, error) {
	p, err := f.FetchPackage(ctx, name)
	if err != nil {
		return nil, err
	}
	return &deps.PackageRecord{
		Name:        p.Name,
		Version:     p.Version,
		Description: p.Description,
		Author:      p.Author,
		License:     p.License,
		ProjectURL:  p.HomePage,
		ReleaseDate: p.Released,
		Deprecated:  p.Deprecated,
	}, nil
}
