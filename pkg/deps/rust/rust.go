package rust

import (
	"context"

	"github.com/package-url/packageurl-go"

	"github.com/matzehuels/techdd/pkg/deps"
	"github.com/matzehuels/techdd/pkg/integrations/crates"
)

var Language = &deps.Language{
	Name:                   deps.Rust,
	Aliases:                []string{"cargo", "crates", "crates.io"},
	VulnerabilityEcosystem: "crates.io",
	PURLType:               packageurl.TypeCargo,
	DefaultRegistry:        crates.DefaultBaseURL,
	NewFetcher:             newFetcher,
	ManifestParsers:        []deps.ManifestParser{&CargoToml{}},
}

func newFetcher(src deps.Source) deps.Fetcher {
	return fetcher{crates.NewClient(src.HTTP, src.BaseURL, src.UserAgent)}
}

type fetcher struct{ *crates.Client }

func (f fetcher) Fetch(ctx context.Context, name string) (*deps.PackageRecord, error) {
	cr, err := f.FetchCrate(ctx, name)
	if err != nil {
		return nil, err
	}
	return &deps.PackageRecord{
		Name:        cr.Name,
		Version:     cr.Version,
		Description: cr.Description,
		Author:      cr.Publisher,
		License:     cr.License,
		ProjectURL:  cr.HomePage,
		ReleaseDate: cr.Released,
		Deprecated:  cr.Yanked,
	}, nil
}
