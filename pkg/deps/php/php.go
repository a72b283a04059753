package php

import (
	"context"

	"github.com/package-url/packageurl-go"

	"github.com/matzehuels/techdd/pkg/deps"
	"github.com/matzehuels/techdd/pkg/integrations/packagist"
)

var Language = &deps.Language{
	Name:                   deps.PHP,
	Aliases:                []string{"composer", "packagist"},
	VulnerabilityEcosystem: "Packagist",
	PURLType:               packageurl.TypeComposer,
	DefaultRegistry:        packagist.DefaultBaseURL,
	NewFetcher:             newFetcher,
	ManifestParsers:        []deps.ManifestParser{&ComposerJSON{}},
}

func newFetcher(src deps.Source) deps.Fetcher {
	return fetcher{packagist.NewClient(src.HTTP, src.BaseURL)}
}

type fetcher struct{ *packagist.Client }

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
		Deprecated:  p.Abandoned,
	}, nil
}
