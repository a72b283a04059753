package ruby

import (
	"context"

	"github.com/package-url/packageurl-go"

	"github.com/matzehuels/techdd/pkg/deps"
	"github.com/matzehuels/techdd/pkg/integrations/rubygems"
)

var Language = &deps.Language{
	Name:                   deps.Ruby,
	Aliases:                []string{"rubygems", "gem", "gems"},
	VulnerabilityEcosystem: "RubyGems",
	PURLType:               packageurl.TypeGem,
	DefaultRegistry:        rubygems.DefaultBaseURL,
	NewFetcher:             newFetcher,
	ManifestParsers:        []deps.ManifestParser{&Gemfile{}},
}

func newFetcher(src deps.Source) deps.Fetcher {
	return fetcher{rubygems.NewClient(src.HTTP, src.BaseURL)}
}

type fetcher struct{ *rubygems.Client }

func (f fetcher) Fetch(ctx context.Context, name string) (*deps.PackageRecord, error) {
	g, err := f.FetchGem(ctx, name)
	if err != nil {
		return nil, err
	}
	return &deps.PackageRecord{
		Name:        g.Name,
		Version:     g.Version,
		Description: g.Description,
		Author:      g.Authors,
		License:     g.License,
		ProjectURL:  g.HomepageURI,
		ReleaseDate: g.Released,
	}, nil
}
