package dotnet

import (
	"context"

	"github.com/package-url/packageurl-go"

	"github.com/matzehuels/techdd/pkg/deps"
	"github.com/matzehuels/techdd/pkg/integrations/nuget"
)

// Language provides .NET package enrichment via the NuGet v3 API.
// Supports SDK-style project files (*.csproj).
var Language = &deps.Language{
	Name:                   deps.NuGet,
	Aliases:                []string{"dotnet", ".net", "csharp", "c#"},
	VulnerabilityEcosystem: "NuGet",
	PURLType:               packageurl.TypeNuget,
	DefaultRegistry:        nuget.DefaultBaseURL,
	NewFetcher:             newFetcher,
	ManifestParsers:        []deps.ManifestParser{&CSProj{}},
}

func newFetcher(src deps.Source) deps.Fetcher {
	return fetcher{nuget.NewClient(src.HTTP, src.BaseURL)}
}

type fetcher struct{ *nuget.Client }

func (f fetcher) Fetch(ctx context.Context, name string) (*deps.PackageRecord, error) {
	p, err := f.FetchPackage(ctx, name)
	if err != nil {
		return nil, err
	}
	return &deps.PackageRecord{
		Name:        p.ID,
		Version:     p.Version,
		Description: p.Description,
		Author:      p.Authors,
		License:     p.License,
		ProjectURL:  p.ProjectURL,
		ReleaseDate: p.Published,
		Deprecated:  p.Deprecated,
	}, nil
}
