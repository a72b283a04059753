package nuget

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	errs "github.com/matzehuels/techdd/pkg/errors"
	"github.com/matzehuels/techdd/pkg/integrations"
)

// DefaultBaseURL is the public NuGet v3 API host.
const DefaultBaseURL = "https://api.nuget.org"

// PackageInfo holds the catalog entry of the newest listed version of a
// NuGet package.
type PackageInfo struct {
	ID          string // Package id as published (e.g., "Newtonsoft.Json")
	Version     string // Version of the catalog entry
	Description string
	Authors     string
	License     string // SPDX license expression (may be empty for legacy licenseUrl packages)
	ProjectURL  string
	Published   string // Publish timestamp of the version
	Deprecated  bool   // The version carries a deprecation notice
}

// Client provides access to the NuGet registration API.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a NuGet client. An empty baseURL uses [DefaultBaseURL].
func NewClient(f integrations.Fetcher, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		Client:  integrations.NewClient(f, nil),
		baseURL: baseURL,
	}
}

// FetchPackage retrieves the registration index for id and returns the last
// catalog entry of its first page. The registration API keys packages by
// lowercase id.
//
// When the first page is not inlined in the index (packages with many
// versions), the newest page is fetched from its @id URL instead of
// reporting the package as absent; this deliberately yields the latest
// release rather than no data.
func (c *Client) FetchPackage(ctx context.Context, id string) (*PackageInfo, error) {
	lower := strings.ToLower(strings.TrimSpace(id))
	index, err := c.Get(ctx, fmt.Sprintf("%s/v3/registration5-semver1/%s/index.json", c.baseURL, integrations.PathEscape(lower)))
	if err != nil {
		return nil, err
	}

	pages := index.Get("items").Array()
	if len(pages) == 0 {
		return nil, errs.New(errs.ErrCodeAdapterParse, "nuget index for %s has no pages", id)
	}
	leaves := pages[0].Get("items")
	if !leaves.Exists() {
		if leaves, err = c.fetchPage(ctx, pages[len(pages)-1]); err != nil {
			return nil, err
		}
	}

	entries := leaves.Array()
	if len(entries) == 0 {
		return nil, errs.New(errs.ErrCodeAdapterParse, "nuget page for %s has no versions", id)
	}
	return parseCatalogEntry(entries[len(entries)-1].Get("catalogEntry"))
}

func (c *Client) fetchPage(ctx context.Context, page gjson.Result) (gjson.Result, error) {
	// "@" starts a gjson modifier, so the key is read from the map.
	url := strings.TrimSpace(page.Map()["@id"].String())
	if url == "" {
		return gjson.Result{}, errs.New(errs.ErrCodeAdapterParse, "nuget page has no @id")
	}
	data, err := c.Get(ctx, url)
	if err != nil {
		return gjson.Result{}, err
	}
	return data.Get("items"), nil
}

func parseCatalogEntry(entry gjson.Result) (*PackageInfo, error) {
	id, err := integrations.RequireString(entry, "id", "nuget")
	if err != nil {
		return nil, err
	}
	published, err := integrations.RequireString(entry, "published", "nuget")
	if err != nil {
		return nil, err
	}
	return &PackageInfo{
		ID:          id,
		Version:     entry.Get("version").String(),
		Description: entry.Get("description").String(),
		Authors:     joinAuthors(entry.Get("authors")),
		License:     entry.Get("licenseExpression").String(),
		ProjectURL:  entry.Get("projectUrl").String(),
		Published:   published,
		Deprecated:  entry.Get("deprecation").Exists(),
	}, nil
}

// joinAuthors accepts both the string and the array form of authors.
func joinAuthors(v gjson.Result) string {
	if !v.IsArray() {
		return v.String()
	}
	var names []string
	for _, a := range v.Array() {
		if s := strings.TrimSpace(a.String()); s != "" {
			names = append(names, s)
		}
	}
	return strings.Join(names, ", ")
}
