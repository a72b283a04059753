package rubygems

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/techdd/pkg/integrations"
)

// DefaultBaseURL is the public RubyGems.org host.
const DefaultBaseURL = "https://rubygems.org"

// GemInfo holds metadata for the current version of a Ruby gem.
type GemInfo struct {
	Name        string // Gem name (e.g., "rails")
	Version     string // Current version (e.g., "7.1.2")
	Description string // Gem info/summary
	License     string // License(s), comma-separated if multiple
	Authors     string // Author name(s)
	HomepageURI string // Homepage, falling back to the rubygems.org project page
	Released    string // version_created_at
}

// Client provides access to the RubyGems package registry API.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a RubyGems client. An empty baseURL uses [DefaultBaseURL].
func NewClient(f integrations.Fetcher, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		Client:  integrations.NewClient(f, nil),
		baseURL: baseURL,
	}
}

// FetchGem retrieves metadata for a Ruby gem from RubyGems.
// The gem parameter is trimmed and lowercased.
func (c *Client) FetchGem(ctx context.Context, gem string) (*GemInfo, error) {
	gem = strings.ToLower(strings.TrimSpace(gem))
	data, err := c.Get(ctx, fmt.Sprintf("%s/api/v1/gems/%s.json", c.baseURL, integrations.PathEscape(gem)))
	if err != nil {
		return nil, err
	}

	name, err := integrations.RequireString(data, "name", "rubygems")
	if err != nil {
		return nil, err
	}
	version, err := integrations.RequireString(data, "version", "rubygems")
	if err != nil {
		return nil, err
	}

	var licenses []string
	for _, l := range data.Get("licenses").Array() {
		if s := strings.TrimSpace(l.String()); s != "" {
			licenses = append(licenses, s)
		}
	}

	return &GemInfo{
		Name:        name,
		Version:     version,
		Description: data.Get("info").String(),
		License:     strings.Join(licenses, ", "),
		Authors:     data.Get("authors").String(),
		HomepageURI: integrations.FirstNonEmpty(data.Get("homepage_uri").String(), data.Get("project_uri").String()),
		Released:    data.Get("version_created_at").String(),
	}, nil
}
