package crates

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/matzehuels/techdd/pkg/integrations"
)

// DefaultBaseURL is the crates.io host.
const DefaultBaseURL = "https://crates.io"

// DefaultUserAgent identifies techdd to crates.io, which rejects requests
// without a User-Agent.
const DefaultUserAgent = "techdd (https://github.com/matzehuels/techdd)"

// CrateInfo holds metadata for the newest stable version of a Rust crate.
type CrateInfo struct {
	Name        string // Crate name (e.g., "serde")
	Version     string // max_stable_version, or max_version for crates with no stable release
	Description string
	License     string // SPDX expression of Version (e.g., "MIT OR Apache-2.0")
	Publisher   string // Display name of whoever published Version
	HomePage    string // Homepage, falling back to the repository
	Released    string // created_at of Version
	Yanked      bool
}

// Client provides access to the crates.io API.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a crates.io client. An empty baseURL uses
// [DefaultBaseURL]; an empty userAgent uses [DefaultUserAgent].
func NewClient(f integrations.Fetcher, baseURL, userAgent string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		Client:  integrations.NewClient(f, map[string]string{"User-Agent": userAgent}),
		baseURL: baseURL,
	}
}

// FetchCrate retrieves metadata for a Rust crate from crates.io.
// The crate name is case-insensitive on crates.io.
func (c *Client) FetchCrate(ctx context.Context, crate string) (*CrateInfo, error) {
	data, err := c.Get(ctx, fmt.Sprintf("%s/api/v1/crates/%s", c.baseURL, integrations.PathEscape(crate)))
	if err != nil {
		return nil, err
	}

	meta := data.Get("crate")
	name, err := integrations.RequireString(meta, "name", "crates.io")
	if err != nil {
		return nil, err
	}
	version := integrations.FirstNonEmpty(meta.Get("max_stable_version").String(), meta.Get("max_version").String())
	if version == "" {
		if version, err = integrations.RequireString(meta, "newest_version", "crates.io"); err != nil {
			return nil, err
		}
	}

	v := findVersion(data.Get("versions"), version)
	return &CrateInfo{
		Name:        name,
		Version:     version,
		Description: meta.Get("description").String(),
		License:     v.Get("license").String(),
		Publisher:   integrations.FirstNonEmpty(v.Get("published_by.name").String(), v.Get("published_by.login").String()),
		HomePage:    integrations.FirstNonEmpty(meta.Get("homepage").String(), integrations.NormalizeRepoURL(meta.Get("repository").String())),
		Released:    integrations.FirstNonEmpty(v.Get("created_at").String(), meta.Get("updated_at").String()),
		Yanked:      v.Get("yanked").Bool(),
	}, nil
}

func findVersion(versions gjson.Result, num string) gjson.Result {
	for _, v := range versions.Array() {
		if v.Get("num").String() == num {
			return v
		}
	}
	return gjson.Result{}
}
