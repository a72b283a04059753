package npm

import (
	"context"
	"strings"

	"github.com/tidwall/gjson"

	errs "github.com/matzehuels/techdd/pkg/errors"
	"github.com/matzehuels/techdd/pkg/integrations"
)

// DefaultBaseURL is the public npm registry.
const DefaultBaseURL = "https://registry.npmjs.org"

// PackageInfo holds metadata for the version an npm package's latest
// dist-tag points at.
type PackageInfo struct {
	Name        string
	Version     string // dist-tags.latest
	Description string
	Author      string
	License     string
	HomePage    string
	Released    string // time[latest]
	Deprecated  bool   // versions[latest].deprecated is set
}

// Client provides access to the npm registry.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates an npm client. An empty baseURL uses [DefaultBaseURL].
func NewClient(f integrations.Fetcher, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		Client:  integrations.NewClient(f, nil),
		baseURL: baseURL,
	}
}

// FetchPackage retrieves the packument for pkg and extracts the latest
// version. Scoped names (@scope/name) are escaped into a single path segment.
//
// A packument without a latest dist-tag, or whose latest tag names a version
// that is not listed, is an ADAPTER_PARSE error.
func (c *Client) FetchPackage(ctx context.Context, pkg string) (*PackageInfo, error) {
	data, err := c.Get(ctx, c.baseURL+"/"+integrations.PathEscape(strings.TrimSpace(pkg)))
	if err != nil {
		return nil, err
	}

	name, err := integrations.RequireString(data, "name", "npm")
	if err != nil {
		return nil, err
	}
	latest, err := integrations.RequireString(data, "dist-tags.latest", "npm")
	if err != nil {
		return nil, err
	}
	// Versions contain dots, so they are looked up through maps.
	v, ok := data.Get("versions").Map()[latest]
	if !ok {
		return nil, errs.New(errs.ErrCodeAdapterParse, "npm packument for %s does not list latest version %s", name, latest)
	}

	return &PackageInfo{
		Name:        name,
		Version:     latest,
		Description: integrations.FirstNonEmpty(data.Get("description").String(), v.Get("description").String()),
		Author:      integrations.FirstNonEmpty(extractField(data.Get("author"), "name"), extractField(v.Get("author"), "name")),
		License:     integrations.FirstNonEmpty(extractField(v.Get("license"), "type"), extractField(data.Get("license"), "type")),
		HomePage: integrations.FirstNonEmpty(
			data.Get("homepage").String(),
			v.Get("homepage").String(),
			integrations.NormalizeRepoURL(extractField(data.Get("repository"), "url")),
		),
		Released:   data.Get("time").Map()[latest].String(),
		Deprecated: v.Get("deprecated").Exists() && v.Get("deprecated").String() != "",
	}, nil
}

// extractField reads fields that npm allows as either a string or an object,
// such as author ({"name": ...}) and license ({"type": ...}).
func extractField(v gjson.Result, field string) string {
	if v.IsObject() {
		return v.Get(field).String()
	}
	if v.Type == gjson.String {
		return v.String()
	}
	return ""
}
