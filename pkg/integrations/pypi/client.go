package pypi

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	errs "github.com/matzehuels/techdd/pkg/errors"
	"github.com/matzehuels/techdd/pkg/integrations"
)

// DefaultBaseURL is the public PyPI JSON API host.
const DefaultBaseURL = "https://pypi.org"

// PackageInfo holds metadata for the latest release of a Python package.
//
// Name, Version and ReleaseDate are always set when FetchPackage succeeds;
// the remaining fields are empty when PyPI does not report them.
type PackageInfo struct {
	Name        string // Display name as published (e.g., "requests")
	Version     string // Latest version (info.version)
	Summary     string // One-line description
	Author      string // Author name
	License     string // License name or expression
	ProjectURL  string // PyPI project page
	ReleaseDate string // Upload time of the first file of the latest release
}

// Client provides access to the PyPI JSON API.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a PyPI client. An empty baseURL uses [DefaultBaseURL].
func NewClient(f integrations.Fetcher, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		Client:  integrations.NewClient(f, nil),
		baseURL: baseURL,
	}
}

// FetchPackage retrieves metadata for a Python package from PyPI.
//
// Returns:
//   - PackageInfo populated with metadata on success
//   - [integrations.ErrNoData] if PyPI kept rate limiting
//   - an ADAPTER_PARSE error if the response lacks name, version, or the
//     release upload time
//   - the fetcher's error otherwise
func (c *Client) FetchPackage(ctx context.Context, pkg string) (*PackageInfo, error) {
	data, err := c.Get(ctx, fmt.Sprintf("%s/pypi/%s/json", c.baseURL, integrations.PathEscape(pkg)))
	if err != nil {
		return nil, err
	}

	info := data.Get("info")
	name, err := integrations.RequireString(info, "name", "pypi")
	if err != nil {
		return nil, err
	}
	version, err := integrations.RequireString(info, "version", "pypi")
	if err != nil {
		return nil, err
	}
	released, err := uploadTime(data, version)
	if err != nil {
		return nil, err
	}

	return &PackageInfo{
		Name:        name,
		Version:     version,
		Summary:     info.Get("summary").String(),
		Author:      integrations.FirstNonEmpty(info.Get("author").String(), info.Get("maintainer").String()),
		License:     extractLicense(info),
		ProjectURL:  info.Get("project_url").String(),
		ReleaseDate: released,
	}, nil
}

// uploadTime reads releases[version][0].upload_time. Versions contain dots,
// so the key is looked up through a map rather than a gjson path.
func uploadTime(data gjson.Result, version string) (string, error) {
	files, ok := data.Get("releases").Map()[version]
	if !ok || len(files.Array()) == 0 {
		return "", errs.New(errs.ErrCodeAdapterParse, "pypi response has no files for release %s", version)
	}
	return integrations.RequireString(files.Array()[0], "upload_time", "pypi")
}

// extractLicense prefers the license field when it is a short identifier,
// then the PEP 639 license_expression, then the most specific license
// classifier (e.g., "License :: OSI Approved :: MIT License" -> "MIT License").
func extractLicense(info gjson.Result) string {
	license := strings.TrimSpace(info.Get("license").String())
	if license != "" && len(license) < 100 && !strings.Contains(license, "\n") {
		return license
	}
	if expr := strings.TrimSpace(info.Get("license_expression").String()); expr != "" {
		return expr
	}
	for _, c := range info.Get("classifiers").Array() {
		parts := strings.Split(c.String(), " :: ")
		if len(parts) >= 3 && parts[0] == "License" {
			return parts[len(parts)-1]
		}
	}
	if license != "" {
		if first := strings.TrimSpace(strings.SplitN(license, "\n", 2)[0]); len(first) < 50 {
			return first
		}
	}
	return ""
}
