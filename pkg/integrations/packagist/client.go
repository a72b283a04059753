package packagist

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	errs "github.com/matzehuels/techdd/pkg/errors"
	"github.com/matzehuels/techdd/pkg/integrations"
)

// DefaultBaseURL is the Packagist Composer v2 metadata host.
const DefaultBaseURL = "https://repo.packagist.org"

// PackageInfo holds metadata for a PHP package from Packagist.
//
// Package names follow Composer conventions (vendor/package format).
// Version is the latest stable version; dev versions are skipped.
type PackageInfo struct {
	Name        string // Package name (e.g., "symfony/console")
	Version     string // Latest stable version (e.g., "v6.3.0")
	Description string
	License     string // First license if several are declared
	Author      string // First author name
	HomePage    string // Homepage, or the normalized source repository URL
	Released    string // Release time of Version
	Abandoned   bool
}

// Client provides access to the Packagist metadata API.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a Packagist client. An empty baseURL uses [DefaultBaseURL].
func NewClient(f integrations.Fetcher, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		Client:  integrations.NewClient(f, nil),
		baseURL: baseURL,
	}
}

// FetchPackage retrieves metadata for a PHP package from Packagist.
//
// The pkg parameter must be in "vendor/package" format and is lowercased.
// A response without any version for pkg is an ADAPTER_PARSE error.
func (c *Client) FetchPackage(ctx context.Context, pkg string) (*PackageInfo, error) {
	pkg = strings.ToLower(strings.TrimSpace(pkg))
	data, err := c.Get(ctx, fmt.Sprintf("%s/p2/%s.json", c.baseURL, pkg))
	if err != nil {
		return nil, err
	}

	versions := expand(data.Get("packages").Map()[pkg].Array())
	if len(versions) == 0 {
		return nil, errs.New(errs.ErrCodeAdapterParse, "packagist response has no versions for %s", pkg)
	}
	v := latestStable(versions)

	name := v["name"].String()
	if name == "" {
		name = pkg
	}
	version, ok := v["version"]
	if !ok || version.String() == "" {
		return nil, errs.New(errs.ErrCodeAdapterParse, "packagist response missing version for %s", pkg)
	}

	return &PackageInfo{
		Name:        name,
		Version:     version.String(),
		Description: v["description"].String(),
		License:     firstLicense(v["license"]),
		Author:      strings.TrimSpace(v["authors"].Get("0.name").String()),
		HomePage:    integrations.FirstNonEmpty(v["homepage"].String(), integrations.NormalizeRepoURL(v["source"].Get("url").String())),
		Released:    v["time"].String(),
		Abandoned:   isAbandoned(v["abandoned"]),
	}, nil
}

// expand undoes Composer v2 minification: each version lists only the keys
// that changed from the previous one, and "__unset" removes a key.
func expand(minified []gjson.Result) []map[string]gjson.Result {
	out := make([]map[string]gjson.Result, 0, len(minified))
	acc := map[string]gjson.Result{}
	for _, m := range minified {
		next := make(map[string]gjson.Result, len(acc))
		for k, v := range acc {
			next[k] = v
		}
		for k, v := range m.Map() {
			if v.Type == gjson.String && v.Str == "__unset" {
				delete(next, k)
				continue
			}
			next[k] = v
		}
		out = append(out, next)
		acc = next
	}
	return out
}

// latestStable returns the first version that is not a dev branch and looks
// like a dotted release. Packagist lists newest first. With no stable
// release the newest entry is used.
func latestStable(versions []map[string]gjson.Result) map[string]gjson.Result {
	for _, v := range versions {
		lv := strings.ToLower(v["version"].String())
		if strings.Contains(lv, "dev") {
			continue
		}
		if strings.Contains(strings.TrimPrefix(lv, "v"), ".") {
			return v
		}
	}
	return versions[0]
}

func firstLicense(v gjson.Result) string {
	if v.IsArray() {
		return v.Get("0").String()
	}
	return v.String()
}

// isAbandoned accepts both forms: true, or the name of a replacement package.
func isAbandoned(v gjson.Result) bool {
	switch v.Type {
	case gjson.True:
		return true
	case gjson.String:
		return v.Str != ""
	}
	return false
}
