package osv

import (
	"context"
	"errors"
	"strings"

	"github.com/ossf/osv-schema/bindings/go/osvschema"
	"google.golang.org/protobuf/encoding/protojson"
	"osv.dev/bindings/go/api"
	"osv.dev/bindings/go/osvdev"

	errs "github.com/matzehuels/techdd/pkg/errors"
	"github.com/matzehuels/techdd/pkg/integrations"
)

// DefaultBaseURL is the public OSV API host.
const DefaultBaseURL = osvdev.DefaultBaseURL

// Client queries the OSV vulnerability database.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates an OSV client. An empty baseURL uses [DefaultBaseURL].
func NewClient(f integrations.Fetcher, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		Client:  integrations.NewClient(f, nil),
		baseURL: baseURL,
	}
}

// Query reports whether OSV knows of any vulnerability for the package,
// across all versions. ecosystem must use OSV's vocabulary ("PyPI",
// "RubyGems", "crates.io", ...).
//
// A query that never got a response because OSV kept rate limiting is
// reported as not vulnerable. Any other failure is a VULN_QUERY error.
func (c *Client) Query(ctx context.Context, name, ecosystem string) (bool, error) {
	body, err := encodeQuery(name, ecosystem)
	if err != nil {
		return false, errs.Wrap(errs.ErrCodeVulnQuery, err, "encode osv query %s/%s", ecosystem, name)
	}
	res, err := c.PostRaw(ctx, c.baseURL+osvdev.QueryEndpoint, body)
	if errors.Is(err, integrations.ErrNoData) {
		return false, nil
	}
	if err != nil {
		return false, errs.Wrap(errs.ErrCodeVulnQuery, err, "osv query %s/%s", ecosystem, name)
	}
	return res.Get("vulns.#").Int() > 0, nil
}

// encodeQuery builds a version-less query. OSV's request types are proto
// messages, so they go through protojson.
func encodeQuery(name, ecosystem string) ([]byte, error) {
	return protojson.Marshal(&api.Query{
		Package: &osvschema.Package{
			Name:      strings.TrimSpace(name),
			Ecosystem: ecosystem,
		},
	})
}
