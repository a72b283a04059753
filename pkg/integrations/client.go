package integrations

import (
	"context"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/matzehuels/techdd/pkg/httputil"
)

// Fetcher performs one request under the retry policy.
// [*httputil.Fetcher] is the production implementation.
type Fetcher interface {
	Fetch(ctx context.Context, req httputil.Request) ([]byte, bool, error)
}

// Client provides shared request handling for all registry API clients.
// It applies default headers and turns raw bodies into gjson results so
// each registry client only deals with field paths.
//
// All methods are safe for concurrent use.
type Client struct {
	fetcher Fetcher
	headers map[string]string
}

// NewClient creates a Client sending requests through f.
// Headers are applied to all requests made through this client.
// Pass nil for headers if no default headers are needed.
func NewClient(f Fetcher, headers map[string]string) *Client {
	return &Client{fetcher: f, headers: headers}
}

// Get performs a GET request and parses the JSON response.
// It returns [ErrNoData] when the fetcher gave up without a terminal error.
func (c *Client) Get(ctx context.Context, url string) (gjson.Result, error) {
	return c.GetWithHeaders(ctx, url, nil)
}

// GetWithHeaders performs a GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string) (gjson.Result, error) {
	return c.do(ctx, httputil.Request{
		Method:  http.MethodGet,
		URL:     url,
		Headers: c.merge(headers),
	})
}

// Post sends body as JSON and parses the JSON response.
func (c *Client) Post(ctx context.Context, url string, body any) (gjson.Result, error) {
	return c.do(ctx, httputil.Request{
		Method:  http.MethodPost,
		URL:     url,
		Body:    body,
		Headers: c.merge(nil),
	})
}

// PostRaw sends an already encoded JSON body and parses the JSON response.
func (c *Client) PostRaw(ctx context.Context, url string, body []byte) (gjson.Result, error) {
	return c.do(ctx, httputil.Request{
		Method:  http.MethodPost,
		URL:     url,
		RawBody: body,
		Headers: c.merge(nil),
	})
}

func (c *Client) do(ctx context.Context, req httputil.Request) (gjson.Result, error) {
	data, ok, err := c.fetcher.Fetch(ctx, req)
	if err != nil {
		return gjson.Result{}, err
	}
	if !ok {
		return gjson.Result{}, ErrNoData
	}
	return gjson.ParseBytes(data), nil
}

func (c *Client) merge(headers map[string]string) map[string]string {
	if len(c.headers) == 0 {
		return headers
	}
	out := make(map[string]string, len(c.headers)+len(headers))
	for k, v := range c.headers {
		out[k] = v
	}
	for k, v := range headers {
		out[k] = v
	}
	return out
}
