package crates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	errs "github.com/matzehuels/techdd/pkg/errors"
	"github.com/matzehuels/techdd/pkg/httputil"
)

const serdeJSON = `{
  "crate": {
    "name": "serde",
    "description": "A generic serialization/deserialization framework",
    "homepage": "https://serde.rs",
    "repository": "https://github.com/serde-rs/serde",
    "max_version": "1.0.204-rc.1",
    "max_stable_version": "1.0.203"
  },
  "versions": [
    {"num": "1.0.204-rc.1", "license": "MIT OR Apache-2.0", "created_at": "2024-06-20T00:00:00Z"},
    {"num": "1.0.203", "license": "MIT OR Apache-2.0", "created_at": "2024-05-25T21:57:17Z",
     "published_by": {"login": "dtolnay", "name": "David Tolnay"}, "yanked": false}
  ]
}`

func TestClient_FetchCrate(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		if r.URL.Path != "/api/v1/crates/serde" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(serdeJSON))
	}))
	defer server.Close()

	info, err := testClient(server).FetchCrate(context.Background(), "serde")
	if err != nil {
		t.Fatalf("FetchCrate failed: %v", err)
	}
	if gotUA != DefaultUserAgent {
		t.Errorf("User-Agent = %q, want %q", gotUA, DefaultUserAgent)
	}

	want := &CrateInfo{
		Name:        "serde",
		Version:     "1.0.203",
		Description: "A generic serialization/deserialization framework",
		License:     "MIT OR Apache-2.0",
		Publisher:   "David Tolnay",
		HomePage:    "https://serde.rs",
		Released:    "2024-05-25T21:57:17Z",
	}
	if diff := cmp.Diff(want, info); diff != "" {
		t.Errorf("FetchCrate mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_FetchCrate_RepositoryFallbackAndYanked(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"crate":{"name":"tiny","max_version":"0.1.0","repository":"https://github.com/x/tiny.git"},"versions":[{"num":"0.1.0","license":"MIT","yanked":true}]}`))
	}))
	defer server.Close()

	info, err := testClient(server).FetchCrate(context.Background(), "tiny")
	if err != nil {
		t.Fatalf("FetchCrate failed: %v", err)
	}
	if info.HomePage != "https://github.com/x/tiny" || !info.Yanked || info.Version != "0.1.0" {
		t.Errorf("FetchCrate = %+v", info)
	}
}

func TestClient_FetchCrate_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no crate", `{"errors":[{"detail":"Not Found"}]}`},
		{"no version", `{"crate":{"name":"x"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := testClient(server).FetchCrate(context.Background(), "x")
			if !errs.Is(err, errs.ErrCodeAdapterParse) {
				t.Errorf("error = %v, want ADAPTER_PARSE", err)
			}
		})
	}
}

func testClient(server *httptest.Server) *Client {
	f := httputil.NewFetcher(server.Client(), httputil.WithPolicy(httputil.Policy{MaxAttempts: 1}))
	return NewClient(f, server.URL, "")
}
