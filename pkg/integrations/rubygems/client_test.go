package rubygems

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	errs "github.com/matzehuels/techdd/pkg/errors"
	"github.com/matzehuels/techdd/pkg/httputil"
)

func TestClient_FetchGem(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/gems/rails.json" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"name":               "rails",
			"version":            "7.1.0",
			"info":               "Ruby on Rails is a full-stack web framework",
			"licenses":           []string{"MIT"},
			"homepage_uri":       "https://rubyonrails.org",
			"project_uri":        "https://rubygems.org/gems/rails",
			"authors":            "David Heinemeier Hansson",
			"version_created_at": "2023-10-05T20:15:28.101Z",
		})
	}))
	defer server.Close()

	info, err := testClient(server).FetchGem(context.Background(), " Rails ")
	if err != nil {
		t.Fatalf("FetchGem failed: %v", err)
	}

	want := &GemInfo{
		Name:        "rails",
		Version:     "7.1.0",
		Description: "Ruby on Rails is a full-stack web framework",
		License:     "MIT",
		Authors:     "David Heinemeier Hansson",
		HomepageURI: "https://rubyonrails.org",
		Released:    "2023-10-05T20:15:28.101Z",
	}
	if diff := cmp.Diff(want, info); diff != "" {
		t.Errorf("FetchGem mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_FetchGem_Fallbacks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"rake","version":"13.0.0","licenses":["MIT","Ruby"],"homepage_uri":null,"project_uri":"https://rubygems.org/gems/rake"}`))
	}))
	defer server.Close()

	info, err := testClient(server).FetchGem(context.Background(), "rake")
	if err != nil {
		t.Fatalf("FetchGem failed: %v", err)
	}
	if info.License != "MIT, Ruby" {
		t.Errorf("License = %q, want %q", info.License, "MIT, Ruby")
	}
	if info.HomepageURI != "https://rubygems.org/gems/rake" {
		t.Errorf("HomepageURI = %q", info.HomepageURI)
	}
}

func TestClient_FetchGem_NotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := testClient(server).FetchGem(context.Background(), "missing-gem")
	var fe *httputil.FetchError
	if !errors.As(err, &fe) {
		t.Errorf("expected *httputil.FetchError, got %v", err)
	}
}

func TestClient_FetchGem_MissingVersion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"rake"}`))
	}))
	defer server.Close()

	_, err := testClient(server).FetchGem(context.Background(), "rake")
	if !errs.Is(err, errs.ErrCodeAdapterParse) {
		t.Errorf("error = %v, want ADAPTER_PARSE", err)
	}
}

func testClient(server *httptest.Server) *Client {
	f := httputil.NewFetcher(server.Client(), httputil.WithPolicy(httputil.Policy{MaxAttempts: 1}))
	return NewClient(f, server.URL)
}
