package python

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/techdd/pkg/deps"
	"github.com/matzehuels/techdd/pkg/httputil"
)

func TestLanguageGetInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pypi/requests/json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{
  "info": {
    "name": "requests",
    "version": "2.31.0",
    "summary": "Python HTTP for Humans.",
    "author": "Kenneth Reitz",
    "license": "Apache 2.0",
    "project_url": "https://pypi.org/project/requests/"
  },
  "releases": {"2.31.0": [{"upload_time": "2023-05-22T15:12:42"}]}
}`))
	}))
	defer server.Close()

	fetcher := httputil.NewFetcher(server.Client(), httputil.WithPolicy(httputil.Policy{MaxAttempts: 1}))
	adapter := deps.NewAdapter(Language, Language.Fetcher(deps.Source{HTTP: fetcher, BaseURL: server.URL}), nil)

	got := adapter.GetInfo(context.Background(), "requests")
	want := &deps.PackageRecord{
		Ecosystem:   deps.PyPI,
		Name:        "requests",
		Version:     "2.31.0",
		Description: "Python HTTP for Humans.",
		Author:      "Kenneth Reitz",
		License:     "Apache 2.0",
		ProjectURL:  "https://pypi.org/project/requests/",
		ReleaseDate: "2023-05-22T15:12:42",
		PURL:        "pkg:pypi/requests@2.31.0",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetInfo() mismatch (-want +got):\n%s", diff)
	}

	if adapter.GetInfo(context.Background(), "does-not-exist") != nil {
		t.Error("a 404 should make the package absent")
	}
}

func TestLanguageMetadata(t *testing.T) {
	if Language.VulnerabilityEcosystem != "PyPI" {
		t.Errorf("VulnerabilityEcosystem = %q", Language.VulnerabilityEcosystem)
	}
	if !Language.Matches("python") {
		t.Error("python alias should match")
	}
	if p, ok := Language.Manifest("services/api/requirements.txt"); !ok || p.Type() != "requirements.txt" {
		t.Errorf("Manifest(requirements.txt) = %v, %v", p, ok)
	}
}
