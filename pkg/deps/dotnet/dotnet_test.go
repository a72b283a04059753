package dotnet

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
		if r.URL.Path != "/v3/registration5-semver1/newtonsoft.json/index.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"items":[{"items":[
  {"catalogEntry":{"id":"Newtonsoft.Json","version":"13.0.2","published":"2022-11-24T00:00:00Z"}},
  {"catalogEntry":{"id":"Newtonsoft.Json","version":"13.0.3","description":"Json.NET is a popular high-performance JSON framework for .NET",
   "authors":"James Newton-King","licenseExpression":"MIT","projectUrl":"https://www.newtonsoft.com/json",
   "published":"2023-03-08T07:42:54.647+00:00"}}
]}]}`))
	}))
	defer server.Close()

	fetcher := httputil.NewFetcher(server.Client(), httputil.WithPolicy(httputil.Policy{MaxAttempts: 1}))
	adapter := deps.NewAdapter(Language, Language.Fetcher(deps.Source{HTTP: fetcher, BaseURL: server.URL}), nil)

	got := adapter.GetInfo(context.Background(), "Newtonsoft.Json")
	want := &deps.PackageRecord{
		Ecosystem:   deps.NuGet,
		Name:        "Newtonsoft.Json",
		Version:     "13.0.3",
		Description: "Json.NET is a popular high-performance JSON framework for .NET",
		Author:      "James Newton-King",
		License:     "MIT",
		ProjectURL:  "https://www.newtonsoft.com/json",
		ReleaseDate: "2023-03-08T07:42:54.647+00:00",
		PURL:        "pkg:nuget/Newtonsoft.Json@13.0.3",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetInfo() mismatch (-want +got):\n%s", diff)
	}
}
