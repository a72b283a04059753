//go:build integration

package npm

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/techdd/pkg/httputil"
	"github.com/matzehuels/techdd/pkg/integrations"
)

func TestFetchPackage_Integration(t *testing.T) {
	client := NewClient(httputil.NewFetcher(integrations.NewHTTPClient(0)), "")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	tests := []struct {
		name    string
		pkg     string
		wantErr bool
	}{
		{"express", "express", false},
		{"scoped", "@types/node", false},
		{"nonexistent", "this-package-should-not-exist-12345", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, err := client.FetchPackage(ctx, tt.pkg)
			if (err != nil) != tt.wantErr {
				t.Errorf("FetchPackage(%q) error = %v, wantErr %v", tt.pkg, err, tt.wantErr)
				return
			}
			if !tt.wantErr && (pkg.Name == "" || pkg.Version == "") {
				t.Errorf("incomplete package info: %+v", pkg)
			}
		})
	}
}
