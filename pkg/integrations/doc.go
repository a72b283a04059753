// Package integrations provides HTTP clients for package registry APIs.
//
// # Overview
//
// This package contains low-level API clients for fetching package metadata
// and vulnerability status. Each service has its own subpackage:
//
//   - [pypi]: Python Package Index
//   - [nuget]: NuGet registration API
//   - [npm]: npm registry
//   - [rubygems]: Ruby gems
//   - [packagist]: PHP Composer packages
//   - [crates]: Rust crates.io
//   - [osv]: OSV vulnerability database
//
// # Client Pattern
//
// All registry clients follow a consistent pattern:
//
//	fetcher := httputil.NewFetcher(integrations.NewHTTPClient(0))
//	client := pypi.NewClient(fetcher, "")  // "" = default base URL
//	pkg, err := client.FetchPackage(ctx, "requests")
//
// FetchPackage returns the registry's view of the latest release with
// optional fields left empty. Missing required fields are an ADAPTER_PARSE
// error; a fetch that never produced data is [ErrNoData].
//
// # Shared Infrastructure
//
// The [Client] type provides shared request handling used by all registry
// clients: default headers, retry through the injected fetcher, and JSON
// parsing into [gjson.Result] values.
//
// # Adding a New Registry
//
//  1. Create a subpackage: pkg/integrations/<registry>/
//  2. Implement a Client embedding [*Client] with a FetchPackage method
//  3. Wire it into [deps] as a new language
//
// [pypi]: github.com/matzehuels/techdd/pkg/integrations/pypi
// [nuget]: github.com/matzehuels/techdd/pkg/integrations/nuget
// [npm]: github.com/matzehuels/techdd/pkg/integrations/npm
// [rubygems]: github.com/matzehuels/techdd/pkg/integrations/rubygems
// [packagist]: github.com/matzehuels/techdd/pkg/integrations/packagist
// [crates]: github.com/matzehuels/techdd/pkg/integrations/crates
// [osv]: github.com/matzehuels/techdd/pkg/integrations/osv
// [deps]: github.com/matzehuels/techdd/pkg/deps
package integrations
