// Package crates provides an HTTP client for the crates.io API.
//
// # Usage
//
//	client := crates.NewClient(fetcher, "", "")
//	crate, err := client.FetchCrate(ctx, "serde")
//
// # CrateInfo
//
// GET /api/v1/crates/{name} returns the crate summary and its versions.
// License, publisher, release time and yanked state come from the version
// entry matching max_stable_version (or max_version when there is no stable
// release).
//
// crates.io requires a User-Agent header; the client always sends one.
package crates
