// Package rust provides package enrichment for Rust crates.
//
// # Overview
//
// This package implements [deps.Language] for Rust, supporting:
//
//   - crates.io metadata via the [crates] client
//   - Cargo.toml manifest parsing
//
// crates.io rejects requests without a User-Agent, so the fetcher always
// sends one ([deps.Source.UserAgent], or the client default).
//
// A yanked latest version is reported as deprecated.
//
// [crates]: github.com/matzehuels/techdd/pkg/integrations/crates
// [deps.Language]: github.com/matzehuels/techdd/pkg/deps.Language
// [deps.Source.UserAgent]: github.com/matzehuels/techdd/pkg/deps.Source
package rust
