// Package dotnet provides package enrichment for NuGet packages.
//
// # Overview
//
// This package implements [deps.Language] for .NET, supporting:
//
//   - NuGet registration metadata via the [nuget] client
//   - *.csproj PackageReference parsing
//
// The registration index is keyed by the lowercased package id. When the
// first registration page is inlined its newest catalog entry is used;
// otherwise the newest page is fetched. A deprecation notice on that entry
// marks the record deprecated.
//
// [nuget]: github.com/matzehuels/techdd/pkg/integrations/nuget
// [deps.Language]: github.com/matzehuels/techdd/pkg/deps.Language
package dotnet
