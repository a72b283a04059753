// Package deps enriches declared open-source dependencies with registry
// metadata and vulnerability status.
//
// # Overview
//
// techdd works from an [Inventory]: for each ecosystem, the package names a
// source tree declares. The [Scanner] builds one by walking manifest files;
// the CLI can also take names directly. The [Enricher] then turns the
// inventory into a [Report] of display-ready [PackageRecord] values.
//
// # Architecture
//
// The enrichment system has three layers:
//
//  1. Integrations ([integrations]): registry clients on top of the backoff
//     fetcher in [httputil]
//  2. Language definitions (subpackages): one [Language] per ecosystem,
//     mapping a registry client onto [PackageRecord] and listing manifest
//     parsers
//  3. Orchestration (this package): [Adapter], [Registry],
//     [VulnerabilityChecker] and [Enricher]
//
// # Enriching
//
//	reg := languages.NewRegistry(http, languages.Config{}, logger)
//	checker := deps.NewVulnerabilityChecker(osv.NewClient(http, ""), reg, logger)
//	enricher, _ := deps.NewEnricher(reg, checker, deps.Options{Logger: logger})
//	report, err := enricher.Enrich(ctx, deps.Inventory{
//	    deps.PyPI: {"flask", "requests"},
//	    deps.NPM:  {"react"},
//	})
//
// Every package becomes one task. A task asks the ecosystem's [Adapter] for
// the record and, when there is one, asks the [Checker] whether the package
// has any known vulnerability. Tasks run concurrently, optionally bounded by
// [Options.Workers]. The calling goroutine collects completions and pauses
// [Options.Throttle] after each one.
//
// # Failure Model
//
// Nothing that goes wrong with one package reaches the caller. Adapters log
// registry and parse errors and report the package as absent; the checker
// logs query errors and reports "not vulnerable"; tasks recover panics.
// Ecosystems without an adapter are logged and contribute nothing. The
// report keeps every inventory key, so an ecosystem whose packages all
// failed shows up with an empty list.
//
// # Records
//
// Adapters normalize records before returning them: blank fields become
// [NotAvailable], licenses go through [NormalizeLicense], and a package URL
// is derived from the language's purl type.
//
// # Supported Languages
//
//   - [python]: PyPI, requirements*.txt
//   - [dotnet]: NuGet, *.csproj
//   - [javascript]: npm, package.json
//   - [ruby]: RubyGems, Gemfile
//   - [php]: Packagist, composer.json
//   - [rust]: crates.io, Cargo.toml
//
// [integrations]: github.com/matzehuels/techdd/pkg/integrations
// [httputil]: github.com/matzehuels/techdd/pkg/httputil
// [python]: github.com/matzehuels/techdd/pkg/deps/python
// [dotnet]: github.com/matzehuels/techdd/pkg/deps/dotnet
// [javascript]: github.com/matzehuels/techdd/pkg/deps/javascript
// [ruby]: github.com/matzehuels/techdd/pkg/deps/ruby
// [php]: github.com/matzehuels/techdd/pkg/deps/php
// [rust]: github.com/matzehuels/techdd/pkg/deps/rust
package deps
