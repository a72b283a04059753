// Package pkg provides the core libraries for techdd, a technical due
// diligence report generator for open-source dependencies.
//
// # Overview
//
// techdd reads the dependency manifests of a source tree, asks each package
// registry for the current metadata of every declared package, checks the
// OSV database for known vulnerabilities, and writes a Markdown report with
// a license compatibility summary. The pkg directory is organized into:
//
//  1. [deps] - Inventory, records, adapters, the scanner and the enricher
//  2. [integrations] - Registry clients (PyPI, NuGet, npm, RubyGems,
//     Packagist, crates.io) and the OSV client
//  3. [httputil] - The backoff fetcher every client sits on
//  4. [license] - License normalization and compatibility analysis
//  5. [report] and [io] - Markdown, terminal and JSON output
//  6. [pipeline] - Orchestration (scan → enrich → analyze → render)
//
// # Architecture
//
// The typical data flow through techdd:
//
//	Source tree / ecosystem:name arguments
//	         ↓
//	    [deps.Scanner] (manifests → Inventory)
//	         ↓
//	    [deps.Enricher] (registry + OSV → Report)
//	         ↓
//	    [license.Analyze] (Report → Summary)
//	         ↓
//	    [report.Markdown] / [io.WriteJSON]
//
// # Quick Start
//
//	opts := pipeline.Options{Formats: []string{pipeline.FormatMarkdown}}
//	runner, err := pipeline.NewRunner(opts)
//	if err != nil {
//	    return err
//	}
//	res, err := runner.Execute(ctx, "./my-service")
//	if err != nil {
//	    return err
//	}
//	os.WriteFile(report.DefaultFilename, res.Artifacts[pipeline.FormatMarkdown], 0o644)
//
// Enrich a hand-written inventory instead of scanning:
//
//	inv, _ := pipeline.ParseInventory([]string{"pypi:flask", "npm:react"})
//	res, err := runner.ExecuteInventory(ctx, inv)
//
// # Failure Model
//
// Per-package failures never abort a run. Registry errors, malformed
// responses and OSV outages are logged and the package is either dropped
// (no metadata) or reported as not vulnerable. Only invalid configuration
// and cancellation reach the caller.
//
// # Testing
//
//	go test ./...                        # All tests
//	go test ./pkg/deps/...               # Specific package
//	go test -tags integration ./pkg/...  # Include live registry tests
//
// [deps]: https://pkg.go.dev/github.com/matzehuels/techdd/pkg/deps
// [deps.Scanner]: https://pkg.go.dev/github.com/matzehuels/techdd/pkg/deps#Scanner
// [deps.Enricher]: https://pkg.go.dev/github.com/matzehuels/techdd/pkg/deps#Enricher
// [integrations]: https://pkg.go.dev/github.com/matzehuels/techdd/pkg/integrations
// [httputil]: https://pkg.go.dev/github.com/matzehuels/techdd/pkg/httputil
// [license]: https://pkg.go.dev/github.com/matzehuels/techdd/pkg/license
// [license.Analyze]: https://pkg.go.dev/github.com/matzehuels/techdd/pkg/license#Analyze
// [report]: https://pkg.go.dev/github.com/matzehuels/techdd/pkg/report
// [report.Markdown]: https://pkg.go.dev/github.com/matzehuels/techdd/pkg/report#Markdown
// [io]: https://pkg.go.dev/github.com/matzehuels/techdd/pkg/io
// [io.WriteJSON]: https://pkg.go.dev/github.com/matzehuels/techdd/pkg/io#WriteJSON
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/techdd/pkg/pipeline
package pkg
