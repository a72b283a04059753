// Package osv provides a client for the OSV vulnerability database.
//
// # Usage
//
//	client := osv.NewClient(fetcher, "")  // "" = https://api.osv.dev
//	vulnerable, err := client.Query(ctx, "requests", "PyPI")
//
// The request body is an [osvdev.Query] with only the package set, so OSV
// matches every version of the package. A package is reported vulnerable
// when the response lists at least one entry under "vulns".
//
// [osvdev.Query]: https://pkg.go.dev/osv.dev/bindings/go/osvdev#Query
package osv
