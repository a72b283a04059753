// Package nuget provides an HTTP client for the NuGet v3 registration API.
//
// # Usage
//
//	client := nuget.NewClient(fetcher, "")  // "" = https://api.nuget.org
//	pkg, err := client.FetchPackage(ctx, "Newtonsoft.Json")
//
// # Response Shape
//
// GET /v3/registration5-semver1/{lowercase id}/index.json returns pages of
// versions. The package is described by the catalogEntry of the last leaf of
// the first page: id, version, description, authors, licenseExpression,
// projectUrl, published and, for deprecated versions, deprecation.
package nuget
