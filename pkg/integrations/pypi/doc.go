// Package pypi provides an HTTP client for the Python Package Index JSON API.
//
// # Usage
//
//	client := pypi.NewClient(fetcher, "")  // "" = https://pypi.org
//	pkg, err := client.FetchPackage(ctx, "requests")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(pkg.Name, pkg.Version, pkg.License)
//
// # Response Shape
//
// GET /pypi/{name}/json. Metadata comes from the "info" object; the release
// date is the upload time of the first file listed under
// releases[info.version].
//
// # License
//
// PyPI's license field is free text and sometimes holds the whole license.
// A short value is used as-is; otherwise license_expression, then the
// license classifier, then the first line of the text.
package pypi
