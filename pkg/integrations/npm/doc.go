// Package npm provides an HTTP client for the npm registry.
//
// # Usage
//
//	client := npm.NewClient(fetcher, "")  // "" = https://registry.npmjs.org
//	pkg, err := client.FetchPackage(ctx, "left-pad")
//
// # Response Shape
//
// GET /{name} returns the full packument. The version named by
// dist-tags.latest is read from versions[latest]; its publish time from
// time[latest]. Author and license may be a plain string or an object.
package npm
