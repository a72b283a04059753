// Package packagist provides an HTTP client for Packagist, the PHP Composer
// package repository.
//
// # Usage
//
//	client := packagist.NewClient(fetcher, "")
//	pkg, err := client.FetchPackage(ctx, "symfony/console")
//
// # Response Shape
//
// GET /p2/{vendor}/{package}.json returns minified version metadata, newest
// first. Versions are expanded before the latest stable one is chosen, so
// fields inherited from newer entries are not lost.
package packagist
