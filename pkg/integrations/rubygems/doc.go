// Package rubygems provides an HTTP client for the RubyGems.org API.
//
// # Usage
//
//	client := rubygems.NewClient(fetcher, "")
//	gem, err := client.FetchGem(ctx, "rails")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(gem.Name, gem.Version)
//
// # GemInfo
//
// [Client.FetchGem] reads GET /api/v1/gems/{name}.json:
//
//   - Name, Version: gem identity (required)
//   - Description: the "info" summary
//   - License: all declared licenses joined with ", "
//   - Authors, HomepageURI, Released: display metadata
//
// RubyGems has no deprecation flag; yanked versions simply disappear.
package rubygems
