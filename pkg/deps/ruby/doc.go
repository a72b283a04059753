// Package ruby provides package enrichment for Ruby gems.
//
// # Overview
//
// This package implements [deps.Language] for Ruby, supporting:
//
//   - RubyGems.org metadata via the [rubygems] client
//   - Gemfile parsing
//
// The vulnerability database knows the ecosystem as "RubyGems".
//
// # Manifest Parsing
//
//	parser, _ := ruby.Language.Manifest("Gemfile")
//	names, _ := parser.Parse("Gemfile")
//
// Gem names are taken from `gem "name"` declarations, including those
// nested in group blocks.
//
// [rubygems]: github.com/matzehuels/techdd/pkg/integrations/rubygems
// [deps.Language]: github.com/matzehuels/techdd/pkg/deps.Language
package ruby
