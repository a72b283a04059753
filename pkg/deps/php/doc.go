// Package php provides package enrichment for Composer packages published
// on Packagist.
//
// The registry client reads the Composer v2 metadata endpoint and picks the
// newest stable release. Abandoned packages are reported as deprecated.
// Manifests are composer.json files; only their "require" section counts.
//
// [deps.Language]: github.com/matzehuels/techdd/pkg/deps.Language
package php
