// Package javascript provides package enrichment for npm packages.
//
// # Overview
//
// This package implements [deps.Language] for JavaScript/Node.js, supporting:
//
//   - npm registry metadata via the [npm] client
//   - package.json manifest parsing
//
// Scoped packages ("@scope/name") are supported; their package URL carries
// the scope as namespace.
//
// # Manifest Parsing
//
//	parser, _ := javascript.Language.Manifest("package.json")
//	names, _ := parser.Parse("package.json")
//
// Names come from "dependencies" followed by "devDependencies".
// peerDependencies and optionalDependencies are not inventoried.
//
// [npm]: github.com/matzehuels/techdd/pkg/integrations/npm
// [deps.Language]: github.com/matzehuels/techdd/pkg/deps.Language
package javascript
