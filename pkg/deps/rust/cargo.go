package rust

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/techdd/pkg/deps"
)

// CargoToml parses Cargo.toml files. Only the [dependencies] table is
// read; dev, build and target-specific dependencies are not inventoried.
type CargoToml struct{}

func (c *CargoToml) Type() string              { return "Cargo.toml" }
func (c *CargoToml) Supports(name string) bool { return strings.EqualFold(name, "cargo.toml") }

func (c *CargoToml) Parse(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cargo cargoFile
	md, err := toml.Decode(string(data), &cargo)
	if err != nil {
		return nil, err
	}

	// Map iteration loses declaration order; the decoder's key list keeps it.
	var names []string
	for _, key := range md.Keys() {
		if len(key) == 2 && key[0] == "dependencies" {
			names = append(names, crateName(key[1], cargo.Dependencies[key[1]]))
		}
	}
	return deps.Dedupe(names), nil
}

// crateName resolves renamed dependencies (`alias = { package = "real" }`).
func crateName(key string, spec any) string {
	if t, ok := spec.(map[string]any); ok {
		if pkg, ok := t["package"].(string); ok && pkg != "" {
			return pkg
		}
	}
	return key
}

type cargoFile struct {
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
	Dependencies map[string]any `toml:"dependencies"`
}
