package python

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/techdd/pkg/deps"
)

// PoetryLock parses poetry.lock files. The lock lists every installed
// distribution, so transitive packages are inventoried too.
type PoetryLock struct{}

func (p *PoetryLock) Type() string              { return "poetry.lock" }
func (p *PoetryLock) Supports(name string) bool { return name == "poetry.lock" }

func (p *PoetryLock) Parse(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var lock lockFile
	if err := toml.Unmarshal(data, &lock); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(lock.Packages))
	for _, pkg := range lock.Packages {
		names = append(names, normalize(pkg.Name))
	}
	return deps.Dedupe(names), nil
}

type lockFile struct {
	Packages []lockPackage `toml:"package"`
}

type lockPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}
