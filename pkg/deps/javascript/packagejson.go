package javascript

import (
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/matzehuels/techdd/pkg/deps"
	errs "github.com/matzehuels/techdd/pkg/errors"
)

// PackageJSON parses package.json files. It extracts dependencies and
// devDependencies, in declaration order.
type PackageJSON struct{}

func (p *PackageJSON) Type() string              { return "package.json" }
func (p *PackageJSON) Supports(name string) bool { return strings.EqualFold(name, "package.json") }

func (p *PackageJSON) Parse(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, errs.New(errs.ErrCodeInvalidManifest, "%s is not valid JSON", path)
	}

	doc := gjson.ParseBytes(data)
	var names []string
	for _, section := range []string{"dependencies", "devDependencies"} {
		doc.Get(section).ForEach(func(key, _ gjson.Result) bool {
			names = append(names, key.String())
			return true
		})
	}
	return deps.Dedupe(names), nil
}
