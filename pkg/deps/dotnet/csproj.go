package dotnet

import (
	"encoding/xml"
	"os"
	"strings"

	"github.com/matzehuels/techdd/pkg/deps"
)

// CSProj parses MSBuild project files and returns the Include attribute of
// every PackageReference in every ItemGroup.
type CSProj struct{}

func (p *CSProj) Type() string { return "csproj" }

func (p *CSProj) Supports(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".csproj")
}

func (p *CSProj) Parse(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var proj project
	if err := xml.Unmarshal(data, &proj); err != nil {
		return nil, err
	}

	var names []string
	for _, group := range proj.ItemGroups {
		for _, ref := range group.PackageReferences {
			if id := strings.TrimSpace(ref.Include); id != "" {
				names = append(names, id)
			}
		}
	}
	return deps.Dedupe(names), nil
}

type project struct {
	XMLName    xml.Name    `xml:"Project"`
	ItemGroups []itemGroup `xml:"ItemGroup"`
}

type itemGroup struct {
	PackageReferences []packageReference `xml:"PackageReference"`
}

type packageReference struct {
	Include string `xml:"Include,attr"`
	Version string `xml:"Version,attr"`
}
