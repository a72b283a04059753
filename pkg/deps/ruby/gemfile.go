package ruby

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/matzehuels/techdd/pkg/deps"
)

type Gemfile struct{}

func (g *Gemfile) Type() string              { return "Gemfile" }
func (g *Gemfile) Supports(name string) bool { return name == "Gemfile" }

func (g *Gemfile) Parse(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseGemfile(f)
}

var gemPattern = regexp.MustCompile(`^\s*gem\s+['"]([^'"]+)['"]`)

func parseGemfile(r io.Reader) ([]string, error) {
	var gems []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		// Skip comments
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}

		if match := gemPattern.FindStringSubmatch(line); len(match) > 1 {
			gems = append(gems, match[1])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return deps.Dedupe(gems), nil
}
