package python

import (
	"bufio"
	"os"
	"regexp"
	"strings"

	"github.com/matzehuels/techdd/pkg/deps"
)

var depNameRE = regexp.MustCompile(`^([a-zA-Z0-9][-a-zA-Z0-9._]*)`)

// Requirements parses pip requirements files. Any file whose name ends in
// "requirements.txt" qualifies, as do requirements-<env>.txt variants.
type Requirements struct{}

func (r *Requirements) Type() string { return "requirements.txt" }

func (r *Requirements) Supports(name string) bool {
	return strings.HasSuffix(name, "requirements.txt") ||
		(strings.HasPrefix(name, "requirements") && strings.HasSuffix(name, ".txt"))
}

// Parse returns the distribution names, stripped of extras, version
// specifiers, markers and comments. Options (-r, -e, --index-url) and
// direct URL references are skipped.
func (r *Requirements) Parse(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var result []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' || line[0] == '-' {
			continue
		}
		if strings.Contains(line, "://") || strings.HasPrefix(line, "git+") {
			continue
		}
		if m := depNameRE.FindStringSubmatch(line); len(m) > 1 {
			result = append(result, normalize(m[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return deps.Dedupe(result), nil
}
