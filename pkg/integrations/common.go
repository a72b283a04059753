package integrations

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	errs "github.com/matzehuels/techdd/pkg/errors"
)

// DefaultTimeout bounds a single registry request.
const DefaultTimeout = 10 * time.Second

// ErrNoData is returned when a registry never produced a usable response
// and no terminal error was raised, which happens when every attempt was
// rate limited.
var ErrNoData = errors.New("no data returned")

// NewHTTPClient creates an HTTP client with the given per-request timeout.
// A zero timeout uses [DefaultTimeout].
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// RequireString returns the string at path, or an ADAPTER_PARSE error when
// the field is absent or empty.
func RequireString(res gjson.Result, path, registry string) (string, error) {
	v := res.Get(path)
	if !v.Exists() || strings.TrimSpace(v.String()) == "" {
		return "", errs.New(errs.ErrCodeAdapterParse, "%s response missing %q", registry, path)
	}
	return v.String(), nil
}

// NormalizePkgName converts a package name to its canonical form.
// Applies lowercase and replaces underscores with hyphens, following PEP 503
// normalization rules used by PyPI and other registries.
func NormalizePkgName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}

var repoURLReplacer = strings.NewReplacer(
	"git@github.com:", "https://github.com/",
	"git://github.com/", "https://github.com/",
)

// NormalizeRepoURL converts various repository URL formats to canonical HTTPS form.
// Handles git@, git://, and git+ prefixes, and removes .git suffixes.
// Returns empty string if raw is empty.
func NormalizeRepoURL(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "git+")
	s = repoURLReplacer.Replace(s)
	return strings.TrimSuffix(s, ".git")
}

// PathEscape escapes a package name for use as one URL path segment.
// Scoped npm names keep their @ but encode the slash.
func PathEscape(s string) string { return url.PathEscape(s) }

// FirstNonEmpty returns the first argument that is not blank.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
