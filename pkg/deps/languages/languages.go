// Package languages lists every supported ecosystem and builds the adapter
// registry the enricher dispatches through.
//
// Adding an ecosystem means writing a [deps.Language] in its own package and
// appending it to [All]; nothing else changes.
package languages

import (
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/techdd/pkg/deps"
	"github.com/matzehuels/techdd/pkg/deps/dotnet"
	"github.com/matzehuels/techdd/pkg/deps/javascript"
	"github.com/matzehuels/techdd/pkg/deps/php"
	"github.com/matzehuels/techdd/pkg/deps/python"
	"github.com/matzehuels/techdd/pkg/deps/ruby"
	"github.com/matzehuels/techdd/pkg/deps/rust"
	errs "github.com/matzehuels/techdd/pkg/errors"
	"github.com/matzehuels/techdd/pkg/integrations"
)

// All lists the supported languages in report order.
var All = []*deps.Language{
	python.Language,
	dotnet.Language,
	javascript.Language,
	ruby.Language,
	php.Language,
	rust.Language,
}

// Find resolves an ecosystem tag or alias, ignoring case.
func Find(name string) (*deps.Language, error) {
	for _, l := range All {
		if l.Matches(name) {
			return l, nil
		}
	}
	return nil, errs.New(errs.ErrCodeInvalidEcosystem, "unknown ecosystem %q (available: %s)", name, strings.Join(Names(), ", "))
}

// Names returns the ecosystem tags of [All].
func Names() []string {
	out := make([]string, len(All))
	for i, l := range All {
		out[i] = string(l.Name)
	}
	return out
}

// Config customizes the registry endpoints.
type Config struct {
	// Registries overrides base URLs, keyed by ecosystem tag or alias.
	Registries map[string]string
	// VulnerabilityEcosystems overrides vulnerability database names, keyed
	// by ecosystem tag or alias.
	VulnerabilityEcosystems map[string]string
	// UserAgent is sent to registries that require one.
	UserAgent string
}

// NewRegistry builds an adapter for every language in [All], sharing one
// fetcher. Keys in cfg that name no known ecosystem are an error.
func NewRegistry(fetcher integrations.Fetcher, cfg Config, logger *log.Logger) (*deps.Registry, error) {
	registries, err := byEcosystem(cfg.Registries)
	if err != nil {
		return nil, err
	}
	for eco, u := range registries {
		u = strings.TrimRight(u, "/")
		if err := errs.ValidateURL(u); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "registry for %s", eco)
		}
		registries[eco] = u
	}
	overrides, err := byEcosystem(cfg.VulnerabilityEcosystems)
	if err != nil {
		return nil, err
	}

	reg := deps.NewRegistry()
	for _, l := range All {
		src := deps.Source{HTTP: fetcher, BaseURL: registries[l.Name], UserAgent: cfg.UserAgent}
		reg.Register(deps.NewAdapter(l, l.Fetcher(src), logger))
	}
	for eco, name := range overrides {
		reg.SetVulnerabilityEcosystem(eco, name)
	}
	return reg, nil
}

func byEcosystem(m map[string]string) (map[deps.Ecosystem]string, error) {
	out := make(map[deps.Ecosystem]string, len(m))
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		l, err := Find(k)
		if err != nil {
			return nil, err
		}
		if v := strings.TrimSpace(m[k]); v != "" {
			out[l.Name] = v
		}
	}
	return out, nil
}
