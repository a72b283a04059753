package deps

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
)

// Querier asks a vulnerability database about a package across all of its
// versions. [*osv.Client] is the production implementation.
//
// [*osv.Client]: github.com/matzehuels/techdd/pkg/integrations/osv.Client
type Querier interface {
	Query(ctx context.Context, name, ecosystem string) (bool, error)
}

// Checker reports whether a package has any known vulnerability.
type Checker interface {
	HasVulnerability(ctx context.Context, name string, ecosystem Ecosystem) bool
}

// VulnerabilityChecker translates ecosystems through a [Registry] and
// queries a vulnerability database. Query failures are logged and reported
// as not vulnerable.
type VulnerabilityChecker struct {
	querier  Querier
	registry *Registry
	logger   *log.Logger
}

// NewVulnerabilityChecker creates a checker. A nil registry passes ecosystem
// names through unchanged; a nil logger discards output.
func NewVulnerabilityChecker(q Querier, registry *Registry, logger *log.Logger) *VulnerabilityChecker {
	if registry == nil {
		registry = NewRegistry()
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &VulnerabilityChecker{querier: q, registry: registry, logger: logger}
}

// HasVulnerability reports whether the database lists any vulnerability for
// name. It never fails outward.
func (c *VulnerabilityChecker) HasVulnerability(ctx context.Context, name string, ecosystem Ecosystem) bool {
	target := c.registry.VulnerabilityEcosystem(ecosystem)
	found, err := c.querier.Query(ctx, strings.TrimSpace(name), target)
	if err != nil {
		c.logger.Error("error checking vulnerabilities",
			"ecosystem", string(ecosystem), "package", name, "err", err)
		return false
	}
	return found
}
