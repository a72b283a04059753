package deps

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/package-url/packageurl-go"

	errs "github.com/matzehuels/techdd/pkg/errors"
	"github.com/matzehuels/techdd/pkg/integrations"
)

// Adapter is the common capability every ecosystem exposes to the enricher.
type Adapter interface {
	// Ecosystem returns the ecosystem tag the adapter serves.
	Ecosystem() Ecosystem
	// VulnerabilityEcosystem returns the vulnerability database's name for
	// this ecosystem.
	VulnerabilityEcosystem() string
	// GetInfo returns the normalized record for name, or nil when the
	// package could not be retrieved. It never fails outward.
	GetInfo(ctx context.Context, name string) *PackageRecord
}

// NewAdapter wraps a language fetcher. A nil logger discards output.
func NewAdapter(lang *Language, f Fetcher, logger *log.Logger) Adapter {
	if logger == nil {
		logger = discardLogger()
	}
	return &adapter{
		lang:    lang,
		fetcher: f,
		logger:  logger.With("ecosystem", string(lang.Name)),
	}
}

type adapter struct {
	lang    *Language
	fetcher Fetcher
	logger  *log.Logger
}

func (a *adapter) Ecosystem() Ecosystem { return a.lang.Name }

func (a *adapter) VulnerabilityEcosystem() string {
	if a.lang.VulnerabilityEcosystem == "" {
		return string(a.lang.Name)
	}
	return a.lang.VulnerabilityEcosystem
}

func (a *adapter) GetInfo(ctx context.Context, name string) *PackageRecord {
	if err := errs.ValidatePackageName(name); err != nil {
		a.logger.Error("invalid package name", "package", name, "err", err)
		return nil
	}
	name = strings.TrimSpace(name)

	rec, err := a.fetcher.Fetch(ctx, name)
	switch {
	case errors.Is(err, integrations.ErrNoData):
		a.logger.Debug("no data returned", "package", name)
		return nil
	case err != nil:
		a.logger.Error("error fetching package info", "package", name, "err", err)
		return nil
	case rec == nil:
		return nil
	}
	return a.normalize(name, rec)
}

func (a *adapter) normalize(requested string, rec *PackageRecord) *PackageRecord {
	out := *rec
	out.Ecosystem = a.lang.Name
	out.Name = integrations.FirstNonEmpty(rec.Name, requested)
	out = Normalize(out)
	out.HasKnownVulnerability = false
	if out.PURL == "" {
		out.PURL = PackageURL(a.lang.PURLType, out.Name, rec.Version)
	}
	return &out
}

// PackageURL builds a purl for name at version. Scoped npm names and
// composer vendor names are split into namespace and name. It returns ""
// when purlType is empty.
func PackageURL(purlType, name, version string) string {
	if purlType == "" || name == "" {
		return ""
	}
	var namespace string
	switch purlType {
	case packageurl.TypeNPM, packageurl.TypeComposer:
		if i := strings.LastIndex(name, "/"); i > 0 {
			namespace, name = name[:i], name[i+1:]
		}
	case packageurl.TypePyPi:
		name = integrations.NormalizePkgName(name)
	}
	return packageurl.NewPackageURL(purlType, namespace, name, version, nil, "").ToString()
}
