package deps

import (
	"slices"
	"sort"
	"strings"

	errs "github.com/matzehuels/techdd/pkg/errors"
)

// Display placeholders used by every record.
const (
	NotAvailable   = "N/A"     // Missing optional field
	UnknownLicense = "Unknown" // Missing or unusable license
)

// Ecosystem tags a package universe.
type Ecosystem string

// Supported ecosystems.
const (
	PyPI  Ecosystem = "PyPI"
	NuGet Ecosystem = "NuGet"
	NPM   Ecosystem = "npm"
	Ruby  Ecosystem = "Ruby"
	PHP   Ecosystem = "PHP"
	Rust  Ecosystem = "Rust"
)

// Ecosystems lists the supported ecosystems in report order.
var Ecosystems = []Ecosystem{PyPI, NuGet, NPM, Ruby, PHP, Rust}

// ParseEcosystem matches s against the supported ecosystem tags, ignoring
// case. Aliases such as "python" are resolved by the languages package.
func ParseEcosystem(s string) (Ecosystem, error) {
	s = strings.TrimSpace(s)
	for _, e := range Ecosystems {
		if strings.EqualFold(s, string(e)) {
			return e, nil
		}
	}
	return "", errs.New(errs.ErrCodeInvalidEcosystem, "unknown ecosystem %q", s)
}

func (e Ecosystem) String() string { return string(e) }

// rank orders known ecosystems first, in [Ecosystems] order.
func (e Ecosystem) rank() int {
	if i := slices.Index(Ecosystems, e); i >= 0 {
		return i
	}
	return len(Ecosystems)
}

// PackageRef identifies one package to enrich.
type PackageRef struct {
	Ecosystem Ecosystem
	Name      string
}

func (r PackageRef) String() string { return string(r.Ecosystem) + ":" + r.Name }

// Inventory maps each ecosystem to the package names declared for it.
// Names may repeat; duplicates are enriched independently.
type Inventory map[Ecosystem][]string

// Add appends names under e, creating the key even when names is empty.
func (inv Inventory) Add(e Ecosystem, names ...string) {
	inv[e] = append(inv[e], names...)
}

// Len returns the total number of package names.
func (inv Inventory) Len() int {
	n := 0
	for _, names := range inv {
		n += len(names)
	}
	return n
}

// Refs flattens the inventory in ecosystem order, keeping list order.
func (inv Inventory) Refs() []PackageRef {
	var refs []PackageRef
	for _, e := range sortEcosystems(inv) {
		for _, name := range inv[e] {
			refs = append(refs, PackageRef{Ecosystem: e, Name: name})
		}
	}
	return refs
}

// PackageRecord is the enriched, display-ready description of one package.
//
// After normalization every string field is non-empty: missing values read
// [NotAvailable], and a missing license reads [UnknownLicense].
type PackageRecord struct {
	Ecosystem             Ecosystem `json:"ecosystem"`
	Name                  string    `json:"name"`
	Version               string    `json:"version"`
	Description           string    `json:"description"`
	Author                string    `json:"author"`
	License               string    `json:"license"`
	ProjectURL            string    `json:"project_url"`
	ReleaseDate           string    `json:"release_date"`
	PURL                  string    `json:"purl,omitempty"`
	HasKnownVulnerability bool      `json:"has_known_vulnerability"`
	Deprecated            bool      `json:"deprecated"`
}

// NormalizeLicense maps empty, blank and "N/A" licenses to [UnknownLicense]
// and trims everything else. It is idempotent.
func NormalizeLicense(license string) string {
	license = strings.TrimSpace(license)
	if license == "" || license == NotAvailable {
		return UnknownLicense
	}
	return license
}

// Normalize returns rec with every display field filled: blank strings
// become [NotAvailable] and the license goes through [NormalizeLicense].
func Normalize(rec PackageRecord) PackageRecord {
	rec.Name = orNA(rec.Name)
	rec.Version = orNA(rec.Version)
	rec.Description = orNA(rec.Description)
	rec.Author = orNA(rec.Author)
	rec.License = NormalizeLicense(rec.License)
	rec.ProjectURL = orNA(rec.ProjectURL)
	rec.ReleaseDate = orNA(rec.ReleaseDate)
	return rec
}

// orNA trims s and substitutes [NotAvailable] when nothing is left.
func orNA(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return NotAvailable
	}
	return s
}

// Report holds enriched records per ecosystem. Each list is in completion
// order; ecosystems whose packages all failed map to an empty list.
type Report map[Ecosystem][]PackageRecord

// Ecosystems returns the report's keys: supported ecosystems in their
// canonical order, then any others alphabetically.
func (r Report) Ecosystems() []Ecosystem {
	return sortEcosystems(r)
}

// Records flattens the report in [Report.Ecosystems] order.
func (r Report) Records() []PackageRecord {
	var out []PackageRecord
	for _, e := range r.Ecosystems() {
		out = append(out, r[e]...)
	}
	return out
}

// Len returns the total number of records.
func (r Report) Len() int {
	n := 0
	for _, recs := range r {
		n += len(recs)
	}
	return n
}

// Vulnerable returns the records flagged with a known vulnerability.
func (r Report) Vulnerable() []PackageRecord {
	var out []PackageRecord
	for _, rec := range r.Records() {
		if rec.HasKnownVulnerability {
			out = append(out, rec)
		}
	}
	return out
}

func sortEcosystems[V any](m map[Ecosystem]V) []Ecosystem {
	keys := make([]Ecosystem, 0, len(m))
	for e := range m {
		keys = append(keys, e)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := keys[i].rank(), keys[j].rank()
		if ri != rj {
			return ri < rj
		}
		return keys[i] < keys[j]
	})
	return keys
}
