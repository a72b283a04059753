// Package license summarizes the licenses of an enriched report and flags
// pairs that may not be combined.
//
// Compatibility is a deliberately small allow-list: identical licenses are
// compatible, as are the permissive pairs MIT/Apache-2.0, MIT/BSD-3-Clause
// and Apache-2.0/BSD-3-Clause. Every other pair of distinct known licenses
// is reported as a potential incompatibility. Unknown licenses are never
// compared; they are listed separately.
package license

import (
	"github.com/matzehuels/techdd/pkg/deps"
)

// Unknown is the normalized name of a missing license.
const Unknown = deps.UnknownLicense

type pair struct{ a, b string }

var compatible = map[pair]bool{
	{"MIT", "Apache-2.0"}:          true,
	{"MIT", "BSD-3-Clause"}:        true,
	{"Apache-2.0", "BSD-3-Clause"}: true,
}

// Normalize maps missing licenses to [Unknown]. It is idempotent.
func Normalize(l string) string { return deps.NormalizeLicense(l) }

// Compatible reports whether packages under a and b may be combined.
// It is symmetric, and false whenever either license is unknown.
func Compatible(a, b string) bool {
	a, b = Normalize(a), Normalize(b)
	if a == Unknown || b == Unknown {
		return false
	}
	if a == b {
		return true
	}
	return compatible[pair{a, b}] || compatible[pair{b, a}]
}

// Conflict is a pair of licenses that may be incompatible, with every
// record carrying either of them.
type Conflict struct {
	A, B     string
	Affected []deps.PackageRecord
}

// Summary is the license view of a report.
type Summary struct {
	// Counts maps each normalized license, including Unknown, to the
	// number of records carrying it.
	Counts map[string]int
	// Order lists the licenses of Counts in first-seen order.
	Order []string
	// Unknown holds the records whose license is Unknown.
	Unknown []deps.PackageRecord
	// Checked lists the known licenses that were compared pairwise.
	Checked []string
	// Conflicts lists the incompatible pairs among Checked.
	Conflicts []Conflict
}

// Analyze builds the license summary of report. Records are visited in
// [deps.Report.Ecosystems] order, then list order, so the result is
// deterministic for a given report.
//
// Only licenses carried by more than one record take part in the pairwise
// check. This mirrors the report format: a license held by a single
// package is listed in the summary but not compared.
func Analyze(report deps.Report) *Summary {
	s := &Summary{Counts: make(map[string]int)}
	records := report.Records()

	for _, rec := range records {
		l := Normalize(rec.License)
		if _, seen := s.Counts[l]; !seen {
			s.Order = append(s.Order, l)
		}
		s.Counts[l]++
		if l == Unknown {
			s.Unknown = append(s.Unknown, rec)
		}
	}

	for _, l := range s.Order {
		if l != Unknown && s.Counts[l] > 1 {
			s.Checked = append(s.Checked, l)
		}
	}

	for i, a := range s.Checked {
		for _, b := range s.Checked[i+1:] {
			if Compatible(a, b) {
				continue
			}
			c := Conflict{A: a, B: b}
			for _, rec := range records {
				if l := Normalize(rec.License); l == a || l == b {
					c.Affected = append(c.Affected, rec)
				}
			}
			s.Conflicts = append(s.Conflicts, c)
		}
	}
	return s
}

// Total returns the number of records summarized.
func (s *Summary) Total() int {
	n := 0
	for _, c := range s.Counts {
		n += c
	}
	return n
}

// Known returns the licenses of Order without Unknown.
func (s *Summary) Known() []string {
	out := make([]string, 0, len(s.Order))
	for _, l := range s.Order {
		if l != Unknown {
			out = append(out, l)
		}
	}
	return out
}
