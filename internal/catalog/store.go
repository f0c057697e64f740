// Package catalog persists job openings grouped by district.
package catalog

import (
	"slices"
	"sort"
)

// CanonicalDistricts lists every district in canonical display order.
// Operator views iterate this slice, not map keys, so rendering is stable.
var CanonicalDistricts = []string{
	"Arnasoy tumani", "Baxmal tumani", "Do'stlik", "G'allaorol", "Jizzax shahar",
	"Sharof Rashidov", "Zafarobod", "Zarbdor", "Zomin", "Mirzacho'l",
	"Paxtakor", "Forish", "Yangiobod",
}

// Catalog maps a district name to its job titles in insertion order.
type Catalog map[string][]string

// Store is the durable backend for the openings catalog.
// Append reports false for a duplicate (district, title) pair without error.
// Clear returns the number of removed titles, zero when the district is
// absent or already empty.
type Store interface {
	// Reload re-reads the durable copy and returns the current catalog.
	// Backend corruption yields an empty catalog, never an error.
	Reload() Catalog
	Append(district, title string) (bool, error)
	Clear(district string) (int, error)
	Jobs(district string) []string
	DistrictsWithOpenings() []string
	ReplaceAll(c Catalog) error
}

// Clone returns a deep copy so callers cannot mutate store internals.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for district, jobs := range c {
		out[district] = slices.Clone(jobs)
	}
	return out
}

// SortedJobs returns the district's titles alphabetized for display.
// Insertion order in the underlying catalog is left untouched.
func (c Catalog) SortedJobs(district string) []string {
	jobs := slices.Clone(c[district])
	sort.Strings(jobs)
	return jobs
}

// districtsWithOpenings filters canonical districts down to those holding
// at least one title. Districts unknown to the canonical list are appended
// alphabetically after the canonical ones.
func (c Catalog) districtsWithOpenings() []string {
	var out []string
	seen := make(map[string]struct{}, len(c))
	for _, district := range CanonicalDistricts {
		seen[district] = struct{}{}
		if len(c[district]) > 0 {
			out = append(out, district)
		}
	}
	var extra []string
	for district, jobs := range c {
		if _, ok := seen[district]; ok || len(jobs) == 0 {
			continue
		}
		extra = append(extra, district)
	}
	sort.Strings(extra)
	return append(out, extra...)
}
