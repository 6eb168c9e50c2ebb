package selection

import (
	"sort"
	"strconv"
	"strings"

	"billsheet/config"
	"billsheet/timesheet"
)

// Candidate is one distinct person found in the records together with the
// default inclusion decision.
type Candidate struct {
	timesheet.Person
	Included bool `json:"included"`
}

// Set is a collection of person ids in canonical form.
type Set map[string]struct{}

func NewSet(ids ...string) Set {
	set := make(Set, len(ids))
	for _, id := range ids {
		set[timesheet.CanonicalID(id)] = struct{}{}
	}
	return set
}

func (s Set) Contains(id string) bool {
	_, ok := s[timesheet.CanonicalID(id)]
	return ok
}

// IDs returns the members sorted like candidates.
func (s Set) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return lessID(ids[i], ids[j]) })
	return ids
}

// DefaultIncluded reports whether id is selected before any operator
// override. The forced include list always wins over the exclusions.
func DefaultIncluded(id string, policy config.Selection) bool {
	canonical := timesheet.CanonicalID(id)
	for _, included := range policy.IncludedIDs {
		if timesheet.CanonicalID(included) == canonical {
			return true
		}
	}
	for _, prefix := range policy.ExcludedPrefixes {
		if prefix != "" && strings.HasPrefix(canonical, prefix) {
			return false
		}
	}
	for _, excluded := range policy.ExcludedIDs {
		if timesheet.CanonicalID(excluded) == canonical {
			return false
		}
	}
	return true
}

// Candidates lists the distinct persons in records sorted by id.
func Candidates(records []timesheet.Record, policy config.Selection) []Candidate {
	seen := make(map[timesheet.Person]struct{}, len(records))
	candidates := make([]Candidate, 0)
	for _, record := range records {
		person := record.Person()
		if _, ok := seen[person]; ok {
			continue
		}
		seen[person] = struct{}{}
		candidates = append(candidates, Candidate{
			Person:   person,
			Included: DefaultIncluded(person.ID, policy),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.ID != b.ID {
			return lessID(a.ID, b.ID)
		}
		return a.Name < b.Name
	})
	return candidates
}

// Resolve applies operator overrides on top of the default decisions and
// returns the selected ids. Overrides for unknown ids are ignored.
func Resolve(candidates []Candidate, overrides map[string]bool) Set {
	canonicalOverrides := make(map[string]bool, len(overrides))
	for id, include := range overrides {
		canonicalOverrides[timesheet.CanonicalID(id)] = include
	}

	selected := make(Set, len(candidates))
	for _, candidate := range candidates {
		id := timesheet.CanonicalID(candidate.ID)
		include := candidate.Included
		if override, ok := canonicalOverrides[id]; ok {
			include = override
		}
		if include {
			selected[id] = struct{}{}
		}
	}
	return selected
}

// Defaults returns the ids selected when the operator changes nothing.
func Defaults(candidates []Candidate) Set {
	return Resolve(candidates, nil)
}

// Filter keeps the records of selected persons in their original order.
func Filter(records []timesheet.Record, selected Set) []timesheet.Record {
	kept := make([]timesheet.Record, 0, len(records))
	for _, record := range records {
		if selected.Contains(record.PersonID) {
			kept = append(kept, record)
		}
	}
	return kept
}

// lessID orders integer ids numerically and anything else lexically.
func lessID(a, b string) bool {
	ai, aErr := strconv.ParseInt(timesheet.CanonicalID(a), 10, 64)
	bi, bErr := strconv.ParseInt(timesheet.CanonicalID(b), 10, 64)
	if aErr == nil && bErr == nil {
		if ai != bi {
			return ai < bi
		}
		return a < b
	}
	return a < b
}

// Overrides turns operator choices into toggles for Resolve. A non-empty
// only list selects exactly those ids; include and exclude then adjust the
// result, with exclude applied last.
func Overrides(candidates []Candidate, only, include, exclude []string) map[string]bool {
	overrides := make(map[string]bool, len(candidates))
	if len(only) > 0 {
		onlySet := NewSet(only...)
		for _, candidate := range candidates {
			overrides[timesheet.CanonicalID(candidate.ID)] = onlySet.Contains(candidate.ID)
		}
	}
	for _, id := range include {
		overrides[timesheet.CanonicalID(id)] = true
	}
	for _, id := range exclude {
		overrides[timesheet.CanonicalID(id)] = false
	}
	return overrides
}
