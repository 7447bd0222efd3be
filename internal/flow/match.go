package flow

import (
	"strings"

	"migflow/internal/flow/models"
	pstrings "migflow/pkg/platform/strings"
)

// Matcher joins a caller's LocationRef to the upstream API's own location
// record. The two sides use different ID namespaces, so the join runs on
// names under an explicit, documented policy rather than an implicit one.
type Matcher interface {
	Match(requested models.LocationRef, available []models.LocationRef) (models.LocationRef, bool)
}

// MatchPolicy selects how location names are compared.
type MatchPolicy int

const (
	// MatchCaseInsensitive compares names case-insensitively. This mirrors
	// the upstream dataset, which is consistent about spacing but not about
	// casing. Production default.
	MatchCaseInsensitive MatchPolicy = iota
	// MatchExact compares names byte for byte.
	MatchExact
	// MatchNormalized folds case and collapses interior whitespace before
	// comparing. The loosest policy; use when callers hold display strings.
	MatchNormalized
)

// NameMatcher matches locations by name under a configurable policy.
type NameMatcher struct {
	Policy MatchPolicy
}

// Match returns the first available location whose name matches the requested
// one under the matcher's policy.
func (m NameMatcher) Match(requested models.LocationRef, available []models.LocationRef) (models.LocationRef, bool) {
	want := m.fold(requested.Name)
	for _, loc := range available {
		if m.fold(loc.Name) == want {
			return loc, true
		}
	}
	return models.LocationRef{}, false
}

func (m NameMatcher) fold(name string) string {
	switch m.Policy {
	case MatchExact:
		return name
	case MatchNormalized:
		return pstrings.Normalize(name)
	default:
		return strings.ToLower(name)
	}
}
