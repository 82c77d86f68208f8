package claim

import (
	"strings"

	"github.com/BackCheck/justice-unveiled/pkg/types/legal"
)

// FilterAll is the wildcard value for the type and status filters.
const FilterAll = "all"

// Filter narrows a claim list.  Zero values and "all" match everything.
type Filter struct {
	// Search matches case-insensitively against the allegation text.
	Search string
	// ClaimType is a concrete type or "all".
	ClaimType string
	// Status is a concrete status or "all".
	Status string
	// Framework is a concrete framework or "all".
	Framework string
}

// Matches reports whether the claim passes every predicate of the filter.
func (f Filter) Matches(c *LegalClaim) bool {
	if s := strings.TrimSpace(f.Search); s != "" {
		if !strings.Contains(strings.ToLower(c.Allegation), strings.ToLower(s)) {
			return false
		}
	}
	if !wildcard(f.ClaimType) && c.ClaimType != legal.ClaimType(f.ClaimType) {
		return false
	}
	if !wildcard(f.Status) && c.Status != legal.ClaimStatus(f.Status) {
		return false
	}
	if !wildcard(f.Framework) && c.LegalFramework != legal.Framework(f.Framework) {
		return false
	}
	return true
}

// Apply returns the claims that pass the filter, preserving input order.
func (f Filter) Apply(claims []*LegalClaim) []*LegalClaim {
	var out []*LegalClaim
	for _, c := range claims {
		if f.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}

func wildcard(v string) bool {
	return v == "" || strings.EqualFold(v, FilterAll)
}
