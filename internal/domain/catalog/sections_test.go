package catalog

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BackCheck/justice-unveiled/pkg/types/legal"
)

func TestSections_FilterByFramework(t *testing.T) {
	t.Parallel()

	intl := Sections(legal.FrameworkInternational, "")
	require.NotEmpty(t, intl)
	for _, s := range intl {
		assert.Equal(t, legal.FrameworkInternational, s.Framework)
		assert.Empty(t, s.ClaimType, "international sections carry no claim type")
	}
}

func TestSections_FilterByClaimType(t *testing.T) {
	t.Parallel()

	criminal := Sections(legal.FrameworkPakistani, legal.ClaimTypeCriminal)
	require.NotEmpty(t, criminal)
	for _, s := range criminal {
		assert.Equal(t, legal.ClaimTypeCriminal, s.ClaimType)
	}

	all := Sections(legal.FrameworkPakistani, "")
	assert.Greater(t, len(all), len(criminal))
}

func TestSections_SortedByCode(t *testing.T) {
	t.Parallel()

	got := Sections(legal.FrameworkPakistani, "")
	assert.True(t, sort.SliceIsSorted(got, func(i, j int) bool {
		return got[i].Code < got[j].Code
	}))
}

func TestLookup(t *testing.T) {
	t.Parallel()

	s, ok := Lookup("PPC 420", legal.FrameworkPakistani)
	require.True(t, ok)
	assert.Equal(t, legal.ClaimTypeCriminal, s.ClaimType)
	assert.Contains(t, s.Title, "Cheating")

	// Case-insensitive.
	_, ok = Lookup("ppc 420", legal.FrameworkPakistani)
	assert.True(t, ok)

	// Wrong framework does not match.
	_, ok = Lookup("PPC 420", legal.FrameworkInternational)
	assert.False(t, ok)

	_, ok = Lookup("PPC 9999", legal.FrameworkPakistani)
	assert.False(t, ok)
}

func TestKnownSection(t *testing.T) {
	t.Parallel()

	assert.True(t, KnownSection("ICCPR Art 14", legal.FrameworkInternational))
	assert.False(t, KnownSection("ICCPR Art 99", legal.FrameworkInternational))
}
