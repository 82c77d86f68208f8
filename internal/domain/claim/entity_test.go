package claim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/BackCheck/justice-unveiled/pkg/errors"
	"github.com/BackCheck/justice-unveiled/pkg/types/legal"
)

func TestNewLegalClaim(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		caseID     string
		claimType  legal.ClaimType
		section    string
		framework  legal.Framework
		allegation string
		wantCode   apperrors.ErrorCode
	}{
		{
			name:       "valid pakistani criminal claim",
			caseID:     "HRPM-001",
			claimType:  legal.ClaimTypeCriminal,
			section:    "PPC 420",
			framework:  legal.FrameworkPakistani,
			allegation: "Fabricated loan documents were used to extort payment",
		},
		{
			name:       "valid international claim without type",
			caseID:     "HRPM-001",
			section:    "ICCPR Art 9",
			framework:  legal.FrameworkInternational,
			allegation: "Detention without judicial order for eleven days",
		},
		{
			name:       "empty section rejected",
			claimType:  legal.ClaimTypeCriminal,
			section:    "   ",
			framework:  legal.FrameworkPakistani,
			allegation: "some allegation",
			wantCode:   apperrors.ErrCodeClaimInvalidSection,
		},
		{
			name:      "empty allegation rejected",
			claimType: legal.ClaimTypeCriminal,
			section:   "PPC 420",
			framework: legal.FrameworkPakistani,
			wantCode:  apperrors.ErrCodeClaimEmptyAllegation,
		},
		{
			name:       "unknown framework rejected",
			claimType:  legal.ClaimTypeCriminal,
			section:    "PPC 420",
			framework:  legal.Framework("martian"),
			allegation: "some allegation",
			wantCode:   apperrors.ErrCodeClaimInvalidFramework,
		},
		{
			name:       "pakistani claim without type rejected",
			section:    "PPC 420",
			framework:  legal.FrameworkPakistani,
			allegation: "some allegation",
			wantCode:   apperrors.ErrCodeClaimInvalidType,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := NewLegalClaim(tt.caseID, tt.claimType, tt.section, tt.framework, tt.allegation)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, apperrors.GetCode(err))
				return
			}
			require.NoError(t, err)
			assert.NoError(t, c.ID.Validate())
			assert.Equal(t, legal.StatusUnverified, c.Status)
			assert.Zero(t, c.SupportScore)
		})
	}
}

func TestNewLegalClaim_InternationalDiscardsClaimType(t *testing.T) {
	t.Parallel()

	c, err := NewLegalClaim("HRPM-001", legal.ClaimTypeCriminal, "UDHR Art 9", legal.FrameworkInternational, "arbitrary detention")
	require.NoError(t, err)
	assert.Empty(t, c.ClaimType)
}

func TestApplyDerivation(t *testing.T) {
	t.Parallel()

	c, err := NewLegalClaim("HRPM-001", legal.ClaimTypeCriminal, "PPC 420", legal.FrameworkPakistani, "allegation")
	require.NoError(t, err)
	before := c.UpdatedAt

	c.ApplyDerivation(Derivation{Status: legal.StatusSupported, Score: 88})
	assert.Equal(t, legal.StatusSupported, c.Status)
	assert.Equal(t, 88, c.SupportScore)
	assert.True(t, !c.UpdatedAt.Before(before))

	// Unchanged derivation does not bump the timestamp.
	stamp := c.UpdatedAt
	c.ApplyDerivation(Derivation{Status: legal.StatusSupported, Score: 88})
	assert.Equal(t, stamp, c.UpdatedAt)
}

func TestFilter(t *testing.T) {
	t.Parallel()

	mk := func(allegation string, ct legal.ClaimType, fw legal.Framework, status legal.ClaimStatus) *LegalClaim {
		section := "PPC 420"
		if fw == legal.FrameworkInternational {
			section = "UDHR Art 9"
		}
		c, err := NewLegalClaim("HRPM-001", ct, section, fw, allegation)
		require.NoError(t, err)
		c.Status = status
		return c
	}

	claims := []*LegalClaim{
		mk("Forged loan agreement presented to FIA", legal.ClaimTypeCriminal, legal.FrameworkPakistani, legal.StatusSupported),
		mk("Harassment campaign on social media", legal.ClaimTypeRegulatory, legal.FrameworkPakistani, legal.StatusUnsupported),
		mk("Arbitrary detention without warrant", "", legal.FrameworkInternational, legal.StatusUnverified),
	}

	t.Run("wildcards match everything", func(t *testing.T) {
		t.Parallel()
		assert.Len(t, Filter{ClaimType: "all", Status: "all"}.Apply(claims), 3)
		assert.Len(t, Filter{}.Apply(claims), 3)
	})

	t.Run("search is case-insensitive substring", func(t *testing.T) {
		t.Parallel()
		got := Filter{Search: "fOrGeD"}.Apply(claims)
		require.Len(t, got, 1)
		assert.Contains(t, got[0].Allegation, "Forged")
	})

	t.Run("filter by claim type", func(t *testing.T) {
		t.Parallel()
		got := Filter{ClaimType: "regulatory"}.Apply(claims)
		require.Len(t, got, 1)
		assert.Equal(t, legal.ClaimTypeRegulatory, got[0].ClaimType)
	})

	t.Run("filter by status", func(t *testing.T) {
		t.Parallel()
		got := Filter{Status: "unsupported"}.Apply(claims)
		require.Len(t, got, 1)
	})

	t.Run("filter by framework", func(t *testing.T) {
		t.Parallel()
		got := Filter{Framework: "international"}.Apply(claims)
		require.Len(t, got, 1)
	})

	t.Run("predicates compose", func(t *testing.T) {
		t.Parallel()
		got := Filter{Search: "detention", Framework: "pakistani"}.Apply(claims)
		assert.Empty(t, got)
	})
}
