package evidence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/BackCheck/justice-unveiled/pkg/errors"
	"github.com/BackCheck/justice-unveiled/pkg/types/common"
	"github.com/BackCheck/justice-unveiled/pkg/types/legal"
)

func TestNewRequirement(t *testing.T) {
	t.Parallel()

	r, err := NewRequirement("PPC 420", legal.FrameworkPakistani, "FIR copy", true)
	require.NoError(t, err)
	assert.True(t, r.Mandatory)
	assert.NoError(t, r.ID.Validate())

	_, err = NewRequirement("  ", legal.FrameworkPakistani, "FIR copy", true)
	assert.Equal(t, apperrors.ErrCodeClaimInvalidSection, apperrors.GetCode(err))

	_, err = NewRequirement("PPC 420", legal.Framework("martian"), "FIR copy", true)
	assert.Equal(t, apperrors.ErrCodeClaimInvalidFramework, apperrors.GetCode(err))

	_, err = NewRequirement("PPC 420", legal.FrameworkPakistani, "", true)
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetCode(err))
}

func TestRequirement_AppliesTo(t *testing.T) {
	t.Parallel()

	r, err := NewRequirement("PPC 420", legal.FrameworkPakistani, "FIR copy", true)
	require.NoError(t, err)

	assert.True(t, r.AppliesTo("PPC 420", legal.FrameworkPakistani))
	assert.True(t, r.AppliesTo("ppc 420", legal.FrameworkPakistani), "section match is case-insensitive")
	assert.False(t, r.AppliesTo("PPC 420", legal.FrameworkInternational))
	assert.False(t, r.AppliesTo("PPC 468", legal.FrameworkPakistani))
}

func TestFilterForClaim_And_MandatoryOf(t *testing.T) {
	t.Parallel()

	mk := func(section string, mandatory bool) *Requirement {
		r, err := NewRequirement(section, legal.FrameworkPakistani, "req for "+section, mandatory)
		require.NoError(t, err)
		return r
	}
	catalog := []*Requirement{
		mk("PPC 420", true),
		mk("PPC 420", false),
		mk("PPC 468", true),
	}

	applicable := FilterForClaim(catalog, "PPC 420", legal.FrameworkPakistani)
	require.Len(t, applicable, 2)

	mandatory := MandatoryOf(applicable)
	require.Len(t, mandatory, 1)
	assert.True(t, mandatory[0].Mandatory)
}

func TestNewLink(t *testing.T) {
	t.Parallel()

	claimID := common.NewID()
	uploadID := common.NewID()
	eventID := common.NewID()

	l, err := NewLink(claimID, &uploadID, nil, legal.LinkSupports, "analyst-1")
	require.NoError(t, err)
	assert.Equal(t, claimID, l.ClaimID)
	assert.NotNil(t, l.UploadID)
	assert.Nil(t, l.ExtractedEventID)
	assert.False(t, l.HasExhibitNumber())

	// Conceptual link: neither artifact reference set.
	l, err = NewLink(claimID, nil, nil, legal.LinkPartial, "")
	require.NoError(t, err)
	assert.Nil(t, l.UploadID)

	_, err = NewLink(claimID, &uploadID, &eventID, legal.LinkSupports, "")
	assert.Equal(t, apperrors.ErrCodeLinkAmbiguousArtifact, apperrors.GetCode(err))

	_, err = NewLink(claimID, nil, nil, legal.LinkType("proves"), "")
	assert.Equal(t, apperrors.ErrCodeLinkInvalidType, apperrors.GetCode(err))

	_, err = NewLink("not-a-uuid", nil, nil, legal.LinkSupports, "")
	assert.Error(t, err)
}

func TestLink_SetExhibitNumber(t *testing.T) {
	t.Parallel()

	l, err := NewLink(common.NewID(), nil, nil, legal.LinkExhibit, "")
	require.NoError(t, err)

	l.SetExhibitNumber("  Exhibit A-3 ")
	require.True(t, l.HasExhibitNumber())
	assert.Equal(t, "Exhibit A-3", *l.ExhibitNumber)

	l.SetExhibitNumber("")
	assert.False(t, l.HasExhibitNumber())
}

func TestByClaim_GroupsAndPreservesOrder(t *testing.T) {
	t.Parallel()

	a, b := common.NewID(), common.NewID()
	first, err := NewLink(a, nil, nil, legal.LinkSupports, "")
	require.NoError(t, err)
	second, err := NewLink(a, nil, nil, legal.LinkContradicts, "")
	require.NoError(t, err)
	other, err := NewLink(b, nil, nil, legal.LinkSupports, "")
	require.NoError(t, err)

	grouped := ByClaim([]*Link{first, other, second})
	require.Len(t, grouped[a], 2)
	assert.Equal(t, first.ID, grouped[a][0].ID)
	assert.Equal(t, second.ID, grouped[a][1].ID)
	require.Len(t, grouped[b], 1)
}

func TestResolveAuthoritative_MostRecentWins(t *testing.T) {
	t.Parallel()

	claimID := common.NewID()
	reqID := common.NewID()

	older, err := NewFulfillment(claimID, reqID, false, nil, "analyst-1")
	require.NoError(t, err)
	older.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	newer, err := NewFulfillment(claimID, reqID, true, nil, "analyst-2")
	require.NoError(t, err)
	newer.CreatedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	// Out-of-order history still resolves to the newest record.
	resolved := ResolveAuthoritative([]*Fulfillment{newer, older})
	assert.True(t, IsFulfilled(resolved, claimID, reqID))

	resolved = ResolveAuthoritative([]*Fulfillment{older, newer})
	assert.True(t, IsFulfilled(resolved, claimID, reqID))
}

func TestResolveAuthoritative_TimestampTieFallsToInputOrder(t *testing.T) {
	t.Parallel()

	claimID := common.NewID()
	reqID := common.NewID()
	ts := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	first, err := NewFulfillment(claimID, reqID, true, nil, "")
	require.NoError(t, err)
	first.CreatedAt = ts
	second, err := NewFulfillment(claimID, reqID, false, nil, "")
	require.NoError(t, err)
	second.CreatedAt = ts

	resolved := ResolveAuthoritative([]*Fulfillment{first, second})
	assert.False(t, IsFulfilled(resolved, claimID, reqID), "later entry wins the tie")
}

func TestIsFulfilled_AbsentRecordsAreUnfulfilled(t *testing.T) {
	t.Parallel()

	resolved := ResolveAuthoritative(nil)
	assert.False(t, IsFulfilled(resolved, common.NewID(), common.NewID()))
}

func TestNewFulfillment_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewFulfillment("bad", common.NewID(), true, nil, "")
	assert.Error(t, err)
	_, err = NewFulfillment(common.NewID(), "", true, nil, "")
	assert.Error(t, err)
}
