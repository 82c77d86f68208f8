package legal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFramework_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, FrameworkPakistani.IsValid())
	assert.True(t, FrameworkInternational.IsValid())
	assert.False(t, Framework("european").IsValid())
	assert.False(t, Framework("").IsValid())
}

func TestClaimType_IsValid(t *testing.T) {
	t.Parallel()

	for _, ct := range []ClaimType{ClaimTypeCriminal, ClaimTypeRegulatory, ClaimTypeCivil} {
		assert.True(t, ct.IsValid(), string(ct))
	}
	assert.False(t, ClaimType("administrative").IsValid())
}

func TestClaimStatus_IsValid(t *testing.T) {
	t.Parallel()

	for _, s := range AllStatuses() {
		assert.True(t, s.IsValid(), string(s))
	}
	assert.False(t, ClaimStatus("pending").IsValid())
}

func TestAllStatuses_CoversEveryStatus(t *testing.T) {
	t.Parallel()

	assert.Len(t, AllStatuses(), 4)
	assert.Contains(t, AllStatuses(), StatusUnverified)
	assert.Contains(t, AllStatuses(), StatusPartiallySupported)
}

func TestLinkType_IsValid(t *testing.T) {
	t.Parallel()

	for _, lt := range []LinkType{LinkSupports, LinkContradicts, LinkPartial, LinkExhibit} {
		assert.True(t, lt.IsValid(), string(lt))
	}
	assert.False(t, LinkType("corroborates").IsValid())
}
