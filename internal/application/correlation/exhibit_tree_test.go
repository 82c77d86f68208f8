package correlation

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BackCheck/justice-unveiled/internal/domain/claim"
	"github.com/BackCheck/justice-unveiled/internal/domain/evidence"
	"github.com/BackCheck/justice-unveiled/pkg/types/common"
	"github.com/BackCheck/justice-unveiled/pkg/types/legal"
)

func exhibitLink(t *testing.T, c *claim.LegalClaim, label string, uploadID *common.ID) *evidence.Link {
	t.Helper()
	l, err := evidence.NewLink(c.ID, uploadID, nil, legal.LinkExhibit, "analyst-1")
	require.NoError(t, err)
	l.SetExhibitNumber(label)
	return l
}

func TestBuildExhibitTree_EveryClaimAppearsExactlyOnce(t *testing.T) {
	t.Parallel()

	claims := []*claim.LegalClaim{
		mustClaim(t, "HRPM-001", legal.ClaimTypeCriminal, "PPC 420", legal.FrameworkPakistani),
		mustClaim(t, "HRPM-001", legal.ClaimTypeCriminal, "PPC 420", legal.FrameworkPakistani),
		mustClaim(t, "HRPM-001", legal.ClaimTypeCivil, "Contract Act 73", legal.FrameworkPakistani),
		mustClaim(t, "HRPM-001", "", "UDHR Art 9", legal.FrameworkInternational),
	}

	tree := BuildExhibitTree(claims, nil, nil)

	seen := make(map[common.ID]int)
	total := 0
	for _, section := range tree {
		for _, node := range section.Claims {
			seen[node.ClaimID]++
			total++
		}
	}
	assert.Equal(t, len(claims), total)
	for _, c := range claims {
		assert.Equal(t, 1, seen[c.ID])
	}
}

func TestBuildExhibitTree_SectionsKeyedBySectionAndFramework(t *testing.T) {
	t.Parallel()

	// The same section code under two frameworks forms two sections.
	pk := mustClaim(t, "HRPM-001", legal.ClaimTypeCriminal, "Art 9", legal.FrameworkPakistani)
	intl := mustClaim(t, "HRPM-001", "", "Art 9", legal.FrameworkInternational)

	tree := BuildExhibitTree([]*claim.LegalClaim{pk, intl}, nil, nil)
	require.Len(t, tree, 2)
	assert.NotEqual(t, tree[0].Framework, tree[1].Framework)
}

func TestBuildExhibitTree_SectionsSortedByLabel(t *testing.T) {
	t.Parallel()

	claims := []*claim.LegalClaim{
		mustClaim(t, "HRPM-001", legal.ClaimTypeRegulatory, "PECA 20", legal.FrameworkPakistani),
		mustClaim(t, "HRPM-001", legal.ClaimTypeCriminal, "PPC 420", legal.FrameworkPakistani),
		mustClaim(t, "HRPM-001", legal.ClaimTypeCivil, "Contract Act 73", legal.FrameworkPakistani),
	}

	tree := BuildExhibitTree(claims, nil, nil)
	assert.True(t, sort.SliceIsSorted(tree, func(i, j int) bool {
		return tree[i].Label < tree[j].Label
	}))
}

func TestBuildExhibitTree_OnlyExhibitNumberedLinksBecomeLeaves(t *testing.T) {
	t.Parallel()

	c := mustClaim(t, "HRPM-001", legal.ClaimTypeCriminal, "PPC 420", legal.FrameworkPakistani)

	// Three links, one exhibit-numbered: exactly one leaf.
	plain := mustLink(t, c, legal.LinkSupports)
	contradicting := mustLink(t, c, legal.LinkContradicts)
	numbered := exhibitLink(t, c, "Exhibit A-3", nil)

	tree := BuildExhibitTree([]*claim.LegalClaim{c}, []*evidence.Link{plain, contradicting, numbered}, nil)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Claims, 1)
	require.Len(t, tree[0].Claims[0].Exhibits, 1)
	assert.Equal(t, "Exhibit A-3", tree[0].Claims[0].Exhibits[0].ExhibitNumber)
	assert.Equal(t, numbered.ID, tree[0].Claims[0].Exhibits[0].LinkID)
}

func TestBuildExhibitTree_ClaimWithoutExhibitsKeepsEmptyList(t *testing.T) {
	t.Parallel()

	c := mustClaim(t, "HRPM-001", legal.ClaimTypeCriminal, "PPC 420", legal.FrameworkPakistani)
	links := []*evidence.Link{mustLink(t, c, legal.LinkSupports)}

	tree := BuildExhibitTree([]*claim.LegalClaim{c}, links, nil)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Claims, 1)
	assert.NotNil(t, tree[0].Claims[0].Exhibits)
	assert.Empty(t, tree[0].Claims[0].Exhibits)
}

func TestBuildExhibitTree_DisplayNamesResolve(t *testing.T) {
	t.Parallel()

	c := mustClaim(t, "HRPM-001", legal.ClaimTypeCriminal, "PPC 420", legal.FrameworkPakistani)
	uploadID := common.NewID()
	l := exhibitLink(t, c, "Exhibit B-1", &uploadID)

	tree := BuildExhibitTree([]*claim.LegalClaim{c}, []*evidence.Link{l},
		map[common.ID]string{uploadID: "fir_scan.pdf"})
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Claims[0].Exhibits, 1)
	assert.Equal(t, "fir_scan.pdf", tree[0].Claims[0].Exhibits[0].DisplayName)
}

func TestBuildExhibitTree_ClaimsKeepInputOrderWithinSection(t *testing.T) {
	t.Parallel()

	first := mustClaim(t, "HRPM-001", legal.ClaimTypeCriminal, "PPC 420", legal.FrameworkPakistani)
	second := mustClaim(t, "HRPM-001", legal.ClaimTypeCriminal, "PPC 420", legal.FrameworkPakistani)

	tree := BuildExhibitTree([]*claim.LegalClaim{first, second}, nil, nil)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Claims, 2)
	assert.Equal(t, first.ID, tree[0].Claims[0].ClaimID)
	assert.Equal(t, second.ID, tree[0].Claims[1].ClaimID)
}
