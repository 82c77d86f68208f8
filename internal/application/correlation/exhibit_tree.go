package correlation

import (
	"fmt"
	"sort"

	"github.com/BackCheck/justice-unveiled/internal/domain/claim"
	"github.com/BackCheck/justice-unveiled/internal/domain/evidence"
	"github.com/BackCheck/justice-unveiled/pkg/types/common"
	"github.com/BackCheck/justice-unveiled/pkg/types/legal"
)

// ExhibitNode is a leaf of the exhibit tree: one exhibit-numbered link.
type ExhibitNode struct {
	LinkID           common.ID      `json:"link_id"`
	ExhibitNumber    string         `json:"exhibit_number"`
	LinkType         legal.LinkType `json:"link_type"`
	UploadID         *common.ID     `json:"upload_id,omitempty"`
	ExtractedEventID *common.ID     `json:"extracted_event_id,omitempty"`
	DisplayName      string         `json:"display_name,omitempty"`
}

// ClaimNode groups a claim with its exhibit leaves.  A claim with no
// exhibit-numbered links keeps an empty Exhibits slice; it is never omitted.
type ClaimNode struct {
	ClaimID      common.ID         `json:"claim_id"`
	Allegation   string            `json:"allegation"`
	Status       legal.ClaimStatus `json:"status"`
	SupportScore int               `json:"support_score"`
	Exhibits     []ExhibitNode     `json:"exhibits"`
}

// SectionNode is the root level of the tree: one legal section within one
// framework, with all its claims.
type SectionNode struct {
	Label     string          `json:"label"`
	Section   string          `json:"section"`
	Framework legal.Framework `json:"framework"`
	Claims    []ClaimNode     `json:"claims"`
}

// BuildExhibitTree organizes claims and their exhibit-numbered links into
// the three-level section / claim / exhibit view.  Sections are keyed by
// (section, framework) and sorted lexicographically by label; within a
// section claims keep their input order; exhibit leaves only derive from
// links carrying an exhibit number.
//
// displayNames optionally maps artifact identifiers (upload or extracted
// event) to human-readable file names.  A pure in-memory transform, safe to
// rebuild on every filter change.
func BuildExhibitTree(claims []*claim.LegalClaim, links []*evidence.Link, displayNames map[common.ID]string) []SectionNode {
	linksByClaim := evidence.ByClaim(links)

	type sectionKey struct {
		section   string
		framework legal.Framework
	}
	index := make(map[sectionKey]int)
	var sections []SectionNode

	for _, c := range claims {
		key := sectionKey{section: c.LegalSection, framework: c.LegalFramework}
		pos, ok := index[key]
		if !ok {
			pos = len(sections)
			index[key] = pos
			sections = append(sections, SectionNode{
				Label:     sectionLabel(c.LegalSection, c.LegalFramework),
				Section:   c.LegalSection,
				Framework: c.LegalFramework,
			})
		}

		node := ClaimNode{
			ClaimID:      c.ID,
			Allegation:   c.Allegation,
			Status:       c.Status,
			SupportScore: c.SupportScore,
			Exhibits:     []ExhibitNode{},
		}
		for _, l := range linksByClaim[c.ID] {
			if !l.HasExhibitNumber() {
				continue
			}
			node.Exhibits = append(node.Exhibits, ExhibitNode{
				LinkID:           l.ID,
				ExhibitNumber:    *l.ExhibitNumber,
				LinkType:         l.LinkType,
				UploadID:         l.UploadID,
				ExtractedEventID: l.ExtractedEventID,
				DisplayName:      displayNameFor(l, displayNames),
			})
		}
		sections[pos].Claims = append(sections[pos].Claims, node)
	}

	sort.Slice(sections, func(i, j int) bool { return sections[i].Label < sections[j].Label })
	return sections
}

func sectionLabel(section string, framework legal.Framework) string {
	return fmt.Sprintf("%s (%s)", section, framework)
}

func displayNameFor(l *evidence.Link, names map[common.ID]string) string {
	if names == nil {
		return ""
	}
	if l.UploadID != nil {
		return names[*l.UploadID]
	}
	if l.ExtractedEventID != nil {
		return names[*l.ExtractedEventID]
	}
	return ""
}
