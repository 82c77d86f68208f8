package evidence

import (
	"strings"
	"time"

	"github.com/BackCheck/justice-unveiled/pkg/errors"
	"github.com/BackCheck/justice-unveiled/pkg/types/common"
	"github.com/BackCheck/justice-unveiled/pkg/types/legal"
)

// Link associates one claim with one evidentiary artifact.  The artifact is
// either an uploaded document or an extracted event; a link with neither
// reference is conceptual (an argument noted without a concrete artifact).
type Link struct {
	ID               common.ID      `json:"id"`
	ClaimID          common.ID      `json:"claim_id"`
	UploadID         *common.ID     `json:"upload_id,omitempty"`
	ExtractedEventID *common.ID     `json:"extracted_event_id,omitempty"`
	LinkType         legal.LinkType `json:"link_type"`
	ExhibitNumber    *string        `json:"exhibit_number,omitempty"`
	RelevanceScore   float64        `json:"relevance_score"`
	Notes            string         `json:"notes,omitempty"`
	LinkedBy         common.ActorID `json:"linked_by,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}

// NewLink validates and constructs a Link.  At most one of uploadID and
// eventID may be set; both nil is allowed for conceptual links.
func NewLink(claimID common.ID, uploadID, eventID *common.ID, linkType legal.LinkType, linkedBy common.ActorID) (*Link, error) {
	if err := claimID.Validate(); err != nil {
		return nil, errors.InvalidParam("claim_id").WithDetail(err.Error())
	}
	if !linkType.IsValid() {
		return nil, errors.New(errors.ErrCodeLinkInvalidType, "unknown link type").
			WithDetail(string(linkType))
	}
	if uploadID != nil && eventID != nil {
		return nil, errors.New(errors.ErrCodeLinkAmbiguousArtifact,
			"a link references at most one artifact, got both an upload and an extracted event")
	}
	return &Link{
		ID:               common.NewID(),
		ClaimID:          claimID,
		UploadID:         uploadID,
		ExtractedEventID: eventID,
		LinkType:         linkType,
		LinkedBy:         linkedBy,
		CreatedAt:        time.Now().UTC(),
	}, nil
}

// HasExhibitNumber reports whether the link carries a non-empty exhibit
// label.  Only such links become exhibit leaves in the hierarchical view.
func (l *Link) HasExhibitNumber() bool {
	return l.ExhibitNumber != nil && strings.TrimSpace(*l.ExhibitNumber) != ""
}

// SetExhibitNumber attaches an exhibit label such as "Exhibit A-3".
func (l *Link) SetExhibitNumber(label string) {
	label = strings.TrimSpace(label)
	if label == "" {
		l.ExhibitNumber = nil
		return
	}
	l.ExhibitNumber = &label
}

// ByClaim groups links by their claim identifier, preserving input order
// within each group.
func ByClaim(links []*Link) map[common.ID][]*Link {
	out := make(map[common.ID][]*Link, len(links))
	for _, l := range links {
		out[l.ClaimID] = append(out[l.ClaimID], l)
	}
	return out
}
