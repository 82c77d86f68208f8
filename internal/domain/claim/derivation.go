package claim

import (
	"math"

	"github.com/BackCheck/justice-unveiled/internal/domain/evidence"
	"github.com/BackCheck/justice-unveiled/pkg/types/common"
	"github.com/BackCheck/justice-unveiled/pkg/types/legal"
)

// Scoring weights.  The score blends how much of the mandatory requirement
// catalog is satisfied (fulfillment ratio) with how favourable the link mix
// is (link ratio).  Both components are monotonic: fulfilling a requirement
// or adding a supporting link never lowers the score, and a contradicting
// link never raises it.
const (
	fulfillmentWeight = 0.6
	linkMixWeight     = 0.4

	// partialLinkValue is the supporting weight of a partial or exhibit
	// link relative to a full supports link.
	partialLinkValue = 0.5

	// unverifiedScale scales the link ratio when no requirement catalog
	// exists for the claim's section, so unverified claims score in
	// [0, 40] and can never outrank a verified supported claim.
	unverifiedScale = 40

	// contradictedScale caps the score when every weighted link speaks
	// against the claim.
	contradictedScale = 30
)

// Derivation is the output of the status and score policy.
type Derivation struct {
	Status legal.ClaimStatus
	Score  int
}

// Derive computes a claim's status and support score from its links, the
// requirements applicable to its (section, framework) pair, and the
// authoritative fulfillment per requirement.  It is a pure function: same
// inputs, same output, no side effects, safe to re-run on every read.
//
// Policy, in evaluation order:
//
//  1. No links at all: unsupported, score 0.
//  2. No requirement catalog for the section: unverified; the link mix
//     alone scores the claim, scaled to [0, 40].
//  3. Weighted links all contradict: unsupported, scored only by the
//     fulfillment ratio, scaled to [0, 30].
//  4. Every mandatory requirement fulfilled, at least one supports link,
//     no contradicts link: supported.
//  5. Anything else, including any claim with a contradicts link:
//     partially_supported.
//
// In cases 4 and 5 the score is
// round(100 * (0.6*fulfillmentRatio + 0.4*linkRatio)).  The fulfillment
// ratio is fulfilledMandatory/totalMandatory, or 1 when the catalog has no
// mandatory entries.  The link ratio is pos/(pos+neg) with
// pos = supports + 0.5*(partial+exhibit) and neg = contradicts.
func Derive(c *LegalClaim, links []*evidence.Link, applicable []*evidence.Requirement, resolved map[common.ID]map[common.ID]*evidence.Fulfillment) Derivation {
	if len(links) == 0 {
		return Derivation{Status: legal.StatusUnsupported, Score: 0}
	}

	var supports, contradicts, partialish int
	for _, l := range links {
		switch l.LinkType {
		case legal.LinkSupports:
			supports++
		case legal.LinkContradicts:
			contradicts++
		case legal.LinkPartial, legal.LinkExhibit:
			partialish++
		}
	}
	pos := float64(supports) + partialLinkValue*float64(partialish)
	neg := float64(contradicts)

	linkRatio := 0.0
	if pos+neg > 0 {
		linkRatio = pos / (pos + neg)
	}

	if len(applicable) == 0 {
		// No catalog to verify against; the claim cannot leave
		// unverified however favourable its links are.
		return Derivation{
			Status: legal.StatusUnverified,
			Score:  roundScore(unverifiedScale * linkRatio),
		}
	}

	mandatory := evidence.MandatoryOf(applicable)
	fulfilled := 0
	for _, r := range mandatory {
		if evidence.IsFulfilled(resolved, c.ID, r.ID) {
			fulfilled++
		}
	}
	fulfillmentRatio := 1.0
	if len(mandatory) > 0 {
		fulfillmentRatio = float64(fulfilled) / float64(len(mandatory))
	}

	if neg > 0 && pos == 0 {
		return Derivation{
			Status: legal.StatusUnsupported,
			Score:  roundScore(contradictedScale * fulfillmentRatio),
		}
	}

	score := roundScore(100 * (fulfillmentWeight*fulfillmentRatio + linkMixWeight*linkRatio))

	if fulfilled == len(mandatory) && supports > 0 && contradicts == 0 {
		return Derivation{Status: legal.StatusSupported, Score: score}
	}
	return Derivation{Status: legal.StatusPartiallySupported, Score: score}
}

// HasMissingMandatoryEvidence reports whether the claim has at least one
// mandatory requirement with no fulfilled authoritative record.
func HasMissingMandatoryEvidence(c *LegalClaim, applicable []*evidence.Requirement, resolved map[common.ID]map[common.ID]*evidence.Fulfillment) bool {
	for _, r := range evidence.MandatoryOf(applicable) {
		if !evidence.IsFulfilled(resolved, c.ID, r.ID) {
			return true
		}
	}
	return false
}

func roundScore(v float64) int {
	s := int(math.Round(v))
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
