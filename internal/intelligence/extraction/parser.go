package extraction

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/BackCheck/justice-unveiled/pkg/errors"
	"github.com/BackCheck/justice-unveiled/pkg/types/legal"
)

// EventCandidate is an event suggestion produced by the extraction model.
type EventCandidate struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	EventDate   *time.Time `json:"event_date,omitempty"`
	Actors      []string   `json:"actors,omitempty"`
	Confidence  float64    `json:"confidence"`
}

type rawPayload struct {
	Claims []rawClaim `json:"claims"`
	Events []rawEvent `json:"events"`
}

type rawClaim struct {
	ClaimType    string  `json:"claim_type"`
	LegalSection string  `json:"legal_section"`
	Framework    string  `json:"framework"`
	Allegation   string  `json:"allegation"`
	Confidence   float64 `json:"confidence"`
}

type rawEvent struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	EventDate   string   `json:"event_date"`
	Actors      []string `json:"actors"`
	Confidence  float64  `json:"confidence"`
}

// Date layouts the model is allowed to emit, most specific first.
var eventDateLayouts = []string{time.RFC3339, "2006-01-02"}

// parsePayload decodes the model's JSON answer into a Result. Unparseable
// JSON is an AI_003 error. Individual entries missing required fields are
// dropped rather than failing the whole response.
func parsePayload(content string) (*Result, error) {
	content = strings.TrimSpace(content)
	// Some models wrap JSON in markdown fences despite the response format.
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var raw rawPayload
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeExtractionBadPayload, "extraction response is not valid JSON")
	}

	result := &Result{
		Claims: make([]SuggestedClaim, 0, len(raw.Claims)),
		Events: make([]EventCandidate, 0, len(raw.Events)),
	}

	for _, rc := range raw.Claims {
		framework := legal.Framework(strings.ToLower(strings.TrimSpace(rc.Framework)))
		section := strings.TrimSpace(rc.LegalSection)
		allegation := strings.TrimSpace(rc.Allegation)
		if section == "" || allegation == "" || !framework.IsValid() {
			continue
		}
		claimType := legal.ClaimType(strings.ToLower(strings.TrimSpace(rc.ClaimType)))
		if framework == legal.FrameworkPakistani && !claimType.IsValid() {
			continue
		}
		result.Claims = append(result.Claims, SuggestedClaim{
			ClaimType:    claimType,
			LegalSection: section,
			Framework:    framework,
			Allegation:   allegation,
			Confidence:   clampConfidence(rc.Confidence),
		})
	}

	for _, re := range raw.Events {
		title := strings.TrimSpace(re.Title)
		if title == "" {
			continue
		}
		result.Events = append(result.Events, EventCandidate{
			Title:       title,
			Description: strings.TrimSpace(re.Description),
			EventDate:   parseEventDate(re.EventDate),
			Actors:      re.Actors,
			Confidence:  clampConfidence(re.Confidence),
		})
	}

	return result, nil
}

func parseEventDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
