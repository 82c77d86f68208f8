package extraction

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BackCheck/justice-unveiled/internal/config"
	"github.com/BackCheck/justice-unveiled/internal/infrastructure/monitoring/logging"
	"github.com/BackCheck/justice-unveiled/pkg/errors"
	"github.com/BackCheck/justice-unveiled/pkg/types/common"
	"github.com/BackCheck/justice-unveiled/pkg/types/legal"
)

func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		resp := openai.ChatCompletionResponse{
			ID:    "chatcmpl-1",
			Model: "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: "assistant", Content: content}},
			},
			Usage: openai.Usage{TotalTokens: 42},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func newTestExtractor(t *testing.T, baseURL string) Extractor {
	t.Helper()
	ex, err := NewExtractor(config.ExtractionConfig{
		APIKey:         "test-key",
		BaseURL:        baseURL,
		Model:          "gpt-4o-mini",
		RequestTimeout: 5 * time.Second,
	}, logging.NewNopLogger())
	require.NoError(t, err)
	return ex
}

func TestNewExtractor_RequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := NewExtractor(config.ExtractionConfig{}, logging.NewNopLogger())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeExtractionUnavailable))
}

func TestExtract_ParsesClaimsAndEvents(t *testing.T) {
	payload := `{
		"claims": [
			{"claim_type": "criminal", "legal_section": "PPC 420", "framework": "pakistani", "allegation": "Cheating via forged agreement", "confidence": 0.9},
			{"legal_section": "UDHR Article 12", "framework": "international", "allegation": "Arbitrary interference with privacy", "confidence": 1.4}
		],
		"events": [
			{"title": "FIR registered", "description": "Complainant filed FIR at Clifton PS", "event_date": "2024-03-15", "actors": ["Complainant"], "confidence": 0.8},
			{"title": "Asset seizure", "event_date": "not-a-date", "confidence": -0.3}
		]
	}`
	server := chatServer(t, payload)
	defer server.Close()

	ex := newTestExtractor(t, server.URL)
	result, err := ex.Extract(context.Background(), Input{
		CaseID:   "HRPM-001",
		UploadID: common.NewID(),
		Text:     "The accused obtained the property through a forged agreement.",
	})
	require.NoError(t, err)

	require.Len(t, result.Claims, 2)
	assert.Equal(t, legal.ClaimTypeCriminal, result.Claims[0].ClaimType)
	assert.Equal(t, "PPC 420", result.Claims[0].LegalSection)
	assert.Equal(t, legal.FrameworkPakistani, result.Claims[0].Framework)
	assert.Equal(t, legal.FrameworkInternational, result.Claims[1].Framework)
	assert.Equal(t, 1.0, result.Claims[1].Confidence, "confidence is clamped to [0,1]")

	require.Len(t, result.Events, 2)
	assert.Equal(t, "FIR registered", result.Events[0].Title)
	require.NotNil(t, result.Events[0].EventDate)
	assert.Equal(t, "2024-03-15", result.Events[0].EventDate.Format("2006-01-02"))
	assert.Nil(t, result.Events[1].EventDate, "unparseable dates are dropped")
	assert.Equal(t, 0.0, result.Events[1].Confidence)

	assert.Equal(t, "gpt-4o-mini", result.Model)
	assert.Equal(t, 42, result.TokensUsed)
	assert.False(t, result.Truncated)
}

func TestExtract_DropsIncompleteEntries(t *testing.T) {
	payload := `{
		"claims": [
			{"claim_type": "criminal", "legal_section": "", "framework": "pakistani", "allegation": "No section"},
			{"claim_type": "hearsay", "legal_section": "PPC 420", "framework": "pakistani", "allegation": "Bad type"},
			{"claim_type": "criminal", "legal_section": "PPC 420", "framework": "martian", "allegation": "Bad framework"}
		],
		"events": [{"title": "   "}]
	}`
	server := chatServer(t, payload)
	defer server.Close()

	ex := newTestExtractor(t, server.URL)
	result, err := ex.Extract(context.Background(), Input{UploadID: common.NewID(), Text: "text"})
	require.NoError(t, err)
	assert.Empty(t, result.Claims)
	assert.Empty(t, result.Events)
}

func TestExtract_MalformedPayload(t *testing.T) {
	server := chatServer(t, "I could not find any claims in this document.")
	defer server.Close()

	ex := newTestExtractor(t, server.URL)
	_, err := ex.Extract(context.Background(), Input{UploadID: common.NewID(), Text: "text"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeExtractionBadPayload))
}

func TestExtract_MarkdownFencedPayload(t *testing.T) {
	server := chatServer(t, "```json\n{\"claims\": [], \"events\": [{\"title\": \"Hearing adjourned\", \"confidence\": 0.5}]}\n```")
	defer server.Close()

	ex := newTestExtractor(t, server.URL)
	result, err := ex.Extract(context.Background(), Input{UploadID: common.NewID(), Text: "text"})
	require.NoError(t, err)
	require.Len(t, result.Events, 1)
	assert.Equal(t, "Hearing adjourned", result.Events[0].Title)
}

func TestExtract_EmptyText(t *testing.T) {
	t.Parallel()

	ex := newTestExtractor(t, "http://localhost:0")
	_, err := ex.Extract(context.Background(), Input{UploadID: common.NewID(), Text: "   "})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestExtract_TruncatesLongInput(t *testing.T) {
	var captured string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		captured = req.Messages[len(req.Messages)-1].Content
		resp := openai.ChatCompletionResponse{
			Model: "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: `{"claims":[],"events":[]}`}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	ex, err := NewExtractor(config.ExtractionConfig{
		APIKey:        "test-key",
		BaseURL:       server.URL,
		MaxInputChars: 10,
	}, logging.NewNopLogger())
	require.NoError(t, err)

	result, err := ex.Extract(context.Background(), Input{
		UploadID: common.NewID(),
		Text:     "0123456789 this part is cut off",
	})
	require.NoError(t, err)
	assert.True(t, result.Truncated)
	assert.Equal(t, "0123456789", captured)
}
