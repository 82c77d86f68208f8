// Package extraction turns raw document text into structured claim and
// event suggestions using a chat-completion model. The model output is
// advisory: callers decide which suggestions become persisted records.
package extraction

import (
	"context"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/BackCheck/justice-unveiled/internal/config"
	"github.com/BackCheck/justice-unveiled/internal/infrastructure/monitoring/logging"
	"github.com/BackCheck/justice-unveiled/pkg/errors"
	"github.com/BackCheck/justice-unveiled/pkg/types/common"
	"github.com/BackCheck/justice-unveiled/pkg/types/legal"
)

// SuggestedClaim is a claim candidate produced by the extraction model.
// It has not been validated against the claim constructor yet.
type SuggestedClaim struct {
	ClaimType    legal.ClaimType `json:"claim_type"`
	LegalSection string          `json:"legal_section"`
	Framework    legal.Framework `json:"framework"`
	Allegation   string          `json:"allegation"`
	Confidence   float64         `json:"confidence"`
}

// Result is the structured outcome of one extraction request.
type Result struct {
	Claims     []SuggestedClaim `json:"claims"`
	Events     []EventCandidate `json:"events"`
	Model      string           `json:"model"`
	TokensUsed int              `json:"tokens_used"`
	Truncated  bool             `json:"truncated"`
}

// Input carries the document text and its provenance.
type Input struct {
	CaseID   string
	UploadID common.ID
	Text     string
}

// Extractor is the port the application layer depends on.
type Extractor interface {
	Extract(ctx context.Context, input Input) (*Result, error)
}

const systemPrompt = `You are a legal analyst for a human-rights case management system.
Given the text of a case document, identify (1) legal claims the document supports and
(2) factual events it describes. Respond with a single JSON object of the form:
{"claims":[{"claim_type":"criminal|regulatory|civil","legal_section":"...","framework":"pakistani|international","allegation":"...","confidence":0.0}],
"events":[{"title":"...","description":"...","event_date":"YYYY-MM-DD","actors":["..."],"confidence":0.0}]}
Use Pakistani statute citations (PPC, PECA, CPC) for the pakistani framework and
UDHR/ICCPR/CAT article citations for the international framework. Omit fields you
cannot determine. Do not invent facts that are not in the document.`

type openAIExtractor struct {
	client *openai.Client
	cfg    config.ExtractionConfig
	logger logging.Logger
}

// NewExtractor builds an Extractor backed by a chat-completion endpoint.
// The API key is required; everything else falls back to configured defaults.
func NewExtractor(cfg config.ExtractionConfig, logger logging.Logger) (Extractor, error) {
	if cfg.APIKey == "" {
		return nil, errors.New(errors.ErrCodeExtractionUnavailable, "extraction API key is not configured")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &openAIExtractor{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
		logger: logger.Named("extraction"),
	}, nil
}

func (e *openAIExtractor) Extract(ctx context.Context, input Input) (*Result, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, errors.InvalidParam("document text must not be empty")
	}

	truncated := false
	if e.cfg.MaxInputChars > 0 && len(text) > e.cfg.MaxInputChars {
		text = text[:e.cfg.MaxInputChars]
		truncated = true
		e.logger.Warn("document text truncated for extraction",
			logging.String("upload_id", string(input.UploadID)),
			logging.Int("max_input_chars", e.cfg.MaxInputChars),
		)
	}

	model := e.cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	reqCtx := ctx
	if e.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, e.cfg.RequestTimeout)
		defer cancel()
	}

	resp, err := e.client.CreateChatCompletion(reqCtx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: 0.1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeExtractionFailed, "extraction request failed")
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New(errors.ErrCodeExtractionBadPayload, "extraction service returned no choices")
	}

	result, err := parsePayload(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	result.Model = resp.Model
	result.TokensUsed = resp.Usage.TotalTokens
	result.Truncated = truncated

	e.logger.Info("extraction completed",
		logging.String("upload_id", string(input.UploadID)),
		logging.Int("claims", len(result.Claims)),
		logging.Int("events", len(result.Events)),
		logging.Int("tokens_used", result.TokensUsed),
	)
	return result, nil
}
