package transcript

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/PatternAssistant/core/internal/extract"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/logging"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/protocol"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/shared/types"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/shared/utils"
	"go.uber.org/zap"
)

const (
	fetchQuery = `query FetchTranscript($videoUrl: String!, $languages: [String!]) {
  fetchTranscript(videoUrl: $videoUrl, languages: $languages) {
    success videoId transcript wordCount language thumbnailUrl error
  }
}`

	extractMutation = `mutation ExtractPatternFromTranscript($transcript: String!, $videoId: String, $thumbnailUrl: String) {
  extractPatternFromTranscript(transcript: $transcript, videoId: $videoId, thumbnailUrl: $thumbnailUrl) {
    success patternName patternNotation patternInstructions difficultyLevel materials estimatedTime error
  }
}`
)

// DefaultLanguages is used when a fetch names no languages
var DefaultLanguages = []string{"en"}

// Provider fetches video transcripts and turns them into patterns
type Provider struct {
	client *protocol.Client
	logger *logging.Logger
}

// NewProvider creates a transcript provider
func NewProvider(client *protocol.Client, logger *logging.Logger) *Provider {
	return &Provider{
		client: client,
		logger: logging.OrNop(logger).Named("transcript"),
	}
}

// Fetch asks the server for a video's transcript. A result with Success
// false is returned as is; only protocol failures are errors.
func (p *Provider) Fetch(ctx context.Context, videoURL string, languages []string) (*types.TranscriptResult, error) {
	if err := utils.ValidateURL(videoURL, "videoUrl"); err != nil {
		return nil, err
	}
	if len(languages) == 0 {
		languages = DefaultLanguages
	}
	if err := utils.ValidateLanguages(languages); err != nil {
		return nil, err
	}

	vars := protocol.NewObject(
		protocol.F("videoUrl", protocol.String(videoURL)),
		protocol.F("languages", protocol.Strings(languages...)),
	)
	out, err := protocol.Execute[struct {
		FetchTranscript types.TranscriptResult `json:"fetchTranscript"`
	}](ctx, p.client, protocol.NewOperation(fetchQuery, vars))
	if err != nil {
		return nil, fmt.Errorf("fetch transcript: %w", err)
	}

	result := &out.FetchTranscript
	if !result.Success {
		p.logger.Info("Transcript unavailable", zap.String("reason", deref(result.Error)))
	}
	return result, nil
}

// ExtractPattern asks the server to pull a pattern out of a transcript
func (p *Provider) ExtractPattern(ctx context.Context, transcript string, videoID, thumbnailURL *string) (*types.PatternExtraction, error) {
	if err := utils.ValidateTranscript(transcript); err != nil {
		return nil, err
	}

	vars := protocol.NewObject(
		protocol.F("transcript", protocol.String(transcript)),
		protocol.F("videoId", protocol.OptionalString(videoID)),
		protocol.F("thumbnailUrl", protocol.OptionalString(thumbnailURL)),
	)
	out, err := protocol.Execute[struct {
		ExtractPatternFromTranscript types.PatternExtraction `json:"extractPatternFromTranscript"`
	}](ctx, p.client, protocol.NewOperation(extractMutation, vars))
	if err != nil {
		return nil, fmt.Errorf("extract pattern: %w", err)
	}
	return &out.ExtractPatternFromTranscript, nil
}

// FetchAndExtract chains Fetch and ExtractPattern and returns the pattern as
// form fields. Fields is empty when either step reports no success.
func (p *Provider) FetchAndExtract(ctx context.Context, videoURL string, languages []string) (_ extract.Fields, _ *types.TranscriptResult, err error) {
	tracer := p.client.Tracer()
	span, ctx := tracer.StartSpan(ctx, "FetchAndExtract")
	defer func() { tracer.End(span, err) }()

	result, err := p.Fetch(ctx, videoURL, languages)
	if err != nil {
		return nil, nil, err
	}
	if !result.Success || result.Transcript == nil || *result.Transcript == "" {
		return extract.Fields{}, result, nil
	}

	pattern, err := p.ExtractPattern(ctx, *result.Transcript, result.VideoID, result.ThumbnailURL)
	if err != nil {
		return nil, result, err
	}
	return extract.FromExtraction(*pattern), result, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
