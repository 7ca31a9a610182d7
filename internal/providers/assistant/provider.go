package assistant

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

const chatMutation = `mutation ChatWithAssistant($message: String!, $context: String) {
  chatWithAssistant(message: $message, context: $context) {
    message diagramSvg diagramPng hasPattern
  }
}`

// Provider talks to the pattern assistant
type Provider struct {
	client    *protocol.Client
	extractor *extract.Extractor
	logger    *logging.Logger
}

// NewProvider creates an assistant provider. A nil extractor uses the
// default alias table.
func NewProvider(client *protocol.Client, extractor *extract.Extractor, logger *logging.Logger) *Provider {
	if extractor == nil {
		extractor = extract.New(extract.Aliases)
	}
	return &Provider{
		client:    client,
		extractor: extractor,
		logger:    logging.OrNop(logger).Named("assistant"),
	}
}

// Chat sends one message with optional conversation history, sent as the
// context variable
func (p *Provider) Chat(ctx context.Context, message, history string) (*types.ChatReply, error) {
	if err := utils.ValidateMessage(message); err != nil {
		return nil, err
	}
	if len(history) > utils.MaxContextSize {
		return nil, fmt.Errorf("context size %d bytes exceeds maximum %d bytes", len(history), utils.MaxContextSize)
	}

	vars := protocol.NewObject(protocol.F("message", protocol.String(message)))
	if history != "" {
		vars.Set("context", protocol.String(history))
	} else {
		vars.Set("context", protocol.Null())
	}

	out, err := protocol.Execute[struct {
		ChatWithAssistant types.ChatReply `json:"chatWithAssistant"`
	}](ctx, p.client, protocol.NewOperation(chatMutation, vars))
	if err != nil {
		return nil, fmt.Errorf("chat: %w", err)
	}
	return &out.ChatWithAssistant, nil
}

// ChatAndExtract sends a message and parses the reply into pattern fields.
// Fields is empty when the reply carries no recognisable headers.
func (p *Provider) ChatAndExtract(ctx context.Context, message, history string) (*types.ChatReply, extract.Fields, error) {
	reply, err := p.Chat(ctx, message, history)
	if err != nil {
		return nil, nil, err
	}

	fields := p.extractor.Extract(reply.Message)
	p.logger.Debug("Reply parsed",
		zap.Bool("has_pattern", reply.HasPattern),
		zap.Int("fields", len(fields)))
	return reply, fields, nil
}
