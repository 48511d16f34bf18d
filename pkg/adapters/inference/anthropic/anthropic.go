// Package anthropic implements the inference engine on the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/aescanero/qaserve/pkg/adapters/inference/extract"
	"github.com/aescanero/qaserve/pkg/domain"
)

// DefaultModel is used when no model is configured
const DefaultModel = "claude-3-5-haiku-latest"

const maxTokens = 512

// Engine extracts answers with Claude
type Engine struct {
	client anthropic.Client
	model  string
	logger *zap.Logger
}

// NewEngine creates a new Anthropic engine
func NewEngine(apiKey, model string, timeout time.Duration, logger *zap.Logger, extra ...option.RequestOption) (*Engine, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}
	opts = append(opts, extra...)

	return &Engine{
		client: anthropic.NewClient(opts...),
		model:  model,
		logger: logger,
	}, nil
}

// Name returns the engine name
func (e *Engine) Name() string {
	return "anthropic"
}

// Predict asks the model for each query of the batch in turn
func (e *Engine) Predict(ctx context.Context, queries []domain.QAInput, topK, maxAnswerLength int) ([][]domain.AnswerCandidate, error) {
	results := make([][]domain.AnswerCandidate, len(queries))

	for i, q := range queries {
		message, err := e.client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:     anthropic.Model(e.model),
			MaxTokens: maxTokens,
			System: []anthropic.TextBlockParam{
				{Text: extract.SystemPrompt},
			},
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(extract.BuildPrompt(q, topK, maxAnswerLength))),
			},
			Temperature: anthropic.Float(0),
		})
		if err != nil {
			return nil, fmt.Errorf("anthropic call failed: %w", err)
		}

		var reply strings.Builder
		for _, block := range message.Content {
			if block.Type == "text" {
				reply.WriteString(block.Text)
			}
		}

		e.logger.Debug("anthropic reply received",
			zap.String("model", e.model),
			zap.Int64("input_tokens", message.Usage.InputTokens),
			zap.Int64("output_tokens", message.Usage.OutputTokens))

		candidates, err := extract.Parse(reply.String(), q.Context, topK, maxAnswerLength)
		if err != nil {
			return nil, fmt.Errorf("invalid anthropic reply: %w", err)
		}
		results[i] = candidates
	}

	return results, nil
}
