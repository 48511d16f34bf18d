// Package openai implements the inference engine on the OpenAI chat
// completions API.
package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"go.uber.org/zap"

	"github.com/aescanero/qaserve/pkg/adapters/inference/extract"
	"github.com/aescanero/qaserve/pkg/domain"
)

// DefaultModel is used when no model is configured
const DefaultModel = "gpt-4o-mini"

// Engine extracts answers with an OpenAI chat model
type Engine struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewEngine creates a new OpenAI engine
func NewEngine(apiKey, model string, timeout time.Duration, logger *zap.Logger, extra ...option.RequestOption) (*Engine, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}
	opts = append(opts, extra...)

	client := openai.NewClient(opts...)
	return &Engine{
		client: &client,
		model:  model,
		logger: logger,
	}, nil
}

// Name returns the engine name
func (e *Engine) Name() string {
	return "openai"
}

// Predict asks the model for each query of the batch in turn
func (e *Engine) Predict(ctx context.Context, queries []domain.QAInput, topK, maxAnswerLength int) ([][]domain.AnswerCandidate, error) {
	results := make([][]domain.AnswerCandidate, len(queries))

	for i, q := range queries {
		res, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model: shared.ChatModel(e.model),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(extract.SystemPrompt),
				openai.UserMessage(extract.BuildPrompt(q, topK, maxAnswerLength)),
			},
			Temperature: openai.Float(0),
		})
		if err != nil {
			return nil, fmt.Errorf("openai call failed: %w", err)
		}

		if len(res.Choices) == 0 {
			return nil, fmt.Errorf("no choices in openai response")
		}

		e.logger.Debug("openai reply received",
			zap.String("model", e.model),
			zap.Int64("prompt_tokens", res.Usage.PromptTokens),
			zap.Int64("completion_tokens", res.Usage.CompletionTokens))

		candidates, err := extract.Parse(res.Choices[0].Message.Content, q.Context, topK, maxAnswerLength)
		if err != nil {
			return nil, fmt.Errorf("invalid openai reply: %w", err)
		}
		results[i] = candidates
	}

	return results, nil
}
