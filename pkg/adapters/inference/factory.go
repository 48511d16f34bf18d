package inference

import (
	"fmt"
	"time"

	"github.com/aescanero/qaserve/pkg/adapters/inference/anthropic"
	"github.com/aescanero/qaserve/pkg/adapters/inference/lexical"
	"github.com/aescanero/qaserve/pkg/adapters/inference/openai"
	"github.com/aescanero/qaserve/pkg/ports"
	"go.uber.org/zap"
)

// Config holds inference engine configuration
type Config struct {
	Provider       string
	APIKey         string
	Model          string
	RequestTimeout time.Duration
	Logger         *zap.Logger
}

// NewEngine creates a new inference engine based on provider
func NewEngine(cfg *Config) (ports.InferenceEngine, error) {
	switch cfg.Provider {
	case "lexical":
		return lexical.NewEngine(), nil
	case "anthropic":
		return anthropic.NewEngine(cfg.APIKey, cfg.Model, cfg.RequestTimeout, cfg.Logger)
	case "openai":
		return openai.NewEngine(cfg.APIKey, cfg.Model, cfg.RequestTimeout, cfg.Logger)
	default:
		return nil, fmt.Errorf("unsupported inference provider: %s", cfg.Provider)
	}
}
