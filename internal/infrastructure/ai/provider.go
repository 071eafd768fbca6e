// Package ai selects and builds the language-model client for the copilot
package ai

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/savory/api/internal/infrastructure/ai/bedrock"
	"github.com/savory/api/internal/infrastructure/ai/gemini"
	"github.com/savory/api/internal/infrastructure/ai/ollama"
	"github.com/savory/api/internal/infrastructure/ai/openai"
	"github.com/savory/api/internal/infrastructure/config"
	"github.com/savory/api/internal/ports/outbound"
)

// NewChatCompleter builds the client for cfg.Provider. It returns a nil
// completer, and no error, when the provider has no credential configured.
func NewChatCompleter(ctx context.Context, cfg config.AIConfig, logger *zap.Logger) (outbound.ChatCompleter, error) {
	if !cfg.HasCredential() {
		logger.Info("AI provider has no credential", zap.String("provider", cfg.Provider))
		return nil, nil
	}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		return openai.NewClient(openai.Options{
			APIKey:      cfg.OpenAIKey,
			BaseURL:     cfg.OpenAIBaseURL,
			Model:       cfg.OpenAIModel,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Timeout:     cfg.Timeout,
		}, logger), nil

	case config.ProviderOllama:
		return ollama.NewClient(cfg.OllamaURL, cfg.OllamaModel, cfg.Temperature, cfg.MaxTokens, cfg.Timeout, logger), nil

	case config.ProviderGemini:
		client, err := gemini.NewClient(ctx, cfg.GeminiKey, cfg.GeminiModel, cfg.Temperature, cfg.MaxTokens, logger)
		if err != nil {
			return nil, err
		}
		return client, nil

	case config.ProviderBedrock:
		runtime, err := bedrock.NewRuntimeClient(ctx, cfg.BedrockRegion)
		if err != nil {
			return nil, err
		}
		return bedrock.NewClient(runtime, bedrock.Options{
			ModelID:     cfg.BedrockModelID,
			MaxTokens:   int32(cfg.MaxTokens),
			Temperature: float32(cfg.Temperature),
		}, logger), nil
	}

	return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
}
