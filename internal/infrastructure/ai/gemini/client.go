// Package gemini provides a chat completer backed by Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/savory/api/internal/domain/copilot"
	"github.com/savory/api/internal/ports/outbound"
)

// Client is a Gemini chat client.
type Client struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
	logger      *zap.Logger
}

// NewClient creates a new Gemini API client.
func NewClient(ctx context.Context, apiKey, model string, temperature float64, maxTokens int, logger *zap.Logger) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	logger.Info("Gemini client initialized", zap.String("model", model))
	return &Client{
		client:      client,
		model:       model,
		temperature: float32(temperature),
		maxTokens:   int32(maxTokens),
		logger:      logger.Named("gemini-client"),
	}, nil
}

var _ outbound.ChatCompleter = (*Client)(nil)

// Provider returns "gemini".
func (c *Client) Provider() string { return "gemini" }

// Complete replays the earlier turns as chat history and sends the last one.
func (c *Client) Complete(ctx context.Context, req outbound.CompletionRequest) (string, error) {
	if len(req.Turns) == 0 {
		return "", fmt.Errorf("no turns to send")
	}

	model := c.client.GenerativeModel(c.model)
	model.SystemInstruction = genai.NewUserContent(genai.Text(req.Instruction))
	model.SetTemperature(c.temperature)
	if c.maxTokens > 0 {
		model.SetMaxOutputTokens(c.maxTokens)
	}

	session := model.StartChat()
	session.History = history(req.Turns[:len(req.Turns)-1])

	last := req.Turns[len(req.Turns)-1]
	resp, err := session.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return textFromResponse(resp)
}

// Close closes the underlying Gemini client.
func (c *Client) Close() error {
	return c.client.Close()
}

func history(turns []copilot.Turn) []*genai.Content {
	out := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		role := "user"
		if t.Role == copilot.RoleAssistant {
			role = "model"
		}
		out = append(out, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(t.Content)}})
	}
	return out
}

func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content generated")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", fmt.Errorf("generated content is not text")
	}
	return out, nil
}
