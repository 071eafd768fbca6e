// Package bedrock provides a chat completer backed by the Amazon Bedrock Converse API.
package bedrock

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"go.uber.org/zap"

	"github.com/savory/api/internal/ports/outbound"
)

const (
	defaultMaxTokens   = 512
	defaultTemperature = 0.4
)

type runtimeClient interface {
	Converse(context.Context, *bedrockruntime.ConverseInput, ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// Options configures inference.
type Options struct {
	ModelID     string
	MaxTokens   int32
	Temperature float32
}

// Client implements outbound.ChatCompleter.
type Client struct {
	brc    runtimeClient
	opts   Options
	logger *zap.Logger
}

// NewRuntimeClient builds a Bedrock runtime client from the default AWS credential chain.
func NewRuntimeClient(ctx context.Context, region string) (*bedrockruntime.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithRetryMaxAttempts(3),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return bedrockruntime.NewFromConfig(awsCfg), nil
}

// NewClient wraps a runtime client.
func NewClient(brc runtimeClient, opts Options, logger *zap.Logger) *Client {
	if opts.MaxTokens == 0 {
		opts.MaxTokens = defaultMaxTokens
	}
	if opts.Temperature == 0 {
		opts.Temperature = defaultTemperature
	}
	return &Client{brc: brc, opts: opts, logger: logger.Named("bedrock-client")}
}

var _ outbound.ChatCompleter = (*Client)(nil)

// Provider returns "bedrock".
func (c *Client) Provider() string { return "bedrock" }

// Complete sends the conversation through Converse.
func (c *Client) Complete(ctx context.Context, req outbound.CompletionRequest) (string, error) {
	msgs := make([]types.Message, 0, len(req.Turns))
	for _, t := range req.Turns {
		msgs = append(msgs, types.Message{
			Role:    types.ConversationRole(t.Role),
			Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: t.Content}},
		})
	}

	in := &bedrockruntime.ConverseInput{
		ModelId:  aws.String(c.opts.ModelID),
		System:   []types.SystemContentBlock{&types.SystemContentBlockMemberText{Value: req.Instruction}},
		Messages: msgs,
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens:   aws.Int32(c.opts.MaxTokens),
			Temperature: aws.Float32(c.opts.Temperature),
		},
	}

	out, err := c.brc.Converse(ctx, in)
	if err != nil {
		return "", fmt.Errorf("bedrock converse failed: %w", err)
	}

	if out.Usage != nil {
		c.logger.Debug("Bedrock converse succeeded",
			zap.String("stop_reason", string(out.StopReason)),
			zap.Int32("input_tokens", aws.ToInt32(out.Usage.InputTokens)),
			zap.Int32("output_tokens", aws.ToInt32(out.Usage.OutputTokens)))
	}

	switch out.StopReason {
	case types.StopReasonGuardrailIntervened, types.StopReasonContentFiltered:
		return "", fmt.Errorf("model response blocked by Bedrock safety filters")
	}

	text := textFromOutput(out)
	if text == "" {
		return "", fmt.Errorf("no text content returned")
	}
	return text, nil
}

func textFromOutput(out *bedrockruntime.ConverseOutput) string {
	if out == nil || out.Output == nil {
		return ""
	}
	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok || msg == nil {
		return ""
	}

	texts := make([]string, 0, len(msg.Value.Content))
	for _, cb := range msg.Value.Content {
		if t, ok := cb.(*types.ContentBlockMemberText); ok && t.Value != "" {
			texts = append(texts, t.Value)
		}
	}
	return strings.TrimSpace(strings.Join(texts, "\n"))
}
