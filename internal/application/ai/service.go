// Package ai provides the application layer for the cooking copilot
package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	stderrors "errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/savory/api/internal/domain/copilot"
	"github.com/savory/api/internal/ports/inbound"
	"github.com/savory/api/internal/ports/outbound"
	"github.com/savory/api/pkg/errors"
)

const cacheKeyPrefix = "copilot:"

// Recorder receives one observation per answered chat.
type Recorder interface {
	RecordChat(provider string, mode copilot.Mode, duration time.Duration)
}

// Config tunes the live-answer cache.
type Config struct {
	EnableCache bool
	CacheTTL    time.Duration
}

// CopilotService answers chat turns with a language model when one is
// configured and with the offline generator otherwise.
type CopilotService struct {
	completer outbound.ChatCompleter
	cache     outbound.CacheRepository
	recorder  Recorder
	config    Config
	tracer    trace.Tracer
	logger    *zap.Logger
}

// NewCopilotService creates a new copilot service. A nil completer means no
// credential is configured and every answer comes from the offline generator.
func NewCopilotService(
	completer outbound.ChatCompleter,
	cache outbound.CacheRepository,
	recorder Recorder,
	config Config,
	logger *zap.Logger,
) *CopilotService {
	namedLogger := logger.Named("copilot-service")
	if completer == nil {
		namedLogger.Info("No AI credential configured, copilot runs in fallback mode")
	} else {
		namedLogger.Info("Copilot initialized", zap.String("provider", completer.Provider()))
	}

	return &CopilotService{
		completer: completer,
		cache:     cache,
		recorder:  recorder,
		config:    config,
		tracer:    otel.Tracer("github.com/savory/api/copilot"),
		logger:    namedLogger,
	}
}

var _ inbound.CopilotService = (*CopilotService)(nil)

// Chat validates the conversation and produces a reply.
func (s *CopilotService) Chat(ctx context.Context, cmd inbound.ChatCommand) (*inbound.ChatReply, error) {
	ctx, span := s.tracer.Start(ctx, "copilot.Chat")
	defer span.End()
	start := time.Now()

	question, err := copilot.Validate(cmd.Messages)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.NewValidationError(err.Error()).WithCause(err)
	}

	if s.completer == nil {
		return s.fallback(span, start, "none", question, cmd.Context), nil
	}

	provider := s.completer.Provider()
	span.SetAttributes(attribute.String("copilot.provider", provider))

	req := outbound.CompletionRequest{
		Instruction: copilot.BuildInstruction(cmd.Context),
		Turns:       cmd.Messages,
	}
	key := cacheKey(provider, req)

	if text, ok := s.cached(ctx, key); ok {
		span.SetAttributes(attribute.Bool("copilot.cache_hit", true))
		return s.live(span, start, provider, text), nil
	}

	text, err := s.completer.Complete(ctx, req)
	if err != nil {
		if copilot.IsDegraded(err) {
			s.logger.Warn("AI provider degraded, answering offline",
				zap.String("provider", provider),
				zap.Error(err),
			)
			return s.fallback(span, start, provider, question, cmd.Context), nil
		}

		s.logger.Error("AI chat failed",
			zap.String("provider", provider),
			zap.Error(err),
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, "AI chat failed")
		return nil, errors.NewExternalServiceError(provider, err)
	}

	s.store(ctx, key, text)
	return s.live(span, start, provider, text), nil
}

func (s *CopilotService) fallback(span trace.Span, start time.Time, provider, question string, ctx copilot.Context) *inbound.ChatReply {
	span.SetAttributes(attribute.String("copilot.mode", string(copilot.ModeFallback)))
	s.record(provider, copilot.ModeFallback, start)
	return &inbound.ChatReply{
		Message: copilot.FallbackAnswer(question, ctx),
		Mode:    copilot.ModeFallback,
	}
}

func (s *CopilotService) live(span trace.Span, start time.Time, provider, text string) *inbound.ChatReply {
	span.SetAttributes(attribute.String("copilot.mode", string(copilot.ModeLive)))
	s.record(provider, copilot.ModeLive, start)
	return &inbound.ChatReply{Message: text, Mode: copilot.ModeLive}
}

func (s *CopilotService) record(provider string, mode copilot.Mode, start time.Time) {
	if s.recorder != nil {
		s.recorder.RecordChat(provider, mode, time.Since(start))
	}
}

func (s *CopilotService) cached(ctx context.Context, key string) (string, bool) {
	if !s.config.EnableCache || s.cache == nil {
		return "", false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !stderrors.Is(err, outbound.ErrCacheMiss) {
			s.logger.Warn("Copilot cache read failed", zap.Error(err))
		}
		return "", false
	}
	return string(data), true
}

func (s *CopilotService) store(ctx context.Context, key, text string) {
	if !s.config.EnableCache || s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, []byte(text), s.config.CacheTTL); err != nil {
		s.logger.Warn("Copilot cache write failed", zap.Error(err))
	}
}

// cacheKey hashes everything the model sees, so equal conversations share an entry.
func cacheKey(provider string, req outbound.CompletionRequest) string {
	payload, _ := json.Marshal(struct {
		Provider    string         `json:"provider"`
		Instruction string         `json:"instruction"`
		Turns       []copilot.Turn `json:"turns"`
	}{provider, req.Instruction, req.Turns})
	sum := sha256.Sum256(payload)
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
