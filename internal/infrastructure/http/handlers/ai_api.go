package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/savory/api/internal/domain/copilot"
	"github.com/savory/api/internal/ports/inbound"
)

// AIHandlers handles copilot requests
type AIHandlers struct {
	copilot inbound.CopilotService
	logger  *zap.Logger
}

// NewAIHandlers creates a new AI handlers instance
func NewAIHandlers(copilotService inbound.CopilotService, logger *zap.Logger) *AIHandlers {
	return &AIHandlers{
		copilot: copilotService,
		logger:  logger.Named("ai-api"),
	}
}

// ChatRequest is the body of POST /ai/chat. Turn structure is checked by
// the copilot service.
type ChatRequest struct {
	Messages []copilot.Turn  `json:"messages"`
	Context  copilot.Context `json:"context"`
}

// Chat handles POST /ai/chat
func (h *AIHandlers) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	reply, err := h.copilot.Chat(r.Context(), inbound.ChatCommand{
		Messages: req.Messages,
		Context:  req.Context,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, reply)
}
