package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/savory/api/internal/domain/pantry"
	"github.com/savory/api/internal/ports/inbound"
)

// PantryHandlers handles pantry API requests
type PantryHandlers struct {
	pantryService inbound.PantryService
	validator     *Validator
	logger        *zap.Logger
}

// NewPantryHandlers creates a new pantry handlers instance
func NewPantryHandlers(pantryService inbound.PantryService, validator *Validator, logger *zap.Logger) *PantryHandlers {
	return &PantryHandlers{
		pantryService: pantryService,
		validator:     validator,
		logger:        logger.Named("pantry-api"),
	}
}

// CreatePantryItemRequest is the body of POST /pantry
type CreatePantryItemRequest struct {
	Name      string     `json:"name" validate:"notblank"`
	HaveState string     `json:"haveState" validate:"required,oneof=have dont_have"`
	Quantity  *float64   `json:"quantity" validate:"omitempty,gte=0"`
	Unit      string     `json:"unit"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// ListItems handles GET /pantry
func (h *PantryHandlers) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.pantryService.ListItems(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string][]*pantry.Item{"pantry": items})
}

// AddItem handles POST /pantry
func (h *PantryHandlers) AddItem(w http.ResponseWriter, r *http.Request) {
	var req CreatePantryItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	item, err := h.pantryService.AddItem(r.Context(), inbound.CreatePantryItemCommand{
		Name:      req.Name,
		HaveState: req.HaveState,
		Quantity:  req.Quantity,
		Unit:      req.Unit,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, item)
}

// RemoveItem handles DELETE /pantry/{id}
func (h *PantryHandlers) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if err := h.pantryService.RemoveItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
