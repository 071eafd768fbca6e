package handlers

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/savory/api/internal/domain/recipe"
	"github.com/savory/api/internal/domain/suggestion"
	"github.com/savory/api/internal/ports/inbound"
	"github.com/savory/api/pkg/errors"
)

// RecipeHandlers handles recipe API requests
type RecipeHandlers struct {
	recipeService inbound.RecipeService
	validator     *Validator
	logger        *zap.Logger
}

// NewRecipeHandlers creates a new recipe handlers instance
func NewRecipeHandlers(recipeService inbound.RecipeService, validator *Validator, logger *zap.Logger) *RecipeHandlers {
	return &RecipeHandlers{
		recipeService: recipeService,
		validator:     validator,
		logger:        logger.Named("recipe-api"),
	}
}

// CreateRecipeRequest is the body of POST /recipes
type CreateRecipeRequest struct {
	Title            string                  `json:"title" validate:"notblank"`
	Description      string                  `json:"description"`
	SourceURL        string                  `json:"sourceUrl"`
	Servings         *int                    `json:"servings" validate:"omitempty,gt=0"`
	PrepTimeMinutes  *int                    `json:"prepTimeMinutes" validate:"omitempty,gte=0"`
	CookTimeMinutes  *int                    `json:"cookTimeMinutes" validate:"omitempty,gte=0"`
	TotalTimeMinutes *int                    `json:"totalTimeMinutes" validate:"omitempty,gte=0"`
	Ingredients      []recipe.IngredientLine `json:"ingredients" validate:"required,min=1,dive"`
	Steps            []recipe.Step           `json:"steps" validate:"required,min=1,dive"`
	Tags             []string                `json:"tags"`
}

// UpdateRecipeRequest is the body of PUT /recipes/{id}. Absent fields keep
// their stored values.
type UpdateRecipeRequest struct {
	Title            *string                  `json:"title"`
	Description      *string                  `json:"description"`
	SourceURL        *string                  `json:"sourceUrl"`
	Servings         *int                     `json:"servings" validate:"omitempty,gt=0"`
	PrepTimeMinutes  *int                     `json:"prepTimeMinutes" validate:"omitempty,gte=0"`
	CookTimeMinutes  *int                     `json:"cookTimeMinutes" validate:"omitempty,gte=0"`
	TotalTimeMinutes *int                     `json:"totalTimeMinutes" validate:"omitempty,gte=0"`
	Ingredients      *[]recipe.IngredientLine `json:"ingredients" validate:"omitempty,dive"`
	Steps            *[]recipe.Step           `json:"steps" validate:"omitempty,dive"`
	Tags             *[]string                `json:"tags"`
}

// ListRecipes handles GET /recipes
func (h *RecipeHandlers) ListRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.recipeService.ListRecipes(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string][]*recipe.Recipe{"recipes": recipes})
}

// CreateRecipe handles POST /recipes
func (h *RecipeHandlers) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req CreateRecipeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	created, err := h.recipeService.CreateRecipe(r.Context(), inbound.CreateRecipeCommand{
		Title:            req.Title,
		Description:      req.Description,
		SourceURL:        req.SourceURL,
		Servings:         req.Servings,
		PrepTimeMinutes:  req.PrepTimeMinutes,
		CookTimeMinutes:  req.CookTimeMinutes,
		TotalTimeMinutes: req.TotalTimeMinutes,
		Ingredients:      req.Ingredients,
		Steps:            req.Steps,
		Tags:             req.Tags,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, created)
}

// SearchRecipes handles GET /recipes/search?q=&tag=&maxTimeMinutes=
func (h *RecipeHandlers) SearchRecipes(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := inbound.SearchQuery{
		Query: params.Get("q"),
		Tag:   params.Get("tag"),
	}

	if raw := strings.TrimSpace(params.Get("maxTimeMinutes")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) {
			writeError(w, r, h.logger, errors.NewValidationError("maxTimeMinutes must be a number").
				WithMetadata("maxTimeMinutes", raw))
			return
		}
		query.MaxTimeMinutes = &v
	}

	recipes, err := h.recipeService.SearchRecipes(r.Context(), query)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string][]*recipe.Recipe{"recipes": recipes})
}

// SuggestRecipes handles GET /recipes/suggestions
func (h *RecipeHandlers) SuggestRecipes(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.recipeService.SuggestRecipes(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string][]suggestion.Suggestion{"suggestions": suggestions})
}

// GetRecipe handles GET /recipes/{id}
func (h *RecipeHandlers) GetRecipe(w http.ResponseWriter, r *http.Request) {
	found, err := h.recipeService.GetRecipe(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, found)
}

// UpdateRecipe handles PUT /recipes/{id}
func (h *RecipeHandlers) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	var req UpdateRecipeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	updated, err := h.recipeService.UpdateRecipe(r.Context(), inbound.UpdateRecipeCommand{
		RecipeID:         chi.URLParam(r, "id"),
		Title:            req.Title,
		Description:      req.Description,
		SourceURL:        req.SourceURL,
		Servings:         req.Servings,
		PrepTimeMinutes:  req.PrepTimeMinutes,
		CookTimeMinutes:  req.CookTimeMinutes,
		TotalTimeMinutes: req.TotalTimeMinutes,
		Ingredients:      req.Ingredients,
		Steps:            req.Steps,
		Tags:             req.Tags,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, updated)
}

// DeleteRecipe handles DELETE /recipes/{id}
func (h *RecipeHandlers) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	if err := h.recipeService.DeleteRecipe(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
