// Package recipe provides the application layer for recipe management
// This implements the use cases defined in the inbound ports
package recipe

import (
	"context"
	stderrors "errors"
	"time"

	"go.uber.org/zap"

	"github.com/savory/api/internal/domain/recipe"
	"github.com/savory/api/internal/domain/suggestion"
	"github.com/savory/api/internal/ports/inbound"
	"github.com/savory/api/internal/ports/outbound"
	"github.com/savory/api/pkg/errors"
)

// RecipeService implements the recipe use cases
type RecipeService struct {
	recipeRepo outbound.RecipeRepository
	pantryRepo outbound.PantryRepository
	logger     *zap.Logger
	now        func() time.Time
}

// NewRecipeService creates a new recipe service
func NewRecipeService(
	recipeRepo outbound.RecipeRepository,
	pantryRepo outbound.PantryRepository,
	logger *zap.Logger,
) *RecipeService {
	return &RecipeService{
		recipeRepo: recipeRepo,
		pantryRepo: pantryRepo,
		logger:     logger.Named("recipe-service"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

var _ inbound.RecipeService = (*RecipeService)(nil)

// CreateRecipe creates a new recipe
func (s *RecipeService) CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*recipe.Recipe, error) {
	entity, err := recipe.NewRecipe(recipe.Draft{
		Title:            cmd.Title,
		Description:      cmd.Description,
		SourceURL:        cmd.SourceURL,
		Servings:         cmd.Servings,
		PrepTimeMinutes:  cmd.PrepTimeMinutes,
		CookTimeMinutes:  cmd.CookTimeMinutes,
		TotalTimeMinutes: cmd.TotalTimeMinutes,
		Ingredients:      cmd.Ingredients,
		Steps:            cmd.Steps,
		Tags:             cmd.Tags,
	}, s.now())
	if err != nil {
		return nil, errors.NewValidationError(err.Error()).WithCause(err)
	}

	if err := s.recipeRepo.Save(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("save recipe", err)
	}

	s.logger.Info("Recipe created",
		zap.String("recipe_id", entity.ID),
		zap.String("title", entity.Title),
		zap.Int("ingredients", len(entity.Ingredients)),
	)
	return entity, nil
}

// UpdateRecipe merges the command over the stored recipe
func (s *RecipeService) UpdateRecipe(ctx context.Context, cmd inbound.UpdateRecipeCommand) (*recipe.Recipe, error) {
	existing, err := s.findRecipe(ctx, cmd.RecipeID)
	if err != nil {
		return nil, err
	}

	updated, err := existing.Apply(recipe.Patch{
		Title:            cmd.Title,
		Description:      cmd.Description,
		SourceURL:        cmd.SourceURL,
		Servings:         cmd.Servings,
		PrepTimeMinutes:  cmd.PrepTimeMinutes,
		CookTimeMinutes:  cmd.CookTimeMinutes,
		TotalTimeMinutes: cmd.TotalTimeMinutes,
		Ingredients:      cmd.Ingredients,
		Steps:            cmd.Steps,
		Tags:             cmd.Tags,
	}, s.now())
	if err != nil {
		return nil, errors.NewValidationError(err.Error()).WithCause(err)
	}

	if err := s.recipeRepo.Save(ctx, updated); err != nil {
		return nil, errors.NewDatabaseError("save recipe", err)
	}

	s.logger.Info("Recipe updated", zap.String("recipe_id", updated.ID))
	return updated, nil
}

// DeleteRecipe removes a recipe
func (s *RecipeService) DeleteRecipe(ctx context.Context, id string) error {
	existed, err := s.recipeRepo.Delete(ctx, id)
	if err != nil {
		return errors.NewDatabaseError("delete recipe", err)
	}
	if !existed {
		return errors.NewRecipeNotFoundError(id)
	}

	s.logger.Info("Recipe deleted", zap.String("recipe_id", id))
	return nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id string) (*recipe.Recipe, error) {
	return s.findRecipe(ctx, id)
}

// ListRecipes returns every recipe in store order
func (s *RecipeService) ListRecipes(ctx context.Context) ([]*recipe.Recipe, error) {
	recipes, err := s.recipeRepo.List(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list recipes", err)
	}
	return recipes, nil
}

// SearchRecipes filters recipes by query, tag and time ceiling
func (s *RecipeService) SearchRecipes(ctx context.Context, query inbound.SearchQuery) ([]*recipe.Recipe, error) {
	recipes, err := s.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}

	results := recipe.Filter(recipes, recipe.Criteria{
		Query:          query.Query,
		Tag:            query.Tag,
		MaxTimeMinutes: query.MaxTimeMinutes,
	})

	s.logger.Debug("Recipe search",
		zap.String("query", query.Query),
		zap.String("tag", query.Tag),
		zap.Int("results", len(results)),
	)
	return results, nil
}

// SuggestRecipes ranks every recipe against the pantry's have-set
func (s *RecipeService) SuggestRecipes(ctx context.Context) ([]suggestion.Suggestion, error) {
	items, err := s.pantryRepo.List(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list pantry", err)
	}
	recipes, err := s.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}
	return suggestion.Rank(items, recipes), nil
}

func (s *RecipeService) findRecipe(ctx context.Context, id string) (*recipe.Recipe, error) {
	entity, err := s.recipeRepo.FindByID(ctx, id)
	if stderrors.Is(err, recipe.ErrRecipeNotFound) {
		return nil, errors.NewRecipeNotFoundError(id)
	}
	if err != nil {
		return nil, errors.NewDatabaseError("find recipe", err)
	}
	return entity, nil
}
