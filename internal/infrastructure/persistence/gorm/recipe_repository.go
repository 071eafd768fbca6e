// Package gorm provides GORM-based repository implementations
package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/savory/api/internal/domain/recipe"
	"github.com/savory/api/internal/ports/outbound"
)

// RecipeRepository implements the recipe repository interface using GORM
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

var _ outbound.RecipeRepository = (*RecipeRepository)(nil)

// Save inserts a recipe or replaces the row with the same id, keeping its position
func (r *RecipeRepository) Save(ctx context.Context, entity *recipe.Recipe) error {
	model := RecipeToModel(entity)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing RecipeModel
		err := tx.Select("seq").Where("id = ?", model.ID).Take(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(model).Error
		}
		if err != nil {
			return err
		}
		model.Seq = existing.Seq
		return tx.Save(model).Error
	})
}

// List returns recipes in first-saved order
func (r *RecipeRepository) List(ctx context.Context) ([]*recipe.Recipe, error) {
	var models []RecipeModel
	if err := r.db.WithContext(ctx).Order("seq asc").Find(&models).Error; err != nil {
		return nil, err
	}

	recipes := make([]*recipe.Recipe, len(models))
	for i := range models {
		recipes[i] = ModelToRecipe(&models[i])
	}
	return recipes, nil
}

// FindByID finds a recipe by ID
func (r *RecipeRepository) FindByID(ctx context.Context, id string) (*recipe.Recipe, error) {
	var model RecipeModel
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, recipe.ErrRecipeNotFound
	}
	if err != nil {
		return nil, err
	}
	return ModelToRecipe(&model), nil
}

// Delete deletes a recipe by ID
func (r *RecipeRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&RecipeModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Count returns the number of stored recipes
func (r *RecipeRepository) Count(ctx context.Context) (int, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&RecipeModel{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}
