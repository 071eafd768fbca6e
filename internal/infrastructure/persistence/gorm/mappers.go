// Package gorm provides mapping between domain entities and GORM models
package gorm

import (
	"github.com/savory/api/internal/domain/pantry"
	"github.com/savory/api/internal/domain/recipe"
)

// RecipeToModel converts a domain recipe to a GORM model
func RecipeToModel(r *recipe.Recipe) *RecipeModel {
	return &RecipeModel{
		ID:               r.ID,
		Title:            r.Title,
		Description:      r.Description,
		SourceURL:        r.SourceURL,
		Servings:         r.Servings,
		PrepTimeMinutes:  r.PrepTimeMinutes,
		CookTimeMinutes:  r.CookTimeMinutes,
		TotalTimeMinutes: r.TotalTimeMinutes,
		Ingredients:      JSONColumn[[]recipe.IngredientLine]{Data: r.Ingredients},
		Steps:            JSONColumn[[]recipe.Step]{Data: r.Steps},
		Tags:             StringSlice(r.Tags),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// ModelToRecipe converts a GORM model to a domain recipe
func ModelToRecipe(m *RecipeModel) *recipe.Recipe {
	r := &recipe.Recipe{
		ID:               m.ID,
		Title:            m.Title,
		Description:      m.Description,
		SourceURL:        m.SourceURL,
		Servings:         m.Servings,
		PrepTimeMinutes:  m.PrepTimeMinutes,
		CookTimeMinutes:  m.CookTimeMinutes,
		TotalTimeMinutes: m.TotalTimeMinutes,
		Ingredients:      m.Ingredients.Data,
		Steps:            m.Steps.Data,
		Tags:             []string(m.Tags),
		CreatedAt:        m.CreatedAt.UTC(),
		UpdatedAt:        m.UpdatedAt.UTC(),
	}
	if r.Ingredients == nil {
		r.Ingredients = []recipe.IngredientLine{}
	}
	if r.Steps == nil {
		r.Steps = []recipe.Step{}
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	return r
}

// PantryItemToModel converts a domain pantry item to a GORM model
func PantryItemToModel(item *pantry.Item) *PantryItemModel {
	return &PantryItemModel{
		ID:        item.ID,
		Name:      item.Name,
		HaveState: string(item.HaveState),
		Quantity:  item.Quantity,
		Unit:      item.Unit,
		ExpiresAt: item.ExpiresAt,
		UpdatedAt: item.UpdatedAt,
	}
}

// ModelToPantryItem converts a GORM model to a domain pantry item
func ModelToPantryItem(m *PantryItemModel) *pantry.Item {
	item := &pantry.Item{
		ID:        m.ID,
		Name:      m.Name,
		HaveState: pantry.HaveState(m.HaveState),
		Quantity:  m.Quantity,
		Unit:      m.Unit,
		UpdatedAt: m.UpdatedAt.UTC(),
	}
	if m.ExpiresAt != nil {
		t := m.ExpiresAt.UTC()
		item.ExpiresAt = &t
	}
	return item
}
