package memory

import (
	"context"

	"github.com/savory/api/internal/domain/pantry"
	"github.com/savory/api/internal/domain/recipe"
	"github.com/savory/api/internal/ports/outbound"
)

// RecipeRepository keeps recipes for the lifetime of the process
type RecipeRepository struct {
	recipes *collection[recipe.Recipe]
}

// NewRecipeRepository creates a new in-memory recipe repository
func NewRecipeRepository() *RecipeRepository {
	return &RecipeRepository{recipes: newCollection[recipe.Recipe]()}
}

var _ outbound.RecipeRepository = (*RecipeRepository)(nil)

// Save inserts or replaces a recipe
func (r *RecipeRepository) Save(_ context.Context, entity *recipe.Recipe) error {
	r.recipes.save(entity.ID, *entity)
	return nil
}

// List returns recipes in first-saved order
func (r *RecipeRepository) List(_ context.Context) ([]*recipe.Recipe, error) {
	values := r.recipes.list()
	out := make([]*recipe.Recipe, len(values))
	for i := range values {
		out[i] = &values[i]
	}
	return out, nil
}

// FindByID returns recipe.ErrRecipeNotFound for unknown ids
func (r *RecipeRepository) FindByID(_ context.Context, id string) (*recipe.Recipe, error) {
	v, ok := r.recipes.get(id)
	if !ok {
		return nil, recipe.ErrRecipeNotFound
	}
	return &v, nil
}

// Delete reports whether the recipe existed
func (r *RecipeRepository) Delete(_ context.Context, id string) (bool, error) {
	return r.recipes.remove(id), nil
}

// Count returns the number of stored recipes
func (r *RecipeRepository) Count(_ context.Context) (int, error) {
	return r.recipes.len(), nil
}

// PantryRepository keeps pantry items for the lifetime of the process
type PantryRepository struct {
	items *collection[pantry.Item]
}

// NewPantryRepository creates a new in-memory pantry repository
func NewPantryRepository() *PantryRepository {
	return &PantryRepository{items: newCollection[pantry.Item]()}
}

var _ outbound.PantryRepository = (*PantryRepository)(nil)

func (r *PantryRepository) Save(_ context.Context, item *pantry.Item) error {
	r.items.save(item.ID, *item)
	return nil
}

func (r *PantryRepository) List(_ context.Context) ([]*pantry.Item, error) {
	values := r.items.list()
	out := make([]*pantry.Item, len(values))
	for i := range values {
		out[i] = &values[i]
	}
	return out, nil
}

func (r *PantryRepository) FindByID(_ context.Context, id string) (*pantry.Item, error) {
	v, ok := r.items.get(id)
	if !ok {
		return nil, pantry.ErrItemNotFound
	}
	return &v, nil
}

func (r *PantryRepository) Delete(_ context.Context, id string) (bool, error) {
	return r.items.remove(id), nil
}
