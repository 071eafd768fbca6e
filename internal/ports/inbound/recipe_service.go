// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
	"time"

	"github.com/savory/api/internal/domain/copilot"
	"github.com/savory/api/internal/domain/pantry"
	"github.com/savory/api/internal/domain/recipe"
	"github.com/savory/api/internal/domain/suggestion"
)

// RecipeService defines the use cases for recipe management
type RecipeService interface {
	// Commands - operations that modify state
	CreateRecipe(ctx context.Context, cmd CreateRecipeCommand) (*recipe.Recipe, error)
	UpdateRecipe(ctx context.Context, cmd UpdateRecipeCommand) (*recipe.Recipe, error)
	DeleteRecipe(ctx context.Context, id string) error
	SeedIfEmpty(ctx context.Context) (int, error)

	// Queries - operations that read state
	GetRecipe(ctx context.Context, id string) (*recipe.Recipe, error)
	ListRecipes(ctx context.Context) ([]*recipe.Recipe, error)
	SearchRecipes(ctx context.Context, query SearchQuery) ([]*recipe.Recipe, error)
	SuggestRecipes(ctx context.Context) ([]suggestion.Suggestion, error)
}

// PantryService defines the use cases for the pantry
type PantryService interface {
	AddItem(ctx context.Context, cmd CreatePantryItemCommand) (*pantry.Item, error)
	ListItems(ctx context.Context) ([]*pantry.Item, error)
	RemoveItem(ctx context.Context, id string) error
}

// CopilotService answers cooking questions.
type CopilotService interface {
	Chat(ctx context.Context, cmd ChatCommand) (*ChatReply, error)
}

// CreateRecipeCommand contains data for creating a new recipe
type CreateRecipeCommand struct {
	Title            string
	Description      string
	SourceURL        string
	Servings         *int
	PrepTimeMinutes  *int
	CookTimeMinutes  *int
	TotalTimeMinutes *int
	Ingredients      []recipe.IngredientLine
	Steps            []recipe.Step
	Tags             []string
}

// UpdateRecipeCommand contains data for updating a recipe.
// Nil fields keep their stored values.
type UpdateRecipeCommand struct {
	RecipeID         string
	Title            *string
	Description      *string
	SourceURL        *string
	Servings         *int
	PrepTimeMinutes  *int
	CookTimeMinutes  *int
	TotalTimeMinutes *int
	Ingredients      *[]recipe.IngredientLine
	Steps            *[]recipe.Step
	Tags             *[]string
}

// SearchQuery defines search parameters
type SearchQuery struct {
	Query          string
	Tag            string
	MaxTimeMinutes *float64
}

// CreatePantryItemCommand contains data for adding a pantry item
type CreatePantryItemCommand struct {
	Name      string
	HaveState string
	Quantity  *float64
	Unit      string
	ExpiresAt *time.Time
}

// ChatCommand is one copilot request.
type ChatCommand struct {
	Messages []copilot.Turn
	Context  copilot.Context
}

// ChatReply is the copilot's answer.
type ChatReply struct {
	Message string       `json:"message"`
	Mode    copilot.Mode `json:"mode"`
}
