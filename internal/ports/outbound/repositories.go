// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/savory/api/internal/domain/copilot"
	"github.com/savory/api/internal/domain/pantry"
	"github.com/savory/api/internal/domain/recipe"
)

// ErrCacheMiss is returned by CacheRepository.Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// RecipeRepository defines the interface for recipe persistence.
// List returns recipes in the order they were first saved.
type RecipeRepository interface {
	Save(ctx context.Context, r *recipe.Recipe) error
	List(ctx context.Context) ([]*recipe.Recipe, error)
	// FindByID returns recipe.ErrRecipeNotFound when no recipe has the id.
	FindByID(ctx context.Context, id string) (*recipe.Recipe, error)
	// Delete reports whether a recipe with the id existed.
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// PantryRepository defines the interface for pantry persistence
type PantryRepository interface {
	Save(ctx context.Context, item *pantry.Item) error
	List(ctx context.Context) ([]*pantry.Item, error)
	FindByID(ctx context.Context, id string) (*pantry.Item, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// CompletionRequest is what a language model receives for one chat turn.
type CompletionRequest struct {
	Instruction string
	Turns       []copilot.Turn
}

// ChatCompleter is an external language-model service.
type ChatCompleter interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	// Provider names the backing service, e.g. "openai".
	Provider() string
}
