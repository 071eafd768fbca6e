package container

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"github.com/savory/api/internal/infrastructure/config"
	"github.com/savory/api/internal/infrastructure/persistence/memory"
)

func TestModule_GraphIsComplete(t *testing.T) {
	err := fx.ValidateApp(
		fx.NopLogger,
		fx.Supply(ConfigPath("")),
		Module,
	)
	assert.NoError(t, err)
}

func TestNewStore_Memory(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.StoreMemory}}

	store, err := NewStore(lc, cfg, zap.NewNop())

	require.NoError(t, err)
	assert.IsType(t, &memory.RecipeRepository{}, store.Recipes)
	assert.IsType(t, &memory.PantryRepository{}, store.Pantry)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestNewStore_SQLite(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	cfg := &config.Config{
		Store:    config.StoreConfig{Driver: config.StoreSQLite},
		Database: config.DatabaseConfig{Path: t.TempDir() + "/savory.db", LogLevel: "silent"},
	}

	store, err := NewStore(lc, cfg, zap.NewNop())
	require.NoError(t, err)

	lc.RequireStart()
	assert.NoError(t, store.Ping(context.Background()))
	count, err := store.Recipes.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	lc.RequireStop()
}

func TestNewCache_Memory(t *testing.T) {
	lc := fxtest.NewLifecycle(t)

	cache, err := NewCache(lc, &config.Config{}, zap.NewNop())

	require.NoError(t, err)
	assert.IsType(t, &memory.CacheRepository{}, cache)
	assert.NoError(t, cache.Ping(context.Background()))
	lc.RequireStart().RequireStop()
}

func TestNewChatCompleter_NoCredential(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	cfg := &config.Config{AI: config.AIConfig{Provider: config.ProviderOpenAI}}

	completer, err := NewChatCompleter(lc, cfg, zap.NewNop())

	require.NoError(t, err)
	assert.Nil(t, completer)
}
