package gorm

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	gormlib "gorm.io/gorm"

	"github.com/savory/api/internal/domain/pantry"
	"github.com/savory/api/internal/domain/recipe"
	"github.com/savory/api/internal/infrastructure/config"
)

// RepositoryTestSuite runs the repositories against a file-backed SQLite database
type RepositoryTestSuite struct {
	suite.Suite
	db      *gormlib.DB
	recipes *RecipeRepository
	pantry  *PantryRepository
	ctx     context.Context
}

func (suite *RepositoryTestSuite) SetupTest() {
	cfg := &config.Config{
		Store: config.StoreConfig{Driver: config.StoreSQLite},
		Database: config.DatabaseConfig{
			Path:         filepath.Join(suite.T().TempDir(), "savory.db"),
			MaxOpenConns: 1,
			MaxIdleConns: 1,
			LogLevel:     "silent",
		},
	}
	db, err := Open(cfg, zap.NewNop())
	require.NoError(suite.T(), err)

	suite.db = db
	suite.recipes = NewRecipeRepository(db)
	suite.pantry = NewPantryRepository(db)
	suite.ctx = context.Background()
}

func (suite *RepositoryTestSuite) TearDownTest() {
	_ = Close(suite.db)
}

func (suite *RepositoryTestSuite) newRecipe(title string) *recipe.Recipe {
	total := 10
	r, err := recipe.NewRecipe(recipe.Draft{
		Title:            title,
		TotalTimeMinutes: &total,
		Ingredients:      []recipe.IngredientLine{{Name: "bread"}, {Name: "butter", Optional: true}},
		Steps:            []recipe.Step{{Instruction: "Toast"}, {Instruction: "Spread"}},
		Tags:             []string{"quick"},
	}, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(suite.T(), err)
	return r
}

func (suite *RepositoryTestSuite) TestRecipeRoundTrip() {
	original := suite.newRecipe("Toast")
	require.NoError(suite.T(), suite.recipes.Save(suite.ctx, original))

	loaded, err := suite.recipes.FindByID(suite.ctx, original.ID)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), original.Title, loaded.Title)
	assert.Equal(suite.T(), original.Ingredients, loaded.Ingredients)
	assert.Equal(suite.T(), original.Steps, loaded.Steps)
	assert.Equal(suite.T(), original.Tags, loaded.Tags)
	assert.Equal(suite.T(), 10, *loaded.TotalTimeMinutes)
	assert.Nil(suite.T(), loaded.PrepTimeMinutes)
	assert.True(suite.T(), original.CreatedAt.Equal(loaded.CreatedAt))
}

func (suite *RepositoryTestSuite) TestRecipeOrderAndUpsert() {
	a := suite.newRecipe("A")
	b := suite.newRecipe("B")
	c := suite.newRecipe("C")
	for _, r := range []*recipe.Recipe{a, b, c} {
		require.NoError(suite.T(), suite.recipes.Save(suite.ctx, r))
	}

	title := "A2"
	updated, err := a.Apply(recipe.Patch{Title: &title}, a.CreatedAt.Add(time.Hour))
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), suite.recipes.Save(suite.ctx, updated))

	list, err := suite.recipes.List(suite.ctx)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), list, 3)
	assert.Equal(suite.T(), []string{"A2", "B", "C"}, []string{list[0].Title, list[1].Title, list[2].Title})
	assert.True(suite.T(), list[0].UpdatedAt.After(list[0].CreatedAt))

	count, err := suite.recipes.Count(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, count)
}

func (suite *RepositoryTestSuite) TestRecipeDelete() {
	r := suite.newRecipe("Gone")
	require.NoError(suite.T(), suite.recipes.Save(suite.ctx, r))

	existed, err := suite.recipes.Delete(suite.ctx, r.ID)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), existed)

	existed, err = suite.recipes.Delete(suite.ctx, r.ID)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), existed)

	_, err = suite.recipes.FindByID(suite.ctx, r.ID)
	assert.ErrorIs(suite.T(), err, recipe.ErrRecipeNotFound)
}

func (suite *RepositoryTestSuite) TestPantry() {
	qty := 2.5
	expires := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	item, err := pantry.NewItem(pantry.Draft{Name: "Rice", HaveState: pantry.Have, Quantity: &qty, Unit: "kg", ExpiresAt: &expires}, time.Now().UTC())
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), suite.pantry.Save(suite.ctx, item))

	list, err := suite.pantry.List(suite.ctx)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), list, 1)
	assert.Equal(suite.T(), "Rice", list[0].Name)
	assert.Equal(suite.T(), pantry.Have, list[0].HaveState)
	assert.Equal(suite.T(), 2.5, *list[0].Quantity)
	assert.True(suite.T(), expires.Equal(*list[0].ExpiresAt))

	existed, err := suite.pantry.Delete(suite.ctx, item.ID)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), existed)

	_, err = suite.pantry.FindByID(suite.ctx, item.ID)
	assert.ErrorIs(suite.T(), err, pantry.ErrItemNotFound)
}

func (suite *RepositoryTestSuite) TestPing() {
	assert.NoError(suite.T(), Ping(suite.ctx, suite.db))
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func TestOpen_RejectsMemoryDriver(t *testing.T) {
	_, err := Open(&config.Config{Store: config.StoreConfig{Driver: config.StoreMemory}}, zap.NewNop())
	assert.Error(t, err)
}
