// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/savory/api/internal/domain/pantry"
	"github.com/savory/api/internal/domain/recipe"
	"github.com/savory/api/internal/ports/inbound"
)

// RecipeFactory provides methods to create test recipes
type RecipeFactory struct {
	faker *gofakeit.Faker
}

// NewRecipeFactory creates a new recipe factory with seeded faker
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{faker: gofakeit.New(seed)}
}

// Ingredients returns n distinct lower-case ingredient lines.
func (f *RecipeFactory) Ingredients(n int) []recipe.IngredientLine {
	seen := make(map[string]bool, n)
	lines := make([]recipe.IngredientLine, 0, n)
	for len(lines) < n {
		name := strings.ToLower(f.faker.Vegetable())
		if seen[name] {
			name = name + " " + strings.ToLower(f.faker.Adjective())
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		qty := float64(f.faker.Number(1, 500))
		lines = append(lines, recipe.IngredientLine{
			Name:     name,
			Quantity: &qty,
			Unit:     f.faker.RandomString([]string{"g", "ml", "cup", "tbsp", "tsp"}),
		})
	}
	return lines
}

// Steps returns n steps with arbitrary indices.
func (f *RecipeFactory) Steps(n int) []recipe.Step {
	steps := make([]recipe.Step, n)
	for i := range steps {
		steps[i] = recipe.Step{
			Index:       f.faker.Number(0, 100),
			Instruction: f.faker.Sentence(6),
		}
	}
	return steps
}

// CreateCommand builds a valid create command.
func (f *RecipeFactory) CreateCommand() inbound.CreateRecipeCommand {
	prep := f.faker.Number(0, 30)
	cook := f.faker.Number(0, 90)
	servings := f.faker.Number(1, 8)
	return inbound.CreateRecipeCommand{
		Title:           f.faker.Dessert(),
		Description:     f.faker.Sentence(10),
		SourceURL:       f.faker.URL(),
		Servings:        &servings,
		PrepTimeMinutes: &prep,
		CookTimeMinutes: &cook,
		Ingredients:     f.Ingredients(f.faker.Number(1, 6)),
		Steps:           f.Steps(f.faker.Number(1, 5)),
		Tags:            []string{strings.ToLower(f.faker.Adjective())},
	}
}

// Draft builds a valid domain draft.
func (f *RecipeFactory) Draft() recipe.Draft {
	cmd := f.CreateCommand()
	return recipe.Draft{
		Title:           cmd.Title,
		Description:     cmd.Description,
		SourceURL:       cmd.SourceURL,
		Servings:        cmd.Servings,
		PrepTimeMinutes: cmd.PrepTimeMinutes,
		CookTimeMinutes: cmd.CookTimeMinutes,
		Ingredients:     cmd.Ingredients,
		Steps:           cmd.Steps,
		Tags:            cmd.Tags,
	}
}

// PantryFactory provides methods to create test pantry items
type PantryFactory struct {
	faker *gofakeit.Faker
}

// NewPantryFactory creates a new pantry factory with seeded faker
func NewPantryFactory(seed int64) *PantryFactory {
	return &PantryFactory{faker: gofakeit.New(seed)}
}

// CreateCommand builds a valid pantry command in the given state.
func (f *PantryFactory) CreateCommand(state pantry.HaveState) inbound.CreatePantryItemCommand {
	qty := float64(f.faker.Number(1, 10))
	return inbound.CreatePantryItemCommand{
		Name:      f.faker.Fruit(),
		HaveState: string(state),
		Quantity:  &qty,
		Unit:      "pcs",
	}
}
