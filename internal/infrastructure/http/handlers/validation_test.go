package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savory/api/internal/domain/recipe"
	"github.com/savory/api/pkg/errors"
)

func validationMessages(t *testing.T, err error) []string {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.CodeValidationFailed))

	appErr := errors.Wrap(err, "")
	errs, ok := appErr.Metadata["validation_errors"].(errors.ValidationErrors)
	require.True(t, ok)

	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Message
	}
	return out
}

func TestValidator_CreateRecipe(t *testing.T) {
	v := NewValidator()

	t.Run("valid", func(t *testing.T) {
		err := v.Struct(CreateRecipeRequest{
			Title:       "Toast",
			Ingredients: []recipe.IngredientLine{{Name: "bread"}},
			Steps:       []recipe.Step{{Instruction: "toast"}},
		})
		assert.NoError(t, err)
	})

	t.Run("missing everything", func(t *testing.T) {
		msgs := validationMessages(t, v.Struct(CreateRecipeRequest{Title: "  "}))
		assert.Equal(t, []string{"title is required", "ingredients is required", "steps is required"}, msgs)
	})

	t.Run("empty lists", func(t *testing.T) {
		msgs := validationMessages(t, v.Struct(CreateRecipeRequest{
			Title:       "Toast",
			Ingredients: []recipe.IngredientLine{},
			Steps:       []recipe.Step{},
		}))
		assert.Equal(t, []string{
			"ingredients must contain at least 1 item(s)",
			"steps must contain at least 1 item(s)",
		}, msgs)
	})

	t.Run("nested line", func(t *testing.T) {
		msgs := validationMessages(t, v.Struct(CreateRecipeRequest{
			Title:       "Toast",
			Ingredients: []recipe.IngredientLine{{Name: "bread"}, {Name: " "}},
			Steps:       []recipe.Step{{Instruction: "toast"}},
		}))
		assert.Equal(t, []string{"ingredients[1].name is required"}, msgs)
	})

	t.Run("servings", func(t *testing.T) {
		zero := 0
		msgs := validationMessages(t, v.Struct(CreateRecipeRequest{
			Title:       "Toast",
			Servings:    &zero,
			Ingredients: []recipe.IngredientLine{{Name: "bread"}},
			Steps:       []recipe.Step{{Instruction: "toast"}},
		}))
		assert.Equal(t, []string{"servings must be greater than 0"}, msgs)
	})
}

func TestValidator_PantryItem(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Struct(CreatePantryItemRequest{Name: "rice", HaveState: "have"}))

	msgs := validationMessages(t, v.Struct(CreatePantryItemRequest{Name: "rice", HaveState: "maybe"}))
	assert.Equal(t, []string{"haveState must be one of: have, dont_have"}, msgs)

	msgs = validationMessages(t, v.Struct(CreatePantryItemRequest{}))
	assert.Equal(t, []string{"name is required", "haveState is required"}, msgs)
}
