package recipe

import (
	"context"

	"go.uber.org/zap"

	"github.com/savory/api/internal/domain/recipe"
	"github.com/savory/api/pkg/errors"
)

type seedRecipe struct {
	title       string
	ingredients []string
	steps       []string
	tags        []string
	totalTime   int
}

var starterRecipes = []seedRecipe{
	{
		title:       "Egg Fried Rice",
		ingredients: []string{"rice", "eggs", "soy sauce", "scallions", "oil", "salt"},
		steps: []string{
			"Heat a pan with oil.",
			"Scramble eggs and set aside.",
			"Add rice and break up clumps.",
			"Add soy sauce and salt, stir well.",
			"Stir in eggs and scallions, serve.",
		},
		tags:      []string{"quick", "asian"},
		totalTime: 15,
	},
	{
		title:       "Garlic Butter Pasta",
		ingredients: []string{"pasta", "garlic", "butter", "parmesan", "salt", "pepper"},
		steps: []string{
			"Boil pasta in salted water until al dente.",
			"Melt butter and sauté garlic briefly.",
			"Toss pasta with garlic butter.",
			"Add parmesan and pepper, serve.",
		},
		tags:      []string{"quick", "comfort"},
		totalTime: 20,
	},
	{
		title:       "Chicken Stir Fry",
		ingredients: []string{"chicken", "soy sauce", "garlic", "ginger", "broccoli", "oil"},
		steps: []string{
			"Slice chicken and prep vegetables.",
			"Stir fry chicken until browned.",
			"Add garlic and ginger, cook briefly.",
			"Add broccoli and a splash of water, cover to steam.",
			"Add soy sauce, toss, serve.",
		},
		tags:      []string{"protein", "asian"},
		totalTime: 25,
	},
}

// SeedIfEmpty inserts the starter recipes when the store holds none and
// returns how many were inserted.
func (s *RecipeService) SeedIfEmpty(ctx context.Context) (int, error) {
	count, err := s.recipeRepo.Count(ctx)
	if err != nil {
		return 0, errors.NewDatabaseError("count recipes", err)
	}
	if count > 0 {
		return 0, nil
	}

	now := s.now()
	for _, seed := range starterRecipes {
		total := seed.totalTime
		draft := recipe.Draft{
			Title:            seed.title,
			TotalTimeMinutes: &total,
			Tags:             seed.tags,
		}
		for _, name := range seed.ingredients {
			draft.Ingredients = append(draft.Ingredients, recipe.IngredientLine{Name: name})
		}
		for _, instruction := range seed.steps {
			draft.Steps = append(draft.Steps, recipe.Step{Instruction: instruction})
		}

		entity, err := recipe.NewRecipe(draft, now)
		if err != nil {
			return 0, errors.Wrap(err, "invalid seed recipe")
		}
		if err := s.recipeRepo.Save(ctx, entity); err != nil {
			return 0, errors.NewDatabaseError("seed recipes", err)
		}
	}

	s.logger.Info("Seeded starter recipes", zap.Int("count", len(starterRecipes)))
	return len(starterRecipes), nil
}
