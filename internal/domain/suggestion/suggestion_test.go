package suggestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savory/api/internal/domain/pantry"
	"github.com/savory/api/internal/domain/recipe"
)

func withIngredients(id string, names ...string) *recipe.Recipe {
	r := &recipe.Recipe{ID: id, Title: id}
	for _, n := range names {
		r.Ingredients = append(r.Ingredients, recipe.IngredientLine{Name: n})
	}
	return r
}

func have(names ...string) []*pantry.Item {
	items := make([]*pantry.Item, len(names))
	for i, n := range names {
		items[i] = &pantry.Item{Name: n, HaveState: pantry.Have}
	}
	return items
}

func TestMatch(t *testing.T) {
	t.Run("zero ingredients scores zero", func(t *testing.T) {
		s := Match(pantry.HaveSet(have("rice")), withIngredients("empty"))

		assert.Equal(t, 0, s.MatchPercent)
		assert.Empty(t, s.MissingIngredients)
		assert.NotNil(t, s.MissingIngredients)
	})

	t.Run("case and whitespace insensitive", func(t *testing.T) {
		s := Match(pantry.HaveSet(have("Rice ")), withIngredients("r", "rice"))

		assert.Equal(t, 100, s.MatchPercent)
		assert.Empty(t, s.MissingIngredients)
	})

	t.Run("missing names are normalized", func(t *testing.T) {
		s := Match(pantry.HaveSet(have("rice")), withIngredients("r", "rice", " Eggs", "oil"))

		assert.Equal(t, 33, s.MatchPercent)
		assert.Equal(t, []string{"eggs", "oil"}, s.MissingIngredients)
	})

	t.Run("half rounds up", func(t *testing.T) {
		// 1 of 8 is 12.5%
		s := Match(pantry.HaveSet(have("a")), withIngredients("r", "a", "b", "c", "d", "e", "f", "g", "h"))
		assert.Equal(t, 13, s.MatchPercent)
	})

	t.Run("dont_have items are ignored", func(t *testing.T) {
		items := []*pantry.Item{{Name: "bread", HaveState: pantry.DontHave}}
		s := Match(pantry.HaveSet(items), withIngredients("toast", "bread"))

		assert.Equal(t, 0, s.MatchPercent)
		assert.Equal(t, []string{"bread"}, s.MissingIngredients)
	})

	t.Run("idempotent", func(t *testing.T) {
		set := pantry.HaveSet(have("rice", "eggs"))
		r := withIngredients("r", "rice", "eggs", "soy sauce")

		assert.Equal(t, Match(set, r), Match(set, r))
	})
}

func TestRank(t *testing.T) {
	recipes := []*recipe.Recipe{
		withIngredients("low", "x", "y"),
		withIngredients("tie-first", "rice", "z"),
		withIngredients("full", "rice"),
		withIngredients("tie-second", "eggs", "w"),
		withIngredients("none"),
	}

	out := Rank(have("rice", "eggs"), recipes)

	require.Len(t, out, len(recipes))
	got := make([]string, len(out))
	for i, s := range out {
		got[i] = s.Recipe.ID
		assert.GreaterOrEqual(t, s.MatchPercent, 0)
		assert.LessOrEqual(t, s.MatchPercent, 100)
		if i > 0 {
			assert.GreaterOrEqual(t, out[i-1].MatchPercent, s.MatchPercent)
		}
	}
	assert.Equal(t, []string{"full", "tie-first", "tie-second", "low", "none"}, got)
}
