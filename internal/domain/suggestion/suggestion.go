// Package suggestion ranks recipes by how much of them the pantry covers.
package suggestion

import (
	"math"
	"sort"

	"github.com/savory/api/internal/domain/pantry"
	"github.com/savory/api/internal/domain/recipe"
	"github.com/savory/api/internal/domain/shared"
)

// Suggestion is a derived, never persisted, view of a recipe against the pantry.
type Suggestion struct {
	Recipe             *recipe.Recipe `json:"recipe"`
	MatchPercent       int            `json:"matchPercent"`
	MissingIngredients []string       `json:"missingIngredients"`
}

// Match scores a single recipe against the have-set. A recipe without
// ingredients scores 0.
func Match(have map[string]struct{}, r *recipe.Recipe) Suggestion {
	missing := make([]string, 0)
	for _, ing := range r.Ingredients {
		name := shared.NormalizeName(ing.Name)
		if _, ok := have[name]; !ok {
			missing = append(missing, name)
		}
	}

	den := len(r.Ingredients)
	if den < 1 {
		den = 1
	}
	haveCount := len(r.Ingredients) - len(missing)

	return Suggestion{
		Recipe:             r,
		MatchPercent:       percent(haveCount, den),
		MissingIngredients: missing,
	}
}

// Rank scores every recipe and orders the result by match percentage,
// highest first. Equal scores keep their input order.
func Rank(items []*pantry.Item, recipes []*recipe.Recipe) []Suggestion {
	have := pantry.HaveSet(items)

	out := make([]Suggestion, len(recipes))
	for i, r := range recipes {
		out[i] = Match(have, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchPercent > out[j].MatchPercent
	})
	return out
}

// percent rounds half away from zero.
func percent(have, den int) int {
	return int(math.Round(float64(have) / float64(den) * 100))
}
