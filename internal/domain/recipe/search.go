package recipe

import (
	"strings"

	"github.com/savory/api/internal/domain/shared"
)

// Criteria holds the optional search filters. A nil or empty field imposes
// no constraint.
type Criteria struct {
	Query          string
	Tag            string
	MaxTimeMinutes *float64
}

// Filter returns the recipes satisfying every filter in c, in input order.
func Filter(recipes []*Recipe, c Criteria) []*Recipe {
	query := shared.NormalizeName(c.Query)
	tag := shared.NormalizeName(c.Tag)

	out := make([]*Recipe, 0, len(recipes))
	for _, r := range recipes {
		if tag != "" && !r.HasTag(tag) {
			continue
		}
		if c.MaxTimeMinutes != nil && float64(r.TotalTime()) > *c.MaxTimeMinutes {
			continue
		}
		if query != "" && !strings.Contains(r.haystack(), query) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// HasTag reports whether the recipe carries tag after normalization.
func (r *Recipe) HasTag(tag string) bool {
	want := shared.NormalizeName(tag)
	for _, t := range r.Tags {
		if shared.NormalizeName(t) == want {
			return true
		}
	}
	return false
}

func (r *Recipe) haystack() string {
	parts := make([]string, 0, 1+len(r.Tags)+len(r.Ingredients))
	parts = append(parts, r.Title)
	parts = append(parts, r.Tags...)
	parts = append(parts, r.IngredientNames()...)
	return strings.ToLower(strings.Join(parts, " "))
}
