// Package recipe contains the core domain logic for recipe management.
package recipe

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Recipe represents the core recipe entity in our domain.
type Recipe struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	SourceURL   string `json:"sourceUrl,omitempty"`

	Servings         *int `json:"servings,omitempty"`
	PrepTimeMinutes  *int `json:"prepTimeMinutes,omitempty"`
	CookTimeMinutes  *int `json:"cookTimeMinutes,omitempty"`
	TotalTimeMinutes *int `json:"totalTimeMinutes,omitempty"`

	Ingredients []IngredientLine `json:"ingredients"`
	Steps       []Step           `json:"steps"`
	Tags        []string         `json:"tags"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Draft carries everything needed to create a recipe.
type Draft struct {
	Title            string
	Description      string
	SourceURL        string
	Servings         *int
	PrepTimeMinutes  *int
	CookTimeMinutes  *int
	TotalTimeMinutes *int
	Ingredients      []IngredientLine
	Steps            []Step
	Tags             []string
}

// Patch lists the fields an update replaces; nil means keep the stored value.
type Patch struct {
	Title            *string
	Description      *string
	SourceURL        *string
	Servings         *int
	PrepTimeMinutes  *int
	CookTimeMinutes  *int
	TotalTimeMinutes *int
	Ingredients      *[]IngredientLine
	Steps            *[]Step
	Tags             *[]string
}

// NewRecipe creates a new Recipe with validation. Steps are renumbered from
// zero in the order given, and CreatedAt equals UpdatedAt.
func NewRecipe(d Draft, now time.Time) (*Recipe, error) {
	if strings.TrimSpace(d.Title) == "" {
		return nil, ErrTitleRequired
	}
	if len(d.Ingredients) == 0 {
		return nil, ErrNoIngredients
	}
	if len(d.Steps) == 0 {
		return nil, ErrNoSteps
	}
	if err := validateLines(d.Ingredients, d.Steps); err != nil {
		return nil, err
	}
	if err := validateNumbers(d.Servings, d.PrepTimeMinutes, d.CookTimeMinutes, d.TotalTimeMinutes); err != nil {
		return nil, err
	}

	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}

	return &Recipe{
		ID:               uuid.New().String(),
		Title:            d.Title,
		Description:      d.Description,
		SourceURL:        d.SourceURL,
		Servings:         d.Servings,
		PrepTimeMinutes:  d.PrepTimeMinutes,
		CookTimeMinutes:  d.CookTimeMinutes,
		TotalTimeMinutes: d.TotalTimeMinutes,
		Ingredients:      append([]IngredientLine(nil), d.Ingredients...),
		Steps:            renumberSteps(d.Steps),
		Tags:             append([]string{}, tags...),
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// Apply returns a copy of r with the patch merged in. The receiver is left
// untouched, so a failed validation never leaves a half-updated record.
// ID and CreatedAt are always preserved.
func (r *Recipe) Apply(p Patch, now time.Time) (*Recipe, error) {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return nil, ErrTitleEmpty
	}

	updated := *r
	if p.Title != nil {
		updated.Title = *p.Title
	}
	if p.Description != nil {
		updated.Description = *p.Description
	}
	if p.SourceURL != nil {
		updated.SourceURL = *p.SourceURL
	}
	if p.Servings != nil {
		updated.Servings = p.Servings
	}
	if p.PrepTimeMinutes != nil {
		updated.PrepTimeMinutes = p.PrepTimeMinutes
	}
	if p.CookTimeMinutes != nil {
		updated.CookTimeMinutes = p.CookTimeMinutes
	}
	if p.TotalTimeMinutes != nil {
		updated.TotalTimeMinutes = p.TotalTimeMinutes
	}
	if p.Ingredients != nil {
		updated.Ingredients = append([]IngredientLine{}, (*p.Ingredients)...)
	}
	if p.Steps != nil {
		updated.Steps = renumberSteps(*p.Steps)
	}
	if p.Tags != nil {
		updated.Tags = append([]string{}, (*p.Tags)...)
	}

	if err := validateLines(updated.Ingredients, updated.Steps); err != nil {
		return nil, err
	}
	if err := validateNumbers(updated.Servings, updated.PrepTimeMinutes, updated.CookTimeMinutes, updated.TotalTimeMinutes); err != nil {
		return nil, err
	}

	updated.ID = r.ID
	updated.CreatedAt = r.CreatedAt
	updated.UpdatedAt = now
	return &updated, nil
}

// TotalTime returns TotalTimeMinutes when set, otherwise prep + cook with
// missing values counted as zero.
func (r *Recipe) TotalTime() int {
	if r.TotalTimeMinutes != nil {
		return *r.TotalTimeMinutes
	}
	total := 0
	if r.PrepTimeMinutes != nil {
		total += *r.PrepTimeMinutes
	}
	if r.CookTimeMinutes != nil {
		total += *r.CookTimeMinutes
	}
	return total
}

// IngredientNames returns the ingredient names in recipe order.
func (r *Recipe) IngredientNames() []string {
	names := make([]string, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		names[i] = ing.Name
	}
	return names
}

func validateLines(ingredients []IngredientLine, steps []Step) error {
	for _, ing := range ingredients {
		if err := ing.Validate(); err != nil {
			return err
		}
	}
	for _, s := range steps {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func validateNumbers(servings *int, times ...*int) error {
	if servings != nil && *servings <= 0 {
		return ErrInvalidServings
	}
	for _, t := range times {
		if t != nil && *t < 0 {
			return ErrNegativeTime
		}
	}
	return nil
}
