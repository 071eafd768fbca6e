package recipe

import "strings"

// Value Objects - Immutable objects that describe aspects of the domain

// IngredientLine represents one ingredient of a recipe. Only Name takes part
// in matching and search.
type IngredientLine struct {
	Name     string   `json:"name" validate:"notblank"`
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     string   `json:"unit,omitempty"`
	Notes    string   `json:"notes,omitempty"`
	Optional bool     `json:"optional,omitempty"`
}

// Validate validates the ingredient line
func (i IngredientLine) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrIngredientNameRequired
	}
	if i.Quantity != nil && *i.Quantity < 0 {
		return ErrNegativeQuantity
	}
	return nil
}

// Step represents a cooking instruction step
type Step struct {
	Index        int    `json:"index"`
	Instruction  string `json:"instruction" validate:"notblank"`
	TimerSeconds *int   `json:"timerSeconds,omitempty"`
}

// Validate validates the step
func (s Step) Validate() error {
	if strings.TrimSpace(s.Instruction) == "" {
		return ErrStepInstructionRequired
	}
	if s.TimerSeconds != nil && *s.TimerSeconds < 0 {
		return ErrNegativeTimer
	}
	return nil
}

// renumberSteps returns a copy of steps whose indices match their position.
func renumberSteps(steps []Step) []Step {
	out := make([]Step, len(steps))
	for i, s := range steps {
		s.Index = i
		out[i] = s
	}
	return out
}
