package recipe

import "errors"

// Domain errors for recipe operations

var (
	// Entity validation errors
	ErrTitleRequired           = errors.New("title is required")
	ErrTitleEmpty              = errors.New("title cannot be empty")
	ErrNoIngredients           = errors.New("ingredients are required")
	ErrNoSteps                 = errors.New("steps are required")
	ErrIngredientNameRequired  = errors.New("ingredient name is required")
	ErrStepInstructionRequired = errors.New("step instruction is required")
	ErrNegativeQuantity        = errors.New("ingredient quantity cannot be negative")
	ErrNegativeTimer           = errors.New("step timer cannot be negative")
	ErrInvalidServings         = errors.New("servings must be greater than 0")
	ErrNegativeTime            = errors.New("time in minutes cannot be negative")

	// Lookup errors
	ErrRecipeNotFound = errors.New("recipe not found")
)
