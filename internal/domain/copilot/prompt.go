package copilot

import (
	"fmt"
	"strings"
)

const instructionTemplate = `You are Savory, a calm, practical cooking copilot.

Goals:
- Help the user successfully cook the recipe step-by-step.
- Answer questions clearly and safely.
- Offer substitutions when ingredients are missing, using the pantry context.
- Keep responses concise and actionable (bullets are fine).

Safety:
- If user asks about raw meat safety, doneness, food storage, allergies, or cross-contamination: be conservative and recommend safe practices.
- If you are unsure, say so and suggest a safe option.

Context:
Recipe: %s
Ingredients: %s
Current step: %s
Pantry have: %s
Pantry missing: %s`

// BuildInstruction renders the system instruction sent ahead of the turns.
func BuildInstruction(ctx Context) string {
	title := ctx.RecipeTitle
	if title == "" {
		title = unknownRecipe
	}
	step := ctx.CurrentStep
	if step == "" {
		step = "(not in cook mode step yet)"
	}
	return fmt.Sprintf(instructionTemplate,
		title,
		joinOr(ctx.Ingredients, "(none provided)"),
		step,
		joinOr(ctx.PantryHave, "(unknown)"),
		joinOr(ctx.PantryMissing, "(unknown)"),
	)
}

func joinOr(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	return strings.Join(items, ", ")
}
