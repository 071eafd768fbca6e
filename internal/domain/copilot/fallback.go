package copilot

import "strings"

const (
	unknownRecipe  = "Unknown recipe"
	maxPantryNames = 6
)

var (
	substitutionWords = []string{"substitute", "replace", "instead"}
	safetyWords       = []string{"done", "safe", "cook", "temperature"}
	stepWords         = []string{"step", "what do i do", "next"}
)

// FallbackAnswer builds a rule-based reply from the question and context.
// It never fails and never reaches an external service.
func FallbackAnswer(question string, ctx Context) string {
	q := strings.ToLower(question)
	var lines []string

	if containsAny(q, substitutionWords) {
		lines = append(lines, "Substitution idea (offline mode):")
		if strings.Contains(q, "oyster") {
			lines = append(lines,
				"- If you have soy sauce: use soy sauce + a small pinch of sugar/honey to mimic sweetness.",
				"- If you have hoisin: use a smaller amount (it's sweeter/thicker).",
				"- If you have Worcestershire: add a few drops for savory depth.",
			)
		} else {
			lines = append(lines, "- Tell me what ingredient you're missing, and what you *do* have, and I'll suggest the closest swap.")
		}
		lines = append(lines, "- Start with half the amount, taste, then adjust.")
	}

	if containsAny(q, safetyWords) {
		lines = append(lines,
			"Food safety (offline mode):",
			"- For poultry: aim for 165°F / 74°C internal temp.",
			"- For ground meats: 160°F / 71°C (beef/pork), poultry still 165°F.",
			"- If you don't have a thermometer: look for clear juices and no pink in the center (less reliable).",
		)
	}

	if containsAny(q, stepWords) {
		lines = append(lines, "Step guidance (offline mode):")
		if ctx.CurrentStep != "" {
			lines = append(lines,
				"- Current step: "+ctx.CurrentStep,
				"- If something looks off, tell me what you see/smell/texture and I'll troubleshoot.",
			)
		} else {
			lines = append(lines, "- Tell me which step you're on and what feels unclear.")
		}
	}

	if len(ctx.PantryMissing) > 0 {
		lines = append(lines,
			"Pantry check (offline mode):",
			"- Missing: "+truncateNames(ctx.PantryMissing),
			"- Have: "+truncateNames(ctx.PantryHave),
		)
	}

	if len(lines) == 0 {
		lines = append(lines,
			"Offline mode response:",
			"- Tell me what ingredient/tool you're missing, what step you're on, and what you have in your pantry.",
			"- I can suggest substitutions, timing adjustments, and troubleshooting checks.",
		)
	}

	title := ctx.RecipeTitle
	if title == "" {
		title = unknownRecipe
	}
	lines = append(lines, "", "(Recipe: "+title+")")

	return strings.Join(lines, "\n")
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func truncateNames(names []string) string {
	if len(names) <= maxPantryNames {
		return strings.Join(names, ", ")
	}
	return strings.Join(names[:maxPantryNames], ", ") + "..."
}
