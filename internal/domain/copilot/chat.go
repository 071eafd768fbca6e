// Package copilot holds the cooking assistant's conversation model, the
// offline answer generator and the rules for degrading to it.
package copilot

import "strings"

// Role identifies who authored a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// IsValid reports whether r is a role a client may send.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Turn is one message of the conversation.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Context describes what the cook is looking at. Every field is optional.
type Context struct {
	RecipeTitle   string   `json:"recipeTitle,omitempty"`
	Ingredients   []string `json:"ingredients,omitempty"`
	CurrentStep   string   `json:"currentStep,omitempty"`
	PantryHave    []string `json:"pantryHave,omitempty"`
	PantryMissing []string `json:"pantryMissing,omitempty"`
}

// Mode tells the client how an answer was produced.
type Mode string

const (
	ModeFallback Mode = "fallback"
	ModeLive     Mode = "live"
)

// Validate checks the turn list and returns the trimmed text of the most
// recent user turn.
func Validate(turns []Turn) (string, error) {
	if len(turns) == 0 {
		return "", ErrNoMessages
	}
	for _, t := range turns {
		if !t.Role.IsValid() {
			return "", ErrInvalidRole
		}
		if strings.TrimSpace(t.Content) == "" {
			return "", ErrInvalidContent
		}
	}
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role != RoleUser {
			continue
		}
		q := strings.TrimSpace(turns[i].Content)
		if q == "" {
			break
		}
		return q, nil
	}
	return "", ErrNoUserQuestion
}
