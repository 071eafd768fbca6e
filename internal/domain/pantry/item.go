// Package pantry models what the cook has on hand.
package pantry

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/savory/api/internal/domain/shared"
)

// HaveState tells whether an item is currently available.
type HaveState string

const (
	Have     HaveState = "have"
	DontHave HaveState = "dont_have"
)

// IsValid reports whether s is one of the two known states.
func (s HaveState) IsValid() bool {
	return s == Have || s == DontHave
}

// Item is a single pantry entry.
type Item struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	HaveState HaveState  `json:"haveState"`
	Quantity  *float64   `json:"quantity,omitempty"`
	Unit      string     `json:"unit,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Draft carries the fields supplied when adding an item.
type Draft struct {
	Name      string
	HaveState HaveState
	Quantity  *float64
	Unit      string
	ExpiresAt *time.Time
}

// NewItem validates d and returns a new item with a trimmed name.
func NewItem(d Draft, now time.Time) (*Item, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if !d.HaveState.IsValid() {
		return nil, ErrInvalidHaveState
	}
	if d.Quantity != nil && *d.Quantity < 0 {
		return nil, ErrNegativeQuantity
	}

	return &Item{
		ID:        uuid.New().String(),
		Name:      name,
		HaveState: d.HaveState,
		Quantity:  d.Quantity,
		Unit:      d.Unit,
		ExpiresAt: d.ExpiresAt,
		UpdatedAt: now,
	}, nil
}

// HaveSet returns the normalized names of every item marked as available.
func HaveSet(items []*Item) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		if it.HaveState == Have {
			set[shared.NormalizeName(it.Name)] = struct{}{}
		}
	}
	return set
}
