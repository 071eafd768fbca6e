// Package gorm provides GORM model definitions and repositories for the
// sqlite and postgres store drivers
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/savory/api/internal/domain/recipe"
)

// RecipeModel represents the GORM model for recipes. Seq preserves
// first-insert order for listing.
type RecipeModel struct {
	Seq         uint64 `gorm:"primaryKey;autoIncrement"`
	ID          string `gorm:"type:varchar(36);uniqueIndex;not null"`
	Title       string `gorm:"type:varchar(255);not null"`
	Description string `gorm:"type:text"`
	SourceURL   string `gorm:"type:text"`

	Servings         *int
	PrepTimeMinutes  *int
	CookTimeMinutes  *int
	TotalTimeMinutes *int

	Ingredients JSONColumn[[]recipe.IngredientLine] `gorm:"type:text"`
	Steps       JSONColumn[[]recipe.Step]           `gorm:"type:text"`
	Tags        StringSlice                         `gorm:"type:text"`

	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

// PantryItemModel represents the GORM model for pantry items
type PantryItemModel struct {
	Seq       uint64 `gorm:"primaryKey;autoIncrement"`
	ID        string `gorm:"type:varchar(36);uniqueIndex;not null"`
	Name      string `gorm:"type:varchar(255);not null"`
	HaveState string `gorm:"type:varchar(20);not null;index"`
	Quantity  *float64
	Unit      string `gorm:"type:varchar(50)"`
	ExpiresAt *time.Time
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

// TableName overrides
func (RecipeModel) TableName() string {
	return "recipes"
}

func (PantryItemModel) TableName() string {
	return "pantry_items"
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	return string(b), err
}

// JSONColumn stores any JSON-encodable value in a text column
type JSONColumn[T any] struct {
	Data T
}

// Scan implements the sql.Scanner interface
func (j *JSONColumn[T]) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, &j.Data)
	case string:
		return json.Unmarshal([]byte(v), &j.Data)
	default:
		return fmt.Errorf("cannot scan %T into JSONColumn", value)
	}
}

// Value implements the driver.Valuer interface
func (j JSONColumn[T]) Value() (driver.Value, error) {
	b, err := json.Marshal(j.Data)
	return string(b), err
}
