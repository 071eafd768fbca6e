package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/savory/api/internal/domain/pantry"
	"github.com/savory/api/internal/ports/outbound"
)

// PantryRepository implements the pantry repository interface using GORM
type PantryRepository struct {
	db *gorm.DB
}

// NewPantryRepository creates a new pantry repository
func NewPantryRepository(db *gorm.DB) *PantryRepository {
	return &PantryRepository{db: db}
}

var _ outbound.PantryRepository = (*PantryRepository)(nil)

func (r *PantryRepository) Save(ctx context.Context, item *pantry.Item) error {
	model := PantryItemToModel(item)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing PantryItemModel
		err := tx.Select("seq").Where("id = ?", model.ID).Take(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(model).Error
		}
		if err != nil {
			return err
		}
		model.Seq = existing.Seq
		return tx.Save(model).Error
	})
}

func (r *PantryRepository) List(ctx context.Context) ([]*pantry.Item, error) {
	var models []PantryItemModel
	if err := r.db.WithContext(ctx).Order("seq asc").Find(&models).Error; err != nil {
		return nil, err
	}

	items := make([]*pantry.Item, len(models))
	for i := range models {
		items[i] = ModelToPantryItem(&models[i])
	}
	return items, nil
}

func (r *PantryRepository) FindByID(ctx context.Context, id string) (*pantry.Item, error) {
	var model PantryItemModel
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pantry.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return ModelToPantryItem(&model), nil
}

func (r *PantryRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&PantryItemModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
