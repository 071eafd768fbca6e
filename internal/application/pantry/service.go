// Package pantry provides the application layer for pantry management
package pantry

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/savory/api/internal/domain/pantry"
	"github.com/savory/api/internal/ports/inbound"
	"github.com/savory/api/internal/ports/outbound"
	"github.com/savory/api/pkg/errors"
)

// PantryService implements the pantry use cases
type PantryService struct {
	repo   outbound.PantryRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewPantryService creates a new pantry service
func NewPantryService(repo outbound.PantryRepository, logger *zap.Logger) *PantryService {
	return &PantryService{
		repo:   repo,
		logger: logger.Named("pantry-service"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

var _ inbound.PantryService = (*PantryService)(nil)

// AddItem validates and stores a new pantry item
func (s *PantryService) AddItem(ctx context.Context, cmd inbound.CreatePantryItemCommand) (*pantry.Item, error) {
	item, err := pantry.NewItem(pantry.Draft{
		Name:      cmd.Name,
		HaveState: pantry.HaveState(cmd.HaveState),
		Quantity:  cmd.Quantity,
		Unit:      cmd.Unit,
		ExpiresAt: cmd.ExpiresAt,
	}, s.now())
	if err != nil {
		return nil, errors.NewValidationError(err.Error()).WithCause(err)
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, errors.NewDatabaseError("save pantry item", err)
	}

	s.logger.Info("Pantry item added",
		zap.String("item_id", item.ID),
		zap.String("name", item.Name),
		zap.String("have_state", string(item.HaveState)),
	)
	return item, nil
}

// ListItems returns every pantry item
func (s *PantryService) ListItems(ctx context.Context) ([]*pantry.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list pantry", err)
	}
	return items, nil
}

// RemoveItem deletes a pantry item
func (s *PantryService) RemoveItem(ctx context.Context, id string) error {
	existed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return errors.NewDatabaseError("delete pantry item", err)
	}
	if !existed {
		return errors.NewPantryItemNotFoundError(id)
	}
	s.logger.Info("Pantry item removed", zap.String("item_id", id))
	return nil
}
