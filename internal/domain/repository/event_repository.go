package repository

import (
	"context"

	"github.com/clubware/server/internal/domain/entity"
)

// EventRepository defines the event-table operations.
type EventRepository interface {
	Create(ctx context.Context, ev *entity.ClubEvent) error
	GetByID(ctx context.Context, id string) (*entity.ClubEvent, error)
	// GetAll returns every event, visible or not, ordered by date descending.
	GetAll(ctx context.Context) ([]*entity.ClubEvent, error)
	Update(ctx context.Context, ev *entity.ClubEvent) error
	// Delete removes the row and returns the deleted record.
	Delete(ctx context.Context, id string) (*entity.ClubEvent, error)
}
