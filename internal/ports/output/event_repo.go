package output

import (
	"context"

	"rally/internal/domain/entities"
)

type EventRepository interface {
	Create(ctx context.Context, event *entities.Event) error
	FindByID(ctx context.Context, id string) (*entities.Event, error)
	// FindAll returns every event ordered by event date, newest first.
	FindAll(ctx context.Context) ([]entities.Event, error)
	// Update persists the full event in a single write, conditional on
	// event.Version matching the stored row (compare-and-swap). On
	// success the event's Version is bumped; on a concurrent write it
	// fails with domain.ErrVersionConflict and the row is untouched.
	Update(ctx context.Context, event *entities.Event) error
}
