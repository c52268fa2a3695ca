package domain

import (
	"context"
	"errors"
)

// ErrEventNotFound is returned when a referenced event does not exist
// in the store.
var ErrEventNotFound = errors.New("event not found")

// EventRepository defines host-side persistence for events. The engine
// itself never touches storage; only the hosting application composes
// a repository with the detector and resolver.
type EventRepository interface {
	// Save inserts or updates an event.
	Save(ctx context.Context, e Event) error

	// FindByID retrieves an event by its ID. Returns ErrEventNotFound
	// when absent.
	FindByID(ctx context.Context, id string) (Event, error)

	// FindAll retrieves every stored event ordered by start date.
	FindAll(ctx context.Context) ([]Event, error)

	// FindByProject retrieves all events of one project.
	FindByProject(ctx context.Context, projectID string) ([]Event, error)

	// Delete removes an event.
	Delete(ctx context.Context, id string) error
}
