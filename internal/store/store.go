// Package store is the single boundary to durable state. Handlers never touch
// gorm directly; they depend on Store so tests can swap in an in-memory
// database, and error discrimination happens here once, as typed sentinels,
// instead of error-code matching scattered through call sites.
package store

import (
	"context"
	"errors"

	"github.com/campus-connect/campus-events-api/internal/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert violates a uniqueness rule, such as
// the same roll number registering twice for one event.
var ErrConflict = errors.New("already exists")

// ErrEventFull is returned when an event has reached its registration cap.
var ErrEventFull = errors.New("event is full")

// EventQuery narrows ListEvents. Zero values match everything.
type EventQuery struct {
	// Before keeps only events dated strictly earlier than this calendar day.
	Before string
	// Descending orders by date descending instead of ascending.
	Descending bool
}

type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	CreateEvent(ctx context.Context, event *models.Event) error
	UpdateEvent(ctx context.Context, event *models.Event) error
	// DeleteEvent removes the event and all of its registrations.
	DeleteEvent(ctx context.Context, id string) error
	GetEventByID(ctx context.Context, id string) (*models.Event, error)
	ListEvents(ctx context.Context, q EventQuery) ([]models.Event, error)

	// CreateRegistration admits one registration atomically: the capacity
	// check and the insert run in a single transaction, so two concurrent
	// registrants cannot both pass the check on a nearly-full event.
	CreateRegistration(ctx context.Context, reg *models.Registration) error
	ListRegistrations(ctx context.Context, eventID string) ([]models.Registration, error)
	CountRegistrations(ctx context.Context, eventID string) (int64, error)
	CountRegistrationsByEvent(ctx context.Context, eventIDs []string) (map[string]int64, error)
}
