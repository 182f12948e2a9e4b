package domain

import (
	"context"
	"time"
)

// EventStatus is the registration gate for an event.
type EventStatus string

const (
	EventOpen   EventStatus = "OPEN"
	EventClosed EventStatus = "CLOSED"
)

// Event represents a capacity-bounded event attendees can register for.
// swagger:model Event
type Event struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	StartTime time.Time   `json:"start_time"`
	Location  string      `json:"location"`
	Capacity  int         `json:"capacity"`
	Status    EventStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewEvent returns a new open Event with the given fields. ID is assigned by the service.
func NewEvent(title, location string, startTime time.Time, capacity int, createdAt time.Time) *Event {
	return &Event{
		Title:     title,
		Location:  location,
		StartTime: startTime,
		Capacity:  capacity,
		Status:    EventOpen,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListByStatus(ctx context.Context, status EventStatus) ([]*Event, error)
	SetStatus(ctx context.Context, id string, status EventStatus) (*Event, error)
}

// EventCatalog is the read-only view of the catalog that the registration
// core consults. GetStatus returns ErrNotFound for an unknown event.
type EventCatalog interface {
	GetStatus(ctx context.Context, eventID string) (EventStatus, error)
}

// EventService defines catalog operations for attendees and organizers.
type EventService interface {
	EventCatalog
	Create(ctx context.Context, title, location string, startTime time.Time, capacity int) (*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	ListByStatus(ctx context.Context, status EventStatus) ([]*Event, error)
	SetStatus(ctx context.Context, id string, status EventStatus) (*Event, error)
}
