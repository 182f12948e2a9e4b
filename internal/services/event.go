package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"guestpass/internal/domain"
)

type eventService struct {
	eventRepo domain.EventRepository
}

// NewEventService creates the event catalog service.
func NewEventService(eventRepo domain.EventRepository) domain.EventService {
	return &eventService{eventRepo: eventRepo}
}

func (s *eventService) Create(ctx context.Context, title, location string, startTime time.Time, capacity int) (*domain.Event, error) {
	title = strings.TrimSpace(title)
	location = strings.TrimSpace(location)
	if title == "" {
		return nil, &domain.ValidationError{Field: "title", Message: "must not be empty"}
	}
	if location == "" {
		return nil, &domain.ValidationError{Field: "location", Message: "must not be empty"}
	}
	if startTime.IsZero() {
		return nil, &domain.ValidationError{Field: "start_time", Message: "must be set"}
	}
	if capacity < 0 {
		return nil, &domain.ValidationError{Field: "capacity", Message: "must not be negative"}
	}

	event := domain.NewEvent(title, location, startTime, capacity, time.Now().UTC())
	event.ID = uuid.NewString()
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetStatus(ctx context.Context, eventID string) (domain.EventStatus, error) {
	event, err := s.GetByID(ctx, eventID)
	if err != nil {
		return "", err
	}
	return event.Status, nil
}

func (s *eventService) ListByStatus(ctx context.Context, status domain.EventStatus) ([]*domain.Event, error) {
	if status != domain.EventOpen && status != domain.EventClosed {
		return nil, &domain.ValidationError{Field: "status", Message: "must be OPEN or CLOSED"}
	}
	events, err := s.eventRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *eventService) SetStatus(ctx context.Context, id string, status domain.EventStatus) (*domain.Event, error) {
	if status != domain.EventOpen && status != domain.EventClosed {
		return nil, &domain.ValidationError{Field: "status", Message: "must be OPEN or CLOSED"}
	}
	event, err := s.eventRepo.SetStatus(ctx, strings.TrimSpace(id), status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("set event status: %w", err)
	}
	return event, nil
}
