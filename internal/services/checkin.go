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

const defaultCheckInMethod = "qr_scan"

type checkInService struct {
	eventRepo   domain.EventRepository
	regRepo     domain.RegistrationRepository
	tokenRepo   domain.TokenRepository
	checkInRepo domain.CheckInRepository
}

// NewCheckInService creates the arrival scanning service.
func NewCheckInService(
	eventRepo domain.EventRepository,
	regRepo domain.RegistrationRepository,
	tokenRepo domain.TokenRepository,
	checkInRepo domain.CheckInRepository,
) domain.CheckInService {
	return &checkInService{
		eventRepo:   eventRepo,
		regRepo:     regRepo,
		tokenRepo:   tokenRepo,
		checkInRepo: checkInRepo,
	}
}

func (s *checkInService) Scan(ctx context.Context, eventID, token, method string) (*domain.CheckInResult, error) {
	eventID = strings.TrimSpace(eventID)
	token = strings.TrimSpace(token)
	method = strings.TrimSpace(method)
	if method == "" {
		method = defaultCheckInMethod
	}
	if eventID == "" {
		return nil, &domain.ValidationError{Field: "event_id", Message: "must not be empty"}
	}
	if token == "" {
		return nil, &domain.ValidationError{Field: "qr_token", Message: "must not be empty"}
	}

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	// Token validity is checked by re-resolving the registration, not cached:
	// a token whose registration is gone is void even though the row exists.
	qr, err := s.tokenRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get token: %w", err)
	}
	reg, err := s.regRepo.GetByID(ctx, qr.RegistrationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	if reg.EventID != eventID {
		return nil, domain.ErrTokenEventMismatch
	}

	checkIn := &domain.CheckIn{
		ID:             uuid.NewString(),
		RegistrationID: reg.ID,
		EventID:        reg.EventID,
		Method:         method,
		CheckedInAt:    time.Now().UTC(),
	}
	created, err := s.checkInRepo.Insert(ctx, checkIn)
	if err != nil {
		return nil, fmt.Errorf("insert check-in: %w", err)
	}
	if created {
		return &domain.CheckInResult{CheckIn: checkIn, FullName: reg.FullName}, nil
	}

	existing, err := s.checkInRepo.GetByRegistrationID(ctx, reg.ID)
	if err != nil {
		return nil, fmt.Errorf("get existing check-in: %w", err)
	}
	return &domain.CheckInResult{CheckIn: existing, FullName: reg.FullName, AlreadyChecked: true}, nil
}
