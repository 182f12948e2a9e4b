package domain

import (
	"context"
	"errors"
	"time"
)

// ErrTokenEventMismatch is returned when a scanned token belongs to a
// registration for a different event than the one being checked in.
var ErrTokenEventMismatch = errors.New("token does not belong to this event")

// CheckIn records one attendee arrival. At most one check-in exists per
// registration; replayed scans return the original record.
// swagger:model CheckIn
type CheckIn struct {
	ID             string    `json:"id"`
	RegistrationID string    `json:"registration_id"`
	EventID        string    `json:"event_id"`
	Method         string    `json:"method"`
	CheckedInAt    time.Time `json:"checked_in_at"`
}

// CheckInRepository defines storage for check-ins. Insert reports
// created=false when the registration is already checked in.
type CheckInRepository interface {
	Insert(ctx context.Context, checkIn *CheckIn) (created bool, err error)
	GetByRegistrationID(ctx context.Context, registrationID string) (*CheckIn, error)
}

// CheckInResult is the outcome of a scan, bundled with attendee details for
// the operator console.
type CheckInResult struct {
	CheckIn        *CheckIn `json:"check_in"`
	FullName       string   `json:"full_name"`
	AlreadyChecked bool     `json:"already_checked_in"`
}

// CheckInService validates scanned tokens and records arrivals.
type CheckInService interface {
	// Scan resolves the token, verifies it belongs to the event, and records
	// the arrival once. Errors: ErrNotFound for an unknown event or token,
	// ErrTokenEventMismatch for a token from another event.
	Scan(ctx context.Context, eventID, token, method string) (*CheckInResult, error)
}
