package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrAlreadyRegistered is returned by the store when an insert collides with
// the owner's existing registration for the event. The service resolves it by
// replaying the submission as an update.
var ErrAlreadyRegistered = errors.New("owner already registered for event")

// ConflictReason names the claimed value behind a rejected submission.
type ConflictReason string

const (
	ReasonEmailTaken ConflictReason = "EMAIL_TAKEN"
	ReasonPhoneTaken ConflictReason = "PHONE_TAKEN"
)

// ValidationError reports a malformed submission field. Field uses the wire
// names (full_name, email, phone) so front-ends can route the attendee back
// to the right prompt.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ConflictError reports that another owner already claimed the submitted
// email or phone for this event. When both collide, Reason is EMAIL_TAKEN.
type ConflictError struct {
	Reason ConflictReason
}

func (e *ConflictError) Error() string {
	switch e.Reason {
	case ReasonPhoneTaken:
		return "phone already registered for this event"
	default:
		return "email already registered for this event"
	}
}

// EventClosedError reports a new registration attempt on a closed event.
// Updates to existing registrations are not gated by event status.
type EventClosedError struct {
	EventID string
}

func (e *EventClosedError) Error() string {
	return fmt.Sprintf("event %s is closed for registration", e.EventID)
}
