package domain

import (
	"context"
	"time"
)

// Registration represents one attendee's seat claim for one event.
// ID, EventID and OwnerID are immutable after creation; name, email and phone
// may be overwritten by later submissions from the same owner.
// swagger:model Registration
type Registration struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	OwnerID   string    `json:"owner_id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewRegistration returns a new Registration. ID is assigned by the service.
func NewRegistration(eventID, ownerID, fullName, email, phone string, createdAt time.Time) *Registration {
	return &Registration{
		EventID:   eventID,
		OwnerID:   ownerID,
		FullName:  fullName,
		Email:     email,
		Phone:     phone,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

// DecisionKind classifies a submission before it is persisted.
type DecisionKind string

const (
	DecisionCreate DecisionKind = "CREATE"
	DecisionUpdate DecisionKind = "UPDATE"
	DecisionReject DecisionKind = "REJECT"
)

// Decision is the outcome of conflict resolution for one submission.
// ExistingID is set for DecisionUpdate; Reason is set for DecisionReject.
type Decision struct {
	Kind       DecisionKind
	ExistingID string
	Reason     ConflictReason
}

// ConflictResolver classifies a submission against the current store state.
// It is a pure read-side pre-filter; the store's unique constraints remain
// the authoritative guard under concurrency.
type ConflictResolver interface {
	Classify(ctx context.Context, eventID, ownerID, email, phone string) (Decision, error)
}

// RegistrationRepository defines storage for registrations. Insert and Update
// must enforce the per-event uniqueness of owner, email and phone as hard
// constraints: a violated email or phone constraint surfaces as *ConflictError,
// a violated owner constraint as ErrAlreadyRegistered.
type RegistrationRepository interface {
	Insert(ctx context.Context, reg *Registration) error
	Update(ctx context.Context, reg *Registration) error
	GetByID(ctx context.Context, id string) (*Registration, error)
	GetByEventAndOwner(ctx context.Context, eventID, ownerID string) (*Registration, error)
	GetByEventAndEmail(ctx context.Context, eventID, email string) (*Registration, error)
	GetByEventAndPhone(ctx context.Context, eventID, phone string) (*Registration, error)
}

// RegistrationService is the single writer-path entry point of the core.
type RegistrationService interface {
	// Submit registers the owner for the event, or updates the owner's
	// existing registration for it. Errors: *ValidationError for malformed
	// fields, *EventClosedError for a new registration on a closed event,
	// *ConflictError for claim collisions, ErrNotFound for an unknown event.
	Submit(ctx context.Context, eventID, ownerID, name, email, phone string) (*Registration, error)
	// GetByID returns one registration, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*Registration, error)
}
