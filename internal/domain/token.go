package domain

import (
	"context"
	"time"
)

// QRToken is the single live verification credential for a registration.
// Token is the opaque payload rendered into a scannable code by the caller.
// swagger:model QRToken
type QRToken struct {
	Token          string    `json:"token"`
	RegistrationID string    `json:"registration_id"`
	IssuedAt       time.Time `json:"issued_at"`
}

// TokenRepository defines storage for QR tokens. At most one token may exist
// per registration; Insert reports created=false when another token already
// holds the registration's slot.
type TokenRepository interface {
	Insert(ctx context.Context, token *QRToken) (created bool, err error)
	GetByRegistrationID(ctx context.Context, registrationID string) (*QRToken, error)
	GetByToken(ctx context.Context, token string) (*QRToken, error)
}

// TokenService issues verification tokens for finalized registrations.
type TokenService interface {
	// IssueOrGet returns the registration's live token, minting one on first
	// call. Repeated calls return the same token. ErrNotFound when the
	// registration does not exist.
	IssueOrGet(ctx context.Context, registrationID string) (*QRToken, error)
}
