package domain

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidCredentials is returned when a staff login passphrase does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// TokenIssuer issues bearer tokens (e.g. JWT) for an authenticated subject.
type TokenIssuer interface {
	Issue(subject string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a bearer token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}

// PassphraseComparer checks a plaintext passphrase against a stored hash.
type PassphraseComparer interface {
	Compare(hash, passphrase string) error
}

// AuthService authenticates check-in and event-administration staff.
type AuthService interface {
	// Login exchanges the staff passphrase for a bearer token, or returns
	// ErrInvalidCredentials.
	Login(ctx context.Context, passphrase string) (token string, err error)
}
