package services

import (
	"context"
	"time"

	"guestpass/internal/domain"
)

type authService struct {
	passwordHash string
	comparer     domain.PassphraseComparer
	issuer       domain.TokenIssuer
	tokenExpiry  time.Duration
}

// NewAuthService creates the staff authentication service. passwordHash is
// the bcrypt hash of the shared staff passphrase; with an empty hash every
// login fails, which effectively disables the staff surface.
func NewAuthService(passwordHash string, comparer domain.PassphraseComparer, issuer domain.TokenIssuer, tokenExpiry time.Duration) domain.AuthService {
	return &authService{
		passwordHash: passwordHash,
		comparer:     comparer,
		issuer:       issuer,
		tokenExpiry:  tokenExpiry,
	}
}

func (s *authService) Login(ctx context.Context, passphrase string) (string, error) {
	if s.passwordHash == "" || passphrase == "" {
		return "", domain.ErrInvalidCredentials
	}
	if err := s.comparer.Compare(s.passwordHash, passphrase); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	return s.issuer.Issue("staff", s.tokenExpiry)
}
