package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"guestpass/internal/domain"
)

type tokenService struct {
	regRepo   domain.RegistrationRepository
	tokenRepo domain.TokenRepository
}

// NewTokenService creates the QR token issuance service.
func NewTokenService(regRepo domain.RegistrationRepository, tokenRepo domain.TokenRepository) domain.TokenService {
	return &tokenService{regRepo: regRepo, tokenRepo: tokenRepo}
}

func (s *tokenService) IssueOrGet(ctx context.Context, registrationID string) (*domain.QRToken, error) {
	registrationID = strings.TrimSpace(registrationID)

	if _, err := s.regRepo.GetByID(ctx, registrationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}

	existing, err := s.tokenRepo.GetByRegistrationID(ctx, registrationID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get token: %w", err)
	}

	payload, err := newTokenPayload(registrationID)
	if err != nil {
		return nil, err
	}
	token := &domain.QRToken{
		Token:          payload,
		RegistrationID: registrationID,
		IssuedAt:       time.Now().UTC(),
	}
	created, err := s.tokenRepo.Insert(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("insert token: %w", err)
	}
	if created {
		return token, nil
	}

	// A concurrent first request won the slot; return its token.
	winner, err := s.tokenRepo.GetByRegistrationID(ctx, registrationID)
	if err != nil {
		return nil, fmt.Errorf("get token after insert race: %w", err)
	}
	return winner, nil
}

// newTokenPayload builds an opaque capability credential. The random suffix
// makes the payload unguessable from the registration id alone.
func newTokenPayload(registrationID string) (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token payload: %w", err)
	}
	return fmt.Sprintf("qr_%s_%s", registrationID, base64.RawURLEncoding.EncodeToString(b)), nil
}
