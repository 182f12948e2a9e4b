package services

import (
	"context"
	"errors"
	"fmt"

	"guestpass/internal/domain"
)

type conflictResolver struct {
	regRepo domain.RegistrationRepository
}

// NewConflictResolver creates a ConflictResolver over the given store.
func NewConflictResolver(regRepo domain.RegistrationRepository) domain.ConflictResolver {
	return &conflictResolver{regRepo: regRepo}
}

// Classify decides whether a submission creates, updates, or is rejected.
// An owner match takes absolute precedence over field collisions: an owner
// always controls their own record for an event, so editing their own email
// or phone is never mistaken for a claim on someone else's. Email collisions
// are reported before phone collisions so the same input always yields the
// same diagnostic.
func (r *conflictResolver) Classify(ctx context.Context, eventID, ownerID, email, phone string) (domain.Decision, error) {
	existing, err := r.regRepo.GetByEventAndOwner(ctx, eventID, ownerID)
	if err == nil {
		return domain.Decision{Kind: domain.DecisionUpdate, ExistingID: existing.ID}, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Decision{}, fmt.Errorf("get registration by owner: %w", err)
	}

	// The owner has no record here, so any email or phone match belongs to a
	// different owner.
	if _, err := r.regRepo.GetByEventAndEmail(ctx, eventID, email); err == nil {
		return domain.Decision{Kind: domain.DecisionReject, Reason: domain.ReasonEmailTaken}, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.Decision{}, fmt.Errorf("get registration by email: %w", err)
	}

	if _, err := r.regRepo.GetByEventAndPhone(ctx, eventID, phone); err == nil {
		return domain.Decision{Kind: domain.DecisionReject, Reason: domain.ReasonPhoneTaken}, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.Decision{}, fmt.Errorf("get registration by phone: %w", err)
	}

	return domain.Decision{Kind: domain.DecisionCreate}, nil
}
