package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"guestpass/internal/domain"
)

const (
	nameMinLen = 2
	nameMaxLen = 120

	phoneMinDigits = 7
	phoneMaxDigits = 20
)

var (
	emailRegexp = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRegexp = regexp.MustCompile(`^\+?[0-9()\-\s]{7,20}$`)
)

type registrationService struct {
	catalog  domain.EventCatalog
	regRepo  domain.RegistrationRepository
	resolver domain.ConflictResolver
	mailer   domain.Mailer
	logger   *slog.Logger
}

// NewRegistrationService creates the writer-path registration service.
func NewRegistrationService(
	catalog domain.EventCatalog,
	regRepo domain.RegistrationRepository,
	resolver domain.ConflictResolver,
	mailer domain.Mailer,
	logger *slog.Logger,
) domain.RegistrationService {
	return &registrationService{
		catalog:  catalog,
		regRepo:  regRepo,
		resolver: resolver,
		mailer:   mailer,
		logger:   logger,
	}
}

func (s *registrationService) Submit(ctx context.Context, eventID, ownerID, name, email, phone string) (*domain.Registration, error) {
	eventID = strings.TrimSpace(eventID)
	ownerID = strings.TrimSpace(ownerID)
	if eventID == "" {
		return nil, &domain.ValidationError{Field: "event_id", Message: "must not be empty"}
	}
	if ownerID == "" {
		return nil, &domain.ValidationError{Field: "owner_id", Message: "must not be empty"}
	}

	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	email, err = normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	phone, err = normalizePhone(phone)
	if err != nil {
		return nil, err
	}

	decision, err := s.resolver.Classify(ctx, eventID, ownerID, email, phone)
	if err != nil {
		return nil, err
	}

	switch decision.Kind {
	case domain.DecisionReject:
		return nil, &domain.ConflictError{Reason: decision.Reason}

	case domain.DecisionUpdate:
		return s.update(ctx, decision.ExistingID, name, email, phone)

	default:
		reg, err := s.create(ctx, eventID, ownerID, name, email, phone)
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			// A concurrent submission from the same owner won the insert.
			// Their record exists now, so this submission becomes an update.
			existing, ferr := s.regRepo.GetByEventAndOwner(ctx, eventID, ownerID)
			if ferr != nil {
				return nil, fmt.Errorf("refetch after owner conflict: %w", ferr)
			}
			return s.update(ctx, existing.ID, name, email, phone)
		}
		return reg, err
	}
}

func (s *registrationService) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	reg, err := s.regRepo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return reg, nil
}

// create inserts a fresh registration. Only the create path is gated on the
// event being open; an existing registrant may still correct their details
// after close.
func (s *registrationService) create(ctx context.Context, eventID, ownerID, name, email, phone string) (*domain.Registration, error) {
	status, err := s.catalog.GetStatus(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event status: %w", err)
	}
	if status != domain.EventOpen {
		return nil, &domain.EventClosedError{EventID: eventID}
	}

	reg := domain.NewRegistration(eventID, ownerID, name, email, phone, time.Now().UTC())
	reg.ID, err = newRegistrationID()
	if err != nil {
		return nil, err
	}
	if err := s.regRepo.Insert(ctx, reg); err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) || errors.Is(err, domain.ErrAlreadyRegistered) {
			return nil, err
		}
		return nil, fmt.Errorf("insert registration: %w", err)
	}

	s.sendConfirmation(reg)
	return reg, nil
}

func (s *registrationService) update(ctx context.Context, id, name, email, phone string) (*domain.Registration, error) {
	existing, err := s.regRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get registration for update: %w", err)
	}

	existing.FullName = name
	existing.Email = email
	existing.Phone = phone
	existing.UpdatedAt = time.Now().UTC()

	if err := s.regRepo.Update(ctx, existing); err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			return nil, err
		}
		return nil, fmt.Errorf("update registration: %w", err)
	}
	return existing, nil
}

// sendConfirmation emails the attendee after a new registration. Delivery is
// best effort: a mailer failure never fails the submission.
func (s *registrationService) sendConfirmation(reg *domain.Registration) {
	if s.mailer == nil {
		return
	}
	subject := "Registration confirmed"
	text := fmt.Sprintf("Hi %s, your registration %s is confirmed. Ask the bot for your QR ticket any time.", reg.FullName, reg.ID)
	if err := s.mailer.Send(reg.Email, subject, "", text); err != nil {
		s.logger.Warn("confirmation email failed", "registration_id", reg.ID, "err", err)
	}
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if len(name) < nameMinLen || len(name) > nameMaxLen {
		return "", &domain.ValidationError{Field: "full_name", Message: fmt.Sprintf("must be %d-%d characters", nameMinLen, nameMaxLen)}
	}
	return name, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRegexp.MatchString(email) {
		return "", &domain.ValidationError{Field: "email", Message: "invalid email format"}
	}
	return email, nil
}

// normalizePhone reduces a phone number to its digits, keeping a leading plus,
// so that visually different spellings of one number compare equal.
func normalizePhone(phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	if !phoneRegexp.MatchString(phone) {
		return "", &domain.ValidationError{Field: "phone", Message: "invalid phone format"}
	}
	hasPlus := strings.HasPrefix(phone, "+")
	var digits strings.Builder
	for _, c := range phone {
		if c >= '0' && c <= '9' {
			digits.WriteRune(c)
		}
	}
	n := digits.Len()
	if n < phoneMinDigits || n > phoneMaxDigits {
		return "", &domain.ValidationError{Field: "phone", Message: "invalid phone format"}
	}
	if hasPlus {
		return "+" + digits.String(), nil
	}
	return digits.String(), nil
}

// newRegistrationID generates a short random identifier like reg_3f9a1c04be72.
func newRegistrationID() (string, error) {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate registration id: %w", err)
	}
	return "reg_" + hex.EncodeToString(b), nil
}
