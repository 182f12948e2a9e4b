package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"guestpass/internal/domain"
)

// Constraint names from migrations/000001_init.up.sql. The store maps unique
// violations back to structured conflict errors so that a submission losing
// the race described in the service layer fails the same way a resolver
// rejection would.
const (
	constraintEventOwner = "uq_registrations_event_owner"
	constraintEventEmail = "uq_registrations_event_email"
	constraintEventPhone = "uq_registrations_event_phone"
)

type registrationRepository struct {
	DB *sql.DB
}

// NewRegistrationRepository returns a domain.RegistrationRepository implemented with Postgres.
func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{DB: db}
}

func (r *registrationRepository) Insert(ctx context.Context, reg *domain.Registration) error {
	query := `
		INSERT INTO registrations (id, event_id, owner_id, full_name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.DB.ExecContext(ctx, query,
		reg.ID, reg.EventID, reg.OwnerID, reg.FullName, reg.Email, reg.Phone, reg.CreatedAt, reg.UpdatedAt)
	if err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

func (r *registrationRepository) Update(ctx context.Context, reg *domain.Registration) error {
	query := `
		UPDATE registrations
		SET full_name = $2, email = $3, phone = $4, updated_at = $5
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query,
		reg.ID, reg.FullName, reg.Email, reg.Phone, reg.UpdatedAt)
	if err != nil {
		return mapUniqueViolation(err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *registrationRepository) GetByEventAndOwner(ctx context.Context, eventID, ownerID string) (*domain.Registration, error) {
	return r.getOne(ctx, `WHERE event_id = $1 AND owner_id = $2`, eventID, ownerID)
}

func (r *registrationRepository) GetByEventAndEmail(ctx context.Context, eventID, email string) (*domain.Registration, error) {
	return r.getOne(ctx, `WHERE event_id = $1 AND email = $2`, eventID, email)
}

func (r *registrationRepository) GetByEventAndPhone(ctx context.Context, eventID, phone string) (*domain.Registration, error) {
	return r.getOne(ctx, `WHERE event_id = $1 AND phone = $2`, eventID, phone)
}

func (r *registrationRepository) getOne(ctx context.Context, where string, args ...any) (*domain.Registration, error) {
	query := `
		SELECT id, event_id, owner_id, full_name, email, phone, created_at, updated_at
		FROM registrations
	` + where
	reg := &domain.Registration{}
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&reg.ID, &reg.EventID, &reg.OwnerID, &reg.FullName, &reg.Email, &reg.Phone,
		&reg.CreatedAt, &reg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

// mapUniqueViolation converts a pq unique violation (23505) into the error the
// resolver would have produced for the same collision. Other errors pass through.
func mapUniqueViolation(err error) error {
	var perr *pq.Error
	if !errors.As(err, &perr) || perr.Code != "23505" {
		return err
	}
	switch perr.Constraint {
	case constraintEventOwner:
		return domain.ErrAlreadyRegistered
	case constraintEventPhone:
		return &domain.ConflictError{Reason: domain.ReasonPhoneTaken}
	default:
		// Email constraint, or an unnamed unique index: report the
		// deterministic tie-break reason.
		return &domain.ConflictError{Reason: domain.ReasonEmailTaken}
	}
}
