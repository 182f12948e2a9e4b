package postgres

import (
	"context"
	"database/sql"
	"errors"

	"guestpass/internal/domain"
)

type checkInRepository struct {
	DB *sql.DB
}

// NewCheckInRepository returns a domain.CheckInRepository implemented with Postgres.
func NewCheckInRepository(db *sql.DB) domain.CheckInRepository {
	return &checkInRepository{DB: db}
}

// Insert records an arrival once per registration. A replayed scan loses the
// ON CONFLICT race and reports created=false so the service can return the
// original record.
func (r *checkInRepository) Insert(ctx context.Context, c *domain.CheckIn) (bool, error) {
	query := `
		INSERT INTO check_ins (id, registration_id, event_id, method, checked_in_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (registration_id) DO NOTHING
	`
	result, err := r.DB.ExecContext(ctx, query, c.ID, c.RegistrationID, c.EventID, c.Method, c.CheckedInAt)
	if err != nil {
		return false, err
	}
	rows, _ := result.RowsAffected()
	return rows == 1, nil
}

func (r *checkInRepository) GetByRegistrationID(ctx context.Context, registrationID string) (*domain.CheckIn, error) {
	query := `
		SELECT id, registration_id, event_id, method, checked_in_at
		FROM check_ins
		WHERE registration_id = $1
	`
	c := &domain.CheckIn{}
	err := r.DB.QueryRowContext(ctx, query, registrationID).Scan(
		&c.ID, &c.RegistrationID, &c.EventID, &c.Method, &c.CheckedInAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}
