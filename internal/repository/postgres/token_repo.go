package postgres

import (
	"context"
	"database/sql"
	"errors"

	"guestpass/internal/domain"
)

type tokenRepository struct {
	DB *sql.DB
}

// NewTokenRepository returns a domain.TokenRepository implemented with Postgres.
func NewTokenRepository(db *sql.DB) domain.TokenRepository {
	return &tokenRepository{DB: db}
}

// Insert claims the registration's single token slot. ON CONFLICT DO NOTHING
// keeps issuance atomic under concurrent first requests: exactly one caller
// observes created=true, the rest re-read the winner's token.
func (r *tokenRepository) Insert(ctx context.Context, t *domain.QRToken) (bool, error) {
	query := `
		INSERT INTO qr_tokens (token, registration_id, issued_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (registration_id) DO NOTHING
	`
	result, err := r.DB.ExecContext(ctx, query, t.Token, t.RegistrationID, t.IssuedAt)
	if err != nil {
		return false, err
	}
	rows, _ := result.RowsAffected()
	return rows == 1, nil
}

func (r *tokenRepository) GetByRegistrationID(ctx context.Context, registrationID string) (*domain.QRToken, error) {
	query := `
		SELECT token, registration_id, issued_at
		FROM qr_tokens
		WHERE registration_id = $1
	`
	return r.getOne(ctx, query, registrationID)
}

func (r *tokenRepository) GetByToken(ctx context.Context, token string) (*domain.QRToken, error) {
	query := `
		SELECT token, registration_id, issued_at
		FROM qr_tokens
		WHERE token = $1
	`
	return r.getOne(ctx, query, token)
}

func (r *tokenRepository) getOne(ctx context.Context, query string, arg string) (*domain.QRToken, error) {
	t := &domain.QRToken{}
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(&t.Token, &t.RegistrationID, &t.IssuedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}
