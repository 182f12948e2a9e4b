package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"guestpass/internal/domain"
)

func testReg() *domain.Registration {
	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Registration{
		ID:        "reg_abc123",
		EventID:   "ev-1",
		OwnerID:   "owner-1",
		FullName:  "Test Person",
		Email:     "test@example.com",
		Phone:     "+15550100123",
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func TestRegistrationRepository_Insert(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock, reg *domain.Registration)
		wantErr func(t *testing.T, err error)
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock, reg *domain.Registration) {
				mock.ExpectExec(`INSERT INTO registrations`).
					WithArgs(reg.ID, reg.EventID, reg.OwnerID, reg.FullName, reg.Email, reg.Phone, reg.CreatedAt, reg.UpdatedAt).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantErr: func(t *testing.T, err error) {
				require.NoError(t, err)
			},
		},
		{
			name: "owner constraint maps to already registered",
			mock: func(mock sqlmock.Sqlmock, reg *domain.Registration) {
				mock.ExpectExec(`INSERT INTO registrations`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_registrations_event_owner"})
			},
			wantErr: func(t *testing.T, err error) {
				require.ErrorIs(t, err, domain.ErrAlreadyRegistered)
			},
		},
		{
			name: "email constraint maps to EMAIL_TAKEN",
			mock: func(mock sqlmock.Sqlmock, reg *domain.Registration) {
				mock.ExpectExec(`INSERT INTO registrations`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_registrations_event_email"})
			},
			wantErr: func(t *testing.T, err error) {
				var conflict *domain.ConflictError
				require.ErrorAs(t, err, &conflict)
				require.Equal(t, domain.ReasonEmailTaken, conflict.Reason)
			},
		},
		{
			name: "phone constraint maps to PHONE_TAKEN",
			mock: func(mock sqlmock.Sqlmock, reg *domain.Registration) {
				mock.ExpectExec(`INSERT INTO registrations`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_registrations_event_phone"})
			},
			wantErr: func(t *testing.T, err error) {
				var conflict *domain.ConflictError
				require.ErrorAs(t, err, &conflict)
				require.Equal(t, domain.ReasonPhoneTaken, conflict.Reason)
			},
		},
		{
			name: "unnamed unique index falls back to EMAIL_TAKEN",
			mock: func(mock sqlmock.Sqlmock, reg *domain.Registration) {
				mock.ExpectExec(`INSERT INTO registrations`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "registrations_pkey"})
			},
			wantErr: func(t *testing.T, err error) {
				var conflict *domain.ConflictError
				require.ErrorAs(t, err, &conflict)
				require.Equal(t, domain.ReasonEmailTaken, conflict.Reason)
			},
		},
		{
			name: "other db errors pass through",
			mock: func(mock sqlmock.Sqlmock, reg *domain.Registration) {
				mock.ExpectExec(`INSERT INTO registrations`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: func(t *testing.T, err error) {
				require.ErrorIs(t, err, sql.ErrConnDone)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			reg := testReg()
			tt.mock(mock, reg)
			repo := NewRegistrationRepository(db)
			tt.wantErr(t, repo.Insert(ctx, reg))
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRegistrationRepository_Update(t *testing.T) {
	ctx := context.Background()
	reg := testReg()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE registrations`).
			WithArgs(reg.ID, reg.FullName, reg.Email, reg.Phone, reg.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewRegistrationRepository(db)
		require.NoError(t, repo.Update(ctx, reg))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows means not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE registrations`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewRegistrationRepository(db)
		require.ErrorIs(t, repo.Update(ctx, reg), domain.ErrNotFound)
	})

	t.Run("unique violation maps to conflict", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE registrations`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_registrations_event_phone"})

		repo := NewRegistrationRepository(db)
		var conflict *domain.ConflictError
		require.ErrorAs(t, repo.Update(ctx, reg), &conflict)
		require.Equal(t, domain.ReasonPhoneTaken, conflict.Reason)
	})
}

func TestRegistrationRepository_Lookups(t *testing.T) {
	ctx := context.Background()
	want := testReg()
	cols := []string{"id", "event_id", "owner_id", "full_name", "email", "phone", "created_at", "updated_at"}
	row := func() *sqlmock.Rows {
		return sqlmock.NewRows(cols).
			AddRow(want.ID, want.EventID, want.OwnerID, want.FullName, want.Email, want.Phone, want.CreatedAt, want.UpdatedAt)
	}

	tests := []struct {
		name string
		mock func(mock sqlmock.Sqlmock)
		call func(repo domain.RegistrationRepository) (*domain.Registration, error)
	}{
		{
			name: "by id",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, event_id, owner_id, full_name, email, phone, created_at, updated_at`).
					WithArgs(want.ID).
					WillReturnRows(row())
			},
			call: func(repo domain.RegistrationRepository) (*domain.Registration, error) {
				return repo.GetByID(ctx, want.ID)
			},
		},
		{
			name: "by event and owner",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, event_id, owner_id, full_name, email, phone, created_at, updated_at`).
					WithArgs(want.EventID, want.OwnerID).
					WillReturnRows(row())
			},
			call: func(repo domain.RegistrationRepository) (*domain.Registration, error) {
				return repo.GetByEventAndOwner(ctx, want.EventID, want.OwnerID)
			},
		},
		{
			name: "by event and email",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, event_id, owner_id, full_name, email, phone, created_at, updated_at`).
					WithArgs(want.EventID, want.Email).
					WillReturnRows(row())
			},
			call: func(repo domain.RegistrationRepository) (*domain.Registration, error) {
				return repo.GetByEventAndEmail(ctx, want.EventID, want.Email)
			},
		},
		{
			name: "by event and phone",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, event_id, owner_id, full_name, email, phone, created_at, updated_at`).
					WithArgs(want.EventID, want.Phone).
					WillReturnRows(row())
			},
			call: func(repo domain.RegistrationRepository) (*domain.Registration, error) {
				return repo.GetByEventAndPhone(ctx, want.EventID, want.Phone)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := tt.call(NewRegistrationRepository(db))
			require.NoError(t, err)
			require.Equal(t, want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRegistrationRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, event_id, owner_id, full_name, email, phone, created_at, updated_at`).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	repo := NewRegistrationRepository(db)
	_, err = repo.GetByID(context.Background(), "nope")
	require.True(t, errors.Is(err, domain.ErrNotFound))
}
