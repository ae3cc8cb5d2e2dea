package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"conferencehub/internal/domain"
)

func TestAttendeeRepository_CreateMapsUniqueViolation(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO attendees`).
		WithArgs("Jane Doe", "jane@example.com", "", "", createdAt, createdAt).
		WillReturnError(&pq.Error{Code: pgUniqueViolation})

	repo := NewAttendeeRepository(db)
	err = repo.Create(ctx, &domain.Attendee{
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	})
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestAttendeeRepository_Create(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO attendees`).
		WithArgs("Jane Doe", "jane@example.com", "555-0100", "Acme", createdAt, createdAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("att-uuid-1"))

	repo := NewAttendeeRepository(db)
	attendee := &domain.Attendee{
		Name:         "Jane Doe",
		Email:        "jane@example.com",
		Phone:        "555-0100",
		Organization: "Acme",
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
	require.NoError(t, repo.Create(ctx, attendee))
	require.Equal(t, "att-uuid-1", attendee.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendeeRepository_SetPreferences(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the set in one transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM attendee_preferences`).
			WithArgs("att-1").
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`INSERT INTO attendee_preferences`).
			WithArgs("att-1", "sess-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO attendee_preferences`).
			WithArgs("att-1", "sess-2").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		repo := NewAttendeeRepository(db)
		require.NoError(t, repo.SetPreferences(ctx, "att-1", []string{"sess-1", "sess-2"}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty set only clears", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM attendee_preferences`).
			WithArgs("att-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		repo := NewAttendeeRepository(db)
		require.NoError(t, repo.SetPreferences(ctx, "att-1", nil))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
