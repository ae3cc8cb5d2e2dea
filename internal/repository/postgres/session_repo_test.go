package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"conferencehub/internal/domain"
)

var sessionCols = []string{
	"id", "conference_id", "name", "speaker", "start_time", "end_time",
	"max_attendees", "price", "is_deleted", "deleted_at", "created_at", "updated_at",
}

func TestSessionRepository_Create(t *testing.T) {
	ctx := context.Background()
	startTime := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	endTime := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	price := decimal.NewFromFloat(49.50)

	tests := []struct {
		name    string
		session *domain.Session
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
	}{
		{
			name: "success",
			session: &domain.Session{
				ConferenceID: "conf-1",
				Name:         "Go Concurrency",
				Speaker:      "Grace Hopper",
				StartTime:    startTime,
				EndTime:      endTime,
				MaxAttendees: 50,
				Price:        price,
				CreatedAt:    createdAt,
				UpdatedAt:    createdAt,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO sessions`).
					WithArgs("conf-1", "Go Concurrency", "Grace Hopper", startTime, endTime, 50, price, createdAt, createdAt).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("sess-uuid-1"))
			},
			wantID:  "sess-uuid-1",
			wantErr: false,
		},
		{
			name: "db error",
			session: &domain.Session{
				ConferenceID: "conf-1",
				StartTime:    startTime,
				EndTime:      endTime,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO sessions`).
					WillReturnError(sql.ErrConnDone)
			},
			wantID:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewSessionRepository(db)
			err = repo.Create(ctx, tt.session)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.session.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSessionRepository_ListByConferenceIDs(t *testing.T) {
	ctx := context.Background()
	startTime := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	endTime := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM sessions`).
		WithArgs(pq.Array([]string{"conf-1", "conf-2"})).
		WillReturnRows(sqlmock.NewRows(sessionCols).
			AddRow("sess-1", "conf-1", "Go Concurrency", "Grace Hopper", startTime, endTime,
				50, "49.50", false, nil, createdAt, createdAt).
			AddRow("sess-2", "conf-2", "Distributed Tracing", "Alan Kay", startTime, endTime,
				30, "0", false, nil, createdAt, createdAt))

	repo := NewSessionRepository(db)
	got, err := repo.ListByConferenceIDs(ctx, []string{"conf-1", "conf-2"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "conf-2", got[1].ConferenceID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_Update(t *testing.T) {
	ctx := context.Background()
	startTime := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	endTime := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	updatedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	price := decimal.NewFromInt(10)

	session := &domain.Session{
		ID:           "sess-1",
		Name:         "Go Concurrency",
		Speaker:      "Grace Hopper",
		StartTime:    startTime,
		EndTime:      endTime,
		MaxAttendees: 50,
		Price:        price,
		UpdatedAt:    updatedAt,
	}

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE sessions`).
			WithArgs("sess-1", "Go Concurrency", "Grace Hopper", startTime, endTime, 50, price, updatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewSessionRepository(db)
		require.NoError(t, repo.Update(ctx, session))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deleted session maps to not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE sessions`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewSessionRepository(db)
		err = repo.Update(ctx, session)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}
