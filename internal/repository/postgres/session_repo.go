package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"conferencehub/internal/domain"
)

type SessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) domain.SessionRepository {
	return &SessionRepository{
		DB: db,
	}
}

const sessionColumns = `id, conference_id, name, speaker, start_time, end_time, max_attendees, price, is_deleted, deleted_at, created_at, updated_at`

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) error {
	query := `
		INSERT INTO sessions (conference_id, name, speaker, start_time, end_time, max_attendees, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		s.ConferenceID, s.Name, s.Speaker, s.StartTime, s.EndTime, s.MaxAttendees, s.Price, s.CreatedAt, s.UpdatedAt).
		Scan(&s.ID)
}

func (r *SessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE id = $1
	`
	s := &domain.Session{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.ConferenceID, &s.Name, &s.Speaker, &s.StartTime, &s.EndTime,
		&s.MaxAttendees, &s.Price, &s.IsDeleted, &s.DeletedAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *SessionRepository) List(ctx context.Context) ([]*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE NOT is_deleted
		ORDER BY start_time, id
	`
	return r.querySessions(ctx, query)
}

func (r *SessionRepository) ListByConferenceID(ctx context.Context, conferenceID string) ([]*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE conference_id = $1 AND NOT is_deleted
		ORDER BY start_time, id
	`
	return r.querySessions(ctx, query, conferenceID)
}

func (r *SessionRepository) ListByConferenceIDs(ctx context.Context, conferenceIDs []string) ([]*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE conference_id = ANY($1) AND NOT is_deleted
		ORDER BY start_time, id
	`
	return r.querySessions(ctx, query, pq.Array(conferenceIDs))
}

func (r *SessionRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE id = ANY($1)
		ORDER BY start_time, id
	`
	return r.querySessions(ctx, query, pq.Array(ids))
}

func (r *SessionRepository) Update(ctx context.Context, s *domain.Session) error {
	query := `
		UPDATE sessions
		SET name = $2, speaker = $3, start_time = $4, end_time = $5, max_attendees = $6, price = $7, updated_at = $8
		WHERE id = $1 AND NOT is_deleted
	`
	res, err := r.DB.ExecContext(ctx, query,
		s.ID, s.Name, s.Speaker, s.StartTime, s.EndTime, s.MaxAttendees, s.Price, s.UpdatedAt)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *SessionRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE sessions
		SET is_deleted = TRUE, deleted_at = $2, updated_at = $2
		WHERE id = $1 AND NOT is_deleted
	`
	res, err := r.DB.ExecContext(ctx, query, id, at)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *SessionRepository) Search(ctx context.Context, q string) ([]*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE (name ILIKE '%' || $1 || '%' OR speaker ILIKE '%' || $1 || '%') AND NOT is_deleted
		ORDER BY start_time, id
	`
	return r.querySessions(ctx, query, q)
}

func (r *SessionRepository) querySessions(ctx context.Context, query string, args ...any) ([]*domain.Session, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		s := &domain.Session{}
		if err := rows.Scan(
			&s.ID, &s.ConferenceID, &s.Name, &s.Speaker, &s.StartTime, &s.EndTime,
			&s.MaxAttendees, &s.Price, &s.IsDeleted, &s.DeletedAt, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
