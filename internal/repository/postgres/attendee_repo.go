package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"conferencehub/internal/domain"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

type AttendeeRepository struct {
	DB *sql.DB
}

func NewAttendeeRepository(db *sql.DB) domain.AttendeeRepository {
	return &AttendeeRepository{
		DB: db,
	}
}

func (r *AttendeeRepository) Create(ctx context.Context, a *domain.Attendee) error {
	query := `
		INSERT INTO attendees (name, email, phone, organization, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		a.Name, a.Email, a.Phone, a.Organization, a.CreatedAt, a.UpdatedAt).
		Scan(&a.ID)
	if err != nil {
		return mapUniqueEmail(err)
	}
	return nil
}

func (r *AttendeeRepository) GetByID(ctx context.Context, id string) (*domain.Attendee, error) {
	query := `
		SELECT id, name, email, phone, organization, is_deleted, deleted_at, created_at, updated_at
		FROM attendees
		WHERE id = $1
	`
	a := &domain.Attendee{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.Name, &a.Email, &a.Phone, &a.Organization,
		&a.IsDeleted, &a.DeletedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *AttendeeRepository) List(ctx context.Context) ([]*domain.Attendee, error) {
	query := `
		SELECT id, name, email, phone, organization, is_deleted, deleted_at, created_at, updated_at
		FROM attendees
		WHERE NOT is_deleted
		ORDER BY name, id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attendees []*domain.Attendee
	for rows.Next() {
		a := &domain.Attendee{}
		if err := rows.Scan(
			&a.ID, &a.Name, &a.Email, &a.Phone, &a.Organization,
			&a.IsDeleted, &a.DeletedAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		attendees = append(attendees, a)
	}
	return attendees, rows.Err()
}

func (r *AttendeeRepository) Update(ctx context.Context, a *domain.Attendee) error {
	query := `
		UPDATE attendees
		SET name = $2, email = $3, phone = $4, organization = $5, updated_at = $6
		WHERE id = $1 AND NOT is_deleted
	`
	res, err := r.DB.ExecContext(ctx, query,
		a.ID, a.Name, a.Email, a.Phone, a.Organization, a.UpdatedAt)
	if err != nil {
		return mapUniqueEmail(err)
	}
	return requireRowAffected(res)
}

func (r *AttendeeRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE attendees
		SET is_deleted = TRUE, deleted_at = $2, updated_at = $2
		WHERE id = $1 AND NOT is_deleted
	`
	res, err := r.DB.ExecContext(ctx, query, id, at)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

// SetPreferences replaces the attendee's preferred-session set in one
// transaction.
func (r *AttendeeRepository) SetPreferences(ctx context.Context, attendeeID string, sessionIDs []string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM attendee_preferences WHERE attendee_id = $1`, attendeeID); err != nil {
		return err
	}
	for _, sessionID := range sessionIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO attendee_preferences (attendee_id, session_id) VALUES ($1, $2)`,
			attendeeID, sessionID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *AttendeeRepository) ListPreferredSessions(ctx context.Context, attendeeID string) ([]*domain.Session, error) {
	query := `
		SELECT s.id, s.conference_id, s.name, s.speaker, s.start_time, s.end_time, s.max_attendees, s.price, s.is_deleted, s.deleted_at, s.created_at, s.updated_at
		FROM sessions s
		INNER JOIN attendee_preferences ap ON ap.session_id = s.id
		WHERE ap.attendee_id = $1
		ORDER BY s.start_time, s.id
	`
	rows, err := r.DB.QueryContext(ctx, query, attendeeID)
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

func mapUniqueEmail(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
		return domain.ErrDuplicateEmail
	}
	return err
}
