package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"conferencehub/internal/domain"
)

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{
		DB: db,
	}
}

const registrationColumns = `id, conference_id, session_id, attendee_id, payment_status, registered_at, is_deleted, deleted_at, updated_at`

// Create inserts the registration. The table carries a partial unique index
// on (session_id, attendee_id) WHERE NOT is_deleted as the store-level
// backstop for the duplicate rule.
func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	query := `
		INSERT INTO registrations (conference_id, session_id, attendee_id, payment_status, registered_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		reg.ConferenceID, reg.SessionID, reg.AttendeeID, reg.PaymentStatus, reg.RegisteredAt, reg.UpdatedAt).
		Scan(&reg.ID)
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE id = $1
	`
	reg := &domain.Registration{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&reg.ID, &reg.ConferenceID, &reg.SessionID, &reg.AttendeeID,
		&reg.PaymentStatus, &reg.RegisteredAt, &reg.IsDeleted, &reg.DeletedAt, &reg.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) ListActiveBySessionID(ctx context.Context, sessionID string) ([]*domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE session_id = $1 AND NOT is_deleted
		ORDER BY registered_at, id
	`
	return r.queryRegistrations(ctx, query, sessionID)
}

func (r *registrationRepository) ListActiveByAttendeeID(ctx context.Context, attendeeID string) ([]*domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE attendee_id = $1 AND NOT is_deleted
		ORDER BY registered_at, id
	`
	return r.queryRegistrations(ctx, query, attendeeID)
}

// ListSessionIDsByAttendeeID returns the session IDs of every registration
// the attendee ever made, regardless of payment status or deletion.
func (r *registrationRepository) ListSessionIDsByAttendeeID(ctx context.Context, attendeeID string) ([]string, error) {
	query := `
		SELECT session_id
		FROM registrations
		WHERE attendee_id = $1
	`
	rows, err := r.DB.QueryContext(ctx, query, attendeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessionIDs []string
	for rows.Next() {
		var sessionID string
		if err := rows.Scan(&sessionID); err != nil {
			return nil, err
		}
		sessionIDs = append(sessionIDs, sessionID)
	}
	return sessionIDs, rows.Err()
}

func (r *registrationRepository) CountUniqueAttendeesByConferenceID(ctx context.Context, conferenceID string) (int, error) {
	query := `
		SELECT COUNT(DISTINCT attendee_id)
		FROM registrations
		WHERE conference_id = $1
	`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, conferenceID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *registrationRepository) CountBySessionID(ctx context.Context, sessionID string) (total, paid int, err error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE payment_status = 'Paid')
		FROM registrations
		WHERE session_id = $1
	`
	if err := r.DB.QueryRowContext(ctx, query, sessionID).Scan(&total, &paid); err != nil {
		return 0, 0, err
	}
	return total, paid, nil
}

func (r *registrationRepository) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	query := `
		UPDATE registrations
		SET payment_status = $2, updated_at = NOW()
		WHERE id = $1 AND NOT is_deleted
	`
	res, err := r.DB.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *registrationRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE registrations
		SET is_deleted = TRUE, deleted_at = $2, updated_at = $2
		WHERE id = $1 AND NOT is_deleted
	`
	res, err := r.DB.ExecContext(ctx, query, id, at)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *registrationRepository) queryRegistrations(ctx context.Context, query string, args ...any) ([]*domain.Registration, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []*domain.Registration
	for rows.Next() {
		reg := &domain.Registration{}
		if err := rows.Scan(
			&reg.ID, &reg.ConferenceID, &reg.SessionID, &reg.AttendeeID,
			&reg.PaymentStatus, &reg.RegisteredAt, &reg.IsDeleted, &reg.DeletedAt, &reg.UpdatedAt); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}
