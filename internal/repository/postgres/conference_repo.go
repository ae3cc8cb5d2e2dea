package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"conferencehub/internal/domain"
)

type ConferenceRepository struct {
	DB *sql.DB
}

func NewConferenceRepository(db *sql.DB) domain.ConferenceRepository {
	return &ConferenceRepository{
		DB: db,
	}
}

func (r *ConferenceRepository) Create(ctx context.Context, c *domain.Conference) error {
	query := `
		INSERT INTO conferences (name, start_date, end_date, location, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		c.Name, c.StartDate, c.EndDate, c.Location, c.Description, c.Status, c.CreatedAt, c.UpdatedAt).
		Scan(&c.ID)
}

func (r *ConferenceRepository) GetByID(ctx context.Context, id string) (*domain.Conference, error) {
	// Soft-deleted rows stay addressable by id for audit.
	query := `
		SELECT id, name, start_date, end_date, location, description, status, is_deleted, deleted_at, created_at, updated_at
		FROM conferences
		WHERE id = $1
	`
	c := &domain.Conference{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.StartDate, &c.EndDate, &c.Location, &c.Description,
		&c.Status, &c.IsDeleted, &c.DeletedAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *ConferenceRepository) List(ctx context.Context) ([]*domain.Conference, error) {
	query := `
		SELECT id, name, start_date, end_date, location, description, status, is_deleted, deleted_at, created_at, updated_at
		FROM conferences
		WHERE NOT is_deleted
		ORDER BY start_date, id
	`
	return r.queryConferences(ctx, query)
}

func (r *ConferenceRepository) ListUpcoming(ctx context.Context, today time.Time) ([]*domain.Conference, error) {
	query := `
		SELECT id, name, start_date, end_date, location, description, status, is_deleted, deleted_at, created_at, updated_at
		FROM conferences
		WHERE start_date > $1 AND NOT is_deleted
		ORDER BY start_date, id
	`
	return r.queryConferences(ctx, query, today)
}

func (r *ConferenceRepository) ListNonTerminal(ctx context.Context) ([]*domain.Conference, error) {
	query := `
		SELECT id, name, start_date, end_date, location, description, status, is_deleted, deleted_at, created_at, updated_at
		FROM conferences
		WHERE status NOT IN ('Cancelled', 'Completed') AND NOT is_deleted
		ORDER BY start_date, id
	`
	return r.queryConferences(ctx, query)
}

func (r *ConferenceRepository) Update(ctx context.Context, c *domain.Conference) error {
	query := `
		UPDATE conferences
		SET name = $2, start_date = $3, end_date = $4, location = $5, description = $6, status = $7, updated_at = $8
		WHERE id = $1 AND NOT is_deleted
	`
	res, err := r.DB.ExecContext(ctx, query,
		c.ID, c.Name, c.StartDate, c.EndDate, c.Location, c.Description, c.Status, c.UpdatedAt)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *ConferenceRepository) UpdateStatus(ctx context.Context, id string, status domain.ConferenceStatus) error {
	query := `
		UPDATE conferences
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND NOT is_deleted
	`
	res, err := r.DB.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *ConferenceRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE conferences
		SET is_deleted = TRUE, deleted_at = $2, updated_at = $2
		WHERE id = $1 AND NOT is_deleted
	`
	res, err := r.DB.ExecContext(ctx, query, id, at)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *ConferenceRepository) Search(ctx context.Context, q string) ([]*domain.Conference, error) {
	query := `
		SELECT id, name, start_date, end_date, location, description, status, is_deleted, deleted_at, created_at, updated_at
		FROM conferences
		WHERE (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%') AND NOT is_deleted
		ORDER BY start_date, id
	`
	return r.queryConferences(ctx, query, q)
}

func (r *ConferenceRepository) queryConferences(ctx context.Context, query string, args ...any) ([]*domain.Conference, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conferences []*domain.Conference
	for rows.Next() {
		c := &domain.Conference{}
		if err := rows.Scan(
			&c.ID, &c.Name, &c.StartDate, &c.EndDate, &c.Location, &c.Description,
			&c.Status, &c.IsDeleted, &c.DeletedAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		conferences = append(conferences, c)
	}
	return conferences, rows.Err()
}

// requireRowAffected maps a zero-row update to domain.ErrNotFound.
func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
