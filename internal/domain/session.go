package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Session represents a talk or workshop inside a conference.
// swagger:model Session
type Session struct {
	ID           string          `json:"id"`
	ConferenceID string          `json:"conference_id"`
	Name         string          `json:"name"`
	Speaker      string          `json:"speaker"`
	StartTime    time.Time       `json:"start_time"`
	EndTime      time.Time       `json:"end_time"`
	MaxAttendees int             `json:"max_attendees"`
	Price        decimal.Decimal `json:"price"`
	IsDeleted    bool            `json:"is_deleted"`
	DeletedAt    *time.Time      `json:"deleted_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewSession returns a new Session with the given fields. ID is typically set by the repository on create.
func NewSession(conferenceID, name, speaker string, startTime, endTime time.Time, maxAttendees int, price decimal.Decimal, createdAt, updatedAt time.Time) *Session {
	return &Session{
		ConferenceID: conferenceID,
		Name:         name,
		Speaker:      speaker,
		StartTime:    startTime,
		EndTime:      endTime,
		MaxAttendees: maxAttendees,
		Price:        price,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// Overlaps reports whether the two sessions' half-open intervals share time.
// Touching endpoints do not count as overlapping.
func (s *Session) Overlaps(other *Session) bool {
	return s.StartTime.Before(other.EndTime) && other.StartTime.Before(s.EndTime)
}

// SessionRepository defines storage operations for sessions. List methods
// exclude soft-deleted rows and order by start time.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	List(ctx context.Context) ([]*Session, error)
	ListByConferenceID(ctx context.Context, conferenceID string) ([]*Session, error)
	ListByConferenceIDs(ctx context.Context, conferenceIDs []string) ([]*Session, error)
	ListByIDs(ctx context.Context, ids []string) ([]*Session, error)
	Update(ctx context.Context, session *Session) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
	Search(ctx context.Context, query string) ([]*Session, error)
}

// SessionService defines the business logic for sessions. Create and Update
// run the interval and sibling-overlap validation against a snapshot of the
// conference's non-deleted sessions.
type SessionService interface {
	CreateSession(ctx context.Context, session *Session) error
	GetSession(ctx context.Context, id string) (*Session, error)
	ListConferenceSessions(ctx context.Context, conferenceID string) ([]*Session, error)
	UpdateSession(ctx context.Context, session *Session) (*Session, error)
	DeleteSession(ctx context.Context, id string) error
}
