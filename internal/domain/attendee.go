package domain

import (
	"context"
	"time"
)

// Attendee represents a person who can register for sessions. The preference
// set feeds the recommendation heuristic only; it is not a registration.
// swagger:model Attendee
type Attendee struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Organization string     `json:"organization"`
	IsDeleted    bool       `json:"is_deleted"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewAttendee returns a new Attendee with the given fields. ID is typically set by the repository on create.
func NewAttendee(name, email, phone, organization string, createdAt, updatedAt time.Time) *Attendee {
	return &Attendee{
		Name:         name,
		Email:        email,
		Phone:        phone,
		Organization: organization,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// AttendeeRepository defines storage operations for attendees and their
// preferred-session set. Create and Update return ErrDuplicateEmail when the
// email is already taken by another attendee.
type AttendeeRepository interface {
	Create(ctx context.Context, attendee *Attendee) error
	GetByID(ctx context.Context, id string) (*Attendee, error)
	List(ctx context.Context) ([]*Attendee, error)
	Update(ctx context.Context, attendee *Attendee) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
	SetPreferences(ctx context.Context, attendeeID string, sessionIDs []string) error
	ListPreferredSessions(ctx context.Context, attendeeID string) ([]*Session, error)
}

// AttendeeService defines the business logic for attendees.
type AttendeeService interface {
	CreateAttendee(ctx context.Context, attendee *Attendee) error
	GetAttendee(ctx context.Context, id string) (*Attendee, error)
	ListAttendees(ctx context.Context) ([]*Attendee, error)
	UpdateAttendee(ctx context.Context, attendee *Attendee) (*Attendee, error)
	DeleteAttendee(ctx context.Context, id string) error
	// SetPreferences replaces the attendee's preferred-session set. Every
	// session ID must reference an existing non-deleted session.
	SetPreferences(ctx context.Context, attendeeID string, sessionIDs []string) error
}

// RecommendationService proposes related sessions from an attendee's
// preferred-session set. Results are advisory only and never gate
// registration.
type RecommendationService interface {
	// GetAttendeeRecommendations returns up to five non-deleted sessions in
	// the conferences of the attendee's preferred sessions, matched by
	// speaker or by name keyword, ordered by ascending start time. An empty
	// preference set yields an empty result.
	GetAttendeeRecommendations(ctx context.Context, attendeeID string) ([]*Session, error)
	// EmailRecommendations sends the current recommendations to the
	// attendee's email address. It is a no-op when there is nothing to
	// recommend.
	EmailRecommendations(ctx context.Context, attendeeID string) error
}
