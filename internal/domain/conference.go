package domain

import (
	"context"
	"time"
)

// ConferenceStatus is the display status of a conference. It is derived from
// the conference dates except for Cancelled, which is a terminal manual
// override the derivation never overwrites.
type ConferenceStatus string

const (
	StatusUpcoming  ConferenceStatus = "Upcoming"
	StatusOngoing   ConferenceStatus = "Ongoing"
	StatusCompleted ConferenceStatus = "Completed"
	StatusCancelled ConferenceStatus = "Cancelled"
)

// Conference represents a conference. Start and end dates are calendar dates.
// swagger:model Conference
type Conference struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	StartDate   time.Time        `json:"start_date"`
	EndDate     time.Time        `json:"end_date"`
	Location    string           `json:"location"`
	Description string           `json:"description"`
	Status      ConferenceStatus `json:"status"`
	IsDeleted   bool             `json:"is_deleted"`
	DeletedAt   *time.Time       `json:"deleted_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// NewConference returns a new Conference with the given fields. ID is typically set by the repository on create.
func NewConference(name, location, description string, startDate, endDate time.Time, createdAt, updatedAt time.Time) *Conference {
	return &Conference{
		Name:        name,
		StartDate:   startDate,
		EndDate:     endDate,
		Location:    location,
		Description: description,
		Status:      StatusUpcoming,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// ConferenceRepository defines storage operations for conferences.
// GetByID returns soft-deleted rows too so they stay addressable for audit;
// list methods exclude them.
type ConferenceRepository interface {
	Create(ctx context.Context, conference *Conference) error
	GetByID(ctx context.Context, id string) (*Conference, error)
	List(ctx context.Context) ([]*Conference, error)
	ListUpcoming(ctx context.Context, today time.Time) ([]*Conference, error)
	ListNonTerminal(ctx context.Context) ([]*Conference, error)
	Update(ctx context.Context, conference *Conference) error
	UpdateStatus(ctx context.Context, id string, status ConferenceStatus) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
	Search(ctx context.Context, query string) ([]*Conference, error)
}

// ConferenceService defines the business logic for conferences.
type ConferenceService interface {
	CreateConference(ctx context.Context, conference *Conference) error
	// GetConference re-derives the status of a non-deleted conference and
	// persists it when it changed.
	GetConference(ctx context.Context, id string) (*Conference, error)
	ListConferences(ctx context.Context) ([]*Conference, error)
	ListUpcomingConferences(ctx context.Context) ([]*Conference, error)
	UpdateConference(ctx context.Context, conference *Conference) (*Conference, error)
	DeleteConference(ctx context.Context, id string) error
	// RefreshStatuses sweeps all non-terminal conferences and returns how many
	// statuses changed.
	RefreshStatuses(ctx context.Context) (int, error)
}
