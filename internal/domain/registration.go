package domain

import (
	"context"
	"time"
)

// PaymentStatus is the payment state of a registration.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
	PaymentFailed  PaymentStatus = "Failed"
)

// Registration links an attendee to a session. RegisteredAt is immutable once
// set. Failed registrations do not count against capacity or the attendee's
// schedule; soft-deleted ones count against nothing.
// swagger:model Registration
type Registration struct {
	ID            string        `json:"id"`
	ConferenceID  string        `json:"conference_id"`
	SessionID     string        `json:"session_id"`
	AttendeeID    string        `json:"attendee_id"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	RegisteredAt  time.Time     `json:"registered_at"`
	IsDeleted     bool          `json:"is_deleted"`
	DeletedAt     *time.Time    `json:"deleted_at,omitempty"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// NewRegistration returns a new pending Registration. ID is typically set by the repository on create.
func NewRegistration(conferenceID, sessionID, attendeeID string, registeredAt time.Time) *Registration {
	return &Registration{
		ConferenceID:  conferenceID,
		SessionID:     sessionID,
		AttendeeID:    attendeeID,
		PaymentStatus: PaymentPending,
		RegisteredAt:  registeredAt,
		UpdatedAt:     registeredAt,
	}
}

// RegistrationRepository defines storage operations for registrations.
// ListActive methods exclude soft-deleted rows; ListSessionIDsByAttendeeID
// returns session IDs of every registration the attendee ever made,
// regardless of payment status or deletion.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *Registration) error
	GetByID(ctx context.Context, id string) (*Registration, error)
	ListActiveBySessionID(ctx context.Context, sessionID string) ([]*Registration, error)
	ListActiveByAttendeeID(ctx context.Context, attendeeID string) ([]*Registration, error)
	ListSessionIDsByAttendeeID(ctx context.Context, attendeeID string) ([]string, error)
	CountUniqueAttendeesByConferenceID(ctx context.Context, conferenceID string) (int, error)
	// CountBySessionID returns the total and paid registration counts for a
	// session, soft-deleted rows included.
	CountBySessionID(ctx context.Context, sessionID string) (total, paid int, err error)
	UpdatePaymentStatus(ctx context.Context, id string, status PaymentStatus) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
}

// RegistrationService defines the business logic for registrations.
type RegistrationService interface {
	// CreateRegistration validates capacity, schedule overlap, and uniqueness
	// against a snapshot taken at decision time, then commits. The accepted
	// registration defaults to Pending payment status.
	CreateRegistration(ctx context.Context, reg *Registration) (*Registration, error)
	GetRegistration(ctx context.Context, id string) (*Registration, error)
	ListSessionRegistrations(ctx context.Context, sessionID string) ([]*Registration, error)
	DeleteRegistration(ctx context.Context, id string) error
	// ProcessPayment runs the simulated payment outcome for a pending or
	// failed registration and returns the updated record. A paid registration
	// is rejected with ErrAlreadyPaid.
	ProcessPayment(ctx context.Context, id string) (*Registration, error)
}
