package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"conferencehub/internal/domain"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestRegistrationService_CreateRegistration(t *testing.T) {
	session := &domain.Session{
		ID:           "s1",
		ConferenceID: "c1",
		Name:         "Go Concurrency",
		StartTime:    at(9, 0),
		EndTime:      at(10, 0),
		MaxAttendees: 2,
	}
	overlapping := &domain.Session{
		ID:           "s2",
		ConferenceID: "c1",
		Name:         "Parallel Track",
		StartTime:    at(9, 30),
		EndTime:      at(10, 30),
	}
	attendee := &domain.Attendee{ID: "a1", Name: "Jane Doe", Email: "jane@example.com"}

	tests := []struct {
		name     string
		sessions map[string]*domain.Session
		regRepo  *mockRegistrationRepository
		reg      *domain.Registration
		wantErr  error
		wantKind domain.ValidationKind
	}{
		{
			name:     "accepted registration defaults to pending",
			sessions: map[string]*domain.Session{"s1": session},
			regRepo:  &mockRegistrationRepository{},
			reg:      &domain.Registration{SessionID: "s1", AttendeeID: "a1"},
		},
		{
			name:     "unknown session",
			sessions: map[string]*domain.Session{},
			regRepo:  &mockRegistrationRepository{},
			reg:      &domain.Registration{SessionID: "missing", AttendeeID: "a1"},
			wantErr:  domain.ErrNotFound,
		},
		{
			name: "deleted session",
			sessions: map[string]*domain.Session{
				"s1": {ID: "s1", ConferenceID: "c1", IsDeleted: true, StartTime: at(9, 0), EndTime: at(10, 0), MaxAttendees: 2},
			},
			regRepo: &mockRegistrationRepository{},
			reg:     &domain.Registration{SessionID: "s1", AttendeeID: "a1"},
			wantErr: domain.ErrNotFound,
		},
		{
			name:     "unknown attendee",
			sessions: map[string]*domain.Session{"s1": session},
			regRepo:  &mockRegistrationRepository{},
			reg:      &domain.Registration{SessionID: "s1", AttendeeID: "missing"},
			wantErr:  domain.ErrNotFound,
		},
		{
			name:     "full session",
			sessions: map[string]*domain.Session{"s1": session},
			regRepo: &mockRegistrationRepository{
				bySession: map[string][]*domain.Registration{
					"s1": {
						{ID: "r1", SessionID: "s1", AttendeeID: "a2", PaymentStatus: domain.PaymentPending},
						{ID: "r2", SessionID: "s1", AttendeeID: "a3", PaymentStatus: domain.PaymentPaid},
					},
				},
			},
			reg:      &domain.Registration{SessionID: "s1", AttendeeID: "a1"},
			wantKind: domain.KindSessionFull,
		},
		{
			name:     "overlapping booking",
			sessions: map[string]*domain.Session{"s1": session, "s2": overlapping},
			regRepo: &mockRegistrationRepository{
				byAttendee: map[string][]*domain.Registration{
					"a1": {{ID: "r1", SessionID: "s2", AttendeeID: "a1", PaymentStatus: domain.PaymentPaid}},
				},
			},
			reg:      &domain.Registration{SessionID: "s1", AttendeeID: "a1"},
			wantKind: domain.KindAttendeeOverlap,
		},
		{
			name:     "failed registration for the same session is a duplicate",
			sessions: map[string]*domain.Session{"s1": session},
			regRepo: &mockRegistrationRepository{
				byAttendee: map[string][]*domain.Registration{
					"a1": {{ID: "r1", SessionID: "s1", AttendeeID: "a1", PaymentStatus: domain.PaymentFailed}},
				},
			},
			reg:      &domain.Registration{SessionID: "s1", AttendeeID: "a1"},
			wantKind: domain.KindDuplicateRegistration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &registrationService{
				registrationRepo: tt.regRepo,
				sessionRepo:      &mockSessionRepository{sessions: tt.sessions},
				attendeeRepo:     &mockAttendeeRepository{attendees: map[string]*domain.Attendee{"a1": attendee}},
				contextTimeout:   time.Second,
				now:              fixedNow,
				payment:          func() domain.PaymentStatus { return domain.PaymentPaid },
			}

			got, err := svc.CreateRegistration(context.Background(), tt.reg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if tt.wantKind != "" {
				var ve *domain.ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("expected validation error, got %v", err)
				}
				if ve.Kind != tt.wantKind {
					t.Fatalf("expected kind %q, got %q", tt.wantKind, ve.Kind)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.PaymentStatus != domain.PaymentPending {
				t.Fatalf("expected pending payment status, got %q", got.PaymentStatus)
			}
			if got.ConferenceID != "c1" {
				t.Fatalf("conference should be derived from the session, got %q", got.ConferenceID)
			}
			if !got.RegisteredAt.Equal(fixedNow()) {
				t.Fatalf("expected registered_at %v, got %v", fixedNow(), got.RegisteredAt)
			}
			if len(tt.regRepo.created) != 1 {
				t.Fatalf("expected one created registration, got %d", len(tt.regRepo.created))
			}
		})
	}
}

func TestRegistrationService_ProcessPayment(t *testing.T) {
	tests := []struct {
		name       string
		reg        *domain.Registration
		outcome    domain.PaymentStatus
		wantErr    error
		wantStatus domain.PaymentStatus
	}{
		{
			name:       "pending to paid",
			reg:        &domain.Registration{ID: "r1", PaymentStatus: domain.PaymentPending},
			outcome:    domain.PaymentPaid,
			wantStatus: domain.PaymentPaid,
		},
		{
			name:       "pending to failed",
			reg:        &domain.Registration{ID: "r1", PaymentStatus: domain.PaymentPending},
			outcome:    domain.PaymentFailed,
			wantStatus: domain.PaymentFailed,
		},
		{
			name:       "failed payment can be retried",
			reg:        &domain.Registration{ID: "r1", PaymentStatus: domain.PaymentFailed},
			outcome:    domain.PaymentPaid,
			wantStatus: domain.PaymentPaid,
		},
		{
			name:    "already paid",
			reg:     &domain.Registration{ID: "r1", PaymentStatus: domain.PaymentPaid},
			outcome: domain.PaymentPaid,
			wantErr: domain.ErrAlreadyPaid,
		},
		{
			name:    "deleted registration",
			reg:     &domain.Registration{ID: "r1", PaymentStatus: domain.PaymentPending, IsDeleted: true},
			outcome: domain.PaymentPaid,
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			regRepo := &mockRegistrationRepository{
				registrations: map[string]*domain.Registration{"r1": tt.reg},
			}
			svc := &registrationService{
				registrationRepo: regRepo,
				sessionRepo:      &mockSessionRepository{},
				attendeeRepo:     &mockAttendeeRepository{},
				contextTimeout:   time.Second,
				now:              fixedNow,
				payment:          func() domain.PaymentStatus { return tt.outcome },
			}

			got, err := svc.ProcessPayment(context.Background(), "r1")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.PaymentStatus != tt.wantStatus {
				t.Fatalf("expected status %q, got %q", tt.wantStatus, got.PaymentStatus)
			}
			if regRepo.statusSets["r1"] != tt.wantStatus {
				t.Fatalf("expected persisted status %q, got %q", tt.wantStatus, regRepo.statusSets["r1"])
			}
		})
	}
}

func TestSimulatePaymentOutcomes(t *testing.T) {
	// The simulated gateway only ever reports Paid or Failed.
	for i := 0; i < 100; i++ {
		switch simulatePayment() {
		case domain.PaymentPaid, domain.PaymentFailed:
		default:
			t.Fatal("unexpected payment outcome")
		}
	}
}
