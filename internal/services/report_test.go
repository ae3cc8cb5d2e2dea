package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"conferencehub/internal/domain"
)

func TestReportService_SessionReports(t *testing.T) {
	sessions := map[string]*domain.Session{
		"s1": {
			ID:           "s1",
			ConferenceID: "c1",
			Name:         "Go Concurrency",
			StartTime:    at(9, 0),
			EndTime:      at(10, 0),
			MaxAttendees: 10,
			Price:        decimal.NewFromFloat(49.50),
		},
	}
	regRepo := &mockRegistrationRepository{
		bySession: map[string][]*domain.Registration{
			"s1": {
				{ID: "r1", SessionID: "s1", PaymentStatus: domain.PaymentPaid},
				{ID: "r2", SessionID: "s1", PaymentStatus: domain.PaymentPaid},
				{ID: "r3", SessionID: "s1", PaymentStatus: domain.PaymentPending},
				{ID: "r4", SessionID: "s1", PaymentStatus: domain.PaymentFailed},
			},
		},
	}
	svc := &reportService{
		conferenceRepo:   &mockConferenceRepository{},
		sessionRepo:      &mockSessionRepository{sessions: sessions},
		registrationRepo: regRepo,
		contextTimeout:   time.Second,
	}

	reports, err := svc.SessionReports(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}
	r := reports[0]
	if r.Session != "Go Concurrency" {
		t.Fatalf("unexpected session name %q", r.Session)
	}
	if r.TotalRegistrations != 4 {
		t.Fatalf("expected 4 registrations, got %d", r.TotalRegistrations)
	}
	if r.RemainingCapacity != 6 {
		t.Fatalf("expected remaining capacity 6, got %d", r.RemainingCapacity)
	}
	// Revenue counts paid registrations only.
	want := decimal.NewFromFloat(99.00)
	if !r.Revenue.Equal(want) {
		t.Fatalf("expected revenue %s, got %s", want, r.Revenue)
	}
}

func TestReportService_SessionReportsRemainingNeverNegative(t *testing.T) {
	sessions := map[string]*domain.Session{
		"s1": {ID: "s1", Name: "Oversold", MaxAttendees: 1, StartTime: at(9, 0), EndTime: at(10, 0)},
	}
	regRepo := &mockRegistrationRepository{
		bySession: map[string][]*domain.Registration{
			"s1": {
				{ID: "r1", SessionID: "s1", PaymentStatus: domain.PaymentPaid},
				{ID: "r2", SessionID: "s1", PaymentStatus: domain.PaymentPaid},
			},
		},
	}
	svc := &reportService{
		conferenceRepo:   &mockConferenceRepository{},
		sessionRepo:      &mockSessionRepository{sessions: sessions},
		registrationRepo: regRepo,
		contextTimeout:   time.Second,
	}

	reports, err := svc.SessionReports(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reports[0].RemainingCapacity != 0 {
		t.Fatalf("remaining capacity must clamp at zero, got %d", reports[0].RemainingCapacity)
	}
}

func TestReportService_ConferenceReports(t *testing.T) {
	conferences := map[string]*domain.Conference{
		"c1": {ID: "c1", Name: "GopherCon", StartDate: day(2025, 6, 10), EndDate: day(2025, 6, 12)},
	}
	sessions := map[string]*domain.Session{
		"s1": {ID: "s1", ConferenceID: "c1", StartTime: at(9, 0), EndTime: at(10, 0)},
		"s2": {ID: "s2", ConferenceID: "c1", StartTime: at(10, 0), EndTime: at(11, 0)},
		"s3": {ID: "s3", ConferenceID: "c1", StartTime: at(11, 0), EndTime: at(12, 0), IsDeleted: true},
	}
	regRepo := &mockRegistrationRepository{
		bySession: map[string][]*domain.Registration{
			"s1": {
				{ID: "r1", ConferenceID: "c1", SessionID: "s1", AttendeeID: "a1"},
				{ID: "r2", ConferenceID: "c1", SessionID: "s1", AttendeeID: "a2"},
			},
			"s2": {
				// Same attendee in a second session counts once.
				{ID: "r3", ConferenceID: "c1", SessionID: "s2", AttendeeID: "a1"},
			},
		},
	}
	svc := &reportService{
		conferenceRepo:   &mockConferenceRepository{conferences: conferences},
		sessionRepo:      &mockSessionRepository{sessions: sessions},
		registrationRepo: regRepo,
		contextTimeout:   time.Second,
	}

	reports, err := svc.ConferenceReports(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}
	r := reports[0]
	if r.Conference != "GopherCon" {
		t.Fatalf("unexpected conference name %q", r.Conference)
	}
	if r.Sessions != 2 {
		t.Fatalf("deleted sessions must not be counted, got %d", r.Sessions)
	}
	if r.UniqueAttendees != 2 {
		t.Fatalf("expected 2 unique attendees, got %d", r.UniqueAttendees)
	}
}

func TestSearchService_Search(t *testing.T) {
	t.Run("empty query returns empty result", func(t *testing.T) {
		svc := &searchService{
			conferenceRepo: &mockConferenceRepository{},
			sessionRepo:    &mockSessionRepository{},
			contextTimeout: time.Second,
		}

		got, err := svc.Search(context.Background(), "   ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got.Conferences) != 0 || len(got.Sessions) != 0 {
			t.Fatalf("expected empty result, got %+v", got)
		}
		if got.Conferences == nil || got.Sessions == nil {
			t.Fatal("result slices must be non-nil for JSON encoding")
		}
	})
}
