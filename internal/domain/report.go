package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// ConferenceReport summarizes one conference for the reporting endpoint.
// swagger:model ConferenceReport
type ConferenceReport struct {
	Conference      string `json:"conference"`
	Sessions        int    `json:"sessions"`
	UniqueAttendees int    `json:"unique_attendees"`
}

// SessionReport summarizes one session for the reporting endpoint. Revenue is
// the session price multiplied by the paid registration count.
// swagger:model SessionReport
type SessionReport struct {
	Session            string          `json:"session"`
	TotalRegistrations int             `json:"total_registrations"`
	RemainingCapacity  int             `json:"remaining_capacity"`
	Revenue            decimal.Decimal `json:"revenue"`
}

// ReportService builds read-side aggregates over the committed store state.
type ReportService interface {
	ConferenceReports(ctx context.Context) ([]*ConferenceReport, error)
	SessionReports(ctx context.Context) ([]*SessionReport, error)
}

// SearchResult groups matches for a free-text search.
// swagger:model SearchResult
type SearchResult struct {
	Conferences []*Conference `json:"conferences"`
	Sessions    []*Session    `json:"sessions"`
}

// SearchService matches conferences by name or description and sessions by
// name or speaker, case-insensitively.
type SearchService interface {
	Search(ctx context.Context, query string) (*SearchResult, error)
}
