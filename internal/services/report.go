package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"conferencehub/internal/domain"
)

type reportService struct {
	conferenceRepo   domain.ConferenceRepository
	sessionRepo      domain.SessionRepository
	registrationRepo domain.RegistrationRepository
	contextTimeout   time.Duration
}

// NewReportService creates a ReportService with the given repositories.
func NewReportService(
	conferenceRepo domain.ConferenceRepository,
	sessionRepo domain.SessionRepository,
	registrationRepo domain.RegistrationRepository,
	timeout time.Duration,
) domain.ReportService {
	return &reportService{
		conferenceRepo:   conferenceRepo,
		sessionRepo:      sessionRepo,
		registrationRepo: registrationRepo,
		contextTimeout:   timeout,
	}
}

func (s *reportService) ConferenceReports(ctx context.Context) ([]*domain.ConferenceReport, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	conferences, err := s.conferenceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list conferences: %w", err)
	}

	reports := []*domain.ConferenceReport{}
	for _, conference := range conferences {
		sessions, err := s.sessionRepo.ListByConferenceID(ctx, conference.ID)
		if err != nil {
			return nil, fmt.Errorf("list conference sessions: %w", err)
		}
		uniqueAttendees, err := s.registrationRepo.CountUniqueAttendeesByConferenceID(ctx, conference.ID)
		if err != nil {
			return nil, fmt.Errorf("count unique attendees: %w", err)
		}
		reports = append(reports, &domain.ConferenceReport{
			Conference:      conference.Name,
			Sessions:        len(sessions),
			UniqueAttendees: uniqueAttendees,
		})
	}
	return reports, nil
}

func (s *reportService) SessionReports(ctx context.Context) ([]*domain.SessionReport, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sessions, err := s.sessionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	reports := []*domain.SessionReport{}
	for _, session := range sessions {
		total, paid, err := s.registrationRepo.CountBySessionID(ctx, session.ID)
		if err != nil {
			return nil, fmt.Errorf("count session registrations: %w", err)
		}
		remaining := session.MaxAttendees - total
		if remaining < 0 {
			remaining = 0
		}
		reports = append(reports, &domain.SessionReport{
			Session:            session.Name,
			TotalRegistrations: total,
			RemainingCapacity:  remaining,
			Revenue:            session.Price.Mul(decimal.NewFromInt(int64(paid))),
		})
	}
	return reports, nil
}
