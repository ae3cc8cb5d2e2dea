package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"conferencehub/internal/domain"
)

type conferenceService struct {
	conferenceRepo domain.ConferenceRepository
	contextTimeout time.Duration
	now            func() time.Time
}

// NewConferenceService creates a ConferenceService with the given repository.
func NewConferenceService(conferenceRepo domain.ConferenceRepository, timeout time.Duration) domain.ConferenceService {
	return &conferenceService{
		conferenceRepo: conferenceRepo,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *conferenceService) CreateConference(ctx context.Context, conference *domain.Conference) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if ve := ValidateConferenceDates(conference.StartDate, conference.EndDate); ve != nil {
		return ve
	}

	now := s.now()
	conference.CreatedAt = now
	conference.UpdatedAt = now
	if conference.Status == "" {
		conference.Status = domain.StatusUpcoming
	}
	conference.Status = DeriveStatus(conference.Status, conference.StartDate, conference.EndDate, now)

	if err := s.conferenceRepo.Create(ctx, conference); err != nil {
		return fmt.Errorf("create conference: %w", err)
	}
	return nil
}

func (s *conferenceService) GetConference(ctx context.Context, id string) (*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	conference, err := s.conferenceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get conference: %w", err)
	}
	if conference.IsDeleted {
		return conference, nil
	}

	derived := DeriveStatus(conference.Status, conference.StartDate, conference.EndDate, s.now())
	if derived != conference.Status {
		if err := s.conferenceRepo.UpdateStatus(ctx, conference.ID, derived); err != nil {
			return nil, fmt.Errorf("update conference status: %w", err)
		}
		conference.Status = derived
	}
	return conference, nil
}

func (s *conferenceService) ListConferences(ctx context.Context) ([]*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	conferences, err := s.conferenceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list conferences: %w", err)
	}
	if conferences == nil {
		conferences = []*domain.Conference{}
	}
	// Display-only derivation; persisting is left to reads by ID and the sweep.
	now := s.now()
	for _, conference := range conferences {
		conference.Status = DeriveStatus(conference.Status, conference.StartDate, conference.EndDate, now)
	}
	return conferences, nil
}

func (s *conferenceService) ListUpcomingConferences(ctx context.Context) ([]*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	conferences, err := s.conferenceRepo.ListUpcoming(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("list upcoming conferences: %w", err)
	}
	if conferences == nil {
		conferences = []*domain.Conference{}
	}
	return conferences, nil
}

func (s *conferenceService) UpdateConference(ctx context.Context, conference *domain.Conference) (*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	existing, err := s.conferenceRepo.GetByID(ctx, conference.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get conference: %w", err)
	}
	if existing.IsDeleted {
		return nil, domain.ErrNotFound
	}

	if ve := ValidateConferenceDates(conference.StartDate, conference.EndDate); ve != nil {
		return nil, ve
	}

	// Cancelled is a terminal manual override; anything else is re-derived
	// from the updated dates.
	status := conference.Status
	if existing.Status == domain.StatusCancelled || status == domain.StatusCancelled {
		status = domain.StatusCancelled
	} else {
		status = DeriveStatus(status, conference.StartDate, conference.EndDate, s.now())
	}
	conference.Status = status
	conference.CreatedAt = existing.CreatedAt
	conference.UpdatedAt = s.now()

	if err := s.conferenceRepo.Update(ctx, conference); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update conference: %w", err)
	}
	return conference, nil
}

func (s *conferenceService) DeleteConference(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.conferenceRepo.SoftDelete(ctx, id, s.now()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete conference: %w", err)
	}
	return nil
}

func (s *conferenceService) RefreshStatuses(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	conferences, err := s.conferenceRepo.ListNonTerminal(ctx)
	if err != nil {
		return 0, fmt.Errorf("list non-terminal conferences: %w", err)
	}

	now := s.now()
	updated := 0
	for _, conference := range conferences {
		derived := DeriveStatus(conference.Status, conference.StartDate, conference.EndDate, now)
		if derived == conference.Status {
			continue
		}
		if err := s.conferenceRepo.UpdateStatus(ctx, conference.ID, derived); err != nil {
			return updated, fmt.Errorf("update conference status: %w", err)
		}
		updated++
	}
	return updated, nil
}
