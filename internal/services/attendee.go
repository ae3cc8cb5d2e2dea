package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"conferencehub/internal/domain"
)

type attendeeService struct {
	attendeeRepo   domain.AttendeeRepository
	sessionRepo    domain.SessionRepository
	contextTimeout time.Duration
	now            func() time.Time
}

// NewAttendeeService creates an AttendeeService with the given repositories.
func NewAttendeeService(attendeeRepo domain.AttendeeRepository, sessionRepo domain.SessionRepository, timeout time.Duration) domain.AttendeeService {
	return &attendeeService{
		attendeeRepo:   attendeeRepo,
		sessionRepo:    sessionRepo,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *attendeeService) CreateAttendee(ctx context.Context, attendee *domain.Attendee) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	attendee.Email = strings.ToLower(strings.TrimSpace(attendee.Email))
	now := s.now()
	attendee.CreatedAt = now
	attendee.UpdatedAt = now

	if err := s.attendeeRepo.Create(ctx, attendee); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("create attendee: %w", err)
	}
	return nil
}

func (s *attendeeService) GetAttendee(ctx context.Context, id string) (*domain.Attendee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	attendee, err := s.attendeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get attendee: %w", err)
	}
	return attendee, nil
}

func (s *attendeeService) ListAttendees(ctx context.Context) ([]*domain.Attendee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	attendees, err := s.attendeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	if attendees == nil {
		attendees = []*domain.Attendee{}
	}
	return attendees, nil
}

func (s *attendeeService) UpdateAttendee(ctx context.Context, attendee *domain.Attendee) (*domain.Attendee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	existing, err := s.attendeeRepo.GetByID(ctx, attendee.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get attendee: %w", err)
	}
	if existing.IsDeleted {
		return nil, domain.ErrNotFound
	}

	attendee.Email = strings.ToLower(strings.TrimSpace(attendee.Email))
	attendee.CreatedAt = existing.CreatedAt
	attendee.UpdatedAt = s.now()

	if err := s.attendeeRepo.Update(ctx, attendee); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update attendee: %w", err)
	}
	return attendee, nil
}

func (s *attendeeService) DeleteAttendee(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.attendeeRepo.SoftDelete(ctx, id, s.now()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete attendee: %w", err)
	}
	return nil
}

func (s *attendeeService) SetPreferences(ctx context.Context, attendeeID string, sessionIDs []string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	attendee, err := s.attendeeRepo.GetByID(ctx, attendeeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get attendee: %w", err)
	}
	if attendee.IsDeleted {
		return domain.ErrNotFound
	}

	// Referential integrity is checked at write time: every preferred session
	// must exist and not be deleted.
	if len(sessionIDs) > 0 {
		sessions, err := s.sessionRepo.ListByIDs(ctx, sessionIDs)
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		found := make(map[string]struct{}, len(sessions))
		for _, sess := range sessions {
			if !sess.IsDeleted {
				found[sess.ID] = struct{}{}
			}
		}
		for _, id := range sessionIDs {
			if _, ok := found[id]; !ok {
				return domain.ErrNotFound
			}
		}
	}

	if err := s.attendeeRepo.SetPreferences(ctx, attendeeID, sessionIDs); err != nil {
		return fmt.Errorf("set preferences: %w", err)
	}
	return nil
}
