package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"conferencehub/internal/domain"
)

type sessionService struct {
	sessionRepo    domain.SessionRepository
	conferenceRepo domain.ConferenceRepository
	contextTimeout time.Duration
	now            func() time.Time
}

// NewSessionService creates a SessionService with the given repositories.
func NewSessionService(sessionRepo domain.SessionRepository, conferenceRepo domain.ConferenceRepository, timeout time.Duration) domain.SessionService {
	return &sessionService{
		sessionRepo:    sessionRepo,
		conferenceRepo: conferenceRepo,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *sessionService) CreateSession(ctx context.Context, session *domain.Session) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	conference, err := s.conferenceRepo.GetByID(ctx, session.ConferenceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get conference: %w", err)
	}
	if conference.IsDeleted {
		return domain.ErrNotFound
	}

	siblings, err := s.sessionRepo.ListByConferenceID(ctx, session.ConferenceID)
	if err != nil {
		return fmt.Errorf("list conference sessions: %w", err)
	}
	if ve := ValidateSessionWrite(session, siblings); ve != nil {
		return ve
	}

	now := s.now()
	session.CreatedAt = now
	session.UpdatedAt = now
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (s *sessionService) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}

func (s *sessionService) ListConferenceSessions(ctx context.Context, conferenceID string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sessions, err := s.sessionRepo.ListByConferenceID(ctx, conferenceID)
	if err != nil {
		return nil, fmt.Errorf("list conference sessions: %w", err)
	}
	if sessions == nil {
		sessions = []*domain.Session{}
	}
	return sessions, nil
}

func (s *sessionService) UpdateSession(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	existing, err := s.sessionRepo.GetByID(ctx, session.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	if existing.IsDeleted {
		return nil, domain.ErrNotFound
	}
	// The owning conference is fixed at creation.
	session.ConferenceID = existing.ConferenceID

	siblings, err := s.sessionRepo.ListByConferenceID(ctx, session.ConferenceID)
	if err != nil {
		return nil, fmt.Errorf("list conference sessions: %w", err)
	}
	if ve := ValidateSessionWrite(session, siblings); ve != nil {
		return nil, ve
	}

	session.CreatedAt = existing.CreatedAt
	session.UpdatedAt = s.now()
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update session: %w", err)
	}
	return session, nil
}

func (s *sessionService) DeleteSession(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.sessionRepo.SoftDelete(ctx, id, s.now()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
