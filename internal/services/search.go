package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"conferencehub/internal/domain"
)

type searchService struct {
	conferenceRepo domain.ConferenceRepository
	sessionRepo    domain.SessionRepository
	contextTimeout time.Duration
}

// NewSearchService creates a SearchService with the given repositories.
func NewSearchService(conferenceRepo domain.ConferenceRepository, sessionRepo domain.SessionRepository, timeout time.Duration) domain.SearchService {
	return &searchService{
		conferenceRepo: conferenceRepo,
		sessionRepo:    sessionRepo,
		contextTimeout: timeout,
	}
}

func (s *searchService) Search(ctx context.Context, query string) (*domain.SearchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	result := &domain.SearchResult{
		Conferences: []*domain.Conference{},
		Sessions:    []*domain.Session{},
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return result, nil
	}

	conferences, err := s.conferenceRepo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search conferences: %w", err)
	}
	if conferences != nil {
		result.Conferences = conferences
	}

	sessions, err := s.sessionRepo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search sessions: %w", err)
	}
	if sessions != nil {
		result.Sessions = sessions
	}
	return result, nil
}
