package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"conferencehub/internal/domain"
)

// maxRecommendations caps the recommendation list.
const maxRecommendations = 5

// recommendationStopWords are dropped when tokenizing preferred session names
// into keywords, together with any token of length <= 3.
var recommendationStopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "in": {}, "on": {}, "at": {},
	"for": {}, "to": {}, "of": {}, "and": {}, "session": {}, "workshop": {},
}

type recommendationService struct {
	attendeeRepo     domain.AttendeeRepository
	sessionRepo      domain.SessionRepository
	registrationRepo domain.RegistrationRepository
	emailService     domain.EmailService
	contextTimeout   time.Duration
}

// NewRecommendationService creates a RecommendationService with the given repositories.
func NewRecommendationService(
	attendeeRepo domain.AttendeeRepository,
	sessionRepo domain.SessionRepository,
	registrationRepo domain.RegistrationRepository,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.RecommendationService {
	return &recommendationService{
		attendeeRepo:     attendeeRepo,
		sessionRepo:      sessionRepo,
		registrationRepo: registrationRepo,
		emailService:     emailService,
		contextTimeout:   timeout,
	}
}

// GetAttendeeRecommendations implements the speaker/keyword heuristic.
// Results are ordered by ascending start time; ordering among sessions with
// the same start time follows the repository's secondary order and is
// implementation-defined.
func (s *recommendationService) GetAttendeeRecommendations(ctx context.Context, attendeeID string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	attendee, err := s.attendeeRepo.GetByID(ctx, attendeeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get attendee: %w", err)
	}
	if attendee.IsDeleted {
		return nil, domain.ErrNotFound
	}

	preferred, err := s.attendeeRepo.ListPreferredSessions(ctx, attendeeID)
	if err != nil {
		return nil, fmt.Errorf("list preferred sessions: %w", err)
	}
	if len(preferred) == 0 {
		return []*domain.Session{}, nil
	}

	conferenceIDs := make([]string, 0, len(preferred))
	seenConference := make(map[string]struct{})
	for _, sess := range preferred {
		if _, ok := seenConference[sess.ConferenceID]; ok {
			continue
		}
		seenConference[sess.ConferenceID] = struct{}{}
		conferenceIDs = append(conferenceIDs, sess.ConferenceID)
	}

	candidates, err := s.sessionRepo.ListByConferenceIDs(ctx, conferenceIDs)
	if err != nil {
		return nil, fmt.Errorf("list candidate sessions: %w", err)
	}

	// Any registration excludes a session, regardless of payment status or
	// deletion.
	registeredIDs, err := s.registrationRepo.ListSessionIDsByAttendeeID(ctx, attendeeID)
	if err != nil {
		return nil, fmt.Errorf("list attendee registrations: %w", err)
	}

	return recommendSessions(preferred, candidates, registeredIDs), nil
}

func (s *recommendationService) EmailRecommendations(ctx context.Context, attendeeID string) error {
	recommendations, err := s.GetAttendeeRecommendations(ctx, attendeeID)
	if err != nil {
		return err
	}
	if len(recommendations) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	attendee, err := s.attendeeRepo.GetByID(ctx, attendeeID)
	if err != nil {
		return fmt.Errorf("get attendee: %w", err)
	}

	data := &domain.RecommendationEmailData{
		Email:        attendee.Email,
		AttendeeName: attendee.Name,
	}
	for _, sess := range recommendations {
		data.Sessions = append(data.Sessions, domain.RecommendedSessionEmailItem{
			Name:      sess.Name,
			Speaker:   sess.Speaker,
			StartTime: sess.StartTime,
		})
	}
	if err := s.emailService.SendRecommendations(ctx, data); err != nil {
		return fmt.Errorf("send recommendations: %w", err)
	}
	return nil
}

// recommendSessions is the pure core of the heuristic. candidates must be
// non-deleted sessions already ordered by ascending start time.
func recommendSessions(preferred, candidates []*domain.Session, registeredSessionIDs []string) []*domain.Session {
	speakers := make(map[string]struct{}, len(preferred))
	excluded := make(map[string]struct{}, len(preferred)+len(registeredSessionIDs))
	var names []string
	for _, sess := range preferred {
		speakers[sess.Speaker] = struct{}{}
		excluded[sess.ID] = struct{}{}
		names = append(names, sess.Name)
	}
	for _, id := range registeredSessionIDs {
		excluded[id] = struct{}{}
	}
	keywords := sessionKeywords(names)

	result := []*domain.Session{}
	seen := make(map[string]struct{})
	for _, candidate := range candidates {
		if len(result) == maxRecommendations {
			break
		}
		if _, ok := excluded[candidate.ID]; ok {
			continue
		}
		if _, ok := seen[candidate.ID]; ok {
			continue
		}
		if !matchesPreference(candidate, speakers, keywords) {
			continue
		}
		seen[candidate.ID] = struct{}{}
		result = append(result, candidate)
	}
	return result
}

// sessionKeywords tokenizes session names into lowercase keywords, dropping
// stop words and short tokens.
func sessionKeywords(names []string) []string {
	var keywords []string
	seen := make(map[string]struct{})
	for _, name := range names {
		for _, token := range strings.Fields(name) {
			word := strings.ToLower(token)
			if len(token) <= 3 {
				continue
			}
			if _, ok := recommendationStopWords[word]; ok {
				continue
			}
			if _, ok := seen[word]; ok {
				continue
			}
			seen[word] = struct{}{}
			keywords = append(keywords, word)
		}
	}
	return keywords
}

func matchesPreference(session *domain.Session, speakers map[string]struct{}, keywords []string) bool {
	if _, ok := speakers[session.Speaker]; ok {
		return true
	}
	name := strings.ToLower(session.Name)
	for _, keyword := range keywords {
		if strings.Contains(name, keyword) {
			return true
		}
	}
	return false
}
