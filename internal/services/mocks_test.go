package services

import (
	"context"
	"sort"
	"time"

	"conferencehub/internal/domain"
)

// Hand-rolled repository mocks shared by the service tests. Each mock keeps
// its rows in maps and lets a test force an error through the err field.

type mockConferenceRepository struct {
	conferences map[string]*domain.Conference
	updated     []*domain.Conference
	statusSets  map[string]domain.ConferenceStatus
	err         error
}

func (m *mockConferenceRepository) Create(ctx context.Context, conference *domain.Conference) error {
	if m.err != nil {
		return m.err
	}
	conference.ID = "conf-created"
	return nil
}

func (m *mockConferenceRepository) GetByID(ctx context.Context, id string) (*domain.Conference, error) {
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.conferences[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (m *mockConferenceRepository) List(ctx context.Context) ([]*domain.Conference, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Conference
	for _, c := range m.conferences {
		if !c.IsDeleted {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockConferenceRepository) ListUpcoming(ctx context.Context, today time.Time) ([]*domain.Conference, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Conference
	for _, c := range m.conferences {
		if !c.IsDeleted && c.StartDate.After(today) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockConferenceRepository) ListNonTerminal(ctx context.Context) ([]*domain.Conference, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Conference
	for _, c := range m.conferences {
		if !c.IsDeleted && c.Status != domain.StatusCancelled && c.Status != domain.StatusCompleted {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockConferenceRepository) Update(ctx context.Context, conference *domain.Conference) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.conferences[conference.ID]; !ok {
		return domain.ErrNotFound
	}
	m.updated = append(m.updated, conference)
	return nil
}

func (m *mockConferenceRepository) UpdateStatus(ctx context.Context, id string, status domain.ConferenceStatus) error {
	if m.err != nil {
		return m.err
	}
	if m.statusSets == nil {
		m.statusSets = make(map[string]domain.ConferenceStatus)
	}
	m.statusSets[id] = status
	return nil
}

func (m *mockConferenceRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	if m.err != nil {
		return m.err
	}
	c, ok := m.conferences[id]
	if !ok || c.IsDeleted {
		return domain.ErrNotFound
	}
	c.IsDeleted = true
	return nil
}

func (m *mockConferenceRepository) Search(ctx context.Context, query string) ([]*domain.Conference, error) {
	if m.err != nil {
		return nil, m.err
	}
	return nil, nil
}

type mockSessionRepository struct {
	sessions map[string]*domain.Session
	created  []*domain.Session
	updated  []*domain.Session
	err      error
}

func (m *mockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if m.err != nil {
		return m.err
	}
	session.ID = "sess-created"
	m.created = append(m.created, session)
	return nil
}

func (m *mockSessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (m *mockSessionRepository) List(ctx context.Context) ([]*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Session
	for _, s := range m.sessions {
		if !s.IsDeleted {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSessionRepository) ListByConferenceID(ctx context.Context, conferenceID string) ([]*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Session
	for _, s := range m.sessions {
		if !s.IsDeleted && s.ConferenceID == conferenceID {
			out = append(out, s)
		}
	}
	// Mirror the real repository's start-time ordering.
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

func (m *mockSessionRepository) ListByConferenceIDs(ctx context.Context, conferenceIDs []string) ([]*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Session
	for _, id := range conferenceIDs {
		more, _ := m.ListByConferenceID(ctx, id)
		out = append(out, more...)
	}
	return out, nil
}

func (m *mockSessionRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Session
	for _, id := range ids {
		if s, ok := m.sessions[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSessionRepository) Update(ctx context.Context, session *domain.Session) error {
	if m.err != nil {
		return m.err
	}
	if s, ok := m.sessions[session.ID]; !ok || s.IsDeleted {
		return domain.ErrNotFound
	}
	m.updated = append(m.updated, session)
	return nil
}

func (m *mockSessionRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	if m.err != nil {
		return m.err
	}
	s, ok := m.sessions[id]
	if !ok || s.IsDeleted {
		return domain.ErrNotFound
	}
	s.IsDeleted = true
	return nil
}

func (m *mockSessionRepository) Search(ctx context.Context, query string) ([]*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	return nil, nil
}

type mockAttendeeRepository struct {
	attendees   map[string]*domain.Attendee
	preferred   map[string][]*domain.Session
	preferences map[string][]string
	err         error
}

func (m *mockAttendeeRepository) Create(ctx context.Context, attendee *domain.Attendee) error {
	if m.err != nil {
		return m.err
	}
	attendee.ID = "att-created"
	return nil
}

func (m *mockAttendeeRepository) GetByID(ctx context.Context, id string) (*domain.Attendee, error) {
	if m.err != nil {
		return nil, m.err
	}
	a, ok := m.attendees[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

func (m *mockAttendeeRepository) List(ctx context.Context) ([]*domain.Attendee, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Attendee
	for _, a := range m.attendees {
		if !a.IsDeleted {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAttendeeRepository) Update(ctx context.Context, attendee *domain.Attendee) error {
	if m.err != nil {
		return m.err
	}
	if a, ok := m.attendees[attendee.ID]; !ok || a.IsDeleted {
		return domain.ErrNotFound
	}
	return nil
}

func (m *mockAttendeeRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	if m.err != nil {
		return m.err
	}
	a, ok := m.attendees[id]
	if !ok || a.IsDeleted {
		return domain.ErrNotFound
	}
	a.IsDeleted = true
	return nil
}

func (m *mockAttendeeRepository) SetPreferences(ctx context.Context, attendeeID string, sessionIDs []string) error {
	if m.err != nil {
		return m.err
	}
	if m.preferences == nil {
		m.preferences = make(map[string][]string)
	}
	m.preferences[attendeeID] = sessionIDs
	return nil
}

func (m *mockAttendeeRepository) ListPreferredSessions(ctx context.Context, attendeeID string) ([]*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.preferred[attendeeID], nil
}

type mockRegistrationRepository struct {
	registrations map[string]*domain.Registration
	bySession     map[string][]*domain.Registration
	byAttendee    map[string][]*domain.Registration
	sessionIDs    map[string][]string
	created       []*domain.Registration
	statusSets    map[string]domain.PaymentStatus
	err           error
}

func (m *mockRegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	if m.err != nil {
		return m.err
	}
	reg.ID = "reg-created"
	m.created = append(m.created, reg)
	return nil
}

func (m *mockRegistrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	if m.err != nil {
		return nil, m.err
	}
	r, ok := m.registrations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (m *mockRegistrationRepository) ListActiveBySessionID(ctx context.Context, sessionID string) ([]*domain.Registration, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.bySession[sessionID], nil
}

func (m *mockRegistrationRepository) ListActiveByAttendeeID(ctx context.Context, attendeeID string) ([]*domain.Registration, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byAttendee[attendeeID], nil
}

func (m *mockRegistrationRepository) ListSessionIDsByAttendeeID(ctx context.Context, attendeeID string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sessionIDs[attendeeID], nil
}

func (m *mockRegistrationRepository) CountUniqueAttendeesByConferenceID(ctx context.Context, conferenceID string) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	seen := make(map[string]struct{})
	for _, regs := range m.bySession {
		for _, r := range regs {
			if r.ConferenceID == conferenceID && !r.IsDeleted {
				seen[r.AttendeeID] = struct{}{}
			}
		}
	}
	return len(seen), nil
}

func (m *mockRegistrationRepository) CountBySessionID(ctx context.Context, sessionID string) (int, int, error) {
	if m.err != nil {
		return 0, 0, m.err
	}
	total, paid := 0, 0
	for _, r := range m.bySession[sessionID] {
		total++
		if r.PaymentStatus == domain.PaymentPaid {
			paid++
		}
	}
	return total, paid, nil
}

func (m *mockRegistrationRepository) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	if m.err != nil {
		return m.err
	}
	if m.statusSets == nil {
		m.statusSets = make(map[string]domain.PaymentStatus)
	}
	m.statusSets[id] = status
	return nil
}

func (m *mockRegistrationRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	if m.err != nil {
		return m.err
	}
	r, ok := m.registrations[id]
	if !ok || r.IsDeleted {
		return domain.ErrNotFound
	}
	r.IsDeleted = true
	return nil
}

type mockEmailService struct {
	sent []*domain.RecommendationEmailData
	err  error
}

func (m *mockEmailService) SendRecommendations(ctx context.Context, data *domain.RecommendationEmailData) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, data)
	return nil
}
