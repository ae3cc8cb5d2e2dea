package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"conferencehub/internal/domain"
)

// paymentSuccessRate is the probability the simulated payment processor
// reports success.
const paymentSuccessRate = 0.8

// simulatePayment stands in for a real payment gateway.
func simulatePayment() domain.PaymentStatus {
	if rand.Float64() < paymentSuccessRate {
		return domain.PaymentPaid
	}
	return domain.PaymentFailed
}

type registrationService struct {
	registrationRepo domain.RegistrationRepository
	sessionRepo      domain.SessionRepository
	attendeeRepo     domain.AttendeeRepository
	contextTimeout   time.Duration
	now              func() time.Time
	payment          func() domain.PaymentStatus
}

// NewRegistrationService creates a RegistrationService with the given repositories.
func NewRegistrationService(
	registrationRepo domain.RegistrationRepository,
	sessionRepo domain.SessionRepository,
	attendeeRepo domain.AttendeeRepository,
	timeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		sessionRepo:      sessionRepo,
		attendeeRepo:     attendeeRepo,
		contextTimeout:   timeout,
		now:              time.Now,
		payment:          simulatePayment,
	}
}

func (s *registrationService) CreateRegistration(ctx context.Context, reg *domain.Registration) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	session, err := s.sessionRepo.GetByID(ctx, reg.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session.IsDeleted {
		return nil, domain.ErrNotFound
	}

	attendee, err := s.attendeeRepo.GetByID(ctx, reg.AttendeeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get attendee: %w", err)
	}
	if attendee.IsDeleted {
		return nil, domain.ErrNotFound
	}

	// Snapshot for the validation engine, taken at decision time.
	sessionRegs, err := s.registrationRepo.ListActiveBySessionID(ctx, reg.SessionID)
	if err != nil {
		return nil, fmt.Errorf("list session registrations: %w", err)
	}
	attendeeRegs, err := s.registrationRepo.ListActiveByAttendeeID(ctx, reg.AttendeeID)
	if err != nil {
		return nil, fmt.Errorf("list attendee registrations: %w", err)
	}

	sessionsByID := map[string]*domain.Session{session.ID: session}
	var otherIDs []string
	for _, other := range attendeeRegs {
		if _, ok := sessionsByID[other.SessionID]; !ok {
			otherIDs = append(otherIDs, other.SessionID)
		}
	}
	if len(otherIDs) > 0 {
		sessions, err := s.sessionRepo.ListByIDs(ctx, otherIDs)
		if err != nil {
			return nil, fmt.Errorf("list attendee sessions: %w", err)
		}
		for _, sess := range sessions {
			sessionsByID[sess.ID] = sess
		}
	}

	if ve := ValidateRegistrationWrite(reg, true, session, sessionRegs, attendeeRegs, sessionsByID); ve != nil {
		return nil, ve
	}

	reg.ConferenceID = session.ConferenceID
	if reg.PaymentStatus == "" {
		reg.PaymentStatus = domain.PaymentPending
	}
	reg.RegisteredAt = s.now()
	reg.UpdatedAt = reg.RegisteredAt

	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		return nil, fmt.Errorf("create registration: %w", err)
	}
	return reg, nil
}

func (s *registrationService) GetRegistration(ctx context.Context, id string) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.registrationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return reg, nil
}

func (s *registrationService) ListSessionRegistrations(ctx context.Context, sessionID string) ([]*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	regs, err := s.registrationRepo.ListActiveBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list session registrations: %w", err)
	}
	if regs == nil {
		regs = []*domain.Registration{}
	}
	return regs, nil
}

func (s *registrationService) DeleteRegistration(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.registrationRepo.SoftDelete(ctx, id, s.now()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete registration: %w", err)
	}
	return nil
}

func (s *registrationService) ProcessPayment(ctx context.Context, id string) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.registrationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	if reg.IsDeleted {
		return nil, domain.ErrNotFound
	}
	if reg.PaymentStatus == domain.PaymentPaid {
		return nil, domain.ErrAlreadyPaid
	}

	outcome := s.payment()
	if err := s.registrationRepo.UpdatePaymentStatus(ctx, reg.ID, outcome); err != nil {
		return nil, fmt.Errorf("update payment status: %w", err)
	}
	reg.PaymentStatus = outcome
	return reg, nil
}
