package services

import (
	"time"

	"conferencehub/internal/domain"
)

// The functions in this file are the validation engine: pure decisions over a
// snapshot of rows taken at decision time. They never touch the store. The
// caller is responsible for serializing conflicting writes to the same
// session or attendee so the count-then-compare capacity check cannot race
// past the limit.

// dateOnly truncates a timestamp to its calendar date in UTC.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ValidateConferenceDates rejects a conference whose end date precedes its
// start date. Conferences may coexist freely; there is no cross-conference
// overlap rule.
func ValidateConferenceDates(startDate, endDate time.Time) *domain.ValidationError {
	if dateOnly(startDate).After(dateOnly(endDate)) {
		return domain.NewValidationError(domain.KindInvalidInterval, "end date must not be before start date")
	}
	return nil
}

// ValidateSessionWrite decides whether a session create or update is
// acceptable. siblings is the snapshot of sessions in the candidate's
// conference; the candidate is excluded by identity so an update never
// collides with its own prior values.
func ValidateSessionWrite(candidate *domain.Session, siblings []*domain.Session) *domain.ValidationError {
	if !candidate.StartTime.Before(candidate.EndTime) {
		return domain.NewValidationError(domain.KindInvalidInterval, "end time must be after start time")
	}
	for _, other := range siblings {
		if other.ID == candidate.ID || other.IsDeleted || other.ConferenceID != candidate.ConferenceID {
			continue
		}
		if candidate.Overlaps(other) {
			return domain.NewValidationError(domain.KindOverlap,
				"session overlaps %q (%s to %s)", other.Name,
				other.StartTime.Format(time.RFC3339), other.EndTime.Format(time.RFC3339))
		}
	}
	return nil
}

// ValidateRegistrationWrite decides whether a registration write is
// acceptable. isNew gates the capacity check: capacity is enforced on
// creation only. sessionRegs is the snapshot of registrations for the target
// session, attendeeRegs the snapshot for the attendee, and sessionsByID must
// cover the sessions referenced by attendeeRegs. The candidate is excluded
// from every check by identity.
func ValidateRegistrationWrite(
	candidate *domain.Registration,
	isNew bool,
	session *domain.Session,
	sessionRegs []*domain.Registration,
	attendeeRegs []*domain.Registration,
	sessionsByID map[string]*domain.Session,
) *domain.ValidationError {
	if isNew {
		// Pending registrations count as provisional holds; only Failed is
		// excluded from capacity.
		count := 0
		for _, reg := range sessionRegs {
			if reg.ID == candidate.ID || reg.IsDeleted || reg.PaymentStatus == domain.PaymentFailed {
				continue
			}
			count++
		}
		if count >= session.MaxAttendees {
			return domain.NewValidationError(domain.KindSessionFull, "session %q is full", session.Name)
		}
	}

	for _, reg := range attendeeRegs {
		if reg.ID == candidate.ID || reg.IsDeleted || reg.PaymentStatus == domain.PaymentFailed {
			continue
		}
		other, ok := sessionsByID[reg.SessionID]
		if !ok || other.IsDeleted {
			continue
		}
		if session.Overlaps(other) {
			return domain.NewValidationError(domain.KindAttendeeOverlap,
				"attendee is already registered for overlapping session %q", other.Name)
		}
	}

	// Uniqueness on (session, attendee) holds regardless of payment status,
	// so a Failed registration for the same session still blocks here even
	// though the overlap check above skipped it.
	for _, reg := range attendeeRegs {
		if reg.ID == candidate.ID || reg.IsDeleted {
			continue
		}
		if reg.SessionID == candidate.SessionID {
			return domain.NewValidationError(domain.KindDuplicateRegistration,
				"attendee is already registered for session %q", session.Name)
		}
	}
	return nil
}

// DeriveStatus derives a conference's display status from its dates.
// Cancelled is terminal and returned unchanged. The function is idempotent
// for a fixed today.
func DeriveStatus(current domain.ConferenceStatus, startDate, endDate, today time.Time) domain.ConferenceStatus {
	if current == domain.StatusCancelled {
		return domain.StatusCancelled
	}
	d := dateOnly(today)
	switch {
	case d.Before(dateOnly(startDate)):
		return domain.StatusUpcoming
	case d.After(dateOnly(endDate)):
		return domain.StatusCompleted
	default:
		return domain.StatusOngoing
	}
}
