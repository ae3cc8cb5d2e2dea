package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"conferencehub/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	conferenceController *controllers.ConferenceController,
	sessionController *controllers.SessionController,
	attendeeController *controllers.AttendeeController,
	registrationController *controllers.RegistrationController,
	reportController *controllers.ReportController,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Conferences
	mux.HandleFunc("POST /conferences", conferenceController.CreateConference)
	mux.HandleFunc("GET /conferences", conferenceController.ListConferences)
	mux.HandleFunc("GET /conferences/upcoming", conferenceController.ListUpcomingConferences)
	mux.HandleFunc("GET /conferences/{conferenceID}", conferenceController.GetConference)
	mux.HandleFunc("PUT /conferences/{conferenceID}", conferenceController.UpdateConference)
	mux.HandleFunc("DELETE /conferences/{conferenceID}", conferenceController.DeleteConference)

	// Sessions
	mux.HandleFunc("POST /conferences/{conferenceID}/sessions", sessionController.CreateSession)
	mux.HandleFunc("GET /conferences/{conferenceID}/sessions", sessionController.ListConferenceSessions)
	mux.HandleFunc("GET /sessions/{sessionID}", sessionController.GetSession)
	mux.HandleFunc("PUT /sessions/{sessionID}", sessionController.UpdateSession)
	mux.HandleFunc("DELETE /sessions/{sessionID}", sessionController.DeleteSession)

	// Attendees
	mux.HandleFunc("POST /attendees", attendeeController.CreateAttendee)
	mux.HandleFunc("GET /attendees", attendeeController.ListAttendees)
	mux.HandleFunc("GET /attendees/{attendeeID}", attendeeController.GetAttendee)
	mux.HandleFunc("PUT /attendees/{attendeeID}", attendeeController.UpdateAttendee)
	mux.HandleFunc("DELETE /attendees/{attendeeID}", attendeeController.DeleteAttendee)
	mux.HandleFunc("PUT /attendees/{attendeeID}/preferences", attendeeController.SetPreferences)
	mux.HandleFunc("GET /attendees/{attendeeID}/recommendations", attendeeController.GetRecommendations)

	// Registrations and payments
	mux.HandleFunc("POST /registrations", registrationController.CreateRegistration)
	mux.HandleFunc("GET /registrations/{registrationID}", registrationController.GetRegistration)
	mux.HandleFunc("DELETE /registrations/{registrationID}", registrationController.DeleteRegistration)
	mux.HandleFunc("GET /sessions/{sessionID}/registrations", registrationController.ListSessionRegistrations)
	mux.HandleFunc("POST /payments/process", registrationController.ProcessPayment)

	// Reports and search
	mux.HandleFunc("GET /reports/conferences", reportController.ConferenceReports)
	mux.HandleFunc("GET /reports/sessions", reportController.SessionReports)
	mux.HandleFunc("GET /search", reportController.SearchAll)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
