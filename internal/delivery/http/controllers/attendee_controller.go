package controllers

import (
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"conferencehub/internal/delivery/http/helpers"
	"conferencehub/internal/domain"
)

type AttendeeController struct {
	Logger          *slog.Logger
	Service         domain.AttendeeService
	Recommendations domain.RecommendationService
}

func NewAttendeeController(logger *slog.Logger, svc domain.AttendeeService, recs domain.RecommendationService) *AttendeeController {
	return &AttendeeController{
		Logger:          logger,
		Service:         svc,
		Recommendations: recs,
	}
}

// AttendeeRequest is the request body for creating or updating an attendee.
type AttendeeRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Organization string `json:"organization"`
}

// Validate implements helpers.Validator.
func (r *AttendeeRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		errs = append(errs, "email must be a valid address")
	}
	return errs
}

// PreferencesRequest is the request body for replacing an attendee's
// preferred-session set.
type PreferencesRequest struct {
	SessionIDs []string `json:"session_ids"`
}

// Validate implements helpers.Validator.
func (r *PreferencesRequest) Validate() []string {
	var errs []string
	for _, id := range r.SessionIDs {
		if !uuidRegex.MatchString(id) {
			errs = append(errs, "session_ids must contain only UUIDs")
			break
		}
	}
	return errs
}

// CreateAttendee godoc
// @Summary Create an attendee
// @Description Creates an attendee. The email is normalized to lower case and must be unique.
// @Tags attendees
// @Accept json
// @Produce json
// @Param body body controllers.AttendeeRequest true "Attendee fields"
// @Success 201 {object} helpers.APIResponse{data=domain.Attendee}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendees [post]
func (c *AttendeeController) CreateAttendee(w http.ResponseWriter, r *http.Request) {
	var req AttendeeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	attendee := domain.NewAttendee(req.Name, req.Email, req.Phone, req.Organization, time.Time{}, time.Time{})
	if err := c.Service.CreateAttendee(r.Context(), attendee); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, attendee)
}

// ListAttendees godoc
// @Summary List attendees
// @Tags attendees
// @Produce json
// @Success 200 {object} helpers.APIResponse{data=[]domain.Attendee}
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendees [get]
func (c *AttendeeController) ListAttendees(w http.ResponseWriter, r *http.Request) {
	attendees, err := c.Service.ListAttendees(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, attendees)
}

// GetAttendee godoc
// @Summary Get an attendee by ID
// @Tags attendees
// @Produce json
// @Param attendeeID path string true "Attendee ID (UUID)"
// @Success 200 {object} helpers.APIResponse{data=domain.Attendee}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendees/{attendeeID} [get]
func (c *AttendeeController) GetAttendee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "attendeeID")
	if !ok {
		return
	}
	attendee, err := c.Service.GetAttendee(r.Context(), id)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, attendee)
}

// UpdateAttendee godoc
// @Summary Update an attendee
// @Tags attendees
// @Accept json
// @Produce json
// @Param attendeeID path string true "Attendee ID (UUID)"
// @Param body body controllers.AttendeeRequest true "Attendee fields"
// @Success 200 {object} helpers.APIResponse{data=domain.Attendee}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendees/{attendeeID} [put]
func (c *AttendeeController) UpdateAttendee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "attendeeID")
	if !ok {
		return
	}
	var req AttendeeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	attendee := domain.NewAttendee(req.Name, req.Email, req.Phone, req.Organization, time.Time{}, time.Time{})
	attendee.ID = id
	updated, err := c.Service.UpdateAttendee(r.Context(), attendee)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, updated)
}

// DeleteAttendee godoc
// @Summary Soft-delete an attendee
// @Tags attendees
// @Produce json
// @Param attendeeID path string true "Attendee ID (UUID)"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendees/{attendeeID} [delete]
func (c *AttendeeController) DeleteAttendee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "attendeeID")
	if !ok {
		return
	}
	if err := c.Service.DeleteAttendee(r.Context(), id); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetPreferences godoc
// @Summary Replace an attendee's preferred-session set
// @Description Replaces the full set. Every session ID must reference an existing non-deleted session.
// @Tags attendees
// @Accept json
// @Produce json
// @Param attendeeID path string true "Attendee ID (UUID)"
// @Param body body controllers.PreferencesRequest true "Preferred session IDs"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendees/{attendeeID}/preferences [put]
func (c *AttendeeController) SetPreferences(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "attendeeID")
	if !ok {
		return
	}
	var req PreferencesRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.SetPreferences(r.Context(), id, req.SessionIDs); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetRecommendations godoc
// @Summary Get session recommendations for an attendee
// @Description Returns up to five sessions related to the attendee's preferred sessions, matched by speaker or name keyword. Pass email=true to also send the list to the attendee's address.
// @Tags attendees
// @Produce json
// @Param attendeeID path string true "Attendee ID (UUID)"
// @Param email query bool false "Email the recommendations to the attendee"
// @Success 200 {object} helpers.APIResponse{data=[]domain.Session}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendees/{attendeeID}/recommendations [get]
func (c *AttendeeController) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "attendeeID")
	if !ok {
		return
	}
	sessions, err := c.Recommendations.GetAttendeeRecommendations(r.Context(), id)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if r.URL.Query().Get("email") == "true" {
		if err := c.Recommendations.EmailRecommendations(r.Context(), id); err != nil {
			writeServiceError(c.Logger, w, r, err)
			return
		}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}
