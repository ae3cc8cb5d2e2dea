package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"conferencehub/internal/delivery/http/helpers"
	"conferencehub/internal/domain"
)

const dateLayout = "2006-01-02"

type ConferenceController struct {
	Logger  *slog.Logger
	Service domain.ConferenceService
}

func NewConferenceController(logger *slog.Logger, svc domain.ConferenceService) *ConferenceController {
	return &ConferenceController{
		Logger:  logger,
		Service: svc,
	}
}

// ConferenceRequest is the request body for creating or updating a conference.
type ConferenceRequest struct {
	Name        string `json:"name"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Status      string `json:"status,omitempty"`

	startDate time.Time
	endDate   time.Time
}

// Validate implements helpers.Validator.
func (r *ConferenceRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	var err error
	if r.startDate, err = time.Parse(dateLayout, r.StartDate); err != nil {
		errs = append(errs, "start_date must be a date in YYYY-MM-DD format")
	}
	if r.endDate, err = time.Parse(dateLayout, r.EndDate); err != nil {
		errs = append(errs, "end_date must be a date in YYYY-MM-DD format")
	}
	switch domain.ConferenceStatus(r.Status) {
	case "", domain.StatusUpcoming, domain.StatusOngoing, domain.StatusCompleted, domain.StatusCancelled:
	default:
		errs = append(errs, "status must be one of Upcoming, Ongoing, Completed, Cancelled")
	}
	return errs
}

// CreateConference godoc
// @Summary Create a conference
// @Description Creates a conference. Rejects with bad_request when the end date precedes the start date.
// @Tags conferences
// @Accept json
// @Produce json
// @Param body body controllers.ConferenceRequest true "Conference fields"
// @Success 201 {object} helpers.APIResponse{data=domain.Conference}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences [post]
func (c *ConferenceController) CreateConference(w http.ResponseWriter, r *http.Request) {
	var req ConferenceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	conference := domain.NewConference(req.Name, req.Location, req.Description, req.startDate, req.endDate, time.Time{}, time.Time{})
	if req.Status != "" {
		conference.Status = domain.ConferenceStatus(req.Status)
	}
	if err := c.Service.CreateConference(r.Context(), conference); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, conference)
}

// ListConferences godoc
// @Summary List conferences
// @Tags conferences
// @Produce json
// @Success 200 {object} helpers.APIResponse{data=[]domain.Conference}
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences [get]
func (c *ConferenceController) ListConferences(w http.ResponseWriter, r *http.Request) {
	conferences, err := c.Service.ListConferences(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, conferences)
}

// ListUpcomingConferences godoc
// @Summary List conferences that have not started yet
// @Tags conferences
// @Produce json
// @Success 200 {object} helpers.APIResponse{data=[]domain.Conference}
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/upcoming [get]
func (c *ConferenceController) ListUpcomingConferences(w http.ResponseWriter, r *http.Request) {
	conferences, err := c.Service.ListUpcomingConferences(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, conferences)
}

// GetConference godoc
// @Summary Get a conference by ID
// @Description Returns the conference with its status re-derived from today's date.
// @Tags conferences
// @Produce json
// @Param conferenceID path string true "Conference ID (UUID)"
// @Success 200 {object} helpers.APIResponse{data=domain.Conference}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{conferenceID} [get]
func (c *ConferenceController) GetConference(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "conferenceID")
	if !ok {
		return
	}
	conference, err := c.Service.GetConference(r.Context(), id)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, conference)
}

// UpdateConference godoc
// @Summary Update a conference
// @Description Updates a conference. Setting status to Cancelled is terminal; the date-driven derivation never overwrites it.
// @Tags conferences
// @Accept json
// @Produce json
// @Param conferenceID path string true "Conference ID (UUID)"
// @Param body body controllers.ConferenceRequest true "Conference fields"
// @Success 200 {object} helpers.APIResponse{data=domain.Conference}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{conferenceID} [put]
func (c *ConferenceController) UpdateConference(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "conferenceID")
	if !ok {
		return
	}
	var req ConferenceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	conference := domain.NewConference(req.Name, req.Location, req.Description, req.startDate, req.endDate, time.Time{}, time.Time{})
	conference.ID = id
	conference.Status = domain.ConferenceStatus(req.Status)
	updated, err := c.Service.UpdateConference(r.Context(), conference)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, updated)
}

// DeleteConference godoc
// @Summary Soft-delete a conference
// @Tags conferences
// @Produce json
// @Param conferenceID path string true "Conference ID (UUID)"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{conferenceID} [delete]
func (c *ConferenceController) DeleteConference(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "conferenceID")
	if !ok {
		return
	}
	if err := c.Service.DeleteConference(r.Context(), id); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
