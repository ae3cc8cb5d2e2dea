package controllers

import (
	"log/slog"
	"net/http"

	"conferencehub/internal/delivery/http/helpers"
	"conferencehub/internal/domain"
)

type ReportController struct {
	Logger  *slog.Logger
	Reports domain.ReportService
	Search  domain.SearchService
}

func NewReportController(logger *slog.Logger, reports domain.ReportService, search domain.SearchService) *ReportController {
	return &ReportController{
		Logger:  logger,
		Reports: reports,
		Search:  search,
	}
}

// ConferenceReports godoc
// @Summary Per-conference summary report
// @Description For each non-deleted conference: session count and unique attendee count across its sessions.
// @Tags reports
// @Produce json
// @Success 200 {object} helpers.APIResponse{data=[]domain.ConferenceReport}
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /reports/conferences [get]
func (c *ReportController) ConferenceReports(w http.ResponseWriter, r *http.Request) {
	reports, err := c.Reports.ConferenceReports(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reports)
}

// SessionReports godoc
// @Summary Per-session summary report
// @Description For each non-deleted session: registration count, remaining capacity, and revenue from paid registrations.
// @Tags reports
// @Produce json
// @Success 200 {object} helpers.APIResponse{data=[]domain.SessionReport}
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /reports/sessions [get]
func (c *ReportController) SessionReports(w http.ResponseWriter, r *http.Request) {
	reports, err := c.Reports.SessionReports(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reports)
}

// SearchAll godoc
// @Summary Search conferences and sessions
// @Description Case-insensitive substring search. Conferences match on name or description, sessions on name or speaker. An empty query returns empty lists.
// @Tags search
// @Produce json
// @Param q query string false "Search query"
// @Success 200 {object} helpers.APIResponse{data=domain.SearchResult}
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /search [get]
func (c *ReportController) SearchAll(w http.ResponseWriter, r *http.Request) {
	result, err := c.Search.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}
