package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/orgmaturity/assessment-api/internal/api/middleware"
	"github.com/orgmaturity/assessment-api/internal/core/domain"
	"github.com/orgmaturity/assessment-api/internal/core/ports"
)

type AnalyticsHandler struct {
	service ports.AnalyticsService
}

func NewAnalyticsHandler(service ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

type visitRequest struct {
	Path string `json:"path" validate:"required"`
}

type analyticsResponse struct {
	envelope
	Since           time.Time      `json:"since"`
	EventCounts     []domain.Count `json:"event_counts"`
	DailyVisits     []domain.Count `json:"daily_visits"`
	TopPaths        []domain.Count `json:"top_paths"`
	CodeValidations []domain.Count `json:"code_validations"`
}

// RecordVisit logs a page view. Public.
//
// @Summary      Record page visit
// @Tags         audit
// @Accept       json
// @Produce      json
// @Param        body  body      visitRequest  true  "Visited path"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/audit/visit [post]
func (h *AnalyticsHandler) RecordVisit(c echo.Context) error {
	var req visitRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	meta := requestMeta(c)
	meta.Path = req.Path
	actor := ""
	if session, ok := middleware.SessionFrom(c); ok {
		actor = session.Username
	}

	h.service.RecordVisit(c.Request().Context(), actor, meta)
	return c.JSON(http.StatusCreated, done("visit recorded"))
}

// Summary aggregates the audit log over the last days.
//
// @Summary      Analytics summary
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        days  query     int  false  "Window in days (default 30, max 365)"
// @Success      200   {object}  analyticsResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/admin/analytics [get]
func (h *AnalyticsHandler) Summary(c echo.Context) error {
	days, err := intQuery(c, "days")
	if err != nil {
		return err
	}
	a, err := h.service.Summary(c.Request().Context(), days)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, analyticsResponse{
		envelope:        success,
		Since:           a.Since,
		EventCounts:     a.EventCounts,
		DailyVisits:     a.DailyVisits,
		TopPaths:        a.TopPaths,
		CodeValidations: a.CodeValidations,
	})
}
