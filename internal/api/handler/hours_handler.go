package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/orgmaturity/assessment-api/internal/core/domain"
	"github.com/orgmaturity/assessment-api/internal/core/ports"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HoursHandler serves the client hours (Hist Data) module.
type HoursHandler struct {
	service ports.HoursService
}

func NewHoursHandler(service ports.HoursService) *HoursHandler {
	return &HoursHandler{service: service}
}

type hoursEntryRequest struct {
	Client    string  `json:"client" validate:"required"`
	Domain    string  `json:"domain"`
	Subdomain string  `json:"subdomain"`
	Hours     float64 `json:"hours" validate:"required,gt=0,lte=24"`
	Notes     string  `json:"notes"`
	Day       int     `json:"day" validate:"min=0,max=31"`
	Month     int     `json:"month" validate:"min=0,max=12"`
	Year      int     `json:"year" validate:"min=0"`
}

type entryResponse struct {
	envelope
	Entry *domain.HistEntry `json:"entry"`
}

type entriesResponse struct {
	envelope
	Entries []domain.HistEntry `json:"entries"`
}

type daySheetResponse struct {
	envelope
	Date    string             `json:"date"`
	Entries []domain.HistEntry `json:"entries"`
	Total   float64            `json:"total"`
}

type clientHoursResponse struct {
	envelope
	Days    int                  `json:"days"`
	Since   string               `json:"since"`
	Clients []domain.ClientHours `json:"clients"`
}

// Create logs hours for the caller.
//
// @Summary      Log hours
// @Tags         hours
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      hoursEntryRequest  true  "Entry; date parts default to today"
// @Success      201   {object}  entryResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/hours/entries [post]
func (h *HoursHandler) Create(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req hoursEntryRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	entry, err := h.service.Log(c.Request().Context(), session, ports.HoursEntryInput{
		Client:    req.Client,
		Domain:    req.Domain,
		Subdomain: req.Subdomain,
		Hours:     req.Hours,
		Notes:     req.Notes,
		Day:       req.Day,
		Month:     req.Month,
		Year:      req.Year,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entryResponse{envelope: success, Entry: entry})
}

// Today returns the caller's entries for the current server date.
//
// @Summary      Today's hours
// @Tags         hours
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  daySheetResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/hours/entries/today [get]
func (h *HoursHandler) Today(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	sheet, err := h.service.Today(c.Request().Context(), session)
	if err != nil {
		return err
	}
	entries := sheet.Entries
	if entries == nil {
		entries = []domain.HistEntry{}
	}
	return c.JSON(http.StatusOK, daySheetResponse{
		envelope: success,
		Date:     sheet.Date.Format(time.DateOnly),
		Entries:  entries,
		Total:    sheet.Total,
	})
}

// Recent returns the caller's latest entries.
//
// @Summary      Recent hours
// @Tags         hours
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Max entries (default 20, max 100)"
// @Success      200    {object}  entriesResponse
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Router       /api/hours/entries/recent [get]
func (h *HoursHandler) Recent(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	limit, err := intQuery(c, "limit")
	if err != nil {
		return err
	}
	entries, err := h.service.Recent(c.Request().Context(), session, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entriesResponse{envelope: success, Entries: entries})
}

// Delete removes one of the caller's entries.
//
// @Summary      Delete hours entry
// @Tags         hours
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Entry id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/hours/entries/{id} [delete]
func (h *HoursHandler) Delete(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}
	if err := h.service.Delete(c.Request().Context(), session, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, done("entry deleted"))
}

// Summary totals the caller's hours per client.
//
// @Summary      Hours by client
// @Tags         hours
// @Produce      json
// @Security     BearerAuth
// @Param        days  query     int  false  "Window in days (default 30)"
// @Success      200   {object}  clientHoursResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/hours/summary [get]
func (h *HoursHandler) Summary(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	days, err := intQuery(c, "days")
	if err != nil {
		return err
	}
	summary, err := h.service.Summary(c.Request().Context(), session, days)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clientHoursResponse{
		envelope: success,
		Days:     summary.Days,
		Since:    summary.Since.Format(time.DateOnly),
		Clients:  summary.Clients,
	})
}

// Export downloads a month of hours as an XLSX workbook.
//
// @Summary      Export hours
// @Tags         hours
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        year        query     int     false  "Year (default current)"
// @Param        month       query     int     false  "Month (default current)"
// @Param        consultant  query     string  false  "Consultant username (admins only)"
// @Success      200         {file}    file
// @Failure      400         {object}  errorResponse
// @Failure      401         {object}  errorResponse
// @Router       /api/hours/export [get]
func (h *HoursHandler) Export(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	year, err := intQuery(c, "year")
	if err != nil {
		return err
	}
	month, err := intQuery(c, "month")
	if err != nil {
		return err
	}
	consultant := c.QueryParam("consultant")
	if consultant == "" {
		consultant = session.Username
	}

	var buf bytes.Buffer
	if err := h.service.Export(c.Request().Context(), session, consultant, month, year, &buf); err != nil {
		return err
	}

	name := fmt.Sprintf("hours-%s.xlsx", consultant)
	if year != 0 && month != 0 {
		name = fmt.Sprintf("hours-%s-%04d-%02d.xlsx", consultant, year, month)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}
