package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orgmaturity/assessment-api/internal/core/ports"
)

type SystemHandler struct {
	service ports.SystemService
}

func NewSystemHandler(service ports.SystemService) *SystemHandler {
	return &SystemHandler{service: service}
}

type initResponse struct {
	envelope
	Migrated      bool `json:"migrated"`
	SeededDomains int  `json:"seeded_domains"`
}

// Initialize migrates the schema and seeds the default taxonomy.
//
// @Summary      Initialize database
// @Tags         system
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  initResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/admin/system/init [post]
func (h *SystemHandler) Initialize(c echo.Context) error {
	res, err := h.service.Initialize(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, initResponse{envelope: success, Migrated: res.Migrated, SeededDomains: res.SeededDomains})
}
