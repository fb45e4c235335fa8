package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orgmaturity/assessment-api/internal/core/domain"
	"github.com/orgmaturity/assessment-api/internal/core/ports"
)

type ConsultantHandler struct {
	service ports.ConsultantService
}

func NewConsultantHandler(service ports.ConsultantService) *ConsultantHandler {
	return &ConsultantHandler{service: service}
}

type reassignRequest struct {
	SubdomainIDs []uint `json:"subdomain_ids" validate:"required"`
}

type subdomainRef struct {
	ID     uint   `json:"id"`
	NameEn string `json:"name_en"`
	NameFr string `json:"name_fr"`
}

type consultantView struct {
	ID             uint           `json:"id"`
	Username       string         `json:"username"`
	FullName       string         `json:"full_name,omitempty"`
	Email          string         `json:"email,omitempty"`
	SubdomainCount int            `json:"subdomain_count"`
	Subdomains     []subdomainRef `json:"subdomains"`
}

type consultantsResponse struct {
	envelope
	Consultants []consultantView `json:"consultants"`
}

type reassignResponse struct {
	envelope
	Username   string         `json:"username"`
	Subdomains []subdomainRef `json:"subdomains"`
}

func toSubdomainRefs(subs []domain.Subdomain) []subdomainRef {
	refs := make([]subdomainRef, len(subs))
	for i, s := range subs {
		refs[i] = subdomainRef{ID: s.ID, NameEn: s.NameEn, NameFr: s.NameFr}
	}
	return refs
}

// List returns lead consultants with the subdomains each one leads.
//
// @Summary      List lead consultants
// @Tags         lead-consultants
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  consultantsResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/admin/lead-consultants [get]
func (h *ConsultantHandler) List(c echo.Context) error {
	workloads, err := h.service.ListWorkloads(c.Request().Context())
	if err != nil {
		return err
	}

	views := make([]consultantView, len(workloads))
	for i, w := range workloads {
		views[i] = consultantView{
			ID:             w.User.ID,
			Username:       w.User.Username,
			FullName:       w.User.FullName,
			Email:          w.User.Email,
			SubdomainCount: len(w.Subdomains),
			Subdomains:     toSubdomainRefs(w.Subdomains),
		}
	}
	return c.JSON(http.StatusOK, consultantsResponse{envelope: success, Consultants: views})
}

// Reassign replaces the set of subdomains a consultant leads.
//
// @Summary      Reassign a lead consultant's subdomains
// @Tags         lead-consultants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string           true  "Consultant username"
// @Param        body      body      reassignRequest  true  "Subdomain ids"
// @Success      200       {object}  reassignResponse
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /api/admin/lead-consultants/{username}/subdomains [put]
func (h *ConsultantHandler) Reassign(c echo.Context) error {
	username := c.Param("username")
	var req reassignRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	subs, err := h.service.Reassign(c.Request().Context(), username, req.SubdomainIDs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reassignResponse{envelope: success, Username: username, Subdomains: toSubdomainRefs(subs)})
}
