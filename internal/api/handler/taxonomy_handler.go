package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orgmaturity/assessment-api/internal/core/domain"
	"github.com/orgmaturity/assessment-api/internal/core/ports"
)

// TaxonomyHandler manages domains and subdomains.
type TaxonomyHandler struct {
	service ports.TaxonomyService
}

func NewTaxonomyHandler(service ports.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{service: service}
}

type domainRequest struct {
	NameEn       string `json:"name_en" validate:"required"`
	NameFr       string `json:"name_fr"`
	DisplayOrder int    `json:"display_order"`
}

type subdomainRequest struct {
	DomainID       uint   `json:"domain_id" validate:"required"`
	NameEn         string `json:"name_en" validate:"required"`
	NameFr         string `json:"name_fr"`
	DisplayOrder   int    `json:"display_order"`
	LeadConsultant string `json:"lead_consultant"`
}

type domainsResponse struct {
	envelope
	Domains []domain.Domain `json:"domains"`
}

type domainResponse struct {
	envelope
	Domain *domain.Domain `json:"domain"`
}

type subdomainResponse struct {
	envelope
	Subdomain *domain.Subdomain `json:"subdomain"`
}

func (r domainRequest) input() ports.DomainInput {
	return ports.DomainInput{NameEn: r.NameEn, NameFr: r.NameFr, DisplayOrder: r.DisplayOrder}
}

func (r subdomainRequest) input() ports.SubdomainInput {
	return ports.SubdomainInput{
		DomainID:       r.DomainID,
		NameEn:         r.NameEn,
		NameFr:         r.NameFr,
		DisplayOrder:   r.DisplayOrder,
		LeadConsultant: r.LeadConsultant,
	}
}

// ListDomains returns the taxonomy. Public.
//
// @Summary      List domains with subdomains
// @Tags         domains
// @Produce      json
// @Success      200  {object}  domainsResponse
// @Router       /api/domains [get]
func (h *TaxonomyHandler) ListDomains(c echo.Context) error {
	domains, err := h.service.ListDomains(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, domainsResponse{envelope: success, Domains: domains})
}

// CreateDomain adds a domain.
//
// @Summary      Create domain
// @Tags         domains
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domainRequest  true  "Domain"
// @Success      201   {object}  domainResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/admin/domains [post]
func (h *TaxonomyHandler) CreateDomain(c echo.Context) error {
	var req domainRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	d, err := h.service.CreateDomain(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, domainResponse{envelope: success, Domain: d})
}

// UpdateDomain replaces a domain's attributes.
//
// @Summary      Update domain
// @Tags         domains
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int            true  "Domain id"
// @Param        body  body      domainRequest  true  "Domain"
// @Success      200   {object}  domainResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/domains/{id} [put]
func (h *TaxonomyHandler) UpdateDomain(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req domainRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	d, err := h.service.UpdateDomain(c.Request().Context(), id, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, domainResponse{envelope: success, Domain: d})
}

// DeleteDomain removes a domain and its subdomains.
//
// @Summary      Delete domain
// @Tags         domains
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Domain id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/domains/{id} [delete]
func (h *TaxonomyHandler) DeleteDomain(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteDomain(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, done("domain deleted"))
}

// CreateSubdomain adds a subdomain under an existing domain.
//
// @Summary      Create subdomain
// @Tags         domains
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      subdomainRequest  true  "Subdomain"
// @Success      201   {object}  subdomainResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/subdomains [post]
func (h *TaxonomyHandler) CreateSubdomain(c echo.Context) error {
	var req subdomainRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	s, err := h.service.CreateSubdomain(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, subdomainResponse{envelope: success, Subdomain: s})
}

// UpdateSubdomain replaces a subdomain's attributes.
//
// @Summary      Update subdomain
// @Tags         domains
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int               true  "Subdomain id"
// @Param        body  body      subdomainRequest  true  "Subdomain"
// @Success      200   {object}  subdomainResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/subdomains/{id} [put]
func (h *TaxonomyHandler) UpdateSubdomain(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req subdomainRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	s, err := h.service.UpdateSubdomain(c.Request().Context(), id, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subdomainResponse{envelope: success, Subdomain: s})
}

// DeleteSubdomain removes a subdomain.
//
// @Summary      Delete subdomain
// @Tags         domains
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Subdomain id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/subdomains/{id} [delete]
func (h *TaxonomyHandler) DeleteSubdomain(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteSubdomain(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, done("subdomain deleted"))
}
