package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orgmaturity/assessment-api/internal/core/domain"
	"github.com/orgmaturity/assessment-api/internal/core/ports"
)

type OrganizationRequestHandler struct {
	service ports.OrganizationRequestService
}

func NewOrganizationRequestHandler(service ports.OrganizationRequestService) *OrganizationRequestHandler {
	return &OrganizationRequestHandler{service: service}
}

type organizationRequestRequest struct {
	OrganizationName string `json:"organization_name" validate:"required"`
	ContactName      string `json:"contact_name" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone"`
	RequestType      string `json:"request_type" validate:"required,oneof=demo assessment consultation other"`
	Message          string `json:"message"`
}

type requestStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new contacted closed"`
}

type organizationRequestResponse struct {
	envelope
	Request *domain.OrganizationRequest `json:"request"`
}

type organizationRequestsResponse struct {
	envelope
	Requests []domain.OrganizationRequest `json:"requests"`
}

// Submit captures a lead. Public; identical submissions are stored separately.
//
// @Summary      Submit organization request
// @Tags         organization-requests
// @Accept       json
// @Produce      json
// @Param        body  body      organizationRequestRequest  true  "Request"
// @Success      201   {object}  organizationRequestResponse
// @Failure      400   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/organization-requests [post]
func (h *OrganizationRequestHandler) Submit(c echo.Context) error {
	var req organizationRequestRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	created, err := h.service.Submit(c.Request().Context(), ports.OrganizationRequestInput{
		OrganizationName: req.OrganizationName,
		ContactName:      req.ContactName,
		Email:            req.Email,
		Phone:            req.Phone,
		RequestType:      req.RequestType,
		Message:          req.Message,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, organizationRequestResponse{envelope: success, Request: created})
}

// List returns captured leads, optionally filtered by status.
//
// @Summary      List organization requests
// @Tags         organization-requests
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "new, contacted or closed"
// @Success      200     {object}  organizationRequestsResponse
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Router       /api/admin/organization-requests [get]
func (h *OrganizationRequestHandler) List(c echo.Context) error {
	requests, err := h.service.List(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, organizationRequestsResponse{envelope: success, Requests: requests})
}

// UpdateStatus moves a lead through its workflow.
//
// @Summary      Update organization request status
// @Tags         organization-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Request id"
// @Param        body  body      requestStatusRequest  true  "Status"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/organization-requests/{id}/status [put]
func (h *OrganizationRequestHandler) UpdateStatus(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req requestStatusRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if err := h.service.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, done("status updated"))
}

// Delete removes a lead.
//
// @Summary      Delete organization request
// @Tags         organization-requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Request id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/organization-requests/{id} [delete]
func (h *OrganizationRequestHandler) Delete(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, done("request deleted"))
}
