package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orgmaturity/assessment-api/internal/core/domain"
	"github.com/orgmaturity/assessment-api/internal/core/ports"
)

// AssessmentHandler serves assessment codes, sessions and responses.
type AssessmentHandler struct {
	service ports.AssessmentService
}

func NewAssessmentHandler(service ports.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{service: service}
}

type createCodeRequest struct {
	Code          string   `json:"code"`
	Organization  string   `json:"organization" validate:"required"`
	Questions     []string `json:"questions"`
	MaxUses       int      `json:"max_uses" validate:"min=0"`
	ExpiresInDays int      `json:"expires_in_days" validate:"min=0"`
}

// validateCodeRequest is checked by the service so a missing code is still audited.
type validateCodeRequest struct {
	Code string `json:"code"`
}

type startSessionRequest struct {
	Code            string `json:"code" validate:"required"`
	RespondentName  string `json:"respondent_name"`
	RespondentEmail string `json:"respondent_email" validate:"omitempty,email"`
}

type responseRequest struct {
	QuestionID  string `json:"question_id" validate:"required"`
	SubdomainID uint   `json:"subdomain_id" validate:"required"`
	Score       int    `json:"score" validate:"required,min=1,max=5"`
	Comment     string `json:"comment"`
}

type codeResponse struct {
	envelope
	Code *domain.AssessmentCode `json:"code"`
}

type codesResponse struct {
	envelope
	Codes []domain.AssessmentCode `json:"codes"`
}

type validCodeResponse struct {
	envelope
	Valid        bool     `json:"valid"`
	Code         string   `json:"code"`
	Organization string   `json:"organization"`
	Questions    []string `json:"questions"`
}

type sessionResponse struct {
	envelope
	Session *domain.AssessmentSession `json:"session"`
}

type sessionsResponse struct {
	envelope
	Sessions []domain.AssessmentSession `json:"sessions"`
}

type answerResponse struct {
	envelope
	Response *domain.AssessmentResponse `json:"response"`
}

type resultResponse struct {
	envelope
	Result *domain.MaturityResult `json:"result"`
}

// ListCodes returns all assessment codes, newest first.
//
// @Summary      List assessment codes
// @Tags         codes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  codesResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/admin/codes [get]
func (h *AssessmentHandler) ListCodes(c echo.Context) error {
	codes, err := h.service.ListCodes(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, codesResponse{envelope: success, Codes: codes})
}

// CreateCode issues an assessment code; one is generated when omitted.
//
// @Summary      Create assessment code
// @Tags         codes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCodeRequest  true  "Code"
// @Success      201   {object}  codeResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/admin/codes [post]
func (h *AssessmentHandler) CreateCode(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req createCodeRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	code, err := h.service.CreateCode(c.Request().Context(), ports.CreateCodeInput{
		Code:          req.Code,
		Organization:  req.Organization,
		Questions:     req.Questions,
		MaxUses:       req.MaxUses,
		ExpiresInDays: req.ExpiresInDays,
		CreatedBy:     session.Username,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, codeResponse{envelope: success, Code: code})
}

// DeactivateCode stops a code from starting new sessions.
//
// @Summary      Deactivate assessment code
// @Tags         codes
// @Produce      json
// @Security     BearerAuth
// @Param        code  path      string  true  "Code"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/codes/{code}/deactivate [put]
func (h *AssessmentHandler) DeactivateCode(c echo.Context) error {
	if err := h.service.DeactivateCode(c.Request().Context(), c.Param("code")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, done("code deactivated"))
}

// DeleteCode removes a code with its sessions and responses.
//
// @Summary      Delete assessment code
// @Tags         codes
// @Produce      json
// @Security     BearerAuth
// @Param        code  path      string  true  "Code"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/codes/{code} [delete]
func (h *AssessmentHandler) DeleteCode(c echo.Context) error {
	if err := h.service.DeleteCode(c.Request().Context(), c.Param("code")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, done("code deleted"))
}

// ListSessions returns the sessions opened with a code.
//
// @Summary      List sessions of a code
// @Tags         codes
// @Produce      json
// @Security     BearerAuth
// @Param        code  path      string  true  "Code"
// @Success      200   {object}  sessionsResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/admin/codes/{code}/sessions [get]
func (h *AssessmentHandler) ListSessions(c echo.Context) error {
	sessions, err := h.service.ListSessions(c.Request().Context(), c.Param("code"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionsResponse{envelope: success, Sessions: sessions})
}

// ValidateCode checks a code. Public; every attempt is audited.
//
// @Summary      Validate assessment code
// @Tags         assessment
// @Accept       json
// @Produce      json
// @Param        body  body      validateCodeRequest  true  "Code"
// @Success      200   {object}  validCodeResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/assessment/validate-code [post]
func (h *AssessmentHandler) ValidateCode(c echo.Context) error {
	var req validateCodeRequest
	if err := c.Bind(&req); err != nil {
		// Still counts as an attempt.
		req = validateCodeRequest{}
	}

	code, err := h.service.ValidateCode(c.Request().Context(), req.Code, requestMeta(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, validCodeResponse{
		envelope:     success,
		Valid:        true,
		Code:         code.Code,
		Organization: code.Organization,
		Questions:    code.Questions,
	})
}

// StartSession opens an assessment session against a code.
//
// @Summary      Start assessment session
// @Tags         assessment
// @Accept       json
// @Produce      json
// @Param        body  body      startSessionRequest  true  "Session"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/assessment/sessions [post]
func (h *AssessmentHandler) StartSession(c echo.Context) error {
	var req startSessionRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	session, err := h.service.StartSession(c.Request().Context(), ports.StartSessionInput{
		Code:            req.Code,
		RespondentName:  req.RespondentName,
		RespondentEmail: req.RespondentEmail,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sessionResponse{envelope: success, Session: session})
}

// SubmitResponse records a scored answer.
//
// @Summary      Submit a response
// @Tags         assessment
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "Session id"
// @Param        body  body      responseRequest  true  "Response"
// @Success      201   {object}  answerResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/assessment/sessions/{id}/responses [post]
func (h *AssessmentHandler) SubmitResponse(c echo.Context) error {
	var req responseRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	resp, err := h.service.SubmitResponse(c.Request().Context(), c.Param("id"), ports.ResponseInput{
		QuestionID:  req.QuestionID,
		SubdomainID: req.SubdomainID,
		Score:       req.Score,
		Comment:     req.Comment,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, answerResponse{envelope: success, Response: resp})
}

// CompleteSession closes a session and returns its maturity scores.
//
// @Summary      Complete assessment session
// @Tags         assessment
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  resultResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/assessment/sessions/{id}/complete [post]
func (h *AssessmentHandler) CompleteSession(c echo.Context) error {
	result, err := h.service.CompleteSession(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resultResponse{envelope: success, Result: result})
}
