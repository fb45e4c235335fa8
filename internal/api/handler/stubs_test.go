package handler

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/orgmaturity/assessment-api/internal/api/middleware"
	"github.com/orgmaturity/assessment-api/internal/core/domain"
	"github.com/orgmaturity/assessment-api/internal/core/ports"
)

var errNotStubbed = errors.New("not stubbed")

// newContext builds an echo context with the validator installed and, when
// session is non-nil, the session the Auth middleware would have set.
func newContext(method, target, body string, session *domain.Session) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if session != nil {
		c.Set(middleware.SessionKey, *session)
	}
	return c, rec
}

// httpStatus returns the status carried by an echo.HTTPError, or 0.
func httpStatus(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return 0
}

var alice = &domain.Session{UserID: 1, Username: "alice", Role: domain.RoleUser, TokenID: "jti-alice"}

// --- auth ---

type stubAuthService struct {
	loginFn  func(ctx context.Context, username, password string, meta ports.RequestMeta) (string, *domain.User, error)
	logoutFn func(ctx context.Context, session domain.Session, meta ports.RequestMeta) error
}

func (s *stubAuthService) Login(ctx context.Context, username, password string, meta ports.RequestMeta) (string, *domain.User, error) {
	if s.loginFn == nil {
		return "", nil, errNotStubbed
	}
	return s.loginFn(ctx, username, password, meta)
}

func (s *stubAuthService) Logout(ctx context.Context, session domain.Session, meta ports.RequestMeta) error {
	if s.logoutFn == nil {
		return errNotStubbed
	}
	return s.logoutFn(ctx, session, meta)
}

func (s *stubAuthService) ParseToken(context.Context, string) (*domain.Session, error) {
	return nil, errNotStubbed
}

// --- assessment ---

type stubAssessmentService struct {
	validateFn func(ctx context.Context, code string, meta ports.RequestMeta) (*domain.AssessmentCode, error)
	startFn    func(ctx context.Context, in ports.StartSessionInput) (*domain.AssessmentSession, error)
	submitFn   func(ctx context.Context, sessionID string, in ports.ResponseInput) (*domain.AssessmentResponse, error)
	createFn   func(ctx context.Context, in ports.CreateCodeInput) (*domain.AssessmentCode, error)
}

func (s *stubAssessmentService) CreateCode(ctx context.Context, in ports.CreateCodeInput) (*domain.AssessmentCode, error) {
	if s.createFn == nil {
		return nil, errNotStubbed
	}
	return s.createFn(ctx, in)
}

func (s *stubAssessmentService) ListCodes(context.Context) ([]domain.AssessmentCode, error) {
	return nil, errNotStubbed
}

func (s *stubAssessmentService) DeactivateCode(context.Context, string) error { return errNotStubbed }

func (s *stubAssessmentService) DeleteCode(context.Context, string) error { return errNotStubbed }

func (s *stubAssessmentService) ValidateCode(ctx context.Context, code string, meta ports.RequestMeta) (*domain.AssessmentCode, error) {
	if s.validateFn == nil {
		return nil, errNotStubbed
	}
	return s.validateFn(ctx, code, meta)
}

func (s *stubAssessmentService) StartSession(ctx context.Context, in ports.StartSessionInput) (*domain.AssessmentSession, error) {
	if s.startFn == nil {
		return nil, errNotStubbed
	}
	return s.startFn(ctx, in)
}

func (s *stubAssessmentService) SubmitResponse(ctx context.Context, sessionID string, in ports.ResponseInput) (*domain.AssessmentResponse, error) {
	if s.submitFn == nil {
		return nil, errNotStubbed
	}
	return s.submitFn(ctx, sessionID, in)
}

func (s *stubAssessmentService) CompleteSession(context.Context, string) (*domain.MaturityResult, error) {
	return nil, errNotStubbed
}

func (s *stubAssessmentService) ListSessions(context.Context, string) ([]domain.AssessmentSession, error) {
	return nil, errNotStubbed
}

// --- hours ---

type stubHoursService struct {
	logFn    func(ctx context.Context, session domain.Session, in ports.HoursEntryInput) (*domain.HistEntry, error)
	todayFn  func(ctx context.Context, session domain.Session) (*ports.DaySheet, error)
	exportFn  func(ctx context.Context, session domain.Session, consultant string, month, year int, w io.Writer) error
	summaryFn func(ctx context.Context, session domain.Session, days int) (*ports.HoursSummary, error)
}

func (s *stubHoursService) Log(ctx context.Context, session domain.Session, in ports.HoursEntryInput) (*domain.HistEntry, error) {
	if s.logFn == nil {
		return nil, errNotStubbed
	}
	return s.logFn(ctx, session, in)
}

func (s *stubHoursService) Today(ctx context.Context, session domain.Session) (*ports.DaySheet, error) {
	if s.todayFn == nil {
		return nil, errNotStubbed
	}
	return s.todayFn(ctx, session)
}

func (s *stubHoursService) Recent(context.Context, domain.Session, int) ([]domain.HistEntry, error) {
	return nil, errNotStubbed
}

func (s *stubHoursService) Delete(context.Context, domain.Session, int64) error { return errNotStubbed }

func (s *stubHoursService) Summary(ctx context.Context, session domain.Session, days int) (*ports.HoursSummary, error) {
	if s.summaryFn == nil {
		return nil, errNotStubbed
	}
	return s.summaryFn(ctx, session, days)
}

func (s *stubHoursService) Export(ctx context.Context, session domain.Session, consultant string, month, year int, w io.Writer) error {
	if s.exportFn == nil {
		return errNotStubbed
	}
	return s.exportFn(ctx, session, consultant, month, year, w)
}

// --- organization requests ---

type stubOrganizationRequestService struct {
	submitFn func(ctx context.Context, in ports.OrganizationRequestInput) (*domain.OrganizationRequest, error)
}

func (s *stubOrganizationRequestService) Submit(ctx context.Context, in ports.OrganizationRequestInput) (*domain.OrganizationRequest, error) {
	if s.submitFn == nil {
		return nil, errNotStubbed
	}
	return s.submitFn(ctx, in)
}

func (s *stubOrganizationRequestService) List(context.Context, string) ([]domain.OrganizationRequest, error) {
	return nil, errNotStubbed
}

func (s *stubOrganizationRequestService) UpdateStatus(context.Context, uint, string) error {
	return errNotStubbed
}

func (s *stubOrganizationRequestService) Delete(context.Context, uint) error { return errNotStubbed }

// --- lead consultants ---

type stubConsultantService struct {
	listFn     func(ctx context.Context) ([]domain.ConsultantWorkload, error)
	reassignFn func(ctx context.Context, username string, ids []uint) ([]domain.Subdomain, error)
}

func (s *stubConsultantService) ListWorkloads(ctx context.Context) ([]domain.ConsultantWorkload, error) {
	if s.listFn == nil {
		return nil, errNotStubbed
	}
	return s.listFn(ctx)
}

func (s *stubConsultantService) Reassign(ctx context.Context, username string, ids []uint) ([]domain.Subdomain, error) {
	if s.reassignFn == nil {
		return nil, errNotStubbed
	}
	return s.reassignFn(ctx, username, ids)
}

// --- users ---

type stubUserService struct {
	createFn func(ctx context.Context, actor domain.Session, in ports.CreateUserInput) (*domain.User, error)
}

func (s *stubUserService) Current(context.Context, domain.Session) (*domain.User, error) {
	return nil, errNotStubbed
}

func (s *stubUserService) UpdateProfile(context.Context, domain.Session, domain.ProfileUpdate) (*domain.User, error) {
	return nil, errNotStubbed
}

func (s *stubUserService) ChangePassword(context.Context, domain.Session, string, string) error {
	return errNotStubbed
}

func (s *stubUserService) List(context.Context, string) ([]domain.User, error) {
	return nil, errNotStubbed
}

func (s *stubUserService) Create(ctx context.Context, actor domain.Session, in ports.CreateUserInput) (*domain.User, error) {
	if s.createFn == nil {
		return nil, errNotStubbed
	}
	return s.createFn(ctx, actor, in)
}

func (s *stubUserService) ChangeRole(context.Context, domain.Session, uint, string) error {
	return errNotStubbed
}

func (s *stubUserService) Delete(context.Context, domain.Session, uint) error { return errNotStubbed }

// --- taxonomy ---

type stubTaxonomyService struct{}

func (stubTaxonomyService) ListDomains(context.Context) ([]domain.Domain, error) {
	return nil, errNotStubbed
}

func (stubTaxonomyService) CreateDomain(context.Context, ports.DomainInput) (*domain.Domain, error) {
	return nil, errNotStubbed
}

func (stubTaxonomyService) UpdateDomain(context.Context, uint, ports.DomainInput) (*domain.Domain, error) {
	return nil, errNotStubbed
}

func (stubTaxonomyService) DeleteDomain(context.Context, uint) error { return errNotStubbed }

func (stubTaxonomyService) CreateSubdomain(context.Context, ports.SubdomainInput) (*domain.Subdomain, error) {
	return nil, errNotStubbed
}

func (stubTaxonomyService) UpdateSubdomain(context.Context, uint, ports.SubdomainInput) (*domain.Subdomain, error) {
	return nil, errNotStubbed
}

func (stubTaxonomyService) DeleteSubdomain(context.Context, uint) error { return errNotStubbed }

// --- analytics ---

type stubAnalyticsService struct {
	visits []ports.RequestMeta
}

func (s *stubAnalyticsService) RecordVisit(_ context.Context, _ string, meta ports.RequestMeta) {
	s.visits = append(s.visits, meta)
}

func (s *stubAnalyticsService) Summary(context.Context, int) (*ports.Analytics, error) {
	return nil, errNotStubbed
}
