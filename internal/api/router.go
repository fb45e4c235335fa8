package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/orgmaturity/assessment-api/docs"
	"github.com/orgmaturity/assessment-api/internal/api/handler"
	"github.com/orgmaturity/assessment-api/internal/api/middleware"
	"github.com/orgmaturity/assessment-api/internal/core/domain"
	"github.com/orgmaturity/assessment-api/internal/core/ports"
	"github.com/orgmaturity/assessment-api/internal/infrastructure/http/handlers"
)

const defaultPublicRateLimit = 20

// Services groups the application services the routes are bound to.
type Services struct {
	Auth                 ports.AuthService
	Users                ports.UserService
	Taxonomy             ports.TaxonomyService
	Consultants          ports.ConsultantService
	Assessments          ports.AssessmentService
	OrganizationRequests ports.OrganizationRequestService
	Analytics            ports.AnalyticsService
	Hours                ports.HoursService
	System               ports.SystemService
}

// RouterConfig carries everything NewRouter needs besides the services.
type RouterConfig struct {
	Log       zerolog.Logger
	Readiness *handlers.HealthDependenciesHandler
	// PublicRateLimit is requests per second per client IP on public writes.
	PublicRateLimit int
	// Registry receives the HTTP metrics; nil selects the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig, svc Services) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(cfg.Log))
	e.Use(echomiddleware.CORS())

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if cfg.Registry != nil {
		registerer, gatherer = cfg.Registry, cfg.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "maturity_http",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth, svc.Users)
	userHandler := handler.NewUserHandler(svc.Users)
	taxonomyHandler := handler.NewTaxonomyHandler(svc.Taxonomy)
	consultantHandler := handler.NewConsultantHandler(svc.Consultants)
	assessmentHandler := handler.NewAssessmentHandler(svc.Assessments)
	requestHandler := handler.NewOrganizationRequestHandler(svc.OrganizationRequests)
	analyticsHandler := handler.NewAnalyticsHandler(svc.Analytics)
	hoursHandler := handler.NewHoursHandler(svc.Hours)
	systemHandler := handler.NewSystemHandler(svc.System)

	auth := middleware.Auth(svc.Auth)
	adminWrite := middleware.RequireRole(domain.RoleSuperUser, domain.RoleAdmin)
	adminRead := middleware.RequireRole(domain.RoleSuperUser, domain.RoleAdmin, domain.RoleLeadConsultant)
	superUser := middleware.RequireRole(domain.RoleSuperUser)
	limited := publicRateLimiter(cfg.PublicRateLimit)

	// --- Operational endpoints ---
	healthHandler := handlers.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness) // liveness – is the process alive?
	if cfg.Readiness != nil {
		e.GET("/health/ready", cfg.Readiness.Readiness) // readiness – are dependencies up?
	}
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// --- Public routes ---
	api.POST("/auth/login", authHandler.Login, limited)
	api.GET("/domains", taxonomyHandler.ListDomains)
	api.POST("/assessment/validate-code", assessmentHandler.ValidateCode, limited)
	api.POST("/assessment/sessions", assessmentHandler.StartSession, limited)
	api.POST("/assessment/sessions/:id/responses", assessmentHandler.SubmitResponse, limited)
	api.POST("/assessment/sessions/:id/complete", assessmentHandler.CompleteSession, limited)
	api.POST("/organization-requests", requestHandler.Submit, limited)
	api.POST("/audit/visit", analyticsHandler.RecordVisit, limited)

	// --- Any authenticated role ---
	api.POST("/auth/logout", authHandler.Logout, auth)
	api.GET("/auth/session", authHandler.Session, auth)

	hours := api.Group("/hours", auth)
	hours.POST("/entries", hoursHandler.Create)
	hours.GET("/entries/today", hoursHandler.Today)
	hours.GET("/entries/recent", hoursHandler.Recent)
	hours.DELETE("/entries/:id", hoursHandler.Delete)
	hours.GET("/summary", hoursHandler.Summary)
	hours.GET("/export", hoursHandler.Export)

	admin := api.Group("/admin", auth)
	admin.GET("/profile", userHandler.Profile)
	admin.PUT("/profile", userHandler.UpdateProfile)
	admin.PUT("/profile/password", userHandler.ChangePassword)

	// --- Admin console reads ---
	admin.GET("/users", userHandler.List, adminRead)
	admin.GET("/lead-consultants", consultantHandler.List, adminRead)
	admin.GET("/codes", assessmentHandler.ListCodes, adminRead)
	admin.GET("/codes/:code/sessions", assessmentHandler.ListSessions, adminRead)
	admin.GET("/organization-requests", requestHandler.List, adminRead)
	admin.GET("/analytics", analyticsHandler.Summary, adminRead)

	// --- Admin console writes ---
	admin.POST("/users", userHandler.Create, adminWrite)
	admin.PUT("/users/:id/role", userHandler.ChangeRole, adminWrite)
	admin.DELETE("/users/:id", userHandler.Delete, adminWrite)

	admin.POST("/domains", taxonomyHandler.CreateDomain, adminWrite)
	admin.PUT("/domains/:id", taxonomyHandler.UpdateDomain, adminWrite)
	admin.DELETE("/domains/:id", taxonomyHandler.DeleteDomain, adminWrite)
	admin.POST("/subdomains", taxonomyHandler.CreateSubdomain, adminWrite)
	admin.PUT("/subdomains/:id", taxonomyHandler.UpdateSubdomain, adminWrite)
	admin.DELETE("/subdomains/:id", taxonomyHandler.DeleteSubdomain, adminWrite)

	admin.PUT("/lead-consultants/:username/subdomains", consultantHandler.Reassign, adminWrite)

	admin.POST("/codes", assessmentHandler.CreateCode, adminWrite)
	admin.PUT("/codes/:code/deactivate", assessmentHandler.DeactivateCode, adminWrite)
	admin.DELETE("/codes/:code", assessmentHandler.DeleteCode, adminWrite)

	admin.PUT("/organization-requests/:id/status", requestHandler.UpdateStatus, adminWrite)
	admin.DELETE("/organization-requests/:id", requestHandler.Delete, adminWrite)

	admin.POST("/system/init", systemHandler.Initialize, superUser)

	return e
}

// publicRateLimiter throttles unauthenticated writes per client IP.
func publicRateLimiter(perSecond int) echo.MiddlewareFunc {
	if perSecond <= 0 {
		perSecond = defaultPublicRateLimit
	}
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
			Rate:  rate.Limit(perSecond),
			Burst: perSecond * 2,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "unable to identify client")
		},
	})
}

// requestLogger feeds echo's request log into zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				evt = log.Error().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
