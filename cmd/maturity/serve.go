package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/orgmaturity/assessment-api/internal/api"
	"github.com/orgmaturity/assessment-api/internal/core/ports"
	"github.com/orgmaturity/assessment-api/internal/core/service"
	"github.com/orgmaturity/assessment-api/internal/infrastructure/db/mongo"
	"github.com/orgmaturity/assessment-api/internal/infrastructure/db/redis"
	"github.com/orgmaturity/assessment-api/internal/infrastructure/db/sqldb"
	"github.com/orgmaturity/assessment-api/internal/infrastructure/http/handlers"
	"github.com/orgmaturity/assessment-api/internal/infrastructure/queue"
	"github.com/orgmaturity/assessment-api/internal/pkg/config"
	"github.com/orgmaturity/assessment-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

// stores holds the open connections so they can be closed on shutdown.
type stores struct {
	sql         *gorm.DB
	redis       *goredis.Client
	mongoClient *mongodriver.Client
	mongoDB     *mongodriver.Database
}

func openSQL(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	return sqldb.Open(ctx, sqldb.Config{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.DSN,
		Debug:  cfg.Database.Debug,
	})
}

func (a *app) openStores(ctx context.Context) (*stores, error) {
	db, err := openSQL(ctx, a.cfg)
	if err != nil {
		return nil, err
	}
	s := &stores{sql: db}

	s.redis, err = redis.Connect(ctx, redis.Config{
		Addr:     a.cfg.Redis.Addr,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	})
	if err != nil {
		s.close(ctx)
		return nil, err
	}

	if a.cfg.AuditBackend == config.AuditBackendMongo {
		s.mongoClient, s.mongoDB, err = mongo.Connect(ctx, mongo.Config{
			URI:      a.cfg.Mongo.URI,
			Database: a.cfg.Mongo.Database,
		})
		if err != nil {
			s.close(ctx)
			return nil, err
		}
		if err := mongo.EnsureIndexes(ctx, s.mongoDB); err != nil {
			s.close(ctx)
			return nil, err
		}
	}
	return s, nil
}

func (s *stores) close(ctx context.Context) {
	log := logger.Component("stores")
	if s.mongoClient != nil {
		if err := s.mongoClient.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}
	if s.sql != nil {
		if err := sqldb.Close(s.sql); err != nil {
			log.Error().Err(err).Msg("database close failed")
		}
	}
}

func (a *app) auditRepository(s *stores) ports.AuditRepository {
	if s.mongoDB != nil {
		return mongo.NewAuditRepository(s.mongoDB)
	}
	return sqldb.NewAuditRepository(s.sql)
}

func (a *app) serve(ctx context.Context) error {
	log := a.log

	st, err := a.openStores(ctx)
	if err != nil {
		return err
	}

	auditRepo := a.auditRepository(st)
	dispatcher := queue.NewDispatcher(a.cfg.AuditWorkers, auditRepo, logger.Component("audit"))
	dispatcher.Start()

	users := sqldb.NewUserRepository(st.sql)
	taxonomy := sqldb.NewTaxonomyRepository(st.sql)

	svc := api.Services{
		Auth: service.NewAuthService(
			users,
			redis.NewTokenDenylist(st.redis),
			dispatcher,
			a.cfg.JWTSecret,
			a.cfg.TokenTTL,
			logger.Component("auth"),
		),
		Users:                service.NewUserService(users, logger.Component("users")),
		Taxonomy:             service.NewTaxonomyService(taxonomy, logger.Component("taxonomy")),
		Consultants:          service.NewConsultantService(users, taxonomy, logger.Component("consultants")),
		Assessments:          service.NewAssessmentService(sqldb.NewAssessmentRepository(st.sql), dispatcher, logger.Component("assessment")),
		OrganizationRequests: service.NewOrganizationRequestService(sqldb.NewOrganizationRequestRepository(st.sql), logger.Component("requests")),
		Analytics:            service.NewAnalyticsService(auditRepo, dispatcher, logger.Component("analytics")),
		Hours:                service.NewHoursService(sqldb.NewHoursRepository(st.sql), a.cfg.Location(), logger.Component("hours")),
		System:               service.NewSystemService(sqldb.NewMigrator(st.sql), taxonomy, logger.Component("system")),
	}

	e := api.NewRouter(api.RouterConfig{
		Log:             logger.Component("http"),
		Readiness:       handlers.NewHealthDependenciesHandler(st.sql, st.redis, st.mongoDB),
		PublicRateLimit: a.cfg.PublicRateLimit,
	}, svc)

	serverErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", a.cfg.Port).
			Str("db_driver", a.cfg.Database.Driver).
			Str("audit_backend", a.cfg.AuditBackend).
			Msg("server starting")
		if err := e.Start(":" + a.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	runErr := waitForStop(ctx, serverErr, log)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var shutdownErr error
	if err := e.Shutdown(shutdownCtx); err != nil {
		shutdownErr = fmt.Errorf("http shutdown: %w", err)
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("audit queue did not drain before timeout")
	}
	st.close(shutdownCtx)

	log.Info().Msg("server stopped")
	return errors.Join(runErr, shutdownErr)
}

// waitForStop blocks until the server exits or ctx is cancelled and returns
// the server's failure, if any.
func waitForStop(ctx context.Context, serverErr <-chan error, log zerolog.Logger) error {
	select {
	case err := <-serverErr:
		if err != nil {
			log.Error().Err(err).Msg("server failed")
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
		return nil
	}
}
