package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/engin-hq/engin/internal/auth"
	"github.com/engin-hq/engin/internal/collaborations"
	"github.com/engin-hq/engin/internal/common"
	"github.com/engin-hq/engin/internal/connections"
	"github.com/engin-hq/engin/internal/export"
	"github.com/engin-hq/engin/internal/jobs"
	"github.com/engin-hq/engin/internal/onboarding"
	"github.com/engin-hq/engin/internal/profiles"
	"github.com/engin-hq/engin/internal/repository"
	"github.com/engin-hq/engin/internal/server"
	"github.com/engin-hq/engin/internal/startups"
)

func main() {
	// Logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	log := logger.Sugar()

	// Env
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// DB
	db, err := repository.Open(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		DialTimeout:     cfg.Database.DialTimeout,
	}, logger)
	if err != nil {
		log.Fatalf("opening database: %v", err)
	}
	defer repository.Close(db, logger)

	if err := repository.Migrate(db); err != nil {
		log.Fatalf("migrating schema: %v", err)
	}
	if err := repository.HealthCheck(ctx, db, cfg.Database.DialTimeout); err != nil {
		log.Fatalf("DB health failed: %v", err)
	}
	log.Infow("DB health OK")

	// Repositories
	profileRepo := repository.NewProfileRepository(db, logger)
	startupRepo := repository.NewStartupRepository(db, logger)
	jobRepo := repository.NewJobRepository(db, logger)
	appRepo := repository.NewApplicationRepository(db, logger)
	connRepo := repository.NewConnectionRepository(db, logger)
	collabRepo := repository.NewCollaborationRepository(db, logger)
	expRepo := repository.NewExperienceRepository(db, logger)
	identityRepo := repository.NewIdentityRepository(db, logger)
	sessionRepo := repository.NewSessionRepository(db, logger)

	// Services
	sessions := auth.NewSessions(identityRepo, sessionRepo, cfg.Auth.SessionTTL, logger)
	oauthRegistry := auth.NewRegistry(cfg.Auth, cfg.Server.BaseURL)
	onboardingMgr := onboarding.NewManager(cfg.Auth.OnboardingTTL, logger)
	go onboardingMgr.Run(ctx)

	srv := server.New(
		oauthRegistry,
		sessions,
		onboardingMgr,
		profiles.NewService(profileRepo, expRepo, logger),
		startups.NewService(startupRepo, logger),
		jobs.NewService(jobRepo, startupRepo, appRepo, logger),
		connections.NewService(connRepo, profileRepo, logger),
		collaborations.NewService(collabRepo, startupRepo, logger),
		export.NewService(startupRepo, appRepo, logger),
		logger,
	)

	httpServer := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: srv.Routes(),
	}

	go func() {
		log.Infof("HTTP serving on %s", cfg.Server.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warnf("graceful shutdown: %v", err)
	}
	sessions.SweepExpired(shutdownCtx)
	log.Info("stopped.")
}
