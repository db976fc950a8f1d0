package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"

	adapthttp "healthtrack/internal/adapter/http"
	"healthtrack/internal/adapter/memory"
	"healthtrack/internal/adapter/postgres"
	"healthtrack/internal/app"
	"healthtrack/internal/config"
	"healthtrack/internal/domain"
	"healthtrack/internal/logging"
	"healthtrack/internal/metrics"
)

// store is satisfied by both the postgres and the in-memory adapter.
type store interface {
	domain.VitalSignRepository
	domain.GoalRepository
	domain.ExerciseRepository
	domain.MealRepository
	domain.ProfileRepository
	domain.UserRepository
}

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "path to a TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logging.Setup(logging.SetupParams{
		LogFileName: cfg.LogFile,
		LogToStdout: cfg.LogToStdout,
		LogLevel:    cfg.LogLevel,
		JSON:        cfg.LogFormat == "json",
	})

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("timezone: %v", err)
	}
	clock := func() time.Time { return time.Now().In(loc) }

	var (
		db       store
		sessions domain.SessionRepository
	)
	if cfg.DatabaseURL != "" {
		pg, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db open: %v", err)
		}
		defer func() { _ = pg.Close() }()
		db, sessions = pg, postgres.NewSessionRepo(pg)
	} else {
		log.Warn("DATABASE_URL not set, records are kept in memory only")
		mem := memory.New()
		db, sessions = mem, mem.NewSessionRepo()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metricsManager := metrics.NewManager("healthtrack", "server", reg)

	authSvc := app.NewAuthService(db, sessions)
	svc := adapthttp.Services{
		Vitals:    app.NewVitalService(db).WithClock(clock),
		Goals:     app.NewGoalService(db),
		Stats:     app.NewStatsService(db, db).WithClock(clock).WithMetrics(metricsManager),
		Charts:    app.NewChartsService(db, db).WithClock(clock),
		Exercises: app.NewExerciseService(db).WithClock(clock),
		Meals:     app.NewMealService(db).WithClock(clock),
		Profiles:  app.NewProfileService(db).WithClock(clock),
		Auth:      authSvc,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := adapthttp.New(svc, cfg.WebDir).
		WithMetrics(metricsManager).
		WithDefaultPeriod(cfg.Period())
	if cfg.DisableAuth {
		log.Warn("authentication disabled")
		srv = srv.WithoutAuth()
	}
	if cfg.ForwardAuth.Enabled() {
		trusted, err := cfg.ForwardAuth.Prefixes()
		if err != nil {
			log.Fatalf("forward auth: %v", err)
		}
		log.WithFields(log.Fields{
			"header":          cfg.ForwardAuth.Header,
			"trusted_proxies": cfg.ForwardAuth.TrustedProxies,
		}).Info("forward auth enabled")
		srv = srv.WithForwardAuth(cfg.ForwardAuth.Header, trusted)
	}
	if cfg.OIDC.Enabled() {
		oidcCfg, err := adapthttp.NewOIDCConfig(ctx, cfg.OIDC.IssuerURL, cfg.OIDC.ClientID, cfg.OIDC.ClientSecret, cfg.OIDC.RedirectURL)
		if err != nil {
			log.Fatalf("oidc: %v", err)
		}
		srv = srv.WithOIDC(oidcCfg)
	}

	go authSvc.RunSessionJanitor(ctx, cfg.SessionCleanupInterval.Duration)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("http shutdown")
		}
	}()

	log.WithFields(log.Fields{
		"addr":     cfg.Addr,
		"timezone": loc.String(),
		"period":   cfg.Period(),
	}).Info("listening")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Info("server stopped")
}
