package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/artistlink/internal/config"
	"github.com/iliyamo/artistlink/internal/database"
	"github.com/iliyamo/artistlink/internal/handler"
	"github.com/iliyamo/artistlink/internal/logger"
	"github.com/iliyamo/artistlink/internal/middleware"
	"github.com/iliyamo/artistlink/internal/queue"
	"github.com/iliyamo/artistlink/internal/repository"
	"github.com/iliyamo/artistlink/internal/router"
	"github.com/iliyamo/artistlink/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable, response cache and rate limiting disabled")
	} else {
		defer rdb.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	artists := repository.NewArtistRepo(db)
	engagement := repository.NewEngagementRepo(db)

	var (
		sink      service.EngagementSink = engagement
		consumers sync.WaitGroup
	)
	if cfg.Sink == config.SinkAMQP {
		pub := queue.NewPublisher(cfg.AMQPURL, cfg.Queue, log)
		defer pub.Close()
		sink = pub
		consumers.Add(1)
		go func() {
			defer consumers.Done()
			queue.StartEngagementConsumer(ctx, cfg.AMQPURL, cfg.Queue, engagement, log, cfg.TrackTimeout)
		}()
	}
	tracker := service.NewTracker(sink, log, cfg.TrackTimeout)

	deps := router.Deps{
		Public: &handler.PublicHandler{
			Artists:      artists,
			Projects:     repository.NewProjectRepo(db),
			Shows:        repository.NewShowRepo(db),
			Testimonials: repository.NewTestimonialRepo(db),
			Photos:       repository.NewPhotoRepo(db),
			Videos:       repository.NewVideoRepo(db),
			Leads:        repository.NewLeadRepo(db),
			Log:          log,
			Timeout:      cfg.StoreTimeout,
		},
		Contact: &handler.ContactHandler{
			Contact: service.NewContactService(artists),
			Log:     log,
			Timeout: cfg.StoreTimeout,
		},
		Tracking: &handler.TrackingHandler{Tracker: tracker},
		Auth: &handler.AuthHandler{
			Operators:    repository.NewOperatorRepo(db),
			JWTSecret:    cfg.JWTSecret,
			AccessTTLMin: cfg.AccessTTLMin,
			Log:          log,
			Timeout:      cfg.StoreTimeout,
		},
		Dashboard: handler.NewDashboardHandler(handler.DashboardStores{
			Artists:      artists,
			Projects:     repository.NewProjectRepo(db),
			Shows:        repository.NewShowRepo(db),
			Testimonials: repository.NewTestimonialRepo(db),
			Photos:       repository.NewPhotoRepo(db),
			Videos:       repository.NewVideoRepo(db),
			Leads:        repository.NewLeadRepo(db),
			Stats:        repository.NewStatsRepo(db),
		}, service.NewReorderService(repository.NewSortOrderRepo(db), log), log, cfg.StoreTimeout),
		JWTSecret: cfg.JWTSecret,
		Cache:     config.LoadCacheConfig(),
		RateLimit: config.LoadRateLimitConfig(),
		Redis:     rdb,
		Log:       log,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(log))
	router.Register(e, cfg.CORSOrigins, deps)

	addr := ":" + cfg.Port
	go func() {
		log.Info("listening", "addr", addr, "env", cfg.Env, "engagement_sink", cfg.Sink)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Warn("graceful shutdown failed", "error", err)
	}
	tracker.Wait()
	consumers.Wait()
	log.Info("shutdown complete")
}
