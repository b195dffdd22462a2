package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/threeriversplumbing/dispatch-api/internal/config"
	"github.com/threeriversplumbing/dispatch-api/internal/dispatcher"
	"github.com/threeriversplumbing/dispatch-api/internal/handler"
	"github.com/threeriversplumbing/dispatch-api/internal/logger"
	"github.com/threeriversplumbing/dispatch-api/internal/middleware"
	"github.com/threeriversplumbing/dispatch-api/internal/service"
)

type App struct {
	ctx         context.Context
	logger      *zap.Logger
	cfg         *config.Config
	featureCfg  *service.FeatureConfig
	calendarSvc *service.CalendarService
	smsSvc      *service.SMSService
}

func main() {
	zl, err := logger.New()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	app := &App{
		ctx:    context.Background(),
		logger: zl,
	}

	if err := app.run(); err != nil {
		app.logger.Error("Application error", zap.Error(err))
		_ = zl.Sync()
		os.Exit(1)
	}
}

func (a *App) run() error {
	if err := a.initialize(); err != nil {
		return err
	}

	router := a.buildRouter()

	srv := &http.Server{
		Addr:    ":" + a.cfg.Port,
		Handler: router,
	}

	go func() {
		a.logger.Info("Dispatcher listening", zap.String("port", a.cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	a.logger.Info("Server exited")
	return nil
}

func (a *App) initialize() error {
	cfg, err := config.LoadWithFile(".env")
	if err != nil {
		a.logger.Error("Failed to load environment config", zap.Error(err))
		return err
	}
	a.cfg = cfg

	featureCfg, err := service.LoadFeatureConfig(cfg.ConfigPath)
	if err != nil {
		a.logger.Error("Failed to load feature config", zap.Error(err), zap.String("path", cfg.ConfigPath))
		return err
	}
	a.featureCfg = featureCfg

	// Initialize Calendar service if configured
	calendarSvc, err := service.NewCalendarService(a.ctx, featureCfg.Calendar)
	if err != nil {
		a.logger.Warn("Calendar service not available, availability and booking will run degraded", zap.Error(err))
		a.calendarSvc = nil
	} else {
		a.calendarSvc = calendarSvc
		a.logger.Info("Calendar service initialized", zap.String("calendar_id", featureCfg.Calendar.CalendarID))
	}

	// Initialize SMS service if configured
	if cfg.SMSConfigured() {
		smsSvc, err := service.NewSMSService(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, cfg.PlumberCell, cfg.TestCellOnly)
		if err != nil {
			a.logger.Warn("SMS service not available, texts will not be sent", zap.Error(err))
			a.smsSvc = nil
		} else {
			a.smsSvc = smsSvc
			if cfg.TestCellOnly != "" {
				a.logger.Info("SMS service initialized (TEST MODE)", zap.String("test_cell", cfg.TestCellOnly))
			} else {
				a.logger.Info("SMS service initialized")
			}
		}
	} else {
		a.logger.Info("SMS service not configured (TWILIO_* or PLUMBER_CELL_PHONE missing)")
		a.smsSvc = nil
	}

	return nil
}

// buildDispatcher wires the collaborators into the tool dispatcher. Missing
// collaborators stay untyped nil so the interface fields compare nil.
func (a *App) buildDispatcher() *dispatcher.Dispatcher {
	d := &dispatcher.Dispatcher{
		Logger:     a.logger,
		FeatureCfg: a.featureCfg,
	}
	if a.calendarSvc != nil {
		d.Calendar = a.calendarSvc
	}
	if a.smsSvc != nil {
		d.SMS = a.smsSvc
	}
	return d
}

func (a *App) buildRouter() *gin.Engine {
	if a.cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(a.logger))
	r.Use(middleware.RateLimit(a.logger))

	handler.RegisterRoutes(r, handler.NewAPIHandler(a.buildDispatcher(), a.logger))
	return r
}
