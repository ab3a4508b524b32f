package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/messledger/internal/config"
	"github.com/mamadbah2/messledger/internal/repository/mongodb"
	"github.com/mamadbah2/messledger/internal/repository/sheets"
	"github.com/mamadbah2/messledger/internal/scheduler"
	"github.com/mamadbah2/messledger/internal/server/handlers"
	"github.com/mamadbah2/messledger/internal/server/router"
	entriessvc "github.com/mamadbah2/messledger/internal/service/entries"
	reportingsvc "github.com/mamadbah2/messledger/internal/service/reporting"
	"github.com/mamadbah2/messledger/pkg/clients/backend"
	whatsappclient "github.com/mamadbah2/messledger/pkg/clients/whatsapp"
	"github.com/mamadbah2/messledger/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var tokens backend.TokenSource = backend.StaticTokenSource(cfg.Backend.AccessToken)
	if cfg.Backend.RefreshToken != "" {
		tokens = backend.NewRefreshingTokenSource(cfg.Backend.BaseURL, cfg.Backend.RefreshPath,
			cfg.Backend.AccessToken, cfg.Backend.RefreshToken, baseLogger.Named("client.token"))
	}
	apiClient := backend.NewClient(cfg.Backend, tokens, baseLogger.Named("client.backend"))

	var reportOpts []reportingsvc.Option

	if cfg.MongoDB.Enabled() {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		reportOpts = append(reportOpts, reportingsvc.WithSnapshotStore(mongoRepo))
	} else {
		baseLogger.Warn("mongodb uri missing, daily snapshots will not be stored")
	}

	if cfg.Sheets.Enabled() {
		exporter, err := sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"),
			sheets.WithHeader(reportingsvc.SnapshotSheetRange, reportingsvc.SnapshotHeader))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		reportOpts = append(reportOpts, reportingsvc.WithExporter(exporter))
	}

	reportingSvc := reportingsvc.NewService(apiClient, baseLogger.Named("svc.reporting"), reportOpts...)
	entriesSvc := entriessvc.NewService(apiClient, baseLogger.Named("svc.entries"))

	var notifier scheduler.Notifier
	if cfg.WhatsApp.Enabled() {
		notifier = whatsappclient.NewClient(cfg.WhatsApp)
		baseLogger.Info("whatsapp daily summary enabled")
	}

	sched, err := scheduler.NewScheduler(cfg.Reporting, reportingSvc, notifier, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	gin.SetMode(gin.ReleaseMode)
	engine, err := router.New(
		handlers.NewReportHandler(reportingSvc, baseLogger.Named("handlers.reports")),
		handlers.NewEntryHandler(entriesSvc, baseLogger.Named("handlers.entries")),
		cfg.Server.RateLimit,
		baseLogger.Named("router"),
	)
	if err != nil {
		baseLogger.Fatal("failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("backend", cfg.Backend.BaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
