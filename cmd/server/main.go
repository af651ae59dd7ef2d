package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/shipdesk/backoffice/internal/config"
	"github.com/shipdesk/backoffice/internal/domain/models"
	"github.com/shipdesk/backoffice/internal/repository/mongodb"
	"github.com/shipdesk/backoffice/internal/repository/sheets"
	"github.com/shipdesk/backoffice/internal/scheduler"
	"github.com/shipdesk/backoffice/internal/server/handlers"
	"github.com/shipdesk/backoffice/internal/server/router"
	"github.com/shipdesk/backoffice/internal/service/auth"
	recordsvc "github.com/shipdesk/backoffice/internal/service/records"
	reportingsvc "github.com/shipdesk/backoffice/internal/service/reporting"
	statssvc "github.com/shipdesk/backoffice/internal/service/stats"
	"github.com/shipdesk/backoffice/pkg/clients/notify"
	"github.com/shipdesk/backoffice/pkg/datefmt"
	"github.com/shipdesk/backoffice/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	loc := cfg.Location()
	datefmt.SetDefaultLocation(loc)
	recordOpts := recordsvc.Options{
		StrictDates: cfg.Records.StrictDates,
		Normalizer:  &datefmt.Normalizer{Location: loc},
	}
	recordLogger := logger.Named(baseLogger, "svc.records")

	expressSvc := recordsvc.NewService[models.ExpressVolumeRecord, *models.ExpressVolumeRecord](mongoRepo.Express(), recordOpts, recordLogger.With(zap.String("collection", mongodb.ExpressCollection)))
	exceptionSvc := recordsvc.NewService[models.ExceptionRecord, *models.ExceptionRecord](mongoRepo.Exceptions(), recordOpts, recordLogger.With(zap.String("collection", mongodb.ExceptionCollection)))
	containerSvc := recordsvc.NewService[models.ContainerRecord, *models.ContainerRecord](mongoRepo.Containers(), recordOpts, recordLogger.With(zap.String("collection", mongodb.ContainerCollection)))
	inventorySvc := recordsvc.NewService[models.InventoryExceptionRecord, *models.InventoryExceptionRecord](mongoRepo.Inventory(), recordOpts, recordLogger.With(zap.String("collection", mongodb.InventoryCollection)))

	statsSvc := statssvc.NewService(mongoRepo.Exceptions(), mongoRepo.Express(), mongoRepo.Containers(), mongoRepo.Inventory(), logger.Named(baseLogger, "svc.stats")).
		WithClock(func() time.Time { return time.Now().In(loc) })

	var reportOpts []reportingsvc.Option
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		reportOpts = append(reportOpts, reportingsvc.WithSheet(sheetsRepo, cfg.Sheets.Range))
	} else {
		baseLogger.Info("google sheets export disabled")
	}
	if cfg.Notify.WebhookURL != "" {
		reportOpts = append(reportOpts, reportingsvc.WithNotifier(notify.NewWebhookClient(cfg.Notify.WebhookURL)))
	} else {
		baseLogger.Info("report notifications disabled")
	}
	reportingSvc := reportingsvc.NewService(statsSvc, mongoRepo.Snapshots(), logger.Named(baseLogger, "svc.reporting"), reportOpts...)

	h := router.Handlers{}
	if h.Express, err = handlers.NewRecordHandler[models.ExpressVolumeRecord, *models.ExpressVolumeRecord](expressSvc, handlers.ExpressResource, logger.Named(baseLogger, "handlers.express")); err != nil {
		baseLogger.Fatal("failed to init express handler", zap.Error(err))
	}
	if h.Exceptions, err = handlers.NewRecordHandler[models.ExceptionRecord, *models.ExceptionRecord](exceptionSvc, handlers.ExceptionResource, logger.Named(baseLogger, "handlers.exceptions")); err != nil {
		baseLogger.Fatal("failed to init exception handler", zap.Error(err))
	}
	if h.Containers, err = handlers.NewRecordHandler[models.ContainerRecord, *models.ContainerRecord](containerSvc, handlers.ContainerResource, logger.Named(baseLogger, "handlers.containers")); err != nil {
		baseLogger.Fatal("failed to init container handler", zap.Error(err))
	}
	if h.Inventory, err = handlers.NewRecordHandler[models.InventoryExceptionRecord, *models.InventoryExceptionRecord](inventorySvc, handlers.InventoryResource, logger.Named(baseLogger, "handlers.inventory")); err != nil {
		baseLogger.Fatal("failed to init inventory handler", zap.Error(err))
	}
	if h.Stats, err = handlers.NewStatsHandler(statsSvc, reportingSvc, logger.Named(baseLogger, "handlers.stats")); err != nil {
		baseLogger.Fatal("failed to init stats handler", zap.Error(err))
	}
	sessions := auth.NewSessionManager(cfg.Auth.AdminPassword, cfg.Auth.SessionTTL)
	if h.Auth, err = handlers.NewAuthHandler(sessions, logger.Named(baseLogger, "handlers.auth")); err != nil {
		baseLogger.Fatal("failed to init auth handler", zap.Error(err))
	}

	engine := router.New(h, router.Options{AllowedOrigin: cfg.Server.AllowedOrigin}, logger.Named(baseLogger, "router"))

	if cfg.Reporting.Enabled {
		sched, err := scheduler.NewScheduler(cfg.Reporting.CronSchedule, loc, reportingSvc, logger.Named(baseLogger, "scheduler"))
		if err != nil {
			baseLogger.Fatal("failed to init scheduler", zap.Error(err))
		}
		sched.Start()
		defer sched.Stop()
		baseLogger.Info("monthly report scheduled", zap.Time("next_run", sched.Next()))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
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
