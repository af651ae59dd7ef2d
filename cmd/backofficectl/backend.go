package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/shipdesk/backoffice/internal/config"
	"github.com/shipdesk/backoffice/internal/domain/models"
	"github.com/shipdesk/backoffice/internal/repository/mongodb"
	"github.com/shipdesk/backoffice/internal/service/records"
	"github.com/shipdesk/backoffice/internal/service/stats"
	"github.com/shipdesk/backoffice/pkg/datefmt"
	"github.com/shipdesk/backoffice/pkg/logger"
)

type renormalizer interface {
	Renormalize(ctx context.Context, dryRun bool) (int, error)
}

type collection struct {
	name string
	svc  renormalizer
}

type statsSource interface {
	SummaryAt(ctx context.Context, now time.Time) (models.StatsReport, error)
}

// backend is what the commands operate on.
type backend struct {
	collections []collection
	stats       statsSource
	location    *time.Location
	close       func(context.Context) error
}

type backendFactory func(ctx context.Context, envFile string) (*backend, error)

func openBackend(ctx context.Context, envFile string) (*backend, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	repo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		return nil, err
	}

	loc := cfg.Location()
	datefmt.SetDefaultLocation(loc)
	opts := records.Options{Normalizer: &datefmt.Normalizer{Location: loc}}
	svcLog := logger.Named(log, "cli.records")

	return &backend{
		collections: []collection{
			{name: mongodb.ExpressCollection, svc: records.NewService[models.ExpressVolumeRecord, *models.ExpressVolumeRecord](repo.Express(), opts, svcLog)},
			{name: mongodb.ExceptionCollection, svc: records.NewService[models.ExceptionRecord, *models.ExceptionRecord](repo.Exceptions(), opts, svcLog)},
			{name: mongodb.ContainerCollection, svc: records.NewService[models.ContainerRecord, *models.ContainerRecord](repo.Containers(), opts, svcLog)},
			{name: mongodb.InventoryCollection, svc: records.NewService[models.InventoryExceptionRecord, *models.InventoryExceptionRecord](repo.Inventory(), opts, svcLog)},
		},
		stats:    stats.NewService(repo.Exceptions(), repo.Express(), repo.Containers(), repo.Inventory(), logger.Named(log, "cli.stats")),
		location: loc,
		close: func(ctx context.Context) error {
			defer func() { _ = log.Sync() }()
			if err := repo.Close(ctx); err != nil {
				log.Error("failed to close mongodb connection", zap.Error(err))
				return err
			}
			return nil
		},
	}, nil
}
