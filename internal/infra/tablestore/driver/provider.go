// Package driver selects the TableStore implementation named in store.driver.
package driver

import (
	"context"
	"log/slog"

	"didilikeit/config"
	"didilikeit/internal/domain/lifecycle"
	"didilikeit/internal/domain/repository"
	"didilikeit/internal/errors"
	"didilikeit/internal/infra/persistence/postgres"
	"didilikeit/internal/infra/tablestore/blob"
	"didilikeit/internal/infra/tablestore/memory"
	"didilikeit/internal/infra/tablestore/sheets"

	"go.uber.org/fx"
)

// Params holds dependencies for the table store, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewTableStore opens the configured driver and registers its shutdown.
func NewTableStore(params Params) (repository.TableStore, error) {
	cfg := params.Config.Store
	logger := params.Logger.With(slog.String("store_driver", cfg.Driver))

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	switch cfg.Driver {
	case config.StoreDriverMemory:
		logger.Warn("Using the in-memory table store; entries are lost on restart")

		return memory.New(), nil

	case config.StoreDriverSheets:
		store, err := sheets.New(ctx, cfg.Sheets, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("Using Google Sheets table store", slog.String("sheet", cfg.Sheets.SheetName))

		return store, nil

	case config.StoreDriverBlob:
		store, err := blob.Open(ctx, cfg.Blob.BucketURL, cfg.Blob.Key, logger)
		if err != nil {
			return nil, err
		}
		params.Lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return store.Close()
			},
		})
		logger.Info("Using bucket table store", slog.String("key", cfg.Blob.Key))

		return store, nil

	case config.StoreDriverPostgres:
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lc,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("Using PostgreSQL table store")

		return postgres.NewTableStore(postgres.NewTransactionManager(db)), nil

	default:
		return nil, errors.Errorf("unknown store driver: %s", cfg.Driver)
	}
}

// Module provides the table store FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewTableStore),
)
