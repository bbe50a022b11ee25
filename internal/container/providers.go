// Package container wires the billed client: session store, backend
// adapter, file adapters and application services.
package container

import (
	"context"
	"fmt"

	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/internal/application/service"
	"github.com/garyjia/billed/internal/config"
	"github.com/garyjia/billed/internal/infrastructure/export"
	"github.com/garyjia/billed/internal/infrastructure/memstore"
	"github.com/garyjia/billed/internal/infrastructure/persistence/memory"
	"github.com/garyjia/billed/internal/infrastructure/persistence/sqlite"
	"github.com/garyjia/billed/internal/infrastructure/remote"
	"github.com/garyjia/billed/internal/infrastructure/storage"
	"github.com/garyjia/billed/pkg/database"
	"go.uber.org/zap"
)

// UI is what the services need from the presentation layer
type UI interface {
	port.Navigator
	port.Alerter
	port.Viewport
}

// SessionBundle holds the persisted session store and, for sqlite, its database.
type SessionBundle struct {
	Store port.KeyValueStore
	DB    *database.DB
}

// StorageBundle holds file-related adapters.
type StorageBundle struct {
	Receipts port.ReceiptReader
	Exporter port.BillExporter
}

// ServiceBundle groups all application services.
type ServiceBundle struct {
	Session   service.SessionManager
	BillList  service.BillListPresenter
	Composer  service.BillComposer
	Dashboard service.DashboardController
}

// ProvideSessionStore opens the sqlite session file, or an in-memory store
// when no path is configured.
func ProvideSessionStore(ctx context.Context, cfg *config.SessionConfig, logger *zap.Logger) (*SessionBundle, error) {
	if cfg == nil {
		return nil, fmt.Errorf("session config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	if cfg.Path == "" {
		logger.Debug("Using in-memory session store")
		return &SessionBundle{Store: memory.NewKVStore()}, nil
	}

	db, err := database.New(database.DefaultConfig(cfg.Path), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	kv, err := sqlite.NewKVStore(ctx, db, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SessionBundle{Store: kv, DB: db}, nil
}

// ProvideRemoteStore creates the backend adapter selected by remote.driver.
// The memory driver keeps its accounts and bills in the session database
// when there is one.
func ProvideRemoteStore(ctx context.Context, cfg *config.Config, session *SessionBundle, logger *zap.Logger) (port.RemoteStore, error) {
	if session == nil || session.Store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	kv := session.Store

	switch cfg.Remote.Driver {
	case config.DriverHTTP:
		logger.Debug("Using REST backend", zap.String("base_url", cfg.Remote.BaseURL))
		return remote.NewClient(remote.Config{
			BaseURL: cfg.Remote.BaseURL,
			Timeout: cfg.Remote.Timeout,
		}, kv, logger), nil
	case config.DriverMemory:
		var records port.BackendRecords
		if session.DB != nil {
			sqliteRecords, err := sqlite.NewRecordStore(ctx, session.DB, logger)
			if err != nil {
				return nil, err
			}
			records = sqliteRecords
		}
		store, err := memstore.New(ctx, memstore.Config{
			JWTSecret:     cfg.Memory.JWTSecret,
			TokenDuration: cfg.Memory.TokenDuration,
			Seed:          cfg.Memory.Seed,
		}, kv, records, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create memory store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown remote driver: %s", cfg.Remote.Driver)
	}
}

// ProvideStorage creates the receipt reader and the exporter.
func ProvideStorage(cfg *config.ReceiptConfig, logger *zap.Logger) (*StorageBundle, error) {
	if cfg == nil {
		return nil, fmt.Errorf("receipt config is required")
	}
	return &StorageBundle{
		Receipts: storage.NewReceiptReader(cfg.BaseDir, cfg.MaxSize, logger),
		Exporter: export.NewExcelExporter(logger),
	}, nil
}

// ServiceDeps holds dependencies for creating services.
type ServiceDeps struct {
	Storage  port.KeyValueStore
	Remote   port.RemoteStore
	Exporter port.BillExporter
	UI       UI
	Logger   *zap.Logger
}

// ProvideServices creates all application services.
func ProvideServices(deps *ServiceDeps) (*ServiceBundle, error) {
	if deps == nil || deps.Storage == nil || deps.UI == nil || deps.Logger == nil {
		return nil, fmt.Errorf("storage, ui and logger are required")
	}

	logger := &zapLoggerAdapter{logger: deps.Logger}

	return &ServiceBundle{
		Session: service.NewSessionManager(service.SessionDeps{
			Storage:   deps.Storage,
			Navigator: deps.UI,
			Store:     deps.Remote,
			Viewport:  deps.UI,
			Logger:    logger,
		}),
		BillList: service.NewBillListPresenter(deps.Remote, deps.UI, logger),
		Composer: service.NewBillComposer(service.ComposerDeps{
			Navigator: deps.UI,
			Store:     deps.Remote,
			Storage:   deps.Storage,
			Alerter:   deps.UI,
			Logger:    logger,
		}),
		Dashboard: service.NewDashboardController(service.DashboardDeps{
			Navigator: deps.UI,
			Store:     deps.Remote,
			Exporter:  deps.Exporter,
			Logger:    logger,
		}, nil),
	}, nil
}
