package container

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/internal/config"
	"github.com/garyjia/billed/pkg/database"
	"go.uber.org/zap"
)

// Container manages all application dependencies and lifecycle.
// Components are initialized in order and torn down in reverse.
type Container struct {
	config *config.Config
	logger *zap.Logger
	ui     UI

	// Infrastructure
	sessionDB *database.DB
	session   port.KeyValueStore
	remote    port.RemoteStore
	storage   *StorageBundle

	// Application
	services *ServiceBundle

	// Lifecycle
	mu     sync.Mutex
	ready  atomic.Bool
	closed atomic.Bool
}

// HealthStatus represents the health of all components.
type HealthStatus struct {
	Overall    bool                       `json:"overall"`
	Components map[string]ComponentHealth `json:"components"`
}

// ComponentHealth represents health of a single component.
type ComponentHealth struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

// NewContainer creates a new container from configuration.
// It does not initialize components - call Start() to initialize.
func NewContainer(cfg *config.Config, logger *zap.Logger, ui UI) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if ui == nil {
		return nil, fmt.Errorf("ui is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Container{
		config: cfg,
		logger: logger,
		ui:     ui,
	}, nil
}

// Start initializes all components in dependency order:
// 1. Session store
// 2. Remote store
// 3. File adapters
// 4. Application services
func (c *Container) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container has been closed")
	}
	if c.ready.Load() {
		return fmt.Errorf("container already started")
	}

	c.logger.Debug("Starting container initialization")

	session, err := ProvideSessionStore(ctx, &c.config.Session, c.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}
	c.session = session.Store
	c.sessionDB = session.DB

	remoteStore, err := ProvideRemoteStore(ctx, c.config, session, c.logger)
	if err != nil {
		c.closeSession()
		return fmt.Errorf("failed to initialize remote store: %w", err)
	}
	c.remote = remoteStore

	storageBundle, err := ProvideStorage(&c.config.Receipt, c.logger)
	if err != nil {
		c.closeSession()
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	c.storage = storageBundle

	services, err := ProvideServices(&ServiceDeps{
		Storage:  c.session,
		Remote:   c.remote,
		Exporter: c.storage.Exporter,
		UI:       c.ui,
		Logger:   c.logger,
	})
	if err != nil {
		c.closeSession()
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	c.services = services

	c.ready.Store(true)
	c.logger.Debug("Container started",
		zap.String("remote_driver", c.config.Remote.Driver),
		zap.Bool("persistent_session", c.sessionDB != nil))
	return nil
}

// Close shuts down all components in reverse order.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container already closed")
	}

	err := c.closeSession()

	c.closed.Store(true)
	c.ready.Store(false)
	_ = c.logger.Sync()

	if err != nil {
		return fmt.Errorf("close session store: %w", err)
	}
	return nil
}

func (c *Container) closeSession() error {
	if c.sessionDB == nil {
		return nil
	}
	err := c.sessionDB.Close()
	if err != nil {
		c.logger.Error("Failed to close session database", zap.Error(err))
	}
	c.sessionDB = nil
	return err
}

// Ready returns true when all components are initialized.
func (c *Container) Ready() bool {
	return c.ready.Load()
}

// Health returns health status of all components.
func (c *Container) Health() *HealthStatus {
	status := &HealthStatus{
		Overall:    true,
		Components: make(map[string]ComponentHealth),
	}

	switch {
	case c.session == nil:
		status.Components["session"] = ComponentHealth{Healthy: false, Message: "not initialized"}
		status.Overall = false
	case c.sessionDB != nil:
		if err := c.sessionDB.Ping(); err != nil {
			status.Components["session"] = ComponentHealth{Healthy: false, Message: fmt.Sprintf("ping failed: %v", err)}
			status.Overall = false
		} else {
			status.Components["session"] = ComponentHealth{Healthy: true, Message: c.sessionDB.Path()}
		}
	default:
		status.Components["session"] = ComponentHealth{Healthy: true, Message: "in memory"}
	}

	if c.remote != nil {
		status.Components["remote"] = ComponentHealth{Healthy: true, Message: c.config.Remote.Driver}
	} else {
		status.Components["remote"] = ComponentHealth{Healthy: false, Message: "not initialized"}
		status.Overall = false
	}

	if c.services != nil {
		status.Components["services"] = ComponentHealth{Healthy: true}
	} else {
		status.Components["services"] = ComponentHealth{Healthy: false, Message: "not initialized"}
		status.Overall = false
	}

	return status
}

// SessionStore returns the persisted session store.
func (c *Container) SessionStore() port.KeyValueStore {
	return c.session
}

// RemoteStore returns the backend adapter.
func (c *Container) RemoteStore() port.RemoteStore {
	return c.remote
}

// ReceiptReader returns the receipt file loader.
func (c *Container) ReceiptReader() port.ReceiptReader {
	return c.storage.Receipts
}

// Services returns all application services.
func (c *Container) Services() *ServiceBundle {
	return c.services
}

// Logger returns the container's logger.
func (c *Container) Logger() *zap.Logger {
	return c.logger
}

// Config returns the container's configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// zapLoggerAdapter adapts zap.Logger to the service.Logger interface.
type zapLoggerAdapter struct {
	logger *zap.Logger
}

func (a *zapLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Info(msg, convertToZapFields(keysAndValues...)...)
}

func (a *zapLoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	a.logger.Error(msg, convertToZapFields(keysAndValues...)...)
}

// convertToZapFields converts key-value pairs to zap fields.
func convertToZapFields(keysAndValues ...interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		if err, ok := keysAndValues[i+1].(error); ok {
			fields = append(fields, zap.NamedError(key, err))
			continue
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}
