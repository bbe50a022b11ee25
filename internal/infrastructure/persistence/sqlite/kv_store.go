package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/pkg/database"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

// KVStore persists session items in a sqlite table
type KVStore struct {
	db     *database.DB
	logger *zap.Logger
}

// NewKVStore migrates the session schema and returns a store backed by db
func NewKVStore(ctx context.Context, db *database.DB, logger *zap.Logger) (*KVStore, error) {
	if _, err := database.NewMigrator(db, logger).Run(ctx, migrations, "migrations"); err != nil {
		return nil, fmt.Errorf("failed to migrate session store: %w", err)
	}
	return &KVStore{db: db, logger: logger}, nil
}

// GetItem returns the stored value and whether the key exists
func (s *KVStore) GetItem(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM session_items WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		s.logger.Error("Failed to read session item", zap.String("key", key), zap.Error(err))
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

// SetItem stores value under key, replacing any previous value
func (s *KVStore) SetItem(key, value string) error {
	query := `
		INSERT INTO session_items (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := s.db.Exec(query, key, value); err != nil {
		s.logger.Error("Failed to write session item", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Clear removes every item
func (s *KVStore) Clear() error {
	if _, err := s.db.Exec("DELETE FROM session_items"); err != nil {
		s.logger.Error("Failed to clear session items", zap.Error(err))
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

var _ port.KeyValueStore = (*KVStore)(nil)
