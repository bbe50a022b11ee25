package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/002_second.sql":       {Data: []byte("CREATE TABLE b (id INTEGER);")},
		"migrations/001_first.sql":        {Data: []byte("CREATE TABLE a (id INTEGER);")},
		"migrations/README.md":            {Data: []byte("ignored")},
		"migrations/nested/003_third.sql": {Data: []byte("CREATE TABLE c (id INTEGER);")},
	}

	migrations, err := LoadMigrations(fsys, "migrations")
	require.NoError(t, err)
	require.Len(t, migrations, 3)

	assert.Equal(t, 1, migrations[0].Version)
	assert.Equal(t, "first", migrations[0].Name)
	assert.Equal(t, 2, migrations[1].Version)
	assert.Equal(t, 3, migrations[2].Version)
	assert.Equal(t, "third", migrations[2].Name)
}

func TestLoadMigrations_InvalidName(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/first.sql": {Data: []byte("SELECT 1;")},
	}

	_, err := LoadMigrations(fsys, "migrations")
	assert.Error(t, err)
}

func TestMigrator_RunIsIdempotent(t *testing.T) {
	logger := zap.NewNop()
	db, err := New(DefaultConfig(filepath.Join(t.TempDir(), "nested", "billed.db")), logger)
	require.NoError(t, err)
	defer db.Close()

	fsys := fstest.MapFS{
		"m/001_items.sql": {Data: []byte("CREATE TABLE items (k TEXT PRIMARY KEY, v TEXT);")},
	}
	migrator := NewMigrator(db, logger)
	ctx := context.Background()

	applied, err := migrator.Run(ctx, fsys, "m")
	require.NoError(t, err)
	assert.Equal(t, 1, applied)

	applied, err = migrator.Run(ctx, fsys, "m")
	require.NoError(t, err)
	assert.Equal(t, 0, applied)

	_, err = db.ExecContext(ctx, "INSERT INTO items (k, v) VALUES ('a', 'b')")
	assert.NoError(t, err)
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	logger := zap.NewNop()
	db, err := New(DefaultConfig(filepath.Join(t.TempDir(), "tx.db")), logger)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	_, err = db.ExecContext(ctx, "CREATE TABLE items (k TEXT)")
	require.NoError(t, err)

	err = db.WithTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "INSERT INTO items (k) VALUES ('x')"); err != nil {
			return err
		}
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM items").Scan(&count))
	assert.Equal(t, 0, count)
}
