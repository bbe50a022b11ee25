package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/internal/domain/entity"
	"github.com/garyjia/billed/pkg/database"
	"go.uber.org/zap"
)

// RecordStore persists the in-process backend's accounts and bills
type RecordStore struct {
	db     *database.DB
	logger *zap.Logger
}

// NewRecordStore migrates the schema and returns a store backed by db
func NewRecordStore(ctx context.Context, db *database.DB, logger *zap.Logger) (*RecordStore, error) {
	if _, err := database.NewMigrator(db, logger).Run(ctx, migrations, "migrations"); err != nil {
		return nil, fmt.Errorf("failed to migrate record store: %w", err)
	}
	return &RecordStore{db: db, logger: logger}, nil
}

// GetAccount returns the account registered under email
func (s *RecordStore) GetAccount(ctx context.Context, email string) (*entity.Account, bool, error) {
	var (
		account entity.Account
		role    string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, role, password_hash FROM accounts WHERE email = ?", email,
	).Scan(&account.ID, &account.Name, &account.Email, &role, &account.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		s.logger.Error("Failed to read account", zap.String("email", email), zap.Error(err))
		return nil, false, fmt.Errorf("failed to read account: %w", err)
	}

	parsed, err := entity.ParseRole(role)
	if err != nil {
		return nil, false, err
	}
	account.Role = parsed
	return &account, true, nil
}

// InsertAccount adds a new account
func (s *RecordStore) InsertAccount(ctx context.Context, account entity.Account) error {
	query := `
		INSERT INTO accounts (email, id, name, role, password_hash)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`
	result, err := s.db.ExecContext(ctx, query,
		account.Email, account.ID, account.Name, account.Role.String(), account.PasswordHash)
	if err != nil {
		s.logger.Error("Failed to insert account", zap.String("email", account.Email), zap.Error(err))
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return insertedOrExists(result, entity.ErrAccountExists, account.Email)
}

// ListBills returns every bill in insertion order
func (s *RecordStore) ListBills(ctx context.Context) ([]entity.Bill, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, email, type, name, amount, date, vat, pct, commentary,
		       comment_admin, status, file_name, file_url
		FROM bills ORDER BY seq
	`)
	if err != nil {
		s.logger.Error("Failed to list bills", zap.Error(err))
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []entity.Bill
	for rows.Next() {
		var (
			bill             entity.Bill
			amount, vat, pct string
			status           string
		)
		if err := rows.Scan(&bill.ID, &bill.Email, &bill.Type, &bill.Name, &amount, &bill.Date,
			&vat, &pct, &bill.Commentary, &bill.CommentAdmin, &status, &bill.FileName, &bill.FileURL); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		parsed, err := entity.ParseBillStatus(status)
		if err != nil {
			s.logger.Error("Skipping bill with invalid status", zap.String("id", bill.ID), zap.String("status", status))
			continue
		}
		bill.Status = parsed
		bill.Amount = entity.FlexString(amount)
		bill.VAT = entity.FlexString(vat)
		bill.Pct = entity.FlexString(pct)
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}
	return bills, nil
}

// InsertBill adds a bill
func (s *RecordStore) InsertBill(ctx context.Context, bill entity.Bill) error {
	query := `
		INSERT INTO bills (id, email, type, name, amount, date, vat, pct, commentary,
		                   comment_admin, status, file_name, file_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`
	result, err := s.db.ExecContext(ctx, query,
		bill.ID, bill.Email, bill.Type, bill.Name, bill.Amount.String(), bill.Date,
		bill.VAT.String(), bill.Pct.String(), bill.Commentary, bill.CommentAdmin,
		bill.Status.String(), bill.FileName, bill.FileURL)
	if err != nil {
		s.logger.Error("Failed to insert bill", zap.String("id", bill.ID), zap.Error(err))
		return fmt.Errorf("failed to insert bill: %w", err)
	}
	return insertedOrExists(result, entity.ErrBillExists, bill.ID)
}

// UpdateBill replaces the bill with the same id
func (s *RecordStore) UpdateBill(ctx context.Context, bill entity.Bill) error {
	query := `
		UPDATE bills SET email = ?, type = ?, name = ?, amount = ?, date = ?, vat = ?, pct = ?,
		       commentary = ?, comment_admin = ?, status = ?, file_name = ?, file_url = ?,
		       updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		bill.Email, bill.Type, bill.Name, bill.Amount.String(), bill.Date, bill.VAT.String(),
		bill.Pct.String(), bill.Commentary, bill.CommentAdmin, bill.Status.String(),
		bill.FileName, bill.FileURL, bill.ID)
	if err != nil {
		s.logger.Error("Failed to update bill", zap.String("id", bill.ID), zap.Error(err))
		return fmt.Errorf("failed to update bill: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", entity.ErrBillNotFound, bill.ID)
	}
	return nil
}

// insertedOrExists maps an insert that touched no row to the conflict error
func insertedOrExists(result sql.Result, conflict error, key string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", conflict, key)
	}
	return nil
}

var _ port.BackendRecords = (*RecordStore)(nil)
