package port

import (
	"context"

	"github.com/garyjia/billed/internal/domain/entity"
)

// BackendRecords persists the accounts and bills of the in-process backend
type BackendRecords interface {
	// GetAccount looks an account up by normalized email; ok is false when absent
	GetAccount(ctx context.Context, email string) (account *entity.Account, ok bool, err error)
	// InsertAccount fails with entity.ErrAccountExists for a taken email
	InsertAccount(ctx context.Context, account entity.Account) error
	// ListBills returns every bill in insertion order
	ListBills(ctx context.Context) ([]entity.Bill, error)
	// InsertBill fails with entity.ErrBillExists for a taken id
	InsertBill(ctx context.Context, bill entity.Bill) error
	// UpdateBill replaces the bill with the same id, or fails with entity.ErrBillNotFound
	UpdateBill(ctx context.Context, bill entity.Bill) error
}
