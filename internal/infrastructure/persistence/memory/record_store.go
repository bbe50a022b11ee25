package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/internal/domain/entity"
)

// RecordStore keeps backend accounts and bills for the life of the process
type RecordStore struct {
	mu       sync.RWMutex
	accounts map[string]entity.Account
	bills    []entity.Bill
}

// NewRecordStore creates an empty store
func NewRecordStore() *RecordStore {
	return &RecordStore{accounts: make(map[string]entity.Account)}
}

// GetAccount returns the account registered under email
func (s *RecordStore) GetAccount(ctx context.Context, email string) (*entity.Account, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[email]
	if !ok {
		return nil, false, nil
	}
	return &account, true, nil
}

// InsertAccount adds a new account
func (s *RecordStore) InsertAccount(ctx context.Context, account entity.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[account.Email]; exists {
		return fmt.Errorf("%w: %s", entity.ErrAccountExists, account.Email)
	}
	s.accounts[account.Email] = account
	return nil
}

// ListBills returns a copy of every bill
func (s *RecordStore) ListBills(ctx context.Context) ([]entity.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Bill(nil), s.bills...), nil
}

// InsertBill appends a bill
func (s *RecordStore) InsertBill(ctx context.Context, bill entity.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.bills {
		if existing.ID == bill.ID {
			return fmt.Errorf("%w: %s", entity.ErrBillExists, bill.ID)
		}
	}
	s.bills = append(s.bills, bill)
	return nil
}

// UpdateBill replaces the bill with the same id
func (s *RecordStore) UpdateBill(ctx context.Context, bill entity.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bills {
		if s.bills[i].ID == bill.ID {
			s.bills[i] = bill
			return nil
		}
	}
	return fmt.Errorf("%w: %s", entity.ErrBillNotFound, bill.ID)
}

var _ port.BackendRecords = (*RecordStore)(nil)
