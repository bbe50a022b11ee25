package memory

import (
	"context"
	"testing"

	"github.com/garyjia/billed/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordStore(t *testing.T) {
	store := NewRecordStore()
	ctx := context.Background()

	account := entity.Account{ID: "u1", Email: "a@a", Role: entity.RoleEmployee}
	require.NoError(t, store.InsertAccount(ctx, account))
	assert.ErrorIs(t, store.InsertAccount(ctx, account), entity.ErrAccountExists)
	got, ok, err := store.GetAccount(ctx, "a@a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, account, *got)

	bill := entity.Bill{ID: "b1", Status: entity.BillStatusPending}
	require.NoError(t, store.InsertBill(ctx, bill))
	assert.ErrorIs(t, store.InsertBill(ctx, bill), entity.ErrBillExists)

	listed, err := store.ListBills(ctx)
	require.NoError(t, err)
	listed[0].Name = "mutated"

	bill.Status = entity.BillStatusRefused
	require.NoError(t, store.UpdateBill(ctx, bill))
	assert.ErrorIs(t, store.UpdateBill(ctx, entity.Bill{ID: "missing"}), entity.ErrBillNotFound)

	listed, err = store.ListBills(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.Bill{bill}, listed)
}
