package memstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/garyjia/billed/internal/domain/entity"
	"github.com/garyjia/billed/internal/infrastructure/persistence/memory"
	"github.com/garyjia/billed/internal/infrastructure/persistence/sqlite"
	"github.com/garyjia/billed/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestStore(t *testing.T, seed bool) (*Store, *memory.KVStore) {
	t.Helper()
	kv := memory.NewKVStore()
	store, err := New(context.Background(), testConfig(seed), kv, nil, zap.NewNop())
	require.NoError(t, err)
	return store, kv
}

func testConfig(seed bool) Config {
	return Config{
		JWTSecret:     "test-secret",
		TokenDuration: time.Hour,
		BcryptCost:    bcrypt.MinCost,
		Seed:          seed,
	}
}

func login(t *testing.T, store *Store, kv *memory.KVStore, email, password string) {
	t.Helper()
	res, err := store.Login(context.Background(), entity.Credentials{Email: email, Password: password})
	require.NoError(t, err)
	require.NoError(t, kv.SetItem(entity.StorageKeyJWT, res.JWT))
}

func TestNew_RequiresSecret(t *testing.T) {
	_, err := New(context.Background(), Config{}, memory.NewKVStore(), nil, zap.NewNop())
	assert.Error(t, err)
}

func TestStore_LoginAndRegister(t *testing.T) {
	store, _ := newTestStore(t, false)
	ctx := context.Background()
	creds := entity.Credentials{Email: "new@test.tld", Password: "secret"}

	_, err := store.Login(ctx, creds)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	user := entity.NewUser{Type: entity.RoleEmployee, Name: "new", Email: creds.Email, Password: creds.Password}
	require.NoError(t, store.Users().Create(ctx, user))
	assert.ErrorIs(t, store.Users().Create(ctx, user), ErrEmailExists)

	res, err := store.Login(ctx, creds)
	require.NoError(t, err)
	assert.NotEmpty(t, res.JWT)

	claims, err := store.tokens.validate(res.JWT)
	require.NoError(t, err)
	assert.Equal(t, "new@test.tld", claims.Email)
	assert.Equal(t, entity.RoleEmployee, claims.Role)

	_, err = store.Login(ctx, entity.Credentials{Email: creds.Email, Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestStore_RegisterRejectsUnknownRole(t *testing.T) {
	store, _ := newTestStore(t, false)
	err := store.Users().Create(context.Background(), entity.NewUser{Type: entity.Role("Manager"), Email: "m@test.tld"})
	assert.ErrorIs(t, err, entity.ErrInvalidRole)
}

func TestStore_ListByRole(t *testing.T) {
	store, kv := newTestStore(t, true)
	ctx := context.Background()

	_, err := store.Bills().List(ctx)
	assert.ErrorIs(t, err, ErrMissingToken)

	require.NoError(t, kv.SetItem(entity.StorageKeyJWT, "garbage"))
	_, err = store.Bills().List(ctx)
	assert.ErrorIs(t, err, ErrInvalidToken)

	login(t, store, kv, DemoEmployeeEmail, DemoEmployeePassword)
	bills, err := store.Bills().List(ctx)
	require.NoError(t, err)
	assert.Len(t, bills, 4)

	require.NoError(t, store.Users().Create(ctx, entity.NewUser{Type: entity.RoleEmployee, Email: "other@test.tld", Password: "x"}))
	login(t, store, kv, "other@test.tld", "x")
	bills, err = store.Bills().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, bills)

	login(t, store, kv, DemoAdminEmail, DemoAdminPassword)
	bills, err = store.Bills().List(ctx)
	require.NoError(t, err)
	assert.Len(t, bills, 4)
}

func TestStore_CreateAndUpdate(t *testing.T) {
	store, kv := newTestStore(t, false)
	ctx := context.Background()
	require.NoError(t, store.Users().Create(ctx, entity.NewUser{Type: entity.RoleEmployee, Email: "a@a", Password: "a"}))
	login(t, store, kv, "a@a", "a")

	draft := &entity.Draft{File: &entity.ReceiptFile{Name: "receipt.png", MediaType: "image/png"}}
	draft.Append(entity.FieldName, "Vol")
	draft.Append(entity.FieldAmount, "348")
	draft.Append(entity.FieldStatus, "pending")

	res, err := store.Bills().Create(ctx, draft)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Key)
	assert.Contains(t, res.FileURL, "receipt.png")

	bills, err := store.Bills().List(ctx)
	require.NoError(t, err)
	require.Len(t, bills, 1)
	bill := bills[0]
	assert.Equal(t, res.Key, bill.ID)
	assert.Equal(t, "a@a", bill.Email)
	assert.Equal(t, entity.FlexString("348"), bill.Amount)
	assert.Equal(t, entity.BillStatusPending, bill.Status)

	bill.Status = entity.BillStatusAccepted
	bill.CommentAdmin = "ok"
	updated, err := store.Bills().Update(ctx, &bill, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BillStatusAccepted, updated.Status)

	bills, _ = store.Bills().List(ctx)
	assert.Equal(t, "ok", bills[0].CommentAdmin)

	_, err = store.Bills().Update(ctx, &bill, "missing")
	assert.ErrorIs(t, err, ErrBillNotFound)
}

func TestStore_CreateRejectsUnknownStatus(t *testing.T) {
	store, kv := newTestStore(t, true)
	login(t, store, kv, DemoEmployeeEmail, DemoEmployeePassword)

	draft := &entity.Draft{}
	draft.Append(entity.FieldStatus, "archived")

	_, err := store.Bills().Create(context.Background(), draft)
	assert.ErrorIs(t, err, entity.ErrInvalidStatus)
}

func TestStore_SqliteRecordsSurviveRestart(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	path := filepath.Join(t.TempDir(), "billed.db")

	open := func() (*Store, *memory.KVStore) {
		db, err := database.New(database.DefaultConfig(path), logger)
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		records, err := sqlite.NewRecordStore(ctx, db, logger)
		require.NoError(t, err)

		kv := memory.NewKVStore()
		store, err := New(ctx, testConfig(true), kv, records, logger)
		require.NoError(t, err)
		return store, kv
	}

	first, kv := open()
	login(t, first, kv, DemoEmployeeEmail, DemoEmployeePassword)
	draft := &entity.Draft{}
	draft.Append(entity.FieldName, "train")
	draft.Append(entity.FieldDate, "2024-05-01")
	draft.Append(entity.FieldStatus, "pending")
	created, err := first.Bills().Create(ctx, draft)
	require.NoError(t, err)

	login(t, first, kv, DemoAdminEmail, DemoAdminPassword)
	bills, err := first.Bills().List(ctx)
	require.NoError(t, err)
	require.Len(t, bills, 5)
	decided := bills[0]
	require.Equal(t, "47qAXb6fIm2zOKkLzMro", decided.ID)
	decided.Status = entity.BillStatusAccepted
	decided.CommentAdmin = "ok"
	_, err = first.Bills().Update(ctx, &decided, decided.ID)
	require.NoError(t, err)

	second, kv := open()
	login(t, second, kv, DemoAdminEmail, DemoAdminPassword)
	bills, err = second.Bills().List(ctx)
	require.NoError(t, err)
	require.Len(t, bills, 5, "seeding again must not duplicate bills")
	assert.Equal(t, entity.BillStatusAccepted, bills[0].Status)
	assert.Equal(t, "ok", bills[0].CommentAdmin)
	assert.Equal(t, created.Key, bills[4].ID)
	assert.Equal(t, "train", bills[4].Name)

	require.NoError(t, second.Users().Create(ctx, entity.NewUser{Type: entity.RoleEmployee, Email: "late@test.tld", Password: "x"}))
	third, kv := open()
	login(t, third, kv, "late@test.tld", "x")
}
