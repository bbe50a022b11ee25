package memstore

import (
	"context"
	"fmt"

	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/internal/domain/entity"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type billCollection struct {
	store *Store
}

// List returns the caller's bills, or every bill for an admin
func (b *billCollection) List(ctx context.Context) ([]entity.Bill, error) {
	claims, err := b.store.caller()
	if err != nil {
		return nil, err
	}

	all, err := b.store.records.ListBills(ctx)
	if err != nil {
		return nil, err
	}

	bills := make([]entity.Bill, 0, len(all))
	for _, bill := range all {
		if claims.Role == entity.RoleAdmin || normalizeEmail(bill.Email) == claims.Email {
			bills = append(bills, bill)
		}
	}
	return bills, nil
}

// Create stores the draft as a new bill owned by the caller
func (b *billCollection) Create(ctx context.Context, draft *entity.Draft) (*entity.CreateResult, error) {
	claims, err := b.store.caller()
	if err != nil {
		return nil, err
	}

	bill, err := billFromDraft(draft)
	if err != nil {
		return nil, err
	}
	if bill.Email == "" {
		bill.Email = claims.Email
	}
	bill.ID = uuid.NewString()
	if draft.File != nil {
		bill.FileName = draft.File.Name
		bill.FileURL = fmt.Sprintf("memory://receipts/%s/%s", bill.ID, draft.File.Name)
	}

	if err := b.store.records.InsertBill(ctx, bill); err != nil {
		return nil, err
	}

	b.store.logger.Info("Bill stored", zap.String("id", bill.ID), zap.String("email", bill.Email))
	return &entity.CreateResult{Key: bill.ID, FileURL: bill.FileURL}, nil
}

// Update replaces the bill identified by selector
func (b *billCollection) Update(ctx context.Context, bill *entity.Bill, selector string) (*entity.Bill, error) {
	if _, err := b.store.caller(); err != nil {
		return nil, err
	}

	updated := *bill
	updated.ID = selector
	if err := b.store.records.UpdateBill(ctx, updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

type userCollection struct {
	store *Store
}

// Create registers a user
func (u *userCollection) Create(ctx context.Context, newUser entity.NewUser) error {
	return u.store.register(ctx, newUser)
}

func billFromDraft(draft *entity.Draft) (entity.Bill, error) {
	get := func(name string) string {
		v, _ := draft.Get(name)
		return v
	}

	status := entity.BillStatusPending
	if raw, ok := draft.Get(entity.FieldStatus); ok && raw != "" {
		parsed, err := entity.ParseBillStatus(raw)
		if err != nil {
			return entity.Bill{}, err
		}
		status = parsed
	}

	return entity.Bill{
		Email:      get(entity.FieldEmail),
		Type:       get(entity.FieldType),
		Name:       get(entity.FieldName),
		Amount:     entity.FlexString(get(entity.FieldAmount)),
		Date:       get(entity.FieldDate),
		VAT:        entity.FlexString(get(entity.FieldVAT)),
		Pct:        entity.FlexString(get(entity.FieldPct)),
		Commentary: get(entity.FieldCommentary),
		Status:     status,
	}, nil
}

var (
	_ port.BillCollection = (*billCollection)(nil)
	_ port.UserCollection = (*userCollection)(nil)
)
