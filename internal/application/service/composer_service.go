package service

import (
	"context"
	"fmt"

	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/internal/domain/entity"
)

// BillComposer drafts and submits one new bill
type BillComposer interface {
	OnFileChange(ctx context.Context, input *entity.FileInput) error
	OnSubmit(ctx context.Context, form entity.NewBillForm) error
	BillID() string
	Draft() entity.Draft
}

// ComposerDeps groups the collaborators of a BillComposer
type ComposerDeps struct {
	Navigator port.Navigator
	Store     port.RemoteStore
	Storage   port.KeyValueStore
	Alerter   port.Alerter
	Logger    Logger
}

type billComposerImpl struct {
	navigator port.Navigator
	store     port.RemoteStore
	storage   port.KeyValueStore
	alerter   port.Alerter
	logger    Logger

	draft  entity.Draft
	billID string
}

// NewBillComposer creates a composer with an empty draft
func NewBillComposer(deps ComposerDeps) BillComposer {
	return &billComposerImpl{
		navigator: deps.Navigator,
		store:     deps.Store,
		storage:   deps.Storage,
		alerter:   deps.Alerter,
		logger:    deps.Logger,
	}
}

// OnFileChange validates the selected receipt and attaches it to the draft.
// A rejected file resets the input and leaves the draft untouched.
func (c *billComposerImpl) OnFileChange(ctx context.Context, input *entity.FileInput) error {
	if len(input.Files) == 0 {
		return nil
	}
	file := input.Files[0]

	if !entity.AcceptedReceiptTypes[file.MediaType] {
		c.alerter.Alert(entity.FileTypeErrorMessage)
		c.logger.Info(entity.FileTypeErrorMessage, "file", file.Name, "media_type", file.MediaType)
		input.Reset()
		return fmt.Errorf("%w: %s", entity.ErrUnsupportedFileType, file.MediaType)
	}

	c.draft.SetFile(file)
	c.logger.Info("Receipt attached", "file", file.Name, "media_type", file.MediaType, "size", len(file.Content))
	return nil
}

// OnSubmit sends the draft with the form fields and a pending status.
// A missing receipt is left for the server to reject.
func (c *billComposerImpl) OnSubmit(ctx context.Context, form entity.NewBillForm) error {
	if c.store == nil {
		return ErrNoRemoteStore
	}

	session, err := LoadSession(c.storage)
	if err != nil {
		return err
	}

	payload := &entity.Draft{File: c.draft.File}
	payload.Append(entity.FieldEmail, session.Email)
	payload.Append(entity.FieldType, form.Type)
	payload.Append(entity.FieldName, form.Name)
	payload.Append(entity.FieldAmount, form.Amount)
	payload.Append(entity.FieldDate, form.Date)
	payload.Append(entity.FieldVAT, form.VAT)
	payload.Append(entity.FieldPct, form.Pct)
	payload.Append(entity.FieldCommentary, form.Commentary)
	payload.Append(entity.FieldStatus, entity.BillStatusPending.String())

	res, err := c.store.Bills().Create(ctx, payload)
	if err != nil {
		c.logger.Error("Failed to create bill", "email", session.Email, "error", err)
		return fmt.Errorf("failed to create bill: %w", err)
	}

	c.billID = res.Key
	c.draft.Reset()
	c.logger.Info("Bill created", "id", res.Key, "email", session.Email)
	c.navigator.Navigate(entity.RouteBills)
	return nil
}

// BillID returns the identifier assigned to the last submitted bill
func (c *billComposerImpl) BillID() string {
	return c.billID
}

// Draft returns a copy of the pending payload
func (c *billComposerImpl) Draft() entity.Draft {
	d := entity.Draft{File: c.draft.File}
	d.Fields = append(d.Fields, c.draft.Fields...)
	return d
}
