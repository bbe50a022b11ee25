package service

import (
	"context"
	"sort"

	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/internal/domain/entity"
)

// BillListPresenter loads and orders the signed-in employee's bills
type BillListPresenter interface {
	Load(ctx context.Context) entity.BillListView
	HandleClickNewBill()
	HandleClickIconEye(bill entity.Bill) entity.Lightbox
}

type billListPresenterImpl struct {
	store     port.RemoteStore
	navigator port.Navigator
	logger    Logger
}

// NewBillListPresenter creates a new BillListPresenter; store may be nil
func NewBillListPresenter(store port.RemoteStore, navigator port.Navigator, logger Logger) BillListPresenter {
	return &billListPresenterImpl{
		store:     store,
		navigator: navigator,
		logger:    logger,
	}
}

// Load fetches the bills. A failed fetch yields a view carrying only the error message.
func (p *billListPresenterImpl) Load(ctx context.Context) entity.BillListView {
	if p.store == nil {
		return entity.BillListView{}
	}

	bills, err := p.store.Bills().List(ctx)
	if err != nil {
		p.logger.Error("Failed to list bills", "error", err)
		return entity.BillListView{Error: err.Error()}
	}

	return entity.BillListView{Bills: SortAntiChrono(bills)}
}

// HandleClickNewBill opens the new bill form
func (p *billListPresenterImpl) HandleClickNewBill() {
	p.navigator.Navigate(entity.RouteNewBill)
}

// HandleClickIconEye returns the receipt preview of a bill
func (p *billListPresenterImpl) HandleClickIconEye(bill entity.Bill) entity.Lightbox {
	return entity.Lightbox{ImageURL: bill.FileURL, FileName: bill.FileName}
}

// SortAntiChrono orders bills most recent first by plain string comparison
// of their date. Dates are not parsed, so "fake date" sorts like any string.
func SortAntiChrono(bills []entity.Bill) []entity.Bill {
	sorted := append([]entity.Bill(nil), bills...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})
	return sorted
}
