package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/internal/domain/entity"
	"github.com/garyjia/billed/internal/domain/workflow"
	"github.com/shopspring/decimal"
)

var (
	// ErrUnknownGroup is returned when a group index does not match a status card
	ErrUnknownGroup = errors.New("unknown status group")

	// ErrBillNotVisible is returned when a bill is opened while its group is collapsed
	ErrBillNotVisible = errors.New("bill is not displayed")

	// ErrNoExporter is returned by ExportBills when no exporter is configured
	ErrNoExporter = errors.New("bill exporter not configured")
)

// DashboardController holds the admin dashboard selection state
type DashboardController interface {
	GetAllBills(ctx context.Context) ([]entity.Bill, error)
	ToggleGroup(ctx context.Context, index int) error
	OpenBillDetail(ctx context.Context, bill entity.Bill) error
	AcceptBill(ctx context.Context, bill entity.Bill, comment string) error
	RefuseBill(ctx context.Context, bill entity.Bill, comment string) error
	UpdateBill(ctx context.Context, bill *entity.Bill)
	FindBill(id string) (entity.Bill, bool)
	View() entity.DashboardView
	ExportBills(ctx context.Context, outputPath string) error
}

// DashboardDeps groups the collaborators of a DashboardController.
// Store and Exporter may be nil.
type DashboardDeps struct {
	Navigator port.Navigator
	Store     port.RemoteStore
	Exporter  port.BillExporter
	Logger    Logger
}

type dashboardControllerImpl struct {
	navigator port.Navigator
	store     port.RemoteStore
	exporter  port.BillExporter
	logger    Logger

	bills     []entity.Bill
	groups    map[int]workflow.StateMachine
	loadError string

	detail     workflow.StateMachine
	openBillID string
	openGroup  int
}

// NewDashboardController creates a controller with every group collapsed
func NewDashboardController(deps DashboardDeps, bills []entity.Bill) DashboardController {
	groups := make(map[int]workflow.StateMachine, len(entity.BillStatuses))
	for i := range entity.BillStatuses {
		groups[i+1] = workflow.NewGroupMachine()
	}
	return &dashboardControllerImpl{
		navigator: deps.Navigator,
		store:     deps.Store,
		exporter:  deps.Exporter,
		logger:    deps.Logger,
		bills:     append([]entity.Bill(nil), bills...),
		groups:    groups,
		detail:    workflow.NewDetailMachine(),
	}
}

// GroupByStatus returns the bills with the given status, in input order
func GroupByStatus(bills []entity.Bill, status entity.BillStatus) []entity.Bill {
	var filtered []entity.Bill
	for _, b := range bills {
		if b.Status == status {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

// SummaryCards builds one collapsed group per status, numbered from 1.
// Amounts that are not numbers are left out of the total.
func SummaryCards(bills []entity.Bill) []entity.StatusGroup {
	groups := make([]entity.StatusGroup, 0, len(entity.BillStatuses))
	for i, status := range entity.BillStatuses {
		members := GroupByStatus(bills, status)
		total := decimal.Zero
		for _, b := range members {
			if amount, err := decimal.NewFromString(strings.TrimSpace(b.Amount.String())); err == nil {
				total = total.Add(amount)
			}
		}
		groups = append(groups, entity.StatusGroup{
			Index:  i + 1,
			Status: status,
			Count:  len(members),
			Total:  total,
		})
	}
	return groups
}

// GetAllBills loads every bill into the controller. Without a remote store
// it does nothing. A failed fetch keeps the current bills and puts the view
// in its error state until the next successful fetch.
func (d *dashboardControllerImpl) GetAllBills(ctx context.Context) ([]entity.Bill, error) {
	if d.store == nil {
		return nil, nil
	}

	bills, err := d.store.Bills().List(ctx)
	if err != nil {
		d.logger.Error("Failed to list bills", "error", err)
		d.loadError = err.Error()
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	d.bills = bills
	d.loadError = ""
	d.logger.Info("Dashboard bills loaded", "count", len(bills))
	return bills, nil
}

// ToggleGroup expands or collapses a group. Collapsing closes a detail
// opened from that group.
func (d *dashboardControllerImpl) ToggleGroup(ctx context.Context, index int) error {
	machine, ok := d.groups[index]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownGroup, index)
	}
	if err := machine.Fire(ctx, workflow.TriggerToggle); err != nil {
		return err
	}

	if machine.State() == workflow.StateCollapsed && d.openGroup == index {
		d.closeDetail(ctx, workflow.TriggerClose)
	}
	return nil
}

// OpenBillDetail shows the decision form of a displayed bill. Opening the
// bill already shown goes back to the default view.
func (d *dashboardControllerImpl) OpenBillDetail(ctx context.Context, bill entity.Bill) error {
	index := groupIndex(bill.Status)
	if machine, ok := d.groups[index]; !ok || machine.State() != workflow.StateExpanded {
		return fmt.Errorf("%w: %s", ErrBillNotVisible, bill.ID)
	}

	if d.detail.State() == workflow.StateDetailForm {
		if d.openBillID == bill.ID {
			d.closeDetail(ctx, workflow.TriggerClose)
			return nil
		}
		d.openBillID = bill.ID
		d.openGroup = index
		return nil
	}

	if err := d.detail.Fire(ctx, workflow.TriggerOpen); err != nil {
		return err
	}
	d.openBillID = bill.ID
	d.openGroup = index
	return nil
}

// AcceptBill marks a pending bill as accepted and returns to the dashboard
func (d *dashboardControllerImpl) AcceptBill(ctx context.Context, bill entity.Bill, comment string) error {
	return d.decide(ctx, bill, comment, workflow.TriggerAccept)
}

// RefuseBill marks a pending bill as refused and returns to the dashboard
func (d *dashboardControllerImpl) RefuseBill(ctx context.Context, bill entity.Bill, comment string) error {
	return d.decide(ctx, bill, comment, workflow.TriggerRefuse)
}

func (d *dashboardControllerImpl) decide(ctx context.Context, bill entity.Bill, comment string, trigger workflow.Trigger) error {
	lifecycle, err := workflow.NewBillMachine(bill.Status)
	if err != nil {
		return err
	}
	if err := lifecycle.Fire(ctx, trigger); err != nil {
		return fmt.Errorf("bill %s: %w", bill.ID, err)
	}

	updated := bill
	updated.Status = entity.BillStatus(lifecycle.State())
	updated.CommentAdmin = comment

	d.UpdateBill(ctx, &updated)
	d.replaceBill(updated)

	if d.openBillID == bill.ID {
		d.closeDetail(ctx, trigger)
	}
	d.navigator.Navigate(entity.RouteDashboard)
	return nil
}

// UpdateBill sends the bill to the remote store. Without a store it does
// nothing. Failures are logged only; the admin is not told.
func (d *dashboardControllerImpl) UpdateBill(ctx context.Context, bill *entity.Bill) {
	if d.store == nil {
		return
	}
	if _, err := d.store.Bills().Update(ctx, bill, bill.ID); err != nil {
		d.logger.Error("Failed to update bill", "id", bill.ID, "status", bill.Status.String(), "error", err)
		return
	}
	d.logger.Info("Bill updated", "id", bill.ID, "status", bill.Status.String())
}

// FindBill looks a bill up by identifier
func (d *dashboardControllerImpl) FindBill(id string) (entity.Bill, bool) {
	for _, b := range d.bills {
		if b.ID == id {
			return b, true
		}
	}
	return entity.Bill{}, false
}

// View returns the dashboard state for rendering
func (d *dashboardControllerImpl) View() entity.DashboardView {
	if d.loadError != "" {
		return entity.DashboardView{Error: d.loadError}
	}

	groups := SummaryCards(d.bills)
	for i := range groups {
		if d.groups[groups[i].Index].State() == workflow.StateExpanded {
			groups[i].Expanded = true
			groups[i].Bills = GroupByStatus(d.bills, groups[i].Status)
		}
	}

	view := entity.DashboardView{Groups: groups}
	if d.detail.State() == workflow.StateDetailForm {
		if bill, ok := d.FindBill(d.openBillID); ok {
			view.Detail = &entity.BillDetail{
				Bill:      bill,
				Group:     d.openGroup,
				Preview:   entity.Lightbox{ImageURL: bill.FileURL, FileName: bill.FileName},
				Decidable: bill.IsPending(),
			}
		}
	}
	return view
}

// ExportBills writes every group with all of its bills, expanded or not
func (d *dashboardControllerImpl) ExportBills(ctx context.Context, outputPath string) error {
	if d.exporter == nil {
		return ErrNoExporter
	}

	groups := SummaryCards(d.bills)
	for i := range groups {
		groups[i].Bills = GroupByStatus(d.bills, groups[i].Status)
	}

	if err := d.exporter.Export(ctx, groups, outputPath); err != nil {
		d.logger.Error("Failed to export bills", "path", outputPath, "error", err)
		return fmt.Errorf("failed to export bills: %w", err)
	}
	d.logger.Info("Bills exported", "path", outputPath, "count", len(d.bills))
	return nil
}

func (d *dashboardControllerImpl) closeDetail(ctx context.Context, trigger workflow.Trigger) {
	if d.detail.State() != workflow.StateDetailForm {
		return
	}
	if err := d.detail.Fire(ctx, trigger); err != nil {
		d.logger.Error("Unexpected detail transition", "trigger", trigger.String(), "error", err)
		return
	}
	d.openBillID = ""
	d.openGroup = 0
}

func (d *dashboardControllerImpl) replaceBill(bill entity.Bill) {
	for i := range d.bills {
		if d.bills[i].ID == bill.ID {
			d.bills[i] = bill
			return
		}
	}
}

func groupIndex(status entity.BillStatus) int {
	for i, s := range entity.BillStatuses {
		if s == status {
			return i + 1
		}
	}
	return 0
}
