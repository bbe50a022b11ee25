package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BillListView is what the employee bill list renders
type BillListView struct {
	Loading bool
	Error   string
	Bills   []Bill
}

// HasError reports whether the error region replaces the list
func (v BillListView) HasError() bool {
	return v.Error != ""
}

// Lightbox is the receipt preview bound to a bill's file
type Lightbox struct {
	ImageURL string
	FileName string
}

// StatusGroup is one collapsible card of the admin dashboard
type StatusGroup struct {
	Index    int
	Status   BillStatus
	Count    int
	Total    decimal.Decimal
	Expanded bool
	Bills    []Bill
}

// Heading returns the group title with its live count
func (g StatusGroup) Heading() string {
	return fmt.Sprintf("%s (%d)", g.Status.Label(), g.Count)
}

// ArrowID returns the identifier of the group's toggle
func (g StatusGroup) ArrowID() string {
	return fmt.Sprintf("%s%d", IDArrowIconPrefix, g.Index)
}

// ContainerID returns the identifier of the group's row container
func (g StatusGroup) ContainerID() string {
	return fmt.Sprintf("%s%d", IDContainerPrefix, g.Index)
}

// OpenBillID returns the identifier of a bill's detail trigger
func OpenBillID(billID string) string {
	return IDOpenBillPrefix + billID
}

// BillDetail is the admin decision form for one bill
type BillDetail struct {
	Bill      Bill
	Group     int
	Preview   Lightbox
	Decidable bool
}

// DashboardView is the full admin dashboard state handed to a renderer.
// When the last fetch failed, Error replaces the whole dashboard.
type DashboardView struct {
	Error  string
	Groups []StatusGroup
	Detail *BillDetail
}

// HasError reports whether the error page replaces the dashboard
func (v DashboardView) HasError() bool {
	return v.Error != ""
}

// ShowsBigIcon reports whether the default status icon is shown instead of a form
func (v DashboardView) ShowsBigIcon() bool {
	return v.Detail == nil
}
