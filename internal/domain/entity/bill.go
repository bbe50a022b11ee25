package entity

import (
	"encoding/json"
	"fmt"
	"strings"
)

// BillStatus is the approval status of a bill
type BillStatus string

const (
	BillStatusPending  BillStatus = "pending"
	BillStatusAccepted BillStatus = "accepted"
	BillStatusRefused  BillStatus = "refused"
)

// BillStatuses lists every status in dashboard order
var BillStatuses = []BillStatus{BillStatusPending, BillStatusAccepted, BillStatusRefused}

// ParseBillStatus validates a raw status coming from the remote store
func ParseBillStatus(s string) (BillStatus, error) {
	switch status := BillStatus(strings.TrimSpace(s)); status {
	case BillStatusPending, BillStatusAccepted, BillStatusRefused:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// String returns the string representation of the status
func (s BillStatus) String() string {
	return string(s)
}

// Label returns the French heading used by the dashboard
func (s BillStatus) Label() string {
	switch s {
	case BillStatusPending:
		return "En attente"
	case BillStatusAccepted:
		return "Validé"
	case BillStatusRefused:
		return "Refusé"
	default:
		return string(s)
	}
}

// UnmarshalJSON rejects unknown statuses at the decoding boundary
func (s *BillStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, string(data))
	}
	status, err := ParseBillStatus(raw)
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// FlexString is a text field that the backend may send as a JSON number
type FlexString string

// UnmarshalJSON accepts both strings and numbers
func (f *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(data))
	}
	*f = FlexString(n.String())
	return nil
}

// String returns the raw text
func (f FlexString) String() string {
	return string(f)
}

// Bill is one expense report record
type Bill struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Type         string     `json:"type"`
	Name         string     `json:"name"`
	Amount       FlexString `json:"amount"`
	Date         string     `json:"date"`
	VAT          FlexString `json:"vat"`
	Pct          FlexString `json:"pct"`
	Commentary   string     `json:"commentary"`
	CommentAdmin string     `json:"commentAdmin,omitempty"`
	Status       BillStatus `json:"status"`
	FileName     string     `json:"fileName"`
	FileURL      string     `json:"fileUrl"`
}

// IsPending reports whether the bill still awaits an admin decision
func (b *Bill) IsPending() bool {
	return b.Status == BillStatusPending
}
