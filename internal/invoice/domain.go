package invoice

import (
	"strings"
	"time"
)

// Status enumerates invoice payment statuses.
type Status string

const (
	StatusPaid   Status = "PAID"
	StatusUnpaid Status = "UNPAID"
	StatusReturn Status = "RETURN"
)

// Payment types carried on invoices. Upstream records mix casing
// ("Cash", "cash", "GST"), so comparisons are always case-insensitive.
const (
	PaymentCash = "Cash"
	PaymentGST  = "GST"
)

// Invoice is one sales/purchase instrument as delivered by the document
// store. Dates are DD-MM-YYYY strings; ageing is a signed day count
// (positive = days overdue, zero or negative = days until due).
type Invoice struct {
	ID          string  `json:"id"`
	Number      string  `json:"invoice"`
	Date        string  `json:"date"`
	Buyer       string  `json:"buyer"`
	Mfg         string  `json:"mfg"`
	Amount      float64 `json:"amount"`
	Due         string  `json:"due"`
	Status      Status  `json:"status"`
	Ageing      int     `json:"ageing"`
	IsReturn    bool    `json:"isReturn,omitempty"`
	PaymentType string  `json:"payment_type,omitempty"`
}

// Overdue is the single source of truth for overdue-ness. Every view,
// report and export derives it from here.
func (inv Invoice) Overdue() bool {
	return inv.Ageing > 0 && inv.Status == StatusUnpaid
}

// HasPaymentType compares the payment type case-insensitively.
func (inv Invoice) HasPaymentType(pt string) bool {
	return strings.EqualFold(inv.PaymentType, pt)
}

// DueDate parses the due field. Malformed dates report ok=false and are
// treated as non-matching by every date-dependent predicate.
func (inv Invoice) DueDate() (time.Time, bool) {
	return ParseDMY(inv.Due)
}

// DueToday reports whether the invoice falls due on the reference date.
func (inv Invoice) DueToday(today time.Time) bool {
	due, ok := inv.DueDate()
	return ok && due.Equal(today)
}

// DaysUntilDue returns whole days between the reference date and the due
// date (negative when past due). ok is false when the due date is malformed.
func (inv Invoice) DaysUntilDue(today time.Time) (int, bool) {
	due, ok := inv.DueDate()
	if !ok {
		return 0, false
	}
	return int(due.Sub(today).Hours() / 24), true
}

// DueSoon reports whether the invoice falls due within the 1-3 day window.
func (inv Invoice) DueSoon(today time.Time) bool {
	days, ok := inv.DaysUntilDue(today)
	return ok && days >= 1 && days <= 3
}

// CreditPeriodDays is the day span between issue and due dates, as shown
// on exported rows. Zero when either date is malformed.
func (inv Invoice) CreditPeriodDays() int {
	issued, ok := ParseDMY(inv.Date)
	if !ok {
		return 0
	}
	due, ok := inv.DueDate()
	if !ok {
		return 0
	}
	days := int(due.Sub(issued).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}

// ParseDMY parses a DD-MM-YYYY date into a midnight-normalized UTC time.
func ParseDMY(s string) (time.Time, bool) {
	t, err := time.Parse("02-01-2006", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Midnight truncates t to its calendar date in UTC. All predicates inside
// one aggregation call must share a single reference date from here.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
