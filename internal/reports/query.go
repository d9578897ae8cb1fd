package reports

import "strings"

// Filter vocabularies for the report query surface.
const (
	GroupAll   = "all"
	GroupBuyer = "buyer"
	GroupMfg   = "mfg"

	DueAll     = "all"
	DueOverdue = "overdue"
	DueToday   = "dueToday"
	DueSoon    = "dueSoon"
	DueUnpaid  = "unpaid"

	StatusAll       = "all"
	StatusPaid      = "paid"
	StatusUnpaid    = "unpaid"
	StatusPending   = "pending"
	StatusCompleted = "completed"

	PaymentAll  = "all"
	PaymentCash = "cash"
	PaymentGST  = "gst"
)

// InvoiceQuery scopes an invoice report. All predicates are pure
// set-intersections evaluated against one reference date.
type InvoiceQuery struct {
	GroupBy     string `validate:"required,oneof=buyer mfg all"`
	Filter      string `validate:"required,oneof=all overdue dueToday dueSoon unpaid"`
	Status      string `validate:"required,oneof=all paid unpaid"`
	PaymentType string `validate:"required,oneof=all cash gst"`
	Buyer       string
	Mfg         string
}

// Normalize fills defaults and folds legacy spellings so validation and
// cache keys see one canonical form.
func (q InvoiceQuery) Normalize() InvoiceQuery {
	if q.GroupBy == "" {
		q.GroupBy = GroupAll
	}
	if q.Filter == "" {
		q.Filter = DueAll
	}
	if q.Filter == "UNPAID" {
		q.Filter = DueUnpaid
	}
	if q.Status == "" {
		q.Status = StatusAll
	}
	if q.PaymentType == "" {
		q.PaymentType = PaymentAll
	}
	q.PaymentType = strings.ToLower(q.PaymentType)
	return q
}

// OrderQuery scopes an order report.
type OrderQuery struct {
	GroupBy string `validate:"required,oneof=buyer mfg all"`
	Status  string `validate:"required,oneof=all pending completed"`
	Buyer   string
	Mfg     string
}

// Normalize fills defaults.
func (q OrderQuery) Normalize() OrderQuery {
	if q.GroupBy == "" {
		q.GroupBy = GroupAll
	}
	if q.Status == "" {
		q.Status = StatusAll
	}
	return q
}
