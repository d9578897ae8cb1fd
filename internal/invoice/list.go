package invoice

import (
	"sort"
	"strings"
	"time"
)

// List filter vocabularies, mirroring the dashboard's invoice view.
const (
	FilterAll = "ALL"

	StatusFilterOther = "OTHER"

	DueFilterOverdue  = "OVERDUE"
	DueFilterToday    = "DUE_TODAY"
	DueFilterSoon     = "DUE_1_3_DAYS"
	DueFilterUnpaid   = "UNPAID"
	AgeingOverdue     = "OVERDUE"
	AgeingUpcoming    = "UPCOMING"
	PaymentFilterAll  = "all"
	PaymentFilterCash = "cash"
	PaymentFilterGST  = "gst"
)

// ListFilter narrows the invoice list view. Zero values mean "no filter".
type ListFilter struct {
	Search      string
	Status      string // ALL | PAID | UNPAID | RETURN | OTHER
	DueDate     string // ALL | OVERDUE | DUE_TODAY | DUE_1_3_DAYS | UNPAID
	AgeingType  string // ALL | OVERDUE | UPCOMING
	PaymentType string // all | cash | gst
	Buyer       string
	Mfg         string
}

// Apply evaluates every predicate against the same reference date and
// returns the surviving invoices, overdue first then by due date.
func (f ListFilter) Apply(invoices []Invoice, today time.Time) []Invoice {
	matched := make([]Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if f.matches(inv, today) {
			matched = append(matched, inv)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.Overdue() != b.Overdue() {
			return a.Overdue()
		}
		return dueSortKey(a) < dueSortKey(b)
	})
	return matched
}

func (f ListFilter) matches(inv Invoice, today time.Time) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(inv.Buyer), needle) &&
			!strings.Contains(strings.ToLower(inv.Number), needle) &&
			!strings.Contains(strings.ToLower(inv.Mfg), needle) {
			return false
		}
	}

	switch f.Status {
	case "", FilterAll:
	case StatusFilterOther:
		known := inv.Status == StatusPaid || inv.Status == StatusUnpaid || inv.Status == StatusReturn
		if known || inv.IsReturn {
			return false
		}
	case string(StatusReturn):
		if !inv.IsReturn {
			return false
		}
	default:
		if inv.Status != Status(f.Status) {
			return false
		}
	}

	if f.DueDate != "" && f.DueDate != FilterAll {
		if _, ok := inv.DueDate(); !ok {
			return false
		}
		switch f.DueDate {
		case DueFilterOverdue:
			if !inv.Overdue() {
				return false
			}
		case DueFilterToday:
			if !inv.DueToday(today) {
				return false
			}
		case DueFilterSoon:
			if days, ok := inv.DaysUntilDue(today); !ok || days < 1 || days > 3 {
				return false
			}
		case DueFilterUnpaid:
			if inv.Status != StatusUnpaid {
				return false
			}
		}
	}

	switch f.AgeingType {
	case AgeingOverdue:
		if !inv.Overdue() {
			return false
		}
	case AgeingUpcoming:
		if inv.Ageing > 0 || inv.Status != StatusUnpaid {
			return false
		}
	}

	switch f.PaymentType {
	case PaymentFilterCash:
		if !inv.HasPaymentType(PaymentCash) {
			return false
		}
	case PaymentFilterGST:
		if !inv.HasPaymentType(PaymentGST) {
			return false
		}
	}

	if f.Buyer != "" && inv.Buyer != f.Buyer {
		return false
	}
	if f.Mfg != "" && inv.Mfg != f.Mfg {
		return false
	}
	return true
}

// dueSortKey reorders DD-MM-YYYY into YYYY-MM-DD so lexicographic compare
// matches chronological order; malformed dates sort first.
func dueSortKey(inv Invoice) string {
	parts := strings.Split(inv.Due, "-")
	if len(parts) != 3 {
		return ""
	}
	return parts[2] + "-" + parts[1] + "-" + parts[0]
}
