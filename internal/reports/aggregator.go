package reports

import (
	"sort"
	"time"

	"github.com/textilehub/textilehub/internal/invoice"
	"github.com/textilehub/textilehub/internal/sauda"
)

// InvoiceGroup is one firm's slice of an invoice report. DueToday and
// DueSoon only count unpaid invoices; a paid invoice due today is not a
// collection concern.
type InvoiceGroup struct {
	Buyer         string            `json:"buyer"`
	Mfg           string            `json:"mfg"`
	TotalInvoices int               `json:"totalInvoices"`
	TotalAmount   float64           `json:"totalAmount"`
	TotalPaid     float64           `json:"totalPaid"`
	TotalUnpaid   float64           `json:"totalUnpaid"`
	OverdueAmount float64           `json:"overdueAmount"`
	DueToday      float64           `json:"dueToday"`
	DueSoon       float64           `json:"dueSoon"`
	Invoices      []invoice.Invoice `json:"invoices"`
}

// InvoiceSummary rolls the groups up. Overdue, due-today and due-soon
// totals are summed from the buyer partition only; every invoice lives in
// exactly one buyer group, so the sum counts each rupee once.
type InvoiceSummary struct {
	TotalBuyers   int     `json:"totalBuyers"`
	TotalMfgs     int     `json:"totalMfgs"`
	TotalInvoices int     `json:"totalInvoices"`
	TotalAmount   float64 `json:"totalAmount"`
	TotalOverdue  float64 `json:"totalOverdue"`
	TotalDueToday float64 `json:"totalDueToday"`
	TotalDueSoon  float64 `json:"totalDueSoon"`
}

// InvoiceReport is the full report payload.
type InvoiceReport struct {
	BuyerWise map[string]*InvoiceGroup `json:"buyerWise"`
	MfgWise   map[string]*InvoiceGroup `json:"mfgWise"`
	Summary   InvoiceSummary           `json:"summary"`
}

// FilterInvoices applies the query's scoping predicates against the
// reference date. Invoices with malformed due dates simply fail the
// date predicates; they are never an error.
func FilterInvoices(invs []invoice.Invoice, q InvoiceQuery, today time.Time) []invoice.Invoice {
	out := make([]invoice.Invoice, 0, len(invs))
	for _, inv := range invs {
		if q.Buyer != "" && inv.Buyer != q.Buyer {
			continue
		}
		if q.Mfg != "" && inv.Mfg != q.Mfg {
			continue
		}
		switch q.Status {
		case StatusPaid:
			if inv.Status != invoice.StatusPaid {
				continue
			}
		case StatusUnpaid:
			if inv.Status != invoice.StatusUnpaid {
				continue
			}
		}
		if q.PaymentType != PaymentAll && !inv.HasPaymentType(q.PaymentType) {
			continue
		}
		switch q.Filter {
		case DueOverdue:
			if !inv.Overdue() {
				continue
			}
		case DueToday:
			if !inv.DueToday(today) {
				continue
			}
		case DueSoon:
			if !inv.DueSoon(today) {
				continue
			}
		case DueUnpaid:
			if inv.Status != invoice.StatusUnpaid {
				continue
			}
		}
		out = append(out, inv)
	}
	return out
}

// AggregateInvoices builds the buyer-wise and mfg-wise groupings plus the
// summary from an already-filtered invoice set.
func AggregateInvoices(invs []invoice.Invoice, q InvoiceQuery, today time.Time) InvoiceReport {
	filtered := FilterInvoices(invs, q, today)

	buyerWise := map[string]*InvoiceGroup{}
	mfgWise := map[string]*InvoiceGroup{}

	for _, inv := range filtered {
		if q.GroupBy == GroupBuyer || q.GroupBy == GroupAll {
			g, ok := buyerWise[inv.Buyer]
			if !ok {
				g = &InvoiceGroup{Buyer: inv.Buyer}
				buyerWise[inv.Buyer] = g
			}
			g.accumulate(inv, today)
		}
		if q.GroupBy == GroupMfg || q.GroupBy == GroupAll {
			g, ok := mfgWise[inv.Mfg]
			if !ok {
				g = &InvoiceGroup{Mfg: inv.Mfg}
				mfgWise[inv.Mfg] = g
			}
			g.accumulate(inv, today)
		}
	}

	summary := InvoiceSummary{
		TotalBuyers:   len(buyerWise),
		TotalMfgs:     len(mfgWise),
		TotalInvoices: len(filtered),
	}
	for _, inv := range filtered {
		summary.TotalAmount += inv.Amount
	}
	for _, g := range buyerWise {
		summary.TotalOverdue += g.OverdueAmount
		summary.TotalDueToday += g.DueToday
		summary.TotalDueSoon += g.DueSoon
	}

	return InvoiceReport{BuyerWise: buyerWise, MfgWise: mfgWise, Summary: summary}
}

func (g *InvoiceGroup) accumulate(inv invoice.Invoice, today time.Time) {
	g.TotalInvoices++
	g.TotalAmount += inv.Amount
	switch inv.Status {
	case invoice.StatusPaid:
		g.TotalPaid += inv.Amount
	case invoice.StatusUnpaid:
		g.TotalUnpaid += inv.Amount
	}
	if inv.Overdue() {
		g.OverdueAmount += inv.Amount
	}
	if inv.Status == invoice.StatusUnpaid {
		if inv.DueToday(today) {
			g.DueToday += inv.Amount
		}
		if inv.DueSoon(today) {
			g.DueSoon += inv.Amount
		}
	}
	g.Invoices = append(g.Invoices, inv)
}

// OrderGroup is one firm's slice of an order report. Unit carries the
// first unit seen in the group; mixed-unit groups keep the first.
type OrderGroup struct {
	Buyer         string        `json:"buyer"`
	Mfg           string        `json:"mfg"`
	TotalOrders   int           `json:"totalOrders"`
	TotalQuantity float64       `json:"totalQuantity"`
	Unit          string        `json:"unit"`
	Orders        []sauda.Order `json:"orders"`
}

// OrderSummary rolls the order groups up, quantity summed from the buyer
// partition only.
type OrderSummary struct {
	TotalBuyers   int     `json:"totalBuyers"`
	TotalMfgs     int     `json:"totalMfgs"`
	TotalOrders   int     `json:"totalOrders"`
	TotalQuantity float64 `json:"totalQuantity"`
}

// OrderReport is the full order report payload.
type OrderReport struct {
	BuyerWise map[string]*OrderGroup `json:"buyerWise"`
	MfgWise   map[string]*OrderGroup `json:"mfgWise"`
	Summary   OrderSummary           `json:"summary"`
}

// FilterOrders applies the query's scoping predicates.
func FilterOrders(orders []sauda.Order, q OrderQuery) []sauda.Order {
	out := make([]sauda.Order, 0, len(orders))
	for _, o := range orders {
		if q.Buyer != "" && o.Buyer != q.Buyer {
			continue
		}
		if q.Mfg != "" && o.Mfg != q.Mfg {
			continue
		}
		switch q.Status {
		case StatusPending:
			if o.Status != sauda.StatusPending {
				continue
			}
		case StatusCompleted:
			if o.Status != sauda.StatusCompleted {
				continue
			}
		}
		out = append(out, o)
	}
	return out
}

// AggregateOrders builds the order report groupings and summary.
func AggregateOrders(orders []sauda.Order, q OrderQuery) OrderReport {
	filtered := FilterOrders(orders, q)

	buyerWise := map[string]*OrderGroup{}
	mfgWise := map[string]*OrderGroup{}

	for _, o := range filtered {
		if q.GroupBy == GroupBuyer || q.GroupBy == GroupAll {
			g, ok := buyerWise[o.Buyer]
			if !ok {
				g = &OrderGroup{Buyer: o.Buyer}
				buyerWise[o.Buyer] = g
			}
			g.accumulate(o)
		}
		if q.GroupBy == GroupMfg || q.GroupBy == GroupAll {
			g, ok := mfgWise[o.Mfg]
			if !ok {
				g = &OrderGroup{Mfg: o.Mfg}
				mfgWise[o.Mfg] = g
			}
			g.accumulate(o)
		}
	}

	summary := OrderSummary{
		TotalBuyers: len(buyerWise),
		TotalMfgs:   len(mfgWise),
		TotalOrders: len(filtered),
	}
	for _, g := range buyerWise {
		summary.TotalQuantity += g.TotalQuantity
	}

	return OrderReport{BuyerWise: buyerWise, MfgWise: mfgWise, Summary: summary}
}

func (g *OrderGroup) accumulate(o sauda.Order) {
	g.TotalOrders++
	g.TotalQuantity += o.Pending
	if g.Unit == "" {
		g.Unit = o.Unit
	}
	g.Orders = append(g.Orders, o)
}

// ExportRow is one line of the flattened invoice report used by the
// CSV and PDF renderers.
type ExportRow struct {
	SR           int
	Invoice      string
	Date         string
	Mfg          string
	CreditPeriod int
	Due          string
	Amount       float64
	PaymentType  string
	Status       invoice.Status
	Ageing       int
	Buyer        string
}

// FlattenInvoices walks the buyer partition in sorted key order and
// assigns serial numbers, so the same report always flattens to the same
// rows.
func FlattenInvoices(rep InvoiceReport) []ExportRow {
	buyers := make([]string, 0, len(rep.BuyerWise))
	for b := range rep.BuyerWise {
		buyers = append(buyers, b)
	}
	sort.Strings(buyers)

	var rows []ExportRow
	sr := 0
	for _, b := range buyers {
		for _, inv := range rep.BuyerWise[b].Invoices {
			sr++
			rows = append(rows, ExportRow{
				SR:           sr,
				Invoice:      inv.Number,
				Date:         inv.Date,
				Mfg:          inv.Mfg,
				CreditPeriod: inv.CreditPeriodDays(),
				Due:          inv.Due,
				Amount:       inv.Amount,
				PaymentType:  inv.PaymentType,
				Status:       inv.Status,
				Ageing:       inv.Ageing,
				Buyer:        inv.Buyer,
			})
		}
	}
	return rows
}
