package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/textilehub/textilehub/internal/ageing"
	"github.com/textilehub/textilehub/internal/invoice"
	"github.com/textilehub/textilehub/internal/platform/httpx"
	"github.com/textilehub/textilehub/internal/sauda"
)

// Side names which firm column a per-firm view groups by.
type Side string

const (
	SideBuyer Side = "buyer"
	SideMfg   Side = "mfg"
)

// ParseSide validates a side token.
func ParseSide(s string) (Side, bool) {
	switch Side(s) {
	case SideBuyer, SideMfg:
		return Side(s), true
	}
	return "", false
}

// InvoiceSource lists the invoice snapshot.
type InvoiceSource interface {
	List(ctx context.Context) ([]invoice.Invoice, error)
}

// OrderSource lists the order snapshot.
type OrderSource interface {
	List(ctx context.Context) ([]sauda.Order, error)
}

// Service computes the dashboard views.
type Service struct {
	invoices InvoiceSource
	orders   OrderSource
	now      func() time.Time
}

// NewService wires the dashboard service.
func NewService(invoices InvoiceSource, orders OrderSource) *Service {
	return &Service{invoices: invoices, orders: orders, now: time.Now}
}

// WithNow overrides the clock.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// Stats is the headline dashboard card set.
type Stats struct {
	TotalOutstanding float64 `json:"totalOutstanding"`
	OverdueAmount    float64 `json:"overdueAmount"`
	OverdueCount     int     `json:"overdueCount"`
	DueTodayAmount   float64 `json:"dueTodayAmount"`
	DueSoonAmount    float64 `json:"dueSoonAmount"`
	TotalInvoices    int     `json:"totalInvoices"`
	UnpaidInvoices   int     `json:"unpaidInvoices"`
	PendingOrders    int     `json:"pendingOrders"`
	CompletedOrders  int     `json:"completedOrders"`

	TopDebtors []Debtor `json:"topDebtors"`
}

// Debtor is one buyer's outstanding position.
type Debtor struct {
	Buyer   string  `json:"buyer"`
	Total   float64 `json:"total"`
	Overdue float64 `json:"overdue"`
}

const topDebtorCount = 5

// Stats loads invoices and orders concurrently and folds the headline
// numbers. Outstanding counts unpaid amounts only; a paid invoice owes
// nothing regardless of its ageing.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	var (
		invs   []invoice.Invoice
		orders []sauda.Order
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		invs, err = s.invoices.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		orders, err = s.orders.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	today := invoice.Midnight(s.now())
	stats := Stats{TotalInvoices: len(invs)}
	outstanding := map[string]*Debtor{}

	for _, inv := range invs {
		if inv.Status == invoice.StatusUnpaid {
			stats.TotalOutstanding += inv.Amount
			stats.UnpaidInvoices++
			d, ok := outstanding[inv.Buyer]
			if !ok {
				d = &Debtor{Buyer: inv.Buyer}
				outstanding[inv.Buyer] = d
			}
			d.Total += inv.Amount
			if inv.Overdue() {
				d.Overdue += inv.Amount
			}
			if inv.DueToday(today) {
				stats.DueTodayAmount += inv.Amount
			}
			if inv.DueSoon(today) {
				stats.DueSoonAmount += inv.Amount
			}
		}
		if inv.Overdue() {
			stats.OverdueAmount += inv.Amount
			stats.OverdueCount++
		}
	}

	for _, o := range orders {
		switch o.Status {
		case sauda.StatusPending:
			stats.PendingOrders++
		case sauda.StatusCompleted:
			stats.CompletedOrders++
		}
	}

	debtors := make([]Debtor, 0, len(outstanding))
	for _, d := range outstanding {
		debtors = append(debtors, *d)
	}
	sort.Slice(debtors, func(i, j int) bool {
		if debtors[i].Total != debtors[j].Total {
			return debtors[i].Total > debtors[j].Total
		}
		return debtors[i].Buyer < debtors[j].Buyer
	})
	if len(debtors) > topDebtorCount {
		debtors = debtors[:topDebtorCount]
	}
	stats.TopDebtors = debtors

	return stats, nil
}

// DiscrepancyFlag marks a firm whose bucket sum drifts from its total by
// more than one rupee. The drift is reported, never corrected; invoices
// aged past 200 days count toward the total but no bucket.
type DiscrepancyFlag struct {
	Firm       string  `json:"firm"`
	Side       Side    `json:"side"`
	Difference float64 `json:"difference"`
}

// AgeingView is the per-firm ageing breakdown with both partitions.
type AgeingView struct {
	BuyerAgeing   []ageing.Record   `json:"buyerAgeing"`
	MfgAgeing     []ageing.Record   `json:"mfgAgeing"`
	Discrepancies []DiscrepancyFlag `json:"discrepancies"`
}

// Ageing classifies the invoice snapshot and applies the list filter to
// both partitions.
func (s *Service) Ageing(ctx context.Context, filter ageing.ListFilter) (AgeingView, error) {
	invs, err := s.invoices.List(ctx)
	if err != nil {
		return AgeingView{}, err
	}
	result := ageing.Classify(invs)

	view := AgeingView{
		BuyerAgeing:   filter.Apply(result.BuyerAgeing),
		MfgAgeing:     filter.Apply(result.MfgAgeing),
		Discrepancies: []DiscrepancyFlag{},
	}
	for _, rec := range view.BuyerAgeing {
		if rec.HasDiscrepancy() {
			view.Discrepancies = append(view.Discrepancies, DiscrepancyFlag{
				Firm: rec.Firm, Side: SideBuyer, Difference: rec.Discrepancy(),
			})
		}
	}
	for _, rec := range view.MfgAgeing {
		if rec.HasDiscrepancy() {
			view.Discrepancies = append(view.Discrepancies, DiscrepancyFlag{
				Firm: rec.Firm, Side: SideMfg, Difference: rec.Discrepancy(),
			})
		}
	}
	return view, nil
}

// DrillDown returns the invoices behind one firm's bucket cell, sorted
// overdue first then by due date. Bucket membership answers through the
// same predicate the classifier buckets with.
func (s *Service) DrillDown(ctx context.Context, firm string, bucket ageing.Bucket, side Side) ([]invoice.Invoice, error) {
	invs, err := s.invoices.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]invoice.Invoice, 0)
	for _, inv := range invs {
		firmOf := inv.Buyer
		if side == SideMfg {
			firmOf = inv.Mfg
		}
		if firmOf != firm {
			continue
		}
		if !ageing.InBucket(inv, bucket) {
			continue
		}
		matched = append(matched, inv)
	}
	if len(matched) == 0 {
		return matched, nil
	}
	return invoice.ListFilter{}.Apply(matched, invoice.Midnight(s.now())), nil
}

// ValidateDrillDown parses the raw drill-down parameters.
func ValidateDrillDown(firm, bucketRaw, sideRaw string) (ageing.Bucket, Side, error) {
	if firm == "" {
		return "", "", fmt.Errorf("%w: firm required", httpx.ErrValidation)
	}
	bucket, ok := ageing.ParseBucket(bucketRaw)
	if !ok {
		return "", "", fmt.Errorf("%w: unknown bucket %q", httpx.ErrValidation, bucketRaw)
	}
	side, ok := ParseSide(sideRaw)
	if !ok {
		return "", "", fmt.Errorf("%w: unknown side %q", httpx.ErrValidation, sideRaw)
	}
	return bucket, side, nil
}
