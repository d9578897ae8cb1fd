package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/textilehub/textilehub/internal/ageing"
	"github.com/textilehub/textilehub/internal/invoice"
	"github.com/textilehub/textilehub/internal/sauda"
)

type stubInvoices struct {
	invoices []invoice.Invoice
	err      error
}

func (s stubInvoices) List(ctx context.Context) ([]invoice.Invoice, error) {
	return s.invoices, s.err
}

type stubOrders struct {
	orders []sauda.Order
	err    error
}

func (s stubOrders) List(ctx context.Context) ([]sauda.Order, error) {
	return s.orders, s.err
}

var statsToday = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

func dashboardFixture() []invoice.Invoice {
	return []invoice.Invoice{
		{ID: "a", Buyer: "Shree Textiles", Mfg: "Kamal Fabrics", Amount: 1000, Due: "15-08-2026", Status: invoice.StatusUnpaid, Ageing: 17},
		{ID: "b", Buyer: "Shree Textiles", Mfg: "Radha Mills", Amount: 500, Due: "01-09-2026", Status: invoice.StatusUnpaid, Ageing: 0},
		{ID: "c", Buyer: "Mehta & Sons", Mfg: "Kamal Fabrics", Amount: 2000, Due: "03-09-2026", Status: invoice.StatusUnpaid, Ageing: -2},
		{ID: "d", Buyer: "Mehta & Sons", Mfg: "Radha Mills", Amount: 800, Due: "25-06-2026", Status: invoice.StatusPaid, Ageing: 68},
		{ID: "e", Buyer: "Laxmi Traders", Mfg: "Kamal Fabrics", Amount: 5000, Due: "27-01-2026", Status: invoice.StatusUnpaid, Ageing: 217},
	}
}

func newStatsService(invs []invoice.Invoice, orders []sauda.Order) *Service {
	svc := NewService(stubInvoices{invoices: invs}, stubOrders{orders: orders})
	svc.WithNow(func() time.Time { return statsToday })
	return svc
}

func TestStats(t *testing.T) {
	orders := []sauda.Order{
		{ID: "s1", Status: sauda.StatusPending},
		{ID: "s2", Status: sauda.StatusCompleted},
		{ID: "s3", Status: sauda.StatusPending},
	}
	svc := newStatsService(dashboardFixture(), orders)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 8500.0, stats.TotalOutstanding)
	assert.Equal(t, 6000.0, stats.OverdueAmount)
	assert.Equal(t, 2, stats.OverdueCount)
	assert.Equal(t, 500.0, stats.DueTodayAmount)
	assert.Equal(t, 2000.0, stats.DueSoonAmount)
	assert.Equal(t, 5, stats.TotalInvoices)
	assert.Equal(t, 4, stats.UnpaidInvoices)
	assert.Equal(t, 2, stats.PendingOrders)
	assert.Equal(t, 1, stats.CompletedOrders)

	require.NotEmpty(t, stats.TopDebtors)
	assert.Equal(t, "Laxmi Traders", stats.TopDebtors[0].Buyer)
	assert.Equal(t, 5000.0, stats.TopDebtors[0].Overdue)
}

func TestStatsPropagatesLoadErrors(t *testing.T) {
	svc := NewService(stubInvoices{err: errors.New("db down")}, stubOrders{})
	_, err := svc.Stats(context.Background())
	require.Error(t, err)
}

func TestAgeingFlagsDiscrepancies(t *testing.T) {
	svc := newStatsService(dashboardFixture(), nil)

	view, err := svc.Ageing(context.Background(), ageing.ListFilter{})
	require.NoError(t, err)

	require.Len(t, view.BuyerAgeing, 3)
	// e sits past 200 days: its 5000 lands in the total but no bucket.
	var flagged []string
	for _, f := range view.Discrepancies {
		if f.Side == SideBuyer {
			flagged = append(flagged, f.Firm)
		}
	}
	assert.Equal(t, []string{"Laxmi Traders"}, flagged)

	for _, f := range view.Discrepancies {
		assert.Equal(t, 5000.0, f.Difference)
	}
}

func TestAgeingAppliesFilterToBothSides(t *testing.T) {
	svc := newStatsService(dashboardFixture(), nil)

	view, err := svc.Ageing(context.Background(), ageing.ListFilter{Search: "kamal"})
	require.NoError(t, err)
	assert.Empty(t, view.BuyerAgeing)
	require.Len(t, view.MfgAgeing, 1)
	assert.Equal(t, "Kamal Fabrics", view.MfgAgeing[0].Firm)
}

func TestDrillDownMatchesClassifierBuckets(t *testing.T) {
	svc := newStatsService(dashboardFixture(), nil)
	ctx := context.Background()

	got, err := svc.DrillDown(ctx, "Shree Textiles", ageing.Bucket8To30, SideBuyer)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)

	// The 217-day invoice belongs to no bucket; every drill-down cell
	// for its firm comes back empty.
	for _, b := range []ageing.Bucket{ageing.BucketNotDue, ageing.Bucket0To7, ageing.Bucket8To30, ageing.Bucket30To200} {
		rows, err := svc.DrillDown(ctx, "Laxmi Traders", b, SideBuyer)
		require.NoError(t, err)
		assert.Empty(t, rows, string(b))
	}

	mfgRows, err := svc.DrillDown(ctx, "Kamal Fabrics", ageing.BucketNotDue, SideMfg)
	require.NoError(t, err)
	require.Len(t, mfgRows, 1)
	assert.Equal(t, "c", mfgRows[0].ID)
}

func TestValidateDrillDown(t *testing.T) {
	_, _, err := ValidateDrillDown("", "notDue", "buyer")
	require.Error(t, err)

	_, _, err = ValidateDrillDown("Shree Textiles", "days200plus", "buyer")
	require.Error(t, err)

	_, _, err = ValidateDrillDown("Shree Textiles", "notDue", "seller")
	require.Error(t, err)

	bucket, side, err := ValidateDrillDown("Shree Textiles", "days30_200", "mfg")
	require.NoError(t, err)
	assert.Equal(t, ageing.Bucket30To200, bucket)
	assert.Equal(t, SideMfg, side)
}
