package reports

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/textilehub/textilehub/internal/invoice"
	"github.com/textilehub/textilehub/internal/sauda"
)

type countingRepo struct {
	invoices     []invoice.Invoice
	orders       []sauda.Order
	invoiceCalls int
	orderCalls   int
}

func (r *countingRepo) ListInvoices(ctx context.Context) ([]invoice.Invoice, error) {
	r.invoiceCalls++
	return r.invoices, nil
}

func (r *countingRepo) ListOrders(ctx context.Context) ([]sauda.Order, error) {
	r.orderCalls++
	return r.orders, nil
}

func newTestService(t *testing.T) (*Service, *countingRepo, *Cache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := &countingRepo{invoices: reportFixture()}
	cache := NewCache(client, time.Minute)
	svc := NewService(repo, cache)
	svc.WithNow(func() time.Time { return reportToday })
	return svc, repo, cache
}

func TestInvoiceReportsServedFromCache(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.InvoiceReports(ctx, InvoiceQuery{})
	require.NoError(t, err)
	require.Equal(t, 1, repo.invoiceCalls)

	second, err := svc.InvoiceReports(ctx, InvoiceQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.invoiceCalls, "second call should hit the cache")
	assert.Equal(t, first.Summary, second.Summary)
}

func TestInvoiceReportsDistinctQueriesDistinctKeys(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.InvoiceReports(ctx, InvoiceQuery{})
	require.NoError(t, err)
	_, err = svc.InvoiceReports(ctx, InvoiceQuery{Filter: DueOverdue})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.invoiceCalls)
}

func TestBumpInvalidatesCachedReports(t *testing.T) {
	svc, repo, cache := newTestService(t)
	ctx := context.Background()

	_, err := svc.InvoiceReports(ctx, InvoiceQuery{})
	require.NoError(t, err)
	require.Equal(t, 1, repo.invoiceCalls)

	require.NoError(t, cache.Bump(ctx))

	_, err = svc.InvoiceReports(ctx, InvoiceQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.invoiceCalls, "bump should force a reload")
}

func TestOrderReportsCached(t *testing.T) {
	svc, repo, _ := newTestService(t)
	repo.orders = []sauda.Order{
		{ID: "s1", Buyer: "Shree Textiles", Mfg: "Kamal Fabrics", Pending: 1200, Unit: "mtr", Status: sauda.StatusPending},
	}
	ctx := context.Background()

	first, err := svc.OrderReports(ctx, OrderQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Summary.TotalOrders)

	_, err = svc.OrderReports(ctx, OrderQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.orderCalls)
}

func TestServiceWorksWithoutRedis(t *testing.T) {
	repo := &countingRepo{invoices: reportFixture()}
	svc := NewService(repo, nil).WithNow(func() time.Time { return reportToday })

	rep, err := svc.InvoiceReports(context.Background(), InvoiceQuery{})
	require.NoError(t, err)
	assert.Equal(t, 5, rep.Summary.TotalInvoices)

	_, err = svc.InvoiceReports(context.Background(), InvoiceQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.invoiceCalls, "no cache means every call loads")
}

func TestInvoiceExportRows(t *testing.T) {
	svc, _, _ := newTestService(t)
	rows, err := svc.InvoiceExportRows(context.Background(), InvoiceQuery{})
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, 1, rows[0].SR)
}
