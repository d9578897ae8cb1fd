package sauda

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	orders []Order
	err    error
}

func (s stubRepo) List(ctx context.Context) ([]Order, error) {
	return s.orders, s.err
}

func orderFixture() []Order {
	return []Order{
		{ID: "s1", Buyer: "Shree Textiles", Mfg: "Kamal Fabrics", Ordered: 2000, Sent: 800, Unit: "mtr", Status: StatusPending},
		{ID: "s2", Buyer: "Mehta & Sons", Mfg: "Radha Mills", Ordered: 1500, Sent: 1500, Unit: "mtr", Status: StatusCompleted},
		{ID: "s3", Buyer: "Laxmi Traders", Mfg: "Radha Mills", Ordered: 500, Sent: 490, Unit: "kg", Status: StatusPending},
	}
}

func TestPendingQty(t *testing.T) {
	assert.Equal(t, 1200.0, Order{Ordered: 2000, Sent: 800}.PendingQty())
	// Over-fulfillment reports the absolute difference.
	assert.Equal(t, 100.0, Order{Ordered: 500, Sent: 600}.PendingQty())
	// Without ordered/sent the stored pending figure wins.
	assert.Equal(t, 450.0, Order{Pending: 450}.PendingQty())
}

func TestFulfillmentPercent(t *testing.T) {
	assert.Equal(t, 40, Order{Ordered: 2000, Sent: 800}.FulfillmentPercent())
	assert.Equal(t, 98, Order{Ordered: 500, Sent: 490}.FulfillmentPercent())
	assert.Equal(t, 0, Order{Sent: 100}.FulfillmentPercent())
	assert.Equal(t, 33, Order{Ordered: 3, Sent: 1}.FulfillmentPercent())
}

func TestListStatusFilter(t *testing.T) {
	svc := NewService(stubRepo{orders: orderFixture()})

	pending, err := svc.List(context.Background(), ListFilter{Status: "pending"})
	require.NoError(t, err)
	require.Len(t, pending, 2)

	completed, err := svc.List(context.Background(), ListFilter{Status: "completed"})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "s2", completed[0].ID)
}

func TestListFulfillmentThresholdSkipsCompleted(t *testing.T) {
	svc := NewService(stubRepo{orders: orderFixture()})

	out, err := svc.List(context.Background(), ListFilter{FulfillmentBelow: 95})
	require.NoError(t, err)
	// s1 at 40% stays, s3 at 98% is cut, completed s2 is untouched.
	require.Len(t, out, 2)
	assert.Equal(t, "s1", out[0].ID)
	assert.Equal(t, "s2", out[1].ID)
}

func TestListPropagatesRepositoryError(t *testing.T) {
	svc := NewService(stubRepo{err: errors.New("boom")})
	_, err := svc.List(context.Background(), ListFilter{})
	require.Error(t, err)
}

func TestFromDocumentCoercion(t *testing.T) {
	o := FromDocument("s9", Document{
		"quality": "Cotton 40s",
		"buyer":   "Shree Textiles",
		"ordered": "2000",
		"sent":    800.0,
		"unit":    "mtr",
	}, StatusPending)

	assert.Equal(t, "s9", o.ID)
	assert.Equal(t, 2000.0, o.Ordered)
	assert.Equal(t, 800.0, o.Sent)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, 1200.0, o.PendingQty())
}
