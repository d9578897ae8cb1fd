package ingest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/textilehub/textilehub/internal/invoice"
	"github.com/textilehub/textilehub/internal/sauda"
)

type captureInvoices struct {
	got []invoice.Invoice
	err error
}

func (c *captureInvoices) ReplaceSnapshot(ctx context.Context, invoices []invoice.Invoice) error {
	c.got = invoices
	return c.err
}

type captureOrders struct {
	got []sauda.Order
	err error
}

func (c *captureOrders) ReplaceSnapshot(ctx context.Context, orders []sauda.Order) error {
	c.got = orders
	return c.err
}

type countingBumper struct {
	calls int
	err   error
}

func (c *countingBumper) Bump(ctx context.Context) error {
	c.calls++
	return c.err
}

type countingWarmup struct {
	calls int
	err   error
}

func (c *countingWarmup) EnqueueReportWarmup(ctx context.Context) error {
	c.calls++
	return c.err
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSyncReplacesSnapshotsAndInvalidates(t *testing.T) {
	invs := &captureInvoices{}
	orders := &captureOrders{}
	bumper := &countingBumper{}
	warmup := &countingWarmup{}
	svc := NewService(discard(), invs, orders, bumper, warmup)

	payload := SyncPayload{
		Invoices: []invoice.Document{
			{"id": "inv-1", "buyer": "Shree Textiles", "amount": 1200.0, "status": "UNPAID"},
			{"buyer": "Mehta & Sons"},
		},
		PendingSauda:   []sauda.Document{{"id": "s-1", "buyer": "Shree Textiles"}},
		CompletedSauda: []sauda.Document{{"id": "s-2"}, {"id": "s-3"}},
	}

	res, err := svc.Sync(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, SyncResult{Invoices: 2, PendingOrders: 1, CompletedOrders: 2}, res)

	require.Len(t, invs.got, 2)
	assert.Equal(t, "inv-1", invs.got[0].ID)
	// The id-less document still lands, under a generated id.
	assert.NotEmpty(t, invs.got[1].ID)

	require.Len(t, orders.got, 3)
	assert.Equal(t, sauda.StatusPending, orders.got[0].Status)
	assert.Equal(t, sauda.StatusCompleted, orders.got[1].Status)
	assert.Equal(t, sauda.StatusCompleted, orders.got[2].Status)

	assert.Equal(t, 1, bumper.calls)
	assert.Equal(t, 1, warmup.calls)
}

func TestSyncFailsWhenSnapshotWriteFails(t *testing.T) {
	invs := &captureInvoices{err: errors.New("tx aborted")}
	bumper := &countingBumper{}
	svc := NewService(discard(), invs, &captureOrders{}, bumper, nil)

	_, err := svc.Sync(context.Background(), SyncPayload{})
	require.Error(t, err)
	assert.Zero(t, bumper.calls)
}

func TestSyncToleratesCacheAndWarmupFailures(t *testing.T) {
	bumper := &countingBumper{err: errors.New("redis down")}
	warmup := &countingWarmup{err: errors.New("broker down")}
	svc := NewService(discard(), &captureInvoices{}, &captureOrders{}, bumper, warmup)

	res, err := svc.Sync(context.Background(), SyncPayload{})
	require.NoError(t, err)
	assert.Zero(t, res.Invoices)
	assert.Equal(t, 1, bumper.calls)
	assert.Equal(t, 1, warmup.calls)
}

func TestSyncWithoutCacheOrWarmup(t *testing.T) {
	svc := NewService(discard(), &captureInvoices{}, &captureOrders{}, nil, nil)
	_, err := svc.Sync(context.Background(), SyncPayload{})
	require.NoError(t, err)
}
