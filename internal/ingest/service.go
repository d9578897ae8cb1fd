package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/textilehub/textilehub/internal/invoice"
	"github.com/textilehub/textilehub/internal/sauda"
)

// InvoiceStore replaces the invoice snapshot.
type InvoiceStore interface {
	ReplaceSnapshot(ctx context.Context, invoices []invoice.Invoice) error
}

// OrderStore replaces the order snapshot.
type OrderStore interface {
	ReplaceSnapshot(ctx context.Context, orders []sauda.Order) error
}

// CacheBumper invalidates derived report caches after a sync.
type CacheBumper interface {
	Bump(ctx context.Context) error
}

// WarmupEnqueuer schedules a background cache warmup.
type WarmupEnqueuer interface {
	EnqueueReportWarmup(ctx context.Context) error
}

// SyncPayload is the raw document batch pushed by the upstream exporter.
// Documents are free-form maps; normalisation coerces them into rows and
// never rejects a malformed field.
type SyncPayload struct {
	Invoices       []invoice.Document `json:"invoices"`
	PendingSauda   []sauda.Document   `json:"pendingSauda"`
	CompletedSauda []sauda.Document   `json:"completedSauda"`
}

// SyncResult reports how many rows each snapshot received.
type SyncResult struct {
	Invoices        int `json:"invoices"`
	PendingOrders   int `json:"pendingOrders"`
	CompletedOrders int `json:"completedOrders"`
}

// Service ingests document batches into the relational snapshots.
type Service struct {
	logger   *slog.Logger
	invoices InvoiceStore
	orders   OrderStore
	cache    CacheBumper
	warmup   WarmupEnqueuer
}

// NewService wires the ingest service. Cache and warmup may be nil; the
// sync then skips invalidation and warmup.
func NewService(logger *slog.Logger, invoices InvoiceStore, orders OrderStore, cache CacheBumper, warmup WarmupEnqueuer) *Service {
	return &Service{logger: logger, invoices: invoices, orders: orders, cache: cache, warmup: warmup}
}

// Sync replaces both snapshots with the pushed batch, bumps the report
// cache version and schedules a warmup. Documents without an id get a
// generated one so repeated pushes of id-less rows still land.
func (s *Service) Sync(ctx context.Context, payload SyncPayload) (SyncResult, error) {
	invoices := make([]invoice.Invoice, 0, len(payload.Invoices))
	for _, doc := range payload.Invoices {
		invoices = append(invoices, invoice.FromDocument(documentID(doc), doc))
	}

	orders := make([]sauda.Order, 0, len(payload.PendingSauda)+len(payload.CompletedSauda))
	for _, doc := range payload.PendingSauda {
		orders = append(orders, sauda.FromDocument(documentID(doc), doc, sauda.StatusPending))
	}
	for _, doc := range payload.CompletedSauda {
		orders = append(orders, sauda.FromDocument(documentID(doc), doc, sauda.StatusCompleted))
	}

	if err := s.invoices.ReplaceSnapshot(ctx, invoices); err != nil {
		return SyncResult{}, fmt.Errorf("replace invoices: %w", err)
	}
	if err := s.orders.ReplaceSnapshot(ctx, orders); err != nil {
		return SyncResult{}, fmt.Errorf("replace orders: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Bump(ctx); err != nil {
			s.logger.Error("bump report cache", slog.Any("error", err))
		}
	}
	if s.warmup != nil {
		if err := s.warmup.EnqueueReportWarmup(ctx); err != nil {
			s.logger.Error("enqueue report warmup", slog.Any("error", err))
		}
	}

	return SyncResult{
		Invoices:        len(invoices),
		PendingOrders:   len(payload.PendingSauda),
		CompletedOrders: len(payload.CompletedSauda),
	}, nil
}

func documentID(doc map[string]any) string {
	if raw, ok := doc["id"]; ok {
		if id, ok := raw.(string); ok && id != "" {
			return id
		}
	}
	return uuid.NewString()
}
