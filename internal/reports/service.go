package reports

import (
	"context"
	"time"

	"github.com/textilehub/textilehub/internal/ageing"
	"github.com/textilehub/textilehub/internal/invoice"
	"github.com/textilehub/textilehub/internal/sauda"
)

// Repository supplies the raw rows reports are built from.
type Repository interface {
	ListInvoices(ctx context.Context) ([]invoice.Invoice, error)
	ListOrders(ctx context.Context) ([]sauda.Order, error)
}

// InvoiceSource lists the invoice snapshot.
type InvoiceSource interface {
	List(ctx context.Context) ([]invoice.Invoice, error)
}

// OrderSource lists the order snapshot.
type OrderSource interface {
	List(ctx context.Context) ([]sauda.Order, error)
}

// Store adapts the invoice and order repositories to Repository.
type Store struct {
	Invoices InvoiceSource
	Orders   OrderSource
}

func (s Store) ListInvoices(ctx context.Context) ([]invoice.Invoice, error) {
	return s.Invoices.List(ctx)
}

func (s Store) ListOrders(ctx context.Context) ([]sauda.Order, error) {
	return s.Orders.List(ctx)
}

// Service computes reports, consulting the versioned cache first.
type Service struct {
	repo  Repository
	cache *Cache
	now   func() time.Time
}

// NewService wires the report service.
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache, now: time.Now}
}

// WithNow overrides the clock.
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

// InvoiceReports returns the aggregated invoice report for the query.
// The reference date is frozen at today's midnight so every predicate in
// one report answers against the same instant.
func (s *Service) InvoiceReports(ctx context.Context, q InvoiceQuery) (InvoiceReport, error) {
	q = q.Normalize()
	today := invoice.Midnight(s.now())

	key, err := s.cache.BuildKey(ctx, keyInvoiceReport(q, today))
	if err != nil {
		return InvoiceReport{}, err
	}
	var rep InvoiceReport
	err = s.cache.FetchJSON(ctx, key, &rep, func(ctx context.Context) (interface{}, error) {
		invs, err := s.repo.ListInvoices(ctx)
		if err != nil {
			return nil, err
		}
		return AggregateInvoices(invs, q, today), nil
	})
	if err != nil {
		return InvoiceReport{}, err
	}
	return rep, nil
}

// OrderReports returns the aggregated order report for the query.
func (s *Service) OrderReports(ctx context.Context, q OrderQuery) (OrderReport, error) {
	q = q.Normalize()

	key, err := s.cache.BuildKey(ctx, keyOrderReport(q))
	if err != nil {
		return OrderReport{}, err
	}
	var rep OrderReport
	err = s.cache.FetchJSON(ctx, key, &rep, func(ctx context.Context) (interface{}, error) {
		orders, err := s.repo.ListOrders(ctx)
		if err != nil {
			return nil, err
		}
		return AggregateOrders(orders, q), nil
	})
	if err != nil {
		return OrderReport{}, err
	}
	return rep, nil
}

// InvoiceExportRows returns the flattened rows for the query, ready for
// the CSV and PDF renderers.
func (s *Service) InvoiceExportRows(ctx context.Context, q InvoiceQuery) ([]ExportRow, error) {
	rep, err := s.InvoiceReports(ctx, q)
	if err != nil {
		return nil, err
	}
	return FlattenInvoices(rep), nil
}

// AgeingRecords classifies the current invoice snapshot and returns one
// firm partition for export. Any side other than "mfg" answers buyer-wise.
func (s *Service) AgeingRecords(ctx context.Context, side string) ([]ageing.Record, error) {
	invs, err := s.repo.ListInvoices(ctx)
	if err != nil {
		return nil, err
	}
	result := ageing.Classify(invs)
	if side == "mfg" {
		return result.MfgAgeing, nil
	}
	return result.BuyerAgeing, nil
}
