package invoice

import (
	"context"
	"time"
)

// ListRepository is the read surface the service depends on.
type ListRepository interface {
	List(ctx context.Context) ([]Invoice, error)
}

// Service serves filtered invoice views for the dashboard.
type Service struct {
	repo ListRepository
	now  func() time.Time
}

// NewService builds a Service instance.
func NewService(repo ListRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// List fetches all invoices and applies the view filter against a single
// midnight-normalized reference date.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Invoice, error) {
	invoices, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(invoices, Midnight(s.now())), nil
}
