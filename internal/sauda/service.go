package sauda

import (
	"context"
)

// ListRepository is the read surface the service depends on.
type ListRepository interface {
	List(ctx context.Context) ([]Order, error)
}

// ListFilter narrows the order list view. Zero values mean "no filter".
type ListFilter struct {
	Status           string // pending | completed | all
	Buyer            string
	Mfg              string
	FulfillmentBelow int // pending view only; 0 disables the threshold
}

// Service serves filtered sauda views for the dashboard.
type Service struct {
	repo ListRepository
}

// NewService builds Service instance.
func NewService(repo ListRepository) *Service {
	return &Service{repo: repo}
}

// List fetches orders and applies the view filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]Order, 0, len(orders))
	for _, o := range orders {
		if !filter.matches(o) {
			continue
		}
		matched = append(matched, o)
	}
	return matched, nil
}

func (f ListFilter) matches(o Order) bool {
	switch f.Status {
	case "pending":
		if o.Status != StatusPending {
			return false
		}
	case "completed":
		if o.Status != StatusCompleted {
			return false
		}
	}
	if f.Buyer != "" && o.Buyer != f.Buyer {
		return false
	}
	if f.Mfg != "" && o.Mfg != f.Mfg {
		return false
	}
	// Threshold applies to pending work only: completed sauda stay visible.
	if f.FulfillmentBelow > 0 && o.Status == StatusPending {
		if o.FulfillmentPercent() >= f.FulfillmentBelow {
			return false
		}
	}
	return true
}
