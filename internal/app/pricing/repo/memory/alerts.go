package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
)

// Alerts is an in-memory contracts.AlertReader.
type Alerts struct {
	mu     sync.RWMutex
	alerts []*domain.PriceAlert
}

func NewAlerts() *Alerts {
	return &Alerts{}
}

func (s *Alerts) Add(as ...*domain.PriceAlert) *Alerts {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, as...)
	return s
}

func (s *Alerts) FindAlert(_ context.Context, id string) (*domain.PriceAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.alerts {
		if a.ID() == id {
			return a, nil
		}
	}
	return nil, nil
}

func (s *Alerts) FindAlertFor(_ context.Context, userEmail, productID, storeID string) (*domain.PriceAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.alerts {
		if !strings.EqualFold(a.UserEmail(), userEmail) || a.ProductID() != productID {
			continue
		}
		if alertStoreID(a) == storeID {
			return a, nil
		}
	}
	return nil, nil
}

func (s *Alerts) ListAlerts(_ context.Context, userEmail string) ([]*domain.PriceAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*domain.PriceAlert{}
	for _, a := range s.alerts {
		if userEmail == "" || strings.EqualFold(a.UserEmail(), userEmail) {
			out = append(out, a)
		}
	}
	slices.SortStableFunc(out, func(a, b *domain.PriceAlert) int {
		if d := compareDates(a.CreatedDate(), b.CreatedDate()); d != 0 {
			return d
		}
		return cmp.Compare(a.ID(), b.ID())
	})
	return out, nil
}

func alertStoreID(a *domain.PriceAlert) string {
	if a.Store() == nil {
		return ""
	}
	return a.Store().ID
}
