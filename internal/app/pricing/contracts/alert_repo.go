package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
	"github.com/murkotick/price-comparator/internal/pkg/committer"
)

// AlertRepo is the write-side repository for price alerts.
// Methods return Spanner mutations; they do not apply them.
type AlertRepo interface {
	InsertMut(a *domain.PriceAlert) *spanner.Mutation
	// UpdateMut writes only the columns marked dirty, or returns nil.
	UpdateMut(a *domain.PriceAlert) *spanner.Mutation
	DeleteMut(a *domain.PriceAlert) *spanner.Mutation
	// AbsentGuard rejects the commit if the (email, product, store) alert already exists.
	AbsentGuard(userEmail, productID, storeID string) committer.Guard
}

// AlertReader loads price alerts.
type AlertReader interface {
	FindAlert(ctx context.Context, id string) (*domain.PriceAlert, error)
	// FindAlertFor returns the alert for (email, product, store); an empty storeID means any-store.
	FindAlertFor(ctx context.Context, userEmail, productID, storeID string) (*domain.PriceAlert, error)
	// ListAlerts returns one user's alerts, or every alert when userEmail is empty,
	// ordered by created date then id.
	ListAlerts(ctx context.Context, userEmail string) ([]*domain.PriceAlert, error)
}
