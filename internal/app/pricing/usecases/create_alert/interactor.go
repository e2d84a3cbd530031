package create_alert

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/murkotick/price-comparator/internal/app/pricing/contracts"
	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
	"github.com/murkotick/price-comparator/internal/app/pricing/dto"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries/alertview"
	shared "github.com/murkotick/price-comparator/internal/app/pricing/usecases/shared"
	"github.com/murkotick/price-comparator/internal/pkg/clock"
	commitplan "github.com/murkotick/price-comparator/internal/pkg/committer"
)

// Request subscribes UserEmail to a price drop. An empty StoreName means any store.
type Request struct {
	UserEmail   string
	ProductID   string
	StoreName   string
	TargetPrice domain.Money
}

// Interactor implements the create-alert usecase following the Golden Mutation pattern.
type Interactor struct {
	AlertRepo       contracts.AlertRepo
	OutboxRepo      contracts.OutboxRepo
	Committer       contracts.Committer
	Alerts          contracts.AlertReader
	Catalog         contracts.Catalog
	Clock           clock.Clock
	DefaultCurrency string

	presenter *alertview.Presenter
}

func NewInteractor(alertRepo contracts.AlertRepo, outboxRepo contracts.OutboxRepo, committer contracts.Committer,
	alerts contracts.AlertReader, catalog contracts.Catalog, clk clock.Clock, defaultCurrency string) *Interactor {
	return &Interactor{
		AlertRepo:       alertRepo,
		OutboxRepo:      outboxRepo,
		Committer:       committer,
		Alerts:          alerts,
		Catalog:         catalog,
		Clock:           clk,
		DefaultCurrency: defaultCurrency,
		presenter:       alertview.NewPresenter(catalog),
	}
}

// Execute creates the alert, or re-arms an inactive one for the same
// (email, product, store), and commits it with its outbox events.
func (it *Interactor) Execute(ctx context.Context, req Request) (*dto.PriceAlertView, error) {
	now := it.Clock.Now()
	today := clock.Today(it.Clock)

	// 1. Resolve references
	product, err := it.Catalog.FindProduct(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("find product %s: %w", req.ProductID, err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, req.ProductID)
	}

	var store *domain.Store
	storeID := ""
	if name := strings.TrimSpace(req.StoreName); name != "" {
		store, err = it.Catalog.FindStore(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("find store %q: %w", name, err)
		}
		if store == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrStoreNotFound, name)
		}
		storeID = store.ID
	}

	email := strings.ToLower(strings.TrimSpace(req.UserEmail))

	// 2. Load or build the aggregate; the insert path re-checks inside the commit
	existing, err := it.Alerts.FindAlertFor(ctx, email, product.ID(), storeID)
	if err != nil {
		return nil, fmt.Errorf("find alert: %w", err)
	}

	plan := commitplan.NewPlan()
	var alert *domain.PriceAlert

	if existing != nil {
		alert = existing
		if err := alert.Reactivate(req.TargetPrice, now); err != nil {
			return nil, err
		}
		plan.Add(it.AlertRepo.UpdateMut(alert))
	} else {
		currency, err := it.currency(ctx, product.ID(), store, today)
		if err != nil {
			return nil, err
		}
		alert, err = domain.NewPriceAlert(uuid.New().String(), email, product.ID(), store, req.TargetPrice, currency, now)
		if err != nil {
			return nil, err
		}

		current, err := it.presenter.CurrentPrice(ctx, alert, today)
		if err != nil {
			return nil, err
		}
		if current != nil {
			alert.Check(*current, now)
		}
		plan.Require(it.AlertRepo.AbsentGuard(email, product.ID(), storeID))
		plan.Add(it.AlertRepo.InsertMut(alert))
	}

	// 3. Outbox events
	muts, err := shared.OutboxMutations(it.OutboxRepo, alert.DomainEvents(), now)
	if err != nil {
		return nil, err
	}
	plan.Add(muts...)

	// 4. Apply plan
	if err := it.Committer.Apply(ctx, plan); err != nil {
		return nil, err
	}
	alert.ClearEvents()
	alert.Changes().Clear()

	view, err := it.presenter.View(ctx, alert, today)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// currency picks the currency of the newest relevant price, or the default.
func (it *Interactor) currency(ctx context.Context, productID string, store *domain.Store, today civil.Date) (string, error) {
	if store != nil {
		latest, err := it.Catalog.FindLatestPrice(ctx, productID, store.ID, today)
		if err != nil {
			return "", fmt.Errorf("find latest price: %w", err)
		}
		if latest != nil {
			return latest.Currency(), nil
		}
		return it.DefaultCurrency, nil
	}

	prices, err := it.Catalog.FindPricesForProduct(ctx, productID, today)
	if err != nil {
		return "", fmt.Errorf("find prices: %w", err)
	}
	if len(prices) > 0 {
		return prices[0].Currency(), nil
	}
	return it.DefaultCurrency, nil
}
