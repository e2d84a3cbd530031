// Package alertview renders price alerts with their product name and the
// best price available today.
package alertview

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/murkotick/price-comparator/internal/app/pricing/contracts"
	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
	"github.com/murkotick/price-comparator/internal/app/pricing/domain/services"
	"github.com/murkotick/price-comparator/internal/app/pricing/dto"
)

type Presenter struct {
	products contracts.ProductReader
	resolver *services.CurrentPriceResolver
}

func NewPresenter(catalog contracts.Catalog) *Presenter {
	return &Presenter{
		products: catalog,
		resolver: services.NewCurrentPriceResolver(catalog, catalog),
	}
}

// CurrentPrice is the rounded best price for the alert's product and store, or nil.
func (p *Presenter) CurrentPrice(ctx context.Context, a *domain.PriceAlert, today civil.Date) (*domain.Money, error) {
	price, err := p.resolver.BestPrice(ctx, a.ProductID(), a.Store(), today)
	if err != nil {
		return nil, fmt.Errorf("current price for alert %s: %w", a.ID(), err)
	}
	return price, nil
}

// View resolves the current price and builds the view.
func (p *Presenter) View(ctx context.Context, a *domain.PriceAlert, today civil.Date) (dto.PriceAlertView, error) {
	price, err := p.CurrentPrice(ctx, a, today)
	if err != nil {
		return dto.PriceAlertView{}, err
	}
	return p.ViewWithPrice(ctx, a, price)
}

// ViewWithPrice builds the view around an already resolved current price.
// A product missing from the catalog leaves ProductName empty.
func (p *Presenter) ViewWithPrice(ctx context.Context, a *domain.PriceAlert, current *domain.Money) (dto.PriceAlertView, error) {
	product, err := p.products.FindProduct(ctx, a.ProductID())
	if err != nil {
		return dto.PriceAlertView{}, fmt.Errorf("find product %s: %w", a.ProductID(), err)
	}

	view := dto.PriceAlertView{
		ID:               a.ID(),
		UserEmail:        a.UserEmail(),
		ProductID:        a.ProductID(),
		StoreName:        a.StoreName(),
		TargetPrice:      a.TargetPrice(),
		CurrentBestPrice: current,
		Currency:         a.Currency(),
		Status:           string(a.Status()),
		IsTriggered:      a.IsTriggered(),
		CreatedDate:      a.CreatedDate(),
		LastCheckedDate:  a.LastCheckedDate(),
	}
	if product != nil {
		view.ProductName = product.Name()
	}
	return view, nil
}
