package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
)

// PriceFinder is the subset of the price reader needed to resolve current prices.
type PriceFinder interface {
	FindPricesForProduct(ctx context.Context, productID string, onOrBefore civil.Date) ([]*domain.PriceRecord, error)
	FindLatestPrice(ctx context.Context, productID, storeID string, onOrBefore civil.Date) (*domain.PriceRecord, error)
}

// CurrentPriceResolver computes the best price a shopper would pay today
// for a product, optionally restricted to one store.
type CurrentPriceResolver struct {
	prices     PriceFinder
	discounts  DiscountFinder
	calculator *PricingCalculator
}

func NewCurrentPriceResolver(prices PriceFinder, discounts DiscountFinder) *CurrentPriceResolver {
	return &CurrentPriceResolver{
		prices:     prices,
		discounts:  discounts,
		calculator: NewPricingCalculator(),
	}
}

// BestPrice returns the rounded effective price as of today, or nil when no
// price is known. With a store, that store's latest price is used; without
// one, the cheapest effective price over every store's latest price.
func (r *CurrentPriceResolver) BestPrice(ctx context.Context, productID string, store *domain.Store, today civil.Date) (*domain.Money, error) {
	offer, err := r.BestOffer(ctx, productID, store, today)
	if err != nil || offer == nil {
		return nil, err
	}
	rounded := offer.FinalPrice.Round2()
	return &rounded, nil
}

// BestOffer is BestPrice without rounding, exposing the chosen record.
func (r *CurrentPriceResolver) BestOffer(ctx context.Context, productID string, store *domain.Store, today civil.Date) (*domain.StoreOffer, error) {
	if store != nil {
		price, err := r.prices.FindLatestPrice(ctx, productID, store.ID, today)
		if err != nil {
			return nil, fmt.Errorf("find latest price: %w", err)
		}
		if price == nil {
			return nil, nil
		}
		offer, err := r.calculator.ResolveOffer(ctx, r.discounts, price, today)
		if err != nil {
			return nil, err
		}
		return &offer, nil
	}

	records, err := r.prices.FindPricesForProduct(ctx, productID, today)
	if err != nil {
		return nil, fmt.Errorf("find prices: %w", err)
	}
	offers, err := r.calculator.ResolveOffers(ctx, r.discounts, SelectLatestPerStore(records, today), today)
	if err != nil {
		return nil, err
	}
	best, ok := Cheapest(offers)
	if !ok {
		return nil, nil
	}
	return &best, nil
}
