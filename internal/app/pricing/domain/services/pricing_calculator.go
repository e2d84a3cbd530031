package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
)

var hundred = decimal.NewFromInt(100)

// DiscountFinder returns the discount active for a product at a store on a day, or nil.
type DiscountFinder interface {
	FindDiscount(ctx context.Context, productID, storeID string, on civil.Date) (*domain.Discount, error)
}

// PricingCalculator overlays percentage discounts onto nominal prices.
// It holds no state; every method is a pure function of its arguments
// except the finder lookups.
type PricingCalculator struct{}

// NewPricingCalculator creates a new PricingCalculator instance.
func NewPricingCalculator() *PricingCalculator {
	return &PricingCalculator{}
}

// EffectivePrice returns base when pct is nil, otherwise base * (1 - pct/100).
// The result is not rounded.
func (pc *PricingCalculator) EffectivePrice(base domain.Money, pct *decimal.Decimal) domain.Money {
	if pct == nil {
		return base
	}
	return base.Multiply(decimal.NewFromInt(1).Sub(pct.Div(hundred)))
}

// ActiveDiscount returns the first candidate that targets productID at
// storeID and is active on day, or nil.
func (pc *PricingCalculator) ActiveDiscount(candidates []*domain.Discount, productID, storeID string, on civil.Date) *domain.Discount {
	for _, d := range candidates {
		if d != nil && d.AppliesTo(productID, storeID) && d.IsActiveOn(on) {
			return d
		}
	}
	return nil
}

// ResolveOffer looks up the discount for the price's product and store on
// day and builds the resulting offer. A missing discount is not an error.
func (pc *PricingCalculator) ResolveOffer(ctx context.Context, finder DiscountFinder, price *domain.PriceRecord, on civil.Date) (domain.StoreOffer, error) {
	d, err := finder.FindDiscount(ctx, price.ProductID(), price.Store().ID, on)
	if err != nil {
		return domain.StoreOffer{}, fmt.Errorf("find discount for %s at %s: %w", price.ProductID(), price.Store().Name, err)
	}
	return pc.Offer(price, d), nil
}

// ResolveOffers resolves every latest price, preserving store order.
func (pc *PricingCalculator) ResolveOffers(ctx context.Context, finder DiscountFinder, prices LatestPrices, on civil.Date) ([]domain.StoreOffer, error) {
	offers := make([]domain.StoreOffer, 0, prices.Len())
	for _, p := range prices.Records() {
		offer, err := pc.ResolveOffer(ctx, finder, p, on)
		if err != nil {
			return nil, err
		}
		offers = append(offers, offer)
	}
	return offers, nil
}

// Offer builds an offer from a price and an optional discount that the
// caller already knows to be active.
func (pc *PricingCalculator) Offer(price *domain.PriceRecord, d *domain.Discount) domain.StoreOffer {
	offer := domain.StoreOffer{
		Store:      price.Store(),
		Price:      price,
		FinalPrice: price.Price(),
	}
	if d != nil {
		pct := d.Percentage()
		offer.DiscountPercentage = &pct
		offer.FinalPrice = pc.EffectivePrice(price.Price(), &pct)
	}
	return offer
}

// Cheapest returns the offer with the lowest final price; ties keep the earliest offer.
func Cheapest(offers []domain.StoreOffer) (domain.StoreOffer, bool) {
	if len(offers) == 0 {
		return domain.StoreOffer{}, false
	}
	best := offers[0]
	for _, o := range offers[1:] {
		if o.FinalPrice.LessThan(best.FinalPrice) {
			best = o
		}
	}
	return best, true
}

// Costliest returns the offer with the highest final price; ties keep the earliest offer.
func Costliest(offers []domain.StoreOffer) (domain.StoreOffer, bool) {
	if len(offers) == 0 {
		return domain.StoreOffer{}, false
	}
	worst := offers[0]
	for _, o := range offers[1:] {
		if o.FinalPrice.GreaterThan(worst.FinalPrice) {
			worst = o
		}
	}
	return worst, true
}
