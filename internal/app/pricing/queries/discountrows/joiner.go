// Package discountrows joins discounts with the catalog to produce
// displayable discount rows.
package discountrows

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/murkotick/price-comparator/internal/app/pricing/contracts"
	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
	"github.com/murkotick/price-comparator/internal/app/pricing/domain/services"
	"github.com/murkotick/price-comparator/internal/app/pricing/dto"
	"github.com/murkotick/price-comparator/internal/pkg/logger"
)

// Joiner resolves the product and the reference price of each discount.
type Joiner struct {
	products   contracts.ProductReader
	prices     contracts.PriceReader
	calculator *services.PricingCalculator
	logg       *logger.Logger
}

func NewJoiner(products contracts.ProductReader, prices contracts.PriceReader, logg *logger.Logger) *Joiner {
	return &Joiner{
		products:   products,
		prices:     prices,
		calculator: services.NewPricingCalculator(),
		logg:       logg,
	}
}

// Join builds one row per discount priced against the latest record for its
// (product, store) on or before priceDay. Discounts whose product is missing
// or which have no price are dropped. Input order is preserved.
func (j *Joiner) Join(ctx context.Context, discounts []*domain.Discount, priceDay civil.Date) ([]dto.BestDiscount, error) {
	rows := make([]dto.BestDiscount, 0, len(discounts))

	for _, d := range discounts {
		dctx := j.logg.WithFields(ctx, map[string]any{
			"discount_id": d.ID(),
			"product_id":  d.ProductID(),
			"store_id":    d.Store().ID,
		})

		product, err := j.products.FindProduct(ctx, d.ProductID())
		if err != nil {
			return nil, fmt.Errorf("find product %s: %w", d.ProductID(), err)
		}
		if product == nil {
			j.logg.Warn(dctx, "discount references unknown product, skipping")
			continue
		}

		price, err := j.prices.FindLatestPrice(ctx, d.ProductID(), d.Store().ID, priceDay)
		if err != nil {
			return nil, fmt.Errorf("find latest price for %s: %w", d.ProductID(), err)
		}
		if price == nil {
			j.logg.Debug(dctx, "no price for discounted product")
			continue
		}

		pct := d.Percentage()
		rows = append(rows, dto.BestDiscount{
			ProductInfo:          dto.InfoOf(product),
			StoreName:            d.Store().Name,
			PercentageOfDiscount: pct,
			OriginalPrice:        price.Price(),
			DiscountedPrice:      j.calculator.EffectivePrice(price.Price(), &pct).Round2(),
			Currency:             price.Currency(),
			StartDate:            d.StartDate(),
			EndDate:              d.EndDate(),
		})
	}
	return rows, nil
}
