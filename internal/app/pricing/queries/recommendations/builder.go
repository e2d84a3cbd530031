package recommendations

import (
	"context"
	"fmt"
	"slices"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/murkotick/price-comparator/internal/app/pricing/contracts"
	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
	"github.com/murkotick/price-comparator/internal/app/pricing/domain/services"
	"github.com/murkotick/price-comparator/internal/app/pricing/dto"
)

// BestValueTolerance is the absolute distance in value per unit under which
// two offers count as equally good. The comparison is strict.
var BestValueTolerance = decimal.RequireFromString("0.001")

// Builder produces one recommendation row per (product, store) pair.
type Builder struct {
	prices     contracts.PriceReader
	discounts  contracts.DiscountReader
	calculator *services.PricingCalculator
}

func NewBuilder(prices contracts.PriceReader, discounts contracts.DiscountReader) *Builder {
	return &Builder{
		prices:     prices,
		discounts:  discounts,
		calculator: services.NewPricingCalculator(),
	}
}

// Build returns rows for every store holding a price for each product on or
// before day, stably sorted by ascending value per unit. The value per unit
// comes from the nominal price; discount fields are informational.
func (b *Builder) Build(ctx context.Context, products []*domain.Product, day civil.Date) ([]dto.ProductRecommendation, error) {
	rows := []dto.ProductRecommendation{}

	for _, product := range products {
		records, err := b.prices.FindPricesForProduct(ctx, product.ID(), day)
		if err != nil {
			return nil, fmt.Errorf("find prices for %s: %w", product.ID(), err)
		}

		for _, record := range services.SelectLatestPerStore(records, day).Records() {
			offer, err := b.calculator.ResolveOffer(ctx, b.discounts, record, day)
			if err != nil {
				return nil, err
			}
			rows = append(rows, buildRow(product, offer))
		}
	}

	SortByValue(rows)
	return rows, nil
}

func buildRow(product *domain.Product, offer domain.StoreOffer) dto.ProductRecommendation {
	nominal := offer.BasePrice()
	value, unit := product.ValuePerUnit(nominal)

	row := dto.ProductRecommendation{
		ProductInfo:  dto.InfoOf(product),
		StoreName:    offer.Store.Name,
		Price:        nominal,
		Currency:     offer.Price.Currency(),
		ValuePerUnit: value,
		UnitType:     unit,
		PriceDate:    offer.Price.Date(),
		OnDiscount:   offer.IsDiscounted(),
	}
	if offer.IsDiscounted() {
		discounted := offer.FinalPrice.Round2()
		row.PercentageOfDiscount = offer.DiscountPercentage
		row.OriginalPrice = &nominal
		row.DiscountedPrice = &discounted
	}
	return row
}

// SortByValue stably orders rows by ascending value per unit.
func SortByValue(rows []dto.ProductRecommendation) {
	slices.SortStableFunc(rows, func(a, b dto.ProductRecommendation) int {
		return a.ValuePerUnit.Cmp(b.ValuePerUnit)
	})
}

// KeepBestValue keeps, per product, every row whose value per unit is
// strictly within BestValueTolerance of that product's minimum. Products
// appear in order of their first row; the result is sorted by value.
func KeepBestValue(rows []dto.ProductRecommendation) []dto.ProductRecommendation {
	var order []string
	groups := make(map[string][]dto.ProductRecommendation)
	for _, r := range rows {
		if _, seen := groups[r.ProductID]; !seen {
			order = append(order, r.ProductID)
		}
		groups[r.ProductID] = append(groups[r.ProductID], r)
	}

	out := []dto.ProductRecommendation{}
	for _, id := range order {
		group := groups[id]
		best := group[0].ValuePerUnit
		for _, r := range group[1:] {
			if r.ValuePerUnit.LessThan(best) {
				best = r.ValuePerUnit
			}
		}
		for _, r := range group {
			if r.ValuePerUnit.Subtract(best).Abs().Decimal().LessThan(BestValueTolerance) {
				out = append(out, r)
			}
		}
	}

	SortByValue(out)
	return out
}
