package best_value_products

import (
	"context"
	"fmt"

	"github.com/murkotick/price-comparator/internal/app/pricing/contracts"
	"github.com/murkotick/price-comparator/internal/app/pricing/dto"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries/recommendations"
	"github.com/murkotick/price-comparator/internal/pkg/clock"
)

type Request struct {
	Category string
}

// Handler lists, for each product of a category, every store tied for the
// best value per unit.
type Handler struct {
	products contracts.ProductReader
	builder  *recommendations.Builder
	clock    clock.Clock
}

func NewHandler(catalog contracts.Catalog, clk clock.Clock) *Handler {
	return &Handler{
		products: catalog,
		builder:  recommendations.NewBuilder(catalog, catalog),
		clock:    clk,
	}
}

func (h *Handler) Execute(ctx context.Context, req Request) ([]dto.ProductRecommendation, error) {
	products, err := h.products.FindProductsByCategory(ctx, req.Category)
	if err != nil {
		return nil, fmt.Errorf("find products in %q: %w", req.Category, err)
	}
	if len(products) == 0 {
		return []dto.ProductRecommendation{}, nil
	}

	rows, err := h.builder.Build(ctx, products, clock.Today(h.clock))
	if err != nil {
		return nil, err
	}
	return recommendations.KeepBestValue(rows), nil
}
