package find_substitutes

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/murkotick/price-comparator/internal/app/pricing/contracts"
	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
	"github.com/murkotick/price-comparator/internal/app/pricing/dto"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries/recommendations"
	"github.com/murkotick/price-comparator/internal/pkg/clock"
	"github.com/murkotick/price-comparator/internal/pkg/logger"
)

// minTokenLength is the shortest name token used for matching.
const minTokenLength = 3

// Request asks for alternatives to one product. Limit <= 0 means no limit.
type Request struct {
	ProductID string
	Limit     int
}

// Handler finds same-category products sharing a name token with the
// requested product and ranks them by value per unit.
type Handler struct {
	products contracts.ProductReader
	builder  *recommendations.Builder
	clock    clock.Clock
	logg     *logger.Logger
}

func NewHandler(catalog contracts.Catalog, clk clock.Clock, logg *logger.Logger) *Handler {
	return &Handler{
		products: catalog,
		builder:  recommendations.NewBuilder(catalog, catalog),
		clock:    clk,
		logg:     logg,
	}
}

func (h *Handler) Execute(ctx context.Context, req Request) ([]dto.ProductRecommendation, error) {
	product, err := h.products.FindProduct(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("find product %s: %w", req.ProductID, err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, req.ProductID)
	}

	candidates, err := h.candidates(ctx, product)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		h.logg.Info(h.logg.WithProductID(ctx, product.ID()), "no substitutes found")
		return []dto.ProductRecommendation{}, nil
	}

	rows, err := h.builder.Build(ctx, candidates, clock.Today(h.clock))
	if err != nil {
		return nil, err
	}
	if req.Limit > 0 && len(rows) > req.Limit {
		rows = rows[:req.Limit]
	}
	return rows, nil
}

// candidates unions the per-token matches, first occurrence wins, without the product itself.
func (h *Handler) candidates(ctx context.Context, product *domain.Product) ([]*domain.Product, error) {
	seen := map[string]struct{}{product.ID(): {}}
	var out []*domain.Product

	for _, token := range Tokens(product.Name()) {
		matches, err := h.products.FindProductsByCategoryAndNameContains(ctx, product.Category(), token)
		if err != nil {
			return nil, fmt.Errorf("find products matching %q: %w", token, err)
		}
		for _, m := range matches {
			if _, dup := seen[m.ID()]; dup {
				continue
			}
			seen[m.ID()] = struct{}{}
			out = append(out, m)
		}
	}
	return out, nil
}

// Tokens splits a product name on whitespace and drops tokens shorter than three characters.
func Tokens(name string) []string {
	var out []string
	for _, t := range strings.Fields(name) {
		if utf8.RuneCountInString(t) >= minTokenLength {
			out = append(out, t)
		}
	}
	return out
}
