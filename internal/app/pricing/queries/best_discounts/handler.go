package best_discounts

import (
	"context"
	"fmt"
	"slices"

	"cloud.google.com/go/civil"

	"github.com/murkotick/price-comparator/internal/app/pricing/contracts"
	"github.com/murkotick/price-comparator/internal/app/pricing/dto"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries/discountrows"
	"github.com/murkotick/price-comparator/internal/pkg/clock"
	"github.com/murkotick/price-comparator/internal/pkg/logger"
)

// Request selects discounts active on Date (zero means today).
// Limit <= 0 returns every row.
type Request struct {
	Date  civil.Date
	Limit int
}

// Handler ranks the discounts active on a day by percentage.
type Handler struct {
	discounts contracts.DiscountReader
	joiner    *discountrows.Joiner
	clock     clock.Clock
}

func NewHandler(catalog contracts.Catalog, clk clock.Clock, logg *logger.Logger) *Handler {
	return &Handler{
		discounts: catalog,
		joiner:    discountrows.NewJoiner(catalog, catalog, logg),
		clock:     clk,
	}
}

func (h *Handler) Execute(ctx context.Context, req Request) ([]dto.BestDiscount, error) {
	day := req.Date
	if day.IsZero() {
		day = clock.Today(h.clock)
	}

	active, err := h.discounts.FindActiveDiscounts(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("find active discounts on %s: %w", day, err)
	}

	rows, err := h.joiner.Join(ctx, active, day)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(rows, func(a, b dto.BestDiscount) int {
		return b.PercentageOfDiscount.Cmp(a.PercentageOfDiscount)
	})
	if req.Limit > 0 && len(rows) > req.Limit {
		rows = rows[:req.Limit]
	}
	return rows, nil
}
