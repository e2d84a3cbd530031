package new_discounts

import (
	"context"
	"fmt"
	"slices"

	"cloud.google.com/go/civil"

	"github.com/murkotick/price-comparator/internal/app/pricing/contracts"
	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
	"github.com/murkotick/price-comparator/internal/app/pricing/dto"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries/discountrows"
	"github.com/murkotick/price-comparator/internal/pkg/clock"
	"github.com/murkotick/price-comparator/internal/pkg/logger"
)

// Request is an inclusive window on discount start dates. A zero To means
// today and a zero From means the day before To.
type Request struct {
	From civil.Date
	To   civil.Date
}

// Handler lists discounts that started inside a window, newest first.
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
	to := req.To
	if to.IsZero() {
		to = clock.Today(h.clock)
	}
	from := req.From
	if from.IsZero() {
		from = to.AddDays(-1)
	}
	if from.After(to) {
		return nil, fmt.Errorf("%w: from %s is after to %s", domain.ErrInvalidDateRange, from, to)
	}

	started, err := h.discounts.FindDiscountsStartingBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("find discounts starting %s..%s: %w", from, to, err)
	}

	// prices are taken as of the end of the window
	rows, err := h.joiner.Join(ctx, started, to)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(rows, func(a, b dto.BestDiscount) int {
		switch {
		case a.StartDate.After(b.StartDate):
			return -1
		case a.StartDate.Before(b.StartDate):
			return 1
		}
		return 0
	})
	return rows, nil
}
