package list_alerts

import (
	"context"
	"fmt"
	"strings"

	"github.com/murkotick/price-comparator/internal/app/pricing/contracts"
	"github.com/murkotick/price-comparator/internal/app/pricing/dto"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries/alertview"
	"github.com/murkotick/price-comparator/internal/pkg/clock"
)

// Request lists one user's alerts, or every alert when UserEmail is empty.
type Request struct {
	UserEmail string
}

type Handler struct {
	alerts    contracts.AlertReader
	presenter *alertview.Presenter
	clock     clock.Clock
}

func NewHandler(alerts contracts.AlertReader, catalog contracts.Catalog, clk clock.Clock) *Handler {
	return &Handler{
		alerts:    alerts,
		presenter: alertview.NewPresenter(catalog),
		clock:     clk,
	}
}

func (h *Handler) Execute(ctx context.Context, req Request) ([]dto.PriceAlertView, error) {
	email := strings.ToLower(strings.TrimSpace(req.UserEmail))

	alerts, err := h.alerts.ListAlerts(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}

	today := clock.Today(h.clock)
	views := make([]dto.PriceAlertView, 0, len(alerts))
	for _, a := range alerts {
		view, err := h.presenter.View(ctx, a, today)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}
