package get_alert

import (
	"context"
	"fmt"

	"github.com/murkotick/price-comparator/internal/app/pricing/contracts"
	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
	"github.com/murkotick/price-comparator/internal/app/pricing/dto"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries/alertview"
	"github.com/murkotick/price-comparator/internal/pkg/clock"
)

type Request struct {
	AlertID string
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

func (h *Handler) Execute(ctx context.Context, req Request) (*dto.PriceAlertView, error) {
	alert, err := h.alerts.FindAlert(ctx, req.AlertID)
	if err != nil {
		return nil, fmt.Errorf("find alert %s: %w", req.AlertID, err)
	}
	if alert == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrAlertNotFound, req.AlertID)
	}

	view, err := h.presenter.View(ctx, alert, clock.Today(h.clock))
	if err != nil {
		return nil, err
	}
	return &view, nil
}
