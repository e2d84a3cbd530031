package check_alerts

import (
	"context"
	"fmt"
	"strings"

	"github.com/murkotick/price-comparator/internal/app/pricing/contracts"
	"github.com/murkotick/price-comparator/internal/app/pricing/dto"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries/alertview"
	shared "github.com/murkotick/price-comparator/internal/app/pricing/usecases/shared"
	"github.com/murkotick/price-comparator/internal/pkg/clock"
	commitplan "github.com/murkotick/price-comparator/internal/pkg/committer"
	"github.com/murkotick/price-comparator/internal/pkg/logger"
)

// Request checks one user's alerts, or every alert when UserEmail is empty.
type Request struct {
	UserEmail string
}

type Interactor struct {
	AlertRepo  contracts.AlertRepo
	OutboxRepo contracts.OutboxRepo
	Committer  contracts.Committer
	Alerts     contracts.AlertReader
	Clock      clock.Clock
	Logger     *logger.Logger

	presenter *alertview.Presenter
}

func NewInteractor(alertRepo contracts.AlertRepo, outboxRepo contracts.OutboxRepo, committer contracts.Committer,
	alerts contracts.AlertReader, catalog contracts.Catalog, clk clock.Clock, logg *logger.Logger) *Interactor {
	return &Interactor{
		AlertRepo:  alertRepo,
		OutboxRepo: outboxRepo,
		Committer:  committer,
		Alerts:     alerts,
		Clock:      clk,
		Logger:     logg,
		presenter:  alertview.NewPresenter(catalog),
	}
}

// Execute evaluates alerts against today's best price. Alerts without a
// price are left untouched. Every alert at or below its target counts as
// triggered; only those that changed state in this pass are returned.
func (it *Interactor) Execute(ctx context.Context, req Request) (*dto.AlertCheckResult, error) {
	now := it.Clock.Now()
	today := clock.Today(it.Clock)

	// 1. Load aggregates
	alerts, err := it.Alerts.ListAlerts(ctx, strings.ToLower(strings.TrimSpace(req.UserEmail)))
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}

	result := &dto.AlertCheckResult{
		TotalAlerts:          len(alerts),
		NewlyTriggeredAlerts: []dto.PriceAlertView{},
	}
	plan := commitplan.NewPlan()

	for _, alert := range alerts {
		// 2. Domain call
		current, err := it.presenter.CurrentPrice(ctx, alert, today)
		if err != nil {
			return nil, err
		}
		if current == nil {
			it.Logger.Debug(it.Logger.WithFields(ctx, map[string]any{
				"alert_id":   alert.ID(),
				"product_id": alert.ProductID(),
			}), "no current price for alert, skipping")
			continue
		}

		reached, fresh := alert.Check(*current, now)
		if reached {
			result.TriggeredAlerts++
		}
		if fresh {
			view, err := it.presenter.ViewWithPrice(ctx, alert, current)
			if err != nil {
				return nil, err
			}
			result.NewlyTriggeredAlerts = append(result.NewlyTriggeredAlerts, view)
		}

		// 3. Update mutation plus outbox events
		plan.Add(it.AlertRepo.UpdateMut(alert))
		muts, err := shared.OutboxMutations(it.OutboxRepo, alert.DomainEvents(), now)
		if err != nil {
			return nil, err
		}
		plan.Add(muts...)
	}

	// 4. Apply plan
	if !plan.IsEmpty() {
		if err := it.Committer.Apply(ctx, plan); err != nil {
			return nil, err
		}
	}
	for _, alert := range alerts {
		alert.ClearEvents()
		alert.Changes().Clear()
	}

	it.Logger.Info(it.Logger.WithFields(ctx, map[string]any{
		"total":           result.TotalAlerts,
		"triggered":       result.TriggeredAlerts,
		"newly_triggered": len(result.NewlyTriggeredAlerts),
	}), "price alerts checked")

	return result, nil
}
