package delete_alert

import (
	"context"
	"fmt"

	"github.com/murkotick/price-comparator/internal/app/pricing/contracts"
	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
	shared "github.com/murkotick/price-comparator/internal/app/pricing/usecases/shared"
	"github.com/murkotick/price-comparator/internal/pkg/clock"
	commitplan "github.com/murkotick/price-comparator/internal/pkg/committer"
)

type Request struct {
	AlertID string
}

type Interactor struct {
	AlertRepo  contracts.AlertRepo
	OutboxRepo contracts.OutboxRepo
	Committer  contracts.Committer
	Alerts     contracts.AlertReader
	Clock      clock.Clock
}

func NewInteractor(alertRepo contracts.AlertRepo, outboxRepo contracts.OutboxRepo, committer contracts.Committer, alerts contracts.AlertReader, clk clock.Clock) *Interactor {
	return &Interactor{
		AlertRepo:  alertRepo,
		OutboxRepo: outboxRepo,
		Committer:  committer,
		Alerts:     alerts,
		Clock:      clk,
	}
}

func (it *Interactor) Execute(ctx context.Context, req Request) error {
	now := it.Clock.Now()

	// 1. Load aggregate
	alert, err := it.Alerts.FindAlert(ctx, req.AlertID)
	if err != nil {
		return fmt.Errorf("find alert %s: %w", req.AlertID, err)
	}
	if alert == nil {
		return fmt.Errorf("%w: %s", domain.ErrAlertNotFound, req.AlertID)
	}

	// 2. Domain call
	alert.MarkDeleted(now)

	// 3. Delete mutation and outbox events in one plan
	plan := commitplan.NewPlan()
	plan.Add(it.AlertRepo.DeleteMut(alert))

	muts, err := shared.OutboxMutations(it.OutboxRepo, alert.DomainEvents(), now)
	if err != nil {
		return err
	}
	plan.Add(muts...)

	// 4. Apply plan
	return it.Committer.Apply(ctx, plan)
}
