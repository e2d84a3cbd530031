package delete_alert

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
	"github.com/murkotick/price-comparator/internal/app/pricing/pricingtest"
	"github.com/murkotick/price-comparator/internal/app/pricing/repo"
	"github.com/murkotick/price-comparator/internal/app/pricing/repo/memory"
	"github.com/murkotick/price-comparator/internal/pkg/clock"
	"github.com/murkotick/price-comparator/internal/pkg/committer"
)

var today = pricingtest.Day(2025, 5, 8)

type fakeCommitter struct {
	plans []*committer.Plan
}

func (f *fakeCommitter) Apply(_ context.Context, plan *committer.Plan) error {
	f.plans = append(f.plans, plan)
	return nil
}

func TestExecute(t *testing.T) {
	alerts := memory.NewAlerts().Add(
		pricingtest.Alert(t, "A1", "ana@example.com", "P1", nil, "8.00", domain.AlertStatusActive, today),
	)
	c := &fakeCommitter{}
	it := NewInteractor(repo.NewAlertRepo(), repo.NewOutboxRepo(), c, alerts, clock.NewFakeOn(today))

	require.NoError(t, it.Execute(context.Background(), Request{AlertID: "A1"}))

	require.Len(t, c.plans, 1)
	// delete + deleted event
	assert.Equal(t, 2, c.plans[0].Len())
}

func TestExecute_NotFound(t *testing.T) {
	c := &fakeCommitter{}
	it := NewInteractor(repo.NewAlertRepo(), repo.NewOutboxRepo(), c, memory.NewAlerts(), clock.NewFakeOn(today))

	err := it.Execute(context.Background(), Request{AlertID: "missing"})
	assert.True(t, errors.Is(err, domain.ErrAlertNotFound))
	assert.Empty(t, c.plans)
}
