package list_alerts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
	"github.com/murkotick/price-comparator/internal/app/pricing/pricingtest"
	"github.com/murkotick/price-comparator/internal/app/pricing/repo/memory"
	"github.com/murkotick/price-comparator/internal/pkg/clock"
)

var today = pricingtest.Day(2025, 5, 8)

func TestExecute(t *testing.T) {
	catalog := memory.NewCatalog().
		AddProducts(pricingtest.Product(t, "P1", "Lapte", "lactate", "Zuzu", "1", "l"))
	alerts := memory.NewAlerts().Add(
		pricingtest.Alert(t, "A3", "bob@example.com", "P1", nil, "5.00", domain.AlertStatusActive, today.AddDays(-1)),
		pricingtest.Alert(t, "A2", "ana@example.com", "P1", nil, "5.00", domain.AlertStatusActive, today),
		pricingtest.Alert(t, "A1", "ana@example.com", "GONE", nil, "5.00", domain.AlertStatusActive, today),
	)
	h := NewHandler(alerts, catalog, clock.NewFakeOn(today))

	mine, err := h.Execute(context.Background(), Request{UserEmail: " Ana@Example.com"})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "A1", mine[0].ID)
	assert.Equal(t, "", mine[0].ProductName)
	assert.Nil(t, mine[0].CurrentBestPrice)
	assert.Equal(t, "A2", mine[1].ID)
	assert.Equal(t, "Lapte", mine[1].ProductName)

	all, err := h.Execute(context.Background(), Request{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "A3", all[0].ID)
}

func TestExecute_NoAlerts(t *testing.T) {
	views, err := NewHandler(memory.NewAlerts(), memory.NewCatalog(), clock.NewFakeOn(today)).
		Execute(context.Background(), Request{UserEmail: "nobody@example.com"})
	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}
