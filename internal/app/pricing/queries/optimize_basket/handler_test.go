package optimize_basket

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
	"github.com/murkotick/price-comparator/internal/app/pricing/pricingtest"
	"github.com/murkotick/price-comparator/internal/app/pricing/repo/memory"
	"github.com/murkotick/price-comparator/internal/pkg/clock"
	"github.com/murkotick/price-comparator/internal/pkg/logger"
)

var (
	storeX = domain.Store{ID: "SX", Name: "store-x"}
	storeY = domain.Store{ID: "SY", Name: "store-y"}
	today  = pricingtest.Day(2025, 5, 8)
)

func newHandler(catalog *memory.Catalog) *Handler {
	return NewHandler(catalog, clock.NewFakeOn(today), logger.Nop())
}

// Store Y has the lower effective price after its 10% discount.
func TestExecute_AssignsCheapestStore(t *testing.T) {
	catalog := memory.NewCatalog().
		AddStores(storeX, storeY).
		AddProducts(pricingtest.Product(t, "A", "Lapte zuzu", "lactate", "Zuzu", "1", "l")).
		AddPrices(
			pricingtest.Price(t, "p1", "A", storeX, "10.00", today),
			pricingtest.Price(t, "p2", "A", storeY, "9.00", today),
		).
		AddDiscounts(pricingtest.Discount(t, "d1", "A", storeY, "10", today, today))

	plan, err := newHandler(catalog).Execute(context.Background(), Request{
		Lines: []domain.BasketLine{{ProductID: "A", Quantity: 2}},
	})
	require.NoError(t, err)

	require.Len(t, plan.StoreLists, 1)
	list := plan.StoreLists[0]
	assert.Equal(t, "store-y", list.StoreName)
	require.Len(t, list.Items, 1)

	item := list.Items[0]
	assert.Equal(t, "8.10", item.UnitPrice.String())
	assert.Equal(t, "16.20", item.TotalPrice.String())
	assert.True(t, item.OnDiscount)
	require.NotNil(t, item.SavingsPerUnit)
	assert.Equal(t, "0.90", item.SavingsPerUnit.String())

	assert.Equal(t, "16.20", plan.TotalCost.String())
	assert.Equal(t, "20.00", plan.WorstCaseCost.String())
	assert.Equal(t, "3.80", plan.TotalSavings.String())
	assert.Equal(t, 1, plan.TotalStores)
	assert.Equal(t, 1, plan.TotalItems)
	assert.Equal(t, "RON", plan.Currency)
}

func TestExecute_EmptyBasket(t *testing.T) {
	h := newHandler(memory.NewCatalog())

	_, err := h.Execute(context.Background(), Request{})
	assert.True(t, errors.Is(err, domain.ErrBasketEmpty))
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))

	_, err = h.Execute(context.Background(), Request{Lines: []domain.BasketLine{{ProductID: "A", Quantity: 0}, {ProductID: "B", Quantity: -1}}})
	assert.True(t, errors.Is(err, domain.ErrBasketEmpty))
}

// A single unknown product aborts the whole request even after valid lines.
func TestExecute_UnknownProductAborts(t *testing.T) {
	catalog := memory.NewCatalog().
		AddProducts(pricingtest.Product(t, "A", "Lapte zuzu", "lactate", "Zuzu", "1", "l")).
		AddPrices(pricingtest.Price(t, "p1", "A", storeX, "10.00", today))

	plan, err := newHandler(catalog).Execute(context.Background(), Request{
		Lines: []domain.BasketLine{{ProductID: "A", Quantity: 1}, {ProductID: "missing", Quantity: 1}},
	})

	assert.Nil(t, plan)
	assert.True(t, errors.Is(err, domain.ErrProductNotFound))
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

// Lines without any price and lines with non-positive quantity are dropped but still counted.
func TestExecute_SkipsUnpricedAndNonPositiveLines(t *testing.T) {
	catalog := memory.NewCatalog().
		AddProducts(
			pricingtest.Product(t, "A", "Lapte zuzu", "lactate", "Zuzu", "1", "l"),
			pricingtest.Product(t, "B", "Paine alba", "panificatie", "Vel Pitar", "500", "g"),
		).
		AddPrices(pricingtest.Price(t, "p1", "A", storeX, "3.335", today))

	plan, err := newHandler(catalog).Execute(context.Background(), Request{
		Lines: []domain.BasketLine{
			{ProductID: "A", Quantity: 3},
			{ProductID: "B", Quantity: 1},
			{ProductID: "A", Quantity: 0},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, plan.TotalItems)
	assert.Equal(t, 1, plan.TotalStores)
	// unit price is rounded before multiplying: 3.34 * 3
	assert.Equal(t, "10.02", plan.TotalCost.String())
	assert.Equal(t, "10.01", plan.WorstCaseCost.String())
}

func TestExecute_NoPricesAnywhere(t *testing.T) {
	catalog := memory.NewCatalog().
		AddProducts(pricingtest.Product(t, "A", "Lapte zuzu", "lactate", "Zuzu", "1", "l"))

	plan, err := newHandler(catalog).Execute(context.Background(), Request{
		Lines: []domain.BasketLine{{ProductID: "A", Quantity: 1}},
	})
	require.NoError(t, err)

	assert.Empty(t, plan.StoreLists)
	assert.True(t, plan.TotalCost.IsZero())
	assert.True(t, plan.TotalSavings.IsZero())
	assert.Equal(t, 0, plan.TotalStores)
}

// Two products cheapest at different stores produce two lists in first-assignment order.
func TestExecute_SplitsAcrossStores(t *testing.T) {
	catalog := memory.NewCatalog().
		AddProducts(
			pricingtest.Product(t, "A", "Lapte zuzu", "lactate", "Zuzu", "1", "l"),
			pricingtest.Product(t, "B", "Paine alba", "panificatie", "Vel Pitar", "500", "g"),
		).
		AddPrices(
			pricingtest.Price(t, "p1", "A", storeX, "5.00", today),
			pricingtest.Price(t, "p2", "A", storeY, "6.00", today),
			pricingtest.Price(t, "p3", "B", storeX, "4.00", today),
			pricingtest.Price(t, "p4", "B", storeY, "3.00", today),
			pricingtest.Price(t, "p5", "B", storeY, "2.00", today.AddDays(1)),
		)

	plan, err := newHandler(catalog).Execute(context.Background(), Request{
		Lines: []domain.BasketLine{{ProductID: "B", Quantity: 1}, {ProductID: "A", Quantity: 2}},
	})
	require.NoError(t, err)

	require.Len(t, plan.StoreLists, 2)
	assert.Equal(t, "store-y", plan.StoreLists[0].StoreName)
	assert.Equal(t, "3.00", plan.StoreLists[0].Subtotal.String())
	assert.Equal(t, "store-x", plan.StoreLists[1].StoreName)
	assert.Equal(t, "10.00", plan.StoreLists[1].Subtotal.String())
	assert.Equal(t, "13.00", plan.TotalCost.String())
	assert.Equal(t, "16.00", plan.WorstCaseCost.String())
	assert.Equal(t, "3.00", plan.TotalSavings.String())
}
