package discountrows

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
	"github.com/murkotick/price-comparator/internal/app/pricing/pricingtest"
	"github.com/murkotick/price-comparator/internal/app/pricing/repo/memory"
	"github.com/murkotick/price-comparator/internal/pkg/logger"
)

var lidl = domain.Store{ID: "S1", Name: "lidl"}

func TestJoin(t *testing.T) {
	day := pricingtest.Day(2025, 5, 8)
	catalog := memory.NewCatalog().
		AddProducts(pricingtest.Product(t, "P1", "Lapte", "lactate", "Zuzu", "1", "l")).
		AddPrices(
			pricingtest.Price(t, "p1", "P1", lidl, "9.00", day.AddDays(-2)),
			pricingtest.Price(t, "p2", "P1", lidl, "12.00", day.AddDays(1)),
		)

	discounts := []*domain.Discount{
		pricingtest.Discount(t, "D1", "P1", lidl, "10", day, day.AddDays(6)),
		pricingtest.Discount(t, "D2", "GONE", lidl, "50", day, day),
		pricingtest.Discount(t, "D3", "P1", domain.Store{ID: "S9", Name: "mega"}, "20", day, day),
	}

	rows, err := NewJoiner(catalog, catalog, logger.Nop()).Join(context.Background(), discounts, day)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "P1", rows[0].ProductID)
	assert.Equal(t, "lidl", rows[0].StoreName)
	assert.Equal(t, "9.00", rows[0].OriginalPrice.String())
	assert.Equal(t, "8.10", rows[0].DiscountedPrice.String())
	assert.Equal(t, "RON", rows[0].Currency)
	assert.Equal(t, day.AddDays(6), rows[0].EndDate)
}
