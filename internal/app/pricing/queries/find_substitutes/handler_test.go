package find_substitutes

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
	lidl  = domain.Store{ID: "S1", Name: "lidl"}
	today = pricingtest.Day(2025, 5, 8)
)

func seeded(t *testing.T) *memory.Catalog {
	return memory.NewCatalog().
		AddProducts(
			pricingtest.Product(t, "P1", "lapte zuzu 3.5%", "lactate", "Zuzu", "1", "l"),
			pricingtest.Product(t, "P2", "lapte de vaca", "lactate", "Napolact", "1", "l"),
			pricingtest.Product(t, "P3", "Lapte batut Zuzu", "lactate", "Zuzu", "500", "ml"),
			pricingtest.Product(t, "P4", "iaurt", "lactate", "Danone", "400", "g"),
			pricingtest.Product(t, "P5", "lapte condensat", "dulciuri", "Nestle", "397", "g"),
		).
		AddPrices(
			pricingtest.Price(t, "p1", "P1", lidl, "9.90", today),
			pricingtest.Price(t, "p2", "P2", lidl, "8.50", today),
			pricingtest.Price(t, "p3", "P3", lidl, "5.00", today),
			pricingtest.Price(t, "p5", "P5", lidl, "6.00", today),
		)
}

func newHandler(c *memory.Catalog) *Handler {
	return NewHandler(c, clock.NewFakeOn(today), logger.Nop())
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"lapte", "zuzu", "3.5%"}, Tokens("lapte zuzu 3.5%"))
	assert.Equal(t, []string{"cafea"}, Tokens("  de   la cafea "))
	assert.Empty(t, Tokens("ou"))
}

func TestExecute_SameCategoryByToken(t *testing.T) {
	rows, err := newHandler(seeded(t)).Execute(context.Background(), Request{ProductID: "P1"})
	require.NoError(t, err)

	require.Len(t, rows, 2)
	// P2 is 8.50/l, P3 is 5.00 per 0.5 l = 10.00/l
	assert.Equal(t, "P2", rows[0].ProductID)
	assert.Equal(t, "P3", rows[1].ProductID)
	for _, r := range rows {
		assert.NotEqual(t, "P1", r.ProductID)
		assert.Equal(t, "lactate", r.Category)
	}
}

func TestExecute_Limit(t *testing.T) {
	rows, err := newHandler(seeded(t)).Execute(context.Background(), Request{ProductID: "P1", Limit: 1})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "P2", rows[0].ProductID)
}

func TestExecute_NoMatches(t *testing.T) {
	rows, err := newHandler(seeded(t)).Execute(context.Background(), Request{ProductID: "P4"})
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestExecute_UnknownProduct(t *testing.T) {
	_, err := newHandler(seeded(t)).Execute(context.Background(), Request{ProductID: "nope"})
	assert.True(t, errors.Is(err, domain.ErrProductNotFound))
}
