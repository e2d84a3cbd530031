package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
)

var (
	storeX = domain.Store{ID: "SX", Name: "x"}
	storeY = domain.Store{ID: "SY", Name: "y"}
	today  = civil.Date{Year: 2025, Month: time.May, Day: 8}
)

type discountList []*domain.Discount

func (l discountList) FindDiscount(_ context.Context, productID, storeID string, on civil.Date) (*domain.Discount, error) {
	return NewPricingCalculator().ActiveDiscount(l, productID, storeID, on), nil
}

type failingFinder struct{}

func (failingFinder) FindDiscount(context.Context, string, string, civil.Date) (*domain.Discount, error) {
	return nil, errors.New("spanner unavailable")
}

func price(t *testing.T, id string, store domain.Store, amount string, date civil.Date) *domain.PriceRecord {
	t.Helper()
	m, err := domain.NewMoneyFromString(amount)
	require.NoError(t, err)
	p, err := domain.NewPriceRecord(id, "A", store, m, "RON", date)
	require.NoError(t, err)
	return p
}

func discount(t *testing.T, id string, store domain.Store, pct int64, start, end civil.Date) *domain.Discount {
	t.Helper()
	d, err := domain.NewDiscount(id, "A", store, decimal.NewFromInt(pct), start, end)
	require.NoError(t, err)
	return d
}

func TestEffectivePrice(t *testing.T) {
	pc := NewPricingCalculator()
	base := domain.NewMoneyFromFloat(12.34)

	assert.True(t, pc.EffectivePrice(base, nil).Equals(base))

	for _, p := range []int64{0, 5, 10, 33, 50, 99, 100} {
		pct := decimal.NewFromInt(p)
		want := base.Decimal().Mul(decimal.NewFromInt(1).Sub(pct.Div(decimal.NewFromInt(100))))
		got := pc.EffectivePrice(base, &pct)
		assert.True(t, got.Decimal().Equal(want), "pct %d: got %s want %s", p, got.Decimal(), want)
	}
}

func TestActiveDiscount_FirstMatchWins(t *testing.T) {
	pc := NewPricingCalculator()
	first := discount(t, "D1", storeY, 10, today.AddDays(-1), today)
	second := discount(t, "D2", storeY, 30, today, today.AddDays(3))
	expired := discount(t, "D0", storeY, 50, today.AddDays(-9), today.AddDays(-2))

	got := pc.ActiveDiscount([]*domain.Discount{expired, first, second}, "A", storeY.ID, today)
	require.NotNil(t, got)
	assert.Equal(t, "D1", got.ID())

	assert.Nil(t, pc.ActiveDiscount([]*domain.Discount{first}, "A", storeX.ID, today))
}

func TestResolveOffers_OverlaysDiscount(t *testing.T) {
	pc := NewPricingCalculator()
	latest := SelectLatestPerStore([]*domain.PriceRecord{
		price(t, "p1", storeX, "10.00", today),
		price(t, "p2", storeY, "9.00", today),
	}, today)
	finder := discountList{discount(t, "D1", storeY, 10, today, today)}

	offers, err := pc.ResolveOffers(context.Background(), finder, latest, today)
	require.NoError(t, err)
	require.Len(t, offers, 2)

	assert.False(t, offers[0].IsDiscounted())
	assert.Equal(t, "10.00", offers[0].FinalPrice.String())
	assert.True(t, offers[1].IsDiscounted())
	assert.Equal(t, "8.10", offers[1].FinalPrice.String())

	cheapest, ok := Cheapest(offers)
	require.True(t, ok)
	assert.Equal(t, storeY, cheapest.Store)

	costliest, ok := Costliest(offers)
	require.True(t, ok)
	assert.Equal(t, storeX, costliest.Store)
}

func TestResolveOffer_PropagatesFinderError(t *testing.T) {
	_, err := NewPricingCalculator().ResolveOffer(context.Background(), failingFinder{}, price(t, "p1", storeX, "1", today), today)
	assert.Error(t, err)
}

func TestCheapest_TiesKeepFirst(t *testing.T) {
	offers := []domain.StoreOffer{
		{Store: storeX, FinalPrice: domain.NewMoneyFromFloat(5)},
		{Store: storeY, FinalPrice: domain.NewMoneyFromFloat(5)},
	}

	c, _ := Cheapest(offers)
	w, _ := Costliest(offers)
	assert.Equal(t, storeX, c.Store)
	assert.Equal(t, storeX, w.Store)

	_, ok := Cheapest(nil)
	assert.False(t, ok)
}
