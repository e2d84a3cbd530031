// Package pricingtest builds domain fixtures for tests.
package pricingtest

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
)

func Day(y, m, d int) civil.Date {
	return civil.Date{Year: y, Month: time.Month(m), Day: d}
}

func Money(t testing.TB, amount string) domain.Money {
	t.Helper()
	m, err := domain.NewMoneyFromString(amount)
	require.NoError(t, err)
	return m
}

func Product(t testing.TB, id, name, category, brand, quantity, unit string) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct(id, name, category, brand, decimal.RequireFromString(quantity), unit)
	require.NoError(t, err)
	return p
}

func Price(t testing.TB, id, productID string, store domain.Store, amount string, date civil.Date) *domain.PriceRecord {
	t.Helper()
	p, err := domain.NewPriceRecord(id, productID, store, Money(t, amount), "RON", date)
	require.NoError(t, err)
	return p
}

func Discount(t testing.TB, id, productID string, store domain.Store, percentage string, start, end civil.Date) *domain.Discount {
	t.Helper()
	d, err := domain.NewDiscount(id, productID, store, decimal.RequireFromString(percentage), start, end)
	require.NoError(t, err)
	return d
}

func Alert(t testing.TB, id, email, productID string, store *domain.Store, target string, status domain.AlertStatus, created civil.Date) *domain.PriceAlert {
	t.Helper()
	return domain.ReconstructPriceAlert(id, email, productID, store, Money(t, target), "RON", status, created, created)
}
