package domain

import (
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lidl = Store{ID: "S1", Name: "lidl"}

func day(y, m, d int) civil.Date {
	return civil.Date{Year: y, Month: time.Month(m), Day: d}
}

func TestNewDiscount_Validation(t *testing.T) {
	start, end := day(2025, 5, 1), day(2025, 5, 7)

	_, err := NewDiscount("D1", "P1", lidl, decimal.NewFromInt(-1), start, end)
	assert.True(t, errors.Is(err, ErrInvalidDiscountPercentage))

	_, err = NewDiscount("D1", "P1", lidl, decimal.NewFromInt(101), start, end)
	assert.True(t, errors.Is(err, ErrInvalidDiscountPercentage))

	_, err = NewDiscount("D1", "P1", lidl, decimal.NewFromInt(10), end, start)
	assert.True(t, errors.Is(err, ErrInvalidDiscountPeriod))
	assert.Equal(t, KindInvalidInput, KindOf(err))

	single, err := NewDiscount("D1", "P1", lidl, decimal.NewFromInt(10), start, start)
	require.NoError(t, err)
	assert.True(t, single.IsActiveOn(start))
}

func TestDiscount_IsActiveOnInclusiveBounds(t *testing.T) {
	d, err := NewDiscount("D1", "P1", lidl, decimal.NewFromInt(25), day(2025, 5, 1), day(2025, 5, 7))
	require.NoError(t, err)

	assert.False(t, d.IsActiveOn(day(2025, 4, 30)))
	assert.True(t, d.IsActiveOn(day(2025, 5, 1)))
	assert.True(t, d.IsActiveOn(day(2025, 5, 4)))
	assert.True(t, d.IsActiveOn(day(2025, 5, 7)))
	assert.False(t, d.IsActiveOn(day(2025, 5, 8)))
}

func TestDiscount_AppliesTo(t *testing.T) {
	d, err := NewDiscount("D1", "P1", lidl, decimal.NewFromInt(10), day(2025, 5, 1), day(2025, 5, 7))
	require.NoError(t, err)

	assert.True(t, d.AppliesTo("P1", "S1"))
	assert.False(t, d.AppliesTo("P1", "S2"))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(ErrProductNotFound))
	assert.Equal(t, KindInvalidInput, KindOf(ErrBasketEmpty))
	assert.Equal(t, KindConflict, KindOf(ErrAlertAlreadyExists))
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}
