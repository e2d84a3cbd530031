package domain

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Discount is a percentage reduction for one product at one store,
// valid on every calendar day of [startDate, endDate].
// Discount is immutable once created.
type Discount struct {
	id         string
	productID  string
	store      Store
	percentage decimal.Decimal
	startDate  civil.Date
	endDate    civil.Date
}

// NewDiscount creates a new Discount with the given percentage and date range.
// percentage should be between 0 and 100 (e.g., 20 for 20% off).
// A single-day discount has startDate == endDate.
func NewDiscount(id, productID string, store Store, percentage decimal.Decimal, startDate, endDate civil.Date) (*Discount, error) {
	if percentage.IsNegative() || percentage.GreaterThan(hundred) {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidDiscountPercentage, percentage)
	}

	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidDiscountPeriod, startDate, endDate)
	}

	return &Discount{
		id:         strings.TrimSpace(id),
		productID:  strings.TrimSpace(productID),
		store:      store,
		percentage: percentage,
		startDate:  startDate,
		endDate:    endDate,
	}, nil
}

func (d *Discount) ID() string {
	return d.id
}

func (d *Discount) ProductID() string {
	return d.productID
}

func (d *Discount) Store() Store {
	return d.store
}

// Percentage returns the discount on the 0-100 scale, e.g. 20 for 20% off.
func (d *Discount) Percentage() decimal.Decimal {
	return d.percentage
}

func (d *Discount) StartDate() civil.Date {
	return d.startDate
}

func (d *Discount) EndDate() civil.Date {
	return d.endDate
}

// IsActiveOn reports whether day falls inside the inclusive validity range.
func (d *Discount) IsActiveOn(day civil.Date) bool {
	return !day.Before(d.startDate) && !day.After(d.endDate)
}

// AppliesTo reports whether the discount targets the given product at the given store.
func (d *Discount) AppliesTo(productID, storeID string) bool {
	return d.productID == productID && d.store.ID == storeID
}

// String returns a string representation of the discount.
func (d *Discount) String() string {
	return fmt.Sprintf("%s%% off %s at %s (valid from %s to %s)",
		d.percentage.StringFixed(2), d.productID, d.store.Name, d.startDate, d.endDate)
}
