package domain

import "github.com/shopspring/decimal"

// StoreOffer is a price record resolved against the discount active on the
// evaluation day. FinalPrice is never rounded.
type StoreOffer struct {
	Store              Store
	Price              *PriceRecord
	FinalPrice         Money
	DiscountPercentage *decimal.Decimal
}

// IsDiscounted reports whether a discount contributed to FinalPrice.
func (o StoreOffer) IsDiscounted() bool {
	return o.DiscountPercentage != nil
}

// BasePrice returns the nominal price the offer was resolved from.
func (o StoreOffer) BasePrice() Money {
	return o.Price.Price()
}

// BasketLine is one requested product with a quantity.
type BasketLine struct {
	ProductID string
	Quantity  int
}
