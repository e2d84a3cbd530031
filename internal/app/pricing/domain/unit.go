package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Canonical units produced by Normalize.
const (
	UnitKilogram = "kg"
	UnitLiter    = "l"
)

var (
	thousand = decimal.NewFromInt(1000)
	cent     = decimal.NewFromInt(100)
)

// Normalize converts a package price into a price per canonical unit.
// Rules are checked in order against the lower-cased unit:
//
//	contains "g" but is not "kg" -> kg, price / (quantity/1000)
//	contains "ml"                -> l,  price / (quantity/1000)
//	contains "cl"                -> l,  price / (quantity/100)
//	anything else                -> lower-cased unit, price / quantity
//
// "kg" itself falls through to the last rule, so "KG" and "kg" agree.
// quantity must be positive; products are validated on construction.
func Normalize(quantity decimal.Decimal, unit string, price Money) (Money, string) {
	lower := strings.ToLower(unit)

	switch {
	case strings.Contains(lower, "g") && lower != UnitKilogram:
		return price.Divide(quantity.Div(thousand)), UnitKilogram
	case strings.Contains(lower, "ml"):
		return price.Divide(quantity.Div(thousand)), UnitLiter
	case strings.Contains(lower, "cl"):
		return price.Divide(quantity.Div(cent)), UnitLiter
	default:
		return price.Divide(quantity), lower
	}
}
