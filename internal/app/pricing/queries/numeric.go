package queries

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// numericScale is the fixed scale of Spanner NUMERIC.
const numericScale = 9

func decimalFromRat(r *big.Rat) (decimal.Decimal, error) {
	if r == nil {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(r.FloatString(numericScale))
	if err != nil {
		return decimal.Zero, fmt.Errorf("numeric %s: %w", r.String(), err)
	}
	return d, nil
}
