package m_discount

import (
	"math/big"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"
)

// BuildInsertMap prepares a discount row. percentage is on the 0..100 scale.
func BuildInsertMap(discountID, productID, storeID string, percentage *big.Rat, start, end civil.Date) map[string]interface{} {
	return map[string]interface{}{
		ColDiscountID: discountID,
		ColProductID:  productID,
		ColStoreID:    storeID,
		ColPercentage: percentage,
		ColStartDate:  start,
		ColEndDate:    end,
	}
}

func InsertOrUpdateMutation(values map[string]interface{}) *spanner.Mutation {
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}
	return spanner.InsertOrUpdate(TableName, cols, vals)
}
