package m_price

import (
	"math/big"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"
)

func BuildInsertMap(priceID, productID, storeID string, price *big.Rat, currency string, date civil.Date) map[string]interface{} {
	return map[string]interface{}{
		ColPriceID:   priceID,
		ColProductID: productID,
		ColStoreID:   storeID,
		ColPrice:     price,
		ColCurrency:  currency,
		ColPriceDate: date,
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
