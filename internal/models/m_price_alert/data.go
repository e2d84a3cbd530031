package m_price_alert

import (
	"math/big"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"
)

// BuildInsertMap prepares the full row of a new alert. A nil storeID stores NULL (any store).
func BuildInsertMap(alertID, userEmail, productID string, storeID *string, targetPrice *big.Rat,
	currency, status string, createdDate, lastCheckedDate civil.Date) map[string]interface{} {

	m := map[string]interface{}{
		ColAlertID:         alertID,
		ColUserEmail:       userEmail,
		ColProductID:       productID,
		ColTargetPrice:     targetPrice,
		ColCurrency:        currency,
		ColStatus:          status,
		ColCreatedDate:     createdDate,
		ColLastCheckedDate: lastCheckedDate,
	}
	if storeID != nil {
		m[ColStoreID] = *storeID
	} else {
		m[ColStoreID] = nil
	}
	return m
}

func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}
	return spanner.Insert(TableName, cols, vals)
}

// UpdateMutation writes the given columns of one alert; alert_id goes first.
func UpdateMutation(alertID string, values map[string]interface{}) *spanner.Mutation {
	cols := []string{ColAlertID}
	vals := []interface{}{alertID}
	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}
	return spanner.Update(TableName, cols, vals)
}

func DeleteMutation(alertID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{alertID})
}
