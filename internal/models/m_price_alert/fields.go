package m_price_alert

// Field constants for the price_alerts table.
const (
	TableName = "price_alerts"

	ColAlertID         = "alert_id"
	ColUserEmail       = "user_email"
	ColProductID       = "product_id"
	ColStoreID         = "store_id"
	ColTargetPrice     = "target_price"
	ColCurrency        = "currency"
	ColStatus          = "status"
	ColCreatedDate     = "created_date"
	ColLastCheckedDate = "last_checked_date"
)
