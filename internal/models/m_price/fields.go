package m_price

// Field constants for the prices table. Rows are immutable observations.
const (
	TableName = "prices"

	ColPriceID   = "price_id"
	ColProductID = "product_id"
	ColStoreID   = "store_id"
	ColPrice     = "price"
	ColCurrency  = "currency"
	ColPriceDate = "price_date"
)
