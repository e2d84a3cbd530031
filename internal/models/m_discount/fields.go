package m_discount

const (
	TableName = "discounts"

	ColDiscountID = "discount_id"
	ColProductID  = "product_id"
	ColStoreID    = "store_id"
	ColPercentage = "percentage"
	ColStartDate  = "start_date"
	ColEndDate    = "end_date"
)
