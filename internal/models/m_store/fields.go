package m_store

const (
	TableName = "stores"

	// IndexByName is the unique index on the store name.
	IndexByName = "stores_by_name"

	ColStoreID = "store_id"
	ColName    = "name"
)
