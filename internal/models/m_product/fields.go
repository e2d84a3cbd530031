package m_product

// Field constants for the products table.
const (
	TableName = "products"

	ColProductID       = "product_id"
	ColName            = "name"
	ColCategory        = "category"
	ColBrand           = "brand"
	ColPackageQuantity = "package_quantity"
	ColPackageUnit     = "package_unit"
)
