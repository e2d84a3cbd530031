package m_product

import (
	"math/big"

	"cloud.google.com/go/spanner"
)

// BuildInsertMap prepares the columns of a catalog product.
func BuildInsertMap(productID, name, category, brand string, packageQuantity *big.Rat, packageUnit string) map[string]interface{} {
	return map[string]interface{}{
		ColProductID:       productID,
		ColName:            name,
		ColCategory:        category,
		ColBrand:           brand,
		ColPackageQuantity: packageQuantity,
		ColPackageUnit:     packageUnit,
	}
}

// InsertOrUpdateMutation upserts a product row.
func InsertOrUpdateMutation(values map[string]interface{}) *spanner.Mutation {
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}
	return spanner.InsertOrUpdate(TableName, cols, vals)
}
