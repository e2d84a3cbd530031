package contracts

import (
	"context"

	"cloud.google.com/go/civil"

	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
)

// Readers return (nil, nil) for a missing single record and an empty slice
// for an empty list. Errors are reserved for collaborator failures.

// ProductReader looks up catalog products.
type ProductReader interface {
	FindProduct(ctx context.Context, id string) (*domain.Product, error)
	FindProductsByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	// FindProductsByCategoryAndNameContains matches token case-insensitively.
	FindProductsByCategoryAndNameContains(ctx context.Context, category, token string) ([]*domain.Product, error)
	FindProductsByBrand(ctx context.Context, brand string) ([]*domain.Product, error)
}

// StoreReader resolves stores by their unique name.
type StoreReader interface {
	FindStore(ctx context.Context, name string) (*domain.Store, error)
}

// PriceReader reads the shelf price history.
type PriceReader interface {
	// FindPricesForProduct returns every record dated on or before onOrBefore,
	// ordered by date descending then price id ascending.
	FindPricesForProduct(ctx context.Context, productID string, onOrBefore civil.Date) ([]*domain.PriceRecord, error)
	// FindLatestPrice returns the newest record for one store on or before onOrBefore.
	FindLatestPrice(ctx context.Context, productID, storeID string, onOrBefore civil.Date) (*domain.PriceRecord, error)
	// FindPricesBetween returns records with from <= date <= to, ordered by
	// date ascending then price id. An empty storeID means every store.
	FindPricesBetween(ctx context.Context, productID, storeID string, from, to civil.Date) ([]*domain.PriceRecord, error)
}

// DiscountReader reads store promotions.
type DiscountReader interface {
	// FindDiscount returns the first discount by id active on the day, or nil.
	FindDiscount(ctx context.Context, productID, storeID string, on civil.Date) (*domain.Discount, error)
	FindActiveDiscounts(ctx context.Context, on civil.Date) ([]*domain.Discount, error)
	// FindDiscountsStartingBetween returns discounts with from <= start <= to.
	FindDiscountsStartingBetween(ctx context.Context, from, to civil.Date) ([]*domain.Discount, error)
	// FindDiscountsForProduct returns every discount for the product overlapping [from, to].
	FindDiscountsForProduct(ctx context.Context, productID string, from, to civil.Date) ([]*domain.Discount, error)
}

// Catalog is the complete read-only snapshot the engine works on.
type Catalog interface {
	ProductReader
	StoreReader
	PriceReader
	DiscountReader
}
