package dto

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
)

// ProductInfo is the catalog part shared by most result rows.
type ProductInfo struct {
	ProductID       string
	ProductName     string
	Category        string
	Brand           string
	PackageQuantity decimal.Decimal
	PackageUnit     string
}

// InfoOf copies the display fields of a product.
func InfoOf(p *domain.Product) ProductInfo {
	return ProductInfo{
		ProductID:       p.ID(),
		ProductName:     p.Name(),
		Category:        p.Category(),
		Brand:           p.Brand(),
		PackageQuantity: p.PackageQuantity(),
		PackageUnit:     p.PackageUnit(),
	}
}

// OptimizedItem is one basket line assigned to its cheapest store.
// Monetary fields are rounded to two decimals.
type OptimizedItem struct {
	ProductInfo
	Quantity           int
	UnitPrice          domain.Money
	TotalPrice         domain.Money
	Currency           string
	OnDiscount         bool
	DiscountPercentage *decimal.Decimal
	SavingsPerUnit     *domain.Money
}

// StoreShoppingList groups the items to buy at one store.
type StoreShoppingList struct {
	StoreName string
	Items     []OptimizedItem
	Subtotal  domain.Money
	Currency  string
}

// OptimizedPlan is the result of a basket optimization.
type OptimizedPlan struct {
	StoreLists    []StoreShoppingList
	TotalCost     domain.Money
	WorstCaseCost domain.Money
	TotalSavings  domain.Money
	Currency      string
	TotalStores   int
	TotalItems    int
}

// ProductRecommendation is one (product, store) row ranked by value per unit.
// ValuePerUnit is computed from the nominal price and left unrounded.
type ProductRecommendation struct {
	ProductInfo
	StoreName            string
	Price                domain.Money
	Currency             string
	ValuePerUnit         domain.Money
	UnitType             string
	PriceDate            civil.Date
	OnDiscount           bool
	PercentageOfDiscount *decimal.Decimal
	OriginalPrice        *domain.Money
	DiscountedPrice      *domain.Money
}

// BestDiscount is a discount joined with the price it applies to.
type BestDiscount struct {
	ProductInfo
	StoreName            string
	PercentageOfDiscount decimal.Decimal
	OriginalPrice        domain.Money
	DiscountedPrice      domain.Money
	Currency             string
	StartDate            civil.Date
	EndDate              civil.Date
}

// PriceHistoryPoint is the effective price observed on one day.
type PriceHistoryPoint struct {
	Date               civil.Date
	StoreName          string
	Price              domain.Money
	Currency           string
	IsDiscounted       bool
	DiscountPercentage *decimal.Decimal
	OriginalPrice      *domain.Money
}

// ProductPriceHistory is the price series of one product.
// StoreName is empty when the series picks the cheapest store per day.
type ProductPriceHistory struct {
	ProductInfo
	StoreName    string
	PriceHistory []PriceHistoryPoint
}

// PriceAlertView is an alert enriched with the product name and today's best price.
type PriceAlertView struct {
	ID               string
	UserEmail        string
	ProductID        string
	ProductName      string
	StoreName        string
	TargetPrice      domain.Money
	CurrentBestPrice *domain.Money
	Currency         string
	Status           string
	IsTriggered      bool
	CreatedDate      civil.Date
	LastCheckedDate  civil.Date
}

// AlertCheckResult summarizes one alert evaluation pass.
type AlertCheckResult struct {
	TotalAlerts          int
	TriggeredAlerts      int
	NewlyTriggeredAlerts []PriceAlertView
}
