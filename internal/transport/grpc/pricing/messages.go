package pricing

// Wire messages. Money is a decimal string with two places, value per unit
// carries four, dates are YYYY-MM-DD.

type BasketItem struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

type OptimizeBasketRequest struct {
	Items []BasketItem `json:"items" validate:"required,min=1,dive"`
	Date  string       `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type OptimizedItem struct {
	Product
	Quantity           int     `json:"quantity"`
	UnitPrice          string  `json:"unit_price"`
	TotalPrice         string  `json:"total_price"`
	Currency           string  `json:"currency"`
	OnDiscount         bool    `json:"on_discount"`
	DiscountPercentage *string `json:"discount_percentage,omitempty"`
	SavingsPerUnit     *string `json:"savings_per_unit,omitempty"`
}

type StoreShoppingList struct {
	StoreName string          `json:"store_name"`
	Items     []OptimizedItem `json:"items"`
	Subtotal  string          `json:"subtotal"`
	Currency  string          `json:"currency"`
}

type OptimizeBasketReply struct {
	StoreLists    []StoreShoppingList `json:"store_lists"`
	TotalCost     string              `json:"total_cost"`
	WorstCaseCost string              `json:"worst_case_cost"`
	TotalSavings  string              `json:"total_savings"`
	Currency      string              `json:"currency"`
	TotalStores   int                 `json:"total_stores"`
	TotalItems    int                 `json:"total_items"`
}

// Product is the catalog part shared by result rows.
type Product struct {
	ProductID       string `json:"product_id"`
	ProductName     string `json:"product_name"`
	Category        string `json:"category"`
	Brand           string `json:"brand"`
	PackageQuantity string `json:"package_quantity"`
	PackageUnit     string `json:"package_unit"`
}

type ProductRecommendation struct {
	Product
	StoreName            string  `json:"store_name"`
	Price                string  `json:"price"`
	Currency             string  `json:"currency"`
	ValuePerUnit         string  `json:"value_per_unit"`
	UnitType             string  `json:"unit_type"`
	PriceDate            string  `json:"price_date"`
	OnDiscount           bool    `json:"on_discount"`
	PercentageOfDiscount *string `json:"percentage_of_discount,omitempty"`
	OriginalPrice        *string `json:"original_price,omitempty"`
	DiscountedPrice      *string `json:"discounted_price,omitempty"`
}

// FindSubstitutesRequest.Limit falls back to the server default when
// omitted; an explicit value <= 0 means no limit. Same for GetBestDiscountsRequest.
type FindSubstitutesRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Limit     *int   `json:"limit,omitempty"`
}

type FindBestValueProductsRequest struct {
	Category string `json:"category" validate:"required"`
}

type RecommendationsReply struct {
	Recommendations []ProductRecommendation `json:"recommendations"`
}

type BestDiscount struct {
	Product
	StoreName            string `json:"store_name"`
	PercentageOfDiscount string `json:"percentage_of_discount"`
	OriginalPrice        string `json:"original_price"`
	DiscountedPrice      string `json:"discounted_price"`
	Currency             string `json:"currency"`
	StartDate            string `json:"start_date"`
	EndDate              string `json:"end_date"`
}

type GetBestDiscountsRequest struct {
	Date  string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Limit *int   `json:"limit,omitempty"`
}

type GetNewDiscountsRequest struct {
	From string `json:"from,omitempty" validate:"omitempty,datetime=2006-01-02"`
	To   string `json:"to,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type DiscountsReply struct {
	Discounts []BestDiscount `json:"discounts"`
}

type PriceHistoryPoint struct {
	Date               string  `json:"date"`
	StoreName          string  `json:"store_name"`
	Price              string  `json:"price"`
	Currency           string  `json:"currency"`
	IsDiscounted       bool    `json:"is_discounted"`
	DiscountPercentage *string `json:"discount_percentage,omitempty"`
	OriginalPrice      *string `json:"original_price,omitempty"`
}

type ProductPriceHistory struct {
	Product
	StoreName    string              `json:"store_name,omitempty"`
	PriceHistory []PriceHistoryPoint `json:"price_history"`
}

type GetProductPriceHistoryRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	StoreName string `json:"store_name,omitempty"`
	From      string `json:"from,omitempty" validate:"omitempty,datetime=2006-01-02"`
	To        string `json:"to,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type GetProductPriceHistoryReply struct {
	History ProductPriceHistory `json:"history"`
}

type GetCategoryPriceHistoryRequest struct {
	Category  string `json:"category" validate:"required"`
	StoreName string `json:"store_name,omitempty"`
	From      string `json:"from,omitempty" validate:"omitempty,datetime=2006-01-02"`
	To        string `json:"to,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type GetBrandPriceHistoryRequest struct {
	Brand     string `json:"brand" validate:"required"`
	StoreName string `json:"store_name,omitempty"`
	From      string `json:"from,omitempty" validate:"omitempty,datetime=2006-01-02"`
	To        string `json:"to,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type PriceHistoriesReply struct {
	Histories []ProductPriceHistory `json:"histories"`
}

type PriceAlert struct {
	ID               string  `json:"id"`
	UserEmail        string  `json:"user_email"`
	ProductID        string  `json:"product_id"`
	ProductName      string  `json:"product_name"`
	StoreName        string  `json:"store_name,omitempty"`
	TargetPrice      string  `json:"target_price"`
	CurrentBestPrice *string `json:"current_best_price,omitempty"`
	Currency         string  `json:"currency"`
	Status           string  `json:"status"`
	IsTriggered      bool    `json:"is_triggered"`
	CreatedDate      string  `json:"created_date"`
	LastCheckedDate  string  `json:"last_checked_date"`
}

type CreatePriceAlertRequest struct {
	UserEmail   string `json:"user_email" validate:"required,email"`
	ProductID   string `json:"product_id" validate:"required"`
	StoreName   string `json:"store_name,omitempty"`
	TargetPrice string `json:"target_price" validate:"required,numeric"`
}

type PriceAlertReply struct {
	Alert PriceAlert `json:"alert"`
}

type GetPriceAlertRequest struct {
	AlertID string `json:"alert_id" validate:"required"`
}

type ListPriceAlertsRequest struct {
	UserEmail string `json:"user_email,omitempty" validate:"omitempty,email"`
}

type PriceAlertsReply struct {
	Alerts []PriceAlert `json:"alerts"`
}

type DeletePriceAlertRequest struct {
	AlertID string `json:"alert_id" validate:"required"`
}

type DeletePriceAlertReply struct{}

type CheckPriceAlertsRequest struct {
	UserEmail string `json:"user_email,omitempty" validate:"omitempty,email"`
}

type CheckPriceAlertsReply struct {
	TotalAlerts          int          `json:"total_alerts"`
	TriggeredAlerts      int          `json:"triggered_alerts"`
	NewlyTriggeredAlerts []PriceAlert `json:"newly_triggered_alerts"`
}
