package pricing

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
	"github.com/murkotick/price-comparator/internal/app/pricing/dto"
)

const valuePerUnitPlaces = 4

// parseDate reads an optional YYYY-MM-DD field; empty yields the zero date.
func parseDate(field, s string) (civil.Date, error) {
	if s == "" {
		return civil.Date{}, nil
	}
	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}

func formatDate(d civil.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

func money(m domain.Money) string {
	return m.StringFixed(2)
}

func optMoney(m *domain.Money) *string {
	if m == nil {
		return nil
	}
	s := money(*m)
	return &s
}

func optPercent(p *decimal.Decimal) *string {
	if p == nil {
		return nil
	}
	s := p.String()
	return &s
}

func toProduct(p dto.ProductInfo) Product {
	return Product{
		ProductID:       p.ProductID,
		ProductName:     p.ProductName,
		Category:        p.Category,
		Brand:           p.Brand,
		PackageQuantity: p.PackageQuantity.String(),
		PackageUnit:     p.PackageUnit,
	}
}

func toBasketLines(items []BasketItem) []domain.BasketLine {
	out := make([]domain.BasketLine, 0, len(items))
	for _, it := range items {
		out = append(out, domain.BasketLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return out
}

func toOptimizeBasketReply(plan *dto.OptimizedPlan) *OptimizeBasketReply {
	lists := make([]StoreShoppingList, 0, len(plan.StoreLists))
	for _, l := range plan.StoreLists {
		items := make([]OptimizedItem, 0, len(l.Items))
		for _, it := range l.Items {
			items = append(items, OptimizedItem{
				Product:            toProduct(it.ProductInfo),
				Quantity:           it.Quantity,
				UnitPrice:          money(it.UnitPrice),
				TotalPrice:         money(it.TotalPrice),
				Currency:           it.Currency,
				OnDiscount:         it.OnDiscount,
				DiscountPercentage: optPercent(it.DiscountPercentage),
				SavingsPerUnit:     optMoney(it.SavingsPerUnit),
			})
		}
		lists = append(lists, StoreShoppingList{
			StoreName: l.StoreName,
			Items:     items,
			Subtotal:  money(l.Subtotal),
			Currency:  l.Currency,
		})
	}
	return &OptimizeBasketReply{
		StoreLists:    lists,
		TotalCost:     money(plan.TotalCost),
		WorstCaseCost: money(plan.WorstCaseCost),
		TotalSavings:  money(plan.TotalSavings),
		Currency:      plan.Currency,
		TotalStores:   plan.TotalStores,
		TotalItems:    plan.TotalItems,
	}
}

func toRecommendations(recs []dto.ProductRecommendation) []ProductRecommendation {
	out := make([]ProductRecommendation, 0, len(recs))
	for _, r := range recs {
		out = append(out, ProductRecommendation{
			Product:              toProduct(r.ProductInfo),
			StoreName:            r.StoreName,
			Price:                money(r.Price),
			Currency:             r.Currency,
			ValuePerUnit:         r.ValuePerUnit.StringFixed(valuePerUnitPlaces),
			UnitType:             r.UnitType,
			PriceDate:            formatDate(r.PriceDate),
			OnDiscount:           r.OnDiscount,
			PercentageOfDiscount: optPercent(r.PercentageOfDiscount),
			OriginalPrice:        optMoney(r.OriginalPrice),
			DiscountedPrice:      optMoney(r.DiscountedPrice),
		})
	}
	return out
}

func toDiscounts(rows []dto.BestDiscount) []BestDiscount {
	out := make([]BestDiscount, 0, len(rows))
	for _, d := range rows {
		out = append(out, BestDiscount{
			Product:              toProduct(d.ProductInfo),
			StoreName:            d.StoreName,
			PercentageOfDiscount: d.PercentageOfDiscount.String(),
			OriginalPrice:        money(d.OriginalPrice),
			DiscountedPrice:      money(d.DiscountedPrice),
			Currency:             d.Currency,
			StartDate:            formatDate(d.StartDate),
			EndDate:              formatDate(d.EndDate),
		})
	}
	return out
}

func toHistory(h dto.ProductPriceHistory) ProductPriceHistory {
	points := make([]PriceHistoryPoint, 0, len(h.PriceHistory))
	for _, p := range h.PriceHistory {
		points = append(points, PriceHistoryPoint{
			Date:               formatDate(p.Date),
			StoreName:          p.StoreName,
			Price:              money(p.Price),
			Currency:           p.Currency,
			IsDiscounted:       p.IsDiscounted,
			DiscountPercentage: optPercent(p.DiscountPercentage),
			OriginalPrice:      optMoney(p.OriginalPrice),
		})
	}
	return ProductPriceHistory{
		Product:      toProduct(h.ProductInfo),
		StoreName:    h.StoreName,
		PriceHistory: points,
	}
}

func toHistories(hs []dto.ProductPriceHistory) []ProductPriceHistory {
	out := make([]ProductPriceHistory, 0, len(hs))
	for _, h := range hs {
		out = append(out, toHistory(h))
	}
	return out
}

func toAlert(v dto.PriceAlertView) PriceAlert {
	return PriceAlert{
		ID:               v.ID,
		UserEmail:        v.UserEmail,
		ProductID:        v.ProductID,
		ProductName:      v.ProductName,
		StoreName:        v.StoreName,
		TargetPrice:      money(v.TargetPrice),
		CurrentBestPrice: optMoney(v.CurrentBestPrice),
		Currency:         v.Currency,
		Status:           v.Status,
		IsTriggered:      v.IsTriggered,
		CreatedDate:      formatDate(v.CreatedDate),
		LastCheckedDate:  formatDate(v.LastCheckedDate),
	}
}

func toAlerts(vs []dto.PriceAlertView) []PriceAlert {
	out := make([]PriceAlert, 0, len(vs))
	for _, v := range vs {
		out = append(out, toAlert(v))
	}
	return out
}

// limitOr passes an explicit limit through untouched, including non-positive ones.
func limitOr(limit *int, def int) int {
	if limit == nil {
		return def
	}
	return *limit
}
