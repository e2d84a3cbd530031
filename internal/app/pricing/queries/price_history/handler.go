package price_history

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/murkotick/price-comparator/internal/app/pricing/contracts"
	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
	"github.com/murkotick/price-comparator/internal/app/pricing/domain/services"
	"github.com/murkotick/price-comparator/internal/app/pricing/dto"
	"github.com/murkotick/price-comparator/internal/pkg/clock"
)

// Request selects the price series of one product (ProductID), a category
// or a brand. StoreName restricts the series to one store; otherwise each
// day shows the cheapest store. Zero dates fall back to the lookback window.
type Request struct {
	ProductID string
	Category  string
	Brand     string
	StoreName string
	From      civil.Date
	To        civil.Date
}

type Handler struct {
	catalog      contracts.Catalog
	calculator   *services.PricingCalculator
	clock        clock.Clock
	lookbackDays int
}

func NewHandler(catalog contracts.Catalog, clk clock.Clock, lookbackDays int) *Handler {
	return &Handler{
		catalog:      catalog,
		calculator:   services.NewPricingCalculator(),
		clock:        clk,
		lookbackDays: lookbackDays,
	}
}

// window is a resolved request scope.
type window struct {
	store    *domain.Store
	from, to civil.Date
}

// ForProduct returns the series of a single product. The series may be empty.
func (h *Handler) ForProduct(ctx context.Context, req Request) (*dto.ProductPriceHistory, error) {
	product, err := h.catalog.FindProduct(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("find product %s: %w", req.ProductID, err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, req.ProductID)
	}

	w, err := h.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	points, err := h.points(ctx, product, w)
	if err != nil {
		return nil, err
	}
	return &dto.ProductPriceHistory{
		ProductInfo:  dto.InfoOf(product),
		StoreName:    req.StoreName,
		PriceHistory: points,
	}, nil
}

func (h *Handler) ForCategory(ctx context.Context, req Request) ([]dto.ProductPriceHistory, error) {
	if strings.TrimSpace(req.Category) == "" {
		return []dto.ProductPriceHistory{}, nil
	}
	products, err := h.catalog.FindProductsByCategory(ctx, req.Category)
	if err != nil {
		return nil, fmt.Errorf("find products in category %q: %w", req.Category, err)
	}
	return h.forProducts(ctx, products, req)
}

func (h *Handler) ForBrand(ctx context.Context, req Request) ([]dto.ProductPriceHistory, error) {
	if strings.TrimSpace(req.Brand) == "" {
		return []dto.ProductPriceHistory{}, nil
	}
	products, err := h.catalog.FindProductsByBrand(ctx, req.Brand)
	if err != nil {
		return nil, fmt.Errorf("find products of brand %q: %w", req.Brand, err)
	}
	return h.forProducts(ctx, products, req)
}

func (h *Handler) forProducts(ctx context.Context, products []*domain.Product, req Request) ([]dto.ProductPriceHistory, error) {
	out := []dto.ProductPriceHistory{}
	if len(products) == 0 {
		return out, nil
	}

	w, err := h.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	for _, product := range products {
		points, err := h.points(ctx, product, w)
		if err != nil {
			return nil, err
		}
		if len(points) == 0 {
			continue
		}
		out = append(out, dto.ProductPriceHistory{
			ProductInfo:  dto.InfoOf(product),
			StoreName:    req.StoreName,
			PriceHistory: points,
		})
	}
	return out, nil
}

func (h *Handler) resolve(ctx context.Context, req Request) (window, error) {
	var w window

	w.to = req.To
	if w.to.IsZero() {
		w.to = clock.Today(h.clock)
	}
	w.from = req.From
	if w.from.IsZero() {
		w.from = clock.Today(h.clock).AddDays(-h.lookbackDays)
	}
	if w.from.After(w.to) {
		return w, fmt.Errorf("%w: from %s is after to %s", domain.ErrInvalidDateRange, w.from, w.to)
	}

	if req.StoreName != "" {
		store, err := h.catalog.FindStore(ctx, req.StoreName)
		if err != nil {
			return w, fmt.Errorf("find store %q: %w", req.StoreName, err)
		}
		if store == nil {
			return w, fmt.Errorf("%w: %s", domain.ErrStoreNotFound, req.StoreName)
		}
		w.store = store
	}
	return w, nil
}

// points builds the series for one product, ordered by date ascending.
func (h *Handler) points(ctx context.Context, product *domain.Product, w window) ([]dto.PriceHistoryPoint, error) {
	storeID := ""
	if w.store != nil {
		storeID = w.store.ID
	}

	records, err := h.catalog.FindPricesBetween(ctx, product.ID(), storeID, w.from, w.to)
	if err != nil {
		return nil, fmt.Errorf("find prices for %s: %w", product.ID(), err)
	}
	if len(records) == 0 {
		return []dto.PriceHistoryPoint{}, nil
	}

	discounts, err := h.catalog.FindDiscountsForProduct(ctx, product.ID(), w.from, w.to)
	if err != nil {
		return nil, fmt.Errorf("find discounts for %s: %w", product.ID(), err)
	}

	// records arrive date ascending, so days are appended in order
	var days []*day
	byDate := make(map[civil.Date]*day)

	for _, record := range records {
		d, ok := byDate[record.Date()]
		if !ok {
			d = &day{seen: make(map[string]struct{})}
			byDate[record.Date()] = d
			days = append(days, d)
		}
		if _, dup := d.seen[record.Store().ID]; dup {
			continue
		}
		d.seen[record.Store().ID] = struct{}{}

		active := h.calculator.ActiveDiscount(discounts, product.ID(), record.Store().ID, record.Date())
		d.consider(h.calculator.Offer(record, active))
	}

	points := make([]dto.PriceHistoryPoint, 0, len(days))
	for _, d := range days {
		points = append(points, pointOf(d.best))
	}
	return points, nil
}

// day tracks the cheapest offer seen for one date.
type day struct {
	seen map[string]struct{}
	best domain.StoreOffer
	set  bool
}

func (d *day) consider(o domain.StoreOffer) {
	if !d.set || o.FinalPrice.LessThan(d.best.FinalPrice) {
		d.best = o
		d.set = true
	}
}

func pointOf(o domain.StoreOffer) dto.PriceHistoryPoint {
	p := dto.PriceHistoryPoint{
		Date:         o.Price.Date(),
		StoreName:    o.Store.Name,
		Price:        o.FinalPrice.Round2(),
		Currency:     o.Price.Currency(),
		IsDiscounted: o.IsDiscounted(),
	}
	if o.IsDiscounted() {
		original := o.BasePrice()
		p.DiscountPercentage = o.DiscountPercentage
		p.OriginalPrice = &original
	}
	return p
}
