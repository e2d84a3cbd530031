package optimize_basket

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/murkotick/price-comparator/internal/app/pricing/contracts"
	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
	"github.com/murkotick/price-comparator/internal/app/pricing/domain/services"
	"github.com/murkotick/price-comparator/internal/app/pricing/dto"
	"github.com/murkotick/price-comparator/internal/pkg/clock"
	"github.com/murkotick/price-comparator/internal/pkg/logger"
)

// Request is a basket to split across stores. A zero AsOf means today.
type Request struct {
	Lines []domain.BasketLine
	AsOf  civil.Date
}

// Handler assigns every basket line to the store with the lowest effective
// price and reports the savings against the costliest store per line.
type Handler struct {
	products   contracts.ProductReader
	prices     contracts.PriceReader
	discounts  contracts.DiscountReader
	calculator *services.PricingCalculator
	clock      clock.Clock
	logg       *logger.Logger
}

func NewHandler(catalog contracts.Catalog, clk clock.Clock, logg *logger.Logger) *Handler {
	return &Handler{
		products:   catalog,
		prices:     catalog,
		discounts:  catalog,
		calculator: services.NewPricingCalculator(),
		clock:      clk,
		logg:       logg,
	}
}

func (h *Handler) Execute(ctx context.Context, req Request) (*dto.OptimizedPlan, error) {
	if !hasPositiveLine(req.Lines) {
		return nil, domain.ErrBasketEmpty
	}

	asOf := req.AsOf
	if asOf.IsZero() {
		asOf = clock.Today(h.clock)
	}

	plan := &dto.OptimizedPlan{TotalItems: len(req.Lines)}
	lists := newStoreLists()
	worstCase := domain.Zero()

	for _, line := range req.Lines {
		lineCtx := h.logg.WithFields(ctx, map[string]any{
			"product_id": line.ProductID,
			"quantity":   line.Quantity,
		})

		if line.Quantity <= 0 {
			h.logg.Warn(lineCtx, "skipping basket line with non-positive quantity")
			continue
		}

		product, err := h.products.FindProduct(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("find product %s: %w", line.ProductID, err)
		}
		if product == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, line.ProductID)
		}

		records, err := h.prices.FindPricesForProduct(ctx, product.ID(), asOf)
		if err != nil {
			return nil, fmt.Errorf("find prices for %s: %w", product.ID(), err)
		}
		offers, err := h.calculator.ResolveOffers(ctx, h.discounts, services.SelectLatestPerStore(records, asOf), asOf)
		if err != nil {
			return nil, err
		}

		cheapest, ok := services.Cheapest(offers)
		if !ok {
			h.logg.Warn(lineCtx, "no price available for basket line, skipping")
			continue
		}
		costliest, _ := services.Costliest(offers)

		lists.add(cheapest, buildItem(product, line.Quantity, cheapest))
		worstCase = worstCase.Add(costliest.FinalPrice.MultiplyInt(line.Quantity))

		if plan.Currency == "" {
			plan.Currency = cheapest.Price.Currency()
		}
	}

	totalCost := domain.Zero()
	for i := range lists.ordered {
		list := &lists.ordered[i]
		list.Subtotal = list.Subtotal.Round2()
		totalCost = totalCost.Add(list.Subtotal)
	}

	plan.StoreLists = lists.ordered
	plan.TotalStores = len(lists.ordered)
	plan.TotalCost = totalCost.Round2()
	plan.WorstCaseCost = worstCase.Round2()
	plan.TotalSavings = plan.WorstCaseCost.Subtract(plan.TotalCost).Round2()

	return plan, nil
}

func buildItem(product *domain.Product, quantity int, offer domain.StoreOffer) dto.OptimizedItem {
	unitPrice := offer.FinalPrice.Round2()
	item := dto.OptimizedItem{
		ProductInfo:        dto.InfoOf(product),
		Quantity:           quantity,
		UnitPrice:          unitPrice,
		TotalPrice:         unitPrice.MultiplyInt(quantity).Round2(),
		Currency:           offer.Price.Currency(),
		OnDiscount:         offer.IsDiscounted(),
		DiscountPercentage: offer.DiscountPercentage,
	}
	if offer.IsDiscounted() {
		savings := offer.BasePrice().Subtract(unitPrice).Round2()
		item.SavingsPerUnit = &savings
	}
	return item
}

func hasPositiveLine(lines []domain.BasketLine) bool {
	for _, l := range lines {
		if l.Quantity > 0 {
			return true
		}
	}
	return false
}

// storeLists keeps shopping lists in order of first assignment.
type storeLists struct {
	index   map[string]int
	ordered []dto.StoreShoppingList
}

func newStoreLists() *storeLists {
	return &storeLists{index: make(map[string]int), ordered: []dto.StoreShoppingList{}}
}

// add appends item to the offer's store list. Subtotals stay unrounded
// until every line has been assigned.
func (s *storeLists) add(offer domain.StoreOffer, item dto.OptimizedItem) {
	i, ok := s.index[offer.Store.ID]
	if !ok {
		i = len(s.ordered)
		s.index[offer.Store.ID] = i
		s.ordered = append(s.ordered, dto.StoreShoppingList{
			StoreName: offer.Store.Name,
			Subtotal:  domain.Zero(),
			Currency:  item.Currency,
		})
	}
	list := &s.ordered[i]
	list.Items = append(list.Items, item)
	list.Subtotal = list.Subtotal.Add(item.TotalPrice)
}
