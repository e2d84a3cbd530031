// Package memory holds an in-process catalog snapshot. It backs the engine
// in tests and in local runs seeded from fixtures.
package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"cloud.google.com/go/civil"

	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
)

type Catalog struct {
	mu        sync.RWMutex
	products  []*domain.Product
	stores    []domain.Store
	prices    []*domain.PriceRecord
	discounts []*domain.Discount
}

func NewCatalog() *Catalog {
	return &Catalog{}
}

func (c *Catalog) AddProducts(ps ...*domain.Product) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = append(c.products, ps...)
	return c
}

func (c *Catalog) AddStores(ss ...domain.Store) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stores = append(c.stores, ss...)
	return c
}

func (c *Catalog) AddPrices(ps ...*domain.PriceRecord) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prices = append(c.prices, ps...)
	return c
}

func (c *Catalog) AddDiscounts(ds ...*domain.Discount) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.discounts = append(c.discounts, ds...)
	return c
}

// Products

func (c *Catalog) FindProduct(_ context.Context, id string) (*domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.ID() == id {
			return p, nil
		}
	}
	return nil, nil
}

func (c *Catalog) FindProductsByCategory(_ context.Context, category string) ([]*domain.Product, error) {
	return c.filterProducts(func(p *domain.Product) bool {
		return strings.EqualFold(p.Category(), category)
	}), nil
}

func (c *Catalog) FindProductsByCategoryAndNameContains(_ context.Context, category, token string) ([]*domain.Product, error) {
	needle := strings.ToLower(token)
	return c.filterProducts(func(p *domain.Product) bool {
		return strings.EqualFold(p.Category(), category) && strings.Contains(strings.ToLower(p.Name()), needle)
	}), nil
}

func (c *Catalog) FindProductsByBrand(_ context.Context, brand string) ([]*domain.Product, error) {
	return c.filterProducts(func(p *domain.Product) bool {
		return strings.EqualFold(p.Brand(), brand)
	}), nil
}

func (c *Catalog) filterProducts(keep func(*domain.Product) bool) []*domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := []*domain.Product{}
	for _, p := range c.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b *domain.Product) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return out
}

// Stores

func (c *Catalog) FindStore(_ context.Context, name string) (*domain.Store, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, s := range c.stores {
		if strings.EqualFold(s.Name, name) {
			store := s
			return &store, nil
		}
	}
	return nil, nil
}

// Prices

func (c *Catalog) FindPricesForProduct(_ context.Context, productID string, onOrBefore civil.Date) ([]*domain.PriceRecord, error) {
	out := c.filterPrices(func(p *domain.PriceRecord) bool {
		return p.ProductID() == productID && !p.Date().After(onOrBefore)
	})
	slices.SortStableFunc(out, newestFirst)
	return out, nil
}

func (c *Catalog) FindLatestPrice(_ context.Context, productID, storeID string, onOrBefore civil.Date) (*domain.PriceRecord, error) {
	out := c.filterPrices(func(p *domain.PriceRecord) bool {
		return p.ProductID() == productID && p.Store().ID == storeID && !p.Date().After(onOrBefore)
	})
	if len(out) == 0 {
		return nil, nil
	}
	slices.SortStableFunc(out, newestFirst)
	return out[0], nil
}

func (c *Catalog) FindPricesBetween(_ context.Context, productID, storeID string, from, to civil.Date) ([]*domain.PriceRecord, error) {
	out := c.filterPrices(func(p *domain.PriceRecord) bool {
		return p.ProductID() == productID &&
			(storeID == "" || p.Store().ID == storeID) &&
			!p.Date().Before(from) && !p.Date().After(to)
	})
	slices.SortStableFunc(out, oldestFirst)
	return out, nil
}

func (c *Catalog) filterPrices(keep func(*domain.PriceRecord) bool) []*domain.PriceRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := []*domain.PriceRecord{}
	for _, p := range c.prices {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func newestFirst(a, b *domain.PriceRecord) int {
	if d := compareDates(b.Date(), a.Date()); d != 0 {
		return d
	}
	return cmp.Compare(a.ID(), b.ID())
}

// Discounts

func (c *Catalog) FindDiscount(_ context.Context, productID, storeID string, on civil.Date) (*domain.Discount, error) {
	out := c.filterDiscounts(func(d *domain.Discount) bool {
		return d.AppliesTo(productID, storeID) && d.IsActiveOn(on)
	})
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (c *Catalog) FindActiveDiscounts(_ context.Context, on civil.Date) ([]*domain.Discount, error) {
	return c.filterDiscounts(func(d *domain.Discount) bool {
		return d.IsActiveOn(on)
	}), nil
}

func (c *Catalog) FindDiscountsStartingBetween(_ context.Context, from, to civil.Date) ([]*domain.Discount, error) {
	return c.filterDiscounts(func(d *domain.Discount) bool {
		return !d.StartDate().Before(from) && !d.StartDate().After(to)
	}), nil
}

func (c *Catalog) FindDiscountsForProduct(_ context.Context, productID string, from, to civil.Date) ([]*domain.Discount, error) {
	return c.filterDiscounts(func(d *domain.Discount) bool {
		return d.ProductID() == productID && !d.EndDate().Before(from) && !d.StartDate().After(to)
	}), nil
}

// filterDiscounts returns matches ordered by discount id.
func (c *Catalog) filterDiscounts(keep func(*domain.Discount) bool) []*domain.Discount {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := []*domain.Discount{}
	for _, d := range c.discounts {
		if keep(d) {
			out = append(out, d)
		}
	}
	slices.SortStableFunc(out, func(a, b *domain.Discount) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return out
}

func oldestFirst(a, b *domain.PriceRecord) int {
	if d := compareDates(a.Date(), b.Date()); d != 0 {
		return d
	}
	return cmp.Compare(a.ID(), b.ID())
}

func compareDates(a, b civil.Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}
