package queries

import (
	"context"
	"fmt"
	"math/big"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
)

// SpannerCatalog is the infrastructure adapter that satisfies contracts.Catalog.
// Every call is a single-use read-only query.
type SpannerCatalog struct {
	Client *spanner.Client
}

func NewSpannerCatalog(client *spanner.Client) *SpannerCatalog {
	return &SpannerCatalog{Client: client}
}

const productColumns = `product_id, name, category, brand, package_quantity, package_unit`

const priceSelect = `SELECT p.price_id, p.product_id, p.store_id, s.name, p.price, p.currency, p.price_date
      FROM prices p JOIN stores s ON s.store_id = p.store_id`

const discountSelect = `SELECT d.discount_id, d.product_id, d.store_id, s.name, d.percentage, d.start_date, d.end_date
      FROM discounts d JOIN stores s ON s.store_id = d.store_id`

// Products

func (c *SpannerCatalog) FindProduct(ctx context.Context, id string) (*domain.Product, error) {
	products, err := c.queryProducts(ctx, spanner.Statement{
		SQL:    `SELECT ` + productColumns + ` FROM products WHERE product_id = @id`,
		Params: map[string]interface{}{"id": id},
	})
	if err != nil || len(products) == 0 {
		return nil, err
	}
	return products[0], nil
}

func (c *SpannerCatalog) FindProductsByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return c.queryProducts(ctx, spanner.Statement{
		SQL: `SELECT ` + productColumns + ` FROM products
		      WHERE LOWER(category) = LOWER(@category)
		      ORDER BY product_id`,
		Params: map[string]interface{}{"category": category},
	})
}

func (c *SpannerCatalog) FindProductsByCategoryAndNameContains(ctx context.Context, category, token string) ([]*domain.Product, error) {
	return c.queryProducts(ctx, spanner.Statement{
		SQL: `SELECT ` + productColumns + ` FROM products
		      WHERE LOWER(category) = LOWER(@category)
		        AND STRPOS(LOWER(name), LOWER(@token)) > 0
		      ORDER BY product_id`,
		Params: map[string]interface{}{"category": category, "token": token},
	})
}

func (c *SpannerCatalog) FindProductsByBrand(ctx context.Context, brand string) ([]*domain.Product, error) {
	return c.queryProducts(ctx, spanner.Statement{
		SQL: `SELECT ` + productColumns + ` FROM products
		      WHERE LOWER(brand) = LOWER(@brand)
		      ORDER BY product_id`,
		Params: map[string]interface{}{"brand": brand},
	})
}

func (c *SpannerCatalog) queryProducts(ctx context.Context, stmt spanner.Statement) ([]*domain.Product, error) {
	iter := c.Client.Single().Query(ctx, stmt)
	defer iter.Stop()

	out := []*domain.Product{}
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var (
			id, name, category, brand, unit string
			quantity                        big.Rat
		)
		if err := row.Columns(&id, &name, &category, &brand, &quantity, &unit); err != nil {
			return nil, err
		}
		qty, err := decimalFromRat(&quantity)
		if err != nil {
			return nil, err
		}
		p, err := domain.NewProduct(id, name, category, brand, qty, unit)
		if err != nil {
			return nil, fmt.Errorf("product row %s: %w", id, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// Stores

func (c *SpannerCatalog) FindStore(ctx context.Context, name string) (*domain.Store, error) {
	stmt := spanner.Statement{
		SQL: `SELECT store_id, name FROM stores
		      WHERE LOWER(name) = LOWER(@name)
		      ORDER BY store_id
		      LIMIT 1`,
		Params: map[string]interface{}{"name": name},
	}

	iter := c.Client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var s domain.Store
	if err := row.Columns(&s.ID, &s.Name); err != nil {
		return nil, err
	}
	return &s, nil
}

// Prices

func (c *SpannerCatalog) FindPricesForProduct(ctx context.Context, productID string, onOrBefore civil.Date) ([]*domain.PriceRecord, error) {
	return c.queryPrices(ctx, spanner.Statement{
		SQL: priceSelect + `
		      WHERE p.product_id = @product AND p.price_date <= @day
		      ORDER BY p.price_date DESC, p.price_id`,
		Params: map[string]interface{}{"product": productID, "day": onOrBefore},
	})
}

func (c *SpannerCatalog) FindLatestPrice(ctx context.Context, productID, storeID string, onOrBefore civil.Date) (*domain.PriceRecord, error) {
	prices, err := c.queryPrices(ctx, spanner.Statement{
		SQL: priceSelect + `
		      WHERE p.product_id = @product AND p.store_id = @store AND p.price_date <= @day
		      ORDER BY p.price_date DESC, p.price_id
		      LIMIT 1`,
		Params: map[string]interface{}{"product": productID, "store": storeID, "day": onOrBefore},
	})
	if err != nil || len(prices) == 0 {
		return nil, err
	}
	return prices[0], nil
}

func (c *SpannerCatalog) FindPricesBetween(ctx context.Context, productID, storeID string, from, to civil.Date) ([]*domain.PriceRecord, error) {
	sql := priceSelect + `
	      WHERE p.product_id = @product AND p.price_date BETWEEN @from AND @to`
	params := map[string]interface{}{"product": productID, "from": from, "to": to}
	if storeID != "" {
		sql += ` AND p.store_id = @store`
		params["store"] = storeID
	}
	sql += ` ORDER BY p.price_date, p.price_id`

	return c.queryPrices(ctx, spanner.Statement{SQL: sql, Params: params})
}

func (c *SpannerCatalog) queryPrices(ctx context.Context, stmt spanner.Statement) ([]*domain.PriceRecord, error) {
	iter := c.Client.Single().Query(ctx, stmt)
	defer iter.Stop()

	out := []*domain.PriceRecord{}
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var (
			id, productID, currency string
			store                   domain.Store
			amount                  big.Rat
			date                    civil.Date
		)
		if err := row.Columns(&id, &productID, &store.ID, &store.Name, &amount, &currency, &date); err != nil {
			return nil, err
		}
		value, err := decimalFromRat(&amount)
		if err != nil {
			return nil, err
		}
		p, err := domain.NewPriceRecord(id, productID, store, domain.NewMoney(value), currency, date)
		if err != nil {
			return nil, fmt.Errorf("price row %s: %w", id, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// Discounts

func (c *SpannerCatalog) FindDiscount(ctx context.Context, productID, storeID string, on civil.Date) (*domain.Discount, error) {
	discounts, err := c.queryDiscounts(ctx, spanner.Statement{
		SQL: discountSelect + `
		      WHERE d.product_id = @product AND d.store_id = @store
		        AND d.start_date <= @day AND d.end_date >= @day
		      ORDER BY d.discount_id
		      LIMIT 1`,
		Params: map[string]interface{}{"product": productID, "store": storeID, "day": on},
	})
	if err != nil || len(discounts) == 0 {
		return nil, err
	}
	return discounts[0], nil
}

func (c *SpannerCatalog) FindActiveDiscounts(ctx context.Context, on civil.Date) ([]*domain.Discount, error) {
	return c.queryDiscounts(ctx, spanner.Statement{
		SQL: discountSelect + `
		      WHERE d.start_date <= @day AND d.end_date >= @day
		      ORDER BY d.discount_id`,
		Params: map[string]interface{}{"day": on},
	})
}

func (c *SpannerCatalog) FindDiscountsStartingBetween(ctx context.Context, from, to civil.Date) ([]*domain.Discount, error) {
	return c.queryDiscounts(ctx, spanner.Statement{
		SQL: discountSelect + `
		      WHERE d.start_date BETWEEN @from AND @to
		      ORDER BY d.discount_id`,
		Params: map[string]interface{}{"from": from, "to": to},
	})
}

func (c *SpannerCatalog) FindDiscountsForProduct(ctx context.Context, productID string, from, to civil.Date) ([]*domain.Discount, error) {
	return c.queryDiscounts(ctx, spanner.Statement{
		SQL: discountSelect + `
		      WHERE d.product_id = @product AND d.end_date >= @from AND d.start_date <= @to
		      ORDER BY d.discount_id`,
		Params: map[string]interface{}{"product": productID, "from": from, "to": to},
	})
}

func (c *SpannerCatalog) queryDiscounts(ctx context.Context, stmt spanner.Statement) ([]*domain.Discount, error) {
	iter := c.Client.Single().Query(ctx, stmt)
	defer iter.Stop()

	out := []*domain.Discount{}
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var (
			id, productID string
			store         domain.Store
			percentage    big.Rat
			start, end    civil.Date
		)
		if err := row.Columns(&id, &productID, &store.ID, &store.Name, &percentage, &start, &end); err != nil {
			return nil, err
		}
		pct, err := decimalFromRat(&percentage)
		if err != nil {
			return nil, err
		}
		d, err := domain.NewDiscount(id, productID, store, pct, start, end)
		if err != nil {
			return nil, fmt.Errorf("discount row %s: %w", id, err)
		}
		out = append(out, d)
	}
	return out, nil
}
