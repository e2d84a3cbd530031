package repo

import (
	"cloud.google.com/go/spanner"

	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
	"github.com/murkotick/price-comparator/internal/models/m_discount"
	"github.com/murkotick/price-comparator/internal/models/m_price"
	"github.com/murkotick/price-comparator/internal/models/m_product"
	"github.com/murkotick/price-comparator/internal/models/m_store"
)

// CatalogRepo turns reference data (stores, products, price observations
// and discounts) into upsert mutations for the loaders that feed the catalog.
type CatalogRepo struct{}

func NewCatalogRepo() *CatalogRepo {
	return &CatalogRepo{}
}

func (r *CatalogRepo) StoreMut(s domain.Store) *spanner.Mutation {
	return m_store.InsertOrUpdateMutation(s.ID, s.Name)
}

func (r *CatalogRepo) ProductMut(p *domain.Product) *spanner.Mutation {
	if p == nil {
		return nil
	}
	return m_product.InsertOrUpdateMutation(buildProductValues(p))
}

func buildProductValues(p *domain.Product) map[string]interface{} {
	return m_product.BuildInsertMap(p.ID(), p.Name(), p.Category(), p.Brand(), p.PackageQuantity().Rat(), p.PackageUnit())
}

func (r *CatalogRepo) PriceMut(p *domain.PriceRecord) *spanner.Mutation {
	if p == nil {
		return nil
	}
	return m_price.InsertOrUpdateMutation(buildPriceValues(p))
}

func buildPriceValues(p *domain.PriceRecord) map[string]interface{} {
	return m_price.BuildInsertMap(p.ID(), p.ProductID(), p.Store().ID, p.Price().Decimal().Rat(), p.Currency(), p.Date())
}

func (r *CatalogRepo) DiscountMut(d *domain.Discount) *spanner.Mutation {
	if d == nil {
		return nil
	}
	return m_discount.InsertOrUpdateMutation(buildDiscountValues(d))
}

func buildDiscountValues(d *domain.Discount) map[string]interface{} {
	return m_discount.BuildInsertMap(d.ID(), d.ProductID(), d.Store().ID, d.Percentage().Rat(), d.StartDate(), d.EndDate())
}
