package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is a catalog snapshot as supplied by the data-access layer.
// It is never mutated by the engine.
type Product struct {
	id              string
	name            string
	category        string
	brand           string
	packageQuantity decimal.Decimal
	packageUnit     string
}

// NewProduct validates and builds a Product snapshot.
func NewProduct(id, name, category, brand string, packageQuantity decimal.Decimal, packageUnit string) (*Product, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)
	if id == "" || name == "" || category == "" {
		return nil, ErrEmptyProductField
	}
	if !packageQuantity.IsPositive() {
		return nil, fmt.Errorf("%w: product %s has %s", ErrInvalidPackageQuantity, id, packageQuantity)
	}

	return &Product{
		id:              id,
		name:            name,
		category:        category,
		brand:           strings.TrimSpace(brand),
		packageQuantity: packageQuantity,
		packageUnit:     strings.TrimSpace(packageUnit),
	}, nil
}

// Getters

func (p *Product) ID() string {
	return p.id
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) Category() string {
	return p.category
}

func (p *Product) Brand() string {
	return p.brand
}

func (p *Product) PackageQuantity() decimal.Decimal {
	return p.packageQuantity
}

func (p *Product) PackageUnit() string {
	return p.packageUnit
}

// ValuePerUnit normalizes price against this product's package.
func (p *Product) ValuePerUnit(price Money) (Money, string) {
	return Normalize(p.packageQuantity, p.packageUnit, price)
}

// Store identifies a retailer. Names are unique.
type Store struct {
	ID   string
	Name string
}
