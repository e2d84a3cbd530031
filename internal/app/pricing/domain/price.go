package domain

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
)

// PriceRecord is the nominal shelf price of a product at a store on a day.
type PriceRecord struct {
	id        string
	productID string
	store     Store
	price     Money
	currency  string
	date      civil.Date
}

// NewPriceRecord validates and builds a PriceRecord. The price must be positive.
func NewPriceRecord(id, productID string, store Store, price Money, currency string, date civil.Date) (*PriceRecord, error) {
	if !price.IsPositive() {
		return nil, fmt.Errorf("%w: record %s for product %s has %s", ErrNonPositivePrice, id, productID, price)
	}

	return &PriceRecord{
		id:        strings.TrimSpace(id),
		productID: strings.TrimSpace(productID),
		store:     store,
		price:     price,
		currency:  strings.TrimSpace(currency),
		date:      date,
	}, nil
}

func (p *PriceRecord) ID() string {
	return p.id
}

func (p *PriceRecord) ProductID() string {
	return p.productID
}

func (p *PriceRecord) Store() Store {
	return p.store
}

func (p *PriceRecord) Price() Money {
	return p.price
}

func (p *PriceRecord) Currency() string {
	return p.currency
}

func (p *PriceRecord) Date() civil.Date {
	return p.date
}
