package services

import (
	"cloud.google.com/go/civil"

	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
)

// LatestPrices holds at most one price record per store, iterated in the
// order in which each store first appeared in the selector input.
type LatestPrices struct {
	order   []string
	byStore map[string]*domain.PriceRecord
}

// SelectLatestPerStore keeps, per store, the record with the greatest date
// not after onOrBefore. On equal dates the earlier record in input wins.
func SelectLatestPerStore(records []*domain.PriceRecord, onOrBefore civil.Date) LatestPrices {
	latest := LatestPrices{byStore: make(map[string]*domain.PriceRecord)}

	for _, r := range records {
		if r == nil || r.Date().After(onOrBefore) {
			continue
		}
		storeID := r.Store().ID
		current, seen := latest.byStore[storeID]
		if !seen {
			latest.order = append(latest.order, storeID)
			latest.byStore[storeID] = r
			continue
		}
		if r.Date().After(current.Date()) {
			latest.byStore[storeID] = r
		}
	}

	return latest
}

// Records returns the selected records in store order.
func (l LatestPrices) Records() []*domain.PriceRecord {
	out := make([]*domain.PriceRecord, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.byStore[id])
	}
	return out
}

// ByStore returns the record selected for storeID, or nil.
func (l LatestPrices) ByStore(storeID string) *domain.PriceRecord {
	return l.byStore[storeID]
}

func (l LatestPrices) Len() int {
	return len(l.order)
}

func (l LatestPrices) IsEmpty() bool {
	return len(l.order) == 0
}
