package queries

import (
	"context"
	"math/big"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
)

// SpannerAlertReader satisfies contracts.AlertReader.
type SpannerAlertReader struct {
	Client *spanner.Client
}

func NewSpannerAlertReader(client *spanner.Client) *SpannerAlertReader {
	return &SpannerAlertReader{Client: client}
}

const alertSelect = `SELECT a.alert_id, a.user_email, a.product_id, a.store_id, s.name,
             a.target_price, a.currency, a.status, a.created_date, a.last_checked_date
      FROM price_alerts a LEFT JOIN stores s ON s.store_id = a.store_id`

func (r *SpannerAlertReader) FindAlert(ctx context.Context, id string) (*domain.PriceAlert, error) {
	alerts, err := r.query(ctx, spanner.Statement{
		SQL:    alertSelect + ` WHERE a.alert_id = @id`,
		Params: map[string]interface{}{"id": id},
	})
	if err != nil || len(alerts) == 0 {
		return nil, err
	}
	return alerts[0], nil
}

func (r *SpannerAlertReader) FindAlertFor(ctx context.Context, userEmail, productID, storeID string) (*domain.PriceAlert, error) {
	sql := alertSelect + ` WHERE a.user_email = @email AND a.product_id = @product`
	params := map[string]interface{}{"email": userEmail, "product": productID}
	if storeID == "" {
		sql += ` AND a.store_id IS NULL`
	} else {
		sql += ` AND a.store_id = @store`
		params["store"] = storeID
	}
	sql += ` ORDER BY a.alert_id LIMIT 1`

	alerts, err := r.query(ctx, spanner.Statement{SQL: sql, Params: params})
	if err != nil || len(alerts) == 0 {
		return nil, err
	}
	return alerts[0], nil
}

func (r *SpannerAlertReader) ListAlerts(ctx context.Context, userEmail string) ([]*domain.PriceAlert, error) {
	stmt := spanner.Statement{SQL: alertSelect + ` ORDER BY a.created_date, a.alert_id`}
	if userEmail != "" {
		stmt = spanner.Statement{
			SQL:    alertSelect + ` WHERE a.user_email = @email ORDER BY a.created_date, a.alert_id`,
			Params: map[string]interface{}{"email": userEmail},
		}
	}
	return r.query(ctx, stmt)
}

func (r *SpannerAlertReader) query(ctx context.Context, stmt spanner.Statement) ([]*domain.PriceAlert, error) {
	iter := r.Client.Single().Query(ctx, stmt)
	defer iter.Stop()

	out := []*domain.PriceAlert{}
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var (
			id, email, productID, currency, status string
			storeID, storeName                     spanner.NullString
			target                                 big.Rat
			created, lastChecked                   civil.Date
		)
		if err := row.Columns(&id, &email, &productID, &storeID, &storeName,
			&target, &currency, &status, &created, &lastChecked); err != nil {
			return nil, err
		}

		value, err := decimalFromRat(&target)
		if err != nil {
			return nil, err
		}

		var store *domain.Store
		if storeID.Valid {
			store = &domain.Store{ID: storeID.StringVal, Name: storeName.StringVal}
		}

		out = append(out, domain.ReconstructPriceAlert(id, email, productID, store,
			domain.NewMoney(value), currency, domain.AlertStatus(status), created, lastChecked))
	}
	return out, nil
}
