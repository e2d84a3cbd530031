package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
	"github.com/murkotick/price-comparator/internal/models/m_price_alert"
	"github.com/murkotick/price-comparator/internal/pkg/committer"
)

// AlertRepo is the Spanner implementation of the alert write-side repository.
// It returns *spanner.Mutation objects but never applies them.
type AlertRepo struct{}

func NewAlertRepo() *AlertRepo {
	return &AlertRepo{}
}

// buildInsertValues is unexported so tests can inspect the map without
// relying on spanner.Mutation internals.
func buildInsertValues(a *domain.PriceAlert) map[string]interface{} {
	var storeID *string
	if s := a.Store(); s != nil {
		id := s.ID
		storeID = &id
	}

	return m_price_alert.BuildInsertMap(
		a.ID(),
		a.UserEmail(),
		a.ProductID(),
		storeID,
		a.TargetPrice().Decimal().Rat(),
		a.Currency(),
		string(a.Status()),
		a.CreatedDate(),
		a.LastCheckedDate(),
	)
}

func (r *AlertRepo) InsertMut(a *domain.PriceAlert) *spanner.Mutation {
	if a == nil {
		return nil
	}
	return m_price_alert.InsertMutation(buildInsertValues(a))
}

// buildUpdateValues maps the dirty fields to columns; empty means no change.
func buildUpdateValues(a *domain.PriceAlert) map[string]interface{} {
	updates := map[string]interface{}{}
	if a == nil || a.Changes() == nil {
		return updates
	}

	if a.Changes().Dirty(domain.FieldTargetPrice) {
		updates[m_price_alert.ColTargetPrice] = a.TargetPrice().Decimal().Rat()
	}
	if a.Changes().Dirty(domain.FieldStatus) {
		updates[m_price_alert.ColStatus] = string(a.Status())
	}
	if a.Changes().Dirty(domain.FieldLastCheckedDate) {
		updates[m_price_alert.ColLastCheckedDate] = a.LastCheckedDate()
	}
	return updates
}

// UpdateMut writes only the dirty columns, or returns nil when nothing changed.
func (r *AlertRepo) UpdateMut(a *domain.PriceAlert) *spanner.Mutation {
	updates := buildUpdateValues(a)
	if len(updates) == 0 {
		return nil
	}
	return m_price_alert.UpdateMutation(a.ID(), updates)
}

func (r *AlertRepo) DeleteMut(a *domain.PriceAlert) *spanner.Mutation {
	if a == nil {
		return nil
	}
	return m_price_alert.DeleteMutation(a.ID())
}

// alertKeyStatement selects the alert for (email, product, store); an empty
// storeID matches the any-store alert.
func alertKeyStatement(userEmail, productID, storeID string) spanner.Statement {
	sql := `SELECT ` + m_price_alert.ColAlertID + ` FROM ` + m_price_alert.TableName +
		` WHERE ` + m_price_alert.ColUserEmail + ` = @email AND ` + m_price_alert.ColProductID + ` = @product`
	params := map[string]interface{}{"email": userEmail, "product": productID}
	if storeID == "" {
		sql += ` AND ` + m_price_alert.ColStoreID + ` IS NULL`
	} else {
		sql += ` AND ` + m_price_alert.ColStoreID + ` = @store`
		params["store"] = storeID
	}
	return spanner.Statement{SQL: sql + ` LIMIT 1`, Params: params}
}

// AbsentGuard fails the commit with ErrAlertAlreadyExists when the
// (email, product, store) alert exists by the time the transaction runs.
func (r *AlertRepo) AbsentGuard(userEmail, productID, storeID string) committer.Guard {
	stmt := alertKeyStatement(userEmail, productID, storeID)
	return func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		iter := tx.Query(ctx, stmt)
		defer iter.Stop()

		_, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return fmt.Errorf("check existing alert: %w", err)
		}
		return fmt.Errorf("%w: %s on %s", domain.ErrAlertAlreadyExists, userEmail, productID)
	}
}
