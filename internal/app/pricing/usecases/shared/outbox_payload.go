package shared

import (
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	"github.com/murkotick/price-comparator/internal/app/pricing/contracts"
	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
)

// MarshalDomainEventPayload converts a domain event into the JSON stored in the outbox.
// Money is rendered as a two-decimal string.
func MarshalDomainEventPayload(ev domain.DomainEvent) (string, error) {
	if ev == nil {
		return "{}", nil
	}

	var payload map[string]interface{}
	switch e := ev.(type) {
	case *domain.AlertCreatedEvent:
		payload = map[string]interface{}{
			"alert_id":     e.AlertID,
			"user_email":   e.UserEmail,
			"product_id":   e.ProductID,
			"store_name":   e.StoreName,
			"target_price": e.TargetPrice.String(),
			"currency":     e.Currency,
			"created_at":   e.CreatedAt,
		}

	case *domain.AlertReactivatedEvent:
		payload = map[string]interface{}{
			"alert_id":       e.AlertID,
			"target_price":   e.TargetPrice.String(),
			"reactivated_at": e.ReactivatedAt,
		}

	case *domain.AlertTriggeredEvent:
		payload = map[string]interface{}{
			"alert_id":      e.AlertID,
			"user_email":    e.UserEmail,
			"product_id":    e.ProductID,
			"store_name":    e.StoreName,
			"target_price":  e.TargetPrice.String(),
			"current_price": e.CurrentPrice.Round2().String(),
			"currency":      e.Currency,
			"triggered_at":  e.TriggeredAt,
		}

	case *domain.AlertDeletedEvent:
		payload = map[string]interface{}{
			"alert_id":   e.AlertID,
			"user_email": e.UserEmail,
			"deleted_at": e.DeletedAt,
		}

	default:
		b, err := json.Marshal(ev)
		if err != nil {
			return "", fmt.Errorf("marshal outbox payload for %T: %w", ev, err)
		}
		return string(b), nil
	}

	payload["event_type"] = ev.EventType()
	payload["occurred_at"] = ev.OccurredAt()
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal outbox payload for %s: %w", ev.EventType(), err)
	}
	return string(b), nil
}

// eventSpacing separates the created_at of events from one command so the
// publisher's (created_at, event_id) order matches emission order.
const eventSpacing = time.Microsecond

// OutboxMutations turns domain events into pending outbox inserts.
func OutboxMutations(repo contracts.OutboxRepo, events []domain.DomainEvent, now time.Time) ([]*spanner.Mutation, error) {
	muts := make([]*spanner.Mutation, 0, len(events))
	for i, ev := range events {
		payload, err := MarshalDomainEventPayload(ev)
		if err != nil {
			return nil, err
		}
		muts = append(muts, repo.InsertMut(&contracts.OutboxEvent{
			EventID:      uuid.New().String(),
			EventType:    ev.EventType(),
			AggregateID:  ev.AggregateID(),
			PayloadJSON:  payload,
			Status:       contracts.OutboxStatusPending,
			CreatedAtUTC: now.UTC().Add(time.Duration(i) * eventSpacing),
		}))
	}
	return muts, nil
}
