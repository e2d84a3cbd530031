package repo

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/murkotick/price-comparator/internal/app/pricing/contracts"
)

// OutboxReader scans pending outbox rows for the publisher.
type OutboxReader struct {
	Client *spanner.Client
}

func NewOutboxReader(client *spanner.Client) *OutboxReader {
	return &OutboxReader{Client: client}
}

// FetchPending returns up to limit pending events, oldest first.
func (r *OutboxReader) FetchPending(ctx context.Context, limit int) ([]contracts.OutboxEvent, error) {
	stmt := spanner.Statement{
		SQL: `SELECT event_id, event_type, aggregate_id, payload, status, attempts, created_at
		      FROM outbox_events@{FORCE_INDEX=outbox_events_by_status}
		      WHERE status = @status
		      ORDER BY created_at, event_id
		      LIMIT @limit`,
		Params: map[string]interface{}{
			"status": contracts.OutboxStatusPending,
			"limit":  int64(limit),
		},
	}

	iter := r.Client.Single().Query(ctx, stmt)
	defer iter.Stop()

	out := []contracts.OutboxEvent{}
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var (
			e         contracts.OutboxEvent
			attempts  int64
			createdAt time.Time
		)
		if err := row.Columns(&e.EventID, &e.EventType, &e.AggregateID, &e.PayloadJSON, &e.Status, &attempts, &createdAt); err != nil {
			return nil, err
		}
		e.Attempts = int(attempts)
		e.CreatedAtUTC = createdAt.UTC()
		out = append(out, e)
	}
	return out, nil
}
