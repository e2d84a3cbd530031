package e2e

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/iterator"

	"github.com/murkotick/price-comparator/internal/models/m_outbox"
)

// storedEvent is an outbox row as the publisher sees it.
type storedEvent struct {
	EventID     string
	EventType   string
	AggregateID string
	Status      string
	CreatedAt   time.Time
	ProcessedAt spanner.NullTime
}

var storedEventColumns = m_outbox.ColEventID + `, ` + m_outbox.ColEventType + `, ` + m_outbox.ColAggregateID + `, ` +
	m_outbox.ColStatus + `, ` + m_outbox.ColCreatedAt + `, ` + m_outbox.ColProcessedAt

// mustFetchOutboxEvents returns an alert's outbox rows in publish order.
func mustFetchOutboxEvents(ctx context.Context, t *testing.T, client *spanner.Client, alertID string) []storedEvent {
	t.Helper()

	stmt := spanner.Statement{
		SQL: `SELECT ` + storedEventColumns + ` FROM ` + m_outbox.TableName +
			` WHERE ` + m_outbox.ColAggregateID + ` = @alert` +
			` ORDER BY ` + m_outbox.ColCreatedAt + `, ` + m_outbox.ColEventID,
		Params: map[string]any{"alert": alertID},
	}

	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var out []storedEvent
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out
		}
		require.NoError(t, err)

		var e storedEvent
		require.NoError(t, row.Columns(&e.EventID, &e.EventType, &e.AggregateID, &e.Status, &e.CreatedAt, &e.ProcessedAt))
		out = append(out, e)
	}
}
