package m_outbox

import (
	"time"

	"cloud.google.com/go/spanner"
)

// BuildInsertMap constructs the row of a new outbox event. processed_at starts NULL.
func BuildInsertMap(eventID, eventType, aggregateID string, payload string, status string, createdAt time.Time) map[string]interface{} {
	return map[string]interface{}{
		ColEventID:     eventID,
		ColEventType:   eventType,
		ColAggregateID: aggregateID,
		ColPayload:     payload,
		ColStatus:      status,
		ColAttempts:    int64(0),
		ColCreatedAt:   createdAt,
		ColProcessedAt: nil,
	}
}

func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for c, v := range values {
		cols = append(cols, c)
		vals = append(vals, v)
	}
	return spanner.Insert(TableName, cols, vals)
}

// StatusMutation moves an event to a new status and stamps processed_at.
func StatusMutation(eventID, status string, processedAt time.Time) *spanner.Mutation {
	return spanner.Update(TableName,
		[]string{ColEventID, ColStatus, ColProcessedAt},
		[]interface{}{eventID, status, processedAt})
}

// UpdateMutation writes the given columns of one event.
func UpdateMutation(eventID string, updates map[string]interface{}) *spanner.Mutation {
	cols := []string{ColEventID}
	vals := []interface{}{eventID}
	for c, v := range updates {
		cols = append(cols, c)
		vals = append(vals, v)
	}
	return spanner.Update(TableName, cols, vals)
}
