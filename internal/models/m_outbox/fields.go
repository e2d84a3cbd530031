package m_outbox

const (
	TableName = "outbox_events"

	// IndexByStatus serves the publisher's pending scan.
	IndexByStatus = "outbox_events_by_status"

	ColEventID     = "event_id"
	ColEventType   = "event_type"
	ColAggregateID = "aggregate_id"
	ColPayload     = "payload"
	ColStatus      = "status"
	ColAttempts    = "attempts"
	ColCreatedAt   = "created_at"
	ColProcessedAt = "processed_at"
)
