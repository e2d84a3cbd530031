package contracts

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Outbox row statuses.
const (
	OutboxStatusPending   = "pending"
	OutboxStatusPublished = "published"
	// OutboxStatusFailed is terminal: the event ran out of publish attempts.
	OutboxStatusFailed = "failed"
)

// OutboxRepo is the write-side repository interface for the transactional outbox.
type OutboxRepo interface {
	InsertMut(e *OutboxEvent) *spanner.Mutation
}

// OutboxEvent is an enriched domain event ready to be stored in outbox_events.
type OutboxEvent struct {
	EventID      string
	EventType    string
	AggregateID  string
	PayloadJSON  string
	Status       string
	Attempts     int
	CreatedAtUTC time.Time
}
