package repo

import (
	"time"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/price-comparator/internal/app/pricing/contracts"
	"github.com/murkotick/price-comparator/internal/models/m_outbox"
)

// OutboxRepo is the Spanner implementation of the transactional outbox repository.
// It returns *spanner.Mutation but never applies it.
type OutboxRepo struct{}

func NewOutboxRepo() *OutboxRepo {
	return &OutboxRepo{}
}

func (r *OutboxRepo) InsertMut(e *contracts.OutboxEvent) *spanner.Mutation {
	if e == nil {
		return nil
	}

	values := m_outbox.BuildInsertMap(
		e.EventID,
		e.EventType,
		e.AggregateID,
		e.PayloadJSON,
		e.Status,
		e.CreatedAtUTC,
	)
	return m_outbox.InsertMutation(values)
}

// MarkPublishedMut flags one event as delivered.
func (r *OutboxRepo) MarkPublishedMut(eventID string, at time.Time) *spanner.Mutation {
	return m_outbox.StatusMutation(eventID, contracts.OutboxStatusPublished, at.UTC())
}

// failureValues counts one more failed attempt; the last allowed attempt
// also parks the event as failed so the pending scan stops returning it.
func failureValues(e contracts.OutboxEvent, maxAttempts int, at time.Time) map[string]interface{} {
	attempts := e.Attempts + 1
	updates := map[string]interface{}{m_outbox.ColAttempts: int64(attempts)}
	if maxAttempts > 0 && attempts >= maxAttempts {
		updates[m_outbox.ColStatus] = contracts.OutboxStatusFailed
		updates[m_outbox.ColProcessedAt] = at.UTC()
	}
	return updates
}

// RecordFailureMut stores a failed publish attempt. maxAttempts <= 0 retries forever.
func (r *OutboxRepo) RecordFailureMut(e contracts.OutboxEvent, maxAttempts int, at time.Time) *spanner.Mutation {
	return m_outbox.UpdateMutation(e.EventID, failureValues(e, maxAttempts, at))
}
