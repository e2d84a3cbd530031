package domain

import "time"

// DomainEvent is a fact about a price alert that must be published through the outbox.
type DomainEvent interface {
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

// Event type names as stored in outbox_events.event_type.
const (
	EventAlertCreated     = "price_alert.created"
	EventAlertReactivated = "price_alert.reactivated"
	EventAlertTriggered   = "price_alert.triggered"
	EventAlertDeleted     = "price_alert.deleted"
)

// AlertCreatedEvent is raised when a user subscribes to a product price.
type AlertCreatedEvent struct {
	AlertID     string
	UserEmail   string
	ProductID   string
	StoreName   string
	TargetPrice Money
	Currency    string
	CreatedAt   time.Time
}

func (e *AlertCreatedEvent) EventType() string     { return EventAlertCreated }
func (e *AlertCreatedEvent) AggregateID() string   { return e.AlertID }
func (e *AlertCreatedEvent) OccurredAt() time.Time { return e.CreatedAt }

// AlertReactivatedEvent is raised when a triggered or expired alert is armed again.
type AlertReactivatedEvent struct {
	AlertID       string
	TargetPrice   Money
	ReactivatedAt time.Time
}

func (e *AlertReactivatedEvent) EventType() string     { return EventAlertReactivated }
func (e *AlertReactivatedEvent) AggregateID() string   { return e.AlertID }
func (e *AlertReactivatedEvent) OccurredAt() time.Time { return e.ReactivatedAt }

// AlertTriggeredEvent is raised when the best current price reaches the target.
type AlertTriggeredEvent struct {
	AlertID      string
	UserEmail    string
	ProductID    string
	StoreName    string
	TargetPrice  Money
	CurrentPrice Money
	Currency     string
	TriggeredAt  time.Time
}

func (e *AlertTriggeredEvent) EventType() string     { return EventAlertTriggered }
func (e *AlertTriggeredEvent) AggregateID() string   { return e.AlertID }
func (e *AlertTriggeredEvent) OccurredAt() time.Time { return e.TriggeredAt }

// AlertDeletedEvent is raised when a user removes an alert.
type AlertDeletedEvent struct {
	AlertID   string
	UserEmail string
	DeletedAt time.Time
}

func (e *AlertDeletedEvent) EventType() string     { return EventAlertDeleted }
func (e *AlertDeletedEvent) AggregateID() string   { return e.AlertID }
func (e *AlertDeletedEvent) OccurredAt() time.Time { return e.DeletedAt }
