package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Field constants for change tracking
const (
	FieldTargetPrice     = "target_price"
	FieldStatus          = "status"
	FieldLastCheckedDate = "last_checked_date"
)

// AlertStatus is the lifecycle state of a price alert.
type AlertStatus string

const (
	AlertStatusActive    AlertStatus = "active"
	AlertStatusTriggered AlertStatus = "triggered"
	AlertStatusExpired   AlertStatus = "expired"
)

// PriceAlert is the aggregate root for a user's price-drop subscription.
// A nil store means "any store".
type PriceAlert struct {
	id              string
	userEmail       string
	productID       string
	store           *Store
	targetPrice     Money
	currency        string
	status          AlertStatus
	createdDate     civil.Date
	lastCheckedDate civil.Date
	changes         *ChangeTracker
	events          []DomainEvent
}

// NewPriceAlert creates an active alert checked as of now.
func NewPriceAlert(id, userEmail, productID string, store *Store, targetPrice Money, currency string, now time.Time) (*PriceAlert, error) {
	email, err := normalizeEmail(userEmail)
	if err != nil {
		return nil, err
	}
	if !targetPrice.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidTargetPrice, targetPrice)
	}

	today := civil.DateOf(now)
	a := &PriceAlert{
		id:              id,
		userEmail:       email,
		productID:       productID,
		store:           store,
		targetPrice:     targetPrice,
		currency:        currency,
		status:          AlertStatusActive,
		createdDate:     today,
		lastCheckedDate: today,
		changes:         NewChangeTracker(),
	}

	a.events = append(a.events, &AlertCreatedEvent{
		AlertID:     a.id,
		UserEmail:   a.userEmail,
		ProductID:   a.productID,
		StoreName:   a.StoreName(),
		TargetPrice: a.targetPrice,
		Currency:    a.currency,
		CreatedAt:   now,
	})

	return a, nil
}

// ReconstructPriceAlert rebuilds an alert from persisted state.
func ReconstructPriceAlert(
	id, userEmail, productID string,
	store *Store,
	targetPrice Money,
	currency string,
	status AlertStatus,
	createdDate, lastCheckedDate civil.Date,
) *PriceAlert {
	return &PriceAlert{
		id:              id,
		userEmail:       userEmail,
		productID:       productID,
		store:           store,
		targetPrice:     targetPrice,
		currency:        currency,
		status:          status,
		createdDate:     createdDate,
		lastCheckedDate: lastCheckedDate,
		changes:         NewChangeTracker(),
	}
}

// Getters

func (a *PriceAlert) ID() string {
	return a.id
}

func (a *PriceAlert) UserEmail() string {
	return a.userEmail
}

func (a *PriceAlert) ProductID() string {
	return a.productID
}

func (a *PriceAlert) Store() *Store {
	return a.store
}

// StoreName returns the store name or "" for an any-store alert.
func (a *PriceAlert) StoreName() string {
	if a.store == nil {
		return ""
	}
	return a.store.Name
}

func (a *PriceAlert) TargetPrice() Money {
	return a.targetPrice
}

func (a *PriceAlert) Currency() string {
	return a.currency
}

func (a *PriceAlert) Status() AlertStatus {
	return a.status
}

func (a *PriceAlert) CreatedDate() civil.Date {
	return a.createdDate
}

func (a *PriceAlert) LastCheckedDate() civil.Date {
	return a.lastCheckedDate
}

func (a *PriceAlert) IsActive() bool {
	return a.status == AlertStatusActive
}

func (a *PriceAlert) IsTriggered() bool {
	return a.status == AlertStatusTriggered
}

func (a *PriceAlert) Changes() *ChangeTracker {
	return a.changes
}

func (a *PriceAlert) DomainEvents() []DomainEvent {
	return a.events
}

func (a *PriceAlert) ClearEvents() {
	a.events = nil
}

// Business Methods

// Reactivate arms a triggered or expired alert again with a new target.
func (a *PriceAlert) Reactivate(targetPrice Money, now time.Time) error {
	if a.status == AlertStatusActive {
		return ErrAlertAlreadyExists
	}
	if !targetPrice.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrInvalidTargetPrice, targetPrice)
	}

	a.targetPrice = targetPrice
	a.status = AlertStatusActive
	a.lastCheckedDate = civil.DateOf(now)
	a.changes.MarkDirty(FieldTargetPrice)
	a.changes.MarkDirty(FieldStatus)
	a.changes.MarkDirty(FieldLastCheckedDate)

	a.events = append(a.events, &AlertReactivatedEvent{
		AlertID:       a.id,
		TargetPrice:   targetPrice,
		ReactivatedAt: now,
	})

	return nil
}

// Check compares the current best price with the target.
// It reports whether the price is at or below target and whether this call
// moved the alert into the triggered state. Only a newly triggered alert
// emits AlertTriggeredEvent.
func (a *PriceAlert) Check(currentPrice Money, now time.Time) (reached, newlyTriggered bool) {
	today := civil.DateOf(now)
	if a.lastCheckedDate != today {
		a.lastCheckedDate = today
		a.changes.MarkDirty(FieldLastCheckedDate)
	}

	if currentPrice.GreaterThan(a.targetPrice) {
		return false, false
	}
	if a.status == AlertStatusTriggered {
		return true, false
	}

	a.status = AlertStatusTriggered
	a.changes.MarkDirty(FieldStatus)
	a.events = append(a.events, &AlertTriggeredEvent{
		AlertID:      a.id,
		UserEmail:    a.userEmail,
		ProductID:    a.productID,
		StoreName:    a.StoreName(),
		TargetPrice:  a.targetPrice,
		CurrentPrice: currentPrice,
		Currency:     a.currency,
		TriggeredAt:  now,
	})

	return true, true
}

// MarkDeleted records the deletion event. The row itself is removed by the repository.
func (a *PriceAlert) MarkDeleted(now time.Time) {
	a.events = append(a.events, &AlertDeletedEvent{
		AlertID:   a.id,
		UserEmail: a.userEmail,
		DeletedAt: now,
	})
}

func normalizeEmail(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, raw)
	}
	return strings.ToLower(addr.Address), nil
}
