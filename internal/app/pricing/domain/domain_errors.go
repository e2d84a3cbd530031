package domain

import "errors"

// Lookup errors. These abort the enclosing operation.
var (
	// ErrProductNotFound indicates that a product with the given ID does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrStoreNotFound indicates that no store has the given name.
	ErrStoreNotFound = errors.New("store not found")

	// ErrAlertNotFound indicates that a price alert with the given ID does not exist.
	ErrAlertNotFound = errors.New("price alert not found")
)

// Input errors.
var (
	// ErrBasketEmpty indicates a basket with no lines, or with no line of positive quantity.
	ErrBasketEmpty = errors.New("shopping basket cannot be empty")

	// ErrInvalidPackageQuantity indicates a product package quantity that is not positive.
	ErrInvalidPackageQuantity = errors.New("package quantity must be positive")

	// ErrEmptyProductField indicates a product snapshot with an empty id, name or category.
	ErrEmptyProductField = errors.New("product id, name and category are required")

	// ErrNonPositivePrice indicates a price record whose amount is zero or negative.
	ErrNonPositivePrice = errors.New("price must be positive")

	// ErrInvalidDiscountPercentage indicates the discount percentage is outside valid range (0-100).
	ErrInvalidDiscountPercentage = errors.New("discount percentage must be between 0 and 100")

	// ErrInvalidDiscountPeriod indicates the discount ends before it starts.
	ErrInvalidDiscountPeriod = errors.New("discount end date must not be before start date")

	// ErrInvalidTargetPrice indicates an alert target price that is not positive.
	ErrInvalidTargetPrice = errors.New("target price must be positive")

	// ErrInvalidEmail indicates a missing or malformed alert owner email.
	ErrInvalidEmail = errors.New("a valid user email is required")

	// ErrInvalidDateRange indicates a window whose start is after its end.
	ErrInvalidDateRange = errors.New("start date must not be after end date")
)

// State errors for the PriceAlert aggregate.
var (
	// ErrAlertAlreadyExists indicates an active alert already exists for the user, product and store.
	ErrAlertAlreadyExists = errors.New("alert already exists for this product and store")
)

// ErrorKind classifies domain errors for the outer layers.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindInvalidInput
	KindConflict
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidInput:
		return "invalid_input"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// KindOf returns the kind of the first domain sentinel found in err's chain.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrStoreNotFound),
		errors.Is(err, ErrAlertNotFound):
		return KindNotFound
	case errors.Is(err, ErrBasketEmpty),
		errors.Is(err, ErrInvalidPackageQuantity),
		errors.Is(err, ErrEmptyProductField),
		errors.Is(err, ErrNonPositivePrice),
		errors.Is(err, ErrInvalidDiscountPercentage),
		errors.Is(err, ErrInvalidDiscountPeriod),
		errors.Is(err, ErrInvalidTargetPrice),
		errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrInvalidDateRange):
		return KindInvalidInput
	case errors.Is(err, ErrAlertAlreadyExists):
		return KindConflict
	}
	return KindUnknown
}
