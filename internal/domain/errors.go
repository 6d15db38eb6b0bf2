package domain

import "errors"

// Domain errors
var (
	ErrNotFound                = errors.New("resource not found")
	ErrAlreadyExists           = errors.New("resource already exists")
	ErrInvalidInput            = errors.New("invalid input")
	ErrInternalError           = errors.New("internal error")
	ErrTransactionNotFound     = errors.New("transaction not found")
	ErrRecurringNotFound       = errors.New("recurring expense not found")
	ErrDescriptionRequired     = errors.New("description is required")
	ErrDescriptionTooLong      = errors.New("description exceeds maximum length")
	ErrCategoryRequired        = errors.New("category is required")
	ErrInvalidAmount           = errors.New("amount must be positive")
	ErrInvalidTransactionType  = errors.New("invalid transaction type")
	ErrInvalidStatus           = errors.New("invalid settlement status")
	ErrInvalidPlanKind         = errors.New("invalid payment plan kind")
	ErrInvalidValueBasis       = errors.New("invalid value basis")
	ErrInvalidExpenseKind      = errors.New("invalid expense kind")
	ErrInvalidFrequency        = errors.New("invalid frequency")
	ErrInvalidLifecycleStatus  = errors.New("invalid lifecycle status")
	ErrInvalidDueDay           = errors.New("due day must be between 1 and 31")
	ErrInvalidPeriodCount      = errors.New("period count must be positive")
	ErrInvalidCurrentPeriod    = errors.New("current period out of range")
	ErrInvalidFilterRange      = errors.New("filter range is inverted")
	ErrMalformedRecord         = errors.New("record is missing a required field")
	ErrInvalidPeriodKey        = errors.New("period key must be in YYYY-MM format")
	ErrInvalidDateRange        = errors.New("end date must be after start date")
	ErrInvalidMonth            = errors.New("month must be between 1 and 12")
)

// Validation constants
const (
	MaxDescriptionLength = 255
	MaxNoteLength        = 2000
)
