package errors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Domain errors
var (
	ErrProductNotFound             = errors.New("loan product not found")
	ErrProductInactive             = errors.New("loan product is inactive")
	ErrApplicationNotFound         = errors.New("loan application not found")
	ErrCollateralNotFound          = errors.New("collateral not found")
	ErrValidation                  = errors.New("validation failed")
	ErrLTVOutOfRange               = errors.New("ltv out of range")
	ErrAmountOutOfRange            = errors.New("loan amount out of range")
	ErrInvalidPledgeStatus         = errors.New("invalid pledge status")
	ErrInvalidStatus               = errors.New("invalid application status")
	ErrInvalidTransition           = errors.New("invalid status transition")
	ErrApplicationNumberExhausted  = errors.New("could not allocate application number")
	ErrApplicationNumberGeneration = errors.New("application number generation failed")
)

// Kind groups error codes by how a caller should react to them.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindRangeViolation
	KindInvalidEnum
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindRangeViolation:
		return "range_violation"
	case KindInvalidEnum:
		return "invalid_enum"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Kind    Kind
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil && e.Kind == KindInternal {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code string, kind Kind, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// RangeError is a BusinessError that also carries the offending value and the
// bounds it had to fall within.
type RangeError struct {
	*BusinessError
	Value decimal.Decimal
	Min   decimal.Decimal
	Max   decimal.Decimal
}

func (e *RangeError) Unwrap() error { return e.BusinessError }

// Error codes
const (
	ErrCodeProductNotFound             = "LOAN_PRODUCT_NOT_FOUND"
	ErrCodeProductInactive             = "LOAN_PRODUCT_INACTIVE"
	ErrCodeApplicationNotFound         = "LOAN_APPLICATION_NOT_FOUND"
	ErrCodeCollateralNotFound          = "COLLATERAL_NOT_FOUND"
	ErrCodeValidationFailed            = "VALIDATION_FAILED"
	ErrCodeLTVOutOfRange               = "LTV_OUT_OF_RANGE"
	ErrCodeAmountOutOfRange            = "AMOUNT_OUT_OF_RANGE"
	ErrCodeInvalidPledgeStatus         = "INVALID_PLEDGE_STATUS"
	ErrCodeInvalidStatus               = "INVALID_STATUS"
	ErrCodeInvalidTransition           = "INVALID_STATUS_TRANSITION"
	ErrCodeApplicationNumberExhausted  = "APPLICATION_NUMBER_EXHAUSTED"
	ErrCodeApplicationNumberGeneration = "APPLICATION_NUMBER_GENERATION_FAILED"
	ErrCodeDatabaseError               = "DATABASE_ERROR"
	ErrCodeCacheError                  = "CACHE_ERROR"
)

func WrapProductNotFound(productID string) *BusinessError {
	return NewBusinessError(
		ErrCodeProductNotFound,
		KindNotFound,
		fmt.Sprintf("Loan product %s not found", productID),
		ErrProductNotFound,
	)
}

func WrapProductInactive(productID string) *BusinessError {
	return NewBusinessError(
		ErrCodeProductInactive,
		KindValidation,
		fmt.Sprintf("Loan product %s is inactive", productID),
		ErrProductInactive,
	)
}

func WrapApplicationNotFound(applicationID string) *BusinessError {
	return NewBusinessError(
		ErrCodeApplicationNotFound,
		KindNotFound,
		fmt.Sprintf("Loan application %s not found", applicationID),
		ErrApplicationNotFound,
	)
}

func WrapCollateralNotFound(collateralID string) *BusinessError {
	return NewBusinessError(
		ErrCodeCollateralNotFound,
		KindNotFound,
		fmt.Sprintf("Collateral %s not found", collateralID),
		ErrCollateralNotFound,
	)
}

func WrapValidation(message string) *BusinessError {
	return NewBusinessError(ErrCodeValidationFailed, KindValidation, message, ErrValidation)
}

// WrapLTVOutOfRange reports the computed LTV with two decimals next to the
// product's allowed band.
func WrapLTVOutOfRange(ltv, minLTV, maxLTV decimal.Decimal) *RangeError {
	return &RangeError{
		BusinessError: NewBusinessError(
			ErrCodeLTVOutOfRange,
			KindRangeViolation,
			fmt.Sprintf("LTV ratio %s%% is outside the allowed range (%s%% - %s%%)",
				ltv.StringFixed(2), minLTV.String(), maxLTV.String()),
			ErrLTVOutOfRange,
		),
		Value: ltv,
		Min:   minLTV,
		Max:   maxLTV,
	}
}

func WrapAmountOutOfRange(amount, minAmount, maxAmount decimal.Decimal) *RangeError {
	return &RangeError{
		BusinessError: NewBusinessError(
			ErrCodeAmountOutOfRange,
			KindRangeViolation,
			fmt.Sprintf("Loan amount is outside the allowed range (%s - %s)",
				minAmount.String(), maxAmount.String()),
			ErrAmountOutOfRange,
		),
		Value: amount,
		Min:   minAmount,
		Max:   maxAmount,
	}
}

func WrapInvalidPledgeStatus(status string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidPledgeStatus,
		KindInvalidEnum,
		fmt.Sprintf("Invalid pledge status %q: must be one of pledged, unpledged, released", status),
		ErrInvalidPledgeStatus,
	)
}

func WrapInvalidStatus(status string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidStatus,
		KindInvalidEnum,
		fmt.Sprintf("Invalid status %q", status),
		ErrInvalidStatus,
	)
}

func WrapInvalidTransition(from, to string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidTransition,
		KindConflict,
		fmt.Sprintf("Cannot move loan application from %s to %s", from, to),
		ErrInvalidTransition,
	)
}

func WrapApplicationNumberExhausted(attempts int) *BusinessError {
	return NewBusinessError(
		ErrCodeApplicationNumberExhausted,
		KindInternal,
		fmt.Sprintf("no unused application number after %d attempts", attempts),
		ErrApplicationNumberExhausted,
	)
}

// WrapApplicationNumberGeneration reports a generator failure, such as an
// unreadable random source. No candidate was produced, so nothing was exhausted.
func WrapApplicationNumberGeneration(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeApplicationNumberGeneration,
		KindInternal,
		"application number generation failed",
		fmt.Errorf("%w: %w", ErrApplicationNumberGeneration, err),
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		KindInternal,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		KindInternal,
		"cache operation failed",
		err,
	)
}

// KindOf returns the Kind of the first BusinessError in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindInternal
}

// CodeOf returns the error code of the first BusinessError in err's chain.
func CodeOf(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
